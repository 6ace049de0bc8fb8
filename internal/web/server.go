// Package web serves the check report of one input tree over HTTP.
package web

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"column79/internal/app"
	"column79/internal/inspect"
	"column79/internal/language"
	"column79/internal/model"
)

// ContextRadius is the number of lines shown on either side of a line.
const ContextRadius = 2

//go:embed static/*
var staticFS embed.FS

// Report is the body of /api/check.
type Report struct {
	Version     string             `json:"version"`
	Input       string             `json:"input"`
	Language    string             `json:"language"`
	Column      int                `json:"column"`
	Threshold   int                `json:"separator_threshold"`
	Diagnostics []model.Diagnostic `json:"diagnostics"`
}

// Server answers report queries for the input of a loaded App.
type Server struct {
	app *app.App
	mux *http.ServeMux
}

// NewServer builds the routes. Every /api/check request re-walks the input.
func NewServer(a *app.App) *Server {
	s := &Server{app: a, mux: http.NewServeMux()}

	subFS, _ := fs.Sub(staticFS, "static")
	s.mux.Handle("/", http.FileServer(http.FS(subFS)))

	s.mux.HandleFunc("/api/check", s.handleCheck)
	s.mux.HandleFunc("/api/languages", s.handleLanguages)
	s.mux.HandleFunc("/api/line-context", s.handleLineContext)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	zap.L().Debug("http", zap.String("method", r.Method), zap.String("url", r.URL.String()))
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe blocks serving on addr.
func (s *Server) ListenAndServe(addr string) error {
	fmt.Printf("Starting %s web server at http://%s\n", model.ProgramName, displayAddr(addr))
	if err := http.ListenAndServe(addr, s); err != nil {
		return &model.Error{Kind: model.ErrIO, Op: "listen " + addr, Err: err}
	}
	return nil
}

func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var c inspect.Collector
	if err := s.app.Check(&c); err != nil {
		zap.L().Error("check failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cfg := s.app.Config()
	report := Report{
		Version:     model.Version,
		Input:       s.app.Input(),
		Language:    cfg.Language,
		Column:      cfg.Column,
		Threshold:   cfg.SeparatorThreshold,
		Diagnostics: c.Diagnostics,
	}
	if report.Diagnostics == nil {
		report.Diagnostics = []model.Diagnostic{}
	}
	writeJSON(w, report)
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	reg := s.app.Config().Languages
	langs := make([]language.Source, 0, reg.Len())
	for _, name := range reg.Names() {
		l, _ := reg.Get(name)
		langs = append(langs, l.Source())
	}
	writeJSON(w, langs)
}

func (s *Server) handleLineContext(w http.ResponseWriter, r *http.Request) {
	file := r.URL.Query().Get("file")
	lineStr := r.URL.Query().Get("line")
	if file == "" || lineStr == "" {
		http.Error(w, "file and line are required", http.StatusBadRequest)
		return
	}
	line, err := strconv.Atoi(lineStr)
	if err != nil || line < 1 {
		http.Error(w, "invalid line number", http.StatusBadRequest)
		return
	}

	path, ok := s.within(file)
	if !ok {
		http.Error(w, "file is outside the input", http.StatusForbidden)
		return
	}

	ctx, err := model.ReadLineContext(path, line, ContextRadius)
	switch {
	case errors.Is(err, model.ErrLineRange), errors.Is(err, fs.ErrNotExist):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		zap.L().Error("line context", zap.String("path", path), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, ctx)
}

// within resolves file the way the walk named it, relative to the working
// directory, and reports whether the result stays inside the input root.
func (s *Server) within(file string) (string, bool) {
	root, err := filepath.Abs(s.app.Input())
	if err != nil {
		return "", false
	}
	path, err := filepath.Abs(file)
	if err != nil {
		return "", false
	}

	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return path, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		zap.L().Warn("encode response", zap.Error(err))
	}
}
