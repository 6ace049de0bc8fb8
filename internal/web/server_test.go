package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"column79/internal/app"
	"column79/internal/config"
	"column79/internal/language"
	"column79/internal/model"
)

func intPtr(n int) *int { return &n }

// chdir changes the working directory for the duration of the test, like
// testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func newServer(t *testing.T, files map[string]string) (*Server, string) {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o644))
	}
	return serve(t, root), root
}

func serve(t *testing.T, root string) *Server {
	t.Helper()
	a, err := app.New(config.PathsFor(t.TempDir(), "column79"), app.Options{
		Command: model.Check,
		Input:   root,
		Overrides: config.Overrides{
			Column:             intPtr(10),
			SeparatorThreshold: intPtr(5),
		},
		In:  strings.NewReader(""),
		Out: &bytes.Buffer{},
	})
	require.NoError(t, err)
	return NewServer(a)
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestCheckReport(t *testing.T) {
	s, root := newServer(t, map[string]string{
		"a.rs": "// abcdefgh\nlet x = 1;\n",
		"b.rs": "fn main() {}\n",
	})

	rec := get(t, s, "/api/check")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var report Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, model.Version, report.Version)
	assert.Equal(t, "cargo", report.Language)
	assert.Equal(t, 10, report.Column)
	assert.Equal(t, 5, report.Threshold)
	assert.Equal(t, []model.Diagnostic{
		{Path: filepath.Join(root, "a.rs"), Row: 1, Length: 11, Line: "// abcdefgh", Language: "rust", Shape: "line-comment"},
		{Path: filepath.Join(root, "b.rs"), Row: 1, Length: 12, Line: "fn main() {}", Language: "rust", Shape: "other"},
	}, report.Diagnostics)
}

func TestCheckReportEmpty(t *testing.T) {
	s, _ := newServer(t, map[string]string{"a.rs": "let x;\n"})

	rec := get(t, s, "/api/check")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"diagnostics": []`)
}

func TestLanguages(t *testing.T) {
	s, _ := newServer(t, nil)

	rec := get(t, s, "/api/languages")
	require.Equal(t, http.StatusOK, rec.Code)

	var langs []language.Source
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &langs))
	byName := make(map[string]language.Source, len(langs))
	for _, l := range langs {
		byName[l.Name] = l
	}
	require.Contains(t, byName, "rust")
	assert.Equal(t, "//", byName["rust"].LineCommentBegin)
	assert.Equal(t, "c", byName["rust"].Base)
	assert.Equal(t, []string{"rust", "toml", "markdown"}, byName["cargo"].Sublanguages)
}

func TestLineContext(t *testing.T) {
	s, root := newServer(t, map[string]string{"a.rs": "1\n2\n3\n4\n5\n6\n"})

	q := url.Values{"file": {filepath.Join(root, "a.rs")}, "line": {"4"}}
	rec := get(t, s, "/api/line-context?"+q.Encode())
	require.Equal(t, http.StatusOK, rec.Code)

	var ctx model.LineContext
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ctx))
	assert.Equal(t, 4, ctx.Row)
	assert.Equal(t, []string{"2", "3"}, ctx.Before)
	assert.Equal(t, "4", ctx.Target)
	assert.Equal(t, []string{"5", "6"}, ctx.After)
}

func TestLineContextForRelativeInput(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, os.Mkdir("src", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("src", "a.rs"), []byte("let x = 1;\n// abcdefgh\n"), 0o644))
	s := serve(t, "src")

	var report Report
	rec := get(t, s, "/api/check")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.Len(t, report.Diagnostics, 1)
	d := report.Diagnostics[0]
	assert.Equal(t, filepath.Join("src", "a.rs"), d.Path)

	q := url.Values{"file": {d.Path}, "line": {strconv.Itoa(d.Row)}}
	rec = get(t, s, "/api/line-context?"+q.Encode())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var ctx model.LineContext
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ctx))
	assert.Equal(t, "// abcdefgh", ctx.Target)
	assert.Equal(t, []string{"let x = 1;"}, ctx.Before)

	rec = get(t, s, "/api/line-context?file=a.rs&line=1")
	assert.Equal(t, http.StatusForbidden, rec.Code, "names resolve against the working directory, not the input")
}

func TestLineContextErrors(t *testing.T) {
	s, root := newServer(t, map[string]string{"a.rs": "only\n"})
	chdir(t, root)
	outside := filepath.Join(t.TempDir(), "x.rs")

	tests := []struct {
		name   string
		target string
		code   int
	}{
		{"missing params", "/api/line-context", http.StatusBadRequest},
		{"bad line", "/api/line-context?file=a.rs&line=abc", http.StatusBadRequest},
		{"zero line", "/api/line-context?file=a.rs&line=0", http.StatusBadRequest},
		{"escape", "/api/line-context?file=../x.rs&line=1", http.StatusForbidden},
		{"outside", "/api/line-context?" + url.Values{"file": {outside}, "line": {"1"}}.Encode(), http.StatusForbidden},
		{"past end", "/api/line-context?file=a.rs&line=9", http.StatusNotFound},
		{"no file", "/api/line-context?file=b.rs&line=1", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, get(t, s, tt.target).Code)
		})
	}
}

func TestIndexPage(t *testing.T) {
	s, _ := newServer(t, nil)

	rec := get(t, s, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/check")
}
