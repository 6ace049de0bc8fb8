package model

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode"
)

// MaxLineBytes bounds a single physical line read from a source file.
const MaxLineBytes = 10 * 1024 * 1024

// LineContext is a line from a file together with its neighbours.
type LineContext struct {
	Path   string   `json:"path"`
	Row    int      `json:"row"`    // 1-based row of Target
	Before []string `json:"before"` // Up to radius lines above Target, in file order
	Target string   `json:"target"`
	After  []string `json:"after"` // Up to radius lines below Target
}

// NewLineScanner returns a scanner sized for long source lines.
func NewLineScanner(f *os.File) *bufio.Scanner {
	scanner := bufio.NewScanner(f)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, MaxLineBytes)
	return scanner
}

// TrimLine strips the trailing whitespace the inspectors ignore.
func TrimLine(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

// ReadLineContext reads path and returns row with radius lines on either side.
func ReadLineContext(path string, row, radius int) (LineContext, error) {
	result := LineContext{Path: path, Row: row}

	// Expand tilde in file path
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = strings.Replace(path, "~", home, 1)
		}
	}

	file, err := os.Open(path)
	if err != nil {
		return result, IOError("open", path, err)
	}
	defer file.Close()

	scanner := NewLineScanner(file)
	current := 0
	found := false
	for scanner.Scan() {
		current++
		switch {
		case current < row-radius:
			continue
		case current < row:
			result.Before = append(result.Before, TrimLine(scanner.Text()))
		case current == row:
			result.Target = TrimLine(scanner.Text())
			found = true
		case current <= row+radius:
			result.After = append(result.After, TrimLine(scanner.Text()))
		}
		if current >= row+radius {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return result, IOError("read", path, err)
	}

	if row < 1 || !found {
		return result, &Error{
			Kind: ErrLineRange,
			Op:   "line context",
			Path: path,
			Err:  fmt.Errorf("row %d of %d", row, current),
		}
	}
	return result, nil
}
