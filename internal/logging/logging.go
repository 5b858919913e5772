// Package logging builds the logr.Logger used across the tool. Output goes
// through a standard log.Logger, one line per entry, to the configured file;
// without a file everything is discarded.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// New returns a logger writing to w at the given verbosity. Entries are
// prefixed with their logger name in brackets, e.g. "[store] opened".
func New(w io.Writer, verbosity int) logr.Logger {
	std := log.New(w, "", log.LstdFlags)
	return funcr.New(func(prefix, args string) {
		switch {
		case prefix != "" && args != "":
			std.Printf("[%s] %s", prefix, args)
		case prefix != "":
			std.Printf("[%s]", prefix)
		default:
			std.Print(args)
		}
	}, funcr.Options{Verbosity: verbosity})
}

// Open returns a logger appending to path, creating its directory. An empty
// path yields a discarding logger. Close the returned closer when done.
func Open(path string, verbosity int) (logr.Logger, io.Closer, error) {
	if path == "" {
		return logr.Discard(), nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return logr.Discard(), nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return logr.Discard(), nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return New(f, verbosity), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
