// Package logging builds the structured logger shared by the transports and
// the extraction pipeline.
package logging

import (
	"io"
	"os"

	"github.com/phuslu/log"
)

// Options controls logger construction.
type Options struct {
	Level string
	// Console selects human-readable output; otherwise entries are JSON.
	Console bool
	Writer  io.Writer
}

// New returns a logger writing to opts.Writer (stderr when nil).
func New(opts Options) *log.Logger {
	out := opts.Writer
	if out == nil {
		out = os.Stderr
	}

	logger := &log.Logger{
		Level:      log.ParseLevel(opts.Level),
		TimeFormat: "15:04:05",
	}
	if opts.Console {
		logger.Writer = &log.ConsoleWriter{Writer: out}
	} else {
		logger.Writer = &log.IOWriter{Writer: out}
	}
	return logger
}

// ForMode returns the logger for a run mode. Stdout carries the MCP protocol
// in stdio mode, so logging goes to stderr and stays at error level unless
// debugging.
func ForMode(level string, stdio bool) *log.Logger {
	if stdio {
		if level != "debug" {
			level = "error"
		}
		return New(Options{Level: level})
	}
	return New(Options{Level: level, Console: true})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return &log.Logger{
		Level:  log.PanicLevel,
		Writer: &log.IOWriter{Writer: io.Discard},
	}
}
