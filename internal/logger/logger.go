package logger

import (
	"io"
	"log"
	"os"
)

// Log flags
const (
	LstdFlags     = log.LstdFlags
	Lmicroseconds = log.Lmicroseconds
)

// Logger wraps the standard log.Logger. Diagnostics go to stderr by default so
// stdout only carries the miner's report protocol.
type Logger struct {
	*log.Logger
}

// New creates a logger writing to stderr
func New() *Logger {
	return NewWriter(os.Stderr)
}

// NewWriter creates a new logger that writes to the provided writer
func NewWriter(w io.Writer) *Logger {
	return &Logger{
		Logger: log.New(w, "", LstdFlags),
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewWriter(io.Discard)
}
