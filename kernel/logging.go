package kernel

import (
	"io"
	"os"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Logger wraps a logiface.Logger[*stumpy.Event] with the NO_COLOR/
// FORCE_COLOR behaviour the external-interfaces contract requires:
// stumpy itself emits structured JSON with no ANSI codes at all, so
// these variables gate only a convenience coloured one-line mirror
// written alongside the JSON record, matching the no-color.org
// convention (NO_COLOR wins if both are set).
type Logger struct {
	base  *logiface.Logger[*stumpy.Event]
	mirror io.Writer
	color  bool
}

// NewLogger constructs a Logger writing structured JSON to w (typically
// os.Stderr), reading NO_COLOR/FORCE_COLOR from the process environment
// once at construction.
func NewLogger(w io.Writer) *Logger {
	_, noColor := os.LookupEnv("NO_COLOR")
	_, forceColor := os.LookupEnv("FORCE_COLOR")
	color := forceColor && !noColor

	return &Logger{
		base:   stumpy.L.New(stumpy.WithStumpy(stumpy.WithWriter(w))),
		mirror: w,
		color:  color,
	}
}

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiCyan  = "\x1b[36m"
)

// Info logs an informational-level structured event.
func (l *Logger) Info(msg string, fields ...KV) {
	l.log(l.base.Info(), ansiCyan, msg, fields)
}

// Error logs an error-level structured event.
func (l *Logger) Error(msg string, err error, fields ...KV) {
	b := l.base.Err()
	if err != nil {
		b = b.Err(err)
	}
	l.log(b, ansiRed, msg, fields)
}

// KV is a single structured logging field.
type KV struct {
	Key   string
	Value string
}

// Field constructs a KV pair.
func Field(key, value string) KV { return KV{Key: key, Value: value} }

func (l *Logger) log(b *logiface.Builder[*stumpy.Event], color, msg string, fields []KV) {
	for _, f := range fields {
		b = b.Str(f.Key, f.Value)
	}
	b.Log(msg)

	if l.color && l.mirror != nil {
		io.WriteString(l.mirror, color+msg+ansiReset+"\n")
	}
}
