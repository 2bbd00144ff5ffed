package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/pingcap/errors"
	"github.com/rs/zerolog"
)

// New returns a logger writing to stderr.
func New(level, format string) (zerolog.Logger, error) {
	return NewWithWriter(os.Stderr, level, format)
}

// NewWithWriter returns a logger writing to w. format "json" writes one JSON
// object per line, anything else a human readable console format. An empty
// level means info.
func NewWithWriter(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return zerolog.Logger{}, errors.WithMessage(err, "invalid log level")
		}
		lvl = parsed
	}

	out := w
	if format != "json" {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		}
	}

	return zerolog.New(out).Level(lvl).With().
		Timestamp().
		Str("component", "snowforge").
		Logger(), nil
}
