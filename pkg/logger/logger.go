// Package logger holds the process-wide zerolog logger of the portal.
//
// Call Init once from the command entry point; everything else receives the
// logger through its constructor or reads it with Get.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options configures Init.
type Options struct {
	// Level is trace, debug, info, warn or error. Anything else means info.
	Level string
	// Pretty switches to the coloured console writer for local runs.
	Pretty bool
	// Output defaults to os.Stdout.
	Output  io.Writer
	Service string
}

var (
	mu      sync.RWMutex
	current *zerolog.Logger
)

// Init builds the process logger. Only the first call has an effect; later
// calls return the logger already built.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if current != nil {
		return *current
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05.000"}
	}

	lvl := parseLevel(opts.Level)
	zerolog.SetGlobalLevel(lvl)

	b := zerolog.New(out).Level(lvl).With().Timestamp()
	if opts.Service != "" {
		b = b.Str("service", opts.Service)
	}
	l := b.Logger()
	current = &l
	return l
}

// Get returns the process logger. It panics before Init.
func Get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		panic("logger: Get() called before Init()")
	}
	return *current
}

// Reset forgets the process logger. Tests only.
func Reset() {
	mu.Lock()
	current = nil
	mu.Unlock()
}

// ForTab tags l with the browser tab and device a scope serves. The device id
// is shortened to its first block.
func ForTab(l zerolog.Logger, tabID, deviceID string) zerolog.Logger {
	if i := strings.IndexByte(deviceID, '-'); i > 0 {
		deviceID = deviceID[:i]
	}
	return l.With().Str("tab", tabID).Str("device", deviceID).Logger()
}

func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" || lvl > zerolog.ErrorLevel || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
