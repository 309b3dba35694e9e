package logging

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels passed to logr's V
const (
	Info  = 0 // Lifecycle and errors
	Debug = 1 // Barrier phase, lane set and density changes
	Trace = 2 // Every spawn and removal
)

// Options configures the process logger
type Options struct {
	Development bool     // Console encoder and stack traces on warnings
	Verbosity   int      // Highest V level that is written
	OutputPaths []string // zap sink URLs, stderr when empty
}

// New builds a logr.Logger backed by zap. The returned func flushes
// buffered entries and should be deferred by the caller.
func New(opts Options) (logr.Logger, func(), error) {
	cfg := zap.NewProductionConfig()
	if opts.Development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-opts.Verbosity))
	if len(opts.OutputPaths) > 0 {
		cfg.OutputPaths = opts.OutputPaths
	}
	// Per-tick entries repeat by nature, keep every one
	cfg.Sampling = nil

	zl, err := cfg.Build(zap.AddCaller())
	if err != nil {
		return logr.Discard(), func() {}, fmt.Errorf("building zap logger: %w", err)
	}
	return zapr.NewLogger(zl), func() { _ = zl.Sync() }, nil
}

// NewTestLogger creates a development logger that writes everything
// up to Trace.
func NewTestLogger() logr.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-Trace))
	zl, err := cfg.Build(zap.AddCaller())
	if err != nil {
		return logr.Discard()
	}
	return zapr.NewLogger(zl)
}
