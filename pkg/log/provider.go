package log

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/YuminosukeSato/scitree/pkg/errors"
)

// Provider hands out zerolog-backed loggers that share one writer and level.
type Provider struct {
	mu     sync.RWMutex
	w      io.Writer
	level  Level
	logger Logger
}

// NewProvider creates a Provider writing JSON lines to w.
func NewProvider(w io.Writer, level Level) *Provider {
	return &Provider{w: w, level: level, logger: NewZerologLogger(w, level)}
}

// GetLogger implements LoggerProvider.GetLogger.
func (p *Provider) GetLogger() Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.logger
}

// GetLoggerWithName implements LoggerProvider.GetLoggerWithName.
func (p *Provider) GetLoggerWithName(name string) Logger {
	return p.GetLogger().With(ComponentKey, name)
}

// SetLevel implements LoggerProvider.SetLevel.
func (p *Provider) SetLevel(level Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
	p.logger = NewZerologLogger(p.w, level)
}

var (
	globalMu sync.RWMutex
	// Library code is silent until SetupLogger or SetProvider is called.
	global LoggerProvider = nopProvider{}
)

// SetupLogger installs a JSON logger on stderr at the named level
// ("debug", "info", "warn", "error") and routes library warnings to it.
func SetupLogger(loglevel string) error {
	level, err := ParseLevel(loglevel)
	if err != nil {
		return err
	}
	SetupLoggerWithWriter(os.Stderr, level)
	return nil
}

// SetupLoggerWithWriter is SetupLogger with an explicit destination.
func SetupLoggerWithWriter(w io.Writer, level Level) {
	p := NewProvider(w, level)
	SetProvider(p)
	warnLogger := p.GetLoggerWithName("warnings")
	errors.SetZerologWarnFunc(func(w error) {
		warnLogger.Warn(w.Error(), "warning", w)
	})
}

// SetProvider replaces the global provider.
func SetProvider(p LoggerProvider) {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = p
}

// GetLogger returns the global default logger.
func GetLogger() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return global.GetLogger()
}

// GetLoggerWithName returns the global logger tagged with a component name.
func GetLoggerWithName(name string) Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return global.GetLoggerWithName(name)
}

// ParseLevel converts a level name to a Level.
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, errors.NewValidationError("log_level", "must be one of debug, info, warn, error", level)
	}
}

type nopProvider struct{}

func (nopProvider) GetLogger() Logger                 { return NewNopLogger() }
func (nopProvider) GetLoggerWithName(_ string) Logger { return NewNopLogger() }
func (nopProvider) SetLevel(Level)                    {}

var _ LoggerProvider = (*Provider)(nil)
