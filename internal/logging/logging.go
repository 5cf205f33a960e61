// Package logging adapts zerolog to the rbxcloud.Logger interface used by
// the HTTP transport for debug output.
package logging

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/rbxsync-io/rbxsync/pkg/rbxcloud"
)

// Logger is a zerolog-backed rbxcloud.Logger.
type Logger struct {
	zl zerolog.Logger
}

var _ rbxcloud.Logger = (*Logger)(nil)

// New creates a console logger writing to w at the given level.
func New(w io.Writer, level zerolog.Level) *Logger {
	zl := zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()

	return &Logger{zl: zl}
}

// Debug implements rbxcloud.Logger.Debug.
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.zl.Debug().Fields(fields).Msg(msg)
}

// Info implements rbxcloud.Logger.Info.
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.zl.Info().Fields(fields).Msg(msg)
}

// Warn implements rbxcloud.Logger.Warn.
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.zl.Warn().Fields(fields).Msg(msg)
}

// Error implements rbxcloud.Logger.Error.
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.zl.Error().Fields(fields).Msg(msg)
}
