package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// DefaultErrorMessage is the message Error entries carry unless
// WithErrorMessage overrides it.
const DefaultErrorMessage = "operation failed"

type ZerologAdapter struct {
	logger       zerolog.Logger
	errorMessage string
}

type ZerologOption func(*ZerologAdapter)

// WithErrorMessage sets the message written with every Error entry. The
// error text itself goes to the "error" field.
func WithErrorMessage(message string) ZerologOption {
	return func(z *ZerologAdapter) { z.errorMessage = message }
}

// WithStack adds the stack recorded by github.com/pkg/errors to Error
// entries, under the "stack" field.
func WithStack() ZerologOption {
	return func(z *ZerologAdapter) {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		z.logger = z.logger.With().Stack().Logger()
	}
}

// NewZerolog writes JSON lines to writer.
func NewZerolog(writer io.Writer, level LogLevel, opts ...ZerologOption) *ZerologAdapter {
	z := &ZerologAdapter{
		logger: zerolog.New(writer).
			Level(level.zerolog()).
			With().
			Timestamp().
			Logger(),
		errorMessage: DefaultErrorMessage,
	}
	for _, opt := range opts {
		opt(z)
	}
	return z
}

// NewConsoleLogger writes human readable lines to stderr so that stdout
// stays free for results.
func NewConsoleLogger(level LogLevel, opts ...ZerologOption) *ZerologAdapter {
	return NewZerolog(zerolog.ConsoleWriter{Out: os.Stderr}, level, opts...)
}

func emit(event *zerolog.Event, component, message string, fields map[string]interface{}) {
	event.Str("component", component).Fields(fields).Msg(message)
}

func (z *ZerologAdapter) Info(component, message string, fields map[string]interface{}) {
	emit(z.logger.Info(), component, message, fields)
}

func (z *ZerologAdapter) Error(component string, err error, fields map[string]interface{}) {
	emit(z.logger.Error().Err(err), component, z.errorMessage, fields)
}

func (z *ZerologAdapter) Warning(component, message string, fields map[string]interface{}) {
	emit(z.logger.Warn(), component, message, fields)
}

func (z *ZerologAdapter) Debug(component, message string, fields map[string]interface{}) {
	emit(z.logger.Debug(), component, message, fields)
}
