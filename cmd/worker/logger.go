package main

import (
	"github.com/rs/zerolog"
)

// zerologAdapter bridges zerolog into the Temporal SDK logger interface.
type zerologAdapter struct {
	logger zerolog.Logger
}

func newZerologAdapter(logger zerolog.Logger) *zerologAdapter {
	return &zerologAdapter{logger: logger}
}

func (a *zerologAdapter) fields(keyvals []interface{}) *zerolog.Logger {
	ctx := a.logger.With()
	for i := 0; i+1 < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			continue
		}
		ctx = ctx.Interface(key, keyvals[i+1])
	}
	logger := ctx.Logger()
	return &logger
}

func (a *zerologAdapter) Debug(msg string, keyvals ...interface{}) {
	a.fields(keyvals).Debug().Msg(msg)
}

func (a *zerologAdapter) Info(msg string, keyvals ...interface{}) {
	a.fields(keyvals).Info().Msg(msg)
}

func (a *zerologAdapter) Warn(msg string, keyvals ...interface{}) {
	a.fields(keyvals).Warn().Msg(msg)
}

func (a *zerologAdapter) Error(msg string, keyvals ...interface{}) {
	a.fields(keyvals).Error().Msg(msg)
}
