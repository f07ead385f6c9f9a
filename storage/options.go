package storage

import (
	"go.uber.org/zap"
)

type options struct {
	logger *zap.Logger
}

// Option configures a store
type Option func(*options)

// WithLogger sets the logger used for skipped and corrupt records
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
