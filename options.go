package beans

import (
	"log/slog"

	"github.com/google/uuid"
)

// Option configures a Context.
type Option interface {
	apply(*options)
}

// options holds Context configuration.
type options struct {
	id     string
	logger *slog.Logger
}

// optionFunc adapts a function to Option.
type optionFunc func(*options)

func (f optionFunc) apply(opts *options) {
	f(opts)
}

func defaultOptions() *options {
	return &options{
		id:     uuid.NewString(),
		logger: slog.New(slog.DiscardHandler),
	}
}

// WithLogger sets the structured logger used for startup and bean lifecycle
// records. A nil logger keeps the default, which discards everything.
func WithLogger(logger *slog.Logger) Option {
	return optionFunc(func(opts *options) {
		if logger != nil {
			opts.logger = logger
		}
	})
}

// WithID sets the Context identifier attached to every log record. By
// default each Context gets a random UUID.
func WithID(id string) Option {
	return optionFunc(func(opts *options) {
		if id != "" {
			opts.id = id
		}
	})
}
