package engine

import "log/slog"

type config struct {
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*config)

// WithLogger sets the logger for lifecycle events. The audio path never logs.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func applyOptions(opts []Option) config {
	cfg := config{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
