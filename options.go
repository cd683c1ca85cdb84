package concurrentcube

import (
	"io"
	"log/slog"
)

// Option configures Cube behavior.
type Option func(*config)

type config struct {
	hooks  Hooks
	logger *slog.Logger
}

func defaultConfig() *config {
	return &config{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithBeforeRotation sets the function called right before a rotation is
// applied, with the face and layer as requested. It runs on the rotating
// goroutine while the layer lock is held.
func WithBeforeRotation(fn func(face, layer int)) Option {
	return func(c *config) {
		c.hooks.BeforeRotation = fn
	}
}

// WithAfterRotation sets the function called right after a rotation is
// applied, before the layer lock is released.
func WithAfterRotation(fn func(face, layer int)) Option {
	return func(c *config) {
		c.hooks.AfterRotation = fn
	}
}

// WithBeforeShowing sets the function called before a snapshot is read.
func WithBeforeShowing(fn func()) Option {
	return func(c *config) {
		c.hooks.BeforeShowing = fn
	}
}

// WithAfterShowing sets the function called after a snapshot is read.
func WithAfterShowing(fn func()) Option {
	return func(c *config) {
		c.hooks.AfterShowing = fn
	}
}

// WithHooks installs all four hooks at once, replacing any set before.
// Use Chain to combine several hook sets.
func WithHooks(h Hooks) Option {
	return func(c *config) {
		c.hooks = h
	}
}

// WithLogger sets the logger for admission and cancellation events.
// By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
