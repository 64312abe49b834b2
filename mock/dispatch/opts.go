package dispatch

import "go.uber.org/zap"

type dispatchOpts struct {
	logger *zap.Logger
	name   string
}

type Opt func(o dispatchOpts) dispatchOpts

// Set the logger misses and dispatches are written to. Nothing is logged by default.
func WithLogger(logger *zap.Logger) Opt {
	return func(o dispatchOpts) dispatchOpts {
		o.logger = logger
		return o
	}
}

// Set a name for the dispatcher, that will be used in log messages
func Name(name string) Opt {
	return func(o dispatchOpts) dispatchOpts {
		o.name = name
		return o
	}
}
