package packetserial

import (
	"github.com/rs/zerolog"
)

// Option customizes a Reassembler, Framer or Serial.
type Option func(o *options)

type options struct {
	logger zerolog.Logger
}

// WithLogger sets the logger used for diagnostics such as overflows and
// undecodable packets.  Everything is logged at debug level.  By default
// nothing is logged.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newOptions(opts []Option) options {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
