package packetserial

// Stream is a bidirectional byte stream, such as a serial port.
type Stream interface {
	Source
	Sink
}

// Serial is a packet endpoint on a single stream: a Reassembler for inbound
// bytes and a Framer for outbound packets, sharing one codec and marker.
type Serial struct {
	stream Stream
	rx     *Reassembler
	tx     *Framer
}

// New returns a Serial that frames packets on stream as described by cfg.
func New(cfg Config, stream Stream, opts ...Option) (*Serial, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	codec, marker, err := cfg.resolve()
	if err != nil {
		return nil, err
	}

	o := newOptions(opts)
	logger := o.logger.With().Str("codec", cfg.Codec).Logger()
	rx, err := NewReassembler(codec, marker, cfg.BufferSize, WithLogger(logger))
	if err != nil {
		return nil, err
	}

	return &Serial{
		stream: stream,
		rx:     rx,
		tx:     NewFramer(codec, marker, stream, WithLogger(logger)),
	}, nil
}

// Update drains every byte the stream has ready, dispatching any packets that
// complete.  Call it regularly from the host's main loop.
func (s *Serial) Update() (int, error) {
	if s.stream == nil {
		return 0, nil
	}
	return s.rx.Drain(s.stream)
}

// Send encodes payload and writes it to the stream as one packet.
func (s *Serial) Send(payload []byte) error {
	return s.tx.Send(payload)
}

// Write sends p as one packet.
func (s *Serial) Write(p []byte) (int, error) {
	return s.tx.Write(p)
}

// SetHandler registers the function that receives decoded packets, replacing
// any previous one.
func (s *Serial) SetHandler(handler Handler) {
	s.rx.SetHandler(handler)
}

// Overflow reports whether inbound bytes have been dropped since the last
// marker.
func (s *Serial) Overflow() bool {
	return s.rx.Overflow()
}

// Stats returns the receive-side counters.
func (s *Serial) Stats() Stats {
	return s.rx.Stats()
}

// Reassembler returns the receive side of s.
func (s *Serial) Reassembler() *Reassembler {
	return s.rx
}
