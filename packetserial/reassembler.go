package packetserial

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// MinBufferSize is the smallest receive buffer a Reassembler accepts.  One
// slot is always kept free, so a buffer of size n holds at most n-1 encoded
// bytes.
const MinBufferSize = 2

// DefaultBufferSize is the receive buffer size used by DefaultConfig.
const DefaultBufferSize = 256

var (
	// ErrBufferSize is the error that is returned when a receive buffer is
	// too small to hold anything.
	ErrBufferSize = errors.New("packetserial: receive buffer too small")

	// ErrNoCodec is the error that is returned when a Reassembler is built
	// without a codec.
	ErrNoCodec = errors.New("packetserial: no codec")
)

// Handler receives decoded packets.  packet aliases scratch space owned by the
// Reassembler and is only valid until the handler returns; copy it to keep
// it.  A handler may feed more bytes into the Reassembler that called it.
type Handler func(packet []byte)

// Stats counts what a Reassembler has seen since it was created.
type Stats struct {
	// Packets is the number of packets handed to a handler, including empty
	// ones.
	Packets uint64
	// EmptyPackets is the number of zero-length packets that decoded
	// cleanly.
	EmptyPackets uint64
	// DecodeErrors is the number of packets whose encoding was malformed.
	// These are dispatched as empty packets.
	DecodeErrors uint64
	// Overflows is the number of times the receive buffer filled up before a
	// marker arrived.
	Overflows uint64
	// DroppedBytes is the number of bytes discarded because of overflows.
	DroppedBytes uint64
}

// Reassembler turns a stream of encoded bytes into decoded packets.
type Reassembler struct {
	codec    Codec
	marker   byte
	buf      []byte
	n        int
	overflow bool
	handler  Handler

	// One decode buffer per level of handler re-entrancy, so that a nested
	// dispatch never overwrites a packet that an outer handler is still
	// looking at.
	scratch [][]byte
	depth   int

	stats  Stats
	logger zerolog.Logger
}

// NewReassembler returns a Reassembler that decodes packets with codec,
// splitting the stream at marker.  capacity is the size of the receive buffer,
// which is allocated once and never grows.
func NewReassembler(codec Codec, marker byte, capacity int, opts ...Option) (*Reassembler, error) {
	if codec == nil {
		return nil, ErrNoCodec
	}
	if capacity < MinBufferSize {
		return nil, fmt.Errorf("%w: %d < %d", ErrBufferSize, capacity, MinBufferSize)
	}
	o := newOptions(opts)
	return &Reassembler{
		codec:  codec,
		marker: marker,
		buf:    make([]byte, capacity),
		logger: o.logger,
	}, nil
}

// SetHandler registers the function that receives decoded packets, replacing
// any previous one.  A nil handler unregisters; packets are then discarded.
func (r *Reassembler) SetHandler(handler Handler) {
	r.handler = handler
}

// ConsumeByte feeds one byte from the stream into the reassembler.
func (r *Reassembler) ConsumeByte(b byte) {
	if b == r.marker {
		r.dispatch()
		return
	}

	if r.n+1 < len(r.buf) {
		r.buf[r.n] = b
		r.n++
		return
	}

	if !r.overflow {
		r.overflow = true
		r.stats.Overflows++
		r.logger.Debug().
			Int("capacity", len(r.buf)).
			Msg("receive buffer full, dropping bytes until next marker")
	}
	r.stats.DroppedBytes++
}

// Drain consumes bytes from src until it has none ready, and returns the
// number of bytes consumed.  It never waits for data.  io.EOF from src ends
// the drain quietly; any other read error is returned.
func (r *Reassembler) Drain(src Source) (int, error) {
	if src == nil {
		return 0, nil
	}
	consumed := 0
	for src.Available() {
		b, err := src.ReadByte()
		if errors.Is(err, io.EOF) {
			return consumed, nil
		}
		if err != nil {
			return consumed, fmt.Errorf("packetserial: reading byte: %w", err)
		}
		consumed++
		r.ConsumeByte(b)
	}
	return consumed, nil
}

// Overflow reports whether any bytes have been dropped since the last marker.
// Asking does not clear the flag; only the next marker does.
func (r *Reassembler) Overflow() bool {
	return r.overflow
}

// Buffered returns the number of encoded bytes waiting for a marker.
func (r *Reassembler) Buffered() int {
	return r.n
}

// Capacity returns the size of the receive buffer.
func (r *Reassembler) Capacity() int {
	return len(r.buf)
}

// Reset discards any partial packet and clears the overflow flag, as if a
// marker had arrived with no handler registered.
func (r *Reassembler) Reset() {
	r.clear()
}

// Stats returns a snapshot of the reassembler's counters.
func (r *Reassembler) Stats() Stats {
	return r.stats
}

func (r *Reassembler) clear() {
	r.n = 0
	r.overflow = false
}

func (r *Reassembler) dispatch() {
	handler := r.handler
	if handler == nil {
		r.clear()
		return
	}

	if r.depth == len(r.scratch) {
		r.scratch = append(r.scratch, make([]byte, len(r.buf)))
	}
	scratch := r.scratch[r.depth]
	n, err := r.codec.Decode(scratch, r.buf[:r.n])
	if err != nil {
		r.stats.DecodeErrors++
		r.logger.Debug().
			Err(err).
			Int("length", r.n).
			Bool("overflow", r.overflow).
			Msg("undecodable packet")
		n = 0
	} else if n == 0 {
		r.stats.EmptyPackets++
	}
	r.stats.Packets++

	// The buffer must be free before the handler runs, since the handler is
	// allowed to feed us more bytes.
	r.clear()

	r.depth++
	defer func() { r.depth-- }()
	handler(scratch[:n])
}
