package packetserial

import (
	"bufio"
	"io"
	"sync"
)

// Source is where a Reassembler gets its bytes.  Available must not block;
// ReadByte is only called after Available has returned true.
type Source interface {
	Available() bool
	io.ByteReader
}

// Sink is where a Framer writes encoded packets.  *bytes.Buffer and
// *bufio.Writer satisfy it directly; see NewWriterSink for plain writers.
type Sink interface {
	io.Writer
	io.ByteWriter
}

type bufferedSource struct {
	r *bufio.Reader
}

// NewBufferedSource returns a Source that reads from r, and that reports bytes
// as available only while r already has them buffered.
func NewBufferedSource(r *bufio.Reader) Source {
	return bufferedSource{r}
}

func (s bufferedSource) Available() bool { return s.r.Buffered() > 0 }
func (s bufferedSource) ReadByte() (byte, error) { return s.r.ReadByte() }

// LenReader is a byte reader that knows how many unread bytes it holds, such
// as *bytes.Buffer, *bytes.Reader or *strings.Reader.
type LenReader interface {
	io.ByteReader
	Len() int
}

type lenSource struct {
	LenReader
}

// NewLenSource returns a Source backed by an in-memory reader.
func NewLenSource(r LenReader) Source {
	return lenSource{r}
}

func (s lenSource) Available() bool { return s.Len() > 0 }

type writerSink struct {
	io.Writer
	b [1]byte
}

// NewWriterSink adapts w to a Sink.  If w already has a WriteByte method it is
// returned unchanged.
func NewWriterSink(w io.Writer) Sink {
	if s, ok := w.(Sink); ok {
		return s
	}
	return &writerSink{Writer: w}
}

func (s *writerSink) WriteByte(c byte) error {
	s.b[0] = c
	_, err := s.Write(s.b[:])
	return err
}

// DefaultChunkSize is the read size ReaderSource uses when none is given.
const DefaultChunkSize = 256

// ReaderSource adapts a blocking io.Reader, such as an open serial port, into
// a Source.  A background goroutine reads from the reader and queues what it
// gets; Available only looks at that queue.
//
// ReaderSource is not safe for concurrent use, apart from Close.
type ReaderSource struct {
	chunks    chan []byte
	done      chan struct{}
	closeOnce sync.Once

	cur []byte
	eof bool
	// err is written by the reading goroutine before it closes chunks, and
	// only read once chunks has been seen closed.
	err error
}

// NewReaderSource starts reading from r in chunks of up to chunkSize bytes.
func NewReaderSource(r io.Reader, chunkSize int) *ReaderSource {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	s := &ReaderSource{
		chunks: make(chan []byte, 16),
		done:   make(chan struct{}),
	}
	go s.pump(r, chunkSize)
	return s
}

func (s *ReaderSource) pump(r io.Reader, chunkSize int) {
	defer close(s.chunks)
	for {
		buf := make([]byte, chunkSize)
		n, err := r.Read(buf)
		if n > 0 {
			select {
			case s.chunks <- buf[:n]:
			case <-s.done:
				return
			}
		}
		if err != nil {
			s.err = err
			return
		}
	}
}

// Available reports whether a byte can be read without waiting.
func (s *ReaderSource) Available() bool {
	if len(s.cur) > 0 {
		return true
	}
	if s.eof {
		return false
	}
	select {
	case chunk, ok := <-s.chunks:
		return s.take(chunk, ok)
	default:
		return false
	}
}

// ReadByte returns the next byte, waiting for one if none is queued.  Once the
// underlying reader has failed it returns the reader's error.
func (s *ReaderSource) ReadByte() (byte, error) {
	if len(s.cur) == 0 {
		if s.eof {
			return 0, s.readErr()
		}
		chunk, ok := <-s.chunks
		if !s.take(chunk, ok) {
			return 0, s.readErr()
		}
	}
	b := s.cur[0]
	s.cur = s.cur[1:]
	return b, nil
}

func (s *ReaderSource) take(chunk []byte, ok bool) bool {
	if !ok {
		s.eof = true
		return false
	}
	s.cur = chunk
	return true
}

func (s *ReaderSource) readErr() error {
	if s.err == nil {
		return io.EOF
	}
	return s.err
}

// Err returns the error that stopped the underlying reader (io.EOF for a clean
// end of stream), or nil while it is still running or has unread data.
func (s *ReaderSource) Err() error {
	if !s.eof {
		return nil
	}
	return s.readErr()
}

// Close stops queueing data.  It does not interrupt a Read that is already
// blocked; close the underlying reader for that.
func (s *ReaderSource) Close() error {
	s.closeOnce.Do(func() { close(s.done) })
	return nil
}
