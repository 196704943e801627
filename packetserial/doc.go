// Package packetserial frames discrete packets over a byte stream that has no
// message boundaries of its own, such as a UART or a USB-CDC link.
//
// Outbound packets are byte-stuffed with a Codec (COBS or SLIP) and followed by
// a single marker byte; see Framer.  Inbound bytes are fed one at a time to a
// Reassembler, which collects them into a fixed-capacity buffer and, whenever
// it sees the marker, decodes the buffer and hands the packet to a Handler.
// Serial ties both directions of one stream together.
//
// Nothing in this package blocks or starts goroutines on its own (apart from
// ReaderSource, which exists to adapt blocking readers).  The host is expected
// to poll:
//
//	s, err := packetserial.New(packetserial.DefaultConfig(), stream)
//	if err != nil {
//	    return err
//	}
//	s.SetHandler(func(packet []byte) {
//	    // packet is only valid until the handler returns
//	})
//	for range ticker.C {
//	    if _, err := s.Update(); err != nil {
//	        return err
//	    }
//	}
//
// Reassembler, Framer and Serial are meant to be owned by a single goroutine
// and do no locking.  The codecs themselves are stateless and safe for
// concurrent use.
package packetserial
