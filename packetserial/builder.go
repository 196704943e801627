package packetserial

import (
	"bytes"
)

// PacketBuilder collects the raw payloads of several packets in one buffer, so
// that a batch can be framed with a single write to the stream.  Payload bytes
// are written through the embedded bytes.Buffer; FinishPacket closes the
// current payload.  The builder holds no codec: the codec and marker are
// chosen when the batch is passed to Encode, so the same batch can be framed
// for either COBS or SLIP.
type PacketBuilder struct {
	bytes.Buffer
	start   int
	packets []span
}

type span struct {
	start, end int
}

// FinishPacket ends the current packet at the buffer's current length.  Calling
// it with nothing written since the last call records an empty packet.
func (pb *PacketBuilder) FinishPacket() {
	end := pb.Len()
	pb.packets = append(pb.packets, span{pb.start, end})
	pb.start = end
}

// Packets returns the number of finished packets.
func (pb *PacketBuilder) Packets() int {
	return len(pb.packets)
}

// Reset discards all packets, finished or not.
func (pb *PacketBuilder) Reset() {
	pb.Buffer.Reset()
	pb.start = 0
	pb.packets = pb.packets[:0]
}

// Encode appends every finished packet to dest as a frame: the packet encoded
// with codec, then marker.  Bytes written after the last FinishPacket are not
// framed.  Unlike Framer.Send, an empty packet is not skipped; it is written as
// the codec's encoding of no bytes (0x01 for COBS, 0xC0 for SLIP) plus the
// marker, and a receiver delivers it as an empty packet.
func (pb *PacketBuilder) Encode(codec Codec, marker byte, dest *bytes.Buffer) {
	content := pb.Bytes()
	for _, p := range pb.packets {
		packet := content[p.start:p.end]
		size := codec.MaxEncodedSize(len(packet))
		dest.Grow(size + 1)
		encoded := dest.AvailableBuffer()[:size]
		n := codec.Encode(encoded, packet)
		dest.Write(encoded[:n])
		dest.WriteByte(marker)
	}
}
