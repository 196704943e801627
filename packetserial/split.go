package packetserial

import (
	"bufio"
	"bytes"
)

// SplitFunc returns a bufio.SplitFunc that splits an encoded stream into
// frames at each marker.  The tokens are still encoded, without the marker;
// empty frames produce empty tokens.  Trailing bytes with no marker after them
// are not a complete frame, and are dropped at EOF.
func SplitFunc(marker byte) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (advance int, token []byte, err error) {
		if i := bytes.IndexByte(data, marker); i >= 0 {
			return i + 1, data[:i], nil
		}
		return 0, nil, nil
	}
}
