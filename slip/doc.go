// Package slip provides the Serial Line IP (RFC 1055) byte stuffing used for
// framing packets on a serial link.  The END byte marks packet boundaries;
// occurrences of END and ESC inside a payload are replaced by two-byte escape
// sequences.
//
// Unlike COBS, SLIP has no fixed overhead bound per run: every byte of the
// payload may need escaping, so MaxEncodedSize is roughly twice the payload
// size.
package slip
