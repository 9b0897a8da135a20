// Package section defines the fixed-size header at the start of a binary
// container envelope.
//
// # Envelope Layout
//
// All multi-byte integers are little-endian.
//
//	Offset  Size  Field
//	0       4     Magic "VCNT"
//	4       1     Format version (currently 1)
//	5       1     Flags (bit 0: checksum trailer present)
//	6       2     Reserved, must be zero
//	8       4     MaxValues of the encoded container
//	12      4     ValueCount, number of top-level values
//
// The header is followed by six length-prefixed UTF-8 strings (source id,
// source sub id, target id, target sub id, message type, version), then
// ValueCount encoded values, then an 8-byte xxHash64 of everything before it
// when the checksum flag is set.
package section
