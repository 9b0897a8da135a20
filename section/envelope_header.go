package section

import (
	"fmt"

	"github.com/arloliu/valuecontainer/endian"
	"github.com/arloliu/valuecontainer/errs"
)

const (
	HeaderSize     = 16 // fixed envelope header size in bytes
	FormatVersion  = 1  // current envelope format version
	ChecksumSize   = 8  // size of the xxHash64 trailer
	FlagChecksum   = 0x01
	validFlagsMask = FlagChecksum
)

// Magic identifies a binary container envelope.
var Magic = [4]byte{'V', 'C', 'N', 'T'}

// EnvelopeHeader is the fixed-size header of a binary container envelope.
type EnvelopeHeader struct {
	Version    uint8  // byte offset 4
	Flags      uint8  // byte offset 5
	MaxValues  uint32 // byte offset 8-11
	ValueCount uint32 // byte offset 12-15
}

// NewEnvelopeHeader creates a header for the current format version with the checksum flag set.
func NewEnvelopeHeader(maxValues, valueCount uint32) EnvelopeHeader {
	return EnvelopeHeader{
		Version:    FormatVersion,
		Flags:      FlagChecksum,
		MaxValues:  maxValues,
		ValueCount: valueCount,
	}
}

// HasChecksum reports whether the envelope carries a checksum trailer.
func (h EnvelopeHeader) HasChecksum() bool {
	return h.Flags&FlagChecksum != 0
}

// Bytes serializes the header into a new HeaderSize byte slice.
func (h EnvelopeHeader) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}

// AppendTo appends the serialized header to buf.
func (h EnvelopeHeader) AppendTo(buf []byte) []byte {
	engine := endian.GetLittleEndianEngine()

	buf = append(buf, Magic[:]...)
	buf = append(buf, h.Version, h.Flags, 0, 0)
	buf = engine.AppendUint32(buf, h.MaxValues)
	buf = engine.AppendUint32(buf, h.ValueCount)

	return buf
}

// Parse parses the header from data, which must be exactly HeaderSize bytes.
//
// Parameters:
//   - data: Byte slice containing the header
//
// Returns:
//   - error: errs.ErrInvalidDataFormat for a wrong size, bad magic,
//     unsupported version, unknown flags or non-zero reserved bytes
func (h *EnvelopeHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: %w: envelope header is %d bytes, want %d",
			errs.ErrInvalidDataFormat, errs.ErrTruncated, len(data), HeaderSize)
	}
	if [4]byte(data[0:4]) != Magic {
		return fmt.Errorf("%w: bad envelope magic % x", errs.ErrInvalidDataFormat, data[0:4])
	}

	engine := endian.GetLittleEndianEngine()

	h.Version = data[4]
	h.Flags = data[5]
	h.MaxValues = engine.Uint32(data[8:12])
	h.ValueCount = engine.Uint32(data[12:16])

	if h.Version != FormatVersion {
		return fmt.Errorf("%w: unsupported envelope version %d", errs.ErrInvalidDataFormat, h.Version)
	}
	if h.Flags&^validFlagsMask != 0 {
		return fmt.Errorf("%w: unknown envelope flags 0x%02x", errs.ErrInvalidDataFormat, h.Flags)
	}
	if data[6] != 0 || data[7] != 0 {
		return fmt.Errorf("%w: reserved envelope bytes are not zero", errs.ErrInvalidDataFormat)
	}

	return nil
}

// ParseEnvelopeHeader parses an EnvelopeHeader from the start of data.
func ParseEnvelopeHeader(data []byte) (EnvelopeHeader, error) {
	if len(data) < HeaderSize {
		return EnvelopeHeader{}, fmt.Errorf("%w: %w: envelope needs %d header bytes, got %d",
			errs.ErrInvalidDataFormat, errs.ErrTruncated, HeaderSize, len(data))
	}

	h := EnvelopeHeader{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return EnvelopeHeader{}, err
	}

	return h, nil
}
