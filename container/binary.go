package container

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/arloliu/valuecontainer/endian"
	"github.com/arloliu/valuecontainer/errs"
	"github.com/arloliu/valuecontainer/internal/hash"
	"github.com/arloliu/valuecontainer/internal/pool"
	"github.com/arloliu/valuecontainer/section"
	"github.com/arloliu/valuecontainer/value"
)

// Serialize encodes the container into a binary envelope.
//
// The envelope is a section.EnvelopeHeader, the six header strings, every
// value in binary form, and an xxHash64 trailer. Deserialize reverses it.
//
// The envelope is meant for Go-to-Go storage and transport; the C++, Python,
// .NET and Rust implementations do not read it. Exchange containers with them
// through the jsonv2 or wire packages.
//
// Returns:
//   - []byte: The encoded envelope
//   - error: errs.ErrSerialization if a string or value exceeds the 32-bit length limit
func (c *ValueContainer) Serialize() ([]byte, error) {
	c.mu.RLock()
	h := c.header
	maxValues := c.maxValues
	values := c.valuesLocked()
	c.mu.RUnlock()

	engine := endian.GetLittleEndianEngine()

	bb := pool.GetEncodeBuffer()
	defer pool.PutEncodeBuffer(bb)

	bb.B = section.NewEnvelopeHeader(uint32(maxValues), uint32(len(values))).AppendTo(bb.B)
	for _, s := range headerFields(&h) {
		if uint64(len(*s)) > math.MaxUint32 {
			return nil, fmt.Errorf("%w: header field too long", errs.ErrSerialization)
		}
		bb.B = engine.AppendUint32(bb.B, uint32(len(*s)))
		bb.B = append(bb.B, *s...)
	}

	for _, v := range values {
		size := v.EncodedSize()
		if uint64(size) > math.MaxUint32 {
			return nil, fmt.Errorf("%w: value %q is %d bytes", errs.ErrSerialization, v.Name(), size)
		}
		bb.Grow(size)
		bb.B = v.AppendTo(bb.B)
	}

	bb.B = engine.AppendUint64(bb.B, hash.Checksum(bb.B))

	return bb.CopyBytes(), nil
}

// Deserialize decodes a binary envelope produced by Serialize.
//
// The checksum, header and every value are validated before the container is
// returned; no partially filled container is ever returned.
func Deserialize(data []byte) (*ValueContainer, error) {
	eh, err := section.ParseEnvelopeHeader(data)
	if err != nil {
		return nil, err
	}

	engine := endian.GetLittleEndianEngine()

	body := data
	if eh.HasChecksum() {
		if len(data) < section.HeaderSize+section.ChecksumSize {
			return nil, fmt.Errorf("%w: %w: missing checksum trailer", errs.ErrInvalidDataFormat, errs.ErrTruncated)
		}
		body = data[:len(data)-section.ChecksumSize]
		want := engine.Uint64(data[len(body):])
		if !hash.Verify(body, want) {
			return nil, fmt.Errorf("%w: %w", errs.ErrInvalidDataFormat, errs.ErrChecksumMismatch)
		}
	}

	if eh.MaxValues > AbsoluteMaxValues {
		return nil, fmt.Errorf("%w: max values %d above ceiling %d", errs.ErrInvalidDataFormat, eh.MaxValues, AbsoluteMaxValues)
	}
	if eh.ValueCount > eh.MaxValues {
		return nil, fmt.Errorf("%w: %d values exceed declared max %d",
			errs.ErrInvalidDataFormat, eh.ValueCount, eh.MaxValues)
	}

	c := newContainer(Header{}, int(eh.MaxValues))
	rest := body[section.HeaderSize:]
	for _, s := range headerFields(&c.header) {
		if len(rest) < 4 {
			return nil, fmt.Errorf("%w: %w: header string length", errs.ErrInvalidDataFormat, errs.ErrTruncated)
		}
		n := uint64(engine.Uint32(rest[:4]))
		rest = rest[4:]
		if n > uint64(len(rest)) {
			return nil, fmt.Errorf("%w: %w: header string needs %d bytes", errs.ErrInvalidDataFormat, errs.ErrTruncated, n)
		}
		if !utf8.Valid(rest[:n]) {
			return nil, fmt.Errorf("%w: header string is not valid UTF-8", errs.ErrInvalidDataFormat)
		}
		*s = string(rest[:n])
		rest = rest[n:]
	}

	if uint64(eh.ValueCount)*value.HeaderSize > uint64(len(rest)) {
		return nil, fmt.Errorf("%w: %d values declared in %d bytes", errs.ErrInvalidDataFormat, eh.ValueCount, len(rest))
	}
	for range eh.ValueCount {
		v, n, err := value.Decode(rest)
		if err != nil {
			return nil, err
		}
		c.appendLocked(v)
		rest = rest[n:]
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes after values", errs.ErrInvalidDataFormat, len(rest))
	}

	return c, nil
}

func headerFields(h *Header) [6]*string {
	return [6]*string{
		&h.SourceID, &h.SourceSubID,
		&h.TargetID, &h.TargetSubID,
		&h.MessageType, &h.Version,
	}
}
