package value

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/arloliu/valuecontainer/endian"
	"github.com/arloliu/valuecontainer/errs"
	"github.com/arloliu/valuecontainer/format"
	"github.com/arloliu/valuecontainer/internal/pool"
)

const (
	// HeaderSize is the fixed overhead of one encoded value: type, name length and payload size.
	HeaderSize = 1 + 4 + 4
	// MaxDepth is the deepest Container/Array nesting accepted by Decode.
	MaxDepth = 64
)

var engine = endian.GetLittleEndianEngine()

// Size returns the payload length of v in bytes, as written by Payload.
func (v *Value) Size() int {
	switch v.typ {
	case format.TypeString:
		return len(v.text)
	case format.TypeBytes:
		return len(v.data)
	case format.TypeContainer, format.TypeArray:
		total := 4
		for _, c := range v.children {
			total += c.EncodedSize()
		}

		return total
	default:
		return v.typ.SizeBytes()
	}
}

// EncodedSize returns the length of the full binary encoding of v, header included.
func (v *Value) EncodedSize() int {
	return HeaderSize + len(v.name) + v.Size()
}

// ToBytes returns the binary encoding of v:
//
//	[type:1][name_len:4 LE][name][payload_size:4 LE][payload]
func (v *Value) ToBytes() []byte {
	bb := pool.GetEncodeBuffer()
	defer pool.PutEncodeBuffer(bb)

	bb.Grow(v.EncodedSize())
	bb.B = v.AppendTo(bb.B)

	return bb.CopyBytes()
}

// Payload returns only the payload part of the binary encoding of v.
func (v *Value) Payload() []byte {
	return v.appendPayload(make([]byte, 0, v.Size()))
}

// AppendTo appends the binary encoding of v to buf and returns the extended slice.
func (v *Value) AppendTo(buf []byte) []byte {
	buf = append(buf, byte(v.typ))
	buf = engine.AppendUint32(buf, uint32(len(v.name)))
	buf = append(buf, v.name...)
	buf = engine.AppendUint32(buf, uint32(v.Size()))

	return v.appendPayload(buf)
}

func (v *Value) appendPayload(buf []byte) []byte {
	switch v.typ {
	case format.TypeNull:
		return buf
	case format.TypeBool:
		return append(buf, byte(v.bits))
	case format.TypeShort, format.TypeUShort:
		return engine.AppendUint16(buf, uint16(v.bits))
	case format.TypeInt, format.TypeUInt, format.TypeLong, format.TypeULong:
		return engine.AppendUint32(buf, uint32(v.bits))
	case format.TypeLLong, format.TypeULLong:
		return engine.AppendUint64(buf, v.bits)
	case format.TypeFloat:
		return engine.AppendUint32(buf, math.Float32bits(float32(v.num)))
	case format.TypeDouble:
		return engine.AppendUint64(buf, math.Float64bits(v.num))
	case format.TypeString:
		return append(buf, v.text...)
	case format.TypeBytes:
		return append(buf, v.data...)
	case format.TypeContainer, format.TypeArray:
		buf = engine.AppendUint32(buf, uint32(len(v.children)))
		for _, c := range v.children {
			buf = c.AppendTo(buf)
		}

		return buf
	default:
		return buf
	}
}

// Decode parses one encoded value from the start of data.
//
// Parameters:
//   - data: Buffer starting with an encoded value; trailing bytes are left alone
//
// Returns:
//   - *Value: The decoded value
//   - int: Number of bytes consumed
//   - error: errs.ErrInvalidDataFormat (possibly also errs.ErrTruncated or
//     errs.ErrUnknownType) when the input is malformed
func Decode(data []byte) (*Value, int, error) {
	return decode(data, 0)
}

// FromBytes decodes a value that occupies all of data.
func FromBytes(data []byte) (*Value, error) {
	v, n, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if n != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes after value", errs.ErrInvalidDataFormat, len(data)-n)
	}

	return v, nil
}

// FromBytesAs decodes a value like FromBytes and additionally requires its kind to be expected.
func FromBytesAs(data []byte, expected format.ValueType) (*Value, error) {
	if len(data) > 0 && data[0] != byte(expected) {
		return nil, fmt.Errorf("%w: expected %s, got type byte %d", errs.ErrInvalidDataFormat, expected, data[0])
	}

	return FromBytes(data)
}

// DecodePayload builds a value of kind typ from a bare payload as produced by Payload.
func DecodePayload(name string, typ format.ValueType, payload []byte) (*Value, error) {
	if !typ.IsValid() {
		return nil, errs.UnknownType(uint8(typ))
	}

	return decodePayload(name, typ, payload, 0)
}

func decode(data []byte, depth int) (*Value, int, error) {
	if depth > MaxDepth {
		return nil, 0, fmt.Errorf("%w: nesting deeper than %d", errs.ErrInvalidDataFormat, MaxDepth)
	}
	if len(data) < 5 {
		return nil, 0, truncated("value header", 5, len(data))
	}

	typ, ok := format.FromByte(data[0])
	if !ok {
		return nil, 0, errs.UnknownType(data[0])
	}

	off := 5
	nameLen := uint64(engine.Uint32(data[1:5]))
	if nameLen > uint64(len(data)-off) {
		return nil, 0, truncated("value name", nameLen, len(data)-off)
	}
	nameBytes := data[off : off+int(nameLen)]
	if !utf8.Valid(nameBytes) {
		return nil, 0, fmt.Errorf("%w: value name is not valid UTF-8", errs.ErrInvalidDataFormat)
	}
	off += int(nameLen)

	if len(data)-off < 4 {
		return nil, 0, truncated("payload size", 4, len(data)-off)
	}
	size := uint64(engine.Uint32(data[off : off+4]))
	off += 4
	if size > uint64(len(data)-off) {
		return nil, 0, truncated("payload", size, len(data)-off)
	}

	name := string(nameBytes)
	v, err := decodePayload(name, typ, data[off:off+int(size)], depth)
	if err != nil {
		return nil, 0, err
	}

	return v, off + int(size), nil
}

func decodePayload(name string, typ format.ValueType, p []byte, depth int) (*Value, error) {
	if typ.IsFixedSize() && len(p) != typ.SizeBytes() {
		return nil, fmt.Errorf("%w: %s %q payload is %d bytes, want %d",
			errs.ErrInvalidDataFormat, typ, name, len(p), typ.SizeBytes())
	}

	switch typ {
	case format.TypeNull:
		return NewNull(name), nil
	case format.TypeBool:
		if p[0] > 1 {
			return nil, fmt.Errorf("%w: bool %q has byte 0x%02x", errs.ErrInvalidDataFormat, name, p[0])
		}

		return NewBool(name, p[0] == 1), nil
	case format.TypeShort:
		return NewShort(name, int16(engine.Uint16(p))), nil
	case format.TypeUShort:
		return NewUShort(name, engine.Uint16(p)), nil
	case format.TypeInt:
		return NewInt(name, int32(engine.Uint32(p))), nil
	case format.TypeUInt:
		return NewUInt(name, engine.Uint32(p)), nil
	case format.TypeLong:
		return newSigned(name, format.TypeLong, int64(int32(engine.Uint32(p)))), nil
	case format.TypeULong:
		return &Value{name: name, typ: format.TypeULong, bits: uint64(engine.Uint32(p))}, nil
	case format.TypeLLong:
		return NewLLong(name, int64(engine.Uint64(p))), nil
	case format.TypeULLong:
		return NewULLong(name, engine.Uint64(p)), nil
	case format.TypeFloat:
		return NewFloat(name, math.Float32frombits(engine.Uint32(p))), nil
	case format.TypeDouble:
		return NewDouble(name, math.Float64frombits(engine.Uint64(p))), nil
	case format.TypeString:
		if !utf8.Valid(p) {
			return nil, fmt.Errorf("%w: string %q is not valid UTF-8", errs.ErrInvalidDataFormat, name)
		}

		return NewString(name, string(p)), nil
	case format.TypeBytes:
		return NewBytes(name, p), nil
	case format.TypeContainer, format.TypeArray:
		children, err := decodeChildren(name, p, depth)
		if err != nil {
			return nil, err
		}

		return &Value{name: name, typ: typ, children: children}, nil
	default:
		return nil, errs.UnknownType(uint8(typ))
	}
}

func decodeChildren(name string, p []byte, depth int) ([]*Value, error) {
	if len(p) < 4 {
		return nil, truncated("child count of "+name, 4, len(p))
	}
	count := uint64(engine.Uint32(p[:4]))
	rest := p[4:]
	if count*HeaderSize > uint64(len(rest)) {
		return nil, fmt.Errorf("%w: %q declares %d children in %d bytes", errs.ErrInvalidDataFormat, name, count, len(rest))
	}

	children := make([]*Value, 0, count)
	for range count {
		child, n, err := decode(rest, depth+1)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
		rest = rest[n:]
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: %d unused bytes in %q payload", errs.ErrInvalidDataFormat, len(rest), name)
	}

	return children, nil
}

func truncated(what string, want any, have int) error {
	return fmt.Errorf("%w: %w: %s needs %v bytes, %d available", errs.ErrInvalidDataFormat, errs.ErrTruncated, what, want, have)
}
