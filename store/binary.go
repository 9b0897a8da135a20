package store

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/arloliu/valuecontainer/endian"
	"github.com/arloliu/valuecontainer/errs"
	"github.com/arloliu/valuecontainer/format"
	"github.com/arloliu/valuecontainer/internal/pool"
	"github.com/arloliu/valuecontainer/value"
)

const (
	// BinaryVersion is the version byte written by SerializeBinary.
	BinaryVersion = 1

	// key length, type and value length
	entryOverhead = 4 + 1 + 4
	// smallest possible entry: empty key and an unnamed value with an empty payload
	minEntrySize = entryOverhead + value.HeaderSize
)

// SerializeBinary encodes the store, little-endian:
//
//	[version:1][count:4]
//	count × [key_len:4][key][type:1][value_len:4][value.ToBytes()]
//
// Entries are written in key order, so equal stores encode identically.
//
// Returns:
//   - []byte: The encoded store
//   - error: errs.ErrSerialization if a key or value exceeds the 32-bit length limit
func (s *ValueStore) SerializeBinary() ([]byte, error) {
	s.serializations.Add(1)

	keys, values := s.snapshot()
	engine := endian.GetLittleEndianEngine()

	bb := pool.GetEncodeBuffer()
	defer pool.PutEncodeBuffer(bb)

	bb.B = append(bb.B, BinaryVersion)
	bb.B = engine.AppendUint32(bb.B, uint32(len(keys)))

	for i, k := range keys {
		v := values[i]
		size := v.EncodedSize()
		if uint64(len(k)) > math.MaxUint32 || uint64(size) > math.MaxUint32 {
			return nil, fmt.Errorf("%w: entry %q too large", errs.ErrSerialization, k)
		}

		bb.Grow(entryOverhead + len(k) + size)
		bb.B = engine.AppendUint32(bb.B, uint32(len(k)))
		bb.B = append(bb.B, k...)
		bb.B = append(bb.B, byte(v.Type()))
		bb.B = engine.AppendUint32(bb.B, uint32(size))
		bb.B = v.AppendTo(bb.B)
	}

	return bb.CopyBytes(), nil
}

// DeserializeBinary decodes a store produced by SerializeBinary.
//
// Every entry is validated: the key must be UTF-8, the type byte must name
// one of the sixteen kinds and match the encoded value, and the value must
// fill its declared length exactly. A repeated key keeps the last value.
// No partially filled store is returned.
//
// Returns:
//   - *ValueStore: The decoded store with zeroed statistics
//   - error: errs.ErrDeserialization, also matching errs.ErrTruncated or
//     errs.ErrUnknownType where applicable
func DeserializeBinary(data []byte) (*ValueStore, error) {
	if len(data) < 5 {
		return nil, fmt.Errorf("%w: %w: need 5 header bytes, have %d", errs.ErrDeserialization, errs.ErrTruncated, len(data))
	}
	if data[0] != BinaryVersion {
		return nil, fmt.Errorf("%w: unsupported store version %d", errs.ErrDeserialization, data[0])
	}

	engine := endian.GetLittleEndianEngine()
	count := uint64(engine.Uint32(data[1:5]))
	rest := data[5:]
	if count*minEntrySize > uint64(len(rest)) {
		return nil, fmt.Errorf("%w: %d entries declared in %d bytes", errs.ErrDeserialization, count, len(rest))
	}

	s := NewWithCapacity(int(count))
	for i := range count {
		if len(rest) < 4 {
			return nil, fmt.Errorf("%w: %w: entry %d key length", errs.ErrDeserialization, errs.ErrTruncated, i)
		}
		keyLen := uint64(engine.Uint32(rest[:4]))
		rest = rest[4:]
		if keyLen+5 > uint64(len(rest)) {
			return nil, fmt.Errorf("%w: %w: entry %d key needs %d bytes", errs.ErrDeserialization, errs.ErrTruncated, i, keyLen)
		}
		key := rest[:keyLen]
		if !utf8.Valid(key) {
			return nil, fmt.Errorf("%w: entry %d key is not valid UTF-8", errs.ErrDeserialization, i)
		}
		rest = rest[keyLen:]

		typ := format.ValueType(rest[0])
		if !typ.IsValid() {
			return nil, fmt.Errorf("%w: %w: entry %d type %d", errs.ErrDeserialization, errs.ErrUnknownType, i, rest[0])
		}
		valueLen := uint64(engine.Uint32(rest[1:5]))
		rest = rest[5:]
		if valueLen > uint64(len(rest)) {
			return nil, fmt.Errorf("%w: %w: entry %d value needs %d bytes", errs.ErrDeserialization, errs.ErrTruncated, i, valueLen)
		}

		v, err := value.FromBytesAs(rest[:valueLen], typ)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %q: %w", errs.ErrDeserialization, key, err)
		}
		s.values[string(key)] = v
		rest = rest[valueLen:]
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes after entries", errs.ErrDeserialization, len(rest))
	}

	return s, nil
}
