package jsonv2

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/arloliu/valuecontainer/container"
	"github.com/arloliu/valuecontainer/errs"
	"github.com/arloliu/valuecontainer/format"
	"github.com/arloliu/valuecontainer/internal/pool"
	"github.com/arloliu/valuecontainer/value"
)

type cppHeader struct {
	MessageType string `json:"message_type"`
	Version     string `json:"version"`
	SourceID    string `json:"source_id"`
	SourceSubID string `json:"source_sub_id"`
	TargetID    string `json:"target_id"`
	TargetSubID string `json:"target_sub_id"`
}

type cppEntry struct {
	Type uint8  `json:"type"`
	Data string `json:"data"`
}

type rawCppHeader struct {
	MessageType *string `json:"message_type"`
	Version     *string `json:"version"`
	SourceID    *string `json:"source_id"`
	SourceSubID *string `json:"source_sub_id"`
	TargetID    *string `json:"target_id"`
	TargetSubID *string `json:"target_sub_id"`
}

type rawCppDocument struct {
	Header *rawCppHeader   `json:"header"`
	Values json.RawMessage `json:"values"`
}

type rawCppEntry struct {
	Type json.RawMessage `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ToCppJSON encodes c in the nested schema of the C++ library.
//
// The "values" object is keyed by value name in insertion order. Names are
// not unique in a container, so the object may repeat a key; FromCppJSON
// reads every occurrence back. Every data member is a string:
//
//	Null       ""
//	Bool       "true" / "false"
//	numbers    decimal text
//	String     the text itself
//	Bytes      lowercase hex
//	Container  hex of the binary payload (child count followed by children)
//	Array      hex of the binary payload
func (a *Adapter) ToCppJSON(c *container.ValueContainer) (string, error) {
	h, values := c.Snapshot()

	header, err := encodeJSON(cppHeader{
		MessageType: h.MessageType,
		Version:     h.Version,
		SourceID:    h.SourceID,
		SourceSubID: h.SourceSubID,
		TargetID:    h.TargetID,
		TargetSubID: h.TargetSubID,
	})
	if err != nil {
		return "", err
	}

	buf := pool.GetEncodeBuffer()
	defer pool.PutEncodeBuffer(buf)

	_, _ = buf.WriteString(`{"header":`)
	buf.MustWrite(header)
	_, _ = buf.WriteString(`,"values":{`)
	for i, v := range values {
		key, err := encodeJSON(v.Name())
		if err != nil {
			return "", err
		}
		entry, err := encodeJSON(cppEntry{Type: uint8(v.Type()), Data: cppData(v)})
		if err != nil {
			return "", err
		}

		if i > 0 {
			_ = buf.WriteByte(',')
		}
		buf.MustWrite(key)
		_ = buf.WriteByte(':')
		buf.MustWrite(entry)
	}
	_, _ = buf.WriteString("}}")

	return a.finish(buf.Bytes())
}

func cppData(v *value.Value) string {
	switch v.Type() {
	case format.TypeNull:
		return ""
	case format.TypeBytes:
		return hex.EncodeToString(v.Data())
	case format.TypeContainer, format.TypeArray:
		return hex.EncodeToString(v.Payload())
	default:
		return v.String()
	}
}

// FromCppJSON decodes the nested C++ schema.
//
// The "header" object is required; header members it omits take the
// container defaults. Entries of "values" are read in document order,
// including repeated keys. Bytes data is read as hex, or as base64 when it
// is not valid hex.
//
// Returns:
//   - *container.ValueContainer: The decoded container
//   - error: errs.ErrInvalidDataFormat for malformed JSON, a missing header,
//     an unknown type id or data that does not parse as its type
func (a *Adapter) FromCppJSON(text string) (*container.ValueContainer, error) {
	data, err := a.jsonInput(text)
	if err != nil {
		return nil, err
	}

	var doc rawCppDocument
	if err := decodeJSON(data, &doc); err != nil {
		return nil, err
	}
	if doc.Header == nil {
		return nil, fmt.Errorf("%w: missing \"header\" object", errs.ErrInvalidDataFormat)
	}

	h := container.DefaultHeader()
	setString(&h.MessageType, doc.Header.MessageType)
	setString(&h.Version, doc.Header.Version)
	setString(&h.SourceID, doc.Header.SourceID)
	setString(&h.SourceSubID, doc.Header.SourceSubID)
	setString(&h.TargetID, doc.Header.TargetID)
	setString(&h.TargetSubID, doc.Header.TargetSubID)

	values, err := decodeCppValues(doc.Values)
	if err != nil {
		return nil, err
	}

	return a.build(h, values)
}

// decodeCppValues walks the values object token by token, so member order
// and repeated names survive.
func decodeCppValues(raw json.RawMessage) ([]*value.Value, error) {
	if isJSONNull(raw) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var out []*value.Value
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: invalid JSON: %w", errs.ErrInvalidDataFormat, err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected token %v in values", errs.ErrInvalidDataFormat, tok)
		}

		var entry rawCppEntry
		if err := dec.Decode(&entry); err != nil {
			return nil, fmt.Errorf("%w: value %q: %w", errs.ErrInvalidDataFormat, name, err)
		}
		v, err := cppValue(name, &entry)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}

	return out, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: invalid JSON: %w", errs.ErrInvalidDataFormat, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: expected %q in values, got %v", errs.ErrInvalidDataFormat, want, tok)
	}

	return nil
}

func cppValue(name string, entry *rawCppEntry) (*value.Value, error) {
	rawType := bytes.TrimSpace(entry.Type)
	if isJSONNull(rawType) {
		return nil, fmt.Errorf("%w: value %q has no type", errs.ErrInvalidDataFormat, name)
	}
	id, err := strconv.ParseUint(string(rawType), 10, 8)
	if err != nil {
		return nil, errs.UnknownType(string(rawType))
	}
	typ, ok := format.FromByte(byte(id))
	if !ok {
		return nil, errs.UnknownType(id)
	}

	text, err := cppText(name, entry.Data)
	if err != nil {
		return nil, err
	}

	switch typ {
	case format.TypeBytes:
		if b, err := hex.DecodeString(text); err == nil {
			return value.NewBytes(name, b), nil
		}
		b, err := base64.StdEncoding.DecodeString(text)
		if err != nil {
			return nil, fmt.Errorf("%w: bytes %q are neither hex nor base64", errs.ErrInvalidDataFormat, name)
		}

		return value.NewBytes(name, b), nil
	case format.TypeContainer, format.TypeArray:
		payload, err := hex.DecodeString(text)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %q payload is not hex: %w", errs.ErrInvalidDataFormat, typ, name, err)
		}

		return value.DecodePayload(name, typ, payload)
	default:
		return value.ParseText(name, typ, text)
	}
}

// cppText returns the data member as text. Strings are taken as they are;
// a bare number or boolean is taken as its literal, and null or a missing
// member as "".
func cppText(name string, raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if isJSONNull(raw) {
		return "", nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := decodeJSON(raw, &s); err != nil {
			return "", err
		}

		return s, nil
	case '{', '[':
		return "", fmt.Errorf("%w: value %q data must be a string", errs.ErrInvalidDataFormat, name)
	default:
		return string(raw), nil
	}
}
