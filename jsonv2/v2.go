package jsonv2

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/arloliu/valuecontainer/container"
	"github.com/arloliu/valuecontainer/errs"
	"github.com/arloliu/valuecontainer/format"
	"github.com/arloliu/valuecontainer/value"
)

// Bytes encodings accepted in the "encoding" member of a v2 value.
const (
	EncodingBase64 = "base64"
	EncodingHex    = "hex"
	EncodingUTF8   = "utf8"
)

type v2Endpoint struct {
	ID    string `json:"id"`
	SubID string `json:"sub_id"`
}

type v2Metadata struct {
	MessageType     string     `json:"message_type"`
	ProtocolVersion string     `json:"protocol_version"`
	Source          v2Endpoint `json:"source"`
	Target          v2Endpoint `json:"target"`
}

type v2Body struct {
	Version  string     `json:"version"`
	Metadata v2Metadata `json:"metadata"`
	Values   []*v2Value `json:"values"`
}

type v2Document struct {
	Container v2Body `json:"container"`
}

// v2Value is the per-value object shared by the v2 and python schemas.
type v2Value struct {
	Name         string `json:"name"`
	Type         uint8  `json:"type"`
	TypeName     string `json:"type_name"`
	Data         any    `json:"data"`
	Encoding     string `json:"encoding,omitempty"`
	ChildCount   *int   `json:"child_count,omitempty"`
	ElementCount *int   `json:"element_count,omitempty"`
}

type rawV2Body struct {
	Version  *string         `json:"version"`
	Metadata rawV2Metadata   `json:"metadata"`
	Values   json.RawMessage `json:"values"`
}

type rawV2Metadata struct {
	MessageType     *string       `json:"message_type"`
	ProtocolVersion *string       `json:"protocol_version"`
	Source          rawV2Endpoint `json:"source"`
	Target          rawV2Endpoint `json:"target"`
}

type rawV2Endpoint struct {
	ID    *string `json:"id"`
	SubID *string `json:"sub_id"`
}

type rawV2Document struct {
	Container *rawV2Body `json:"container"`
}

type rawV2Value struct {
	Name     *string         `json:"name"`
	Type     json.RawMessage `json:"type"`
	TypeName *string         `json:"type_name"`
	Data     json.RawMessage `json:"data"`
	Encoding *string         `json:"encoding"`
}

// ToV2JSON encodes c in the unified v2 schema.
//
// Returns:
//   - string: The JSON document
//   - error: errs.ErrSerialization if a Float or Double is NaN or infinite
func (a *Adapter) ToV2JSON(c *container.ValueContainer) (string, error) {
	h, values := c.Snapshot()

	items, err := v2Values(values)
	if err != nil {
		return "", err
	}

	doc := v2Document{
		Container: v2Body{
			Version: FormatVersion,
			Metadata: v2Metadata{
				MessageType:     h.MessageType,
				ProtocolVersion: h.Version,
				Source:          v2Endpoint{ID: h.SourceID, SubID: h.SourceSubID},
				Target:          v2Endpoint{ID: h.TargetID, SubID: h.TargetSubID},
			},
			Values: items,
		},
	}

	compact, err := encodeJSON(doc)
	if err != nil {
		return "", err
	}

	return a.finish(compact)
}

// FromV2JSON decodes a v2 document.
//
// Missing metadata members take the container defaults. Every value must be
// well formed; a value that cannot be decoded fails the whole document.
//
// Returns:
//   - *container.ValueContainer: The decoded container
//   - error: errs.ErrInvalidDataFormat for malformed JSON, a missing
//     "container" member, a version other than "2.0" or a bad value
func (a *Adapter) FromV2JSON(text string) (*container.ValueContainer, error) {
	data, err := a.jsonInput(text)
	if err != nil {
		return nil, err
	}

	var doc rawV2Document
	if err := decodeJSON(data, &doc); err != nil {
		return nil, err
	}
	if doc.Container == nil {
		return nil, fmt.Errorf("%w: missing \"container\" root element", errs.ErrInvalidDataFormat)
	}
	body := doc.Container
	if body.Version == nil || *body.Version != FormatVersion {
		got := "<missing>"
		if body.Version != nil {
			got = *body.Version
		}

		return nil, fmt.Errorf("%w: unsupported JSON version %q, expected %q", errs.ErrInvalidDataFormat, got, FormatVersion)
	}

	h := container.DefaultHeader()
	md := body.Metadata
	setString(&h.MessageType, md.MessageType)
	setString(&h.Version, md.ProtocolVersion)
	setString(&h.SourceID, md.Source.ID)
	setString(&h.SourceSubID, md.Source.SubID)
	setString(&h.TargetID, md.Target.ID)
	setString(&h.TargetSubID, md.Target.SubID)

	values, err := decodeV2Values(body.Values, 0)
	if err != nil {
		return nil, err
	}

	return a.build(h, values)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func v2Values(values []*value.Value) ([]*v2Value, error) {
	out := make([]*v2Value, len(values))
	for i, v := range values {
		item, err := toV2Value(v)
		if err != nil {
			return nil, err
		}
		out[i] = item
	}

	return out, nil
}

func toV2Value(v *value.Value) (*v2Value, error) {
	typ := v.Type()
	item := &v2Value{
		Name:     v.Name(),
		Type:     uint8(typ),
		TypeName: typ.ShortName(),
	}

	switch typ {
	case format.TypeNull:
		item.Data = nil
	case format.TypeBool:
		b, _ := v.ToBool()
		item.Data = b
	case format.TypeShort, format.TypeInt, format.TypeLong, format.TypeLLong,
		format.TypeUShort, format.TypeUInt, format.TypeULong, format.TypeULLong:
		item.Data = json.Number(v.String())
	case format.TypeFloat, format.TypeDouble:
		f, _ := v.ToDouble()
		bits := 64
		if typ == format.TypeFloat {
			bits = 32
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: %s %q is not finite", errs.ErrSerialization, typ, v.Name())
		}
		item.Data = json.Number(strconv.FormatFloat(f, 'g', -1, bits))
	case format.TypeString:
		item.Data = v.Text()
	case format.TypeBytes:
		item.Data = base64.StdEncoding.EncodeToString(v.Data())
		item.Encoding = EncodingBase64
	case format.TypeContainer, format.TypeArray:
		children, err := v2Values(v.Children())
		if err != nil {
			return nil, err
		}
		item.Data = children
		n := len(children)
		if typ == format.TypeContainer {
			item.ChildCount = &n
		} else {
			item.ElementCount = &n
		}
	default:
		return nil, fmt.Errorf("%w: %w", errs.ErrSerialization, errs.UnknownType(uint8(typ)))
	}

	return item, nil
}

func decodeV2Values(raw json.RawMessage, depth int) ([]*value.Value, error) {
	if isJSONNull(raw) {
		return nil, nil
	}

	var items []json.RawMessage
	if err := decodeJSON(raw, &items); err != nil {
		return nil, err
	}

	out := make([]*value.Value, 0, len(items))
	for i, item := range items {
		v, err := decodeV2Value(item, depth)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		out = append(out, v)
	}

	return out, nil
}

func decodeV2Value(raw json.RawMessage, depth int) (*value.Value, error) {
	if depth > value.MaxDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d", errs.ErrInvalidDataFormat, value.MaxDepth)
	}

	var item rawV2Value
	if err := decodeJSON(raw, &item); err != nil {
		return nil, err
	}
	if item.Name == nil {
		return nil, fmt.Errorf("%w: value has no name", errs.ErrInvalidDataFormat)
	}
	name := *item.Name

	typ, err := resolveType(&item)
	if err != nil {
		return nil, err
	}

	data := bytes.TrimSpace(item.Data)
	switch typ {
	case format.TypeNull:
		if !isJSONNull(data) {
			return nil, fmt.Errorf("%w: null %q carries data", errs.ErrInvalidDataFormat, name)
		}

		return value.NewNull(name), nil
	case format.TypeString:
		var s string
		if err := decodeJSON(data, &s); err != nil {
			return nil, err
		}

		return value.NewString(name, s), nil
	case format.TypeBytes:
		var s string
		if err := decodeJSON(data, &s); err != nil {
			return nil, err
		}
		encoding := EncodingBase64
		if item.Encoding != nil {
			encoding = *item.Encoding
		}
		b, err := decodeBytes(name, s, encoding)
		if err != nil {
			return nil, err
		}

		return value.NewBytes(name, b), nil
	case format.TypeContainer, format.TypeArray:
		children, err := decodeV2Values(data, depth+1)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", typ, name, err)
		}
		if typ == format.TypeContainer {
			return value.NewContainer(name, children...), nil
		}

		return value.NewArray(name, children...), nil
	default:
		if isJSONNull(data) || data[0] == '"' {
			return nil, fmt.Errorf("%w: %s %q needs a JSON %s", errs.ErrInvalidDataFormat, typ, name, literalKind(typ))
		}
		if typ == format.TypeBool && !bytes.Equal(data, []byte("true")) && !bytes.Equal(data, []byte("false")) {
			return nil, fmt.Errorf("%w: bool %q needs a JSON boolean", errs.ErrInvalidDataFormat, name)
		}

		return value.ParseText(name, typ, string(data))
	}
}

// resolveType takes the numeric "type" when it names a kind and falls back
// to "type_name" otherwise. A string "type" is read as a type name.
func resolveType(item *rawV2Value) (format.ValueType, error) {
	raw := bytes.TrimSpace(item.Type)
	if len(raw) > 0 && raw[0] == '"' {
		var name string
		if err := decodeJSON(raw, &name); err != nil {
			return format.TypeNull, err
		}
		if typ, ok := format.ParseShortName(name); ok {
			return typ, nil
		}
	} else if !isJSONNull(raw) {
		if id, err := strconv.ParseUint(string(raw), 10, 8); err == nil {
			if typ, ok := format.FromByte(byte(id)); ok {
				return typ, nil
			}
		}
	}

	if item.TypeName != nil {
		if typ, ok := format.ParseShortName(*item.TypeName); ok {
			return typ, nil
		}

		return format.TypeNull, errs.UnknownType(*item.TypeName)
	}
	if !isJSONNull(raw) {
		return format.TypeNull, errs.UnknownType(string(raw))
	}

	return format.TypeNull, fmt.Errorf("%w: value has neither type nor type_name", errs.ErrInvalidDataFormat)
}

func decodeBytes(name, s, encoding string) ([]byte, error) {
	switch encoding {
	case EncodingBase64, "":
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("%w: bytes %q are not base64: %w", errs.ErrInvalidDataFormat, name, err)
		}

		return b, nil
	case EncodingHex:
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("%w: bytes %q are not hex: %w", errs.ErrInvalidDataFormat, name, err)
		}

		return b, nil
	case EncodingUTF8:
		return []byte(s), nil
	default:
		return nil, fmt.Errorf("%w: bytes %q use unknown encoding %q", errs.ErrInvalidDataFormat, name, encoding)
	}
}

func literalKind(typ format.ValueType) string {
	if typ == format.TypeBool {
		return "boolean"
	}

	return "number"
}

func isJSONNull(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
