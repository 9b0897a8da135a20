package value

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/valuecontainer/errs"
	"github.com/arloliu/valuecontainer/format"
)

// ParseText builds a scalar value of kind typ from its textual form.
//
// The accepted text is what String produces, except that Bytes are given as
// hex digits and Null accepts both "" and "null". Container and Array have no
// textual form and always fail.
func ParseText(name string, typ format.ValueType, text string) (*Value, error) {
	switch typ {
	case format.TypeNull:
		if text != "" && text != "null" {
			return nil, fmt.Errorf("%w: null %q carries data %q", errs.ErrInvalidDataFormat, name, text)
		}

		return NewNull(name), nil
	case format.TypeBool:
		switch strings.ToLower(strings.TrimSpace(text)) {
		case "true", "1":
			return NewBool(name, true), nil
		case "false", "0":
			return NewBool(name, false), nil
		default:
			return nil, fmt.Errorf("%w: bool %q has data %q", errs.ErrInvalidDataFormat, name, text)
		}
	case format.TypeShort, format.TypeInt, format.TypeLong, format.TypeLLong:
		n, err := strconv.ParseInt(strings.TrimSpace(text), 10, typ.SizeBytes()*8)
		if err != nil {
			return nil, numberError(name, typ, text, err)
		}

		return newSigned(name, typ, n), nil
	case format.TypeUShort, format.TypeUInt, format.TypeULong, format.TypeULLong:
		n, err := strconv.ParseUint(strings.TrimSpace(text), 10, typ.SizeBytes()*8)
		if err != nil {
			return nil, numberError(name, typ, text, err)
		}

		return &Value{name: name, typ: typ, bits: n}, nil
	case format.TypeFloat, format.TypeDouble:
		f, err := strconv.ParseFloat(strings.TrimSpace(text), typ.SizeBytes()*8)
		if err != nil {
			return nil, numberError(name, typ, text, err)
		}
		if typ == format.TypeFloat {
			return NewFloat(name, float32(f)), nil
		}

		return NewDouble(name, f), nil
	case format.TypeString:
		return NewString(name, text), nil
	case format.TypeBytes:
		data, err := hex.DecodeString(strings.TrimSpace(text))
		if err != nil {
			return nil, fmt.Errorf("%w: bytes %q are not hex: %w", errs.ErrInvalidDataFormat, name, err)
		}

		return &Value{name: name, typ: format.TypeBytes, data: data}, nil
	case format.TypeContainer, format.TypeArray:
		return nil, fmt.Errorf("%w: %s %q has no textual form", errs.ErrInvalidDataFormat, typ, name)
	default:
		return nil, errs.UnknownType(uint8(typ))
	}
}

func numberError(name string, typ format.ValueType, text string, err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return fmt.Errorf("%w: %w", errs.ErrInvalidDataFormat, errs.OutOfRange("text", typ.ShortName(), text))
	}

	return fmt.Errorf("%w: %s %q has data %q", errs.ErrInvalidDataFormat, typ, name, text)
}

type rawEnvelope struct {
	Name  *string         `json:"name"`
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// FromJSON parses a tagged envelope as produced by ToJSON and names the result name.
func FromJSON(name string, data []byte) (*Value, error) {
	var env rawEnvelope
	if err := decodeJSON(data, &env); err != nil {
		return nil, err
	}

	return fromEnvelope(name, &env, 0)
}

// FromNamedJSON parses an envelope produced by ToNamedJSON, taking the name from the "name" member.
func FromNamedJSON(data []byte) (*Value, error) {
	var env rawEnvelope
	if err := decodeJSON(data, &env); err != nil {
		return nil, err
	}
	if env.Name == nil {
		return nil, fmt.Errorf("%w: value envelope has no name", errs.ErrInvalidDataFormat)
	}

	return fromEnvelope(*env.Name, &env, 0)
}

func fromEnvelope(name string, env *rawEnvelope, depth int) (*Value, error) {
	if depth > MaxDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d", errs.ErrInvalidDataFormat, MaxDepth)
	}

	typ, ok := format.ParseShortName(env.Type)
	if !ok {
		return nil, errs.UnknownType(env.Type)
	}

	raw := bytes.TrimSpace(env.Value)
	isNull := len(raw) == 0 || bytes.Equal(raw, []byte("null"))

	switch typ {
	case format.TypeNull:
		if !isNull {
			return nil, fmt.Errorf("%w: null %q carries a value", errs.ErrInvalidDataFormat, name)
		}

		return NewNull(name), nil
	case format.TypeString, format.TypeBytes:
		var s string
		if err := decodeJSON(raw, &s); err != nil {
			return nil, err
		}
		if typ == format.TypeString {
			return NewString(name, s), nil
		}
		data, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("%w: bytes %q are not base64: %w", errs.ErrInvalidDataFormat, name, err)
		}

		return &Value{name: name, typ: format.TypeBytes, data: data}, nil
	case format.TypeContainer, format.TypeArray:
		var children []rawEnvelope
		if err := decodeJSON(raw, &children); err != nil {
			return nil, err
		}
		out := make([]*Value, 0, len(children))
		for i := range children {
			childName := ""
			if children[i].Name != nil {
				childName = *children[i].Name
			}
			child, err := fromEnvelope(childName, &children[i], depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, child)
		}

		return &Value{name: name, typ: typ, children: out}, nil
	default:
		if isNull {
			return nil, fmt.Errorf("%w: %s %q has no value", errs.ErrInvalidDataFormat, typ, name)
		}

		return ParseText(name, typ, string(raw))
	}
}

func decodeJSON(data []byte, target any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(target); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidDataFormat, err)
	}

	return nil
}
