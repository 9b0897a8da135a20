package value

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/valuecontainer/errs"
	"github.com/arloliu/valuecontainer/format"
)

// String renders v in human-readable form. It never fails.
//
//	Bool       true / false
//	integers   decimal
//	floats     shortest decimal without exponent
//	String     the text itself
//	Bytes      <N bytes>
//	Null       null
//	Container  [Container 'name' with N children]
//	Array      [Array 'name' with N elements]
func (v *Value) String() string {
	switch v.typ {
	case format.TypeNull:
		return "null"
	case format.TypeBool:
		return strconv.FormatBool(v.bits != 0)
	case format.TypeShort, format.TypeInt, format.TypeLong, format.TypeLLong:
		return strconv.FormatInt(int64(v.bits), 10)
	case format.TypeUShort, format.TypeUInt, format.TypeULong, format.TypeULLong:
		return strconv.FormatUint(v.bits, 10)
	case format.TypeFloat:
		return strconv.FormatFloat(v.num, 'f', -1, 32)
	case format.TypeDouble:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case format.TypeString:
		return v.text
	case format.TypeBytes:
		return fmt.Sprintf("<%d bytes>", len(v.data))
	case format.TypeContainer:
		return fmt.Sprintf("[Container '%s' with %d children]", v.name, len(v.children))
	case format.TypeArray:
		return fmt.Sprintf("[Array '%s' with %d elements]", v.name, len(v.children))
	default:
		return "unknown"
	}
}

type jsonEnvelope struct {
	Name  *string `json:"name,omitempty"`
	Type  string  `json:"type"`
	Value any     `json:"value"`
}

// ToJSON renders v as a tagged envelope such as {"type":"int","value":42}.
//
// Bytes are base64 encoded. Container and Array values hold an array of
// child envelopes, each of which also carries the child name.
// Non-finite floats cannot be represented and fail with errs.ErrSerialization.
func (v *Value) ToJSON() (string, error) {
	env := v.envelope(false)

	out, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("%w: %s %q: %w", errs.ErrSerialization, v.typ, v.name, err)
	}

	return string(out), nil
}

// ToNamedJSON renders v like ToJSON with an additional leading "name" member.
func (v *Value) ToNamedJSON() (string, error) {
	out, err := json.Marshal(v.envelope(true))
	if err != nil {
		return "", fmt.Errorf("%w: %s %q: %w", errs.ErrSerialization, v.typ, v.name, err)
	}

	return string(out), nil
}

func (v *Value) envelope(named bool) jsonEnvelope {
	env := jsonEnvelope{Type: v.typ.ShortName()}
	if named {
		name := v.name
		env.Name = &name
	}

	switch v.typ {
	case format.TypeNull:
		env.Value = nil
	case format.TypeBool:
		env.Value = v.bits != 0
	case format.TypeShort, format.TypeInt, format.TypeLong, format.TypeLLong:
		env.Value = int64(v.bits)
	case format.TypeUShort, format.TypeUInt, format.TypeULong, format.TypeULLong:
		env.Value = v.bits
	case format.TypeFloat:
		env.Value = float32(v.num)
	case format.TypeDouble:
		env.Value = v.num
	case format.TypeString:
		env.Value = v.text
	case format.TypeBytes:
		env.Value = base64.StdEncoding.EncodeToString(v.data)
	case format.TypeContainer, format.TypeArray:
		children := make([]jsonEnvelope, len(v.children))
		for i, c := range v.children {
			children[i] = c.envelope(true)
		}
		env.Value = children
	}

	return env
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EscapeXML escapes the five XML special characters in s.
func EscapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

// ToXML renders v as an element named after its JSON type name, e.g. <int>42</int>.
//
// Null renders as <null/>, Bytes as base64 text. Container and Array render
// their children as nested elements carrying a name attribute.
func (v *Value) ToXML() (string, error) {
	var sb strings.Builder
	v.writeXML(&sb, false)

	return sb.String(), nil
}

func (v *Value) writeXML(sb *strings.Builder, named bool) {
	tag := v.typ.ShortName()

	sb.WriteByte('<')
	sb.WriteString(tag)
	if named {
		sb.WriteString(` name="`)
		sb.WriteString(EscapeXML(v.name))
		sb.WriteByte('"')
	}

	switch v.typ {
	case format.TypeNull:
		sb.WriteString("/>")
		return
	case format.TypeContainer, format.TypeArray:
		fmt.Fprintf(sb, ` count="%d">`, len(v.children))
		for _, c := range v.children {
			c.writeXML(sb, true)
		}
	case format.TypeBytes:
		sb.WriteByte('>')
		sb.WriteString(base64.StdEncoding.EncodeToString(v.data))
	default:
		sb.WriteByte('>')
		sb.WriteString(EscapeXML(v.String()))
	}

	sb.WriteString("</")
	sb.WriteString(tag)
	sb.WriteByte('>')
}
