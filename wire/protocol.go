// Package wire implements the bracketed text protocol spoken by the C++
// container library:
//
//	@header={{[5,user_data];[6,1.0.0.0];}};@data={{[count,int_value,42];}};
//
// Header pairs carry a numeric field id and a value. Data items carry a value
// name, a wire type name such as int_value, and the value rendered as text.
//
// The format cannot nest. SerializeCppWire writes a Container or Array as its
// child count only, and DeserializeCppWire rejects container_value and
// array_value items rather than reconstruct them without their children. Use
// the binary envelope or a JSON format when values nest.
package wire

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/valuecontainer/container"
	"github.com/arloliu/valuecontainer/errs"
	"github.com/arloliu/valuecontainer/format"
	"github.com/arloliu/valuecontainer/value"
)

// Header field ids.
const (
	FieldTargetID    = 1
	FieldTargetSubID = 2
	FieldSourceID    = 3
	FieldSourceSubID = 4
	FieldMessageType = 5
	FieldVersion     = 6
)

const (
	HeaderPrefix      = "@header={{"
	ShortHeaderPrefix = "@header={"
)

// SerializeCppWire renders c in the text wire protocol.
//
// Routing fields are written only when the message type differs from
// container.DefaultMessageType, and a source or target pair only when one of
// its two ids is non-empty. Message type and version are always written.
//
// Returns:
//   - string: The encoded text
//   - error: errs.ErrSerialization if a name or text would break the framing
//     (it contains "];", "};", a line break, or a name contains ',' '[' ']' ';')
func SerializeCppWire(c *container.ValueContainer) (string, error) {
	h, values := c.Snapshot()

	var sb strings.Builder
	sb.Grow(64 + len(values)*32)

	sb.WriteString(HeaderPrefix)
	if h.HasRouting() {
		if h.TargetID != "" || h.TargetSubID != "" {
			if err := writePair(&sb, FieldTargetID, h.TargetID); err != nil {
				return "", err
			}
			if err := writePair(&sb, FieldTargetSubID, h.TargetSubID); err != nil {
				return "", err
			}
		}
		if h.SourceID != "" || h.SourceSubID != "" {
			if err := writePair(&sb, FieldSourceID, h.SourceID); err != nil {
				return "", err
			}
			if err := writePair(&sb, FieldSourceSubID, h.SourceSubID); err != nil {
				return "", err
			}
		}
	}
	if err := writePair(&sb, FieldMessageType, h.MessageType); err != nil {
		return "", err
	}
	if err := writePair(&sb, FieldVersion, h.Version); err != nil {
		return "", err
	}
	sb.WriteString("}};")

	sb.WriteString("@data={{")
	for _, v := range values {
		if err := writeItem(&sb, v); err != nil {
			return "", err
		}
	}
	sb.WriteString("}};")

	return sb.String(), nil
}

func writePair(sb *strings.Builder, id int, text string) error {
	if err := checkText("header field "+strconv.Itoa(id), text); err != nil {
		return err
	}
	if strings.TrimSpace(text) != text {
		return fmt.Errorf("%w: header field %d has surrounding whitespace", errs.ErrSerialization, id)
	}

	sb.WriteByte('[')
	sb.WriteString(strconv.Itoa(id))
	sb.WriteByte(',')
	sb.WriteString(text)
	sb.WriteString("];")

	return nil
}

func writeItem(sb *strings.Builder, v *value.Value) error {
	name := v.Name()
	if strings.ContainsAny(name, ",[];\r\n") || strings.TrimSpace(name) != name {
		return fmt.Errorf("%w: value name %q cannot be framed", errs.ErrSerialization, name)
	}

	data := ItemText(v)
	if err := checkText("value "+strconv.Quote(name), data); err != nil {
		return err
	}
	if strings.TrimLeft(data, " \t") != data {
		return fmt.Errorf("%w: value %q starts with whitespace", errs.ErrSerialization, name)
	}

	sb.WriteByte('[')
	sb.WriteString(name)
	sb.WriteByte(',')
	sb.WriteString(v.Type().CppName())
	sb.WriteByte(',')
	sb.WriteString(data)
	sb.WriteString("];")

	return nil
}

// ItemText returns the data field written for v.
//
// Bytes are lower-case hex, Null is empty and Container/Array are their child
// count. Every other kind uses its String form.
func ItemText(v *value.Value) string {
	switch v.Type() {
	case format.TypeNull:
		return ""
	case format.TypeBytes:
		return hex.EncodeToString(v.Data())
	case format.TypeContainer, format.TypeArray:
		return strconv.Itoa(v.ChildCount())
	default:
		return v.String()
	}
}

func checkText(what, text string) error {
	for _, bad := range []string{"];", "};", "\n", "\r"} {
		if strings.Contains(text, bad) {
			return fmt.Errorf("%w: %s contains %q", errs.ErrSerialization, what, bad)
		}
	}

	return nil
}

// IsWire reports whether text, after leading whitespace, starts like a wire message.
func IsWire(text string) bool {
	text = strings.TrimSpace(text)
	return strings.HasPrefix(text, HeaderPrefix) || strings.HasPrefix(text, ShortHeaderPrefix)
}
