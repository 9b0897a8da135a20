package wire

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/arloliu/valuecontainer/container"
	"github.com/arloliu/valuecontainer/errs"
	"github.com/arloliu/valuecontainer/format"
	"github.com/arloliu/valuecontainer/value"
)

var (
	headerSectionRe = regexp.MustCompile(`@header=\s*\{\{?\s*(.*?)\s*\}\}?;`)
	dataSectionRe   = regexp.MustCompile(`@data=\s*\{\{?\s*(.*?)\s*\}\}?;`)
	pairRe          = regexp.MustCompile(`\[(\d+),(.*?)\];`)
	itemRe          = regexp.MustCompile(`\[([^,\[\];]*),\s*(\w+),\s*(.*?)\];`)

	lineBreaks = strings.NewReplacer("\r\n", "", "\n", "", "\r", "")
)

// DeserializeCppWire parses text produced by SerializeCppWire or by the C++ library.
//
// Line breaks anywhere in the input are ignored, as is whitespace around
// section braces. Unknown header ids are skipped. The parse fails on an
// unknown type name, a container_value or array_value item, malformed item
// data, or any text inside a section that is not a well-formed pair or item.
//
// The result has the default capacity; use DeserializeCppWireWith to choose
// another one.
//
// Returns:
//   - *container.ValueContainer: The decoded container
//   - error: errs.ErrInvalidDataFormat (possibly with errs.ErrUnknownType or
//     errs.ErrCapacityExceeded); no container is returned on error
func DeserializeCppWire(text string) (*container.ValueContainer, error) {
	return DeserializeCppWireWith(text)
}

// DeserializeCppWireWith is DeserializeCppWire with container options applied
// after the parsed header, typically container.WithMaxValues.
func DeserializeCppWireWith(text string, opts ...container.Option) (*container.ValueContainer, error) {
	clean := lineBreaks.Replace(text)

	headerMatch := headerSectionRe.FindStringSubmatch(clean)
	dataMatch := dataSectionRe.FindStringSubmatch(clean)
	if headerMatch == nil && dataMatch == nil {
		return nil, fmt.Errorf("%w: no @header or @data section", errs.ErrInvalidDataFormat)
	}

	h := container.DefaultHeader()
	if headerMatch != nil {
		if err := parseHeader(headerMatch[1], &h); err != nil {
			return nil, err
		}
	}

	var values []*value.Value
	if dataMatch != nil {
		var err error
		values, err = parseItems(dataMatch[1])
		if err != nil {
			return nil, err
		}
	}

	c, err := container.New(append([]container.Option{container.WithHeader(h)}, opts...)...)
	if err != nil {
		return nil, err
	}
	if err := c.AddValues(values...); err != nil {
		return nil, err
	}

	return c, nil
}

func parseHeader(content string, h *container.Header) error {
	if rest := strings.TrimSpace(pairRe.ReplaceAllString(content, "")); rest != "" {
		return fmt.Errorf("%w: unparsed header text %q", errs.ErrInvalidDataFormat, rest)
	}

	for _, m := range pairRe.FindAllStringSubmatch(content, -1) {
		id, err := strconv.Atoi(m[1])
		if err != nil {
			return fmt.Errorf("%w: header id %q: %w", errs.ErrInvalidDataFormat, m[1], err)
		}
		text := strings.TrimSpace(m[2])

		switch id {
		case FieldTargetID:
			h.TargetID = text
		case FieldTargetSubID:
			h.TargetSubID = text
		case FieldSourceID:
			h.SourceID = text
		case FieldSourceSubID:
			h.SourceSubID = text
		case FieldMessageType:
			h.MessageType = text
		case FieldVersion:
			h.Version = text
		}
	}

	return nil
}

func parseItems(content string) ([]*value.Value, error) {
	if rest := strings.TrimSpace(itemRe.ReplaceAllString(content, "")); rest != "" {
		return nil, fmt.Errorf("%w: unparsed data text %q", errs.ErrInvalidDataFormat, rest)
	}

	matches := itemRe.FindAllStringSubmatch(content, -1)
	values := make([]*value.Value, 0, len(matches))
	for _, m := range matches {
		name, typeName, data := strings.TrimSpace(m[1]), m[2], m[3]

		typ, ok := format.ParseCppName(typeName)
		if !ok {
			return nil, errs.UnknownType(typeName)
		}
		if typ.IsNested() {
			return nil, fmt.Errorf("%w: %s %q cannot be rebuilt from wire text", errs.ErrInvalidDataFormat, typeName, name)
		}

		v, err := value.ParseText(name, typ, data)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	return values, nil
}
