package jsonv2

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arloliu/valuecontainer/container"
	"github.com/arloliu/valuecontainer/errs"
	"github.com/arloliu/valuecontainer/format"
	"github.com/arloliu/valuecontainer/wire"
)

// DetectFormat reports which format text is in.
//
// The checks run in order: a wire protocol header prefix; a JSON object
// whose container.version is "2.0"; a JSON object with a "header" member and
// a "values" object; a JSON object with a "message_type" member and a
// "values" array. Anything else, including text that is not JSON, is
// format.FormatUnknown.
func (a *Adapter) DetectFormat(text string) format.SerializationFormat {
	f := a.detect(text)
	a.logger.Debug().Stringer("format", f).Int("bytes", len(text)).Msg("detected input format")

	return f
}

func (a *Adapter) detect(text string) format.SerializationFormat {
	clean, err := normalize(text)
	if err != nil {
		return format.FormatUnknown
	}
	if strings.HasPrefix(clean, wire.HeaderPrefix) || strings.HasPrefix(clean, wire.ShortHeaderPrefix) {
		return format.FormatWire
	}

	data, err := a.jsonInput(clean)
	if err != nil {
		return format.FormatUnknown
	}

	var top map[string]json.RawMessage
	if err := decodeJSON(data, &top); err != nil || top == nil {
		return format.FormatUnknown
	}

	if raw, ok := top["container"]; ok {
		var body struct {
			Version any `json:"version"`
		}
		if json.Unmarshal(raw, &body) == nil && body.Version == FormatVersion {
			return format.FormatJSONV2
		}
	}

	values, hasValues := top["values"]
	if _, ok := top["header"]; ok && hasValues && jsonKind(values) == '{' {
		return format.FormatCppJSON
	}
	if _, ok := top["message_type"]; ok && hasValues && jsonKind(values) == '[' {
		return format.FormatPythonJSON
	}

	return format.FormatUnknown
}

// jsonKind returns the first byte of a raw JSON value.
func jsonKind(raw json.RawMessage) byte {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}

	return raw[0]
}

// Decode detects the format of text and decodes it.
//
// Returns:
//   - *container.ValueContainer: The decoded container
//   - format.SerializationFormat: The detected format
//   - error: errs.ErrUnsupportedFormat (also errs.ErrInvalidDataFormat) when
//     the format is unknown, or the decoder's error
func (a *Adapter) Decode(text string) (*container.ValueContainer, format.SerializationFormat, error) {
	f := a.DetectFormat(text)

	var (
		c   *container.ValueContainer
		err error
	)
	switch f {
	case format.FormatJSONV2:
		c, err = a.FromV2JSON(text)
	case format.FormatCppJSON:
		c, err = a.FromCppJSON(text)
	case format.FormatPythonJSON:
		c, err = a.FromPythonJSON(text)
	case format.FormatWire:
		c, err = a.fromWire(text)
	default:
		return nil, f, fmt.Errorf("%w: %w: unsupported source format %s", errs.ErrInvalidDataFormat, errs.ErrUnsupportedFormat, f)
	}
	if err != nil {
		return nil, f, err
	}

	return c, f, nil
}

func (a *Adapter) fromWire(text string) (*container.ValueContainer, error) {
	clean, err := normalize(text)
	if err != nil {
		return nil, err
	}
	return wire.DeserializeCppWireWith(clean, container.WithMaxValues(a.maxValues))
}

// Encode writes c in the format f.
//
// Returns:
//   - string: The encoded text
//   - error: errs.ErrUnsupportedFormat for format.FormatUnknown, or the
//     encoder's error
func (a *Adapter) Encode(c *container.ValueContainer, f format.SerializationFormat) (string, error) {
	switch f {
	case format.FormatJSONV2:
		return a.ToV2JSON(c)
	case format.FormatCppJSON:
		return a.ToCppJSON(c)
	case format.FormatPythonJSON:
		return a.ToPythonJSON(c)
	case format.FormatWire:
		return wire.SerializeCppWire(c)
	default:
		return "", fmt.Errorf("%w: %w: cannot convert to format %s", errs.ErrInvalidDataFormat, errs.ErrUnsupportedFormat, f)
	}
}

// ConvertFormat converts text from its detected format to target.
//
// The input is always decoded into a container first. Container and Array
// values written to the wire protocol keep only their child count, and
// reading such text back fails.
func (a *Adapter) ConvertFormat(text string, target format.SerializationFormat) (string, error) {
	if target == format.FormatUnknown {
		return "", fmt.Errorf("%w: %w: cannot convert to format %s", errs.ErrInvalidDataFormat, errs.ErrUnsupportedFormat, target)
	}

	c, source, err := a.Decode(text)
	if err != nil {
		return "", err
	}

	out, err := a.Encode(c, target)
	if err != nil {
		return "", err
	}
	a.logger.Debug().
		Stringer("from", source).
		Stringer("to", target).
		Int("values", c.ValueCount()).
		Msg("converted container")

	return out, nil
}

// DetectFormat reports the format of text using the default adapter.
func DetectFormat(text string) format.SerializationFormat {
	return defaultAdapter.DetectFormat(text)
}

// ConvertFormat converts text to target using the default adapter, or a
// pretty-printing one when pretty is set.
func ConvertFormat(text string, target format.SerializationFormat, pretty bool) (string, error) {
	a := defaultAdapter
	if pretty {
		a = prettyAdapter
	}

	return a.ConvertFormat(text, target)
}

var prettyAdapter, _ = NewAdapter(WithPretty(true))
