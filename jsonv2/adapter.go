// Package jsonv2 reads and writes containers as JSON and converts between
// every supported text format.
//
// Three JSON schemas are supported:
//
//   - v2, the unified schema:
//     {"container":{"version":"2.0","metadata":{...},"values":[...]}}
//   - cpp, the nested schema of the C++ library: a "header" object plus a
//     "values" object keyed by value name, every data field a string
//   - python, the flat schema: header fields at top level plus a "values"
//     array of v2 value objects
//
// DetectFormat recognizes these three and the text wire protocol.
// ConvertFormat always decodes into a container.ValueContainer first and
// encodes from it, so no two formats are ever translated directly.
//
// Input may carry a UTF-8 or UTF-16 byte order mark; it is normalized to
// UTF-8 before anything else looks at it.
package jsonv2

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tidwall/jsonc"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/arloliu/valuecontainer/container"
	"github.com/arloliu/valuecontainer/errs"
	"github.com/arloliu/valuecontainer/internal/options"
	"github.com/arloliu/valuecontainer/value"
)

// FormatVersion is the value of container.version in a v2 document.
const FormatVersion = "2.0"

// Adapter encodes and decodes containers in the JSON schemas.
//
// An Adapter is immutable after NewAdapter returns and is safe for
// concurrent use.
type Adapter struct {
	pretty    bool
	lenient   bool
	maxValues int
	logger    zerolog.Logger
}

// Option configures an Adapter.
type Option = options.Option[*Adapter]

// WithPretty makes every encoder indent its output by two spaces.
func WithPretty(pretty bool) Option {
	return options.NoError(func(a *Adapter) {
		a.pretty = pretty
	})
}

// WithLenient makes the JSON decoders accept // and /* */ comments and
// trailing commas.
func WithLenient(lenient bool) Option {
	return options.NoError(func(a *Adapter) {
		a.lenient = lenient
	})
}

// WithLogger sets the logger that receives detection and conversion events.
func WithLogger(logger zerolog.Logger) Option {
	return options.NoError(func(a *Adapter) {
		a.logger = logger
	})
}

// WithMaxValues sets the capacity of the containers the decoders build.
// n must be in 1..container.AbsoluteMaxValues.
func WithMaxValues(n int) Option {
	return options.New(func(a *Adapter) error {
		if n <= 0 || n > container.AbsoluteMaxValues {
			return fmt.Errorf("%w: max values %d not in 1..%d", errs.ErrOutOfRange, n, container.AbsoluteMaxValues)
		}
		a.maxValues = n

		return nil
	})
}

// NewAdapter creates an Adapter with compact output, strict JSON, a no-op
// logger and container.DefaultMaxValues, then applies opts.
func NewAdapter(opts ...Option) (*Adapter, error) {
	a := &Adapter{
		maxValues: container.DefaultMaxValues,
		logger:    zerolog.Nop(),
	}
	if err := options.Apply(a, opts...); err != nil {
		return nil, err
	}

	return a, nil
}

var defaultAdapter, _ = NewAdapter()

// Default returns the adapter used by the package-level functions.
func Default() *Adapter {
	return defaultAdapter
}

// Pretty reports whether the adapter indents its output.
func (a *Adapter) Pretty() bool {
	return a.pretty
}

// MaxValues returns the capacity of decoded containers.
func (a *Adapter) MaxValues() int {
	return a.maxValues
}

// normalize converts text to UTF-8 according to its byte order mark and
// trims surrounding whitespace. Text without a BOM is taken as UTF-8.
func normalize(text string) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.String(decoder, text)
	if err != nil {
		return "", fmt.Errorf("%w: cannot decode text: %w", errs.ErrInvalidDataFormat, err)
	}

	return strings.TrimSpace(out), nil
}

// jsonInput normalizes text and, for a lenient adapter, strips comments and
// trailing commas.
func (a *Adapter) jsonInput(text string) ([]byte, error) {
	clean, err := normalize(text)
	if err != nil {
		return nil, err
	}
	if a.lenient {
		return jsonc.ToJSON([]byte(clean)), nil
	}

	return []byte(clean), nil
}

func decodeJSON(data []byte, target any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON: %w", errs.ErrInvalidDataFormat, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: invalid JSON: trailing data after document", errs.ErrInvalidDataFormat)
	}

	return nil
}

// encodeJSON marshals v compactly without HTML escaping.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrSerialization, err)
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// finish returns compact JSON as a string, indented if the adapter is pretty.
func (a *Adapter) finish(compact []byte) (string, error) {
	if !a.pretty {
		return string(compact), nil
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return "", fmt.Errorf("%w: %w", errs.ErrSerialization, err)
	}

	return out.String(), nil
}

// build creates a container holding h and values, sized for this adapter.
func (a *Adapter) build(h container.Header, values []*value.Value) (*container.ValueContainer, error) {
	c, err := container.New(container.WithHeader(h), container.WithMaxValues(a.maxValues))
	if err != nil {
		return nil, err
	}
	if err := c.AddValues(values...); err != nil {
		return nil, err
	}

	return c, nil
}
