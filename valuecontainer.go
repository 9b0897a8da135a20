// Package valuecontainer provides a typed value container that C++, Python,
// .NET, Rust and Go programs can exchange without losing type information.
//
// A container carries routing metadata (source, target, message type and
// version) and an ordered list of named values. Each value is one of sixteen
// kinds, from Null and Bool through the signed and unsigned integer widths,
// Float, Double, String and Bytes, to the nested Container and Array kinds.
//
// # Core Features
//
//   - Immutable values with range-checked construction and conversion
//   - Thread-safe container with name lookup and a capacity ceiling
//   - Binary envelope with an xxHash64 checksum
//   - The @header/@data text wire protocol of the C++ library
//   - v2, C++ and flat JSON schemas with format detection and conversion
//
// # Basic Usage
//
// Building and encoding a container:
//
//	import (
//	    "github.com/arloliu/valuecontainer"
//	    "github.com/arloliu/valuecontainer/container"
//	    "github.com/arloliu/valuecontainer/format"
//	    "github.com/arloliu/valuecontainer/value"
//	)
//
//	c, _ := valuecontainer.NewContainer(
//	    container.WithSource("client", "session"),
//	    container.WithTarget("server", "handler"),
//	    container.WithMessageType("user_data"),
//	)
//	_ = c.AddValue(value.NewInt("count", 42))
//	_ = c.AddValue(value.NewString("name", "Alice"))
//
//	data, _ := valuecontainer.Marshal(c)                         // binary
//	text, _ := valuecontainer.Encode(c, format.FormatWire)       // wire protocol
//	doc, _ := valuecontainer.Encode(c, format.FormatJSONV2)      // v2 JSON
//
// Reading any text format back:
//
//	c, f, err := valuecontainer.Decode(text)
//	fmt.Println(f) // "wire"
//
// # Package Structure
//
// This package provides top-level wrappers around the container, wire and
// jsonv2 packages for the most common use cases. Use those packages directly
// for options such as pretty printing, lenient JSON or a custom logger.
package valuecontainer

import (
	"github.com/arloliu/valuecontainer/container"
	"github.com/arloliu/valuecontainer/format"
	"github.com/arloliu/valuecontainer/jsonv2"
)

// NewContainer creates a container with the given options.
//
// Available options:
//   - container.WithSource(id, subID) / container.WithTarget(id, subID)
//   - container.WithMessageType(messageType)
//   - container.WithVersion(version)
//   - container.WithMaxValues(n)
//
// Returns an error if an option is invalid.
//
// Example:
//
//	c, err := valuecontainer.NewContainer(
//	    container.WithMessageType("user_data"),
//	    container.WithMaxValues(500),
//	)
func NewContainer(opts ...container.Option) (*container.ValueContainer, error) {
	return container.New(opts...)
}

// NewDefaultContainer creates an empty container with the default header
// (message type "data_container", version "1.0.0.0") and capacity.
func NewDefaultContainer() *container.ValueContainer {
	return container.NewWithMaxValues(container.DefaultMaxValues)
}

// Marshal encodes c in the binary envelope format.
// The envelope is read only by Unmarshal; use Encode for cross-language exchange.
//
// Parameters:
//   - c: The container to encode
//
// Returns:
//   - []byte: The encoded envelope, checksum included
//   - error: An error if a string does not fit the envelope
func Marshal(c *container.ValueContainer) ([]byte, error) {
	return c.Serialize()
}

// Unmarshal decodes a binary envelope produced by Marshal.
//
// Returns an error matching errs.ErrInvalidDataFormat for malformed input
// and errs.ErrChecksumMismatch for corrupted input.
func Unmarshal(data []byte) (*container.ValueContainer, error) {
	return container.Deserialize(data)
}

// Encode writes c in the text format f: v2 JSON, C++ JSON, flat JSON or the
// wire protocol.
//
// Example:
//
//	text, err := valuecontainer.Encode(c, format.FormatCppJSON)
func Encode(c *container.ValueContainer, f format.SerializationFormat) (string, error) {
	return jsonv2.Default().Encode(c, f)
}

// Decode detects the format of text and decodes it.
//
// Returns:
//   - *container.ValueContainer: The decoded container
//   - format.SerializationFormat: The detected format
//   - error: errs.ErrUnsupportedFormat if no format matches, or the error of
//     the format's decoder
func Decode(text string) (*container.ValueContainer, format.SerializationFormat, error) {
	return jsonv2.Default().Decode(text)
}

// Detect reports the format of text without decoding it.
func Detect(text string) format.SerializationFormat {
	return jsonv2.DetectFormat(text)
}

// Convert decodes text in whatever format it is in and encodes the result as
// target.
//
// Example:
//
//	doc, err := valuecontainer.Convert("@header={{[5,ping];}};@data={{}};", format.FormatJSONV2)
func Convert(text string, target format.SerializationFormat) (string, error) {
	return jsonv2.ConvertFormat(text, target, false)
}
