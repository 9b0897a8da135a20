package format

import "strings"

// SerializationFormat identifies one of the supported textual encodings of a container.
type SerializationFormat uint8

const (
	FormatUnknown    SerializationFormat = 0x0 // FormatUnknown represents unrecognised input.
	FormatJSONV2     SerializationFormat = 0x1 // FormatJSONV2 represents the unified v2.0 JSON document.
	FormatCppJSON    SerializationFormat = 0x2 // FormatCppJSON represents the legacy nested header/values JSON.
	FormatPythonJSON SerializationFormat = 0x3 // FormatPythonJSON represents the flat header + values array JSON.
	FormatWire       SerializationFormat = 0x4 // FormatWire represents the @header/@data text protocol.
)

// String returns the canonical short name of the format.
func (f SerializationFormat) String() string {
	switch f {
	case FormatJSONV2:
		return "v2.0"
	case FormatCppJSON:
		return "cpp"
	case FormatPythonJSON:
		return "python"
	case FormatWire:
		return "wire"
	default:
		return "unknown"
	}
}

// ParseSerializationFormat resolves a format name as printed by String.
// A few common aliases ("v2", "json", "flat", "dotnet") are accepted as well.
func ParseSerializationFormat(s string) (SerializationFormat, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "v2.0", "v2", "json":
		return FormatJSONV2, true
	case "cpp", "c++":
		return FormatCppJSON, true
	case "python", "flat", "dotnet", ".net":
		return FormatPythonJSON, true
	case "wire":
		return FormatWire, true
	default:
		return FormatUnknown, false
	}
}
