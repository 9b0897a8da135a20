package format

import "strings"

type (
	// ValueType is the one-byte tag identifying the kind of a value.
	//
	// The numeric values are part of the wire contract and must never change.
	ValueType uint8
)

const (
	TypeNull      ValueType = 0  // TypeNull represents the absence of data.
	TypeBool      ValueType = 1  // TypeBool represents a boolean.
	TypeShort     ValueType = 2  // TypeShort represents a signed 16-bit integer.
	TypeUShort    ValueType = 3  // TypeUShort represents an unsigned 16-bit integer.
	TypeInt       ValueType = 4  // TypeInt represents a signed 32-bit integer.
	TypeUInt      ValueType = 5  // TypeUInt represents an unsigned 32-bit integer.
	TypeLong      ValueType = 6  // TypeLong represents a signed integer limited to 32-bit range.
	TypeULong     ValueType = 7  // TypeULong represents an unsigned integer limited to 32-bit range.
	TypeLLong     ValueType = 8  // TypeLLong represents a signed 64-bit integer.
	TypeULLong    ValueType = 9  // TypeULLong represents an unsigned 64-bit integer.
	TypeFloat     ValueType = 10 // TypeFloat represents a 32-bit IEEE-754 float.
	TypeDouble    ValueType = 11 // TypeDouble represents a 64-bit IEEE-754 float.
	TypeBytes     ValueType = 12 // TypeBytes represents raw binary data.
	TypeString    ValueType = 13 // TypeString represents UTF-8 text.
	TypeContainer ValueType = 14 // TypeContainer represents a named group of child values.
	TypeArray     ValueType = 15 // TypeArray represents an ordered list of values.

	maxValueType = TypeArray
)

var cppNames = [...]string{
	TypeNull:      "null_value",
	TypeBool:      "bool_value",
	TypeShort:     "short_value",
	TypeUShort:    "ushort_value",
	TypeInt:       "int_value",
	TypeUInt:      "uint_value",
	TypeLong:      "long_value",
	TypeULong:     "ulong_value",
	TypeLLong:     "llong_value",
	TypeULLong:    "ullong_value",
	TypeFloat:     "float_value",
	TypeDouble:    "double_value",
	TypeBytes:     "bytes_value",
	TypeString:    "string_value",
	TypeContainer: "container_value",
	TypeArray:     "array_value",
}

var shortNames = [...]string{
	TypeNull:      "null",
	TypeBool:      "bool",
	TypeShort:     "short",
	TypeUShort:    "ushort",
	TypeInt:       "int",
	TypeUInt:      "uint",
	TypeLong:      "long",
	TypeULong:     "ulong",
	TypeLLong:     "llong",
	TypeULLong:    "ullong",
	TypeFloat:     "float",
	TypeDouble:    "double",
	TypeBytes:     "bytes",
	TypeString:    "string",
	TypeContainer: "container",
	TypeArray:     "array",
}

// FromByte converts a raw tag byte into a ValueType.
// It reports false when b is outside the 0..15 range.
func FromByte(b byte) (ValueType, bool) {
	t := ValueType(b)
	if !t.IsValid() {
		return TypeNull, false
	}

	return t, true
}

// IsValid reports whether t is one of the sixteen defined kinds.
func (t ValueType) IsValid() bool {
	return t <= maxValueType
}

// IsNumeric reports whether t is an integer or floating-point kind.
func (t ValueType) IsNumeric() bool {
	return t.IsInteger() || t.IsFloat()
}

// IsInteger reports whether t is one of the eight integer kinds.
func (t ValueType) IsInteger() bool {
	return t >= TypeShort && t <= TypeULLong
}

// IsSigned reports whether t is a signed integer kind.
func (t ValueType) IsSigned() bool {
	switch t {
	case TypeShort, TypeInt, TypeLong, TypeLLong:
		return true
	default:
		return false
	}
}

// IsFloat reports whether t is Float or Double.
func (t ValueType) IsFloat() bool {
	return t == TypeFloat || t == TypeDouble
}

// IsNested reports whether t holds child values.
func (t ValueType) IsNested() bool {
	return t == TypeContainer || t == TypeArray
}

// SizeBytes returns the fixed payload width of t in bytes.
//
// Variable-width kinds (Bytes, String, Container, Array) return 0.
// Long and ULong report 4 because their values are restricted to 32-bit
// range and serialize as 4 bytes.
func (t ValueType) SizeBytes() int {
	switch t {
	case TypeBool:
		return 1
	case TypeShort, TypeUShort:
		return 2
	case TypeInt, TypeUInt, TypeLong, TypeULong, TypeFloat:
		return 4
	case TypeLLong, TypeULLong, TypeDouble:
		return 8
	default:
		return 0
	}
}

// IsFixedSize reports whether every payload of t has the same width.
func (t ValueType) IsFixedSize() bool {
	return t == TypeNull || t.SizeBytes() > 0
}

// CppName returns the wire protocol name of t, e.g. "int_value".
func (t ValueType) CppName() string {
	if !t.IsValid() {
		return "unknown_value"
	}

	return cppNames[t]
}

// ShortName returns the JSON name of t, e.g. "int".
func (t ValueType) ShortName() string {
	if !t.IsValid() {
		return "unknown"
	}

	return shortNames[t]
}

// String returns the short JSON name of the type, such as "int".
func (t ValueType) String() string {
	return t.ShortName()
}

// ParseCppName resolves a wire protocol name such as "string_value".
func ParseCppName(name string) (ValueType, bool) {
	for i, n := range cppNames {
		if n == name {
			return ValueType(i), true
		}
	}

	return TypeNull, false
}

// ParseShortName resolves a JSON type name such as "double".
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseShortName(name string) (ValueType, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range shortNames {
		if n == name {
			return ValueType(i), true
		}
	}

	return TypeNull, false
}
