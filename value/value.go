// Package value implements the immutable, named, typed values stored in a container.
//
// A Value is a closed sum over the sixteen kinds of format.ValueType. Every
// operation dispatches on the kind tag, so adding a kind means extending the
// switches in this package and nothing else.
//
// Values never change after construction and are shared by pointer. Nested
// values (Container and Array) own copies of their children slices, so a
// caller cannot mutate a value through the slice it passed in.
//
// # Construction
//
//	v := value.NewInt("count", 42)
//	s := value.NewString("name", "Alice")
//	l, err := value.NewLong("ts", 1<<40) // fails: Long is limited to 32-bit range
//	c := value.NewContainer("user", v, s)
//
// # Conversion
//
// The To* methods convert between numeric kinds with range checking:
//
//	n, err := v.ToShort()   // 42, nil
//	f, err := v.ToDouble()  // 42.0, nil
//	_, err = s.ToInt()      // errs.ErrInvalidTypeConversion
package value

import (
	"math"

	"github.com/arloliu/valuecontainer/errs"
	"github.com/arloliu/valuecontainer/format"
)

// Value is a named, typed unit of data.
//
// The zero Value is an unnamed Null.
type Value struct {
	name     string
	typ      format.ValueType
	bits     uint64  // Bool and integer kinds; signed kinds store two's complement
	num      float64 // Float and Double; Float values are exactly representable as float32
	text     string  // String
	data     []byte  // Bytes
	children []*Value
}

// NewNull creates a Null value.
func NewNull(name string) *Value {
	return &Value{name: name, typ: format.TypeNull}
}

// NewBool creates a Bool value.
func NewBool(name string, b bool) *Value {
	v := &Value{name: name, typ: format.TypeBool}
	if b {
		v.bits = 1
	}

	return v
}

// NewShort creates a Short value.
func NewShort(name string, n int16) *Value {
	return newSigned(name, format.TypeShort, int64(n))
}

// NewUShort creates a UShort value.
func NewUShort(name string, n uint16) *Value {
	return &Value{name: name, typ: format.TypeUShort, bits: uint64(n)}
}

// NewInt creates an Int value.
func NewInt(name string, n int32) *Value {
	return newSigned(name, format.TypeInt, int64(n))
}

// NewUInt creates a UInt value.
func NewUInt(name string, n uint32) *Value {
	return &Value{name: name, typ: format.TypeUInt, bits: uint64(n)}
}

// NewLong creates a Long value.
//
// Long is restricted to the signed 32-bit range and serializes as 4 bytes.
// Use NewLLong for the full 64-bit range.
//
// Returns:
//   - *Value: The new value
//   - error: errs.ErrOutOfRange if n does not fit in 32 bits
func NewLong(name string, n int64) (*Value, error) {
	if n < math.MinInt32 || n > math.MaxInt32 {
		return nil, outOfRange(format.TypeLong, n)
	}

	return newSigned(name, format.TypeLong, n), nil
}

// NewULong creates a ULong value.
//
// ULong is restricted to the unsigned 32-bit range and serializes as 4 bytes.
// Use NewULLong for the full 64-bit range.
//
// Returns:
//   - *Value: The new value
//   - error: errs.ErrOutOfRange if n does not fit in 32 bits
func NewULong(name string, n uint64) (*Value, error) {
	if n > math.MaxUint32 {
		return nil, outOfRange(format.TypeULong, n)
	}

	return &Value{name: name, typ: format.TypeULong, bits: n}, nil
}

// NewLLong creates an LLong value.
func NewLLong(name string, n int64) *Value {
	return newSigned(name, format.TypeLLong, n)
}

// NewULLong creates a ULLong value.
func NewULLong(name string, n uint64) *Value {
	return &Value{name: name, typ: format.TypeULLong, bits: n}
}

// NewFloat creates a Float value.
func NewFloat(name string, f float32) *Value {
	return &Value{name: name, typ: format.TypeFloat, num: float64(f)}
}

// NewDouble creates a Double value.
func NewDouble(name string, f float64) *Value {
	return &Value{name: name, typ: format.TypeDouble, num: f}
}

// NewString creates a String value.
func NewString(name, s string) *Value {
	return &Value{name: name, typ: format.TypeString, text: s}
}

// NewBytes creates a Bytes value holding a copy of b.
func NewBytes(name string, b []byte) *Value {
	data := make([]byte, len(b))
	copy(data, b)

	return &Value{name: name, typ: format.TypeBytes, data: data}
}

// NewContainer creates a Container value with the given children.
// Nil children are skipped.
func NewContainer(name string, children ...*Value) *Value {
	return &Value{name: name, typ: format.TypeContainer, children: compact(children)}
}

// NewArray creates an Array value with the given elements.
// Nil elements are skipped.
func NewArray(name string, elements ...*Value) *Value {
	return &Value{name: name, typ: format.TypeArray, children: compact(elements)}
}

func newSigned(name string, typ format.ValueType, n int64) *Value {
	return &Value{name: name, typ: typ, bits: uint64(n)}
}

func compact(in []*Value) []*Value {
	out := make([]*Value, 0, len(in))
	for _, v := range in {
		if v != nil {
			out = append(out, v)
		}
	}

	return out
}

// Name returns the value name. Names need not be unique within a container.
func (v *Value) Name() string {
	return v.name
}

// Type returns the kind tag of the value.
func (v *Value) Type() format.ValueType {
	return v.typ
}

// IsNull reports whether v is a Null value.
func (v *Value) IsNull() bool { return v.typ == format.TypeNull }

// IsBool reports whether v is a Bool value.
func (v *Value) IsBool() bool { return v.typ == format.TypeBool }

// IsNumeric reports whether v is an integer, Float or Double value.
func (v *Value) IsNumeric() bool { return v.typ.IsNumeric() }

// IsString reports whether v is a String value.
func (v *Value) IsString() bool { return v.typ == format.TypeString }

// IsBytes reports whether v is a Bytes value.
func (v *Value) IsBytes() bool { return v.typ == format.TypeBytes }

// IsContainer reports whether v is a nested Container value.
func (v *Value) IsContainer() bool { return v.typ == format.TypeContainer }

// IsArray reports whether v is an Array value.
func (v *Value) IsArray() bool { return v.typ == format.TypeArray }

// Text returns the string payload of a String value, or "" for any other kind.
func (v *Value) Text() string {
	return v.text
}

// Data returns a copy of the payload of a Bytes value, or nil for any other kind.
func (v *Value) Data() []byte {
	if v.typ != format.TypeBytes {
		return nil
	}
	out := make([]byte, len(v.data))
	copy(out, v.data)

	return out
}

// Children returns a copy of the child list of a Container or Array value.
func (v *Value) Children() []*Value {
	if !v.typ.IsNested() {
		return nil
	}
	out := make([]*Value, len(v.children))
	copy(out, v.children)

	return out
}

// ChildCount returns the number of children of a Container or Array value.
func (v *Value) ChildCount() int {
	return len(v.children)
}

// Child returns the first direct child named name.
func (v *Value) Child(name string) (*Value, bool) {
	for _, c := range v.children {
		if c.name == name {
			return c, true
		}
	}

	return nil, false
}

// WithName returns a value identical to v under a different name.
// Children are shared with v.
func (v *Value) WithName(name string) *Value {
	out := *v
	out.name = name

	return &out
}

// Clone returns a deep copy of v. The copy shares no storage with v.
func (v *Value) Clone() *Value {
	out := *v
	if v.data != nil {
		out.data = make([]byte, len(v.data))
		copy(out.data, v.data)
	}
	if v.children != nil {
		out.children = make([]*Value, len(v.children))
		for i, c := range v.children {
			out.children[i] = c.Clone()
		}
	}

	return &out
}

// Equal reports whether a and b have the same name, kind and payload, recursively.
// Floating-point payloads are compared bit for bit, so NaN equals NaN.
func Equal(a, b *Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.name != b.name || a.typ != b.typ {
		return false
	}

	switch a.typ {
	case format.TypeFloat, format.TypeDouble:
		return math.Float64bits(a.num) == math.Float64bits(b.num)
	case format.TypeString:
		return a.text == b.text
	case format.TypeBytes:
		return string(a.data) == string(b.data)
	case format.TypeContainer, format.TypeArray:
		if len(a.children) != len(b.children) {
			return false
		}
		for i := range a.children {
			if !Equal(a.children[i], b.children[i]) {
				return false
			}
		}

		return true
	default:
		return a.bits == b.bits
	}
}

func outOfRange(typ format.ValueType, n any) error {
	return errs.OutOfRange("literal", typ.ShortName(), n)
}
