package value

import (
	"math"

	"github.com/arloliu/valuecontainer/errs"
	"github.com/arloliu/valuecontainer/format"
)

// ToBool returns the payload of a Bool value. Every other kind fails.
func (v *Value) ToBool() (bool, error) {
	if v.typ != format.TypeBool {
		return false, v.unsupported("bool")
	}

	return v.bits != 0, nil
}

// ToShort converts v to int16.
func (v *Value) ToShort() (int16, error) {
	n, err := v.toSigned(math.MinInt16, math.MaxInt16, "short")
	return int16(n), err
}

// ToUShort converts v to uint16.
func (v *Value) ToUShort() (uint16, error) {
	n, err := v.toUnsigned(math.MaxUint16, "ushort")
	return uint16(n), err
}

// ToInt converts v to int32.
func (v *Value) ToInt() (int32, error) {
	n, err := v.toSigned(math.MinInt32, math.MaxInt32, "int")
	return int32(n), err
}

// ToUInt converts v to uint32.
func (v *Value) ToUInt() (uint32, error) {
	n, err := v.toUnsigned(math.MaxUint32, "uint")
	return uint32(n), err
}

// ToLong converts v to int64.
//
// A Container converts to its child count.
func (v *Value) ToLong() (int64, error) {
	if v.typ == format.TypeContainer {
		return int64(len(v.children)), nil
	}

	return v.toSigned(math.MinInt64, math.MaxInt64, "long")
}

// ToULong converts v to uint64.
//
// A Container converts to its child count.
func (v *Value) ToULong() (uint64, error) {
	if v.typ == format.TypeContainer {
		return uint64(len(v.children)), nil
	}

	return v.toUnsigned(math.MaxUint64, "ulong")
}

// ToFloat converts v to float32.
//
// Integers always convert, possibly losing precision. A Double that is
// finite but beyond float32 range fails.
func (v *Value) ToFloat() (float32, error) {
	switch {
	case v.typ.IsInteger():
		if v.typ.IsSigned() {
			return float32(int64(v.bits)), nil
		}

		return float32(v.bits), nil
	case v.typ.IsFloat():
		if !math.IsInf(v.num, 0) && !math.IsNaN(v.num) && math.Abs(v.num) > math.MaxFloat32 {
			return 0, errs.OutOfRange(v.typ.ShortName(), "float", v.num)
		}

		return float32(v.num), nil
	default:
		return 0, v.unsupported("float")
	}
}

// ToDouble converts v to float64. Integers always convert.
func (v *Value) ToDouble() (float64, error) {
	switch {
	case v.typ.IsInteger():
		if v.typ.IsSigned() {
			return float64(int64(v.bits)), nil
		}

		return float64(v.bits), nil
	case v.typ.IsFloat():
		return v.num, nil
	default:
		return 0, v.unsupported("double")
	}
}

func (v *Value) toSigned(lo, hi int64, to string) (int64, error) {
	switch {
	case v.typ.IsInteger():
		if v.typ.IsSigned() {
			n := int64(v.bits)
			if n < lo || n > hi {
				return 0, errs.OutOfRange(v.typ.ShortName(), to, n)
			}

			return n, nil
		}
		if v.bits > uint64(hi) {
			return 0, errs.OutOfRange(v.typ.ShortName(), to, v.bits)
		}

		return int64(v.bits), nil
	case v.typ.IsFloat():
		t, err := v.truncated(to)
		if err != nil {
			return 0, err
		}
		// float64(hi)+1 rounds to 2^63 for int64, which is the first value out of range.
		if t < float64(lo) || t >= float64(hi)+1 {
			return 0, errs.OutOfRange(v.typ.ShortName(), to, v.num)
		}

		return int64(t), nil
	default:
		return 0, v.unsupported(to)
	}
}

func (v *Value) toUnsigned(hi uint64, to string) (uint64, error) {
	switch {
	case v.typ.IsInteger():
		if v.typ.IsSigned() {
			n := int64(v.bits)
			if n < 0 || uint64(n) > hi {
				return 0, errs.OutOfRange(v.typ.ShortName(), to, n)
			}

			return uint64(n), nil
		}
		if v.bits > hi {
			return 0, errs.OutOfRange(v.typ.ShortName(), to, v.bits)
		}

		return v.bits, nil
	case v.typ.IsFloat():
		t, err := v.truncated(to)
		if err != nil {
			return 0, err
		}
		if t < 0 || t >= float64(hi)+1 {
			return 0, errs.OutOfRange(v.typ.ShortName(), to, v.num)
		}

		return uint64(t), nil
	default:
		return 0, v.unsupported(to)
	}
}

func (v *Value) truncated(to string) (float64, error) {
	if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
		return 0, &errs.ConversionError{From: v.typ.ShortName(), To: to, Err: errs.ErrOutOfRange}
	}

	return math.Trunc(v.num), nil
}

func (v *Value) unsupported(to string) error {
	return errs.NewConversionError(v.typ.ShortName(), to)
}
