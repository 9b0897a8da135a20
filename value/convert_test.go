package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/valuecontainer/errs"
)

func TestToBool(t *testing.T) {
	b, err := NewBool("b", true).ToBool()
	require.NoError(t, err)
	require.True(t, b)

	_, err = NewInt("i", 1).ToBool()
	require.ErrorIs(t, err, errs.ErrInvalidTypeConversion)

	_, err = NewBool("b", true).ToInt()
	require.ErrorIs(t, err, errs.ErrInvalidTypeConversion)
}

func TestIntegerConversions(t *testing.T) {
	t.Run("widening always succeeds", func(t *testing.T) {
		v := NewShort("s", -300)

		i, err := v.ToInt()
		require.NoError(t, err)
		require.Equal(t, int32(-300), i)

		l, err := v.ToLong()
		require.NoError(t, err)
		require.Equal(t, int64(-300), l)

		d, err := v.ToDouble()
		require.NoError(t, err)
		require.InDelta(t, -300.0, d, 0)

		f, err := v.ToFloat()
		require.NoError(t, err)
		require.InDelta(t, float32(-300), f, 0)
	})

	t.Run("narrowing checks range", func(t *testing.T) {
		v := NewInt("i", 70000)

		_, err := v.ToShort()
		require.ErrorIs(t, err, errs.ErrOutOfRange)
		_, err = v.ToUShort()
		require.ErrorIs(t, err, errs.ErrOutOfRange)

		u, err := NewInt("i", 65535).ToUShort()
		require.NoError(t, err)
		require.Equal(t, uint16(65535), u)
	})

	t.Run("negative to unsigned fails", func(t *testing.T) {
		_, err := NewLLong("n", -1).ToULong()
		require.ErrorIs(t, err, errs.ErrInvalidTypeConversion)
		_, err = NewShort("n", -1).ToUInt()
		require.ErrorIs(t, err, errs.ErrInvalidTypeConversion)
	})

	t.Run("large unsigned to signed fails", func(t *testing.T) {
		_, err := NewULLong("u", math.MaxUint64).ToLong()
		require.ErrorIs(t, err, errs.ErrOutOfRange)

		n, err := NewULLong("u", math.MaxInt64).ToLong()
		require.NoError(t, err)
		require.Equal(t, int64(math.MaxInt64), n)
	})
}

func TestFloatConversions(t *testing.T) {
	t.Run("truncates toward zero", func(t *testing.T) {
		n, err := NewDouble("d", 3.99).ToInt()
		require.NoError(t, err)
		require.Equal(t, int32(3), n)

		n, err = NewDouble("d", -3.99).ToInt()
		require.NoError(t, err)
		require.Equal(t, int32(-3), n)

		u, err := NewFloat("f", 7.5).ToUShort()
		require.NoError(t, err)
		require.Equal(t, uint16(7), u)
	})

	t.Run("non-finite fails", func(t *testing.T) {
		for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
			_, err := NewDouble("d", f).ToLong()
			require.ErrorIs(t, err, errs.ErrInvalidTypeConversion)
			_, err = NewDouble("d", f).ToULong()
			require.ErrorIs(t, err, errs.ErrInvalidTypeConversion)
		}
	})

	t.Run("out of range fails", func(t *testing.T) {
		_, err := NewDouble("d", 40000).ToShort()
		require.ErrorIs(t, err, errs.ErrOutOfRange)
		_, err = NewDouble("d", -0.5e20).ToLong()
		require.ErrorIs(t, err, errs.ErrOutOfRange)
		_, err = NewDouble("d", math.Exp2(63)).ToLong()
		require.ErrorIs(t, err, errs.ErrOutOfRange)
		_, err = NewDouble("d", math.Exp2(64)).ToULong()
		require.ErrorIs(t, err, errs.ErrOutOfRange)
		_, err = NewDouble("d", -1).ToUInt()
		require.ErrorIs(t, err, errs.ErrOutOfRange)
	})

	t.Run("negative fraction truncates to zero", func(t *testing.T) {
		u, err := NewDouble("d", -0.5).ToUInt()
		require.NoError(t, err)
		require.Equal(t, uint32(0), u)
	})

	t.Run("double to float range", func(t *testing.T) {
		_, err := NewDouble("d", 1e300).ToFloat()
		require.ErrorIs(t, err, errs.ErrOutOfRange)

		f, err := NewDouble("d", 0.25).ToFloat()
		require.NoError(t, err)
		require.InDelta(t, float32(0.25), f, 0)

		f, err = NewDouble("d", math.Inf(1)).ToFloat()
		require.NoError(t, err)
		require.True(t, math.IsInf(float64(f), 1))
	})

	t.Run("float to double is exact", func(t *testing.T) {
		d, err := NewFloat("f", 0.1).ToDouble()
		require.NoError(t, err)
		require.InDelta(t, float64(float32(0.1)), d, 0)
	})
}

func TestContainerCountConversion(t *testing.T) {
	c := NewContainer("c", NewInt("a", 1), NewInt("b", 2), NewInt("c", 3))

	n, err := c.ToLong()
	require.NoError(t, err)
	require.Equal(t, int64(3), n)

	u, err := c.ToULong()
	require.NoError(t, err)
	require.Equal(t, uint64(3), u)

	_, err = c.ToInt()
	require.ErrorIs(t, err, errs.ErrInvalidTypeConversion)

	_, err = NewArray("a", NewInt("x", 1)).ToLong()
	require.ErrorIs(t, err, errs.ErrInvalidTypeConversion)
}

func TestUnsupportedConversions(t *testing.T) {
	for _, v := range []*Value{NewNull("n"), NewString("s", "12"), NewBytes("b", []byte{1}), NewArray("a")} {
		t.Run(v.Type().String(), func(t *testing.T) {
			_, err := v.ToInt()
			require.ErrorIs(t, err, errs.ErrInvalidTypeConversion)
			_, err = v.ToDouble()
			require.ErrorIs(t, err, errs.ErrInvalidTypeConversion)
			_, err = v.ToFloat()
			require.ErrorIs(t, err, errs.ErrInvalidTypeConversion)
			_, err = v.ToBool()
			require.ErrorIs(t, err, errs.ErrInvalidTypeConversion)
		})
	}
}
