package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/valuecontainer/errs"
	"github.com/arloliu/valuecontainer/format"
)

func TestParseText(t *testing.T) {
	tests := []struct {
		typ  format.ValueType
		text string
		want string
	}{
		{format.TypeNull, "", "null"},
		{format.TypeNull, "null", "null"},
		{format.TypeBool, "true", "true"},
		{format.TypeBool, "0", "false"},
		{format.TypeShort, "-32768", "-32768"},
		{format.TypeUShort, "65535", "65535"},
		{format.TypeInt, " 42 ", "42"},
		{format.TypeLong, "2147483647", "2147483647"},
		{format.TypeULong, "4294967295", "4294967295"},
		{format.TypeLLong, "-9223372036854775808", "-9223372036854775808"},
		{format.TypeULLong, "18446744073709551615", "18446744073709551615"},
		{format.TypeFloat, "1.5", "1.5"},
		{format.TypeDouble, "3.14159", "3.14159"},
		{format.TypeDouble, "+Inf", "+Inf"},
		{format.TypeString, " keep spaces ", " keep spaces "},
		{format.TypeBytes, "00ff10", "<3 bytes>"},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String()+"/"+tt.text, func(t *testing.T) {
			v, err := ParseText("v", tt.typ, tt.text)
			require.NoError(t, err)
			require.Equal(t, tt.typ, v.Type())
			require.Equal(t, tt.want, v.String())
		})
	}

	t.Run("hex bytes", func(t *testing.T) {
		v, err := ParseText("b", format.TypeBytes, "DEADbeef")
		require.NoError(t, err)
		require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, v.Data())
	})
}

func TestParseText_Errors(t *testing.T) {
	tests := []struct {
		name string
		typ  format.ValueType
		text string
		is   error
	}{
		{"null with data", format.TypeNull, "x", errs.ErrInvalidDataFormat},
		{"bad bool", format.TypeBool, "yes", errs.ErrInvalidDataFormat},
		{"short overflow", format.TypeShort, "40000", errs.ErrOutOfRange},
		{"long overflow", format.TypeLong, "2147483648", errs.ErrOutOfRange},
		{"ulong negative", format.TypeULong, "-1", errs.ErrInvalidDataFormat},
		{"float overflow", format.TypeFloat, "1e40", errs.ErrOutOfRange},
		{"not a number", format.TypeInt, "4x", errs.ErrInvalidDataFormat},
		{"odd hex", format.TypeBytes, "abc", errs.ErrInvalidDataFormat},
		{"container", format.TypeContainer, "2", errs.ErrInvalidDataFormat},
		{"unknown type", format.ValueType(77), "", errs.ErrUnknownType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseText("v", tt.typ, tt.text)
			require.ErrorIs(t, err, tt.is)
		})
	}
}

func TestFromJSON(t *testing.T) {
	t.Run("round trips ToJSON", func(t *testing.T) {
		orig := NewContainer("root",
			NewNull("n"),
			NewBool("b", true),
			NewShort("s", -7),
			NewULLong("u", math.MaxUint64),
			NewLLong("l", math.MinInt64),
			NewFloat("f", 0.1),
			NewDouble("d", 1e-9),
			NewString("str", "héllo"),
			NewBytes("raw", []byte{0, 1, 2, 0xff}),
			NewArray("arr", NewInt("", 1), NewInt("", 2)),
		)

		data, err := orig.ToJSON()
		require.NoError(t, err)

		got, err := FromJSON("root", []byte(data))
		require.NoError(t, err)
		require.True(t, Equal(orig, got), "got %s", got.String())
	})

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			name string
			data string
			is   error
		}{
			{"malformed", `{"type":`, errs.ErrInvalidDataFormat},
			{"unknown type", `{"type":"decimal","value":1}`, errs.ErrUnknownType},
			{"null with value", `{"type":"null","value":1}`, errs.ErrInvalidDataFormat},
			{"missing value", `{"type":"int"}`, errs.ErrInvalidDataFormat},
			{"bad base64", `{"type":"bytes","value":"!!"}`, errs.ErrInvalidDataFormat},
			{"string as int", `{"type":"int","value":"42"}`, errs.ErrInvalidDataFormat},
			{"int overflow", `{"type":"short","value":99999}`, errs.ErrOutOfRange},
			{"array not list", `{"type":"array","value":{}}`, errs.ErrInvalidDataFormat},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := FromJSON("v", []byte(tt.data))
				require.ErrorIs(t, err, tt.is)
			})
		}
	})
}
