package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/valuecontainer/errs"
)

func TestString(t *testing.T) {
	long, err := NewLong("l", -5)
	require.NoError(t, err)

	tests := []struct {
		name string
		v    *Value
		want string
	}{
		{"null", NewNull("n"), "null"},
		{"bool", NewBool("b", true), "true"},
		{"short", NewShort("s", -12), "-12"},
		{"long", long, "-5"},
		{"ullong", NewULLong("u", math.MaxUint64), "18446744073709551615"},
		{"float", NewFloat("f", 1.5), "1.5"},
		{"float shortest", NewFloat("f", 0.1), "0.1"},
		{"double", NewDouble("d", 3.14159), "3.14159"},
		{"double integral", NewDouble("d", 100), "100"},
		{"string", NewString("s", "hello"), "hello"},
		{"bytes", NewBytes("b", []byte{1, 2, 3}), "<3 bytes>"},
		{"container", NewContainer("user", NewInt("a", 1), NewInt("b", 2)), "[Container 'user' with 2 children]"},
		{"array", NewArray("list", NewInt("a", 1)), "[Array 'list' with 1 elements]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.v.String())
		})
	}
}

func TestToJSON(t *testing.T) {
	tests := []struct {
		name string
		v    *Value
		want string
	}{
		{"int", NewInt("count", 42), `{"type":"int","value":42}`},
		{"null", NewNull("n"), `{"type":"null","value":null}`},
		{"bool", NewBool("b", false), `{"type":"bool","value":false}`},
		{"ullong", NewULLong("u", math.MaxUint64), `{"type":"ullong","value":18446744073709551615}`},
		{"double", NewDouble("d", 2.5), `{"type":"double","value":2.5}`},
		{"float", NewFloat("f", 0.1), `{"type":"float","value":0.1}`},
		{"string", NewString("s", `say "hi"`), `{"type":"string","value":"say \"hi\""}`},
		{"bytes", NewBytes("b", []byte("hello")), `{"type":"bytes","value":"aGVsbG8="}`},
		{
			"container",
			NewContainer("c", NewInt("x", 1), NewArray("l", NewBool("t", true))),
			`{"type":"container","value":[{"name":"x","type":"int","value":1},` +
				`{"name":"l","type":"array","value":[{"name":"t","type":"bool","value":true}]}]}`,
		},
		{"empty array", NewArray("a"), `{"type":"array","value":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.v.ToJSON()
			require.NoError(t, err)
			require.JSONEq(t, tt.want, got)
		})
	}

	t.Run("non-finite fails", func(t *testing.T) {
		_, err := NewDouble("d", math.NaN()).ToJSON()
		require.ErrorIs(t, err, errs.ErrSerialization)

		_, err = NewArray("a", NewDouble("d", math.Inf(1))).ToJSON()
		require.ErrorIs(t, err, errs.ErrSerialization)
	})
}

func TestToXML(t *testing.T) {
	tests := []struct {
		name string
		v    *Value
		want string
	}{
		{"int", NewInt("count", 42), "<int>42</int>"},
		{"null", NewNull("n"), "<null/>"},
		{"string escaped", NewString("s", `a<b & "c"'`), "<string>a&lt;b &amp; &quot;c&quot;&apos;</string>"},
		{"bytes", NewBytes("b", []byte("hello")), "<bytes>aGVsbG8=</bytes>"},
		{
			"container",
			NewContainer("c", NewInt("x", 1), NewNull("n&m")),
			`<container count="2"><int name="x">1</int><null name="n&amp;m"/></container>`,
		},
		{"empty array", NewArray("a"), `<array count="0"></array>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.v.ToXML()
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
