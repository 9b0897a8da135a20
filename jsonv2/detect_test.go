package jsonv2

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/valuecontainer/container"
	"github.com/arloliu/valuecontainer/errs"
	"github.com/arloliu/valuecontainer/format"
	"github.com/arloliu/valuecontainer/value"
	"github.com/arloliu/valuecontainer/wire"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		text string
		want format.SerializationFormat
	}{
		{"wire", "@header={{[5,x];}};@data={{}};", format.FormatWire},
		{"wire single brace with padding", "\n  @header={[5,x];};@data={};", format.FormatWire},
		{"v2", `{"container":{"version":"2.0","values":[]}}`, format.FormatJSONV2},
		{"v2 with BOM", "\xef\xbb\xbf" + `{"container":{"version":"2.0"}}`, format.FormatJSONV2},
		{"v2 wins over flat", `{"container":{"version":"2.0"},"message_type":"x","values":[]}`, format.FormatJSONV2},
		{"other container version", `{"container":{"version":"1.0"}}`, format.FormatUnknown},
		{"numeric container version", `{"container":{"version":2.0}}`, format.FormatUnknown},
		{"cpp", `{"header":{},"values":{}}`, format.FormatCppJSON},
		{"cpp wins over flat", `{"header":{},"message_type":"x","values":{}}`, format.FormatCppJSON},
		{"header with values array", `{"header":{},"values":[]}`, format.FormatUnknown},
		{"flat", `{"message_type":"x","values":[]}`, format.FormatPythonJSON},
		{"flat with values object", `{"message_type":"x","values":{}}`, format.FormatUnknown},
		{"flat without values", `{"message_type":"x"}`, format.FormatUnknown},
		{"empty object", `{}`, format.FormatUnknown},
		{"JSON array", `[1,2]`, format.FormatUnknown},
		{"JSON null", `null`, format.FormatUnknown},
		{"not JSON", `hello`, format.FormatUnknown},
		{"empty", ``, format.FormatUnknown},
		{"comments without lenient", `{/* x */"message_type":"x","values":[]}`, format.FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DetectFormat(tt.text))
		})
	}
}

func encodeAs(t *testing.T, c *container.ValueContainer, f format.SerializationFormat) string {
	t.Helper()

	out, err := Default().Encode(c, f)
	require.NoError(t, err)

	return out
}

func TestConvertFormat_Matrix(t *testing.T) {
	all := []format.SerializationFormat{
		format.FormatJSONV2,
		format.FormatCppJSON,
		format.FormatPythonJSON,
		format.FormatWire,
	}
	c := scalars(t)

	for _, from := range all {
		for _, to := range all {
			t.Run(from.String()+"->"+to.String(), func(t *testing.T) {
				in := encodeAs(t, c, from)
				require.Equal(t, from, DetectFormat(in))

				out, err := ConvertFormat(in, to, false)
				require.NoError(t, err)
				require.Equal(t, to, DetectFormat(out))

				got, f, err := Default().Decode(out)
				require.NoError(t, err)
				require.Equal(t, to, f)
				requireSameContainer(t, c, got)
			})
		}
	}
}

func TestConvertFormat_NestedAcrossJSON(t *testing.T) {
	c := nested(t)
	jsonFormats := []format.SerializationFormat{format.FormatJSONV2, format.FormatCppJSON, format.FormatPythonJSON}

	for _, from := range jsonFormats {
		for _, to := range jsonFormats {
			out, err := ConvertFormat(encodeAs(t, c, from), to, true)
			require.NoError(t, err, "%s->%s", from, to)

			got, _, err := Default().Decode(out)
			require.NoError(t, err)
			requireSameContainer(t, c, got)
		}
	}
}

func TestConvertFormat_NestedToWire(t *testing.T) {
	c := routed(t)
	require.NoError(t, c.AddValue(value.NewContainer("user", value.NewInt("id", 1), value.NewString("n", "a"))))

	out, err := ConvertFormat(encodeAs(t, c, format.FormatJSONV2), format.FormatWire, false)
	require.NoError(t, err)
	require.Contains(t, out, "[user,container_value,2];")

	_, err = wire.DeserializeCppWire(out)
	require.ErrorIs(t, err, errs.ErrInvalidDataFormat)

	_, err = ConvertFormat(out, format.FormatJSONV2, false)
	require.ErrorIs(t, err, errs.ErrInvalidDataFormat)
}

func TestConvertFormat_Errors(t *testing.T) {
	v2 := encodeAs(t, scalars(t), format.FormatJSONV2)

	t.Run("unknown target", func(t *testing.T) {
		_, err := ConvertFormat(v2, format.FormatUnknown, false)
		require.ErrorIs(t, err, errs.ErrUnsupportedFormat)
		require.ErrorIs(t, err, errs.ErrInvalidDataFormat)
	})

	t.Run("unknown source", func(t *testing.T) {
		_, err := ConvertFormat(`{"hello":"world"}`, format.FormatJSONV2, false)
		require.ErrorIs(t, err, errs.ErrUnsupportedFormat)
	})

	t.Run("malformed source of a known format", func(t *testing.T) {
		_, err := ConvertFormat(`{"container":{"version":"2.0","values":[{"name":"x","type":4,"data":"a"}]}}`, format.FormatCppJSON, false)
		require.ErrorIs(t, err, errs.ErrInvalidDataFormat)
		require.NotErrorIs(t, err, errs.ErrUnsupportedFormat)
	})

	t.Run("target cannot frame a value", func(t *testing.T) {
		c := routed(t)
		require.NoError(t, c.AddValue(value.NewString("bad", "a];b")))

		_, err := ConvertFormat(encodeAs(t, c, format.FormatJSONV2), format.FormatWire, false)
		require.ErrorIs(t, err, errs.ErrSerialization)
	})

	t.Run("unknown format cannot be encoded", func(t *testing.T) {
		_, err := Default().Encode(routed(t), format.FormatUnknown)
		require.ErrorIs(t, err, errs.ErrUnsupportedFormat)
	})
}

func TestDecode_RejectsContainerJSON(t *testing.T) {
	c := routed(t)
	require.NoError(t, c.AddValue(value.NewInt("a", 1)))

	doc, err := c.ToJSON()
	require.NoError(t, err)
	require.Equal(t, format.FormatPythonJSON, DetectFormat(doc))

	got, _, err := Default().Decode(doc)
	require.ErrorIs(t, err, errs.ErrInvalidDataFormat)
	require.Nil(t, got)

	back, err := container.FromJSON([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, c.Header(), back.Header())
	require.Equal(t, 1, back.ValueCount())
}
