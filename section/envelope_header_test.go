package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/valuecontainer/errs"
)

func TestEnvelopeHeader_Bytes(t *testing.T) {
	h := NewEnvelopeHeader(10000, 3)
	b := h.Bytes()

	require.Len(t, b, HeaderSize)
	require.Equal(t, []byte("VCNT"), b[0:4])
	require.Equal(t, byte(FormatVersion), b[4])
	require.Equal(t, byte(FlagChecksum), b[5])
	require.Equal(t, []byte{0x10, 0x27, 0, 0}, b[8:12])
	require.Equal(t, []byte{3, 0, 0, 0}, b[12:16])
	require.True(t, h.HasChecksum())
}

func TestEnvelopeHeader_Parse(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		want := NewEnvelopeHeader(42, 7)
		got, err := ParseEnvelopeHeader(append(want.Bytes(), 0xAA))
		require.NoError(t, err)
		require.Equal(t, want, got)
	})

	t.Run("too short", func(t *testing.T) {
		_, err := ParseEnvelopeHeader([]byte("VCNT"))
		require.ErrorIs(t, err, errs.ErrTruncated)

		var h EnvelopeHeader
		require.ErrorIs(t, h.Parse(make([]byte, HeaderSize+1)), errs.ErrInvalidDataFormat)
	})

	mutate := func(i int, b byte) []byte {
		data := NewEnvelopeHeader(1, 1).Bytes()
		data[i] = b
		return data
	}

	tests := []struct {
		name string
		data []byte
		msg  string
	}{
		{"bad magic", mutate(0, 'X'), "magic"},
		{"bad version", mutate(4, 9), "version"},
		{"unknown flags", mutate(5, 0x80), "flags"},
		{"reserved set", mutate(7, 1), "reserved"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEnvelopeHeader(tt.data)
			require.ErrorIs(t, err, errs.ErrInvalidDataFormat)
			require.Contains(t, err.Error(), tt.msg)
		})
	}
}
