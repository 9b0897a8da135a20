package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(64)
	require.Equal(t, 0, bb.Len())
	require.Equal(t, 64, cap(bb.B))
}

func TestByteBuffer_Writes(t *testing.T) {
	require := require.New(t)

	bb := NewByteBuffer(0)
	require.NoError(bb.WriteByte(0x01))
	n, err := bb.WriteString("ab")
	require.NoError(err)
	require.Equal(2, n)
	n, err = bb.Write([]byte{0x02, 0x03})
	require.NoError(err)
	require.Equal(2, n)
	bb.MustWrite([]byte("z"))

	require.Equal([]byte{0x01, 'a', 'b', 0x02, 0x03, 'z'}, bb.Bytes())
	require.Equal(6, bb.Len())

	bb.Reset()
	require.Equal(0, bb.Len())
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("no-op with enough capacity", func(t *testing.T) {
		bb := NewByteBuffer(32)
		bb.MustWrite([]byte("abc"))
		before := cap(bb.B)
		bb.Grow(10)
		require.Equal(t, before, cap(bb.B))
	})

	t.Run("grows and keeps content", func(t *testing.T) {
		bb := NewByteBuffer(4)
		bb.MustWrite([]byte("abcd"))
		bb.Grow(EncodeBufferDefaultSize * 2)
		require.GreaterOrEqual(t, cap(bb.B)-bb.Len(), EncodeBufferDefaultSize*2)
		require.Equal(t, []byte("abcd"), bb.Bytes())
	})
}

func TestByteBuffer_CopyBytes(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWrite([]byte("data"))
	out := bb.CopyBytes()
	bb.Reset()
	bb.MustWrite([]byte("XXXX"))
	require.Equal(t, []byte("data"), out)
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWrite([]byte("hello"))

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(5), n)
	require.Equal(t, "hello", out.String())
}

func TestByteBufferPool(t *testing.T) {
	t.Run("returned buffers are empty", func(t *testing.T) {
		p := NewByteBufferPool(16, 0)
		bb := p.Get()
		bb.MustWrite([]byte("used"))
		p.Put(bb)

		again := p.Get()
		require.Equal(t, 0, again.Len())
	})

	t.Run("put nil is ignored", func(t *testing.T) {
		p := NewByteBufferPool(16, 0)
		require.NotPanics(t, func() { p.Put(nil) })
	})

	t.Run("oversized buffers are dropped", func(t *testing.T) {
		p := NewByteBufferPool(16, 32)
		bb := NewByteBuffer(1024)
		require.NotPanics(t, func() { p.Put(bb) })
		require.NotNil(t, p.Get())
	})

	t.Run("default encode pool", func(t *testing.T) {
		bb := GetEncodeBuffer()
		require.NotNil(t, bb)
		require.Equal(t, 0, bb.Len())
		PutEncodeBuffer(bb)
	})
}
