package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetLittleEndianEngine(t *testing.T) {
	require := require.New(t)

	engine := GetLittleEndianEngine()
	require.Equal(binary.LittleEndian, engine)

	buf := engine.AppendUint32(nil, 0x01020304)
	require.Equal([]byte{0x04, 0x03, 0x02, 0x01}, buf)
	require.Equal(uint32(0x01020304), engine.Uint32(buf))

	buf = engine.AppendUint16(buf[:0], 0xBEEF)
	require.Equal([]byte{0xEF, 0xBE}, buf)
}

func TestEngine_LengthPrefix(t *testing.T) {
	engine := GetLittleEndianEngine()

	name := "count"
	buf := engine.AppendUint32([]byte{4}, uint32(len(name)))
	buf = append(buf, name...)

	require.Equal(t, uint32(len(name)), engine.Uint32(buf[1:5]))
	require.Equal(t, name, string(buf[5:]))
}
