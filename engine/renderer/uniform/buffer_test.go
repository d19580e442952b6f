package uniform

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f32At(t *testing.T, buf []byte, offset uint64) float32 {
	t.Helper()
	require.GreaterOrEqual(t, len(buf), int(offset)+4)
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset : offset+4]))
}

func u32At(t *testing.T, buf []byte, offset uint64) uint32 {
	t.Helper()
	require.GreaterOrEqual(t, len(buf), int(offset)+4)
	return binary.LittleEndian.Uint32(buf[offset : offset+4])
}

func TestBufferWriteVec3Padding(t *testing.T) {
	value := struct {
		P [3]float32
		W float32
	}{P: [3]float32{1, 2, 3}, W: 4}

	b := NewBuffer()
	require.NoError(t, b.Write(value))
	buf := b.Bytes()

	require.Len(t, buf, 16)
	assert.Equal(t, float32(1), f32At(t, buf, 0))
	assert.Equal(t, float32(2), f32At(t, buf, 4))
	assert.Equal(t, float32(3), f32At(t, buf, 8))
	// W packs into the vec3's padding slot.
	assert.Equal(t, float32(4), f32At(t, buf, 12))
}

func TestBufferWriteScalarsAndBool(t *testing.T) {
	value := struct {
		A float32
		B int32
		C uint32
		D bool
		E bool
	}{A: 1.5, B: -7, C: 9, D: true, E: false}

	b := NewBuffer()
	require.NoError(t, b.Write(value))
	buf := b.Bytes()

	require.Len(t, buf, 20)
	assert.Equal(t, float32(1.5), f32At(t, buf, 0))
	assert.Equal(t, uint32(0xfffffff9), u32At(t, buf, 4))
	assert.Equal(t, uint32(9), u32At(t, buf, 8))
	assert.Equal(t, uint32(1), u32At(t, buf, 12))
	assert.Equal(t, uint32(0), u32At(t, buf, 16))
}

func TestBufferWriteMatrixColumnStride(t *testing.T) {
	var m [3][3]float32
	m[0][0] = 1
	m[1][0] = 2
	m[2][2] = 3

	b := NewBuffer()
	require.NoError(t, b.Write(m))
	buf := b.Bytes()

	// Three vec3 columns at a 16 byte stride.
	require.Len(t, buf, 48)
	assert.Equal(t, float32(1), f32At(t, buf, 0))
	assert.Equal(t, float32(2), f32At(t, buf, 16))
	assert.Equal(t, float32(3), f32At(t, buf, 40))
}

func TestBufferWriteFieldAlignment(t *testing.T) {
	value := struct {
		A float32
		B [4]float32
	}{A: 1, B: [4]float32{2, 3, 4, 5}}

	b := NewBuffer()
	require.NoError(t, b.Write(value))
	buf := b.Bytes()

	require.Len(t, buf, 32)
	assert.Equal(t, float32(1), f32At(t, buf, 0))
	// Padding between A and the aligned vec4 stays zeroed.
	assert.Equal(t, uint32(0), u32At(t, buf, 4))
	assert.Equal(t, float32(2), f32At(t, buf, 16))
	assert.Equal(t, float32(5), f32At(t, buf, 28))
}

func TestBufferWritePointer(t *testing.T) {
	value := [2]float32{6, 7}

	b := NewBuffer()
	require.NoError(t, b.Write(&value))

	require.Len(t, b.Bytes(), 8)
	assert.Equal(t, float32(6), f32At(t, b.Bytes(), 0))
	assert.Equal(t, float32(7), f32At(t, b.Bytes(), 4))
}

func TestBufferWriteReplacesContents(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, b.Write([4]float32{1, 2, 3, 4}))
	require.Len(t, b.Bytes(), 16)

	require.NoError(t, b.Write(float32(9)))
	require.Len(t, b.Bytes(), 4)
	assert.Equal(t, float32(9), f32At(t, b.Bytes(), 0))
}

func TestBufferWriteErrors(t *testing.T) {
	b := NewBuffer()

	assert.Error(t, b.Write("not a uniform"))
	assert.Error(t, b.Write(float64(1)))

	var nilValue *float32
	assert.Error(t, b.Write(nilValue))

	assert.Error(t, b.Write(nil))
}
