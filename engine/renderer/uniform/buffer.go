package uniform

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
)

// Buffer encodes Go values into the little-endian, padded byte representation
// required by WGSL uniform buffers. A Buffer is reusable: each Write replaces
// the previous contents.
type Buffer struct {
	buf []byte
}

// NewBuffer creates an empty uniform buffer encoder.
//
// Returns:
//   - *Buffer: a new encoder with no contents
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Write encodes v into the buffer, replacing any previous contents. The encoded
// length equals SizeOf(v's type), with padding bytes zeroed.
//
// Parameters:
//   - v: the value to encode; must be a type supported by LayoutOf
//
// Returns:
//   - error: an error if v's type cannot be laid out in the uniform address space
func (b *Buffer) Write(v any) error {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return fmt.Errorf("uniform: cannot encode nil value")
	}
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return fmt.Errorf("uniform: cannot encode nil pointer")
		}
		rv = rv.Elem()
	}

	layout, err := LayoutOf(rv.Type())
	if err != nil {
		return err
	}

	b.buf = make([]byte, layout.Size)
	return encodeValue(b.buf, 0, rv)
}

// Bytes returns the encoded contents of the last Write. The returned slice is
// owned by the Buffer and is invalidated by the next Write.
//
// Returns:
//   - []byte: the packed uniform bytes, ready for GPU upload
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// encodeValue writes v into dst starting at offset, following the same
// traversal LayoutOf uses so sizes and offsets always agree.
func encodeValue(dst []byte, offset uint64, v reflect.Value) error {
	t := v.Type()

	switch t.Kind() {
	case reflect.Float32:
		binary.LittleEndian.PutUint32(dst[offset:offset+4], math.Float32bits(float32(v.Float())))
		return nil

	case reflect.Int32:
		binary.LittleEndian.PutUint32(dst[offset:offset+4], uint32(int32(v.Int())))
		return nil

	case reflect.Uint32:
		binary.LittleEndian.PutUint32(dst[offset:offset+4], uint32(v.Uint()))
		return nil

	case reflect.Bool:
		var bits uint32
		if v.Bool() {
			bits = 1
		}
		binary.LittleEndian.PutUint32(dst[offset:offset+4], bits)
		return nil

	case reflect.Array:
		return encodeArray(dst, offset, v)

	case reflect.Struct:
		return encodeStruct(dst, offset, v)

	default:
		return fmt.Errorf("uniform: unsupported type %s (kind %s)", t, t.Kind())
	}
}

// encodeArray writes a vector, matrix, or general fixed array at offset.
func encodeArray(dst []byte, offset uint64, v reflect.Value) error {
	t := v.Type()
	elem := t.Elem()

	// Vectors: scalars packed contiguously.
	if isScalar(elem) {
		for i := 0; i < v.Len(); i++ {
			if err := encodeValue(dst, offset+uint64(i)*4, v.Index(i)); err != nil {
				return err
			}
		}
		return nil
	}

	// Matrices: columns at the vector's rounded stride.
	if elem.Kind() == reflect.Array && elem.Elem().Kind() == reflect.Float32 {
		colLayout, ok := vectorLayouts[elem.Len()]
		if !ok {
			return fmt.Errorf("uniform: unsupported matrix row count %d in %s", elem.Len(), t)
		}
		stride := roundUpAlign(colLayout.Align, colLayout.Size)
		for i := 0; i < v.Len(); i++ {
			if err := encodeArray(dst, offset+uint64(i)*stride, v.Index(i)); err != nil {
				return err
			}
		}
		return nil
	}

	// General fixed array with 16-byte-rounded stride.
	elemLayout, err := LayoutOf(elem)
	if err != nil {
		return err
	}
	align := roundUpAlign(16, elemLayout.Align)
	stride := roundUpAlign(align, elemLayout.Size)
	for i := 0; i < v.Len(); i++ {
		if err := encodeValue(dst, offset+uint64(i)*stride, v.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

// encodeStruct writes each field at its aligned offset.
func encodeStruct(dst []byte, offset uint64, v reflect.Value) error {
	t := v.Type()
	fieldOffset := uint64(0)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			return fmt.Errorf("uniform: struct %s has unexported field %q", t, field.Name)
		}

		fieldLayout, err := LayoutOf(field.Type)
		if err != nil {
			return err
		}

		fieldOffset = roundUpAlign(fieldLayout.Align, fieldOffset)
		if err := encodeValue(dst, offset+fieldOffset, v.Field(i)); err != nil {
			return err
		}
		fieldOffset += fieldLayout.Size
	}

	return nil
}
