// Package uniform computes WGSL uniform-address-space byte layouts for Go types
// and encodes Go values into GPU-uploadable uniform buffer bytes. It is the
// serialization layer consumed by the bind_group resolver: layout computation
// determines minimum binding sizes for bind group layout entries, and the Buffer
// encoder produces the packed contents of uniform buffers.
//
// Layout rules follow the WGSL specification for the uniform address space:
// scalars are 4 bytes aligned to 4, vec3 aligns to 16, matrices are columns of
// vectors at rounded stride, struct fields are placed at the next aligned offset
// and the struct size is rounded up to its max field alignment, and fixed array
// strides are rounded up to 16.
//
// Reference: https://www.w3.org/TR/WGSL/#alignment-and-size
package uniform

import (
	"fmt"
	"reflect"
)

// TypeLayout describes the byte size and alignment of a type in the uniform
// address space.
type TypeLayout struct {
	// Size is the byte size of the type, including internal padding.
	Size uint64

	// Align is the required byte alignment of the type.
	Align uint64
}

// vectorLayouts maps a float/int/uint vector's component count to its WGSL
// layout. vec3 occupies 12 bytes but aligns to 16.
var vectorLayouts = map[int]TypeLayout{
	2: {8, 8},
	3: {12, 16},
	4: {16, 16},
}

// roundUpAlign rounds value up to the next multiple of alignment.
// Alignment must be a power of two.
//
// Parameters:
//   - alignment: the required alignment (must be a power of two)
//   - value: the value to align
//
// Returns:
//   - uint64: value rounded up to the next multiple of alignment
func roundUpAlign(alignment, value uint64) uint64 {
	if alignment == 0 {
		return value
	}
	return (value + alignment - 1) &^ (alignment - 1)
}

// SizeOf returns the uniform-address-space byte size of t.
//
// Parameters:
//   - t: the Go type to measure
//
// Returns:
//   - uint64: the byte size including internal padding
//   - error: an error if t contains a kind that cannot be host-shared
func SizeOf(t reflect.Type) (uint64, error) {
	layout, err := LayoutOf(t)
	if err != nil {
		return 0, err
	}
	return layout.Size, nil
}

// AlignOf returns the uniform-address-space byte alignment of t.
//
// Parameters:
//   - t: the Go type to measure
//
// Returns:
//   - uint64: the required byte alignment
//   - error: an error if t contains a kind that cannot be host-shared
func AlignOf(t reflect.Type) (uint64, error) {
	layout, err := LayoutOf(t)
	if err != nil {
		return 0, err
	}
	return layout.Align, nil
}

// LayoutOf computes the uniform-address-space layout of t.
//
// Supported kinds: float32/int32/uint32/bool scalars, [2..4]-element vectors of
// those scalars, [C][R]float32 matrices (C, R in 2..4), structs of supported
// kinds (all fields must be exported), and fixed arrays of supported kinds with
// element stride rounded up to 16.
//
// Parameters:
//   - t: the Go type to lay out
//
// Returns:
//   - TypeLayout: the computed size and alignment
//   - error: an error naming the first unsupported type encountered
func LayoutOf(t reflect.Type) (TypeLayout, error) {
	if t == nil {
		return TypeLayout{}, fmt.Errorf("uniform: cannot compute layout of nil type")
	}

	switch t.Kind() {
	case reflect.Float32, reflect.Int32, reflect.Uint32, reflect.Bool:
		return TypeLayout{4, 4}, nil

	case reflect.Array:
		return arrayLayout(t)

	case reflect.Struct:
		return structLayout(t)

	default:
		return TypeLayout{}, fmt.Errorf("uniform: unsupported type %s (kind %s)", t, t.Kind())
	}
}

// arrayLayout computes the layout of an array type: a vector, a matrix, or a
// general fixed array with 16-byte element stride.
func arrayLayout(t reflect.Type) (TypeLayout, error) {
	elem := t.Elem()

	// Vectors: [2..4] of a scalar.
	if isScalar(elem) {
		if layout, ok := vectorLayouts[t.Len()]; ok {
			return layout, nil
		}
		return TypeLayout{}, fmt.Errorf("uniform: unsupported vector length %d in %s: must be 2, 3, or 4", t.Len(), t)
	}

	// Matrices: [C][R]float32 laid out as C columns of vecR at rounded stride.
	if elem.Kind() == reflect.Array && elem.Elem().Kind() == reflect.Float32 {
		colLayout, ok := vectorLayouts[elem.Len()]
		if !ok {
			return TypeLayout{}, fmt.Errorf("uniform: unsupported matrix row count %d in %s: must be 2, 3, or 4", elem.Len(), t)
		}
		if t.Len() < 2 || t.Len() > 4 {
			return TypeLayout{}, fmt.Errorf("uniform: unsupported matrix column count %d in %s: must be 2, 3, or 4", t.Len(), t)
		}
		stride := roundUpAlign(colLayout.Align, colLayout.Size)
		return TypeLayout{uint64(t.Len()) * stride, colLayout.Align}, nil
	}

	// General fixed array — uniform address space requires a 16-byte stride.
	elemLayout, err := LayoutOf(elem)
	if err != nil {
		return TypeLayout{}, err
	}
	align := roundUpAlign(16, elemLayout.Align)
	stride := roundUpAlign(align, elemLayout.Size)
	return TypeLayout{uint64(t.Len()) * stride, align}, nil
}

// structLayout places each exported field at the next aligned offset and rounds
// the total size up to the struct's max field alignment.
func structLayout(t reflect.Type) (TypeLayout, error) {
	offset := uint64(0)
	maxAlign := uint64(1)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			return TypeLayout{}, fmt.Errorf("uniform: struct %s has unexported field %q: uniform structs must have only exported fields", t, field.Name)
		}

		fieldLayout, err := LayoutOf(field.Type)
		if err != nil {
			return TypeLayout{}, fmt.Errorf("uniform: field %q of %s: %w", field.Name, t, err)
		}

		offset = roundUpAlign(fieldLayout.Align, offset)
		offset += fieldLayout.Size

		if fieldLayout.Align > maxAlign {
			maxAlign = fieldLayout.Align
		}
	}

	return TypeLayout{roundUpAlign(maxAlign, offset), maxAlign}, nil
}

// isScalar reports whether t is a supported scalar component type.
func isScalar(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Float32, reflect.Int32, reflect.Uint32, reflect.Bool:
		return true
	default:
		return false
	}
}
