package bind_group

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// bindTag is the struct tag key carrying binding declarations. The tag value
// is a comma-separated list whose first element is the binding kind, second
// the binding index, and the remainder kind-specific key=value options:
//
//	Color    [4]float32           `bind:"uniform,0"`
//	Albedo   render_assets.Handle `bind:"texture,1,dimension=2d,filterable=false"`
//	Sampler  render_assets.Handle `bind:"sampler,2,sampler_type=non_filtering"`
const bindTag = "bind"

// fieldDecl is one scanned binding declaration: a struct field together with
// its parsed kind, binding index, and unparsed kind-specific options.
type fieldDecl struct {
	name    string
	index   int
	typ     reflect.Type
	kind    bindingKind
	binding uint32
	options []string
}

// scanFields walks the exported fields of a struct type and collects every
// binding declaration in field order. Fields without a bind tag are ignored;
// they carry CPU-side state that never reaches the GPU. A bind tag on an
// unexported field is an error rather than silently skipped, since the field
// would be unreadable at prepare time.
//
// Parameters:
//   - t: the struct type to scan, after pointer indirection
//
// Returns:
//   - []fieldDecl: the declarations in declaration order
//   - error: an error describing the first malformed tag
func scanFields(t reflect.Type) ([]fieldDecl, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("cannot resolve bindings for %s: expected a struct type", t)
	}

	var decls []fieldDecl
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag, ok := field.Tag.Lookup(bindTag)
		if !ok {
			continue
		}
		if !field.IsExported() {
			return nil, fmt.Errorf("field %q of %s carries a bind tag but is unexported", field.Name, t)
		}

		decl, err := parseBindTag(field, i, tag)
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

// parseBindTag parses a single bind tag value into a declaration.
func parseBindTag(field reflect.StructField, index int, tag string) (fieldDecl, error) {
	parts := strings.Split(tag, ",")
	if len(parts) < 2 {
		return fieldDecl{}, fmt.Errorf("field %q: bind tag %q must declare a kind and a binding index", field.Name, tag)
	}

	var kind bindingKind
	switch parts[0] {
	case "uniform":
		kind = bindingKindUniform
	case "texture":
		kind = bindingKindTexture
	case "sampler":
		kind = bindingKindSampler
	default:
		return fieldDecl{}, fmt.Errorf("field %q: invalid binding kind %q, expected uniform, texture or sampler", field.Name, parts[0])
	}

	binding, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return fieldDecl{}, fmt.Errorf("field %q: invalid binding index %q: %w", field.Name, parts[1], err)
	}

	if kind == bindingKindUniform && len(parts) > 2 {
		return fieldDecl{}, fmt.Errorf("field %q: uniform bindings accept no options, got %q", field.Name, strings.Join(parts[2:], ","))
	}

	return fieldDecl{
		name:    field.Name,
		index:   index,
		typ:     field.Type,
		kind:    kind,
		binding: uint32(binding),
		options: parts[2:],
	}, nil
}
