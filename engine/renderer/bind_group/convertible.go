package bind_group

import (
	"reflect"

	"github.com/Wrapperup/bevy/engine/renderer/render_assets"
)

// DataConvertible is implemented by aggregates that carry extra CPU-side data
// alongside their prepared bind group, typically keys a pipeline specializes
// on. Resolve with WithBindGroupData requires the source type to implement it;
// the returned value is stored on the PreparedBindGroup unchanged.
type DataConvertible interface {
	// BindGroupData extracts the data carried alongside the bind group.
	//
	// Returns:
	//   - any: the extracted data
	BindGroupData() any
}

// ShaderTypeConvertible is implemented by aggregates that upload a converted
// value instead of their own fields for a struct-level uniform declaration
// (see WithConvertedUniform). The conversion runs on every Prepare call and
// may consult the image registry, for example to bake texture availability
// flags into the uniform.
type ShaderTypeConvertible interface {
	// AsBindGroupShaderType converts the aggregate into its GPU-side
	// representation.
	//
	// Parameters:
	//   - images: the image registry available during preparation
	//
	// Returns:
	//   - any: the value to serialize into the uniform buffer
	AsBindGroupShaderType(images render_assets.Registry) any
}

var (
	dataConvertibleType       = reflect.TypeOf((*DataConvertible)(nil)).Elem()
	shaderTypeConvertibleType = reflect.TypeOf((*ShaderTypeConvertible)(nil)).Elem()
)

// implementsEither reports whether t or *t satisfies the given interface type.
// Methods with pointer receivers are only visible through the pointer type, so
// both are checked.
func implementsEither(t reflect.Type, iface reflect.Type) bool {
	return t.Implements(iface) || reflect.PointerTo(t).Implements(iface)
}
