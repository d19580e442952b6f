package material

import (
	"github.com/Wrapperup/bevy/engine/renderer/render_assets"
)

// StandardMaterialOption is a function that configures a StandardMaterial
// during construction.
type StandardMaterialOption func(*StandardMaterial)

// WithBaseColor is an option builder that sets the albedo RGBA color of the material.
//
// Parameters:
//   - color: the base color as RGBA float32 values
//
// Returns:
//   - StandardMaterialOption: a function that applies the base color option to a material
func WithBaseColor(color [4]float32) StandardMaterialOption {
	return func(m *StandardMaterial) {
		m.BaseColor = color
	}
}

// WithMetallic is an option builder that sets the metallic factor of the material.
//
// Parameters:
//   - metallic: the metallic factor (0.0 = dielectric, 1.0 = metal)
//
// Returns:
//   - StandardMaterialOption: a function that applies the metallic option to a material
func WithMetallic(metallic float32) StandardMaterialOption {
	return func(m *StandardMaterial) {
		m.Metallic = metallic
	}
}

// WithRoughness is an option builder that sets the roughness factor of the material.
//
// Parameters:
//   - roughness: the roughness factor (0.0 = smooth, 1.0 = rough)
//
// Returns:
//   - StandardMaterialOption: a function that applies the roughness option to a material
func WithRoughness(roughness float32) StandardMaterialOption {
	return func(m *StandardMaterial) {
		m.Roughness = roughness
	}
}

// WithEmissive is an option builder that sets the emissive RGBA color of the material.
//
// Parameters:
//   - color: the emissive color as RGBA float32 values
//
// Returns:
//   - StandardMaterialOption: a function that applies the emissive option to a material
func WithEmissive(color [4]float32) StandardMaterialOption {
	return func(m *StandardMaterial) {
		m.Emissive = color
	}
}

// WithBaseColorTexture is an option builder that sets the base color texture handle.
//
// Parameters:
//   - handle: the image registry handle of the base color texture
//
// Returns:
//   - StandardMaterialOption: a function that applies the texture option to a material
func WithBaseColorTexture(handle render_assets.Handle) StandardMaterialOption {
	return func(m *StandardMaterial) {
		m.BaseColorTexture = handle
	}
}

// WithBaseColorSampler is an option builder that sets the base color sampler handle.
//
// Parameters:
//   - handle: the image registry handle carrying the sampler to use
//
// Returns:
//   - StandardMaterialOption: a function that applies the sampler option to a material
func WithBaseColorSampler(handle render_assets.Handle) StandardMaterialOption {
	return func(m *StandardMaterial) {
		m.BaseColorSampler = handle
	}
}

// WithUnlit is an option builder that marks the material as unlit, skipping
// the lighting path in pipelines specialized on its key.
//
// Returns:
//   - StandardMaterialOption: a function that applies the unlit option to a material
func WithUnlit() StandardMaterialOption {
	return func(m *StandardMaterial) {
		m.unlit = true
	}
}

// WithTwoSided is an option builder that disables backface culling in
// pipelines specialized on the material's key.
//
// Returns:
//   - StandardMaterialOption: a function that applies the two-sided option to a material
func WithTwoSided() StandardMaterialOption {
	return func(m *StandardMaterial) {
		m.twoSided = true
	}
}
