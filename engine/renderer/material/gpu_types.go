package material

import (
	"github.com/Wrapperup/bevy/engine/renderer/render_assets"
)

// Flag bits packed into GPUStandardMaterial.Flags so the shader can branch on
// texture availability without extra bindings.
const (
	StandardMaterialFlagBaseColorTexture uint32 = 1 << iota
	StandardMaterialFlagUnlit
)

// GPUStandardMaterial is the GPU-side uniform a StandardMaterial converts
// into before upload. Uniform layout: BaseColor at offset 0 (16 bytes),
// Metallic at 16, Roughness at 20, Flags at 24, total size 28 rounded to 32
// by the vec4 alignment.
type GPUStandardMaterial struct {
	BaseColor [4]float32
	Metallic  float32
	Roughness float32
	Flags     uint32
}

// StandardMaterialKey is the data carried alongside a prepared standard
// material bind group. Pipelines specialize on it: unlit materials skip the
// lighting path and two-sided materials disable backface culling.
type StandardMaterialKey struct {
	Unlit    bool
	TwoSided bool
}

// AsBindGroupShaderType converts the material into its GPU uniform,
// baking texture availability into the flag bits.
//
// Parameters:
//   - images: the image registry available during preparation
//
// Returns:
//   - any: the GPUStandardMaterial to upload
func (m *StandardMaterial) AsBindGroupShaderType(images render_assets.Registry) any {
	var flags uint32
	if m.BaseColorTexture.IsSet() {
		flags |= StandardMaterialFlagBaseColorTexture
	}
	if m.unlit {
		flags |= StandardMaterialFlagUnlit
	}
	return GPUStandardMaterial{
		BaseColor: m.BaseColor,
		Metallic:  m.Metallic,
		Roughness: m.Roughness,
		Flags:     flags,
	}
}

// BindGroupData extracts the pipeline specialization key for the material.
//
// Returns:
//   - any: the StandardMaterialKey
func (m *StandardMaterial) BindGroupData() any {
	return StandardMaterialKey{Unlit: m.unlit, TwoSided: m.twoSided}
}
