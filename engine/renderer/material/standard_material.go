package material

import (
	"github.com/Wrapperup/bevy/engine/renderer/bind_group"
	"github.com/Wrapperup/bevy/engine/renderer/render_assets"
	"github.com/cogentcore/webgpu/wgpu"
)

// StandardMaterial is a physically-based surface material. Its uniform data
// uploads as a whole-aggregate conversion (see AsBindGroupShaderType) rather
// than per-field serialization, so texture availability flags can be baked in
// at prepare time. The base color texture and its sampler resolve through the
// image registry, falling back to the 1x1 fallback image when no handle is
// set. Emissive is a plain field uniform at its own binding.
type StandardMaterial struct {
	BaseColor [4]float32
	Metallic  float32
	Roughness float32

	BaseColorTexture render_assets.Handle `bind:"texture,1"`
	BaseColorSampler render_assets.Handle `bind:"sampler,2"`

	Emissive [4]float32 `bind:"uniform,3"`

	unlit    bool
	twoSided bool
}

// NewStandardMaterial creates a StandardMaterial configured with the provided
// options.
//
// Parameters:
//   - options: variadic list of StandardMaterialOption functions to configure the material
//
// Returns:
//   - *StandardMaterial: a new material with opaque white defaults
func NewStandardMaterial(options ...StandardMaterialOption) *StandardMaterial {
	m := &StandardMaterial{
		BaseColor: [4]float32{1, 1, 1, 1},
		Metallic:  0.0,
		Roughness: 0.5,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// NewStandardMaterialPlan resolves the StandardMaterial binding declarations
// and creates the shared layout for all standard materials.
//
// Parameters:
//   - device: the device to create the layout on
//
// Returns:
//   - Plan: the preparation plan, one per device
//   - error: an error if resolution or layout creation fails
func NewStandardMaterialPlan(device *wgpu.Device) (Plan, error) {
	return NewPlan(device, StandardMaterial{},
		bind_group.WithLabel("Standard Material"),
		bind_group.WithConvertedUniform(0, GPUStandardMaterial{}),
		bind_group.WithBindGroupData(StandardMaterialKey{}),
	)
}
