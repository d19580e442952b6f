package bind_group

import (
	"fmt"
	"reflect"

	"github.com/Wrapperup/bevy/engine/renderer/render_assets"
	"github.com/Wrapperup/bevy/engine/renderer/uniform"
	"github.com/cogentcore/webgpu/wgpu"
)

// Bindings resolved here are visible to every shader stage, matching what a
// material-style bind group needs without per-field stage annotations.
const allStages = wgpu.ShaderStageVertex | wgpu.ShaderStageFragment | wgpu.ShaderStageCompute

var handleType = reflect.TypeOf(render_assets.Handle(0))

// Resolve walks the binding declarations of the prototype's struct type and
// produces a ResolvedBindGroup. Resolution is a one-time pass, typically done
// at startup per material type; the result is reused for every Prepare call.
//
// Struct-level uniform declarations (WithConvertedUniform) claim their slots
// first. Field declarations are then applied in field order; two fields
// claiming the same slot conflict unless both are uniforms, in which case they
// merge into one combined buffer. After the field pass, one plan entry is
// emitted per merged uniform slot in ascending binding order, following the
// texture and sampler entries which keep their field encounter order.
//
// Parameters:
//   - prototype: a value (or pointer to a value) of the aggregate type
//   - options: aggregate-level declarations
//
// Returns:
//   - ResolvedBindGroup: the reusable resolution
//   - error: an error describing the first malformed or conflicting declaration
func Resolve(prototype any, options ...ResolveOption) (ResolvedBindGroup, error) {
	t := reflect.TypeOf(prototype)
	if t == nil {
		return nil, fmt.Errorf("cannot resolve bindings for a nil prototype")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	var cfg resolverConfig
	for _, option := range options {
		option(&cfg)
	}
	if cfg.label == "" {
		cfg.label = t.Name()
	}
	if cfg.dataType != nil && !implementsEither(t, dataConvertibleType) {
		return nil, fmt.Errorf("%s declares bind group data but does not implement bind_group.DataConvertible", t)
	}

	r := &resolvedBindGroup{
		label:    cfg.label,
		typ:      t,
		dataType: cfg.dataType,
	}
	var table slotTable

	// Struct-level uniforms claim their slots before any field is considered.
	for _, converted := range cfg.convertedUniforms {
		if converted.targetType == nil {
			return nil, fmt.Errorf("%s: struct-level uniform at binding %d has a nil target prototype", t, converted.binding)
		}
		if !implementsEither(t, shaderTypeConvertibleType) {
			return nil, fmt.Errorf("%s declares a converted uniform but does not implement bind_group.ShaderTypeConvertible", t)
		}
		if err := table.occupyConverted(converted.binding); err != nil {
			return nil, fmt.Errorf("cannot resolve bindings for %s: %w", t, err)
		}
		size, err := uniform.SizeOf(converted.targetType)
		if err != nil {
			return nil, fmt.Errorf("struct-level uniform at binding %d: %w", converted.binding, err)
		}
		r.layoutEntries = append(r.layoutEntries, uniformLayoutEntry(converted.binding, size))
		r.plans = append(r.plans, convertedUniformPlan(cfg.label, converted))
	}

	decls, err := scanFields(t)
	if err != nil {
		return nil, err
	}

	for _, decl := range decls {
		if err := table.occupy(decl); err != nil {
			return nil, fmt.Errorf("cannot resolve bindings for %s: %w", t, err)
		}

		switch decl.kind {
		case bindingKindTexture:
			attrs, err := parseTextureAttrs(decl.name, decl.options)
			if err != nil {
				return nil, err
			}
			if err := validateHandleField(decl); err != nil {
				return nil, err
			}
			r.layoutEntries = append(r.layoutEntries, wgpu.BindGroupLayoutEntry{
				Binding:    decl.binding,
				Visibility: allStages,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    attrs.sampleType,
					ViewDimension: attrs.dimension,
					Multisampled:  attrs.multisample,
				},
			})
			r.plans = append(r.plans, texturePlan(decl))

		case bindingKindSampler:
			attrs, err := parseSamplerAttrs(decl.name, decl.options)
			if err != nil {
				return nil, err
			}
			if err := validateHandleField(decl); err != nil {
				return nil, err
			}
			r.layoutEntries = append(r.layoutEntries, wgpu.BindGroupLayoutEntry{
				Binding:    decl.binding,
				Visibility: allStages,
				Sampler:    wgpu.SamplerBindingLayout{Type: attrs.bindingType},
			})
			r.plans = append(r.plans, samplerPlan(decl))
		}
	}

	// Uniform slots emit after all texture and sampler entries, in ascending
	// binding order, each covering every field merged into the slot.
	for binding := range table.slots {
		slot := &table.slots[binding]
		if slot.state != slotMergeableUniform {
			continue
		}
		uniformType, err := mergedUniformType(slot.uniformFields)
		if err != nil {
			return nil, err
		}
		size, err := uniform.SizeOf(uniformType)
		if err != nil {
			return nil, fmt.Errorf("uniform at binding %d: %w", binding, err)
		}
		r.layoutEntries = append(r.layoutEntries, uniformLayoutEntry(uint32(binding), size))
		r.plans = append(r.plans, mergedUniformPlan(cfg.label, uint32(binding), slot.uniformFields, uniformType))
	}

	return r, nil
}

// validateHandleField checks that a texture or sampler declaration sits on an
// image handle field.
func validateHandleField(decl fieldDecl) error {
	t := decl.typ
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t != handleType {
		return fmt.Errorf("field %q: %s bindings require a render_assets.Handle or *render_assets.Handle field, got %s", decl.name, decl.kind, decl.typ)
	}
	return nil
}

// mergedUniformType returns the Go type whose memory layout backs a uniform
// slot. A slot with a single field uses the field type directly; multiple
// fields synthesize an intermediate struct holding them in declaration order,
// so two fields merged at one slot lay out exactly like a hand-written struct
// with the same members.
func mergedUniformType(fields []fieldDecl) (reflect.Type, error) {
	if len(fields) == 1 {
		return fields[0].typ, nil
	}
	structFields := make([]reflect.StructField, len(fields))
	for i, field := range fields {
		structFields[i] = reflect.StructField{
			Name: field.name,
			Type: field.typ,
		}
	}
	return reflect.StructOf(structFields), nil
}

// uniformLayoutEntry builds the layout entry for a uniform buffer slot. The
// minimum binding size is the serialized size of the slot's uniform type, so
// validation layers catch undersized buffers at bind time.
func uniformLayoutEntry(binding uint32, size uint64) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: allStages,
		Buffer: wgpu.BufferBindingLayout{
			Type:             wgpu.BufferBindingTypeUniform,
			HasDynamicOffset: false,
			MinBindingSize:   size,
		},
	}
}
