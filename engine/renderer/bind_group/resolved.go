package bind_group

import (
	"fmt"
	"reflect"

	"github.com/Wrapperup/bevy/engine/renderer/render_assets"
	"github.com/Wrapperup/bevy/engine/renderer/uniform"
	"github.com/cogentcore/webgpu/wgpu"
)

// PrepareContext carries the GPU handles and image sources a Prepare call
// draws from. Fallback may be nil when every texture and sampler field is
// expected to carry a set handle.
type PrepareContext struct {
	Device   *wgpu.Device
	Images   render_assets.Registry
	Fallback *render_assets.FallbackImage
}

// ResolvedBindGroup is the reusable result of resolving an aggregate's
// binding declarations: it describes the bind group layout and materializes
// bind groups from values of the aggregate type.
type ResolvedBindGroup interface {
	// Label returns the debug label of the resolution.
	//
	// Returns:
	//   - string: the label, defaulting to the aggregate type name
	Label() string

	// DataType returns the declared type of the data carried alongside
	// prepared bind groups (see WithBindGroupData).
	//
	// Returns:
	//   - reflect.Type: the declared data type, or nil when none was declared
	DataType() reflect.Type

	// LayoutDescriptor returns the bind group layout descriptor produced by
	// resolution. The descriptor is complete before any GPU resource exists,
	// so pipelines can be created ahead of the first Prepare call.
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the layout descriptor
	LayoutDescriptor() wgpu.BindGroupLayoutDescriptor

	// CreateLayout creates the bind group layout on the device.
	//
	// Parameters:
	//   - device: the device to create the layout on
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the created layout
	//   - error: an error if layout creation fails
	CreateLayout(device *wgpu.Device) (*wgpu.BindGroupLayout, error)

	// Prepare materializes a bind group from a value of the aggregate type:
	// uniform fields serialize into buffers, texture and sampler fields
	// resolve their image handles against the registry. A referenced image
	// that has not finished loading fails with ErrRetryNextUpdate and no
	// partial state; the caller retries on a later frame.
	//
	// Parameters:
	//   - ctx: the device and image sources to prepare against
	//   - layout: the layout created by CreateLayout
	//   - source: a value (or pointer to a value) of the aggregate type
	//
	// Returns:
	//   - *PreparedBindGroup: the bind group and its backing resources
	//   - error: ErrRetryNextUpdate or a fatal preparation error
	Prepare(ctx PrepareContext, layout *wgpu.BindGroupLayout, source any) (*PreparedBindGroup, error)
}

// bindingPlan is one planned binding: the prepare step runs per Prepare call
// and produces the binding's resource from the source value.
type bindingPlan struct {
	binding uint32
	prepare func(ctx PrepareContext, origin any, structValue reflect.Value) (OwnedBindingResource, error)
}

type resolvedBindGroup struct {
	label         string
	typ           reflect.Type
	dataType      reflect.Type
	plans         []bindingPlan
	layoutEntries []wgpu.BindGroupLayoutEntry
}

var _ ResolvedBindGroup = &resolvedBindGroup{}

func (r *resolvedBindGroup) Label() string {
	return r.label
}

func (r *resolvedBindGroup) DataType() reflect.Type {
	return r.dataType
}

func (r *resolvedBindGroup) LayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label:   r.label + " Bind Group Layout",
		Entries: r.layoutEntries,
	}
}

func (r *resolvedBindGroup) CreateLayout(device *wgpu.Device) (*wgpu.BindGroupLayout, error) {
	descriptor := r.LayoutDescriptor()
	layout, err := device.CreateBindGroupLayout(&descriptor)
	if err != nil {
		return nil, fmt.Errorf("failed to create bind group layout for %s: %w", r.label, err)
	}
	return layout, nil
}

func (r *resolvedBindGroup) Prepare(ctx PrepareContext, layout *wgpu.BindGroupLayout, source any) (*PreparedBindGroup, error) {
	structValue := reflect.ValueOf(source)
	if !structValue.IsValid() {
		return nil, fmt.Errorf("cannot prepare %s from a nil value", r.label)
	}
	if structValue.Kind() == reflect.Pointer {
		if structValue.IsNil() {
			return nil, fmt.Errorf("cannot prepare %s from a nil pointer", r.label)
		}
		structValue = structValue.Elem()
	}
	if structValue.Type() != r.typ {
		return nil, fmt.Errorf("cannot prepare %s from a %s value, expected %s", r.label, structValue.Type(), r.typ)
	}

	bindings := make([]OwnedBindingResource, 0, len(r.plans))
	releaseAll := func() {
		for i := range bindings {
			bindings[i].release()
		}
	}

	for _, plan := range r.plans {
		resource, err := plan.prepare(ctx, source, structValue)
		if err != nil {
			releaseAll()
			return nil, err
		}
		bindings = append(bindings, resource)
	}

	entries := make([]wgpu.BindGroupEntry, len(bindings))
	for i := range bindings {
		entries[i] = bindings[i].asEntry()
	}
	bindGroup, err := ctx.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   r.label + " Bind Group",
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		releaseAll()
		return nil, fmt.Errorf("failed to create bind group for %s: %w", r.label, err)
	}

	prepared := &PreparedBindGroup{
		bindings:  bindings,
		bindGroup: bindGroup,
	}
	if r.dataType != nil {
		convertible, ok := convertibleOf[DataConvertible](source, structValue)
		if !ok {
			prepared.Release()
			return nil, fmt.Errorf("%s does not implement bind_group.DataConvertible", r.typ)
		}
		data := convertible.BindGroupData()
		if reflect.TypeOf(data) != r.dataType {
			prepared.Release()
			return nil, fmt.Errorf("bind group data for %s is %T, expected %s", r.label, data, r.dataType)
		}
		prepared.data = data
	}
	return prepared, nil
}

// convertibleOf asserts the source to the given interface, retrying through an
// addressable copy so pointer-receiver methods are found when the caller
// passed the aggregate by value.
func convertibleOf[I any](origin any, structValue reflect.Value) (I, bool) {
	if iface, ok := origin.(I); ok {
		return iface, true
	}
	ptr := reflect.New(structValue.Type())
	ptr.Elem().Set(structValue)
	iface, ok := ptr.Interface().(I)
	return iface, ok
}

// createUniformBuffer serializes a value with uniform layout rules and
// uploads it into a new buffer owned by the prepared bind group.
func createUniformBuffer(ctx PrepareContext, label string, binding uint32, value any) (OwnedBindingResource, error) {
	buf := uniform.NewBuffer()
	if err := buf.Write(value); err != nil {
		return OwnedBindingResource{}, fmt.Errorf("uniform at binding %d: %w", binding, err)
	}
	buffer, err := ctx.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    fmt.Sprintf("%s Uniform Buffer %d", label, binding),
		Contents: buf.Bytes(),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return OwnedBindingResource{}, fmt.Errorf("failed to create uniform buffer at binding %d: %w", binding, err)
	}
	return OwnedBindingResource{binding: binding, buffer: buffer, owned: true}, nil
}

// convertedUniformPlan prepares a struct-level uniform: the whole aggregate
// converts via ShaderTypeConvertible and the result is serialized. The
// conversion result must match the declared target type exactly.
func convertedUniformPlan(label string, converted convertedUniformDecl) bindingPlan {
	return bindingPlan{
		binding: converted.binding,
		prepare: func(ctx PrepareContext, origin any, structValue reflect.Value) (OwnedBindingResource, error) {
			convertible, ok := convertibleOf[ShaderTypeConvertible](origin, structValue)
			if !ok {
				return OwnedBindingResource{}, fmt.Errorf("%s does not implement bind_group.ShaderTypeConvertible", structValue.Type())
			}
			value := convertible.AsBindGroupShaderType(ctx.Images)
			if reflect.TypeOf(value) != converted.targetType {
				return OwnedBindingResource{}, fmt.Errorf("shader type conversion for binding %d returned %T, expected %s", converted.binding, value, converted.targetType)
			}
			return createUniformBuffer(ctx, label, converted.binding, value)
		},
	}
}

// mergedUniformPlan prepares one uniform slot. Slots holding several fields
// copy them into the synthesized intermediate struct before serializing, so
// the buffer layout matches the slot's declared uniform type.
func mergedUniformPlan(label string, binding uint32, fields []fieldDecl, uniformType reflect.Type) bindingPlan {
	return bindingPlan{
		binding: binding,
		prepare: func(ctx PrepareContext, origin any, structValue reflect.Value) (OwnedBindingResource, error) {
			var value reflect.Value
			if len(fields) == 1 {
				value = structValue.Field(fields[0].index)
			} else {
				value = reflect.New(uniformType).Elem()
				for i, field := range fields {
					value.Field(i).Set(structValue.Field(field.index))
				}
			}
			return createUniformBuffer(ctx, label, binding, value.Interface())
		},
	}
}

// texturePlan prepares a texture binding by resolving the field's image
// handle. The view is borrowed from the registry or fallback image and never
// released with the bind group.
func texturePlan(decl fieldDecl) bindingPlan {
	return bindingPlan{
		binding: decl.binding,
		prepare: func(ctx PrepareContext, origin any, structValue reflect.Value) (OwnedBindingResource, error) {
			image, err := resolveImage(ctx, decl, structValue)
			if err != nil {
				return OwnedBindingResource{}, err
			}
			return OwnedBindingResource{binding: decl.binding, textureView: image.TextureView}, nil
		},
	}
}

// samplerPlan prepares a sampler binding from the same handle resolution as
// texturePlan.
func samplerPlan(decl fieldDecl) bindingPlan {
	return bindingPlan{
		binding: decl.binding,
		prepare: func(ctx PrepareContext, origin any, structValue reflect.Value) (OwnedBindingResource, error) {
			image, err := resolveImage(ctx, decl, structValue)
			if err != nil {
				return OwnedBindingResource{}, err
			}
			return OwnedBindingResource{binding: decl.binding, sampler: image.Sampler}, nil
		},
	}
}

// resolveImage resolves an image handle field. An unset handle (zero, or a
// nil *Handle) uses the fallback image; a set handle whose image has not
// finished loading fails with ErrRetryNextUpdate.
func resolveImage(ctx PrepareContext, decl fieldDecl, structValue reflect.Value) (*render_assets.GPUImage, error) {
	fieldValue := structValue.Field(decl.index)
	var handle render_assets.Handle
	if fieldValue.Kind() == reflect.Pointer {
		if !fieldValue.IsNil() {
			handle = fieldValue.Elem().Interface().(render_assets.Handle)
		}
	} else {
		handle = fieldValue.Interface().(render_assets.Handle)
	}

	if !handle.IsSet() {
		if ctx.Fallback != nil && ctx.Fallback.Image != nil {
			return ctx.Fallback.Image, nil
		}
		return nil, fmt.Errorf("field %q has no image bound and no fallback image is configured", decl.name)
	}
	if ctx.Images == nil {
		return nil, fmt.Errorf("field %q references image %d but no image registry is configured", decl.name, uint64(handle))
	}
	image, ok := ctx.Images.Get(handle)
	if !ok {
		return nil, fmt.Errorf("field %q: image %d is not loaded yet: %w", decl.name, uint64(handle), ErrRetryNextUpdate)
	}
	return image, nil
}
