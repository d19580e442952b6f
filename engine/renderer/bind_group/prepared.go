package bind_group

import (
	"errors"

	"github.com/cogentcore/webgpu/wgpu"
)

// ErrRetryNextUpdate signals that a binding could not be prepared because a
// referenced image has not finished loading. The caller should retry the whole
// Prepare call on a later frame; no partial state is retained.
var ErrRetryNextUpdate = errors.New("bind group not ready, retry next update")

// OwnedBindingResource is one materialized binding resource. Buffers created
// during Prepare are owned by the bind group and released with it; texture
// views and samplers borrowed from the image registry or the fallback image
// are referenced only and survive the bind group's release.
type OwnedBindingResource struct {
	binding     uint32
	buffer      *wgpu.Buffer
	textureView *wgpu.TextureView
	sampler     *wgpu.Sampler
	owned       bool
}

// Binding returns the binding index the resource is bound at.
//
// Returns:
//   - uint32: the binding index
func (r *OwnedBindingResource) Binding() uint32 {
	return r.binding
}

// Buffer returns the buffer resource, or nil for texture and sampler bindings.
//
// Returns:
//   - *wgpu.Buffer: the backing buffer if this is a buffer binding
func (r *OwnedBindingResource) Buffer() *wgpu.Buffer {
	return r.buffer
}

// asEntry converts the resource into a bind group entry for CreateBindGroup.
func (r *OwnedBindingResource) asEntry() wgpu.BindGroupEntry {
	entry := wgpu.BindGroupEntry{Binding: r.binding}
	switch {
	case r.buffer != nil:
		entry.Buffer = r.buffer
		entry.Size = wgpu.WholeSize
	case r.textureView != nil:
		entry.TextureView = r.textureView
	case r.sampler != nil:
		entry.Sampler = r.sampler
	}
	return entry
}

// release frees the resource if the bind group owns it.
func (r *OwnedBindingResource) release() {
	if !r.owned {
		return
	}
	if r.buffer != nil {
		r.buffer.Release()
	}
}

// PreparedBindGroup is the result of a successful Prepare call: the created
// bind group, the per-binding resources behind it, and the extra data the
// aggregate chose to carry alongside (see WithBindGroupData).
type PreparedBindGroup struct {
	bindings  []OwnedBindingResource
	bindGroup *wgpu.BindGroup
	data      any
}

// BindGroup returns the created bind group.
//
// Returns:
//   - *wgpu.BindGroup: the bind group to set on a render pass
func (p *PreparedBindGroup) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

// Bindings returns the materialized per-binding resources in emission order.
//
// Returns:
//   - []OwnedBindingResource: the binding resources backing the bind group
func (p *PreparedBindGroup) Bindings() []OwnedBindingResource {
	return p.bindings
}

// Data returns the extra data extracted from the source value during Prepare,
// or nil when the aggregate declared none.
//
// Returns:
//   - any: the extracted data
func (p *PreparedBindGroup) Data() any {
	return p.data
}

// Release frees the bind group and every resource it owns. Borrowed texture
// views and samplers are left untouched.
func (p *PreparedBindGroup) Release() {
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	for i := range p.bindings {
		p.bindings[i].release()
	}
	p.bindings = nil
}
