// Package material builds render materials on top of the bind group resolver:
// a material type declares its GPU bindings once, a Plan resolves them and
// owns the shared layout, and each material instance materializes its own
// bind group through the plan.
package material

import (
	"fmt"

	"github.com/Wrapperup/bevy/engine/renderer/bind_group"
	"github.com/cogentcore/webgpu/wgpu"
)

// plan is the implementation of the Plan interface.
type plan struct {
	resolved bind_group.ResolvedBindGroup
	layout   *wgpu.BindGroupLayout
}

// Plan is the per-material-type preparation pipeline. It is created once at
// startup, holds the bind group layout shared by every instance of the
// material type, and prepares instance bind groups on demand.
type Plan interface {
	// Resolved retrieves the binding resolution backing the plan.
	//
	// Returns:
	//   - bind_group.ResolvedBindGroup: the resolution
	Resolved() bind_group.ResolvedBindGroup

	// Layout retrieves the bind group layout shared by every material
	// instance prepared through this plan.
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the layout
	Layout() *wgpu.BindGroupLayout

	// Prepare materializes the bind group for one material instance. A
	// referenced texture that has not finished loading fails with
	// bind_group.ErrRetryNextUpdate; retry on a later frame.
	//
	// Parameters:
	//   - ctx: the device and image sources to prepare against
	//   - source: a value (or pointer to a value) of the plan's material type
	//
	// Returns:
	//   - *bind_group.PreparedBindGroup: the prepared bind group
	//   - error: bind_group.ErrRetryNextUpdate or a fatal error
	Prepare(ctx bind_group.PrepareContext, source any) (*bind_group.PreparedBindGroup, error)

	// Release frees the shared layout. Prepared bind groups are released
	// individually by their owners.
	Release()
}

var _ Plan = &plan{}

// NewPlan resolves a material type's binding declarations and creates its
// shared bind group layout.
//
// Parameters:
//   - device: the device to create the layout on
//   - prototype: a value (or pointer to a value) of the material type
//   - options: aggregate-level binding declarations forwarded to the resolver
//
// Returns:
//   - Plan: the preparation plan for the material type
//   - error: an error if resolution or layout creation fails
func NewPlan(device *wgpu.Device, prototype any, options ...bind_group.ResolveOption) (Plan, error) {
	resolved, err := bind_group.Resolve(prototype, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve material bindings: %w", err)
	}
	layout, err := resolved.CreateLayout(device)
	if err != nil {
		return nil, err
	}
	return &plan{resolved: resolved, layout: layout}, nil
}

func (p *plan) Resolved() bind_group.ResolvedBindGroup {
	return p.resolved
}

func (p *plan) Layout() *wgpu.BindGroupLayout {
	return p.layout
}

func (p *plan) Prepare(ctx bind_group.PrepareContext, source any) (*bind_group.PreparedBindGroup, error) {
	return p.resolved.Prepare(ctx, p.layout, source)
}

func (p *plan) Release() {
	if p.layout != nil {
		p.layout.Release()
		p.layout = nil
	}
}
