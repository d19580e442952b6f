// Package bind_group resolves declaratively annotated Go structs into WebGPU
// bind group layouts and prepared bind groups. Fields carry `bind` struct tags
// declaring their binding kind and slot index; Resolve walks the annotations
// once, assigns each field to a binding slot, rejects conflicting declarations,
// merges uniform fields sharing a slot into one combined buffer, and produces a
// ResolvedBindGroup whose LayoutDescriptor and Prepare methods materialize the
// layout and concrete GPU resources at render time.
package bind_group

import (
	"fmt"
)

// bindingKind identifies what kind of GPU resource a declaration binds.
type bindingKind int

const (
	bindingKindUniform bindingKind = iota
	bindingKindTexture
	bindingKindSampler
)

// String returns the annotation vocabulary name of the kind, used in
// diagnostics and tag parsing.
func (k bindingKind) String() string {
	switch k {
	case bindingKindUniform:
		return "uniform"
	case bindingKindTexture:
		return "texture"
	case bindingKindSampler:
		return "sampler"
	default:
		return fmt.Sprintf("bindingKind(%d)", int(k))
	}
}

// slotStateKind tags the occupancy state of a binding slot.
type slotStateKind int

const (
	// slotFree marks an unoccupied slot.
	slotFree slotStateKind = iota

	// slotOccupied marks a slot held by exactly one texture or sampler field.
	slotOccupied

	// slotConvertedUniform marks a slot held by a struct-level uniform
	// declaration populated via type conversion.
	slotConvertedUniform

	// slotMergeableUniform marks a slot held by one or more uniform fields,
	// open to further uniform fields at the same index.
	slotMergeableUniform
)

// bindingSlot is the per-slot occupancy state. Exactly one interpretation is
// valid per state: kind and owner for slotOccupied, uniformFields for
// slotMergeableUniform.
type bindingSlot struct {
	state         slotStateKind
	kind          bindingKind
	owner         string
	uniformFields []fieldDecl
}

// slotTable is the indexed table of binding slot states. Slots need not be
// contiguous: the table is sized to the maximum referenced index plus one and
// sparsely populated.
type slotTable struct {
	slots []bindingSlot
}

// grow ensures the table covers the given binding index.
func (t *slotTable) grow(binding uint32) {
	required := int(binding) + 1
	for len(t.slots) < required {
		t.slots = append(t.slots, bindingSlot{})
	}
}

// occupyConverted claims a slot for a struct-level uniform declaration.
// Struct-level declarations are applied before any field declarations, so the
// only possible conflict is a duplicate struct-level declaration.
//
// Parameters:
//   - binding: the binding index to claim
//
// Returns:
//   - error: an error if the slot is already occupied
func (t *slotTable) occupyConverted(binding uint32) error {
	t.grow(binding)
	if t.slots[binding].state != slotFree {
		return fmt.Errorf("binding %d is declared by more than one struct-level uniform binding", binding)
	}
	t.slots[binding] = bindingSlot{state: slotConvertedUniform}
	return nil
}

// occupy applies a field declaration to the table per the slot transition
// rules: a free slot is claimed; a uniform declaration merges into a mergeable
// uniform slot; every other combination is a conflict that fails the whole
// resolution.
//
// Parameters:
//   - decl: the field declaration to apply
//
// Returns:
//   - error: a conflict error naming the rejected field and the occupant
func (t *slotTable) occupy(decl fieldDecl) error {
	t.grow(decl.binding)
	slot := &t.slots[decl.binding]

	switch slot.state {
	case slotFree:
		if decl.kind == bindingKindUniform {
			*slot = bindingSlot{
				state:         slotMergeableUniform,
				uniformFields: []fieldDecl{decl},
			}
		} else {
			*slot = bindingSlot{
				state: slotOccupied,
				kind:  decl.kind,
				owner: decl.name,
			}
		}
		return nil

	case slotOccupied:
		return fmt.Errorf("field %q cannot be assigned to binding %d: already occupied by field %q of type %s", decl.name, decl.binding, slot.owner, slot.kind)

	case slotConvertedUniform:
		return fmt.Errorf("field %q cannot be assigned to binding %d: already occupied by a struct-level uniform binding at the same index", decl.name, decl.binding)

	case slotMergeableUniform:
		if decl.kind != bindingKindUniform {
			return fmt.Errorf("field %q cannot be assigned to binding %d: already occupied by a uniform", decl.name, decl.binding)
		}
		slot.uniformFields = append(slot.uniformFields, decl)
		return nil

	default:
		return fmt.Errorf("binding %d is in an unknown state", decl.binding)
	}
}
