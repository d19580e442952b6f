// Package render_assets tracks GPU-resident images behind opaque handles and
// provides the fallback image substituted when a binding has no handle set.
// Images are loaded asynchronously: a handle can be referenced by a bind group
// before its texture has finished uploading, in which case the bind group
// resolver reports a retryable failure and the caller re-attempts once the
// upload completes.
package render_assets

import "sync/atomic"

// Handle is an opaque identifier for an image tracked by a Registry. The zero
// Handle is reserved to mean "no image"; bindings holding a zero Handle are
// substituted with the fallback image.
type Handle uint64

// nextHandle is the global handle allocator. Handle 0 is never allocated.
var nextHandle atomic.Uint64

// NewHandle allocates a fresh non-zero Handle. Safe for concurrent use.
//
// Returns:
//   - Handle: a unique non-zero handle
func NewHandle() Handle {
	return Handle(nextHandle.Add(1))
}

// IsSet reports whether the handle references an image, i.e. is non-zero.
//
// Returns:
//   - bool: true if the handle is non-zero
func (h Handle) IsSet() bool {
	return h != 0
}
