package render_assets

// RegistryOption is a functional option used to configure a Registry during
// construction.
type RegistryOption func(*registry)

// WithWorkers is an option builder that sets the number of pool workers used
// for decode and upload tasks. Defaults to NumCPU-1 with a minimum of 1.
//
// Parameters:
//   - workers: the worker count (values below 1 are clamped to 1)
//
// Returns:
//   - RegistryOption: a function that applies the worker count to a registry
func WithWorkers(workers int) RegistryOption {
	return func(r *registry) {
		r.workers = max(workers, 1)
	}
}

// withUpload substitutes the GPU upload step. Used by tests to exercise load
// bookkeeping without a device.
func withUpload(upload uploadFunc) RegistryOption {
	return func(r *registry) {
		r.upload = upload
	}
}
