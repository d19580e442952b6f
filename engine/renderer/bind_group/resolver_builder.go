package bind_group

import "reflect"

// convertedUniformDecl is a struct-level uniform declaration: the whole
// aggregate converts into targetType and uploads at the given binding.
type convertedUniformDecl struct {
	binding    uint32
	targetType reflect.Type
}

// resolverConfig collects the aggregate-level declarations applied to a
// Resolve call.
type resolverConfig struct {
	label             string
	dataType          reflect.Type
	convertedUniforms []convertedUniformDecl
}

// ResolveOption configures aggregate-level binding declarations for Resolve.
type ResolveOption func(*resolverConfig)

// WithLabel sets the debug label applied to the layout, buffers and bind
// groups created from the resolution.
//
// Parameters:
//   - label: the debug label
//
// Returns:
//   - ResolveOption: the option to pass to Resolve
func WithLabel(label string) ResolveOption {
	return func(cfg *resolverConfig) {
		cfg.label = label
	}
}

// WithBindGroupData declares the type of the extra data the aggregate carries
// alongside its bind group, typically a pipeline specialization key. The
// source type must implement DataConvertible and its BindGroupData must
// return a value of the prototype's type; Resolve fails if the interface is
// missing, Prepare fails on a mismatched value.
//
// Parameters:
//   - prototype: a prototype value of the data type
//
// Returns:
//   - ResolveOption: the option to pass to Resolve
func WithBindGroupData(prototype any) ResolveOption {
	return func(cfg *resolverConfig) {
		cfg.dataType = reflect.TypeOf(prototype)
	}
}

// WithConvertedUniform declares a struct-level uniform at the given binding:
// instead of serializing tagged fields, the whole aggregate converts into the
// target type via ShaderTypeConvertible and the result is uploaded. The
// target prototype fixes the expected type of the conversion; a mismatched
// conversion result fails Prepare. Struct-level declarations claim their slot
// before any field declaration and never merge.
//
// Parameters:
//   - binding: the binding index to claim
//   - target: a prototype value of the conversion result type
//
// Returns:
//   - ResolveOption: the option to pass to Resolve
func WithConvertedUniform(binding uint32, target any) ResolveOption {
	return func(cfg *resolverConfig) {
		cfg.convertedUniforms = append(cfg.convertedUniforms, convertedUniformDecl{
			binding:    binding,
			targetType: reflect.TypeOf(target),
		})
	}
}
