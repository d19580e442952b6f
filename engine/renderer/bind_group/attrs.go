package bind_group

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// sortedKeys returns the keys of a vocabulary map in stable order so
// diagnostics list the accepted values deterministically.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// textureAttrs holds the parsed sub-attributes of a texture declaration.
// Zero-configuration declarations resolve to a filterable float 2D texture.
type textureAttrs struct {
	dimension   wgpu.TextureViewDimension
	sampleType  wgpu.TextureSampleType
	multisample bool
}

// samplerAttrs holds the parsed sub-attributes of a sampler declaration.
type samplerAttrs struct {
	bindingType wgpu.SamplerBindingType
}

var textureDimensions = map[string]wgpu.TextureViewDimension{
	"1d":         wgpu.TextureViewDimension1D,
	"2d":         wgpu.TextureViewDimension2D,
	"2d_array":   wgpu.TextureViewDimension2DArray,
	"3d":         wgpu.TextureViewDimension3D,
	"cube":       wgpu.TextureViewDimensionCube,
	"cube_array": wgpu.TextureViewDimensionCubeArray,
}

var textureSampleTypes = map[string]wgpu.TextureSampleType{
	"float": wgpu.TextureSampleTypeFloat,
	"depth": wgpu.TextureSampleTypeDepth,
	"s_int": wgpu.TextureSampleTypeSint,
	"u_int": wgpu.TextureSampleTypeUint,
}

var samplerBindingTypes = map[string]wgpu.SamplerBindingType{
	"filtering":     wgpu.SamplerBindingTypeFiltering,
	"non_filtering": wgpu.SamplerBindingTypeNonFiltering,
	"comparison":    wgpu.SamplerBindingTypeComparison,
}

// parseBool accepts the boolean value vocabulary of sub-attribute options.
func parseBool(field, key, value string) (bool, error) {
	switch value {
	case "true", "":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("field %q: invalid value %q for %s option, expected 'true' or 'false'", field, value, key)
	}
}

// parseTextureAttrs parses the option list of a texture declaration.
//
// The filterable option modifies the sample type rather than standing alone:
// it is only legal when the sample type is float, and filterable=false demotes
// the float sample type to unfilterable float. Because option order is not
// significant, filterable is recorded during the scan and applied after all
// options are read.
//
// Parameters:
//   - field: the declaring field name, used in diagnostics
//   - options: the raw key=value option strings from the tag
//
// Returns:
//   - textureAttrs: the parsed attributes with defaults applied
//   - error: an error describing the first unrecognized key or value
func parseTextureAttrs(field string, options []string) (textureAttrs, error) {
	attrs := textureAttrs{
		dimension:   wgpu.TextureViewDimension2D,
		sampleType:  wgpu.TextureSampleTypeFloat,
		multisample: true,
	}

	var filterable, filterableSet bool
	var sampleTypeValue string

	for _, option := range options {
		key, value, _ := strings.Cut(option, "=")
		switch key {
		case "dimension":
			dimension, ok := textureDimensions[value]
			if !ok {
				return textureAttrs{}, fmt.Errorf("field %q: invalid texture dimension %q, expected one of %s", field, value, strings.Join(sortedKeys(textureDimensions), ", "))
			}
			attrs.dimension = dimension
		case "sample_type":
			sampleType, ok := textureSampleTypes[value]
			if !ok {
				return textureAttrs{}, fmt.Errorf("field %q: invalid texture sample_type %q, expected one of %s", field, value, strings.Join(sortedKeys(textureSampleTypes), ", "))
			}
			attrs.sampleType = sampleType
			sampleTypeValue = value
		case "multisampled":
			multisampled, err := parseBool(field, "multisampled", value)
			if err != nil {
				return textureAttrs{}, err
			}
			attrs.multisample = multisampled
		case "filterable":
			parsed, err := parseBool(field, "filterable", value)
			if err != nil {
				return textureAttrs{}, err
			}
			filterable = parsed
			filterableSet = true
		default:
			return textureAttrs{}, fmt.Errorf("field %q: invalid texture option %q, expected one of dimension, sample_type, multisampled, filterable", field, key)
		}
	}

	if filterableSet {
		if attrs.sampleType != wgpu.TextureSampleTypeFloat {
			return textureAttrs{}, fmt.Errorf("field %q: filterable is only valid for a float sample_type, not %q", field, sampleTypeValue)
		}
		if !filterable {
			attrs.sampleType = wgpu.TextureSampleTypeUnfilterableFloat
		}
	}

	return attrs, nil
}

// parseSamplerAttrs parses the option list of a sampler declaration.
//
// Parameters:
//   - field: the declaring field name, used in diagnostics
//   - options: the raw key=value option strings from the tag
//
// Returns:
//   - samplerAttrs: the parsed attributes, defaulting to a filtering sampler
//   - error: an error describing the first unrecognized key or value
func parseSamplerAttrs(field string, options []string) (samplerAttrs, error) {
	attrs := samplerAttrs{bindingType: wgpu.SamplerBindingTypeFiltering}

	for _, option := range options {
		key, value, _ := strings.Cut(option, "=")
		switch key {
		case "sampler_type":
			bindingType, ok := samplerBindingTypes[value]
			if !ok {
				return samplerAttrs{}, fmt.Errorf("field %q: invalid sampler_type %q, expected one of %s", field, value, strings.Join(sortedKeys(samplerBindingTypes), ", "))
			}
			attrs.bindingType = bindingType
		default:
			return samplerAttrs{}, fmt.Errorf("field %q: invalid sampler option %q, expected sampler_type", field, key)
		}
	}

	return attrs, nil
}
