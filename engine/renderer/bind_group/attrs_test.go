package bind_group

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTextureAttrsDefaults(t *testing.T) {
	attrs, err := parseTextureAttrs("Tex", nil)
	require.NoError(t, err)

	assert.Equal(t, wgpu.TextureViewDimension2D, attrs.dimension)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, attrs.sampleType)
	assert.True(t, attrs.multisample)
}

func TestParseTextureAttrs(t *testing.T) {
	tests := []struct {
		name    string
		options []string
		want    textureAttrs
	}{
		{
			name:    "cube dimension",
			options: []string{"dimension=cube"},
			want:    textureAttrs{dimension: wgpu.TextureViewDimensionCube, sampleType: wgpu.TextureSampleTypeFloat, multisample: true},
		},
		{
			name:    "2d array dimension",
			options: []string{"dimension=2d_array"},
			want:    textureAttrs{dimension: wgpu.TextureViewDimension2DArray, sampleType: wgpu.TextureSampleTypeFloat, multisample: true},
		},
		{
			name:    "depth sample type",
			options: []string{"sample_type=depth"},
			want:    textureAttrs{dimension: wgpu.TextureViewDimension2D, sampleType: wgpu.TextureSampleTypeDepth, multisample: true},
		},
		{
			name:    "unsigned int sample type",
			options: []string{"sample_type=u_int"},
			want:    textureAttrs{dimension: wgpu.TextureViewDimension2D, sampleType: wgpu.TextureSampleTypeUint, multisample: true},
		},
		{
			name:    "multisampled off",
			options: []string{"multisampled=false"},
			want:    textureAttrs{dimension: wgpu.TextureViewDimension2D, sampleType: wgpu.TextureSampleTypeFloat, multisample: false},
		},
		{
			name:    "filterable false demotes float",
			options: []string{"filterable=false"},
			want:    textureAttrs{dimension: wgpu.TextureViewDimension2D, sampleType: wgpu.TextureSampleTypeUnfilterableFloat, multisample: true},
		},
		{
			name:    "filterable true keeps float",
			options: []string{"filterable=true"},
			want:    textureAttrs{dimension: wgpu.TextureViewDimension2D, sampleType: wgpu.TextureSampleTypeFloat, multisample: true},
		},
		{
			name:    "bare filterable defaults to true",
			options: []string{"filterable"},
			want:    textureAttrs{dimension: wgpu.TextureViewDimension2D, sampleType: wgpu.TextureSampleTypeFloat, multisample: true},
		},
		{
			name:    "filterable before explicit float sample type",
			options: []string{"filterable=false", "sample_type=float"},
			want:    textureAttrs{dimension: wgpu.TextureViewDimension2D, sampleType: wgpu.TextureSampleTypeUnfilterableFloat, multisample: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTextureAttrs("Tex", tt.options)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTextureAttrsErrors(t *testing.T) {
	tests := []struct {
		name    string
		options []string
		wantMsg string
	}{
		{name: "bogus dimension", options: []string{"dimension=5d"}, wantMsg: "invalid texture dimension"},
		{name: "bogus sample type", options: []string{"sample_type=color"}, wantMsg: "invalid texture sample_type"},
		{name: "bogus multisampled", options: []string{"multisampled=maybe"}, wantMsg: "invalid value"},
		{name: "unknown option", options: []string{"mips=4"}, wantMsg: "invalid texture option"},
		{name: "filterable on depth", options: []string{"sample_type=depth", "filterable=true"}, wantMsg: "only valid for a float sample_type"},
		{name: "filterable before depth", options: []string{"filterable=false", "sample_type=depth"}, wantMsg: "only valid for a float sample_type"},
		{name: "filterable on uint", options: []string{"sample_type=u_int", "filterable=false"}, wantMsg: "only valid for a float sample_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseTextureAttrs("Tex", tt.options)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Contains(t, err.Error(), "Tex")
		})
	}
}

func TestParseSamplerAttrs(t *testing.T) {
	attrs, err := parseSamplerAttrs("Samp", nil)
	require.NoError(t, err)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, attrs.bindingType)

	attrs, err = parseSamplerAttrs("Samp", []string{"sampler_type=non_filtering"})
	require.NoError(t, err)
	assert.Equal(t, wgpu.SamplerBindingTypeNonFiltering, attrs.bindingType)

	attrs, err = parseSamplerAttrs("Samp", []string{"sampler_type=comparison"})
	require.NoError(t, err)
	assert.Equal(t, wgpu.SamplerBindingTypeComparison, attrs.bindingType)
}

func TestParseSamplerAttrsErrors(t *testing.T) {
	_, err := parseSamplerAttrs("Samp", []string{"sampler_type=bilinear"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid sampler_type")

	_, err = parseSamplerAttrs("Samp", []string{"filtering=true"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid sampler option")
}
