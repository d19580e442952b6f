package bind_group

import (
	"reflect"
	"testing"

	"github.com/Wrapperup/bevy/engine/renderer/render_assets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanFields(t *testing.T) {
	type target struct {
		Color    [4]float32           `bind:"uniform,0"`
		Albedo   render_assets.Handle `bind:"texture,1,dimension=2d,filterable=false"`
		Sampler  render_assets.Handle `bind:"sampler,2"`
		Internal string
	}

	decls, err := scanFields(reflect.TypeOf(target{}))
	require.NoError(t, err)
	require.Len(t, decls, 3)

	assert.Equal(t, "Color", decls[0].name)
	assert.Equal(t, bindingKindUniform, decls[0].kind)
	assert.Equal(t, uint32(0), decls[0].binding)
	assert.Empty(t, decls[0].options)

	assert.Equal(t, "Albedo", decls[1].name)
	assert.Equal(t, bindingKindTexture, decls[1].kind)
	assert.Equal(t, uint32(1), decls[1].binding)
	assert.Equal(t, []string{"dimension=2d", "filterable=false"}, decls[1].options)

	assert.Equal(t, "Sampler", decls[2].name)
	assert.Equal(t, bindingKindSampler, decls[2].kind)
	assert.Equal(t, uint32(2), decls[2].binding)
}

func TestScanFieldsSkipsUntagged(t *testing.T) {
	type target struct {
		Name  string
		Count int
	}

	decls, err := scanFields(reflect.TypeOf(target{}))
	require.NoError(t, err)
	assert.Empty(t, decls)
}

func TestScanFieldsErrors(t *testing.T) {
	type unexportedTag struct {
		color float32 `bind:"uniform,0"`
	}
	type badKind struct {
		Color float32 `bind:"storage,0"`
	}
	type missingIndex struct {
		Color float32 `bind:"uniform"`
	}
	type badIndex struct {
		Color float32 `bind:"uniform,minus-one"`
	}
	type uniformOptions struct {
		Color float32 `bind:"uniform,0,dimension=2d"`
	}
	_ = unexportedTag{color: 0}

	tests := []struct {
		name    string
		typ     reflect.Type
		wantMsg string
	}{
		{name: "not a struct", typ: reflect.TypeOf(42), wantMsg: "expected a struct type"},
		{name: "unexported tagged field", typ: reflect.TypeOf(unexportedTag{}), wantMsg: "unexported"},
		{name: "unknown kind", typ: reflect.TypeOf(badKind{}), wantMsg: "invalid binding kind"},
		{name: "missing binding index", typ: reflect.TypeOf(missingIndex{}), wantMsg: "must declare a kind and a binding index"},
		{name: "malformed binding index", typ: reflect.TypeOf(badIndex{}), wantMsg: "invalid binding index"},
		{name: "options on uniform", typ: reflect.TypeOf(uniformOptions{}), wantMsg: "uniform bindings accept no options"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scanFields(tt.typ)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
