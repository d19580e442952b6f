package render_assets

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync/atomic"
	"testing"

	"github.com/Wrapperup/bevy/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandle(t *testing.T) {
	var unset Handle
	assert.False(t, unset.IsSet())

	a := NewHandle()
	b := NewHandle()
	assert.True(t, a.IsSet())
	assert.True(t, b.IsSet())
	assert.NotEqual(t, a, b)
}

func TestRegistryInsertGetRemove(t *testing.T) {
	r := NewRegistry(UploadContext{})
	h := NewHandle()

	_, ok := r.Get(h)
	assert.False(t, ok)

	img := &GPUImage{}
	r.Insert(h, img)
	got, ok := r.Get(h)
	require.True(t, ok)
	assert.Same(t, img, got)

	r.Remove(h)
	_, ok = r.Get(h)
	assert.False(t, ok)
}

func TestRegistryLoadAsync(t *testing.T) {
	var uploads atomic.Int32
	r := NewRegistry(UploadContext{}, WithWorkers(2), withUpload(
		func(ctx UploadContext, staging common.TextureStagingData, sampler *common.SamplerStagingData) (*GPUImage, error) {
			uploads.Add(1)
			return &GPUImage{}, nil
		}))

	handles := make([]Handle, 8)
	for i := range handles {
		handles[i] = NewHandle()
		r.LoadAsync(handles[i], common.TextureStagingData{
			Pixels: []byte{255, 255, 255, 255},
			Width:  1,
			Height: 1,
		}, nil)
	}
	r.Wait()

	assert.Equal(t, int32(8), uploads.Load())
	for _, h := range handles {
		_, ok := r.Get(h)
		assert.True(t, ok)
	}
}

func TestRegistryLoadAsyncFailure(t *testing.T) {
	r := NewRegistry(UploadContext{}, withUpload(
		func(ctx UploadContext, staging common.TextureStagingData, sampler *common.SamplerStagingData) (*GPUImage, error) {
			return nil, errors.New("device lost")
		}))

	h := NewHandle()
	r.LoadAsync(h, common.TextureStagingData{Pixels: []byte{0, 0, 0, 255}, Width: 1, Height: 1}, nil)
	r.Wait()

	_, ok := r.Get(h)
	assert.False(t, ok)
}

func TestRegistryLoadImportedAsync(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(1, 0, color.RGBA{B: 255, A: 255})
	var encoded bytes.Buffer
	require.NoError(t, png.Encode(&encoded, img))

	var staged common.TextureStagingData
	r := NewRegistry(UploadContext{}, withUpload(
		func(ctx UploadContext, staging common.TextureStagingData, sampler *common.SamplerStagingData) (*GPUImage, error) {
			staged = staging
			return &GPUImage{}, nil
		}), WithWorkers(1))

	h := NewHandle()
	r.LoadImportedAsync(h, &common.ImportedTexture{
		Name:     "base color",
		Data:     encoded.Bytes(),
		MimeType: "image/png",
	})
	r.Wait()

	_, ok := r.Get(h)
	require.True(t, ok)
	assert.Equal(t, uint32(2), staged.Width)
	assert.Equal(t, uint32(1), staged.Height)
	require.Len(t, staged.Pixels, 8)
	assert.Equal(t, byte(255), staged.Pixels[0])
	assert.Equal(t, byte(255), staged.Pixels[6])
}

func TestRegistryLoadImportedAsyncDecodeFailure(t *testing.T) {
	var uploads atomic.Int32
	r := NewRegistry(UploadContext{}, withUpload(
		func(ctx UploadContext, staging common.TextureStagingData, sampler *common.SamplerStagingData) (*GPUImage, error) {
			uploads.Add(1)
			return &GPUImage{}, nil
		}))

	h := NewHandle()
	r.LoadImportedAsync(h, &common.ImportedTexture{Name: "broken"})
	r.Wait()

	_, ok := r.Get(h)
	assert.False(t, ok)
	assert.Equal(t, int32(0), uploads.Load())
}

func TestRegistryRelease(t *testing.T) {
	r := NewRegistry(UploadContext{})
	h := NewHandle()
	r.Insert(h, &GPUImage{})

	r.Release()
	_, ok := r.Get(h)
	assert.False(t, ok)
}
