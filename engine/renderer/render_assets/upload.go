package render_assets

import (
	"fmt"

	"github.com/Wrapperup/bevy/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// UploadContext carries the device and queue used to create and fill GPU
// textures and samplers.
type UploadContext struct {
	Device *wgpu.Device
	Queue  *wgpu.Queue
}

// uploadFunc creates a GPUImage from staging data. The production
// implementation is uploadStagingData; tests substitute a stub.
type uploadFunc func(ctx UploadContext, staging common.TextureStagingData, sampler *common.SamplerStagingData) (*GPUImage, error)

// uploadStagingData creates a texture, writes the RGBA pixels, and creates a
// view and sampler for it.
//
// Parameters:
//   - ctx: the device and queue to upload through
//   - staging: RGBA pixel data and dimensions
//   - sampler: sampler configuration, or nil for linear/repeat defaults
//
// Returns:
//   - *GPUImage: the uploaded image
//   - error: an error if any GPU object could not be created
func uploadStagingData(ctx UploadContext, staging common.TextureStagingData, sampler *common.SamplerStagingData) (*GPUImage, error) {
	if staging.Width == 0 || staging.Height == 0 {
		return nil, fmt.Errorf("staging data has zero dimensions (%dx%d)", staging.Width, staging.Height)
	}
	if expected := int(staging.Width) * int(staging.Height) * 4; len(staging.Pixels) < expected {
		return nil, fmt.Errorf("staging data has %d pixel bytes, need %d for %dx%d RGBA", len(staging.Pixels), expected, staging.Width, staging.Height)
	}

	tex, err := ctx.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     "Registry Texture",
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              staging.Width,
			Height:             staging.Height,
			DepthOrArrayLayers: 1,
		},
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, err
	}

	ctx.Queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		staging.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  staging.Width * 4,
			RowsPerImage: staging.Height,
		},
		&wgpu.Extent3D{
			Width:              staging.Width,
			Height:             staging.Height,
			DepthOrArrayLayers: 1,
		},
	)

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, err
	}

	samp, err := createSampler(ctx, sampler)
	if err != nil {
		view.Release()
		tex.Release()
		return nil, err
	}

	return &GPUImage{
		Texture:     tex,
		TextureView: view,
		Sampler:     samp,
	}, nil
}

// createSampler creates a sampler from staging configuration, applying
// linear/repeat defaults for unset fields.
func createSampler(ctx UploadContext, staging *common.SamplerStagingData) (*wgpu.Sampler, error) {
	if staging == nil {
		staging = &common.SamplerStagingData{}
	}
	return ctx.Device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Registry Sampler",
		AddressModeU:  common.Coalesce(staging.AddressModeU, wgpu.AddressModeRepeat),
		AddressModeV:  common.Coalesce(staging.AddressModeV, wgpu.AddressModeRepeat),
		AddressModeW:  common.Coalesce(staging.AddressModeW, wgpu.AddressModeRepeat),
		MagFilter:     common.Coalesce(staging.MagFilter, wgpu.FilterModeLinear),
		MinFilter:     common.Coalesce(staging.MinFilter, wgpu.FilterModeLinear),
		MipmapFilter:  common.Coalesce(staging.MipmapFilter, wgpu.MipmapFilterModeLinear),
		LodMinClamp:   common.Coalesce(staging.LodMinClamp, 0.0),
		LodMaxClamp:   common.Coalesce(staging.LodMaxClamp, 32.0),
		MaxAnisotropy: common.Coalesce(staging.MaxAnisotropy, 1),
		Compare:       staging.Compare,
	})
}
