package render_assets

import (
	"github.com/Wrapperup/bevy/common"
)

// FallbackImage is the image substituted into texture and sampler bindings
// whose field holds no handle. It is a 1x1 solid-color texture with a
// linear/repeat sampler, created once and shared by every prepared bind group.
type FallbackImage struct {
	// Image holds the fallback texture, view, and sampler.
	Image *GPUImage
}

// fallbackImageConfig collects FallbackImage construction options.
type fallbackImageConfig struct {
	color   [4]uint8
	sampler *common.SamplerStagingData
}

// FallbackImageOption is a functional option used to configure a FallbackImage
// during construction.
type FallbackImageOption func(*fallbackImageConfig)

// WithFallbackColor is an option builder that sets the RGBA color of the 1x1
// fallback texture. Defaults to opaque white.
//
// Parameters:
//   - color: the RGBA color bytes
//
// Returns:
//   - FallbackImageOption: a function that applies the color option
func WithFallbackColor(color [4]uint8) FallbackImageOption {
	return func(c *fallbackImageConfig) {
		c.color = color
	}
}

// WithFallbackSampler is an option builder that sets the sampler configuration
// for the fallback image. Defaults to linear filtering with repeat addressing.
//
// Parameters:
//   - sampler: the sampler staging configuration
//
// Returns:
//   - FallbackImageOption: a function that applies the sampler option
func WithFallbackSampler(sampler common.SamplerStagingData) FallbackImageOption {
	return func(c *fallbackImageConfig) {
		c.sampler = &sampler
	}
}

// NewFallbackImage creates the 1x1 fallback image on the GPU.
//
// Parameters:
//   - ctx: the device and queue to upload through
//   - options: a variadic list of options to configure the fallback
//
// Returns:
//   - *FallbackImage: the created fallback image
//   - error: an error if any GPU object could not be created
func NewFallbackImage(ctx UploadContext, options ...FallbackImageOption) (*FallbackImage, error) {
	cfg := fallbackImageConfig{
		color: [4]uint8{255, 255, 255, 255},
	}
	for _, opt := range options {
		opt(&cfg)
	}

	img, err := uploadStagingData(ctx, common.TextureStagingData{
		Pixels: cfg.color[:],
		Width:  1,
		Height: 1,
	}, cfg.sampler)
	if err != nil {
		return nil, err
	}

	return &FallbackImage{Image: img}, nil
}

// Release releases the fallback image's GPU resources.
func (f *FallbackImage) Release() {
	if f.Image != nil {
		f.Image.Release()
		f.Image = nil
	}
}
