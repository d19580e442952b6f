package render_assets

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// GPUImage is a fully uploaded image: the texture, a view over it, and the
// sampler configured for it. Instances are owned by the Registry (or the
// FallbackImage) that created them; bind groups borrow the view and sampler
// without taking ownership.
type GPUImage struct {
	// Texture is the underlying GPU texture.
	Texture *wgpu.Texture

	// TextureView is the view bound for sampled texture bindings.
	TextureView *wgpu.TextureView

	// Sampler is the sampler bound for sampler bindings that reference this image.
	Sampler *wgpu.Sampler
}

// Release releases all GPU resources held by this image.
func (img *GPUImage) Release() {
	if img.TextureView != nil {
		img.TextureView.Release()
		img.TextureView = nil
	}
	if img.Sampler != nil {
		img.Sampler.Release()
		img.Sampler = nil
	}
	if img.Texture != nil {
		img.Texture.Release()
		img.Texture = nil
	}
}
