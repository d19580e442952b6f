package render_assets

import (
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Wrapperup/bevy/common"
)

// registry is the unexported implementation of Registry.
type registry struct {
	mu sync.RWMutex

	// images holds the uploaded GPU images keyed by handle.
	images map[Handle]*GPUImage

	// ctx carries the device and queue used for uploads.
	ctx UploadContext

	// pool manages a bounded set of reusable goroutines for decode and upload
	// tasks. Workers persist across loads, avoiding per-load goroutine
	// spawn/teardown overhead.
	pool    worker.DynamicWorkerPool
	workers int

	// wg tracks in-flight loads so Wait can provide a barrier.
	wg sync.WaitGroup

	// nextTaskID numbers submitted pool tasks.
	nextTaskID int

	// upload performs the GPU texture/sampler creation. Held as a field so
	// tests can substitute a stub that does not touch a device.
	upload uploadFunc
}

// Registry stores GPU images keyed by Handle and loads new images
// asynchronously. Get never blocks: a handle whose upload is still in flight is
// simply absent, which is the signal consumers use to defer and retry.
type Registry interface {
	// Get looks up the uploaded image for a handle.
	//
	// Parameters:
	//   - h: the handle to look up
	//
	// Returns:
	//   - *GPUImage: the uploaded image, or nil
	//   - bool: true if the handle's image has finished uploading
	Get(h Handle) (*GPUImage, bool)

	// Insert stores an already-uploaded image under a handle, replacing and
	// releasing any previous image for that handle.
	//
	// Parameters:
	//   - h: the handle to store under
	//   - img: the uploaded image
	Insert(h Handle, img *GPUImage)

	// Remove removes and releases the image for a handle, if present.
	//
	// Parameters:
	//   - h: the handle to remove
	Remove(h Handle)

	// LoadAsync uploads RGBA staging data for a handle on a pool worker. Until
	// the upload completes, Get(h) reports the handle as absent. Failed uploads
	// are logged and the handle remains absent.
	//
	// Parameters:
	//   - h: the handle the image will be stored under
	//   - staging: RGBA pixel data and dimensions to upload
	//   - sampler: sampler configuration, or nil for linear/repeat defaults
	LoadAsync(h Handle, staging common.TextureStagingData, sampler *common.SamplerStagingData)

	// LoadImportedAsync decodes an imported texture (PNG/JPEG) and uploads it
	// for a handle on a pool worker. Decode failures are logged and the handle
	// remains absent.
	//
	// Parameters:
	//   - h: the handle the image will be stored under
	//   - tex: the imported texture to decode and upload
	LoadImportedAsync(h Handle, tex *common.ImportedTexture)

	// Wait blocks until all loads submitted so far have completed or failed.
	Wait()

	// Release waits for in-flight loads, then releases all stored images.
	Release()
}

var _ Registry = &registry{}

// NewRegistry creates a Registry that uploads through the given device and
// queue.
//
// Parameters:
//   - ctx: the device and queue used for texture and sampler creation
//   - options: a variadic list of options to configure the registry
//
// Returns:
//   - Registry: a new registry ready to accept loads
func NewRegistry(ctx UploadContext, options ...RegistryOption) Registry {
	r := &registry{
		images:  make(map[Handle]*GPUImage),
		ctx:     ctx,
		workers: max(runtime.NumCPU()-1, 1),
		upload:  uploadStagingData,
	}
	for _, opt := range options {
		opt(r)
	}

	// Queue size of 64 accommodates typical per-scene texture counts with headroom.
	r.pool = worker.NewDynamicWorkerPool(r.workers, 64, 1*time.Second)

	return r
}

func (r *registry) Get(h Handle) (*GPUImage, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	img, ok := r.images[h]
	return img, ok
}

func (r *registry) Insert(h Handle, img *GPUImage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.images[h]; ok && old != img {
		old.Release()
	}
	r.images[h] = img
}

func (r *registry) Remove(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if img, ok := r.images[h]; ok {
		img.Release()
		delete(r.images, h)
	}
}

func (r *registry) LoadAsync(h Handle, staging common.TextureStagingData, sampler *common.SamplerStagingData) {
	r.submit(h, func() (*GPUImage, error) {
		return r.upload(r.ctx, staging, sampler)
	})
}

func (r *registry) LoadImportedAsync(h Handle, tex *common.ImportedTexture) {
	r.submit(h, func() (*GPUImage, error) {
		pixels, width, height, err := tex.Decode()
		if err != nil {
			return nil, err
		}
		staging := common.TextureStagingData{
			Pixels: pixels,
			Width:  width,
			Height: height,
		}
		return r.upload(r.ctx, staging, tex.SamplerData)
	})
}

// submit enqueues a load task on the worker pool and tracks it for Wait.
func (r *registry) submit(h Handle, load func() (*GPUImage, error)) {
	r.mu.Lock()
	id := r.nextTaskID
	r.nextTaskID++
	r.mu.Unlock()

	r.wg.Add(1)
	r.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			defer r.wg.Done()

			img, err := load()
			if err != nil {
				log.Printf("render_assets: load for handle %d failed: %v", h, err)
				return nil, err
			}
			r.Insert(h, img)
			return nil, nil
		},
	})
}

func (r *registry) Wait() {
	r.wg.Wait()
}

func (r *registry) Release() {
	r.wg.Wait()

	r.mu.Lock()
	defer r.mu.Unlock()
	for h, img := range r.images {
		img.Release()
		delete(r.images, h)
	}
}
