package gpu

import (
	"github.com/gogpu/pixconv"
	"github.com/gogpu/pixconv/image"
	"github.com/gogpu/pixconv/internal/cache"
)

// UploadCache keeps prepared uploads keyed by image. Images are immutable
// once loaded, so an entry stays valid until the caller drops the image and
// calls Invalidate, or until it is evicted for capacity.
//
// Thread safety: All methods are safe for concurrent use.
type UploadCache struct {
	c *cache.Cache[*image.Image, *Upload]
}

// CacheStats contains upload cache statistics.
type CacheStats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// NewUploadCache creates a cache holding at most capacity uploads.
// A capacity of 0 or less means unlimited.
func NewUploadCache(capacity int) *UploadCache {
	c := cache.New[*image.Image, *Upload](capacity)
	c.OnEvict(func(img *image.Image, up *Upload) {
		pixconv.Logger().Debug("gpu: upload evicted", "format", up.PixelFormat, "bytes", len(up.Data))
	})
	return &UploadCache{c: c}
}

// Get returns the upload for img, preparing it on first use.
func (u *UploadCache) Get(img *image.Image) (*Upload, error) {
	return u.c.GetOrCreate(img, func() (*Upload, error) {
		return Prepare(img)
	})
}

// Invalidate drops the upload for img. Returns true if one was cached.
func (u *UploadCache) Invalidate(img *image.Image) bool {
	return u.c.Delete(img)
}

// Purge drops every cached upload.
func (u *UploadCache) Purge() {
	u.c.Purge()
}

// Len returns the number of cached uploads.
func (u *UploadCache) Len() int {
	return u.c.Len()
}

// Stats returns a snapshot of cache statistics.
func (u *UploadCache) Stats() CacheStats {
	s := u.c.Stats()
	return CacheStats{
		Len:       s.Len,
		Capacity:  s.Capacity,
		Hits:      s.Hits,
		Misses:    s.Misses,
		Evictions: s.Evictions,
	}
}
