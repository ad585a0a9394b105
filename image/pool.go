package image

import (
	"math/bits"
	"sync"
)

// Pool is a thread-safe pool for reusing staging buffers.
//
// Buffers are grouped by capacity class (the next power of two), so a row
// buffer released by one load can serve a later load of a similar width.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[int][][]byte
	maxSize int // max buffers per bucket
}

// NewPool creates a pool that keeps at most maxPerBucket buffers per capacity
// class. A maxPerBucket of 0 means unlimited (use with caution).
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[int][][]byte),
		maxSize: maxPerBucket,
	}
}

// sizeClass returns the bucket index for a buffer of n bytes.
func sizeClass(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

// Get returns a buffer of length size. Its contents are unspecified.
func (p *Pool) Get(size int) []byte {
	if size <= 0 {
		return nil
	}
	class := sizeClass(size)

	p.mu.Lock()
	bucket := p.buckets[class]
	if len(bucket) > 0 {
		buf := bucket[len(bucket)-1]
		p.buckets[class] = bucket[:len(bucket)-1]
		p.mu.Unlock()
		return buf[:size]
	}
	p.mu.Unlock()

	return make([]byte, size, 1<<class)
}

// Put returns buf to the pool. Buffers not obtained from Get are accepted if
// their capacity is an exact power of two; others are discarded.
func (p *Pool) Put(buf []byte) {
	c := cap(buf)
	if c == 0 || c&(c-1) != 0 {
		return
	}
	class := sizeClass(c)

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[class]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[class] = append(bucket, buf[:0])
}

// Len returns the number of buffers held across all buckets.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, b := range p.buckets {
		n += len(b)
	}
	return n
}

// defaultPool is the package-level pool used when no WithPool option is given.
var defaultPool = NewPool(8)
