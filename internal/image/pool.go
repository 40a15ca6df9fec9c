package image

import "sync"

// Pool is a thread-safe pool for reusing destination buffers.
//
// Pool groups buffers by length, so repeated renders of same-sized images
// reuse the same allocation. This reduces GC pressure for viewers that
// re-render pages of a document.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[int][][]byte
	maxSize int // max buffers per bucket
}

// NewPool creates a new buffer pool with the given maximum buffers per bucket.
// maxPerBucket limits how many buffers of each length are retained.
// A maxPerBucket of 0 means unlimited (use with caution).
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[int][][]byte),
		maxSize: maxPerBucket,
	}
}

// Get returns a buffer of length n, reused from the pool when possible.
// The contents of a reused buffer are unspecified; DownsampleInto
// overwrites every byte.
func (p *Pool) Get(n int) []byte {
	p.mu.Lock()
	bucket := p.buckets[n]
	if len(bucket) > 0 {
		// Pop from pool
		buf := bucket[len(bucket)-1]
		bucket[len(bucket)-1] = nil
		p.buckets[n] = bucket[:len(bucket)-1]
		p.mu.Unlock()
		return buf
	}
	p.mu.Unlock()

	return make([]byte, n)
}

// Put returns a buffer to the pool for reuse. The caller must not use buf
// afterwards. Empty buffers and buffers beyond the bucket capacity are
// discarded.
func (p *Pool) Put(buf []byte) {
	if len(buf) == 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[len(buf)]

	// Check if bucket is at capacity
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		// Bucket full, discard buffer (GC will clean up)
		return
	}

	p.buckets[len(buf)] = append(bucket, buf)
}

// Len returns the number of buffers held for length n.
func (p *Pool) Len(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buckets[n])
}
