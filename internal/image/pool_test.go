package image

import (
	"sync"
	"testing"
)

func TestNewPool(t *testing.T) {
	tests := []struct {
		name         string
		maxPerBucket int
		wantMaxSize  int
	}{
		{
			name:         "zero means unlimited",
			maxPerBucket: 0,
			wantMaxSize:  0,
		},
		{
			name:         "positive limit",
			maxPerBucket: 5,
			wantMaxSize:  5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewPool(tt.maxPerBucket)
			if pool == nil {
				t.Fatal("NewPool returned nil")
			}
			if pool.maxSize != tt.wantMaxSize {
				t.Errorf("maxSize = %d, want %d", pool.maxSize, tt.wantMaxSize)
			}
			if pool.buckets == nil {
				t.Error("buckets map is nil")
			}
		})
	}
}

func TestPool_GetPut_Basic(t *testing.T) {
	pool := NewPool(4)

	// Get a buffer from empty pool (should create new)
	buf1 := pool.Get(64)
	if len(buf1) != 64 {
		t.Fatalf("len = %d, want 64", len(buf1))
	}
	buf1[0] = 7

	pool.Put(buf1)
	if pool.Len(64) != 1 {
		t.Errorf("Len(64) = %d, want 1", pool.Len(64))
	}

	// Get it back - should be the same allocation
	buf2 := pool.Get(64)
	if &buf2[0] != &buf1[0] {
		t.Error("Get did not reuse the pooled buffer")
	}
	if pool.Len(64) != 0 {
		t.Errorf("Len(64) = %d after Get, want 0", pool.Len(64))
	}
}

func TestPool_GetPut_DifferentSizes(t *testing.T) {
	pool := NewPool(4)

	small := pool.Get(16)
	pool.Put(small)

	big := pool.Get(32)
	if len(big) != 32 {
		t.Fatalf("len = %d, want 32", len(big))
	}
	if &big[0] == &small[0] {
		t.Error("buffers of different lengths must not be shared")
	}
	if pool.Len(16) != 1 {
		t.Errorf("Len(16) = %d, want 1", pool.Len(16))
	}
}

func TestPool_MaxSize(t *testing.T) {
	pool := NewPool(2)

	for range 5 {
		pool.Put(make([]byte, 8))
	}
	if pool.Len(8) != 2 {
		t.Errorf("Len(8) = %d, want 2 (bucket capacity)", pool.Len(8))
	}
}

func TestPool_Put_Empty(t *testing.T) {
	pool := NewPool(4)

	// Should not panic
	pool.Put(nil)
	pool.Put([]byte{})

	if len(pool.buckets) != 0 {
		t.Errorf("empty buffers were pooled: %d buckets", len(pool.buckets))
	}
}

func TestPool_Concurrent(t *testing.T) {
	pool := NewPool(8)

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Go(func() {
			n := 4 * (1 + i%3)
			for range 100 {
				buf := pool.Get(n)
				if len(buf) != n {
					t.Errorf("len = %d, want %d", len(buf), n)
					return
				}
				buf[0] = byte(i)
				pool.Put(buf)
			}
		})
	}
	wg.Wait()
}

func TestDownsampleInto_ReusesPooledBuffer(t *testing.T) {
	pool := NewPool(1)
	src := noise(9, 7, 3)

	want, g, err := Downsample(src, 9, 7, 2)
	if err != nil {
		t.Fatalf("Downsample() = %v", err)
	}

	dirty := pool.Get(g.DstLen())
	for i := range dirty {
		dirty[i] = 0xEE
	}
	pool.Put(dirty)

	got, _, err := DownsampleInto(pool.Get(g.DstLen()), src, 9, 7, 2, nil)
	if err != nil {
		t.Fatalf("DownsampleInto() = %v", err)
	}
	if &got[0] != &dirty[0] {
		t.Error("DownsampleInto did not write into the provided buffer")
	}
	if string(got) != string(want) {
		t.Error("stale buffer contents leaked into the result")
	}
}

func BenchmarkPool_GetPut(b *testing.B) {
	pool := NewPool(8)
	b.ReportAllocs()
	for b.Loop() {
		buf := pool.Get(1 << 16)
		pool.Put(buf)
	}
}
