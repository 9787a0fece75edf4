package array

import (
	"sync"
	"sync/atomic"
)

// buffer is a reference-counted block of element storage. Views share
// one buffer; the count tracks how many descriptors still reach it so
// the block can be recycled through the pool once the last one releases.
type buffer struct {
	data     []byte
	refCount atomic.Int32
}

func newBuffer(size int) *buffer {
	b := &buffer{data: globalPool.acquire(size)}
	b.refCount.Store(1)
	return b
}

// newBufferZeroed returns a buffer guaranteed to be all zero bytes.
// Recycled blocks come back dirty, so this clears explicitly.
func newBufferZeroed(size int) *buffer {
	b := newBuffer(size)
	clear(b.data)
	return b
}

func (b *buffer) addRef() {
	b.refCount.Add(1)
}

func (b *buffer) release() {
	if b.refCount.Add(-1) == 0 {
		globalPool.put(b.data)
		b.data = nil
	}
}

// isUnique reports whether exactly one descriptor holds the buffer,
// which makes in-place reuse safe.
func (b *buffer) isUnique() bool {
	return b.refCount.Load() == 1
}

// Size classes for the allocation pool. Blocks above the large bound
// are never pooled; they go straight back to the garbage collector.
const (
	smallBlock   = 4 * 1024
	mediumBlock  = 1024 * 1024
	largeBlock   = 64 * 1024 * 1024
	maxPerClass  = 64
	minPoolBlock = 64
)

// bufferPool recycles released storage blocks in three size classes so
// short-lived temporaries avoid repeated allocation. Recycled blocks are
// returned dirty; factories that promise zeroed contents clear them.
type bufferPool struct {
	mu      sync.Mutex
	classes [3][][]byte
	hits    uint64
	misses  uint64
}

var globalPool = &bufferPool{}

func poolClass(size int) int {
	switch {
	case size <= smallBlock:
		return 0
	case size <= mediumBlock:
		return 1
	default:
		return 2
	}
}

// acquire returns a block with at least size bytes of capacity, resliced
// to exactly size. Falls back to a fresh allocation on a pool miss.
func (p *bufferPool) acquire(size int) []byte {
	if size == 0 {
		return nil
	}
	if size >= minPoolBlock && size <= largeBlock {
		c := poolClass(size)
		p.mu.Lock()
		list := p.classes[c]
		for i := len(list) - 1; i >= 0; i-- {
			if cap(list[i]) >= size {
				block := list[i]
				list[i] = list[len(list)-1]
				p.classes[c] = list[:len(list)-1]
				p.hits++
				p.mu.Unlock()
				return block[:size]
			}
		}
		p.misses++
		p.mu.Unlock()
	}
	return make([]byte, size)
}

func (p *bufferPool) put(block []byte) {
	if cap(block) < minPoolBlock || cap(block) > largeBlock {
		return
	}
	c := poolClass(cap(block))
	p.mu.Lock()
	if len(p.classes[c]) < maxPerClass {
		p.classes[c] = append(p.classes[c], block[:cap(block)])
	}
	p.mu.Unlock()
}

func (p *bufferPool) stats() (hits, misses uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hits, p.misses
}

// PoolStats reports allocation pool hits and misses since process start.
func PoolStats() (hits, misses uint64) {
	return globalPool.stats()
}
