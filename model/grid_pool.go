package model

import (
	"sync"

	"github.com/bits-and-blooms/bitset"
)

// BufferPool recycles cell buffers between generations.
type BufferPool struct {
	pool sync.Pool
}

func NewBufferPool() *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() any {
				return &bitset.BitSet{}
			},
		},
	}
}

// Get retrieves an all-dead buffer holding size cells
func (p *BufferPool) Get(size uint) *bitset.BitSet {
	b := p.pool.Get().(*bitset.BitSet)
	if b.Len() != size {
		return bitset.New(size)
	}
	return b
}

// Put returns a buffer to the pool, clearing its cells
func (p *BufferPool) Put(b *bitset.BitSet) {
	if b == nil {
		return
	}
	b.ClearAll()
	p.pool.Put(b)
}
