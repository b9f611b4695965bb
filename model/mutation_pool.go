package model

import "sync"

// initialMutationCap covers a busy generation without regrowing
const initialMutationCap = Size * 4

// MutationPool recycles mutation buffers between generations
type MutationPool struct {
	pool sync.Pool
}

func NewMutationPool() *MutationPool {
	return &MutationPool{
		pool: sync.Pool{
			New: func() interface{} {
				buf := make([]Mutation, 0, initialMutationCap)
				return &buf
			},
		},
	}
}

// Get retrieves an empty buffer from the pool
func (p *MutationPool) Get() *[]Mutation {
	return p.pool.Get().(*[]Mutation)
}

// Put returns a buffer to the pool, truncating it first
func (p *MutationPool) Put(buf *[]Mutation) {
	if buf == nil {
		return
	}
	*buf = (*buf)[:0]
	p.pool.Put(buf)
}
