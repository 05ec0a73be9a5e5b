// Package bufpool pools *bytes.Buffer instances on top of objpool. It
// calls Reset() on buffers as they are returned so users don't have to
// remember to manage that themselves. Like the underlying pool, it is
// safe for concurrent use.
package bufpool

import (
	"bytes"

	"github.com/hemal-shah/objpool"
)

// BufferPool is a pool of *bytes.Buffer instances.
type BufferPool struct {
	p *objpool.Pool[*bytes.Buffer]
}

// New returns an empty BufferPool.
func New() *BufferPool {
	p, err := objpool.New(
		func() (*bytes.Buffer, error) {
			return &bytes.Buffer{}, nil
		},
		objpool.WithReset(func(buf *bytes.Buffer) error {
			buf.Reset()
			return nil
		}),
	)
	if err != nil {
		// unreachable: the factory above is always non-nil
		panic(err)
	}
	return &BufferPool{p: p}
}

// Get returns an empty *bytes.Buffer, reusing a previously returned one
// when available.
func (p *BufferPool) Get() *bytes.Buffer {
	buf, _ := p.p.Take() // the factory and reset hook above never fail
	return buf
}

// Put returns buffers to the pool for reuse, resetting each one. Callers
// must not touch a buffer after putting it back.
func (p *BufferPool) Put(bufs ...*bytes.Buffer) {
	_ = p.p.Return(bufs...)
}

// Prime ensures the pool holds at least n idle buffers and returns the
// number created; see objpool.Pool.Prime.
func (p *BufferPool) Prime(n int) int {
	created, _ := p.p.Prime(n)
	return created
}
