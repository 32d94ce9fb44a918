// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package pool

import (
	"bytes"
	"io"
	"sync"
)

// CopyBufferSize is the size of the buffers handed out by [CopyBuffer].
const CopyBufferSize = 256 << 10

// Pool is a generics wrapper around [sync.Pool] to provide strongly-typed object pooling.
type Pool[T any] struct {
	pool sync.Pool
}

// New returns a new [Pool] for T, and will use fn to construct new T's when the pool is empty.
func New[T any](fn func() T) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return fn()
			},
		},
	}
}

// Get gets a T from the pool, or creates a new one if the pool is empty.
func (p *Pool[T]) Get() T {
	return p.pool.Get().(T)
}

// Put returns x into the pool.
func (p *Pool[T]) Put(x T) {
	p.pool.Put(x)
}

// Buffer provides the [*bytes.Buffer] pooling objects.
var Buffer = New(func() *bytes.Buffer {
	return &bytes.Buffer{}
})

// CopyBuffer provides fixed-size byte slices for streaming copies.
var CopyBuffer = New(func() *[]byte {
	b := make([]byte, CopyBufferSize)
	return &b
})

// Copy copies from src to dst like [io.CopyBuffer], using a buffer taken from [CopyBuffer].
func Copy(dst io.Writer, src io.Reader) (int64, error) {
	bp := CopyBuffer.Get()
	defer CopyBuffer.Put(bp)
	return io.CopyBuffer(dst, src, *bp)
}
