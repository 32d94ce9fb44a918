// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package pool provides strongly-typed object pooling on top of [sync.Pool].
//
// The blob transfer paths copy file content through fixed-size byte buffers. Those
// buffers are pooled so that many parallel transfers do not allocate a fresh buffer
// per file:
//
//	n, err := pool.Copy(dst, src)
//
// In-memory stores build blob content in pooled [*bytes.Buffer] values:
//
//	buf := pool.Buffer.Get()
//	defer func() {
//		buf.Reset()
//		pool.Buffer.Put(buf)
//	}()
//
// Custom pools are created with [New]:
//
//	p := pool.New(func() *MyStruct { return &MyStruct{} })
//	obj := p.Get()
//	defer p.Put(obj)
package pool
