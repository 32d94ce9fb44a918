// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package pool

import (
	"bytes"
	"strings"
	"testing"
)

func TestCopy(t *testing.T) {
	src := strings.Repeat("weights", CopyBufferSize/3)

	var dst bytes.Buffer
	n, err := Copy(&dst, strings.NewReader(src))
	if err != nil {
		t.Fatalf("Copy() error = %v", err)
	}
	if n != int64(len(src)) {
		t.Errorf("Copy() n = %d, want %d", n, len(src))
	}
	if dst.String() != src {
		t.Error("Copy() content mismatch")
	}
}

func TestPool(t *testing.T) {
	p := New(func() *[]int {
		s := make([]int, 0, 8)
		return &s
	})

	s := p.Get()
	if cap(*s) != 8 {
		t.Errorf("cap = %d, want 8", cap(*s))
	}
	p.Put(s)

	bp := CopyBuffer.Get()
	if len(*bp) != CopyBufferSize {
		t.Errorf("len(CopyBuffer) = %d, want %d", len(*bp), CopyBufferSize)
	}
	CopyBuffer.Put(bp)
}
