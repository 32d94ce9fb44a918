// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package artifact

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/tiendc/go-deepcopy"

	"github.com/go-a2a/vertexops/internal/pool"
	"github.com/go-a2a/vertexops/types"
)

type memBlob struct {
	data    []byte
	updated time.Time
}

type memBucket struct {
	location string
	blobs    map[string]memBlob
}

// InMemoryStore represents an in-memory implementation of [types.BlobStore].
type InMemoryStore struct {
	mu         sync.Mutex
	buckets    map[string]*memBucket
	deleteErrs map[string]error
}

var _ types.BlobStore = (*InMemoryStore)(nil)

// NewInMemoryStore creates a new instance of [InMemoryStore].
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		buckets:    make(map[string]*memBucket),
		deleteErrs: make(map[string]error),
	}
}

// FailBucketDelete makes subsequent [InMemoryStore.DeleteBucket] calls for bucket return err.
// A nil err clears the failure.
func (s *InMemoryStore) FailBucketDelete(bucket string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err == nil {
		delete(s.deleteErrs, bucket)
		return
	}
	s.deleteErrs[bucket] = err
}

// Snapshot returns a copy of every blob in bucket keyed by blob key, or nil when the bucket is absent.
func (s *InMemoryStore) Snapshot(bucket string) map[string][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buckets[bucket]
	if !ok {
		return nil
	}
	src := make(map[string][]byte, len(b.blobs))
	for k, blob := range b.blobs {
		src[k] = blob.data
	}
	var out map[string][]byte
	if err := deepcopy.Copy(&out, src); err != nil {
		panic(fmt.Sprintf("artifact: copy snapshot: %v", err))
	}
	return out
}

// BucketExists implements [types.BlobStore].
func (s *InMemoryStore) BucketExists(ctx context.Context, bucket string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.buckets[bucket]
	return ok, nil
}

// CreateBucket implements [types.BlobStore].
func (s *InMemoryStore) CreateBucket(ctx context.Context, bucket, location string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.buckets[bucket]; ok {
		return &types.RemoteError{Op: "bucket.create", Err: fmt.Errorf("bucket %s already exists", bucket)}
	}
	s.buckets[bucket] = &memBucket{
		location: location,
		blobs:    make(map[string]memBlob),
	}
	return nil
}

// DeleteBucket implements [types.BlobStore].
func (s *InMemoryStore) DeleteBucket(ctx context.Context, bucket string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buckets[bucket]
	if !ok {
		return &types.NotFoundError{Kind: "bucket", Name: bucket}
	}
	if err, ok := s.deleteErrs[bucket]; ok {
		return &types.RemoteError{Op: "bucket.delete", Err: err}
	}
	if len(b.blobs) > 0 {
		return &types.RemoteError{Op: "bucket.delete", Err: fmt.Errorf("bucket %s is not empty", bucket)}
	}
	delete(s.buckets, bucket)
	return nil
}

// ListBlobs implements [types.BlobStore].
func (s *InMemoryStore) ListBlobs(ctx context.Context, bucket, prefix string) ([]types.BlobAttrs, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buckets[bucket]
	if !ok {
		return nil, &types.NotFoundError{Kind: "bucket", Name: bucket}
	}

	var blobs []types.BlobAttrs
	for _, key := range slices.Sorted(maps.Keys(b.blobs)) {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		blob := b.blobs[key]
		blobs = append(blobs, types.BlobAttrs{
			Bucket:  bucket,
			Key:     key,
			Size:    int64(len(blob.data)),
			Updated: blob.updated,
		})
	}
	return blobs, nil
}

// UploadBlob implements [types.BlobStore].
func (s *InMemoryStore) UploadBlob(ctx context.Context, bucket, key string, r io.Reader) error {
	buf := pool.Buffer.Get()
	defer func() {
		buf.Reset()
		pool.Buffer.Put(buf)
	}()
	if _, err := pool.Copy(buf, r); err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buckets[bucket]
	if !ok {
		return &types.NotFoundError{Kind: "bucket", Name: bucket}
	}
	b.blobs[key] = memBlob{
		data:    bytes.Clone(buf.Bytes()),
		updated: time.Now(),
	}
	return nil
}

// DownloadBlob implements [types.BlobStore].
func (s *InMemoryStore) DownloadBlob(ctx context.Context, bucket, key string, w io.Writer) (int64, error) {
	s.mu.Lock()
	b, ok := s.buckets[bucket]
	if !ok {
		s.mu.Unlock()
		return 0, &types.NotFoundError{Kind: "bucket", Name: bucket}
	}
	blob, ok := b.blobs[key]
	s.mu.Unlock()
	if !ok {
		return 0, &types.NotFoundError{Kind: "blob", Name: URL(bucket, key)}
	}

	n, err := w.Write(blob.data)
	return int64(n), err
}

// DeleteBlob implements [types.BlobStore].
func (s *InMemoryStore) DeleteBlob(ctx context.Context, bucket, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buckets[bucket]
	if !ok {
		return &types.NotFoundError{Kind: "bucket", Name: bucket}
	}
	if _, ok := b.blobs[key]; !ok {
		return &types.NotFoundError{Kind: "blob", Name: URL(bucket, key)}
	}
	delete(b.blobs, key)
	return nil
}

// Close implements [types.BlobStore].
func (s *InMemoryStore) Close() error {
	// nothing to do
	return nil
}
