// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"
	"io"
	"time"
)

// BlobAttrs describes a single blob in a bucket.
type BlobAttrs struct {
	Bucket      string    `json:"bucket"`
	Key         string    `json:"key"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type,omitempty"`
	Updated     time.Time `json:"updated,omitzero"`
}

// BlobStore represents an object storage backend holding buckets of blobs addressed by slash-delimited keys.
type BlobStore interface {
	// BucketExists reports whether the named bucket exists.
	BucketExists(ctx context.Context, bucket string) (bool, error)

	// CreateBucket creates the named bucket in location.
	//
	// Creating a bucket that already exists is an error at this level; idempotency is
	// provided by the sync workflow, which checks existence first.
	CreateBucket(ctx context.Context, bucket, location string) error

	// DeleteBucket deletes an empty bucket.
	DeleteBucket(ctx context.Context, bucket string) error

	// ListBlobs lists every blob in bucket whose key starts with prefix.
	ListBlobs(ctx context.Context, bucket, prefix string) ([]BlobAttrs, error)

	// UploadBlob writes r to bucket/key, overwriting any existing blob.
	UploadBlob(ctx context.Context, bucket, key string, r io.Reader) error

	// DownloadBlob copies the content of bucket/key to w and returns the number of bytes written.
	DownloadBlob(ctx context.Context, bucket, key string, w io.Writer) (int64, error)

	// DeleteBlob deletes bucket/key.
	DeleteBlob(ctx context.Context, bucket, key string) error

	// Close releases the underlying client.
	Close() error
}
