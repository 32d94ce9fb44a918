// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/go-a2a/vertexops/internal/pool"
	"github.com/go-a2a/vertexops/internal/vertexai"
	"github.com/go-a2a/vertexops/types"
)

// GCSStore represents a [types.BlobStore] implementation using Google Cloud Storage (GCS).
type GCSStore struct {
	client    *storage.Client
	projectID string
	logger    *slog.Logger
}

var _ types.BlobStore = (*GCSStore)(nil)

// GCSOption configures a [GCSStore].
type GCSOption func(*gcsOptions)

type gcsOptions struct {
	credentialsFile string
	logger          *slog.Logger
	clientOpts      []option.ClientOption
}

// WithCredentialsFile loads service account credentials from path instead of Application Default Credentials.
func WithCredentialsFile(path string) GCSOption {
	return func(o *gcsOptions) {
		o.credentialsFile = path
	}
}

// WithGCSLogger sets the logger of the store.
func WithGCSLogger(logger *slog.Logger) GCSOption {
	return func(o *gcsOptions) {
		o.logger = logger
	}
}

// WithGCSClientOptions appends raw client options, e.g. an emulator endpoint.
func WithGCSClientOptions(opts ...option.ClientOption) GCSOption {
	return func(o *gcsOptions) {
		o.clientOpts = append(o.clientOpts, opts...)
	}
}

// NewGCSStore creates a new [GCSStore] instance billing bucket creation to projectID.
func NewGCSStore(ctx context.Context, projectID string, opts ...GCSOption) (*GCSStore, error) {
	o := &gcsOptions{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}

	clientOpts := o.clientOpts
	if len(clientOpts) == 0 {
		creds, err := vertexai.DetectCredentials(o.credentialsFile, storage.ScopeFullControl, storage.ScopeReadWrite)
		if err != nil {
			return nil, fmt.Errorf("get credentials for storage: %w", err)
		}
		clientOpts = append(clientOpts, option.WithAuthCredentials(creds))
	}

	client, err := storage.NewGRPCClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &GCSStore{
		client:    client,
		projectID: projectID,
		logger:    o.logger,
	}, nil
}

// BucketExists implements [types.BlobStore].
func (s *GCSStore) BucketExists(ctx context.Context, bucket string) (bool, error) {
	if _, err := s.client.Bucket(bucket).Attrs(ctx); err != nil {
		if errors.Is(err, storage.ErrBucketNotExist) {
			return false, nil
		}
		return false, &types.RemoteError{Op: "storage.bucket.get", Err: err}
	}
	return true, nil
}

// CreateBucket implements [types.BlobStore].
func (s *GCSStore) CreateBucket(ctx context.Context, bucket, location string) error {
	attrs := &storage.BucketAttrs{
		Location: location,
	}
	if err := s.client.Bucket(bucket).Create(ctx, s.projectID, attrs); err != nil {
		return &types.RemoteError{Op: "storage.bucket.create", Err: err}
	}
	s.logger.DebugContext(ctx, "created gcs bucket", slog.String("bucket", bucket), slog.String("location", location))
	return nil
}

// DeleteBucket implements [types.BlobStore].
func (s *GCSStore) DeleteBucket(ctx context.Context, bucket string) error {
	if err := s.client.Bucket(bucket).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrBucketNotExist) {
			return &types.NotFoundError{Kind: "bucket", Name: bucket}
		}
		return &types.RemoteError{Op: "storage.bucket.delete", Err: err}
	}
	s.logger.DebugContext(ctx, "deleted gcs bucket", slog.String("bucket", bucket))
	return nil
}

// ListBlobs implements [types.BlobStore].
func (s *GCSStore) ListBlobs(ctx context.Context, bucket, prefix string) ([]types.BlobAttrs, error) {
	it := s.client.Bucket(bucket).Objects(ctx, &storage.Query{
		Prefix: prefix,
	})

	var blobs []types.BlobAttrs
	for {
		objAttrs, err := it.Next()
		if err != nil {
			if errors.Is(err, iterator.Done) {
				break
			}
			if errors.Is(err, storage.ErrBucketNotExist) {
				return nil, &types.NotFoundError{Kind: "bucket", Name: bucket}
			}
			return nil, &types.RemoteError{Op: "storage.objects.list", Err: err}
		}

		blobs = append(blobs, types.BlobAttrs{
			Bucket:      objAttrs.Bucket,
			Key:         objAttrs.Name,
			Size:        objAttrs.Size,
			ContentType: objAttrs.ContentType,
			Updated:     objAttrs.Updated,
		})
	}

	return blobs, nil
}

// UploadBlob implements [types.BlobStore].
func (s *GCSStore) UploadBlob(ctx context.Context, bucket, key string, r io.Reader) error {
	w := s.client.Bucket(bucket).Object(key).NewWriter(ctx)
	if _, err := pool.Copy(w, r); err != nil {
		w.Close()
		return &types.RemoteError{Op: "storage.object.write", Err: err}
	}
	if err := w.Close(); err != nil {
		if errors.Is(err, storage.ErrBucketNotExist) {
			return &types.NotFoundError{Kind: "bucket", Name: bucket}
		}
		return &types.RemoteError{Op: "storage.object.write", Err: err}
	}
	return nil
}

// DownloadBlob implements [types.BlobStore].
func (s *GCSStore) DownloadBlob(ctx context.Context, bucket, key string, w io.Writer) (int64, error) {
	r, err := s.client.Bucket(bucket).Object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return 0, &types.NotFoundError{Kind: "blob", Name: URL(bucket, key)}
		}
		return 0, &types.RemoteError{Op: "storage.object.read", Err: err}
	}
	defer r.Close()

	n, err := pool.Copy(w, r)
	if err != nil {
		return n, &types.RemoteError{Op: "storage.object.read", Err: err}
	}
	return n, nil
}

// DeleteBlob implements [types.BlobStore].
func (s *GCSStore) DeleteBlob(ctx context.Context, bucket, key string) error {
	if err := s.client.Bucket(bucket).Object(key).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return &types.NotFoundError{Kind: "blob", Name: URL(bucket, key)}
		}
		return &types.RemoteError{Op: "storage.object.delete", Err: err}
	}
	return nil
}

// Close implements [types.BlobStore].
func (s *GCSStore) Close() error {
	return s.client.Close()
}
