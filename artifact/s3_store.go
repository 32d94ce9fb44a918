// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package artifact

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/go-a2a/vertexops/internal/pool"
	"github.com/go-a2a/vertexops/types"
)

// s3PartSize bounds the memory used when the upload size is unknown.
const s3PartSize = 16 << 20

// S3Config configures an [S3Store].
type S3Config struct {
	// Endpoint is host[:port] or a URL. A URL scheme overrides UseSSL.
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	UseSSL    bool
}

// S3Store represents a [types.BlobStore] implementation for S3-compatible object storage.
type S3Store struct {
	mc     *minio.Client
	region string
	logger *slog.Logger
}

var _ types.BlobStore = (*S3Store)(nil)

// NewS3Store creates a new [S3Store] from cfg.
func NewS3Store(cfg S3Config, logger *slog.Logger) (*S3Store, error) {
	endpoint, secure := normalizeEndpoint(cfg.Endpoint, cfg.UseSSL)
	if endpoint == "" {
		return nil, &types.ConfigurationError{Key: "S3_ENDPOINT"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	mc, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}

	return &S3Store{
		mc:     mc,
		region: cfg.Region,
		logger: logger,
	}, nil
}

// normalizeEndpoint strips a URL scheme from endpoint, letting the scheme decide TLS.
func normalizeEndpoint(endpoint string, useSSL bool) (host string, secure bool) {
	secure = useSSL
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return "", secure
	}
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		if u, err := url.Parse(endpoint); err == nil {
			switch u.Scheme {
			case "https":
				secure = true
			case "http":
				secure = false
			}
			return u.Host, secure
		}
	}
	return endpoint, secure
}

// s3Error maps a minio error response onto the error taxonomy.
func s3Error(op, bucket, key string, err error) error {
	resp := minio.ToErrorResponse(err)
	switch {
	case resp.Code == "NoSuchBucket":
		return &types.NotFoundError{Kind: "bucket", Name: bucket}
	case resp.Code == "NoSuchKey", resp.StatusCode == http.StatusNotFound && key != "":
		return &types.NotFoundError{Kind: "blob", Name: "s3://" + bucket + "/" + key}
	}
	return &types.RemoteError{Op: op, Err: err}
}

// BucketExists implements [types.BlobStore].
func (s *S3Store) BucketExists(ctx context.Context, bucket string) (bool, error) {
	ok, err := s.mc.BucketExists(ctx, bucket)
	if err != nil {
		return false, &types.RemoteError{Op: "s3.bucket.exists", Err: err}
	}
	return ok, nil
}

// CreateBucket implements [types.BlobStore].
//
// The configured region is used when location is empty.
func (s *S3Store) CreateBucket(ctx context.Context, bucket, location string) error {
	if location == "" {
		location = s.region
	}
	if err := s.mc.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: location}); err != nil {
		return &types.RemoteError{Op: "s3.bucket.create", Err: err}
	}
	s.logger.DebugContext(ctx, "created s3 bucket", slog.String("bucket", bucket), slog.String("region", location))
	return nil
}

// DeleteBucket implements [types.BlobStore].
func (s *S3Store) DeleteBucket(ctx context.Context, bucket string) error {
	if err := s.mc.RemoveBucket(ctx, bucket); err != nil {
		return s3Error("s3.bucket.delete", bucket, "", err)
	}
	s.logger.DebugContext(ctx, "deleted s3 bucket", slog.String("bucket", bucket))
	return nil
}

// ListBlobs implements [types.BlobStore].
func (s *S3Store) ListBlobs(ctx context.Context, bucket, prefix string) ([]types.BlobAttrs, error) {
	// stops the lister goroutine when returning early on an error
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var blobs []types.BlobAttrs
	for obj := range s.mc.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, s3Error("s3.objects.list", bucket, "", obj.Err)
		}
		blobs = append(blobs, types.BlobAttrs{
			Bucket:      bucket,
			Key:         obj.Key,
			Size:        obj.Size,
			ContentType: obj.ContentType,
			Updated:     obj.LastModified,
		})
	}
	return blobs, nil
}

// readerSize returns the number of bytes r will yield, or -1 when unknown.
func readerSize(r io.Reader) int64 {
	switch v := r.(type) {
	case interface{ Stat() (fs.FileInfo, error) }:
		if fi, err := v.Stat(); err == nil && fi.Mode().IsRegular() {
			return fi.Size()
		}
	case interface{ Len() int }:
		return int64(v.Len())
	}
	return -1
}

// UploadBlob implements [types.BlobStore].
func (s *S3Store) UploadBlob(ctx context.Context, bucket, key string, r io.Reader) error {
	opts := minio.PutObjectOptions{
		PartSize: s3PartSize,
	}
	if _, err := s.mc.PutObject(ctx, bucket, key, r, readerSize(r), opts); err != nil {
		return s3Error("s3.object.put", bucket, key, err)
	}
	return nil
}

// DownloadBlob implements [types.BlobStore].
func (s *S3Store) DownloadBlob(ctx context.Context, bucket, key string, w io.Writer) (int64, error) {
	obj, err := s.mc.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return 0, s3Error("s3.object.get", bucket, key, err)
	}
	defer obj.Close()

	n, err := pool.Copy(w, obj)
	if err != nil {
		return n, s3Error("s3.object.get", bucket, key, err)
	}
	return n, nil
}

// DeleteBlob implements [types.BlobStore].
func (s *S3Store) DeleteBlob(ctx context.Context, bucket, key string) error {
	if err := s.mc.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return s3Error("s3.object.remove", bucket, key, err)
	}
	return nil
}

// Close implements [types.BlobStore].
func (s *S3Store) Close() error {
	// minio clients hold no resources beyond the shared HTTP transport.
	return nil
}
