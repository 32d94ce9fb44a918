// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package artifact

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/go-a2a/vertexops/pkg/logging"
	"github.com/go-a2a/vertexops/types"
)

// DefaultConcurrency is the number of parallel blob transfers used when none is configured.
const DefaultConcurrency = 4

// TransferStats summarizes a tree transfer.
type TransferStats struct {
	Files int   `json:"files"`
	Bytes int64 `json:"bytes"`
}

// DeleteResult reports the outcome of [Syncer.DeleteBucketRecursive].
type DeleteResult struct {
	// BucketFound is false when the bucket did not exist and nothing was done.
	BucketFound  bool `json:"bucket_found"`
	BlobsDeleted int  `json:"blobs_deleted"`
}

// Syncer mirrors local directory trees to and from a [types.BlobStore].
type Syncer struct {
	store       types.BlobStore
	logger      *slog.Logger
	concurrency int
}

// Option configures a [Syncer].
type Option func(*Syncer)

// WithLogger sets the logger of the [Syncer]. Without it the logger is taken from the context.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Syncer) {
		s.logger = logger
	}
}

// WithConcurrency bounds the number of parallel blob transfers. Values below 1 select 1.
func WithConcurrency(n int) Option {
	return func(s *Syncer) {
		s.concurrency = max(n, 1)
	}
}

// NewSyncer creates a new [Syncer] on top of store.
func NewSyncer(store types.BlobStore, opts ...Option) *Syncer {
	s := &Syncer{
		store:       store,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// URL returns the gs:// URI of key in bucket.
func URL(bucket, key string) string {
	return "gs://" + bucket + "/" + strings.TrimPrefix(key, "/")
}

func (s *Syncer) log(ctx context.Context) *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return logging.FromContext(ctx)
}

// CreateBucket creates bucket in location unless it already exists.
// It reports whether a bucket was created.
func (s *Syncer) CreateBucket(ctx context.Context, bucket, location string) (bool, error) {
	if err := types.RequireNonEmpty("bucket", bucket); err != nil {
		return false, err
	}

	exists, err := s.store.BucketExists(ctx, bucket)
	if err != nil {
		return false, fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if exists {
		s.log(ctx).InfoContext(ctx, "bucket already exists", slog.String("bucket", bucket))
		return false, nil
	}

	if err := s.store.CreateBucket(ctx, bucket, location); err != nil {
		return false, fmt.Errorf("create bucket %s: %w", bucket, err)
	}
	s.log(ctx).InfoContext(ctx, "created bucket", slog.String("bucket", bucket), slog.String("location", location))

	return true, nil
}

// requireBucket returns a [*types.NotFoundError] when bucket does not exist.
func (s *Syncer) requireBucket(ctx context.Context, bucket string) error {
	exists, err := s.store.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if !exists {
		return &types.NotFoundError{Kind: "bucket", Name: bucket}
	}
	return nil
}

// UploadTree uploads every regular file under localRoot to bucket.
//
// Keys are paths relative to the parent of localRoot, so the name of localRoot itself
// becomes the key prefix. Existing blobs are overwritten.
func (s *Syncer) UploadTree(ctx context.Context, localRoot, bucket string) (TransferStats, error) {
	var stats TransferStats

	root, err := filepath.Abs(localRoot)
	if err != nil {
		return stats, fmt.Errorf("resolve %s: %w", localRoot, err)
	}
	fi, err := os.Stat(root)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return stats, &types.NotFoundError{Kind: "directory", Name: localRoot}
	case err != nil:
		return stats, fmt.Errorf("stat %s: %w", localRoot, err)
	case !fi.IsDir():
		return stats, &types.InvalidArgumentError{Field: "local_root", Message: fmt.Sprintf("%s is not a directory", localRoot)}
	}
	if err := s.requireBucket(ctx, bucket); err != nil {
		return stats, err
	}

	parent := filepath.Dir(root)
	type job struct {
		file string
		key  string
	}
	var jobs []job
	if err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(parent, p)
		if err != nil {
			return err
		}
		jobs = append(jobs, job{file: p, key: filepath.ToSlash(rel)})
		return nil
	}); err != nil {
		return stats, fmt.Errorf("walk %s: %w", localRoot, err)
	}

	var (
		uploaded atomic.Int64
		written  atomic.Int64
	)
	eg, ectx := errgroup.WithContext(ctx)
	eg.SetLimit(s.concurrency)
	for _, j := range jobs {
		eg.Go(func() error {
			n, err := s.uploadFile(ectx, j.file, bucket, j.key)
			if err != nil {
				return err
			}
			uploaded.Add(1)
			written.Add(n)
			return nil
		})
	}
	err = eg.Wait()

	stats.Files = int(uploaded.Load())
	stats.Bytes = written.Load()
	if err != nil {
		return stats, err
	}
	s.log(ctx).InfoContext(ctx, "uploaded tree",
		slog.String("local_root", localRoot),
		slog.String("bucket", bucket),
		slog.Int("files", stats.Files),
		slog.Int64("bytes", stats.Bytes),
	)

	return stats, nil
}

func (s *Syncer) uploadFile(ctx context.Context, localPath, bucket, key string) (int64, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", localPath, err)
	}
	if err := s.store.UploadBlob(ctx, bucket, key, f); err != nil {
		return 0, fmt.Errorf("upload %s: %w", localPath, err)
	}
	s.log(ctx).InfoContext(ctx, "uploaded file",
		slog.String("file", localPath),
		slog.String("url", URL(bucket, key)),
	)

	return fi.Size(), nil
}

// localPath maps key under localRoot, rejecting keys that would escape it.
func localPath(localRoot, key string) (string, error) {
	rel := filepath.FromSlash(key)
	if path.IsAbs(key) || !filepath.IsLocal(rel) {
		return "", &types.InvalidArgumentError{
			Field:   "key",
			Message: fmt.Sprintf("%q escapes the destination directory", key),
		}
	}
	return filepath.Join(localRoot, rel), nil
}

// DownloadTree downloads every blob in bucket to localRoot/<key>, creating parent directories.
//
// Existing files are overwritten. Directory placeholder keys ending in "/" are skipped.
func (s *Syncer) DownloadTree(ctx context.Context, bucket, localRoot string) (TransferStats, error) {
	var stats TransferStats

	blobs, err := s.store.ListBlobs(ctx, bucket, "")
	if err != nil {
		return stats, fmt.Errorf("list bucket %s: %w", bucket, err)
	}

	type job struct {
		key  string
		dest string
	}
	jobs := make([]job, 0, len(blobs))
	for _, b := range blobs {
		if b.Key == "" || strings.HasSuffix(b.Key, "/") {
			continue
		}
		dest, err := localPath(localRoot, b.Key)
		if err != nil {
			return stats, err
		}
		jobs = append(jobs, job{key: b.Key, dest: dest})
	}

	var (
		downloaded atomic.Int64
		written    atomic.Int64
	)
	eg, ectx := errgroup.WithContext(ctx)
	eg.SetLimit(s.concurrency)
	for _, j := range jobs {
		eg.Go(func() error {
			n, err := s.downloadFile(ectx, bucket, j.key, j.dest)
			if err != nil {
				return err
			}
			downloaded.Add(1)
			written.Add(n)
			return nil
		})
	}
	err = eg.Wait()

	stats.Files = int(downloaded.Load())
	stats.Bytes = written.Load()
	if err != nil {
		return stats, err
	}
	s.log(ctx).InfoContext(ctx, "downloaded tree",
		slog.String("bucket", bucket),
		slog.String("local_root", localRoot),
		slog.Int("files", stats.Files),
		slog.Int64("bytes", stats.Bytes),
	)

	return stats, nil
}

// downloadFile writes the blob to a temporary file next to dest and renames it over dest
// once the download completes, so a failed download leaves dest untouched.
func (s *Syncer) downloadFile(ctx context.Context, bucket, key, dest string) (int64, error) {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create directory for %s: %w", dest, err)
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".*.part")
	if err != nil {
		return 0, fmt.Errorf("create temporary file for %s: %w", dest, err)
	}
	tmp := f.Name()

	n, err := s.store.DownloadBlob(ctx, bucket, key, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp, dest)
	}
	if err != nil {
		os.Remove(tmp)
		return n, fmt.Errorf("download %s: %w", URL(bucket, key), err)
	}
	s.log(ctx).InfoContext(ctx, "downloaded file",
		slog.String("url", URL(bucket, key)),
		slog.String("file", dest),
	)

	return n, nil
}

// DeleteBucketRecursive deletes every blob in bucket and then the bucket itself.
//
// A missing bucket is not an error. The bucket is deleted only after every blob deletion
// succeeded; when that final step fails the bucket is left empty and the call can be repeated.
func (s *Syncer) DeleteBucketRecursive(ctx context.Context, bucket string) (DeleteResult, error) {
	var result DeleteResult

	exists, err := s.store.BucketExists(ctx, bucket)
	if err != nil {
		return result, fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if !exists {
		s.log(ctx).InfoContext(ctx, "bucket does not exist", slog.String("bucket", bucket))
		return result, nil
	}
	result.BucketFound = true

	blobs, err := s.store.ListBlobs(ctx, bucket, "")
	if err != nil {
		return result, fmt.Errorf("list bucket %s: %w", bucket, err)
	}

	var deleted atomic.Int64
	eg, ectx := errgroup.WithContext(ctx)
	eg.SetLimit(s.concurrency)
	for _, b := range blobs {
		eg.Go(func() error {
			if err := s.store.DeleteBlob(ectx, bucket, b.Key); err != nil && !types.IsNotFound(err) {
				return fmt.Errorf("delete %s: %w", URL(bucket, b.Key), err)
			}
			deleted.Add(1)
			return nil
		})
	}
	err = eg.Wait()
	result.BlobsDeleted = int(deleted.Load())
	if err != nil {
		return result, err
	}
	s.log(ctx).InfoContext(ctx, "deleted blobs", slog.String("bucket", bucket), slog.Int("count", result.BlobsDeleted))

	if err := s.store.DeleteBucket(ctx, bucket); err != nil {
		return result, fmt.Errorf("delete bucket %s after removing %d blobs: %w", bucket, result.BlobsDeleted, err)
	}
	s.log(ctx).InfoContext(ctx, "deleted bucket", slog.String("bucket", bucket))

	return result, nil
}

// ListBlobs lists the blobs in bucket whose key starts with prefix.
func (s *Syncer) ListBlobs(ctx context.Context, bucket, prefix string) ([]types.BlobAttrs, error) {
	blobs, err := s.store.ListBlobs(ctx, bucket, prefix)
	if err != nil {
		return nil, fmt.Errorf("list bucket %s: %w", bucket, err)
	}
	return blobs, nil
}

// UploadFile uploads a single file. An empty key selects the file's base name.
// It returns the key written.
func (s *Syncer) UploadFile(ctx context.Context, localFile, bucket, key string) (string, error) {
	if key == "" {
		key = filepath.Base(localFile)
	}
	if err := s.requireBucket(ctx, bucket); err != nil {
		return "", err
	}
	if _, err := s.uploadFile(ctx, localFile, bucket, key); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &types.NotFoundError{Kind: "file", Name: localFile}
		}
		return "", err
	}
	return key, nil
}

// DownloadFile downloads a single blob. An empty localFile selects the key's last segment
// in the working directory. It returns the path written.
func (s *Syncer) DownloadFile(ctx context.Context, bucket, key, localFile string) (string, error) {
	if err := types.RequireNonEmpty("key", key); err != nil {
		return "", err
	}
	if localFile == "" {
		localFile = path.Base(key)
	}
	if _, err := s.downloadFile(ctx, bucket, key, localFile); err != nil {
		return "", err
	}
	return localFile, nil
}
