// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package artifact mirrors local model directories to and from object storage.
//
// A [Syncer] drives the transfer workflows on top of any [types.BlobStore]. Blob keys are
// slash-delimited paths relative to the parent of the uploaded directory, so uploading
// ./models/qwen2.5-3b-instruct produces keys such as qwen2.5-3b-instruct/config.json.
//
// # Supported Backends
//
//   - [GCSStore]: Google Cloud Storage via cloud.google.com/go/storage.
//   - [S3Store]: any S3-compatible service (AWS S3, MinIO) via minio-go.
//   - [InMemoryStore]: a process-local store for tests and dry runs.
//
// # Basic Usage
//
//	store, err := artifact.NewGCSStore(ctx, projectID, artifact.WithCredentialsFile(path))
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//
//	syncer := artifact.NewSyncer(store, artifact.WithConcurrency(8))
//	if _, err := syncer.CreateBucket(ctx, "my-bucket", "us-central1"); err != nil {
//		return err
//	}
//	if err := syncer.UploadTree(ctx, "./qwen2.5-3b-instruct", "my-bucket"); err != nil {
//		return err
//	}
//
// # Bucket Deletion
//
// [Syncer.DeleteBucketRecursive] deletes every blob first and the bucket second. If the
// second phase fails the bucket is left empty, and running the call again completes it.
package artifact
