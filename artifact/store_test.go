// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package artifact

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/go-a2a/vertexops/types"
)

func TestInMemoryStore(t *testing.T) {
	ctx := t.Context()
	store := NewInMemoryStore()

	if err := store.CreateBucket(ctx, "b", "us-central1"); err != nil {
		t.Fatalf("CreateBucket() error = %v", err)
	}
	if err := store.CreateBucket(ctx, "b", "us-central1"); err == nil {
		t.Error("CreateBucket() on existing bucket succeeded, want error")
	}

	for key, content := range map[string]string{"m/a": "aa", "m/b": "b", "other": "ooo"} {
		if err := store.UploadBlob(ctx, "b", key, strings.NewReader(content)); err != nil {
			t.Fatalf("UploadBlob(%q) error = %v", key, err)
		}
	}

	blobs, err := store.ListBlobs(ctx, "b", "m/")
	if err != nil {
		t.Fatalf("ListBlobs() error = %v", err)
	}
	want := []types.BlobAttrs{
		{Bucket: "b", Key: "m/a", Size: 2},
		{Bucket: "b", Key: "m/b", Size: 1},
	}
	if diff := cmp.Diff(want, blobs, cmpopts.IgnoreFields(types.BlobAttrs{}, "Updated")); diff != "" {
		t.Errorf("ListBlobs() mismatch (-want +got):\n%s", diff)
	}

	var buf bytes.Buffer
	n, err := store.DownloadBlob(ctx, "b", "other", &buf)
	if err != nil {
		t.Fatalf("DownloadBlob() error = %v", err)
	}
	if n != 3 || buf.String() != "ooo" {
		t.Errorf("DownloadBlob() = %d %q, want 3 %q", n, buf.String(), "ooo")
	}

	if err := store.DeleteBucket(ctx, "b"); err == nil {
		t.Error("DeleteBucket() on non-empty bucket succeeded, want error")
	}

	if err := store.DeleteBlob(ctx, "b", "absent"); !types.IsNotFound(err) {
		t.Errorf("DeleteBlob() on absent key error = %v, want NotFoundError", err)
	}
	if _, err := store.ListBlobs(ctx, "nope", ""); !types.IsNotFound(err) {
		t.Errorf("ListBlobs() on absent bucket error = %v, want NotFoundError", err)
	}
	if err := store.UploadBlob(ctx, "nope", "k", strings.NewReader("")); !types.IsNotFound(err) {
		t.Errorf("UploadBlob() on absent bucket error = %v, want NotFoundError", err)
	}
}

func TestInMemoryStoreSnapshotIsCopy(t *testing.T) {
	ctx := t.Context()
	store := NewInMemoryStore()
	if err := store.CreateBucket(ctx, "b", ""); err != nil {
		t.Fatal(err)
	}
	if err := store.UploadBlob(ctx, "b", "k", strings.NewReader("abc")); err != nil {
		t.Fatal(err)
	}

	snap := store.Snapshot("b")
	snap["k"][0] = 'z'

	var buf bytes.Buffer
	if _, err := store.DownloadBlob(ctx, "b", "k", &buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "abc" {
		t.Errorf("stored blob = %q after mutating snapshot, want %q", buf.String(), "abc")
	}
	if store.Snapshot("absent") != nil {
		t.Error("Snapshot() of absent bucket != nil")
	}
}

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		endpoint   string
		useSSL     bool
		wantHost   string
		wantSecure bool
	}{
		{name: "bare host keeps flag", endpoint: "minio.local:9000", useSSL: false, wantHost: "minio.local:9000", wantSecure: false},
		{name: "https scheme wins", endpoint: "https://s3.amazonaws.com", useSSL: false, wantHost: "s3.amazonaws.com", wantSecure: true},
		{name: "http scheme wins", endpoint: "http://127.0.0.1:9000", useSSL: true, wantHost: "127.0.0.1:9000", wantSecure: false},
		{name: "empty", endpoint: "  ", useSSL: true, wantHost: "", wantSecure: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, secure := normalizeEndpoint(tt.endpoint, tt.useSSL)
			if host != tt.wantHost || secure != tt.wantSecure {
				t.Errorf("normalizeEndpoint(%q, %v) = (%q, %v), want (%q, %v)",
					tt.endpoint, tt.useSSL, host, secure, tt.wantHost, tt.wantSecure)
			}
		})
	}
}

func TestNewS3StoreRequiresEndpoint(t *testing.T) {
	_, err := NewS3Store(S3Config{}, nil)
	var cfgErr *types.ConfigurationError
	if !errors.As(err, &cfgErr) || cfgErr.Key != "S3_ENDPOINT" {
		t.Errorf("NewS3Store() error = %v, want ConfigurationError for S3_ENDPOINT", err)
	}

	store, err := NewS3Store(S3Config{Endpoint: "http://127.0.0.1:9000", AccessKey: "a", SecretKey: "s"}, nil)
	if err != nil {
		t.Fatalf("NewS3Store() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestS3StoreListBlobsError(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>
<Error><Code>NoSuchBucket</Code><Message>The specified bucket does not exist</Message><BucketName>models</BucketName></Error>`)
	}))
	defer srv.Close()

	store, err := NewS3Store(S3Config{Endpoint: srv.URL, AccessKey: "a", SecretKey: "s", Region: "us-east-1"}, nil)
	if err != nil {
		t.Fatalf("NewS3Store() error = %v", err)
	}
	defer store.Close()

	blobs, err := store.ListBlobs(t.Context(), "models", "")
	var nf *types.NotFoundError
	if !errors.As(err, &nf) || nf.Kind != "bucket" {
		t.Fatalf("ListBlobs() error = %v, want bucket NotFoundError", err)
	}
	if blobs != nil {
		t.Errorf("ListBlobs() = %v, want nil", blobs)
	}
	if requests.Load() == 0 {
		t.Error("ListBlobs() sent no request")
	}
}

func TestReaderSize(t *testing.T) {
	p := filepath.Join(t.TempDir(), "f")
	if err := os.WriteFile(p, []byte("12345"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(p)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if got := readerSize(f); got != 5 {
		t.Errorf("readerSize(file) = %d, want 5", got)
	}
	if got := readerSize(strings.NewReader("abc")); got != 3 {
		t.Errorf("readerSize(strings.Reader) = %d, want 3", got)
	}
	if got := readerSize(io.MultiReader(strings.NewReader("abc"))); got != -1 {
		t.Errorf("readerSize(io.MultiReader) = %d, want -1", got)
	}
}

func TestGCSStore(t *testing.T) {
	if os.Getenv("BUCKET_NAME") == "" || os.Getenv("PROJECT_ID") == "" {
		t.Skip("requires Google Cloud credentials")
	}
	ctx := t.Context()

	store, err := NewGCSStore(ctx, os.Getenv("PROJECT_ID"))
	if err != nil {
		t.Fatalf("NewGCSStore() error = %v", err)
	}
	defer store.Close()

	exists, err := store.BucketExists(ctx, os.Getenv("BUCKET_NAME"))
	if err != nil {
		t.Fatalf("BucketExists() error = %v", err)
	}
	t.Logf("bucket exists: %v", exists)
}
