// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/go-a2a/vertexops/types"
)

// clearEnv blanks every key so the host environment does not leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		KeyCredentials, KeyProjectID, KeyLocation, KeyBucketName, KeyModelDir, KeyDownloadDir,
		KeyEndpointDisplayName, KeyModelDisplayName, KeyModelID, KeyServingImage, KeyMachineType,
		KeyAcceleratorType, KeyAcceleratorCount, KeyMinReplicaCount, KeyMaxReplicaCount,
		KeyTransferConcurrency, KeyLogLevel, KeyLogFormat, KeyStoreBackend, KeyS3Endpoint,
		KeyS3AccessKey, KeyS3SecretKey, KeyS3Region, KeyS3UseSSL,
	} {
		t.Setenv(k, "")
	}
}

func writeEnvFile(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := &Config{
		Location:            "us-central1",
		ModelDir:            "qwen2.5-3b-instruct",
		DownloadDir:         "downloaded_model",
		EndpointDisplayName: "llama-3-1-8b-instruct-mg-one-click-deploy",
		ModelDisplayName:    "llama-3-1-8b-instruct",
		MachineType:         "g2-standard-12",
		AcceleratorType:     "NVIDIA_L4",
		AcceleratorCount:    1,
		MinReplicaCount:     1,
		MaxReplicaCount:     1,
		TransferConcurrency: 4,
		LogLevel:            "info",
		LogFormat:           "json",
		StoreBackend:        BackendGCS,
		S3UseSSL:            true,
	}
	if diff := cmp.Diff(want, cfg, cmpopts.IgnoreUnexported(Config{})); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	path := writeEnvFile(t,
		"PROJECT_ID=file-project",
		"BUCKET_NAME=file-bucket",
		"MAX_REPLICA_COUNT=3",
		"TRANSFER_CONCURRENCY=8",
		"S3_USE_SSL=false",
	)
	t.Setenv(KeyProjectID, "env-project")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ProjectID != "env-project" {
		t.Errorf("ProjectID = %q, want environment to win", cfg.ProjectID)
	}
	if cfg.BucketName != "file-bucket" {
		t.Errorf("BucketName = %q, want %q", cfg.BucketName, "file-bucket")
	}
	if cfg.MaxReplicaCount != 3 {
		t.Errorf("MaxReplicaCount = %d, want 3", cfg.MaxReplicaCount)
	}
	if cfg.TransferConcurrency != 8 {
		t.Errorf("TransferConcurrency = %d, want 8", cfg.TransferConcurrency)
	}
	if cfg.S3UseSSL {
		t.Error("S3UseSSL = true, want false")
	}
	if got := cfg.Get(KeyBucketName); got != "file-bucket" {
		t.Errorf("Get(%s) = %q", KeyBucketName, got)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err == nil {
		t.Fatal("Load() with missing explicit file succeeded, want error")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantKey string
	}{
		{
			name:    "unknown backend",
			env:     map[string]string{KeyStoreBackend: "ftp"},
			wantKey: KeyStoreBackend,
		},
		{
			name:    "zero concurrency",
			env:     map[string]string{KeyTransferConcurrency: "0"},
			wantKey: KeyTransferConcurrency,
		},
		{
			name:    "max below min",
			env:     map[string]string{KeyMinReplicaCount: "2", KeyMaxReplicaCount: "1"},
			wantKey: KeyMaxReplicaCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Chdir(t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load("")
			var cfgErr *types.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Load() error = %v, want *types.ConfigurationError", err)
			}
			if cfgErr.Key != tt.wantKey {
				t.Errorf("ConfigurationError.Key = %q, want %q", cfgErr.Key, tt.wantKey)
			}
		})
	}
}

func TestRequire(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv(KeyProjectID, "p1")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if err := cfg.Require(KeyProjectID, KeyLocation); err != nil {
		t.Errorf("Require() error = %v, want nil", err)
	}

	err = cfg.Require(KeyProjectID, KeyBucketName, KeyModelID)
	if err == nil {
		t.Fatal("Require() = nil, want error")
	}
	var cfgErr *types.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Require() error = %T, want *types.ConfigurationError", err)
	}
	for _, k := range []string{KeyBucketName, KeyModelID} {
		if !strings.Contains(err.Error(), k) {
			t.Errorf("Require() error = %q, want mention of %s", err.Error(), k)
		}
	}
	if strings.Contains(err.Error(), KeyProjectID) {
		t.Errorf("Require() error = %q, should not mention %s", err.Error(), KeyProjectID)
	}
}
