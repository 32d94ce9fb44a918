// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads vertexops settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/go-a2a/vertexops/types"
)

// Environment keys.
const (
	KeyCredentials         = "GOOGLE_APPLICATION_CREDENTIALS"
	KeyProjectID           = "PROJECT_ID"
	KeyLocation            = "LOCATION"
	KeyBucketName          = "BUCKET_NAME"
	KeyModelDir            = "MODEL_DIR"
	KeyDownloadDir         = "DOWNLOAD_DIR"
	KeyEndpointDisplayName = "ENDPOINT_DISPLAY_NAME"
	KeyModelDisplayName    = "MODEL_DISPLAY_NAME"
	KeyModelID             = "MODEL_ID"
	KeyServingImage        = "SERVING_CONTAINER_IMAGE_URI"
	KeyMachineType         = "MACHINE_TYPE"
	KeyAcceleratorType     = "ACCELERATOR_TYPE"
	KeyAcceleratorCount    = "ACCELERATOR_COUNT"
	KeyMinReplicaCount     = "MIN_REPLICA_COUNT"
	KeyMaxReplicaCount     = "MAX_REPLICA_COUNT"
	KeyTransferConcurrency = "TRANSFER_CONCURRENCY"
	KeyLogLevel            = "LOG_LEVEL"
	KeyLogFormat           = "LOG_FORMAT"
	KeyStoreBackend        = "STORE_BACKEND"
	KeyS3Endpoint          = "S3_ENDPOINT"
	KeyS3AccessKey         = "S3_ACCESS_KEY"
	KeyS3SecretKey         = "S3_SECRET_KEY"
	KeyS3Region            = "S3_REGION"
	KeyS3UseSSL            = "S3_USE_SSL"
)

// Store backends accepted by [KeyStoreBackend].
const (
	BackendGCS    = "gcs"
	BackendS3     = "s3"
	BackendMemory = "memory"
)

// DefaultEnvFile is the dotenv file read from the working directory when no path is given.
const DefaultEnvFile = ".env"

// Config holds the resolved settings.
type Config struct {
	CredentialsFile     string `mapstructure:"google_application_credentials"`
	ProjectID           string `mapstructure:"project_id"`
	Location            string `mapstructure:"location"`
	BucketName          string `mapstructure:"bucket_name"`
	ModelDir            string `mapstructure:"model_dir"`
	DownloadDir         string `mapstructure:"download_dir"`
	EndpointDisplayName string `mapstructure:"endpoint_display_name"`
	ModelDisplayName    string `mapstructure:"model_display_name"`
	ModelID             string `mapstructure:"model_id"`
	ServingImage        string `mapstructure:"serving_container_image_uri"`
	MachineType         string `mapstructure:"machine_type"`
	AcceleratorType     string `mapstructure:"accelerator_type"`
	AcceleratorCount    int32  `mapstructure:"accelerator_count"`
	MinReplicaCount     int32  `mapstructure:"min_replica_count"`
	MaxReplicaCount     int32  `mapstructure:"max_replica_count"`
	TransferConcurrency int    `mapstructure:"transfer_concurrency"`
	LogLevel            string `mapstructure:"log_level"`
	LogFormat           string `mapstructure:"log_format"`
	StoreBackend        string `mapstructure:"store_backend"`
	S3Endpoint          string `mapstructure:"s3_endpoint"`
	S3AccessKey         string `mapstructure:"s3_access_key"`
	S3SecretKey         string `mapstructure:"s3_secret_key"`
	S3Region            string `mapstructure:"s3_region"`
	S3UseSSL            bool   `mapstructure:"s3_use_ssl"`

	v *viper.Viper
}

// Load reads settings from the environment, layered over the dotenv file at envFile.
//
// An empty envFile means [DefaultEnvFile]. A missing dotenv file is not an error.
// Values already present in the process environment win over the file.
func Load(envFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	explicit := envFile != ""
	if !explicit {
		envFile = DefaultEnvFile
	}
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound), errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return nil, fmt.Errorf("failed to read env file %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.v = v

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults registers every key so that AutomaticEnv resolves it during Unmarshal.
func setDefaults(v *viper.Viper) {
	defaults := map[string]any{
		KeyCredentials:         "",
		KeyProjectID:           "",
		KeyLocation:            "us-central1",
		KeyBucketName:          "",
		KeyModelDir:            "qwen2.5-3b-instruct",
		KeyDownloadDir:         "downloaded_model",
		KeyEndpointDisplayName: "llama-3-1-8b-instruct-mg-one-click-deploy",
		KeyModelDisplayName:    "llama-3-1-8b-instruct",
		KeyModelID:             "",
		KeyServingImage:        "",
		KeyMachineType:         "g2-standard-12",
		KeyAcceleratorType:     "NVIDIA_L4",
		KeyAcceleratorCount:    1,
		KeyMinReplicaCount:     1,
		KeyMaxReplicaCount:     1,
		KeyTransferConcurrency: 4,
		KeyLogLevel:            "info",
		KeyLogFormat:           "json",
		KeyStoreBackend:        BackendGCS,
		KeyS3Endpoint:          "",
		KeyS3AccessKey:         "",
		KeyS3SecretKey:         "",
		KeyS3Region:            "",
		KeyS3UseSSL:            true,
	}
	for k, val := range defaults {
		v.SetDefault(strings.ToLower(k), val)
	}
}

func (c *Config) validate() error {
	c.StoreBackend = strings.ToLower(strings.TrimSpace(c.StoreBackend))
	switch c.StoreBackend {
	case BackendGCS, BackendS3, BackendMemory:
	default:
		return &types.ConfigurationError{
			Key:     KeyStoreBackend,
			Message: fmt.Sprintf("unknown backend %q", c.StoreBackend),
		}
	}
	if c.TransferConcurrency < 1 {
		return &types.ConfigurationError{Key: KeyTransferConcurrency, Message: "must be at least 1"}
	}
	if c.MinReplicaCount < 1 {
		return &types.ConfigurationError{Key: KeyMinReplicaCount, Message: "must be at least 1"}
	}
	if c.MaxReplicaCount < c.MinReplicaCount {
		return &types.ConfigurationError{
			Key:     KeyMaxReplicaCount,
			Message: fmt.Sprintf("must be >= %s (%d)", KeyMinReplicaCount, c.MinReplicaCount),
		}
	}
	return nil
}

// Get returns the string value of an environment key.
func (c *Config) Get(key string) string {
	if c.v == nil {
		return ""
	}
	return strings.TrimSpace(c.v.GetString(strings.ToLower(key)))
}

// Require returns a [*types.ConfigurationError] for every key with an empty value.
func (c *Config) Require(keys ...string) error {
	var missing []string
	for _, k := range keys {
		if c.Get(k) == "" {
			missing = append(missing, k)
		}
	}
	return types.MissingError(missing...)
}

// ExportCredentials publishes CredentialsFile to the process environment so that
// Application Default Credentials discovery sees a value loaded from the dotenv file.
func (c *Config) ExportCredentials() error {
	if c.CredentialsFile == "" || os.Getenv(KeyCredentials) != "" {
		return nil
	}
	if err := os.Setenv(KeyCredentials, c.CredentialsFile); err != nil {
		return fmt.Errorf("export %s: %w", KeyCredentials, err)
	}
	return nil
}
