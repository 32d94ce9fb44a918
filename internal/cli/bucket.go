// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"cmp"
	"strconv"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/go-a2a/vertexops/artifact"
	"github.com/go-a2a/vertexops/internal/config"
	"github.com/go-a2a/vertexops/types"
)

type bucketFlags struct {
	bucket string
}

func (f *bucketFlags) name(cfg *config.Config) string {
	return cmp.Or(f.bucket, cfg.BucketName)
}

func (a *app) bucketCommand() *cobra.Command {
	f := &bucketFlags{}
	cmd := &cobra.Command{
		Use:   "bucket",
		Short: "Manage model artifacts in object storage",
		Long: heredoc.Doc(`
			Upload and download model directories, single files and whole buckets.

			The bucket defaults to BUCKET_NAME. STORE_BACKEND selects gcs, s3 or memory.
		`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if f.bucket != "" {
				return a.setup(cmd)
			}
			return a.setup(cmd, config.KeyBucketName)
		},
	}
	cmd.PersistentFlags().StringVarP(&f.bucket, "bucket", "b", "", "bucket name (default $BUCKET_NAME)")

	cmd.AddCommand(
		a.bucketCreateCommand(f),
		a.bucketDeleteCommand(f),
		a.bucketListCommand(f),
		a.bucketUploadCommand(f),
		a.bucketDownloadCommand(f),
		a.bucketPutCommand(f),
		a.bucketGetCommand(f),
		a.bucketURLCommand(f),
	)

	return cmd
}

func (a *app) bucketCreateCommand(f *bucketFlags) *cobra.Command {
	var location string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create the bucket if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.syncer(ctx)
			if err != nil {
				return err
			}
			bucket := f.name(a.cfg)
			created, err := s.CreateBucket(ctx, bucket, cmp.Or(location, a.cfg.Location))
			if err != nil {
				return err
			}
			out := struct {
				Bucket  string `json:"bucket"`
				Created bool   `json:"created"`
			}{bucket, created}
			return a.render(out, []string{"Bucket", "Created"}, []string{bucket, strconv.FormatBool(created)})
		},
	}
	cmd.Flags().StringVar(&location, "location", "", "bucket location (default $LOCATION)")
	return cmd
}

func (a *app) bucketDeleteCommand(f *bucketFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Delete every blob in the bucket, then the bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.syncer(ctx)
			if err != nil {
				return err
			}
			bucket := f.name(a.cfg)
			res, err := s.DeleteBucketRecursive(ctx, bucket)
			if err != nil {
				return err
			}
			return a.render(res, []string{"Bucket", "Found", "Blobs Deleted"},
				[]string{bucket, strconv.FormatBool(res.BucketFound), strconv.Itoa(res.BlobsDeleted)})
		},
	}
}

func (a *app) bucketListCommand(f *bucketFlags) *cobra.Command {
	var prefix string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List blobs in the bucket",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.syncer(ctx)
			if err != nil {
				return err
			}
			blobs, err := s.ListBlobs(ctx, f.name(a.cfg), prefix)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(blobs))
			for _, b := range blobs {
				rows = append(rows, []string{b.Key, formatSize(b.Size), b.ContentType, formatTime(b.Updated)})
			}
			return a.render(blobs, []string{"Key", "Size", "Content Type", "Updated"}, rows...)
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "only list keys with this prefix")
	return cmd
}

func (a *app) renderTransfer(direction, bucket, local string, stats artifact.TransferStats) error {
	out := struct {
		Direction string `json:"direction"`
		Bucket    string `json:"bucket"`
		Local     string `json:"local"`
		artifact.TransferStats
	}{direction, bucket, local, stats}
	return a.render(out, []string{"Direction", "Bucket", "Local", "Files", "Size"},
		[]string{direction, bucket, local, strconv.Itoa(stats.Files), formatSize(stats.Bytes)})
}

func (a *app) bucketUploadCommand(f *bucketFlags) *cobra.Command {
	var create bool
	cmd := &cobra.Command{
		Use:   "upload [dir]",
		Short: "Upload a local directory tree",
		Long: heredoc.Doc(`
			Upload every file under dir. Keys keep the directory's own name as their
			first segment, so "models/qwen/config.json" is stored as "qwen/config.json".

			dir defaults to MODEL_DIR. The bucket must exist unless --create is given.
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.syncer(ctx)
			if err != nil {
				return err
			}
			bucket := f.name(a.cfg)
			dir := a.cfg.ModelDir
			if len(args) > 0 {
				dir = args[0]
			}
			if create {
				if _, err := s.CreateBucket(ctx, bucket, a.cfg.Location); err != nil {
					return err
				}
			}
			stats, err := s.UploadTree(ctx, dir, bucket)
			if err != nil {
				return err
			}
			return a.renderTransfer("upload", bucket, dir, stats)
		},
	}
	cmd.Flags().BoolVar(&create, "create", false, "create the bucket first when it does not exist")
	return cmd
}

func (a *app) bucketDownloadCommand(f *bucketFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "download [dir]",
		Short: "Download every blob into a local directory",
		Long: heredoc.Doc(`
			Download every blob in the bucket into dir, recreating the key hierarchy.
			Existing files are overwritten. dir defaults to DOWNLOAD_DIR.
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.syncer(ctx)
			if err != nil {
				return err
			}
			bucket := f.name(a.cfg)
			dir := a.cfg.DownloadDir
			if len(args) > 0 {
				dir = args[0]
			}
			stats, err := s.DownloadTree(ctx, bucket, dir)
			if err != nil {
				return err
			}
			return a.renderTransfer("download", bucket, dir, stats)
		},
	}
}

func (a *app) bucketPutCommand(f *bucketFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "put <file> [key]",
		Short: "Upload a single file",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.syncer(ctx)
			if err != nil {
				return err
			}
			var key string
			if len(args) > 1 {
				key = args[1]
			}
			bucket := f.name(a.cfg)
			key, err = s.UploadFile(ctx, args[0], bucket, key)
			if err != nil {
				return err
			}
			return a.renderObject(bucket, key, args[0])
		},
	}
}

func (a *app) bucketGetCommand(f *bucketFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key> [file]",
		Short: "Download a single blob",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.syncer(ctx)
			if err != nil {
				return err
			}
			var file string
			if len(args) > 1 {
				file = args[1]
			}
			bucket := f.name(a.cfg)
			file, err = s.DownloadFile(ctx, bucket, args[0], file)
			if err != nil {
				return err
			}
			return a.renderObject(bucket, args[0], file)
		},
	}
}

func (a *app) renderObject(bucket, key, local string) error {
	url := artifact.URL(bucket, key)
	out := struct {
		URL   string `json:"url"`
		Local string `json:"local,omitempty"`
	}{url, local}
	return a.render(out, []string{"URL", "Local"}, []string{url, local})
}

func (a *app) bucketURLCommand(f *bucketFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "url <key>",
		Short: "Print the gs:// URL of a blob",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := types.RequireNonEmpty("key", args[0]); err != nil {
				return err
			}
			return a.renderObject(f.name(a.cfg), args[0], "")
		},
	}
}
