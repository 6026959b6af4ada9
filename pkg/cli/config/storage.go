package config

import (
	"context"
	"log/slog"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/interfaces"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/service/storage"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const defaultUploadDir = "./uploads"

// Storage selects where uploaded documents are kept.
type Storage struct {
	bucket          string
	prefix          string
	credentialsFile string
	endpoint        string
	uploadDir       string
	serveUploads    bool
}

func (x *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gcs-bucket",
			Usage:       "Cloud Storage bucket for documents. Local directory storage when empty",
			Category:    "Storage",
			Sources:     cli.EnvVars("GRC_GCS_BUCKET"),
			Destination: &x.bucket,
		},
		&cli.StringFlag{
			Name:        "gcs-prefix",
			Usage:       "Object name prefix inside the bucket",
			Category:    "Storage",
			Sources:     cli.EnvVars("GRC_GCS_PREFIX"),
			Destination: &x.prefix,
		},
		&cli.StringFlag{
			Name:        "gcs-credentials-file",
			Usage:       "Service account key file (application default credentials when empty)",
			Category:    "Storage",
			Sources:     cli.EnvVars("GRC_GCS_CREDENTIALS_FILE"),
			Destination: &x.credentialsFile,
		},
		&cli.StringFlag{
			Name:        "gcs-endpoint",
			Usage:       "Cloud Storage endpoint override, e.g. an emulator",
			Category:    "Storage",
			Sources:     cli.EnvVars("GRC_GCS_ENDPOINT"),
			Destination: &x.endpoint,
		},
		&cli.StringFlag{
			Name:        "upload-dir",
			Usage:       "Directory of uploaded documents when no bucket is set",
			Category:    "Storage",
			Value:       defaultUploadDir,
			Sources:     cli.EnvVars("GRC_UPLOAD_DIR"),
			Destination: &x.uploadDir,
		},
		&cli.BoolFlag{
			Name:        "serve-uploads",
			Usage:       "Serve the upload directory without authentication at /uploads/",
			Category:    "Storage",
			Sources:     cli.EnvVars("GRC_SERVE_UPLOADS"),
			Destination: &x.serveUploads,
		},
	}
}

func (x Storage) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("gcs_bucket", x.bucket),
		slog.String("gcs_prefix", x.prefix),
		slog.String("gcs_endpoint", x.endpoint),
		slog.String("upload_dir", x.uploadDir),
		slog.Bool("serve_uploads", x.serveUploads),
	)
}

// PublicDir returns the directory to serve at /uploads/, or "" when
// serving is disabled or documents go to Cloud Storage.
func (x *Storage) PublicDir() string {
	if x.bucket != "" || !x.serveUploads {
		return ""
	}
	return x.uploadDir
}

// Configure returns the blob store. The returned function releases it.
func (x *Storage) Configure(ctx context.Context) (interfaces.BlobStore, func(), error) {
	if x.bucket == "" {
		local, err := storage.NewLocal(x.uploadDir)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to initialize local storage", goerr.V("dir", x.uploadDir))
		}
		logging.From(ctx).Info("Using local document storage", "dir", x.uploadDir)
		return local, func() {}, nil
	}

	var opts []storage.GCSOption
	if x.prefix != "" {
		opts = append(opts, storage.WithPrefix(x.prefix))
	}
	if x.credentialsFile != "" {
		opts = append(opts, storage.WithCredentialsFile(x.credentialsFile))
	}
	if x.endpoint != "" {
		opts = append(opts, storage.WithEndpoint(x.endpoint))
	}

	gcs, err := storage.NewGCS(ctx, x.bucket, opts...)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to initialize cloud storage", goerr.V("bucket", x.bucket))
	}
	logging.From(ctx).Info("Using Cloud Storage for documents", "bucket", x.bucket)

	closer := func() {
		if err := gcs.Close(); err != nil {
			logging.Default().Error("failed to close cloud storage client", "error", err)
		}
	}
	return gcs, closer, nil
}
