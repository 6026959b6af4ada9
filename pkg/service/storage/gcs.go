package storage

import (
	"context"
	"errors"
	"io"

	"cloud.google.com/go/storage"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/option"
)

// GCS stores uploaded documents in a Cloud Storage bucket under prefix.
type GCS struct {
	client *storage.Client
	bucket string
	prefix string
}

var _ interfaces.BlobStore = &GCS{}

type GCSOption func(*gcsConfig)

type gcsConfig struct {
	prefix  string
	options []option.ClientOption
}

// WithPrefix puts every object under prefix ("documents/" for example).
func WithPrefix(prefix string) GCSOption {
	return func(c *gcsConfig) {
		c.prefix = prefix
	}
}

// WithCredentialsFile authenticates with a service account key file instead
// of application default credentials.
func WithCredentialsFile(path string) GCSOption {
	return func(c *gcsConfig) {
		c.options = append(c.options, option.WithCredentialsFile(path))
	}
}

// WithEndpoint points the client at an emulator such as fake-gcs-server.
func WithEndpoint(endpoint string) GCSOption {
	return func(c *gcsConfig) {
		c.options = append(c.options, option.WithEndpoint(endpoint), option.WithoutAuthentication())
	}
}

func NewGCS(ctx context.Context, bucket string, opts ...GCSOption) (*GCS, error) {
	if bucket == "" {
		return nil, goerr.New("bucket name is required")
	}

	var cfg gcsConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	client, err := storage.NewClient(ctx, cfg.options...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GCS client", goerr.V("bucket", bucket))
	}
	return &GCS{client: client, bucket: bucket, prefix: cfg.prefix}, nil
}

func (s *GCS) object(key string) (*storage.ObjectHandle, error) {
	cleaned, err := cleanKey(key)
	if err != nil {
		return nil, err
	}
	return s.client.Bucket(s.bucket).Object(s.prefix + cleaned), nil
}

func (s *GCS) Put(ctx context.Context, key string, r io.Reader, contentType string) (int64, error) {
	obj, err := s.object(key)
	if err != nil {
		return 0, err
	}

	writer := obj.NewWriter(ctx)
	writer.ContentType = contentType
	writer.CacheControl = "no-cache, no-store, must-revalidate"

	n, err := io.Copy(writer, r)
	if err != nil {
		_ = writer.Close()
		return 0, goerr.Wrap(err, "failed to write object", goerr.V("bucket", s.bucket), goerr.V("key", key))
	}
	if err := writer.Close(); err != nil {
		return 0, goerr.Wrap(err, "failed to close object writer", goerr.V("bucket", s.bucket), goerr.V("key", key))
	}
	return n, nil
}

func (s *GCS) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.object(key)
	if err != nil {
		return nil, err
	}

	reader, err := obj.NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, goerr.Wrap(ErrNotFound, "object does not exist", goerr.V("key", key))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open object", goerr.V("bucket", s.bucket), goerr.V("key", key))
	}
	return reader, nil
}

func (s *GCS) Delete(ctx context.Context, key string) error {
	obj, err := s.object(key)
	if err != nil {
		return err
	}

	if err := obj.Delete(ctx); err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return goerr.Wrap(err, "failed to delete object", goerr.V("bucket", s.bucket), goerr.V("key", key))
	}
	return nil
}

func (s *GCS) Close() error {
	return s.client.Close()
}
