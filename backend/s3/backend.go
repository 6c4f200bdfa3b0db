package s3

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/mwantia/vfsmux/backend"
	"github.com/mwantia/vfsmux/data"
)

// S3Backend stores entries as objects in an S3 compatible bucket.
// Directories are virtual and only exist as key prefixes.
type S3Backend struct {
	mu sync.RWMutex

	client *minio.Client
	config *S3BackendConfig
}

// S3BackendConfig contains configuration options for the S3 backend
type S3BackendConfig struct {
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool

	// Prefix for all object keys inside the bucket (optional)
	Prefix string
	// CreateBucket creates the bucket if it doesn't exist yet
	CreateBucket bool
}

func NewS3Backend(ctx context.Context, config *S3BackendConfig) (*S3Backend, error) {
	if config == nil || config.Endpoint == "" || config.Bucket == "" {
		return nil, fmt.Errorf("s3 backend requires an endpoint and a bucket")
	}

	client, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure: config.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(ctx, config.Bucket)
	if err != nil {
		return nil, data.Other(fmt.Sprintf("s3 bucket '%s'", config.Bucket), err)
	}

	if !exists {
		if !config.CreateBucket {
			return nil, fmt.Errorf("%w: bucket %s", data.ErrNotFound, config.Bucket)
		}
		if err := client.MakeBucket(ctx, config.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, data.Other(fmt.Sprintf("s3 create bucket '%s'", config.Bucket), err)
		}
	}

	return &S3Backend{
		client: client,
		config: config,
	}, nil
}

// Name returns the identifier name defined for this backend
func (*S3Backend) Name() string {
	return "s3"
}

// GetCapabilities returns a list of capabilities supported by this backend.
func (*S3Backend) GetCapabilities() *backend.BackendCapabilities {
	return &backend.BackendCapabilities{
		Capabilities: append(backend.ReadWriteCapabilities(), backend.CapabilityPersistent),
	}
}

// Open is a no-op, requests are independent HTTP calls.
func (*S3Backend) Open(ctx context.Context, path string) error {
	return nil
}

// Close is a no-op, requests are independent HTTP calls.
func (*S3Backend) Close(ctx context.Context, path string) error {
	return nil
}

func (sb *S3Backend) objectKey(path string) string {
	key := backend.CleanKey(path)

	prefix := strings.Trim(sb.config.Prefix, "/")
	if prefix == "" {
		return key
	}
	if key == backend.RootPath {
		return prefix + "/"
	}
	return prefix + "/" + key
}

func (sb *S3Backend) relativeKey(objectKey string) string {
	prefix := strings.Trim(sb.config.Prefix, "/")
	if prefix == "" {
		return objectKey
	}
	return strings.TrimPrefix(objectKey, prefix+"/")
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}
