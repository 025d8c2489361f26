// Package remote defines the object storage boundary used by the uploader.
//
// A backend receives an object key and its bytes and stores them in a bucket
// it was configured with at construction time. Backends live in sub-packages
// (s3, minio, azblob, gcs) and all satisfy ObjectClient.
package remote

import (
	"context"
	"time"
)

// Backend names a storage provider.
type Backend string

const (
	// BackendS3 stores objects with the AWS SDK. It is the default.
	BackendS3 Backend = "s3"
	// BackendMinio stores objects with minio-go against any S3 compatible endpoint.
	BackendMinio Backend = "minio"
	// BackendAzblob stores objects as Azure block blobs.
	BackendAzblob Backend = "azblob"
	// BackendGCS stores objects in Google Cloud Storage.
	BackendGCS Backend = "gcs"
)

// Credentials holds everything a backend needs to reach its bucket.
// The values are passed through unexamined; a wrong key or bucket
// surfaces as an error from the first Put.
type Credentials struct {
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	Region          string

	// Backend selects the provider. Empty means BackendS3.
	Backend Backend
	// Endpoint overrides the provider's service URL.
	Endpoint string
	// ForcePathStyle addresses buckets as path segments (S3 compatible stores).
	ForcePathStyle bool
	// KeyFile is a service account file for BackendGCS.
	KeyFile string
}

// Provider returns the configured backend, defaulting to BackendS3.
func (c Credentials) Provider() Backend {
	if c.Backend == "" {
		return BackendS3
	}
	return c.Backend
}

// PutResult describes a stored object.
type PutResult struct {
	Key       string
	Size      int64
	ETag      string
	VersionID string
	Duration  time.Duration
}

// ObjectClient stores a single object under key in the configured bucket.
// Implementations must be safe for concurrent use.
type ObjectClient interface {
	Put(ctx context.Context, key string, data []byte) (*PutResult, error)
}

// ObjectClientFunc adapts a function to ObjectClient.
type ObjectClientFunc func(ctx context.Context, key string, data []byte) (*PutResult, error)

// Put calls f.
func (f ObjectClientFunc) Put(ctx context.Context, key string, data []byte) (*PutResult, error) {
	return f(ctx, key, data)
}
