// Package s3api defines the subset of the S3 API used by this module so it can be mocked.
package s3api

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API defines the S3 operations used by the upload backend.
type S3API interface {
	// PutObject uploads an object to S3
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Ensure *s3.Client satisfies S3API.
var _ S3API = (*s3.Client)(nil)
