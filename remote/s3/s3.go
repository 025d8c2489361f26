// Package s3 stores objects in Amazon S3 (or an S3 compatible endpoint)
// using aws-sdk-go-v2.
package s3

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	remoteerrors "github.com/input-output-hk/catalyst-forge-libs/assetupload/errors"
	"github.com/input-output-hk/catalyst-forge-libs/assetupload/internal/s3api"
	"github.com/input-output-hk/catalyst-forge-libs/assetupload/remote"
)

const provider = "s3"

// Client uploads objects to a single S3 bucket.
type Client struct {
	api    s3api.S3API
	bucket string
}

// New creates a Client from credentials. Static keys are used when both are
// set; otherwise the default AWS credential chain applies.
func New(ctx context.Context, creds remote.Credentials) (*Client, error) {
	var cfgOpts []func(*config.LoadOptions) error

	region := creds.Region
	if region == "" {
		region = "us-east-1"
	}
	cfgOpts = append(cfgOpts, config.WithRegion(region))

	if creds.AccessKeyID != "" && creds.AccessKeySecret != "" {
		cfgOpts = append(cfgOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(creds.AccessKeyID, creds.AccessKeySecret, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, cfgOpts...)
	if err != nil {
		return nil, remoteerrors.NewError("client initialization", err).
			WithProvider(provider).
			WithBucket(creds.Bucket)
	}

	api := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if creds.Endpoint != "" {
			o.BaseEndpoint = aws.String(creds.Endpoint)
		}
		o.UsePathStyle = creds.ForcePathStyle
	})

	return NewWithClient(api, creds.Bucket), nil
}

// NewWithClient creates a Client around an existing S3API implementation.
// This is primarily used for testing with mocked clients.
func NewWithClient(api s3api.S3API, bucket string) *Client {
	return &Client{
		api:    api,
		bucket: bucket,
	}
}

// Put uploads data under key with a single PutObject request.
func (c *Client) Put(ctx context.Context, key string, data []byte) (*remote.PutResult, error) {
	startTime := time.Now()
	size := int64(len(data))

	input := &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(remote.ContentType(key, data)),
		ContentLength: aws.Int64(size),
	}

	output, err := c.api.PutObject(ctx, input)
	if err != nil {
		return nil, convertError(err, c.bucket, key)
	}

	result := &remote.PutResult{
		Key:      key,
		Size:     size,
		Duration: time.Since(startTime),
	}
	if output != nil {
		result.ETag = aws.ToString(output.ETag)
		result.VersionID = aws.ToString(output.VersionId)
	}

	return result, nil
}

func convertError(err error, bucket, key string) error {
	e := remoteerrors.NewObjectError("put", bucket, key, err).WithProvider(provider)

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		e = e.WithCode(apiErr.ErrorCode())
	}

	return e
}
