// Package minio stores objects through minio-go, which speaks the S3 protocol
// to MinIO, Alibaba Cloud OSS and other compatible services.
package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	remoteerrors "github.com/input-output-hk/catalyst-forge-libs/assetupload/errors"
	"github.com/input-output-hk/catalyst-forge-libs/assetupload/remote"
)

const provider = "minio"

// ObjectAPI is the part of *minio.Client used by Client.
type ObjectAPI interface {
	PutObject(
		ctx context.Context,
		bucketName, objectName string,
		reader io.Reader,
		objectSize int64,
		opts minio.PutObjectOptions,
	) (minio.UploadInfo, error)
}

// Client uploads objects to a single bucket.
type Client struct {
	api    ObjectAPI
	bucket string
}

// New creates a Client from credentials. Without an explicit endpoint an OSS
// region ("oss-cn-hangzhou") resolves to its public aliyuncs.com endpoint and
// anything else to AWS S3.
func New(creds remote.Credentials) (*Client, error) {
	host, secure, err := resolveEndpoint(creds)
	if err != nil {
		return nil, remoteerrors.NewError("client initialization", err).
			WithProvider(provider).
			WithBucket(creds.Bucket)
	}

	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(creds.AccessKeyID, creds.AccessKeySecret, ""),
		Secure: secure,
		Region: creds.Region,
	}
	if creds.ForcePathStyle {
		opts.BucketLookup = minio.BucketLookupPath
	}

	api, err := minio.New(host, opts)
	if err != nil {
		return nil, remoteerrors.NewError("client initialization", err).
			WithProvider(provider).
			WithBucket(creds.Bucket)
	}

	return NewWithClient(api, creds.Bucket), nil
}

// NewWithClient creates a Client around an existing ObjectAPI.
func NewWithClient(api ObjectAPI, bucket string) *Client {
	return &Client{api: api, bucket: bucket}
}

// Put uploads data under key.
func (c *Client) Put(ctx context.Context, key string, data []byte) (*remote.PutResult, error) {
	startTime := time.Now()

	info, err := c.api.PutObject(ctx, c.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{
			ContentType: remote.ContentType(key, data),
		},
	)
	if err != nil {
		e := remoteerrors.NewObjectError("put", c.bucket, key, err).WithProvider(provider)
		if resp := minio.ToErrorResponse(err); resp.Code != "" {
			e = e.WithCode(string(resp.Code))
		}
		return nil, e
	}

	return &remote.PutResult{
		Key:       key,
		Size:      int64(len(data)),
		ETag:      info.ETag,
		VersionID: info.VersionID,
		Duration:  time.Since(startTime),
	}, nil
}

// resolveEndpoint returns the host[:port] minio-go expects and whether TLS is used.
func resolveEndpoint(creds remote.Credentials) (string, bool, error) {
	endpoint := creds.Endpoint
	if endpoint == "" {
		if strings.HasPrefix(creds.Region, "oss-") {
			return creds.Region + ".aliyuncs.com", true, nil
		}
		return "s3.amazonaws.com", true, nil
	}

	if !strings.Contains(endpoint, "://") {
		return endpoint, true, nil
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return "", false, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return "", false, fmt.Errorf("invalid endpoint %q: missing host", endpoint)
	}

	switch u.Scheme {
	case "http":
		return u.Host, false, nil
	case "https":
		return u.Host, true, nil
	default:
		return "", false, fmt.Errorf("invalid endpoint %q: unsupported scheme %q", endpoint, u.Scheme)
	}
}
