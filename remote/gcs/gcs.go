// Package gcs stores objects in Google Cloud Storage.
package gcs

import (
	"context"
	"errors"
	"strconv"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	remoteerrors "github.com/input-output-hk/catalyst-forge-libs/assetupload/errors"
	"github.com/input-output-hk/catalyst-forge-libs/assetupload/remote"
)

const provider = "gcs"

// ObjectWriter is the part of *storage.Writer used by Client.
type ObjectWriter interface {
	Write(p []byte) (int, error)
	Close() error
	Attrs() *storage.ObjectAttrs
}

// WriterFunc opens a writer for key in the configured bucket.
type WriterFunc func(ctx context.Context, key, contentType string) ObjectWriter

// Client uploads objects to a single bucket.
type Client struct {
	open   WriterFunc
	bucket string
}

// New creates a Client from credentials. KeyFile selects a service account
// file. An Endpoint without a KeyFile (emulators) disables authentication.
func New(ctx context.Context, creds remote.Credentials) (*Client, error) {
	gcsClient, err := storage.NewClient(ctx, clientOptions(creds)...)
	if err != nil {
		return nil, remoteerrors.NewError("client initialization", err).
			WithProvider(provider).
			WithBucket(creds.Bucket)
	}

	bucket := gcsClient.Bucket(creds.Bucket)

	return NewWithWriter(func(ctx context.Context, key, contentType string) ObjectWriter {
		w := bucket.Object(key).NewWriter(ctx)
		w.ContentType = contentType
		return w
	}, creds.Bucket), nil
}

func clientOptions(creds remote.Credentials) []option.ClientOption {
	opts := make([]option.ClientOption, 0, 2)

	if creds.KeyFile != "" {
		opts = append(opts, option.WithCredentialsFile(creds.KeyFile))
	}

	if creds.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(creds.Endpoint))
		if creds.KeyFile == "" {
			opts = append(opts, option.WithoutAuthentication())
		}
	}

	return opts
}

// NewWithWriter creates a Client that opens objects through open.
func NewWithWriter(open WriterFunc, bucket string) *Client {
	return &Client{open: open, bucket: bucket}
}

// Put uploads data under key. The object is committed when the writer closes.
func (c *Client) Put(ctx context.Context, key string, data []byte) (*remote.PutResult, error) {
	startTime := time.Now()

	w := c.open(ctx, key, remote.ContentType(key, data))
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, c.convertError(err, key)
	}
	if err := w.Close(); err != nil {
		return nil, c.convertError(err, key)
	}

	result := &remote.PutResult{
		Key:      key,
		Size:     int64(len(data)),
		Duration: time.Since(startTime),
	}
	if attrs := w.Attrs(); attrs != nil {
		result.ETag = attrs.Etag
		if attrs.Generation != 0 {
			result.VersionID = strconv.FormatInt(attrs.Generation, 10)
		}
	}

	return result, nil
}

func (c *Client) convertError(err error, key string) error {
	e := remoteerrors.NewObjectError("put", c.bucket, key, err).WithProvider(provider)

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		code := strconv.Itoa(apiErr.Code)
		if len(apiErr.Errors) > 0 && apiErr.Errors[0].Reason != "" {
			code = apiErr.Errors[0].Reason
		}
		e = e.WithCode(code)
	}

	return e
}
