// Package azblob stores objects as Azure block blobs.
//
// Credentials map onto Azure as follows: AccessKeyID is the storage account
// name, AccessKeySecret the account key and Bucket the container. Without a
// key the endpoint is expected to carry a SAS token.
package azblob

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"

	remoteerrors "github.com/input-output-hk/catalyst-forge-libs/assetupload/errors"
	"github.com/input-output-hk/catalyst-forge-libs/assetupload/remote"
)

const provider = "azblob"

// BlobAPI is the part of *azblob.Client used by Client.
type BlobAPI interface {
	UploadBuffer(
		ctx context.Context,
		containerName, blobName string,
		buffer []byte,
		o *azblob.UploadBufferOptions,
	) (azblob.UploadBufferResponse, error)
}

// Client uploads blobs into a single container.
type Client struct {
	api       BlobAPI
	container string
}

// New creates a Client from credentials.
func New(creds remote.Credentials) (*Client, error) {
	endpoint := creds.Endpoint
	if endpoint == "" {
		if creds.AccessKeyID == "" {
			return nil, remoteerrors.NewError("client initialization", remoteerrors.ErrInvalidInput).
				WithProvider(provider).
				WithMessage("account name or endpoint is required")
		}
		endpoint = fmt.Sprintf("https://%s.blob.core.windows.net/", creds.AccessKeyID)
	}

	var (
		api *azblob.Client
		err error
	)

	if creds.AccessKeyID != "" && creds.AccessKeySecret != "" {
		cred, credErr := azblob.NewSharedKeyCredential(creds.AccessKeyID, creds.AccessKeySecret)
		if credErr != nil {
			return nil, remoteerrors.NewError("client initialization", credErr).
				WithProvider(provider).
				WithMessage("failed to create shared key credentials")
		}
		api, err = azblob.NewClientWithSharedKeyCredential(endpoint, cred, nil)
	} else {
		api, err = azblob.NewClientWithNoCredential(endpoint, nil)
	}
	if err != nil {
		return nil, remoteerrors.NewError("client initialization", err).
			WithProvider(provider).
			WithBucket(creds.Bucket)
	}

	return NewWithClient(api, creds.Bucket), nil
}

// NewWithClient creates a Client around an existing BlobAPI.
func NewWithClient(api BlobAPI, container string) *Client {
	return &Client{api: api, container: container}
}

// Put uploads data as the block blob key.
func (c *Client) Put(ctx context.Context, key string, data []byte) (*remote.PutResult, error) {
	startTime := time.Now()

	resp, err := c.api.UploadBuffer(ctx, c.container, key, data, &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType: to.Ptr(remote.ContentType(key, data)),
		},
	})
	if err != nil {
		e := remoteerrors.NewObjectError("put", c.container, key, err).WithProvider(provider)
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) {
			e = e.WithCode(respErr.ErrorCode)
		}
		return nil, e
	}

	result := &remote.PutResult{
		Key:      key,
		Size:     int64(len(data)),
		Duration: time.Since(startTime),
	}
	if resp.ETag != nil {
		result.ETag = string(*resp.ETag)
	}
	if resp.VersionID != nil {
		result.VersionID = *resp.VersionID
	}

	return result, nil
}
