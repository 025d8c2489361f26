package assetupload

import (
	"context"
	"fmt"

	remoteerrors "github.com/input-output-hk/catalyst-forge-libs/assetupload/errors"
	"github.com/input-output-hk/catalyst-forge-libs/assetupload/remote"
	"github.com/input-output-hk/catalyst-forge-libs/assetupload/remote/azblob"
	"github.com/input-output-hk/catalyst-forge-libs/assetupload/remote/gcs"
	"github.com/input-output-hk/catalyst-forge-libs/assetupload/remote/minio"
	"github.com/input-output-hk/catalyst-forge-libs/assetupload/remote/s3"
)

// NewObjectClient creates the client for creds.Backend.
func NewObjectClient(ctx context.Context, creds remote.Credentials) (remote.ObjectClient, error) {
	switch creds.Provider() {
	case remote.BackendS3:
		client, err := s3.New(ctx, creds)
		if err != nil {
			return nil, err
		}
		return client, nil
	case remote.BackendMinio:
		client, err := minio.New(creds)
		if err != nil {
			return nil, err
		}
		return client, nil
	case remote.BackendAzblob:
		client, err := azblob.New(creds)
		if err != nil {
			return nil, err
		}
		return client, nil
	case remote.BackendGCS:
		client, err := gcs.New(ctx, creds)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, remoteerrors.NewError("client initialization", remoteerrors.ErrInvalidInput).
			WithMessage(fmt.Sprintf("unsupported backend %q", creds.Backend))
	}
}
