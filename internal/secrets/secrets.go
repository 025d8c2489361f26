// Package secrets resolves upload credentials stored in AWS Secrets Manager.
//
// The secret value is a JSON object:
//
//	{"accessKeyId": "...", "accessKeySecret": "..."}
//
// Either a SecretString or a SecretBinary holding that JSON is accepted.
package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"

	"github.com/input-output-hk/catalyst-forge-libs/assetupload/remote"
)

var (
	// ErrSecretNotFound indicates the secret does not exist.
	ErrSecretNotFound = errors.New("secret not found")

	// ErrInvalidSecret indicates the secret exists but does not hold usable keys.
	ErrInvalidSecret = errors.New("invalid credentials secret")
)

// SecretsManagerAPI is the part of the Secrets Manager client used here.
// This interface allows for mocking AWS SDK calls in unit tests.
type SecretsManagerAPI interface {
	GetSecretValue(
		ctx context.Context,
		params *secretsmanager.GetSecretValueInput,
		optFns ...func(*secretsmanager.Options),
	) (*secretsmanager.GetSecretValueOutput, error)
}

// Keys is the decoded secret payload.
type Keys struct {
	AccessKeyID     string `json:"accessKeyId"`
	AccessKeySecret string `json:"accessKeySecret"`
}

// Resolver reads access keys from Secrets Manager.
type Resolver struct {
	client SecretsManagerAPI
}

// New creates a Resolver using the default AWS configuration chain. Region
// and endpoint are optional overrides; the endpoint is mainly for LocalStack.
func New(ctx context.Context, region, endpoint string) (*Resolver, error) {
	var cfgOpts []func(*config.LoadOptions) error
	if region != "" {
		cfgOpts = append(cfgOpts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, cfgOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := secretsmanager.NewFromConfig(cfg, func(o *secretsmanager.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return NewWithClient(client), nil
}

// NewWithClient creates a Resolver around an existing client.
func NewWithClient(client SecretsManagerAPI) *Resolver {
	return &Resolver{client: client}
}

// Resolve fetches and decodes the secret identified by id (a name or ARN).
func (r *Resolver) Resolve(ctx context.Context, id string) (*Keys, error) {
	if id == "" {
		return nil, fmt.Errorf("secret id cannot be empty: %w", ErrInvalidSecret)
	}

	output, err := r.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(id),
	})
	if err != nil {
		var rnf *types.ResourceNotFoundException
		if errors.As(err, &rnf) {
			return nil, fmt.Errorf("secret %q: %w", id, ErrSecretNotFound)
		}
		return nil, fmt.Errorf("failed to resolve secret %q: %w", id, err)
	}

	var value []byte
	switch {
	case output.SecretString != nil:
		value = []byte(*output.SecretString)
	case output.SecretBinary != nil:
		value = output.SecretBinary
	default:
		return nil, fmt.Errorf("secret %q has no value: %w", id, ErrInvalidSecret)
	}

	var keys Keys
	if err := json.Unmarshal(value, &keys); err != nil {
		return nil, fmt.Errorf("secret %q is not valid JSON: %w", id, errors.Join(ErrInvalidSecret, err))
	}

	keys.AccessKeyID = strings.TrimSpace(keys.AccessKeyID)
	keys.AccessKeySecret = strings.TrimSpace(keys.AccessKeySecret)
	if keys.AccessKeyID == "" || keys.AccessKeySecret == "" {
		return nil, fmt.Errorf("secret %q is missing accessKeyId or accessKeySecret: %w", id, ErrInvalidSecret)
	}

	return &keys, nil
}

// Apply copies the keys into creds, leaving every other field untouched.
func (k *Keys) Apply(creds *remote.Credentials) {
	creds.AccessKeyID = k.AccessKeyID
	creds.AccessKeySecret = k.AccessKeySecret
}
