// Package app runs one upload pass over a build output directory.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/input-output-hk/catalyst-forge-libs/assetupload"
	"github.com/input-output-hk/catalyst-forge-libs/assetupload/build"
	"github.com/input-output-hk/catalyst-forge-libs/assetupload/cmd/internal/models"
	"github.com/input-output-hk/catalyst-forge-libs/assetupload/internal/secrets"
	"github.com/input-output-hk/catalyst-forge-libs/assetupload/match"
	"github.com/input-output-hk/catalyst-forge-libs/assetupload/remote"
)

type credentialResolver interface {
	Resolve(ctx context.Context, id string) (*secrets.Keys, error)
}

// Params describes one upload pass.
type Params struct {
	// Dir is the build output directory.
	Dir    string
	Upload *models.Upload
	// FS replaces the host filesystem. Dir is then resolved inside FS.
	FS billy.Filesystem
	// Options are applied to the plugin after the CLI's own.
	Options []assetupload.Option
}

// Service treats an output directory as a finished build and runs the
// upload plugin on it.
type Service struct {
	params *Params
	logger *slog.Logger
	fs     billy.Filesystem
	root   string

	newClient   assetupload.ClientFactory
	newResolver func(ctx context.Context, region, endpoint string) (credentialResolver, error)
}

// NewService validates params and prepares the output filesystem.
func NewService(params *Params, logger *slog.Logger) (*Service, error) {
	if params == nil || params.Upload == nil {
		return nil, errors.New("upload parameters are required")
	}
	if params.Dir == "" {
		return nil, errors.New("output directory is required")
	}

	fs, root := params.FS, params.Dir
	if fs == nil {
		fs, root = osfs.New(params.Dir), "."
	}

	return &Service{
		params:    params,
		logger:    logger,
		fs:        fs,
		root:      root,
		newClient: assetupload.NewObjectClient,
		newResolver: func(ctx context.Context, region, endpoint string) (credentialResolver, error) {
			return secrets.New(ctx, region, endpoint)
		},
	}, nil
}

// NewSettings converts CLI parameters into plugin settings.
func NewSettings(u *models.Upload) (assetupload.Settings, error) {
	exclude, err := match.ParseAll(u.Exclude)
	if err != nil {
		return assetupload.Settings{}, fmt.Errorf("invalid exclude rule: %w", err)
	}

	return assetupload.Settings{
		AccessKeyID:     u.AccessKeyID,
		AccessKeySecret: u.AccessKeySecret,
		Bucket:          u.Bucket,
		Region:          u.Region,
		Backend:         remote.Backend(u.Backend),
		Endpoint:        u.Endpoint,
		ForcePathStyle:  u.ForcePathStyle,
		KeyFile:         u.KeyFile,
		Prefix:          u.Prefix,
		Exclude:         exclude,
		IgnoreError:     u.IgnoreError,
		EnableLog:       assetupload.Bool(u.EnableLog),
		DeleteMode:      assetupload.Bool(u.DeleteMode),
		Concurrency:     u.Concurrency,
	}, nil
}

// Run loads the output directory, uploads it and finalizes the directory.
func (s *Service) Run(ctx context.Context) (*build.Stats, error) {
	settings, err := NewSettings(s.params.Upload)
	if err != nil {
		return nil, err
	}

	comp, err := build.LoadDir(s.fs, s.root)
	if err != nil {
		return nil, err
	}

	opts := []assetupload.Option{assetupload.WithLogger(s.logger)}
	if s.params.Upload.CredentialsSecret != "" {
		opts = append(opts, assetupload.WithClientFactory(s.secretClientFactory()))
	} else {
		opts = append(opts, assetupload.WithClientFactory(s.newClient))
	}
	opts = append(opts, s.params.Options...)

	plugin := assetupload.New(settings, opts...)
	compiler := build.NewCompiler(
		build.WithOutput(s.fs, s.root),
		build.WithLogger(s.logger),
	)

	if err := plugin.Apply(ctx, compiler); err != nil {
		return nil, err
	}

	s.logger.Info("build pass started",
		slog.String("dir", s.params.Dir),
		slog.Int("assets", comp.Len()),
	)

	stats, err := compiler.Run(ctx, comp)
	if err != nil {
		return nil, err
	}

	s.logger.Info("build pass finished",
		slog.Int("assets", stats.Assets),
		slog.Int("written", stats.Written),
		slog.Int("removed", stats.Removed),
		slog.Duration("duration", stats.Duration),
	)

	return stats, nil
}

// secretClientFactory resolves access keys from Secrets Manager before the
// object client is created.
func (s *Service) secretClientFactory() assetupload.ClientFactory {
	u := s.params.Upload

	return func(ctx context.Context, creds remote.Credentials) (remote.ObjectClient, error) {
		resolver, err := s.newResolver(ctx, u.SecretsRegion, u.SecretsEndpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to create secrets resolver: %w", err)
		}

		keys, err := resolver.Resolve(ctx, u.CredentialsSecret)
		if err != nil {
			return nil, err
		}
		keys.Apply(&creds)

		s.logger.Debug("credentials resolved", slog.String("secret", u.CredentialsSecret))

		return s.newClient(ctx, creds)
	}
}
