package assetupload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/input-output-hk/catalyst-forge-libs/assetupload/build"
	remoteerrors "github.com/input-output-hk/catalyst-forge-libs/assetupload/errors"
	"github.com/input-output-hk/catalyst-forge-libs/assetupload/internal/logging"
	"github.com/input-output-hk/catalyst-forge-libs/assetupload/remote"
)

// HookName is the name the plugin registers its emit hook under.
const HookName = "assetupload"

// Plugin connects the uploader to a build.Compiler.
type Plugin struct {
	cfg     Config
	logger  *slog.Logger
	client  remote.ObjectClient
	factory ClientFactory
}

// New creates a Plugin from settings. Options are applied after the settings
// are normalized, so they take precedence.
func New(s Settings, opts ...Option) *Plugin {
	p := &Plugin{
		cfg:     NewConfig(s),
		logger:  slog.Default(),
		factory: NewObjectClient,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Config returns a copy of the effective configuration.
func (p *Plugin) Config() Config {
	return p.cfg
}

// Apply creates the object client, unless one was injected, and registers
// the emit hook on compiler. Call it once per compiler.
func (p *Plugin) Apply(ctx context.Context, compiler *build.Compiler) error {
	if p.client == nil {
		client, err := p.factory(ctx, p.cfg.Credentials)
		if err != nil {
			return fmt.Errorf("create %s client: %w", p.cfg.Credentials.Provider(), err)
		}
		p.client = client
	}

	compiler.OnEmit(HookName, p.emit)
	return nil
}

func (p *Plugin) emit(ctx context.Context, comp *build.Compilation, done build.Callback) {
	logger := logging.WithBackend(
		logging.WithCompilation(p.logger, comp.ID()),
		string(p.cfg.Credentials.Provider()),
		p.cfg.Credentials.Bucket,
	)

	go func() {
		var err error
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("upload panicked: %v", r)
			}
			done(p.settle(logger, err))
		}()

		err = p.run(ctx, comp, logger)
	}()
}

func (p *Plugin) run(ctx context.Context, comp *build.Compilation, logger *slog.Logger) error {
	assets := SelectEligible(comp.Assets(), p.cfg.Exclude)
	logger.Debug("assets selected",
		slog.Int("eligible", len(assets)),
		slog.Int("total", comp.Len()),
	)

	_, err := NewUploader(p.cfg, p.client, logger).UploadAll(ctx, comp, assets)
	return err
}

// settle logs a failed upload and decides what the build sees.
func (p *Plugin) settle(logger *slog.Logger, err error) error {
	if err == nil {
		return nil
	}

	first := err
	attrs := make([]any, 0, 6)

	var batch *BatchError
	if errors.As(err, &batch) {
		if errs := batch.Unwrap(); len(errs) > 0 {
			first = errs[0]
			attrs = append(attrs, slog.Int("failures", len(errs)))
		}
	}

	name, code, message := remoteerrors.Describe(first)
	attrs = append(attrs,
		slog.String("name", name),
		slog.String("code", code),
		slog.String("message", message),
	)

	var remoteErr *remoteerrors.Error
	if errors.As(first, &remoteErr) && remoteErr.Key != "" {
		attrs = append(attrs, slog.String("key", remoteErr.Key))
	}
	attrs = append(attrs, slog.Bool("ignored", p.cfg.IgnoreErrors))

	logger.Error("upload failed", attrs...)

	if p.cfg.IgnoreErrors {
		return nil
	}
	return err
}
