package assetupload

import (
	"context"
	"log/slog"

	"github.com/input-output-hk/catalyst-forge-libs/assetupload/match"
	"github.com/input-output-hk/catalyst-forge-libs/assetupload/remote"
)

// ClientFactory builds the object client when the plugin is applied.
type ClientFactory func(ctx context.Context, creds remote.Credentials) (remote.ObjectClient, error)

// Option configures a Plugin beyond its Settings.
type Option func(*Plugin)

// WithPrefix overrides the remote key prefix.
func WithPrefix(prefix string) Option {
	return func(p *Plugin) {
		p.cfg.Prefix = NormalizePrefix(prefix)
	}
}

// WithExclude overrides the exclusion rule. A nil matcher excludes nothing.
func WithExclude(m match.Matcher) Option {
	return func(p *Plugin) {
		if m == nil {
			m = match.Nothing()
		}
		p.cfg.Exclude = m
	}
}

// WithConcurrency caps the number of uploads in flight. Zero or less means
// no cap.
func WithConcurrency(n int) Option {
	return func(p *Plugin) {
		if n < 0 {
			n = 0
		}
		p.cfg.Concurrency = n
	}
}

// WithLogger sets the logger for progress and error lines.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Plugin) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithObjectClient injects a ready client; the factory is not called.
func WithObjectClient(client remote.ObjectClient) Option {
	return func(p *Plugin) {
		p.client = client
	}
}

// WithClientFactory replaces NewObjectClient.
func WithClientFactory(factory ClientFactory) Option {
	return func(p *Plugin) {
		if factory != nil {
			p.factory = factory
		}
	}
}
