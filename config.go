package assetupload

import (
	"strings"

	"github.com/input-output-hk/catalyst-forge-libs/assetupload/match"
	"github.com/input-output-hk/catalyst-forge-libs/assetupload/remote"
)

// Settings is the user supplied configuration. Zero values select defaults;
// EnableLog and DeleteMode are pointers so that only an explicit false turns
// them off.
type Settings struct {
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	Region          string

	// Backend selects the storage provider, s3 when empty.
	Backend remote.Backend
	// Endpoint overrides the provider's service URL.
	Endpoint string
	// ForcePathStyle addresses buckets as path segments.
	ForcePathStyle bool
	// KeyFile is the service account file for the gcs backend.
	KeyFile string

	// Prefix is prepended to every remote key.
	Prefix string
	// Exclude skips matching asset names. Nil excludes nothing.
	Exclude match.Matcher
	// IgnoreError logs upload failures instead of failing the build.
	IgnoreError bool
	// EnableLog turns progress logging on or off. Default on.
	EnableLog *bool
	// DeleteMode removes uploaded assets from the build output. Default on.
	DeleteMode *bool
	// Concurrency caps in-flight uploads. Zero uploads everything at once.
	Concurrency int
}

// Config is the normalized form of Settings. It is built once and only ever
// copied afterwards.
type Config struct {
	Credentials  remote.Credentials
	Prefix       string
	Exclude      match.Matcher
	IgnoreErrors bool
	EnableLog    bool
	DeleteMode   bool
	Concurrency  int
}

// NewConfig normalizes s. It never fails; bad credentials surface on the
// first upload.
func NewConfig(s Settings) Config {
	exclude := s.Exclude
	if exclude == nil {
		exclude = match.Nothing()
	}

	concurrency := s.Concurrency
	if concurrency < 0 {
		concurrency = 0
	}

	return Config{
		Credentials: remote.Credentials{
			AccessKeyID:     s.AccessKeyID,
			AccessKeySecret: s.AccessKeySecret,
			Bucket:          s.Bucket,
			Region:          s.Region,
			Backend:         s.Backend,
			Endpoint:        s.Endpoint,
			ForcePathStyle:  s.ForcePathStyle,
			KeyFile:         s.KeyFile,
		},
		Prefix:       NormalizePrefix(s.Prefix),
		Exclude:      exclude,
		IgnoreErrors: s.IgnoreError,
		EnableLog:    s.EnableLog == nil || *s.EnableLog,
		DeleteMode:   s.DeleteMode == nil || *s.DeleteMode,
		Concurrency:  concurrency,
	}
}

// NormalizePrefix appends a trailing slash to a non-empty prefix that lacks
// one. An empty prefix stays empty so keys are not rooted at "/".
func NormalizePrefix(prefix string) string {
	if prefix == "" || strings.HasSuffix(prefix, "/") {
		return prefix
	}
	return prefix + "/"
}

// RemoteKey returns the object key for an asset name.
func (c Config) RemoteKey(name string) string {
	return c.Prefix + name
}

// Bool returns a pointer to v, for the optional Settings fields.
func Bool(v bool) *bool {
	return &v
}
