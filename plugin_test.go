package assetupload

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/assetupload/build"
	remoteerrors "github.com/input-output-hk/catalyst-forge-libs/assetupload/errors"
	"github.com/input-output-hk/catalyst-forge-libs/assetupload/internal/testutil"
	"github.com/input-output-hk/catalyst-forge-libs/assetupload/match"
	"github.com/input-output-hk/catalyst-forge-libs/assetupload/remote"
)

func scenarioCompilation() *build.Compilation {
	comp := build.NewCompilation()
	comp.EmitAsset("a.js", build.RawSource("console.log('a')"))
	comp.EmitAsset("b.css", build.RawSource("body{color:red}"))
	return comp
}

func applyPlugin(t *testing.T, p *Plugin, opts ...build.Option) *build.Compiler {
	t.Helper()
	compiler := build.NewCompiler(opts...)
	require.NoError(t, p.Apply(context.Background(), compiler))
	return compiler
}

func TestPlugin_ExcludeAndDelete(t *testing.T) {
	fs := memfs.New()
	client := &testutil.MockObjectClient{}
	logger, _ := newTestLogger()

	p := New(Settings{
		Bucket:     "assets",
		Prefix:     "v1/",
		Exclude:    match.MustRegexp(`\.css$`),
		DeleteMode: Bool(true),
	}, WithObjectClient(client), WithLogger(logger))

	comp := scenarioCompilation()
	stats, err := applyPlugin(t, p, build.WithOutput(fs, "dist")).Run(context.Background(), comp)
	require.NoError(t, err)

	assert.Equal(t, []string{"v1/a.js"}, client.Keys())
	assert.Equal(t, []byte("console.log('a')"), client.Puts()[0].Data)
	assert.Equal(t, []string{"b.css"}, comp.Names())
	assert.Equal(t, []string{"a.js"}, comp.Deleted())

	assert.Equal(t, 1, stats.Written)
	_, err = fs.Stat("dist/a.js")
	assert.Error(t, err, "uploaded asset is not written locally")
	data, err := util.ReadFile(fs, "dist/b.css")
	require.NoError(t, err)
	assert.Equal(t, "body{color:red}", string(data))
}

func TestPlugin_KeepMode(t *testing.T) {
	fs := memfs.New()
	client := &testutil.MockObjectClient{}
	logger, _ := newTestLogger()

	p := New(Settings{Bucket: "assets", DeleteMode: Bool(false)}, WithObjectClient(client), WithLogger(logger))

	comp := scenarioCompilation()
	stats, err := applyPlugin(t, p, build.WithOutput(fs, "dist")).Run(context.Background(), comp)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.js", "b.css"}, client.Keys())
	assert.Equal(t, []string{"a.js", "b.css"}, comp.Names())
	assert.Equal(t, 2, stats.Written)
}

func TestPlugin_ZeroEligibleAssets(t *testing.T) {
	client := &testutil.MockObjectClient{}
	logger, buf := newTestLogger()

	p := New(Settings{Exclude: match.MustRegexp(`.*`)}, WithObjectClient(client), WithLogger(logger))

	comp := scenarioCompilation()
	_, err := applyPlugin(t, p).Run(context.Background(), comp)
	require.NoError(t, err)
	assert.Zero(t, client.Calls())
	assert.Equal(t, []string{"a.js", "b.css"}, comp.Names())
	assert.NotContains(t, buf.String(), "upload started")
}

func TestPlugin_FailingPut(t *testing.T) {
	denied := remoteerrors.NewObjectError("put", "assets", "v1/a.js", errors.New("Access Denied")).
		WithProvider("minio").
		WithCode("AccessDenied")

	tests := []struct {
		name        string
		ignoreError bool
	}{
		{name: "fails the build", ignoreError: false},
		{name: "ignored", ignoreError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &testutil.MockObjectClient{
				PutFunc: func(_ context.Context, key string, data []byte) (*remote.PutResult, error) {
					if key == "v1/a.js" {
						return nil, denied
					}
					return &remote.PutResult{Key: key, Size: int64(len(data))}, nil
				},
			}
			logger, buf := newTestLogger()

			p := New(Settings{
				Bucket:      "assets",
				Prefix:      "v1",
				IgnoreError: tt.ignoreError,
			}, WithObjectClient(client), WithLogger(logger))

			comp := scenarioCompilation()
			_, err := applyPlugin(t, p).Run(context.Background(), comp)

			if tt.ignoreError {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.ErrorIs(t, err, denied)
				assert.True(t, remoteerrors.IsAccessDenied(err))
				assert.Contains(t, err.Error(), "emit hook "+HookName)
			}

			out := buf.String()
			assert.Equal(t, 1, strings.Count(out, `msg="upload failed"`))
			assert.Contains(t, out, "name=minio.put")
			assert.Contains(t, out, "code=AccessDenied")
			assert.Contains(t, out, `message="Access Denied"`)
			assert.Contains(t, out, "key=v1/a.js")

			assert.Equal(t, 2, client.Calls())
			assert.Equal(t, []string{"a.js"}, comp.Names(), "only the failed asset remains")
		})
	}
}

func TestPlugin_MultipleFailuresLogged(t *testing.T) {
	client := &testutil.MockObjectClient{
		PutFunc: func(context.Context, string, []byte) (*remote.PutResult, error) {
			return nil, errors.New("network unreachable")
		},
	}
	logger, buf := newTestLogger()

	p := New(Settings{}, WithObjectClient(client), WithLogger(logger))
	_, err := applyPlugin(t, p).Run(context.Background(), scenarioCompilation())
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "failures=2")
	assert.Contains(t, out, `message="network unreachable"`)
}

func TestPlugin_MultipleFailuresClassified(t *testing.T) {
	client := &testutil.MockObjectClient{
		PutFunc: func(_ context.Context, key string, _ []byte) (*remote.PutResult, error) {
			return nil, remoteerrors.NewObjectError("put", "assets", key, errors.New("The specified bucket does not exist")).
				WithProvider("s3").
				WithCode("NoSuchBucket")
		},
	}
	logger, buf := newTestLogger()

	p := New(Settings{Bucket: "assets"}, WithObjectClient(client), WithLogger(logger))
	_, err := applyPlugin(t, p).Run(context.Background(), scenarioCompilation())
	require.Error(t, err)

	assert.True(t, remoteerrors.IsBucketNotFound(err))
	assert.False(t, remoteerrors.IsAccessDenied(err))
	assert.Contains(t, buf.String(), "failures=2")
	assert.Contains(t, buf.String(), "code=NoSuchBucket")
}

func TestPlugin_PanicBecomesError(t *testing.T) {
	client := &testutil.MockObjectClient{
		PutFunc: func(context.Context, string, []byte) (*remote.PutResult, error) {
			panic("sdk exploded")
		},
	}
	logger, _ := newTestLogger()

	p := New(Settings{}, WithObjectClient(client), WithLogger(logger), WithConcurrency(1))
	comp := build.NewCompilation()
	comp.EmitAsset("a.js", build.RawSource("a"))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := applyPlugin(t, p).Run(ctx, comp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upload a.js panicked: sdk exploded")
}

func TestPlugin_CallbackInvokedOnce(t *testing.T) {
	tests := []struct {
		name string
		put  func(context.Context, string, []byte) (*remote.PutResult, error)
	}{
		{name: "success", put: nil},
		{name: "failure", put: func(context.Context, string, []byte) (*remote.PutResult, error) {
			return nil, errors.New("boom")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := newTestLogger()
			p := New(Settings{}, WithObjectClient(&testutil.MockObjectClient{PutFunc: tt.put}), WithLogger(logger))

			var calls atomic.Int32
			done := make(chan struct{}, 2)
			p.emit(context.Background(), scenarioCompilation(), func(error) {
				calls.Add(1)
				done <- struct{}{}
			})

			select {
			case <-done:
			case <-time.After(5 * time.Second):
				t.Fatal("callback was never invoked")
			}
			time.Sleep(20 * time.Millisecond)
			assert.Equal(t, int32(1), calls.Load())
		})
	}
}

func TestPlugin_ApplyBuildsClientOnce(t *testing.T) {
	var factoryCalls int
	var gotCreds remote.Credentials
	client := &testutil.MockObjectClient{}

	p := New(Settings{
		AccessKeyID:     "AK",
		AccessKeySecret: "SK",
		Bucket:          "assets",
		Region:          "oss-cn-hangzhou",
		Backend:         remote.BackendMinio,
	}, WithClientFactory(func(_ context.Context, creds remote.Credentials) (remote.ObjectClient, error) {
		factoryCalls++
		gotCreds = creds
		return client, nil
	}), WithLogger(newDiscardLogger()))

	compiler := applyPlugin(t, p)
	assert.Equal(t, []string{HookName}, compiler.Hooks())
	assert.Equal(t, 1, factoryCalls)
	assert.Equal(t, "AK", gotCreds.AccessKeyID)
	assert.Equal(t, remote.BackendMinio, gotCreds.Backend)

	for i := 0; i < 2; i++ {
		_, err := compiler.Run(context.Background(), scenarioCompilation())
		require.NoError(t, err)
	}
	assert.Equal(t, 1, factoryCalls)
	assert.Equal(t, 4, client.Calls())
}

func TestPlugin_ApplyFactoryError(t *testing.T) {
	boom := errors.New("bad endpoint")
	p := New(Settings{Backend: remote.BackendGCS}, WithClientFactory(
		func(context.Context, remote.Credentials) (remote.ObjectClient, error) {
			return nil, boom
		},
	))

	compiler := build.NewCompiler()
	err := p.Apply(context.Background(), compiler)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "create gcs client")
	assert.Empty(t, compiler.Hooks())
}

func TestPlugin_OptionsOverrideSettings(t *testing.T) {
	p := New(Settings{Prefix: "v1", Exclude: match.Literal(".map"), Concurrency: 2},
		WithPrefix("v2"),
		WithExclude(nil),
		WithConcurrency(-1),
	)

	cfg := p.Config()
	assert.Equal(t, "v2/", cfg.Prefix)
	assert.False(t, cfg.Exclude.Match("a.js.map"))
	assert.Zero(t, cfg.Concurrency)
}
