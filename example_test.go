package assetupload_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/input-output-hk/catalyst-forge-libs/assetupload"
	"github.com/input-output-hk/catalyst-forge-libs/assetupload/build"
	"github.com/input-output-hk/catalyst-forge-libs/assetupload/match"
	"github.com/input-output-hk/catalyst-forge-libs/assetupload/remote"
)

func ExamplePlugin() {
	ctx := context.Background()

	// Stand-in for a real backend that accepts every object.
	store := remote.ObjectClientFunc(func(_ context.Context, key string, data []byte) (*remote.PutResult, error) {
		return &remote.PutResult{Key: key, Size: int64(len(data))}, nil
	})

	plugin := assetupload.New(assetupload.Settings{
		Bucket:      "static-assets",
		Prefix:      "v1",
		Exclude:     match.MustRegexp(`\.css$`),
		Concurrency: 1,
	},
		assetupload.WithObjectClient(store),
		assetupload.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))),
	)

	compiler := build.NewCompiler()
	if err := plugin.Apply(ctx, compiler); err != nil {
		fmt.Println("apply:", err)
		return
	}

	comp := build.NewCompilation()
	comp.EmitAsset("a.js", build.RawSource("console.log(1)"))
	comp.EmitAsset("b.css", build.RawSource("body{}"))

	if _, err := compiler.Run(ctx, comp); err != nil {
		fmt.Println("build failed:", err)
		return
	}

	fmt.Println("left in output:", comp.Names())
	fmt.Println("uploaded:", comp.Deleted())
	// Output:
	// left in output: [b.css]
	// uploaded: [a.js]
}

func ExampleConfig_RemoteKey() {
	cfg := assetupload.NewConfig(assetupload.Settings{Prefix: "v1"})
	fmt.Println(cfg.RemoteKey("static/app.js"))
	// Output: v1/static/app.js
}
