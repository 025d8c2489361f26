// Package assetupload uploads the assets of a build pass to object storage.
//
// A Plugin hooks into the emit step of a build.Compiler. When the step runs it
// selects the assets that are not excluded, stores each one under
// prefix+name in the configured bucket and, in delete mode, drops every
// uploaded asset from the compilation so it is not also written locally.
//
// Example usage:
//
//	plugin := assetupload.New(assetupload.Settings{
//	    AccessKeyID:     os.Getenv("OSS_KEY"),
//	    AccessKeySecret: os.Getenv("OSS_SECRET"),
//	    Bucket:          "static-assets",
//	    Region:          "oss-cn-hangzhou",
//	    Backend:         remote.BackendMinio,
//	    Prefix:          "v1",
//	    Exclude:         match.MustRegexp(`\.html$`),
//	})
//
//	compiler := build.NewCompiler(build.WithOutput(osfs.New("."), "dist"))
//	if err := plugin.Apply(ctx, compiler); err != nil {
//	    return err
//	}
//	stats, err := compiler.Run(ctx, compilation)
//
// Upload failures fail the build pass unless IgnoreError is set, in which
// case they are only logged.
package assetupload
