package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/input-output-hk/catalyst-forge-libs/assetupload/cmd/internal/app"
	"github.com/input-output-hk/catalyst-forge-libs/assetupload/cmd/internal/config"
	"github.com/input-output-hk/catalyst-forge-libs/assetupload/cmd/internal/flags"
)

const VersionDev = "dev"

// Cmd represents the base command when called without any subcommands
type Cmd struct {
	// Version params.
	appVersion string
	commitHash string

	flagsApp    *flags.App
	flagsUpload *flags.Upload
}

func NewCmd(appVersion, commitHash string) *cobra.Command {
	c := &Cmd{
		appVersion: appVersion,
		commitHash: commitHash,

		flagsApp:    flags.NewApp(),
		flagsUpload: flags.NewUpload(),
	}

	rootCmd := &cobra.Command{
		Use:   "assetupload [flags] <output-dir>",
		Short: "Upload build output to object storage",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.run,
	}

	// Disable sorting
	rootCmd.Flags().SortFlags = false
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	appFlagSet := c.flagsApp.NewFlagSet()
	uploadFlagSet := c.flagsUpload.NewFlagSet()

	rootCmd.Flags().AddFlagSet(appFlagSet)
	rootCmd.Flags().AddFlagSet(uploadFlagSet)

	// Beautify help and usage.
	helpFunc := func(w io.Writer) {
		fmt.Fprintln(w, "Uploads every file of a build output directory to a bucket,")
		fmt.Fprintln(w, "then removes the uploaded files from the directory unless --delete-mode=false.")
		fmt.Fprintln(w, "\nUsage:")
		fmt.Fprintln(w, "  assetupload [flags] <output-dir>")

		fmt.Fprintln(w, "\nGeneral Flags:")
		fmt.Fprint(w, appFlagSet.FlagUsages())

		fmt.Fprintln(w, "\nUpload Flags:\n"+
			"Credentials and bucket are passed to the selected backend unexamined.\n"+
			"For oss-* regions the minio backend defaults to the Alibaba Cloud OSS endpoint.\n"+
			"Every flag can also be set in the --config file using its camelCase name.")
		fmt.Fprint(w, uploadFlagSet.FlagUsages())
	}

	rootCmd.SetUsageFunc(func(cmd *cobra.Command) error {
		helpFunc(cmd.OutOrStdout())
		return nil
	})
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		helpFunc(cmd.OutOrStdout())
	})

	return rootCmd
}

func (c *Cmd) run(cmd *cobra.Command, args []string) error {
	// Show version.
	if c.flagsApp.Version {
		c.printVersion(cmd.OutOrStdout())

		return nil
	}

	// Without an output directory there is nothing to do, show help.
	if len(args) == 0 {
		return cmd.Help()
	}

	appParams := c.flagsApp.GetApp()
	upload := c.flagsUpload.GetUpload()

	if appParams.Config != "" {
		file, err := config.Load(appParams.Config)
		if err != nil {
			return err
		}

		file.Merge(upload, func(name string) bool {
			return cmd.Flags().Changed(name)
		})
	}

	// Init logger.
	logger, err := app.NewLogger(cmd.OutOrStdout(), appParams.LogLevel, appParams.Verbose, appParams.LogJSON)
	if err != nil {
		return err
	}

	svc, err := app.NewService(&app.Params{
		Dir:    args[0],
		Upload: upload,
	}, logger)
	if err != nil {
		return err
	}

	if _, err = svc.Run(cmd.Context()); err != nil {
		logger.Error("build failed", slog.Any("error", err))

		return err
	}

	return nil
}

func (c *Cmd) printVersion(w io.Writer) {
	version := c.appVersion
	if c.appVersion == VersionDev {
		version += " (" + c.commitHash + ")"
	}

	fmt.Fprintf(w, "version: %s\n", version)
}
