// Package config loads the upload settings file and merges it with the
// command line.
package config

import (
	"github.com/input-output-hk/catalyst-forge-libs/assetupload/cmd/internal/flags"
	"github.com/input-output-hk/catalyst-forge-libs/assetupload/cmd/internal/models"
)

// File is the YAML settings file. Keys follow the plugin's setting names.
type File struct {
	AccessKeyID     *string `yaml:"accessKeyId"`
	AccessKeySecret *string `yaml:"accessKeySecret"`
	Bucket          *string `yaml:"bucket"`
	Region          *string `yaml:"region"`
	Backend         *string `yaml:"backend"`
	Endpoint        *string `yaml:"endpoint"`
	ForcePathStyle  *bool   `yaml:"forcePathStyle"`
	KeyFile         *string `yaml:"keyFile"`

	Prefix      *string  `yaml:"prefix"`
	Exclude     []string `yaml:"exclude"`
	IgnoreError *bool    `yaml:"ignoreError"`
	EnableLog   *bool    `yaml:"enableLog"`
	DeleteMode  *bool    `yaml:"deleteMode"`
	Concurrency *int     `yaml:"concurrency"`

	CredentialsSecret *string `yaml:"credentialsSecret"`
	SecretsRegion     *string `yaml:"secretsRegion"`
	SecretsEndpoint   *string `yaml:"secretsEndpoint"`
}

// Load reads the settings file at filename.
func Load(filename string) (*File, error) {
	var file File
	if err := decodeFromFile(filename, &file); err != nil {
		return nil, err
	}

	return &file, nil
}

// Merge copies every value present in f into upload, except for fields whose
// flag was set on the command line. changed reports whether a flag was set.
func (f *File) Merge(upload *models.Upload, changed func(name string) bool) {
	fromFile := func(name string) bool {
		return !changed(name)
	}

	mergeValue(&upload.AccessKeyID, f.AccessKeyID, fromFile(flags.FlagAccessKeyID))
	mergeValue(&upload.AccessKeySecret, f.AccessKeySecret, fromFile(flags.FlagAccessKeySecret))
	mergeValue(&upload.Bucket, f.Bucket, fromFile(flags.FlagBucket))
	mergeValue(&upload.Region, f.Region, fromFile(flags.FlagRegion))
	mergeValue(&upload.Backend, f.Backend, fromFile(flags.FlagBackend))
	mergeValue(&upload.Endpoint, f.Endpoint, fromFile(flags.FlagEndpoint))
	mergeValue(&upload.ForcePathStyle, f.ForcePathStyle, fromFile(flags.FlagForcePathStyle))
	mergeValue(&upload.KeyFile, f.KeyFile, fromFile(flags.FlagKeyFile))
	mergeValue(&upload.Prefix, f.Prefix, fromFile(flags.FlagPrefix))
	mergeValue(&upload.IgnoreError, f.IgnoreError, fromFile(flags.FlagIgnoreError))
	mergeValue(&upload.EnableLog, f.EnableLog, fromFile(flags.FlagEnableLog))
	mergeValue(&upload.DeleteMode, f.DeleteMode, fromFile(flags.FlagDeleteMode))
	mergeValue(&upload.Concurrency, f.Concurrency, fromFile(flags.FlagConcurrency))
	mergeValue(&upload.CredentialsSecret, f.CredentialsSecret, fromFile(flags.FlagCredentialsSecret))
	mergeValue(&upload.SecretsRegion, f.SecretsRegion, fromFile(flags.FlagSecretsRegion))
	mergeValue(&upload.SecretsEndpoint, f.SecretsEndpoint, fromFile(flags.FlagSecretsEndpoint))

	if f.Exclude != nil && fromFile(flags.FlagExclude) {
		upload.Exclude = append([]string(nil), f.Exclude...)
	}
}

func mergeValue[T any](dst *T, src *T, apply bool) {
	if src != nil && apply {
		*dst = *src
	}
}
