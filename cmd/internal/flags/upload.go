package flags

import (
	"github.com/input-output-hk/catalyst-forge-libs/assetupload/cmd/internal/models"
	"github.com/spf13/pflag"
)

// Flag names shared with the config file merge.
const (
	FlagAccessKeyID       = "access-key-id"
	FlagAccessKeySecret   = "access-key-secret"
	FlagBucket            = "bucket"
	FlagRegion            = "region"
	FlagBackend           = "backend"
	FlagEndpoint          = "endpoint"
	FlagForcePathStyle    = "force-path-style"
	FlagKeyFile           = "key-file"
	FlagPrefix            = "prefix"
	FlagExclude           = "exclude"
	FlagIgnoreError       = "ignore-error"
	FlagEnableLog         = "enable-log"
	FlagDeleteMode        = "delete-mode"
	FlagConcurrency       = "concurrency"
	FlagCredentialsSecret = "credentials-secret"
	FlagSecretsRegion     = "secrets-region"
	FlagSecretsEndpoint   = "secrets-endpoint"
)

type Upload struct {
	models.Upload
}

func NewUpload() *Upload {
	return &Upload{}
}

func (f *Upload) NewFlagSet() *pflag.FlagSet {
	flagSet := &pflag.FlagSet{}

	flagSet.StringVar(&f.AccessKeyID, FlagAccessKeyID,
		"",
		"Access key id. For azblob this is the storage account name.")
	flagSet.StringVar(&f.AccessKeySecret, FlagAccessKeySecret,
		"",
		"Access key secret. For azblob this is the storage account key.")
	flagSet.StringVar(&f.Bucket, FlagBucket,
		"",
		"Bucket (or Azure container) the assets are uploaded to.")
	flagSet.StringVar(&f.Region, FlagRegion,
		"",
		"Region of the bucket, e.g. us-east-1 or oss-cn-hangzhou.")
	flagSet.StringVar(&f.Backend, FlagBackend,
		"s3",
		"Storage backend: s3, minio, azblob or gcs.")
	flagSet.StringVar(&f.Endpoint, FlagEndpoint,
		"",
		"Alternate service endpoint, e.g. a MinIO server or an emulator.")
	flagSet.BoolVar(&f.ForcePathStyle, FlagForcePathStyle,
		false,
		"Address buckets as path segments instead of virtual hosts.")
	flagSet.StringVar(&f.KeyFile, FlagKeyFile,
		"",
		"Service account key file for the gcs backend.")
	flagSet.StringVar(&f.Prefix, FlagPrefix,
		"",
		"Prefix prepended to every object key. A trailing / is added when missing.")
	flagSet.StringArrayVar(&f.Exclude, FlagExclude,
		nil,
		"Skip assets whose name matches. Accepts a regular expression, /regexp/,\n"+
			"regexp:<expr>, glob:<pattern> or literal:<text>. Can be repeated.")
	flagSet.BoolVar(&f.IgnoreError, FlagIgnoreError,
		false,
		"Log upload failures instead of failing the build.")
	flagSet.BoolVar(&f.EnableLog, FlagEnableLog,
		true,
		"Log upload progress.")
	flagSet.BoolVar(&f.DeleteMode, FlagDeleteMode,
		true,
		"Remove uploaded files from the output directory.")
	flagSet.IntVar(&f.Concurrency, FlagConcurrency,
		0,
		"Maximum number of uploads in flight. 0 uploads everything at once.")
	flagSet.StringVar(&f.CredentialsSecret, FlagCredentialsSecret,
		"",
		"AWS Secrets Manager secret holding {\"accessKeyId\", \"accessKeySecret\"}.")
	flagSet.StringVar(&f.SecretsRegion, FlagSecretsRegion,
		"",
		"Region of the credentials secret. Defaults to the AWS configuration.")
	flagSet.StringVar(&f.SecretsEndpoint, FlagSecretsEndpoint,
		"",
		"Alternate Secrets Manager endpoint.")

	return flagSet
}

func (f *Upload) GetUpload() *models.Upload {
	return &f.Upload
}
