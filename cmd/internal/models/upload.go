package models

// Upload holds everything needed to upload one output directory.
type Upload struct {
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	Region          string
	Backend         string
	Endpoint        string
	ForcePathStyle  bool
	KeyFile         string

	Prefix      string
	Exclude     []string
	IgnoreError bool
	EnableLog   bool
	DeleteMode  bool
	Concurrency int

	// CredentialsSecret names an AWS Secrets Manager secret holding the access keys.
	CredentialsSecret string
	SecretsRegion     string
	SecretsEndpoint   string
}
