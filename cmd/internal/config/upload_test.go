package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/assetupload/cmd/internal/flags"
	"github.com/input-output-hk/catalyst-forge-libs/assetupload/cmd/internal/models"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "assetupload.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
accessKeyId: AK
accessKeySecret: SK
bucket: assets
region: oss-cn-hangzhou
backend: minio
prefix: static
exclude:
  - \.map$
  - glob:**/*.html
ignoreError: true
enableLog: false
deleteMode: false
concurrency: 4
`)

	file, err := Load(path)
	require.NoError(t, err)

	require.NotNil(t, file.Bucket)
	assert.Equal(t, "assets", *file.Bucket)
	assert.Equal(t, []string{`\.map$`, "glob:**/*.html"}, file.Exclude)
	require.NotNil(t, file.DeleteMode)
	assert.False(t, *file.DeleteMode)
	require.NotNil(t, file.Concurrency)
	assert.Equal(t, 4, *file.Concurrency)
	assert.Nil(t, file.Endpoint)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open config file")
	})

	t.Run("unknown key", func(t *testing.T) {
		path := writeConfig(t, "bucket: assets\nremoveMode: true\n")

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode config file")
	})
}

func TestFile_Merge(t *testing.T) {
	path := writeConfig(t, `
bucket: from-file
region: us-west-2
prefix: file-prefix
exclude: [\.map$]
deleteMode: false
`)
	file, err := Load(path)
	require.NoError(t, err)

	upload := &models.Upload{
		Bucket:     "from-flag",
		Region:     "us-east-1",
		Backend:    "s3",
		EnableLog:  true,
		DeleteMode: true,
		Exclude:    []string{"literal:.txt"},
	}

	changed := map[string]bool{
		flags.FlagBucket:  true,
		flags.FlagExclude: true,
	}
	file.Merge(upload, func(name string) bool { return changed[name] })

	assert.Equal(t, "from-flag", upload.Bucket, "explicit flag wins")
	assert.Equal(t, []string{"literal:.txt"}, upload.Exclude, "explicit flag wins")
	assert.Equal(t, "us-west-2", upload.Region, "file overrides default")
	assert.Equal(t, "file-prefix", upload.Prefix)
	assert.False(t, upload.DeleteMode)
	assert.True(t, upload.EnableLog, "absent key keeps default")
	assert.Equal(t, "s3", upload.Backend, "absent key keeps default")
}
