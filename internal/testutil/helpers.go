package testutil

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/uuid"
)

// GenerateTestBucketName returns a DNS compliant bucket name unique to this run.
func GenerateTestBucketName(prefix string) string {
	name := fmt.Sprintf("%s-%s", prefix, uuid.NewString()[:8])
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "_", "-")
	if len(name) > 63 {
		name = name[:63]
	}
	return name
}

// WriteOutputDir writes files (name to content) below root on fs, the way a
// bundler leaves its output directory.
func WriteOutputDir(t *testing.T, fs billy.Filesystem, root string, files map[string]string) {
	t.Helper()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := util.WriteFile(fs, fs.Join(root, name), []byte(files[name]), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
}
