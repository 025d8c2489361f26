package build

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// LoadDir creates a compilation from the files below root in fsys.
// Asset names are slash-separated paths relative to root; every asset
// remembers where it was read from.
func LoadDir(fsys billy.Filesystem, root string) (*Compilation, error) {
	comp := NewCompilation()

	err := util.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("resolve %q: %w", path, err)
		}

		data, err := util.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("read %q: %w", path, err)
		}

		comp.EmitAsset(filepath.ToSlash(rel), &FileSource{Path: path, Data: data})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load output directory %q: %w", root, err)
	}

	return comp, nil
}
