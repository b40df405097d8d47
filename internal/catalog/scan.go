package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"mistralchat/internal/common/fsutil"
)

// Scan lists *.gguf files in dir (non-recursive) and builds Models from the
// filenames. ID is the full filename; Path is absolute. A leading '~' in dir
// is expanded.
func Scan(dir string) ([]Model, error) {
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	if !fsutil.PathExists(abs) {
		return nil, fmt.Errorf("models directory does not exist: %s", abs)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var models []Model
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !fsutil.IsGGUF(name) {
			continue
		}
		models = append(models, Model{
			ID:    name,
			Name:  name,
			Path:  filepath.Join(abs, name),
			Quant: QuantFromName(name),
		})
	}
	return models, nil
}
