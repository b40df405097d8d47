package catalog

import (
	"fmt"
	"path/filepath"

	"mistralchat/internal/common/fsutil"
)

// ResolveFile builds a Model straight from an explicit GGUF path, bypassing
// the registry. Used for the --model-file override.
func ResolveFile(path string) (Model, error) {
	expanded, err := fsutil.ExpandHome(path)
	if err != nil {
		return Model{}, err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return Model{}, fmt.Errorf("abs path: %w", err)
	}
	if !fsutil.IsRegularFile(abs) {
		return Model{}, fmt.Errorf("model file not found: %s", abs)
	}
	name := filepath.Base(abs)
	return Model{ID: name, Name: name, Path: abs, Quant: QuantFromName(name)}, nil
}

// Resolve turns a variant identifier into a loadable Model by scanning dir.
// When several files match the variant, the first in directory order wins.
func Resolve(which, dir string) (Model, error) {
	v, ok := Lookup(which)
	if !ok {
		return Model{}, ErrUnknownVariant(which)
	}
	models, err := Scan(dir)
	if err != nil {
		return Model{}, err
	}
	for _, m := range models {
		if v.Matches(m.ID) {
			m.Name = v.Name
			m.Family = v.Family
			return m, nil
		}
	}
	available := make([]string, 0, len(models))
	for _, m := range models {
		available = append(available, m.ID)
	}
	return Model{}, ErrModelNotFound(which, dir, available)
}
