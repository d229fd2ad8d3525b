// Package config loads cmd/extradoc's on-disk settings: an optional YAML
// file holding the account to use plus a reconcile section in
// reconcile.Config's shape, grounded on the teacher's per-command
// flag-struct style. cmd/extradoc reads only the account from it; the
// reconcile options come from command-line flags alone.
package config

import (
	"fmt"
	"os"

	"github.com/extradoc/extradoc/internal/reconcile"
	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of extradoc's config file.
type File struct {
	Account   string           `yaml:"account"`
	Reconcile reconcile.Config `yaml:"reconcile"`
}

// Default returns a File with reconcile.DefaultConfig and no account set.
func Default() File {
	return File{Reconcile: reconcile.DefaultConfig()}
}

// Load reads and parses a YAML config file at path. A missing file is not
// an error: callers get Default() back, since every flag can also be
// supplied on the command line.
func Load(path string) (File, error) {
	f := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return f, nil
	}
	if err != nil {
		return File{}, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse config %q: %w", path, err)
	}
	return f, nil
}
