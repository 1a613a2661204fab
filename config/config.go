// Package config loads the YAML configuration describing which
// backing store a trie runs against.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sterliakov/merkle-patricia-trie/log"
)

// Backend selects the KeyValStore implementation a trie is opened
// against.
type Backend string

const (
	// BackendMemory keeps all nodes in an in-process map; nothing
	// persists across runs.
	BackendMemory Backend = "memory"

	// BackendBadger persists nodes to an embedded Badger database at
	// the configured path.
	BackendBadger Backend = "badger"
)

// StoreConfig describes the backing store to open.
type StoreConfig struct {
	Backend Backend
	Path    string
}

// raw mirrors the on-disk YAML shape.
type raw struct {
	Store struct {
		Backend string `yaml:"backend"`
		Path    string `yaml:"path"`
	} `yaml:"store"`
}

// Loader reads the store configuration file.
type Loader struct {
	log log.Logger
}

// NewLoader creates a Loader with the given logging context attached.
func NewLoader(logger log.Logger) *Loader {
	return &Loader{log: logger.With("component", "config-loader")}
}

// Load reads and validates the config file at path.
func (l *Loader) Load(path string) (*StoreConfig, error) {
	l.log.Info("load config", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading file: %w", err)
	}

	var r raw
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("config: parsing yaml: %w", err)
	}

	return l.parse(&r)
}

func (l *Loader) parse(r *raw) (*StoreConfig, error) {
	backend := Backend(r.Store.Backend)
	switch backend {
	case BackendMemory:
		return &StoreConfig{Backend: BackendMemory}, nil
	case BackendBadger:
		if r.Store.Path == "" {
			return nil, fmt.Errorf("config: badger backend requires store.path")
		}
		return &StoreConfig{Backend: BackendBadger, Path: r.Store.Path}, nil
	case "":
		return nil, fmt.Errorf("config: store.backend is required")
	default:
		return nil, fmt.Errorf("config: unknown store backend %q", r.Store.Backend)
	}
}
