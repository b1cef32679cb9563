package config

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/avolokita/chunkweld/internal/fs"
)

// FileName is the optional per-tree configuration file, looked up in the
// root of the tree being processed.
const FileName = "chunkweld.toml"

const (
	DefaultThreshold = 3
	DefaultPartSize  = 64 << 20 // 64 MiB, comfortably under common repo file limits
)

// DefaultExtensions are the original-file extensions recognized as chunked.
var DefaultExtensions = []string{"data", "wasm"}

type Config struct {
	// Extensions lists original-file extensions whose .part<N> files are
	// picked up during discovery.
	Extensions []string `toml:"extensions"`

	// Threshold is the number of structural categories that must be
	// present for the tree to be reported as complete.
	Threshold int `toml:"threshold"`

	// PartSize is the split size in bytes used by the split command.
	PartSize int64 `toml:"part_size"`

	// KeepParts leaves part files in place after a successful reassembly.
	KeepParts bool `toml:"keep_parts"`
}

func Default() *Config {
	return &Config{
		Extensions: append([]string(nil), DefaultExtensions...),
		Threshold:  DefaultThreshold,
		PartSize:   DefaultPartSize,
	}
}

// Load returns defaults layered with the tree's chunkweld.toml, if present.
func Load(fsys fs.FS, root string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(root, FileName)
	if !fsys.Exists(path) {
		return cfg, nil
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if len(cfg.Extensions) == 0 {
		cfg.Extensions = append([]string(nil), DefaultExtensions...)
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}
	if cfg.PartSize <= 0 {
		cfg.PartSize = DefaultPartSize
	}

	return cfg, nil
}
