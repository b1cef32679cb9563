package config_test

import (
	"testing"

	"github.com/avolokita/chunkweld/internal/config"
	"github.com/avolokita/chunkweld/internal/fs"
)

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	m := fs.NewMemoryFS()

	cfg, err := config.Load(m, ".")
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Extensions) != 2 || cfg.Extensions[0] != "data" || cfg.Extensions[1] != "wasm" {
		t.Fatalf("unexpected default extensions: %v", cfg.Extensions)
	}
	if cfg.Threshold != config.DefaultThreshold {
		t.Fatalf("unexpected default threshold: %d", cfg.Threshold)
	}
	if cfg.PartSize != config.DefaultPartSize {
		t.Fatalf("unexpected default part size: %d", cfg.PartSize)
	}
	if cfg.KeepParts {
		t.Fatal("keep_parts must default to false")
	}
}

func TestLoadFromFile(t *testing.T) {
	m := fs.NewMemoryFS()
	data := []byte(`
extensions = ["data", "wasm", "bundle"]
threshold = 4
part_size = 1048576
keep_parts = true
`)
	if err := m.WriteFile(config.FileName, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(m, ".")
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Extensions) != 3 || cfg.Extensions[2] != "bundle" {
		t.Fatalf("unexpected extensions: %v", cfg.Extensions)
	}
	if cfg.Threshold != 4 {
		t.Fatalf("unexpected threshold: %d", cfg.Threshold)
	}
	if cfg.PartSize != 1048576 {
		t.Fatalf("unexpected part size: %d", cfg.PartSize)
	}
	if !cfg.KeepParts {
		t.Fatal("expected keep_parts true")
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	m := fs.NewMemoryFS()
	if err := m.WriteFile(config.FileName, []byte(`threshold = 5`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(m, ".")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Threshold != 5 {
		t.Fatalf("unexpected threshold: %d", cfg.Threshold)
	}
	if len(cfg.Extensions) != 2 {
		t.Fatalf("extensions must keep defaults, got %v", cfg.Extensions)
	}
}

func TestLoadSanitizesInvalidValues(t *testing.T) {
	m := fs.NewMemoryFS()
	data := []byte(`
extensions = []
threshold = -1
part_size = 0
`)
	if err := m.WriteFile(config.FileName, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(m, ".")
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Extensions) != 2 {
		t.Fatalf("empty extensions must fall back to defaults, got %v", cfg.Extensions)
	}
	if cfg.Threshold != config.DefaultThreshold || cfg.PartSize != config.DefaultPartSize {
		t.Fatalf("invalid values must fall back to defaults, got %+v", cfg)
	}
}

func TestLoadBadTOML(t *testing.T) {
	m := fs.NewMemoryFS()
	if err := m.WriteFile(config.FileName, []byte(`threshold = [not toml`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := config.Load(m, "."); err == nil {
		t.Fatal("expected parse error")
	}
}
