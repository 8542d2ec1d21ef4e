package core

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Setenv("ULCONFIG_FORMAT", "")
	if got := DefaultConfig().Format; got != "cargo" {
		t.Errorf("DefaultConfig().Format = %q, want cargo", got)
	}

	t.Setenv("ULCONFIG_FORMAT", "cgo")
	if got := DefaultConfig().Format; got != "cgo" {
		t.Errorf("DefaultConfig().Format with ULCONFIG_FORMAT = %q, want cgo", got)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("ULCONFIG_FORMAT", "")
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Format != "cargo" || cfg.NixStore || len(cfg.ExtraDirs) != 0 {
		t.Errorf("LoadConfig() of missing file = %+v, want defaults", cfg)
	}
}

func TestSaveLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := &Config{
		Format:    "gofile",
		TargetOS:  "windows",
		Manifest:  "/etc/ulconfig/skia.toml",
		ExtraDirs: []string{"/opt/sdk/lib", "vendor/lib"},
		NixStore:  true,
		Debug:     true,
	}

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if got.Format != "gofile" || got.TargetOS != "windows" || got.Manifest != cfg.Manifest {
		t.Errorf("LoadConfig() = %+v", got)
	}
	if len(got.ExtraDirs) != 2 || got.ExtraDirs[1] != "vendor/lib" {
		t.Errorf("ExtraDirs = %v", got.ExtraDirs)
	}
	if !got.NixStore || !got.Debug {
		t.Errorf("bool fields lost: %+v", got)
	}
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	t.Setenv("ULCONFIG_FORMAT", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("nix_store: true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Format != "cargo" {
		t.Errorf("Format = %q, want cargo default", cfg.Format)
	}
	if !cfg.NixStore {
		t.Error("NixStore not loaded")
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("extra_dirs: [unclosed\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() of invalid yaml should fail")
	}
}

func TestDefaultPathFromEnv(t *testing.T) {
	t.Setenv("ULCONFIG_CONFIG", "/tmp/custom.yaml")
	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if path != "/tmp/custom.yaml" {
		t.Errorf("DefaultPath() = %q", path)
	}
}
