package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfigMatchesCanonicalDefaults(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		name string
		got  float64
		want float64
	}{
		{"TargetError", cfg.Reconstruction.TargetError, 1e-5},
		{"Beta", cfg.Reconstruction.Beta, 0.9},
		{"RIntensityCutOffAutoCorrel", cfg.Reconstruction.RIntensityCutOffAutoCorrel, 0.04},
		{"RIntensityCutOff", cfg.Reconstruction.RIntensityCutOff, 0.20},
		{"Sigma0", cfg.Reconstruction.Sigma0, 3.0},
		{"SigmaChange", cfg.Reconstruction.SigmaChange, 0.01},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.got != c.want {
				t.Fatalf("%s = %v, want %v", c.name, c.got, c.want)
			}
		})
	}

	if cfg.Reconstruction.NCycles != 20 {
		t.Fatalf("NCycles = %d, want 20", cfg.Reconstruction.NCycles)
	}
	if cfg.Reconstruction.NHioCycles != 20 {
		t.Fatalf("NHioCycles = %d, want 20", cfg.Reconstruction.NHioCycles)
	}
	if !cfg.Observer.Verbose {
		t.Fatal("Observer.Verbose should default true")
	}
	if cfg.Observer.DumpIntermediateImages {
		t.Fatal("Observer.DumpIntermediateImages should default false")
	}
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Reconstruction.NCycles != DefaultConfig().Reconstruction.NCycles {
		t.Fatalf("expected defaults when file is missing, got %+v", cfg)
	}
}

func TestSaveAndLoadConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shrinkwrap.yaml")

	cfg := DefaultConfig()
	cfg.Reconstruction.NCycles = 42
	cfg.Reconstruction.Beta = 0.75
	cfg.Observer.DumpIntermediateImages = true
	cfg.Observer.OutputDir = "out"

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	if loaded.Reconstruction.NCycles != 42 {
		t.Fatalf("NCycles = %d, want 42", loaded.Reconstruction.NCycles)
	}
	if loaded.Reconstruction.Beta != 0.75 {
		t.Fatalf("Beta = %v, want 0.75", loaded.Reconstruction.Beta)
	}
	if !loaded.Observer.DumpIntermediateImages {
		t.Fatal("DumpIntermediateImages should round-trip true")
	}
	if loaded.Observer.OutputDir != "out" {
		t.Fatalf("OutputDir = %q, want %q", loaded.Observer.OutputDir, "out")
	}
}

func TestCreateDefaultConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "shrinkwrap.yaml")
	if err := CreateDefaultConfigFile(path); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Reconstruction.NCycles != DefaultConfig().Reconstruction.NCycles {
		t.Fatalf("loaded config does not match defaults: %+v", cfg)
	}
}
