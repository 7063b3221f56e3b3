package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/martin-lopez25/appbrechas/internal/config"
)

func TestWriteDefaultConfig(t *testing.T) {
	t.Parallel()

	p := filepath.Join(t.TempDir(), "config.toml")
	if err := writeDefaultConfig(p, false); err != nil {
		t.Fatalf("writeDefaultConfig: %v", err)
	}

	cfg, info, err := config.LoadConfigFrom(p)
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}
	def := config.DefaultConfig()
	if info.Path != p || cfg.Server.Port != def.Server.Port || cfg.Data.GapFile != def.Data.GapFile {
		t.Fatalf("unexpected config: %+v %+v", info, cfg)
	}

	if err := writeDefaultConfig(p, false); err == nil {
		t.Fatalf("existing file should not be overwritten without force")
	}

	if err := os.WriteFile(p, []byte("garbage = ["), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := writeDefaultConfig(p, true); err != nil {
		t.Fatalf("force overwrite: %v", err)
	}
	if _, _, err := config.LoadConfigFrom(p); err != nil {
		t.Fatalf("overwritten config unreadable: %v", err)
	}
}
