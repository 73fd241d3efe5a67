package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partminder.yaml")
	data := `store:
  type: "sqlite"
  conf:
    path: "/var/lib/partminder/parts.db"
logging:
  level: "info"
  file: "/var/log/partminder.log"
metrics:
  sinks:
    - type: "textfile"
      conf:
        path: "/var/lib/node_exporter/partminder.prom"
messages:
  primary:
    - "nope"
    - "still nope"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"store.type", cfg.Store.Type, "sqlite"},
		{"store.conf.path", cfg.Store.Conf["path"], "/var/lib/partminder/parts.db"},
		{"logging.level", cfg.Logging.Level, "info"},
		{"logging.file", cfg.Logging.File, "/var/log/partminder.log"},
		{"logging.max_size_mb", cfg.Logging.MaxSizeMB, 5},
		{"metrics.sinks", len(cfg.Metrics.Sinks) == 1 && cfg.Metrics.Sinks[0].Type == "textfile", true},
		{"messages.primary", len(cfg.Messages.Primary), 2},
		{"messages.advanced", len(cfg.Messages.Advanced), 0},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Store.Type != "csv" || cfg.Store.Conf["path"] != "data.csv" {
		t.Fatalf("unexpected store defaults %#v", cfg.Store)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("unexpected level %s", cfg.Logging.Level)
	}
	if m := cfg.Store.Module(); m.Type != "csv" {
		t.Fatalf("module conversion lost type")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PM_STORE__CONF__PATH", "/tmp/other.csv")
	t.Setenv("PM_LOGGING__LEVEL", "debug")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Store.Conf["path"] != "/tmp/other.csv" {
		t.Fatalf("env override not applied: %#v", cfg.Store.Conf)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("env level not applied: %s", cfg.Logging.Level)
	}
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partminder.json")
	if err := os.WriteFile(path, []byte(`{"store":{"type":"memory"}}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Store.Type != "memory" {
		t.Fatalf("unexpected type %s", cfg.Store.Type)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load("config.toml"); err == nil {
		t.Fatalf("expected unsupported format error")
	}
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected invalid level error")
	}
}
