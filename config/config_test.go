package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/artpar/pubforge/config"
)

func TestLoad(t *testing.T) {
	content := `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: 15s
  write_timeout: 30s

workspace:
  content_dir: "site/content"
  media_dir: "site/media"
  tags_file: "site/tags.yml"

index:
  path: "site/index.db"

watch:
  enabled: true
  debounce: 250ms

logging:
  level: "debug"
  format: "console"

metrics:
  enabled: true
  path: "/internal/metrics"
`
	path := writeConfig(t, content)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Host = %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("ReadTimeout = %v", cfg.Server.ReadTimeout)
	}
	if cfg.Workspace.ContentDir != "site/content" {
		t.Errorf("ContentDir = %s", cfg.Workspace.ContentDir)
	}
	if cfg.Workspace.MediaDir != "site/media" {
		t.Errorf("MediaDir = %s", cfg.Workspace.MediaDir)
	}
	if cfg.Workspace.TagsFile != "site/tags.yml" {
		t.Errorf("TagsFile = %s", cfg.Workspace.TagsFile)
	}
	if cfg.Index.Path != "site/index.db" {
		t.Errorf("Index.Path = %s", cfg.Index.Path)
	}
	if !cfg.Watch.Enabled {
		t.Error("Watch.Enabled = false")
	}
	if cfg.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("Debounce = %v", cfg.Watch.Debounce)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %s", cfg.Logging.Level)
	}
	if cfg.Metrics.Path != "/internal/metrics" {
		t.Errorf("Metrics.Path = %s", cfg.Metrics.Path)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, "{}"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Server.Host", cfg.Server.Host, "0.0.0.0"},
		{"Server.Port", cfg.Server.Port, 8080},
		{"Server.ReadTimeout", cfg.Server.ReadTimeout, 30 * time.Second},
		{"Server.WriteTimeout", cfg.Server.WriteTimeout, 60 * time.Second},
		{"Workspace.ContentDir", cfg.Workspace.ContentDir, "content"},
		{"Workspace.MediaDir", cfg.Workspace.MediaDir, "media"},
		{"Workspace.TagsFile", cfg.Workspace.TagsFile, "tags.yml"},
		{"Index.Path", cfg.Index.Path, "pubforge.db"},
		{"Watch.Debounce", cfg.Watch.Debounce, 500 * time.Millisecond},
		{"Logging.Level", cfg.Logging.Level, "info"},
		{"Logging.Format", cfg.Logging.Format, "json"},
		{"Metrics.Path", cfg.Metrics.Path, "/metrics"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := config.Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	if _, err := config.Load(writeConfig(t, "server: [not: valid")); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "bad port",
			content: "server:\n  port: 70000\n",
			wantErr: "server.port",
		},
		{
			name:    "bad log level",
			content: "logging:\n  level: verbose\n",
			wantErr: "logging.level",
		},
		{
			name:    "bad log format",
			content: "logging:\n  format: xml\n",
			wantErr: "logging.format",
		},
		{
			name:    "bad metrics path",
			content: "metrics:\n  path: metrics\n",
			wantErr: "metrics.path",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %s", err, tt.wantErr)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PUBFORGE_SERVER_PORT", "9999")
	t.Setenv("PUBFORGE_CONTENT_DIR", "env/content")
	t.Setenv("PUBFORGE_TAGS_FILE", "env/tags.yml")
	t.Setenv("PUBFORGE_LOG_LEVEL", "warn")
	t.Setenv("PUBFORGE_WATCH_ENABLED", "false")

	cfg, err := config.Load(writeConfig(t, `
server:
  port: 9090
workspace:
  content_dir: "file/content"
watch:
  enabled: true
`))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("env should override file port, got %d", cfg.Server.Port)
	}
	if cfg.Workspace.ContentDir != "env/content" {
		t.Errorf("env should override content dir, got %s", cfg.Workspace.ContentDir)
	}
	if cfg.Workspace.TagsFile != "env/tags.yml" {
		t.Errorf("TagsFile = %s", cfg.Workspace.TagsFile)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Level = %s", cfg.Logging.Level)
	}
	if cfg.Watch.Enabled {
		t.Error("env should disable watch")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PUBFORGE_CONTENT_DIR", "docker/content")
	t.Setenv("PUBFORGE_INDEX_PATH", "/data/index.db")

	cfg, err := config.LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv error: %v", err)
	}
	if cfg.Workspace.ContentDir != "docker/content" {
		t.Errorf("ContentDir = %s", cfg.Workspace.ContentDir)
	}
	if cfg.Index.Path != "/data/index.db" {
		t.Errorf("Index.Path = %s", cfg.Index.Path)
	}
	// Defaults fill in the rest
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d", cfg.Server.Port)
	}
}

func TestLoadWithFallback(t *testing.T) {
	t.Run("file exists", func(t *testing.T) {
		path := writeConfig(t, "server:\n  port: 7070\n")
		cfg, err := config.LoadWithFallback(path)
		if err != nil {
			t.Fatalf("LoadWithFallback error: %v", err)
		}
		if cfg.Server.Port != 7070 {
			t.Errorf("Port = %d, want 7070", cfg.Server.Port)
		}
	})

	t.Run("missing file falls back to env and defaults", func(t *testing.T) {
		t.Setenv("PUBFORGE_SERVER_PORT", "6060")
		cfg, err := config.LoadWithFallback(filepath.Join(t.TempDir(), "missing.yaml"))
		if err != nil {
			t.Fatalf("LoadWithFallback error: %v", err)
		}
		if cfg.Server.Port != 6060 {
			t.Errorf("Port = %d, want 6060", cfg.Server.Port)
		}
	})
}

func TestExpandEnvInFile(t *testing.T) {
	t.Setenv("TEST_WORKSPACE_ROOT", "/srv/pubforge")

	cfg, err := config.Load(writeConfig(t, `
workspace:
  content_dir: "${TEST_WORKSPACE_ROOT}/content"
`))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Workspace.ContentDir != "/srv/pubforge/content" {
		t.Errorf("ContentDir = %s", cfg.Workspace.ContentDir)
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("running as root, permission bits ignored")
	}
	path := writeConfig(t, "{}")
	if err := os.Chmod(path, 0o000); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(path); err == nil {
		t.Error("expected error for unreadable file")
	}
}
