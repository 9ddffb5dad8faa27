package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DataDir == "" {
		t.Error("data_dir should default to a non-empty path")
	}
	if cfg.LocalMode {
		t.Error("local_mode should default to false")
	}
	if cfg.DashboardPort != 8080 {
		t.Errorf("dashboard_port = %d, want 8080", cfg.DashboardPort)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := "remote_url: libsql://journal.example.io\nlocal_mode: false\ndashboard_port: 9090\n"
	if err := os.WriteFile(filepath.Join(dir, "kanjou.yaml"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.RemoteURL != "libsql://journal.example.io" {
		t.Errorf("remote_url = %q", cfg.RemoteURL)
	}
	if cfg.DashboardPort != 9090 {
		t.Errorf("dashboard_port = %d, want 9090", cfg.DashboardPort)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "kanjou.yaml"), []byte("remote_url: from-file\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("KANJOU_REMOTE_URL", "from-env")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.RemoteURL != "from-env" {
		t.Errorf("remote_url = %q, env should win", cfg.RemoteURL)
	}
}

func TestRemoteDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "local mode disables remote",
			cfg:  Config{LocalMode: true, RemoteURL: "libsql://x"},
			want: "",
		},
		{
			name: "libsql url with token",
			cfg:  Config{RemoteURL: "libsql://journal.example.io", AuthToken: "tok"},
			want: "libsql://journal.example.io?authToken=tok",
		},
		{
			name: "libsql url without token",
			cfg:  Config{RemoteURL: "libsql://journal.example.io"},
			want: "libsql://journal.example.io",
		},
		{
			name: "file path passes through",
			cfg:  Config{RemoteURL: "/tmp/remote.db"},
			want: "/tmp/remote.db",
		},
		{
			name: "empty url falls back to data dir",
			cfg:  Config{DataDir: "/data"},
			want: filepath.Join("/data", "remote.db"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.RemoteDSN(); got != tt.want {
				t.Errorf("RemoteDSN() = %q, want %q", got, tt.want)
			}
		})
	}
}
