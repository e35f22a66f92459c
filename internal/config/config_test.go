package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name       string
		createFile bool
		content    string
		wantErr    bool
		validate   func(t *testing.T, cfg *Config, err error)
	}{
		{
			name:       "valid yaml loads all sections",
			createFile: true,
			content: `server:
  host: "mc.example.com"
  port: 25565
  protocol_version: 767
clients:
  - username: "Bot1"
    keep_alive_interval_sec: 15
  - username: "Bot2"
    keep_alive_interval_sec: 20
supervisor:
  startup_stagger_ms: 500
  reconnect_delay_ms: 2000
  max_reconnect_attempts: 5
  exponential_backoff: true
logging:
  level: "info"
  format: "console"
  file: "voxelbot.log"
`,
			wantErr: false,
			validate: func(t *testing.T, cfg *Config, err error) {
				if cfg.Server.Host != "mc.example.com" {
					t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "mc.example.com")
				}
				if cfg.Server.Port != 25565 {
					t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 25565)
				}
				if cfg.Server.ProtocolVersion != 767 {
					t.Errorf("Server.ProtocolVersion = %d, want %d", cfg.Server.ProtocolVersion, 767)
				}
				if len(cfg.Clients) != 2 {
					t.Fatalf("len(Clients) = %d, want 2", len(cfg.Clients))
				}
				if cfg.Clients[0].Username != "Bot1" || cfg.Clients[0].KeepAliveInterval != 15 {
					t.Errorf("Clients[0] = %+v, want {Bot1 15}", cfg.Clients[0])
				}
				if cfg.Supervisor.MaxReconnectAttempts != 5 || !cfg.Supervisor.ExponentialBackoff {
					t.Errorf("Supervisor = %+v, unexpected", cfg.Supervisor)
				}
				if cfg.Logging.Level != "info" {
					t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
				}
				if cfg.Logging.File != "voxelbot.log" {
					t.Errorf("Logging.File = %q, want %q", cfg.Logging.File, "voxelbot.log")
				}
			},
		},
		{
			name:       "missing file",
			createFile: false,
			wantErr:    true,
			validate: func(t *testing.T, cfg *Config, err error) {
				if !os.IsNotExist(err) {
					t.Errorf("want a not-exist error, got: %v", err)
				}
			},
		},
		{
			name:       "malformed yaml",
			createFile: true,
			content: `server:
  host: "mc.example.com"
  port: [25565
clients:
  - username: "Bot1"
`,
			wantErr: true,
			validate: func(t *testing.T, cfg *Config, err error) {
				if err == nil || !strings.Contains(err.Error(), "yaml") {
					t.Errorf("want a yaml parse error, got: %v", err)
				}
			},
		},
		{
			name:       "empty file parses to zero value",
			createFile: true,
			content:    "",
			wantErr:    false,
			validate: func(t *testing.T, cfg *Config, err error) {
				if cfg.Server.Host != "" || cfg.Server.Port != 0 {
					t.Errorf("Server should be zero value, got Host=%q Port=%d", cfg.Server.Host, cfg.Server.Port)
				}
				if len(cfg.Clients) != 0 {
					t.Errorf("Clients should be empty, got %+v", cfg.Clients)
				}
				if cfg.Logging.Level != "" || cfg.Logging.File != "" {
					t.Errorf("Logging should be zero value, got Level=%q File=%q", cfg.Logging.Level, cfg.Logging.File)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			configPath := filepath.Join(tempDir, "config.yaml")

			if tt.createFile {
				if err := os.WriteFile(configPath, []byte(tt.content), 0o644); err != nil {
					t.Fatalf("failed to write test config file: %v", err)
				}
			}

			cfg, err := Load(configPath)

			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err == nil && cfg == nil {
				t.Fatalf("Load() returned a nil config")
			}

			if tt.validate != nil {
				tt.validate(t, cfg, err)
			}
		})
	}
}
