package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root of the runtime configuration tree: one server
// endpoint, the identities of the clients the supervisor spawns against
// it, the reconnect/stagger policy, and logging.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Clients    []ClientConfig   `yaml:"clients"`
	Supervisor SupervisorConfig `yaml:"supervisor"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig is the backend the clients dial.
type ServerConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	ProtocolVersion int32  `yaml:"protocol_version"`
}

// ClientConfig is one client's identity and per-client overrides.
type ClientConfig struct {
	Username          string `yaml:"username"`
	KeepAliveInterval int    `yaml:"keep_alive_interval_sec"`
}

// SupervisorConfig is the multi-client manager's startup and reconnect
// policy.
type SupervisorConfig struct {
	StartupStagger       int `yaml:"startup_stagger_ms"`
	ReconnectDelay       int `yaml:"reconnect_delay_ms"`
	MaxReconnectAttempts int `yaml:"max_reconnect_attempts"`
	ExponentialBackoff   bool `yaml:"exponential_backoff"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
