package agent

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v6"

	"github.com/amacleod/pulse/internal/constants"
)

// Config is the agent's environment-driven configuration.
type Config struct {
	// Port to listen on; 0 picks an ephemeral port recorded in the lockfile.
	Port int `env:"PULSE_AGENT_PORT" envDefault:"0"`
	// NotifyCommand is invoked as `command <title> <body>` to deliver a
	// notification to the desktop.
	NotifyCommand string `env:"PULSE_AGENT_NOTIFY_COMMAND" envDefault:"notify-send"`
	// ConfigDir overrides where the agent keeps its registry and lockfile.
	ConfigDir string `env:"PULSE_AGENT_CONFIG_DIR"`
	// AutoGrant controls whether a permission request is granted. Setting it
	// to false makes every request resolve as denied, which is the only
	// "prompt" a headless daemon can offer.
	AutoGrant bool `env:"PULSE_AGENT_AUTO_GRANT" envDefault:"true"`
}

// LoadConfig parses agent configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse agent config: %w", err)
	}
	if cfg.ConfigDir == "" {
		dir, err := ConfigDir()
		if err != nil {
			return Config{}, err
		}
		cfg.ConfigDir = dir
	}
	return cfg, nil
}

var userConfigDirFunc = os.UserConfigDir

// ConfigDir returns the default directory for the agent's registry and
// lockfile. The CLI-side client uses the same resolution to find the agent.
func ConfigDir() (string, error) {
	if dir := os.Getenv("PULSE_AGENT_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	return filepath.Join(configDir, constants.AgentIdentifier), nil
}

// LockfilePath returns the path of the agent lockfile inside dir.
func LockfilePath(dir string) string {
	return filepath.Join(dir, constants.AgentLockfileName)
}
