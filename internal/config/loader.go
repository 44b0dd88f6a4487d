package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/rileyhilliard/ledmon/internal/errors"
)

const (
	// ConfigFileName is the config file looked up in the working directory.
	ConfigFileName = "ledmon.yaml"
	// UserConfigDir is the per-user config directory, relative to
	// $XDG_CONFIG_HOME (or ~/.config).
	UserConfigDir = "ledmon"
	// UserConfigFile is the config file name inside UserConfigDir.
	UserConfigFile = "config.yaml"
	// SystemConfigPath is the system-wide config file.
	SystemConfigPath = "/etc/ledmon/config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. LEDMON_SOCKET.
	EnvPrefix = "LEDMON"
)

// Load reads config from the specified path. YAML and TOML are accepted,
// chosen by extension. Environment variables override file values.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'ledmon init' to create a config file, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML or TOML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. ledmon.yaml in the current directory
// 3. $XDG_CONFIG_HOME/ledmon/config.yaml (~/.config/ledmon/config.yaml)
// 4. /etc/ledmon/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	for _, candidate := range SearchPaths() {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

// SearchPaths returns the implicit config locations in lookup order.
func SearchPaths() []string {
	var paths []string
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ConfigFileName))
	}
	if dir := userConfigHome(); dir != "" {
		paths = append(paths, filepath.Join(dir, UserConfigDir, UserConfigFile))
	}
	return append(paths, SystemConfigPath)
}

// UserConfigPath returns where 'ledmon init' writes by default.
func UserConfigPath() string {
	dir := userConfigHome()
	if dir == "" {
		return ConfigFileName
	}
	return filepath.Join(dir, UserConfigDir, UserConfigFile)
}

func userConfigHome() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config")
}

// LoadOrDefault loads config from the found path, or returns defaults if no
// file exists. The returned path is empty when defaults were used.
func LoadOrDefault(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}

	if path == "" {
		v := newViper()
		cfg, err := parseConfig(v, "environment")
		return cfg, "", err
	}

	cfg, err := Load(path)
	return cfg, path, err
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setScalarDefaults(v)
	return v
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	// a layout given in the file replaces the default one instead of being
	// merged into it element by element
	if v.IsSet("render.left") || v.IsSet("render.right") {
		cfg.Render.Left, cfg.Render.Right = nil, nil
	}
	if v.IsSet("collector.disk_names") {
		cfg.Collector.DiskNames = nil
	}
	if v.IsSet("collector.network_interfaces") {
		cfg.Collector.NetworkInterfaces = nil
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the syntax in "+path)
	}

	cfg.Socket = ExpandTilde(cfg.Socket)
	cfg.LockFile = ExpandTilde(cfg.LockFile)
	cfg.Render.MaxBrightnessFile = ExpandTilde(cfg.Render.MaxBrightnessFile)

	return cfg, nil
}

// setScalarDefaults registers every scalar key so LEDMON_* environment
// variables apply even when the file does not mention the key.
func setScalarDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("socket", d.Socket)
	v.SetDefault("lock_file", d.LockFile)
	v.SetDefault("collector.max_history_samples", d.Collector.MaxHistorySamples)
	v.SetDefault("collector.sample_interval", d.Collector.SampleInterval)
	v.SetDefault("render.interval", d.Render.Interval)
	v.SetDefault("render.width", d.Render.Width)
	v.SetDefault("render.height", d.Render.Height)
	v.SetDefault("render.max_brightness", d.Render.MaxBrightness)
	v.SetDefault("render.max_brightness_file", d.Render.MaxBrightnessFile)
	v.SetDefault("sink.timeout", d.Sink.Timeout)
}
