package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const (
	appName   = "votd-tui"
	fileName  = "config"
	fileType  = "yaml"
	envPrefix = "VOTD"
)

type Settings struct {
	Endpoint       string        `mapstructure:"endpoint"`
	Sources        []string      `mapstructure:"sources"`
	Translation    string        `mapstructure:"translation"`
	CurrentTheme   string        `mapstructure:"theme"`
	ToastDuration  time.Duration `mapstructure:"toast_duration"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	Listen         string        `mapstructure:"listen"`
	UpdateRepo     string        `mapstructure:"update_repo"`
	StaticFallback bool          `mapstructure:"static_fallback"`
	LogLevel       string        `mapstructure:"log_level"`
	CacheDir       string        `mapstructure:"cache_dir"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("endpoint", "http://localhost:8777")
	v.SetDefault("sources", []string{"remote", "bolls", "static"})
	v.SetDefault("translation", "KJV")
	v.SetDefault("theme", "catppuccin-mocha")
	v.SetDefault("toast_duration", 8*time.Second)
	v.SetDefault("request_timeout", 10*time.Second)
	v.SetDefault("listen", "localhost:8777")
	v.SetDefault("update_repo", "votd-tui/votd-tui")
	v.SetDefault("static_fallback", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("cache_dir", defaultCacheDir())
}

// Dir returns the config directory, e.g. ~/.config/votd-tui.
func Dir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", appName)
	}
	return filepath.Join(configDir, appName)
}

// FilePath returns the default config file path.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

func defaultCacheDir() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(".", appName, "cache")
	}
	return filepath.Join(cacheDir, appName)
}

// Load reads settings from path (FilePath when empty) and VOTD_* environment
// variables. A missing file is not an error.
func Load(path string) (Settings, error) {
	if path == "" {
		path = FilePath()
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
			return Settings{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decoding config: %w", err)
	}
	return s, nil
}

// SaveTheme persists the theme choice, keeping the other keys in the file.
func SaveTheme(path, theme string) error {
	if path == "" {
		path = FilePath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	v.Set("theme", theme)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
