package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	AppName               = "tareas"
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "tareas.db"
	EnvConfig             = "TAREAS_CONFIG"
)

type Keymap struct {
	Quit             string `toml:"quit"`
	Add              string `toml:"add"`
	Up               string `toml:"up"`
	Down             string `toml:"down"`
	Toggle           string `toml:"toggle"`
	Delete           string `toml:"delete"`
	Edit             string `toml:"edit"`
	Confirm          string `toml:"confirm"`
	Cancel           string `toml:"cancel"`
	NextField        string `toml:"next_field"`
	PrevField        string `toml:"prev_field"`
	FilterAll        string `toml:"filter_all"`
	FilterInProgress string `toml:"filter_in_progress"`
	FilterCompleted  string `toml:"filter_completed"`
}

type Config struct {
	DBPath              string `toml:"db_path"`
	DefaultFilter       string `toml:"default_filter"`
	NotificationSeconds int    `toml:"notification_seconds"`
	DebugLog            string `toml:"debug_log"`
	Keys                Keymap `toml:"keys"`
}

// ResolveConfigPath picks the config file: TAREAS_CONFIG, then
// $XDG_CONFIG_HOME/tareas, then $HOME/.config/tareas.
func ResolveConfigPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName, DefaultConfigFileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(home, ".config", AppName, DefaultConfigFileName)
}

// LoadOrCreate reads path, writing the defaults there first if it does not
// exist. A relative db_path is resolved against the config file's directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(path), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	if cfg.NotificationSeconds <= 0 {
		cfg.NotificationSeconds = defaultConfig().NotificationSeconds
	}
	return cfg.resolve(path), nil
}

func (c Config) NotificationDuration() time.Duration {
	return time.Duration(c.NotificationSeconds) * time.Second
}

func (c Config) resolve(path string) Config {
	dir := filepath.Dir(path)
	if c.DBPath != "" && !filepath.IsAbs(c.DBPath) {
		c.DBPath = filepath.Join(dir, c.DBPath)
	}
	if c.DebugLog != "" && !filepath.IsAbs(c.DebugLog) {
		c.DebugLog = filepath.Join(dir, c.DebugLog)
	}
	return c
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		DBPath:              DefaultDBName,
		DefaultFilter:       "all",
		NotificationSeconds: 3,
		Keys: Keymap{
			Quit:             "q",
			Add:              "a",
			Up:               "k",
			Down:             "j",
			Toggle:           " ",
			Delete:           "d",
			Edit:             "e",
			Confirm:          "enter",
			Cancel:           "esc",
			NextField:        "tab",
			PrevField:        "shift+tab",
			FilterAll:        "1",
			FilterInProgress: "2",
			FilterCompleted:  "3",
		},
	}
}
