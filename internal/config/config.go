package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	AppName               = "taskflow"
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "taskflow.db"
	DefaultLogName        = "taskflow.log"
	DefaultLogLevel       = "info"

	// ConfigPathEnv overrides the config file location.
	ConfigPathEnv = "TASKFLOW_CONFIG"
)

type Keymap struct {
	Quit            string `toml:"quit"`
	Add             string `toml:"add"`
	Search          string `toml:"search"`
	Up              string `toml:"up"`
	Down            string `toml:"down"`
	Toggle          string `toml:"toggle"`
	Delete          string `toml:"delete"`
	Confirm         string `toml:"confirm"`
	Cancel          string `toml:"cancel"`
	NextField       string `toml:"next_field"`
	PrevField       string `toml:"prev_field"`
	StatusAll       string `toml:"status_all"`
	StatusActive    string `toml:"status_active"`
	StatusCompleted string `toml:"status_completed"`
	NextStatus      string `toml:"next_status"`
	NextCategory    string `toml:"next_category"`
	PrevCategory    string `toml:"prev_category"`
	Priority        string `toml:"priority"`
	Theme           string `toml:"theme"`
}

type Config struct {
	DBPath        string `toml:"db_path" env:"TASKFLOW_DB_PATH"`
	LogPath       string `toml:"log_path" env:"TASKFLOW_LOG_PATH"`
	LogLevel      string `toml:"log_level" env:"TASKFLOW_LOG_LEVEL"`
	Theme         string `toml:"theme" env:"TASKFLOW_THEME"`
	ConfirmDelete bool   `toml:"confirm_delete"`
	Keys          Keymap `toml:"keys"`
}

// ResolveConfigPath returns $TASKFLOW_CONFIG when set, otherwise
// <user config dir>/taskflow/config.toml. It falls back to the working
// directory when no config dir is known.
func ResolveConfigPath() string {
	if p := os.Getenv(ConfigPathEnv); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing the defaults there first if
// the file does not exist. Environment overrides apply after the file, and
// relative paths are resolved against the config file's directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	cfg.fillDefaults()
	cfg.resolvePaths(filepath.Dir(path))
	return cfg, nil
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

func (c *Config) fillDefaults() {
	def := Default()
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.LogPath == "" {
		c.LogPath = def.LogPath
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	c.Keys.fillFrom(def.Keys)
}

func (c *Config) resolvePaths(base string) {
	if !filepath.IsAbs(c.DBPath) && !isURI(c.DBPath) {
		c.DBPath = filepath.Join(base, c.DBPath)
	}
	if !filepath.IsAbs(c.LogPath) {
		c.LogPath = filepath.Join(base, c.LogPath)
	}
}

func isURI(p string) bool {
	return len(p) > 5 && p[:5] == "file:"
}

// fillFrom keeps user bindings and takes def for anything left blank, so an
// old config file missing newer keys still works.
func (k *Keymap) fillFrom(def Keymap) {
	fields := []struct {
		dst *string
		src string
	}{
		{&k.Quit, def.Quit},
		{&k.Add, def.Add},
		{&k.Search, def.Search},
		{&k.Up, def.Up},
		{&k.Down, def.Down},
		{&k.Toggle, def.Toggle},
		{&k.Delete, def.Delete},
		{&k.Confirm, def.Confirm},
		{&k.Cancel, def.Cancel},
		{&k.NextField, def.NextField},
		{&k.PrevField, def.PrevField},
		{&k.StatusAll, def.StatusAll},
		{&k.StatusActive, def.StatusActive},
		{&k.StatusCompleted, def.StatusCompleted},
		{&k.NextStatus, def.NextStatus},
		{&k.NextCategory, def.NextCategory},
		{&k.PrevCategory, def.PrevCategory},
		{&k.Priority, def.Priority},
		{&k.Theme, def.Theme},
	}
	for _, f := range fields {
		if *f.dst == "" {
			*f.dst = f.src
		}
	}
}

func Default() Config {
	return Config{
		DBPath:        DefaultDBName,
		LogPath:       DefaultLogName,
		LogLevel:      DefaultLogLevel,
		ConfirmDelete: true,
		Keys: Keymap{
			Quit:            "q",
			Add:             "a",
			Search:          "/",
			Up:              "k",
			Down:            "j",
			Toggle:          " ",
			Delete:          "d",
			Confirm:         "enter",
			Cancel:          "esc",
			NextField:       "tab",
			PrevField:       "shift+tab",
			StatusAll:       "1",
			StatusActive:    "2",
			StatusCompleted: "3",
			NextStatus:      "tab",
			NextCategory:    "c",
			PrevCategory:    "C",
			Priority:        "p",
			Theme:           "t",
		},
	}
}
