package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2/log"
)

const fileName = "config.json"

type Config struct {
	Addr         string `json:"addr"`
	AllowOrigins string `json:"allow_origins"`
	LogLevel     string `json:"log_level"`
	// DebugChannel selects which rule engine trace is logged: 0 off,
	// 1 move generation, 2 turn changes.
	DebugChannel    int `json:"debug_channel"`
	ReadBufferSize  int `json:"read_buffer_size"`
	WriteBufferSize int `json:"write_buffer_size"`
}

func Default() Config {
	return Config{
		Addr:            ":3000",
		AllowOrigins:    "http://localhost:5173",
		LogLevel:        "info",
		DebugChannel:    0,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
}

// FindConfigPath walks up from the working directory looking for config.json.
func FindConfigPath() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	dir := cwd
	for {
		path := filepath.Join(dir, fileName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("%s not found from %s", fileName, cwd)
}

// Load reads path over the defaults and applies environment overrides. An
// empty path means "search for config.json"; a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		found, err := FindConfigPath()
		if err != nil {
			log.Infof("no config file, using defaults: %v", err)
		} else {
			path = found
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
		if err == nil {
			if err := json.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("CHECKERS_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("CHECKERS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("CHECKERS_DEBUG_CHANNEL"); v != "" {
		ch, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CHECKERS_DEBUG_CHANNEL: %w", err)
		}
		cfg.DebugChannel = ch
	}
	return nil
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr is required")
	}
	if c.DebugChannel < 0 || c.DebugChannel > 2 {
		return fmt.Errorf("debug_channel must be 0, 1 or 2, got %d", c.DebugChannel)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a level name onto fiber's logger levels.
func ParseLevel(name string) (log.Level, error) {
	switch strings.ToLower(name) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "", "info":
		return log.LevelInfo, nil
	case "warn", "warning":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	default:
		return log.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}
