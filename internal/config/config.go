package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

const (
	defaultProcRoot    = "/proc"
	defaultExeWidth    = 32
	defaultKillTimeout = 3 * time.Second
	defaultKillSignal  = "SIGKILL"
	defaultLogLevel    = "info"

	envProcRoot    = "GOPORTS_PROC_ROOT"
	envProtocols   = "GOPORTS_PROTOCOLS"
	envExeWidth    = "GOPORTS_EXE_WIDTH"
	envKillTimeout = "GOPORTS_KILL_TIMEOUT"
	envKillSignal  = "GOPORTS_KILL_SIGNAL"
	envLogLevel    = "GOPORTS_LOG_LEVEL"
	envLogFile     = "GOPORTS_LOG_FILE"
)

// Config aggregates the tunables shared by the CLI and the TUI.
type Config struct {
	ProcRoot    string
	Protocols   []string
	ExeWidth    int
	KillTimeout time.Duration
	KillSignal  string
	LogLevel    string
	LogFile     string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ProcRoot:    defaultProcRoot,
		Protocols:   []string{"tcp"},
		ExeWidth:    defaultExeWidth,
		KillTimeout: defaultKillTimeout,
		KillSignal:  defaultKillSignal,
		LogLevel:    defaultLogLevel,
	}
}

// Load builds a Config from an optional YAML (or JSON) file path plus
// environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		fileCfg, err := loadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
		merge(&cfg, fileCfg)
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

func merge(cfg *Config, from Config) {
	if from.ProcRoot != "" {
		cfg.ProcRoot = from.ProcRoot
	}
	if len(from.Protocols) > 0 {
		cfg.Protocols = from.Protocols
	}
	if from.ExeWidth != 0 {
		cfg.ExeWidth = from.ExeWidth
	}
	if from.KillTimeout != 0 {
		cfg.KillTimeout = from.KillTimeout
	}
	if from.KillSignal != "" {
		cfg.KillSignal = from.KillSignal
	}
	if from.LogLevel != "" {
		cfg.LogLevel = from.LogLevel
	}
	if from.LogFile != "" {
		cfg.LogFile = from.LogFile
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(envProcRoot); v != "" {
		cfg.ProcRoot = v
	}
	if v := os.Getenv(envProtocols); v != "" {
		cfg.Protocols = splitList(v)
	}
	if v := os.Getenv(envExeWidth); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ExeWidth = n
		} else {
			log.Warn("ignoring invalid environment override", "key", envExeWidth, "value", v)
		}
	}
	if v := os.Getenv(envKillTimeout); v != "" {
		if dur, err := time.ParseDuration(v); err == nil && dur > 0 {
			cfg.KillTimeout = dur
		} else {
			log.Warn("ignoring invalid environment override", "key", envKillTimeout, "value", v)
		}
	}
	if v := os.Getenv(envKillSignal); v != "" {
		cfg.KillSignal = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(envLogFile); v != "" {
		cfg.LogFile = v
	}
}

type fileConfig struct {
	ProcRoot    string   `yaml:"proc_root"`
	Protocols   []string `yaml:"protocols"`
	ExeWidth    int      `yaml:"exe_width"`
	KillTimeout string   `yaml:"kill_timeout"`
	KillSignal  string   `yaml:"kill_signal"`
	LogLevel    string   `yaml:"log_level"`
	LogFile     string   `yaml:"log_file"`
}

func loadFromFile(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	var raw fileConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return cfg, err
	}

	cfg.ProcRoot = raw.ProcRoot
	cfg.Protocols = raw.Protocols
	cfg.KillSignal = raw.KillSignal
	cfg.LogLevel = raw.LogLevel
	cfg.LogFile = raw.LogFile

	if raw.ExeWidth < 0 {
		return cfg, errors.New("exe_width must not be negative")
	}
	cfg.ExeWidth = raw.ExeWidth

	if raw.KillTimeout != "" {
		dur, err := time.ParseDuration(raw.KillTimeout)
		if err != nil {
			return cfg, fmt.Errorf("parse kill_timeout: %w", err)
		}
		if dur <= 0 {
			return cfg, errors.New("kill_timeout must be > 0")
		}
		cfg.KillTimeout = dur
	}

	return cfg, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
