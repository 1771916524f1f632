// Package config holds harness settings: repositories, console parameters,
// and capture timeouts. Settings merge in order defaults → config file →
// command-line flags.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaudRate = 115200
	DefaultWorkDir  = ".hwci"

	DefaultKernelRepo = "https://github.com/ember-os/ember.git"
	DefaultAppsRepo   = "https://github.com/ember-os/ember-apps.git"

	DefaultLineTimeoutSec     = 5
	DefaultCaptureDeadlineSec = 60
)

// Config holds all hwci configuration.
type Config struct {
	Board      string `yaml:"board,omitempty"`
	Test       string `yaml:"test,omitempty"`
	SerialPort string `yaml:"serial_port,omitempty"`
	BaudRate   int    `yaml:"baud_rate,omitempty"`
	WorkDir    string `yaml:"work_dir,omitempty"`
	KernelRepo string `yaml:"kernel_repo,omitempty"`
	AppsRepo   string `yaml:"apps_repo,omitempty"`

	LineTimeoutSec     int `yaml:"line_timeout_sec,omitempty"`
	CaptureDeadlineSec int `yaml:"capture_deadline_sec,omitempty"`
}

// Defaults returns a Config with default values. BaudRate stays zero so the
// selected board's own rate applies unless explicitly overridden.
func Defaults() Config {
	return Config{
		WorkDir:            DefaultWorkDir,
		KernelRepo:         DefaultKernelRepo,
		AppsRepo:           DefaultAppsRepo,
		LineTimeoutSec:     DefaultLineTimeoutSec,
		CaptureDeadlineSec: DefaultCaptureDeadlineSec,
	}
}

// Load reads the config file at path and merges it over the defaults. A
// missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	merge(&cfg, fileCfg)
	return cfg, nil
}

func merge(cfg *Config, over Config) {
	if over.Board != "" {
		cfg.Board = over.Board
	}
	if over.Test != "" {
		cfg.Test = over.Test
	}
	if over.SerialPort != "" {
		cfg.SerialPort = over.SerialPort
	}
	if over.BaudRate != 0 {
		cfg.BaudRate = over.BaudRate
	}
	if over.WorkDir != "" {
		cfg.WorkDir = over.WorkDir
	}
	if over.KernelRepo != "" {
		cfg.KernelRepo = over.KernelRepo
	}
	if over.AppsRepo != "" {
		cfg.AppsRepo = over.AppsRepo
	}
	if over.LineTimeoutSec != 0 {
		cfg.LineTimeoutSec = over.LineTimeoutSec
	}
	if over.CaptureDeadlineSec != 0 {
		cfg.CaptureDeadlineSec = over.CaptureDeadlineSec
	}
}
