package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config seeds the demo: business hours repeated over a number of days plus
// the slot requests to negotiate.
type Config struct {
	Days     int     `yaml:"days"`
	OpenHour float64 `yaml:"open_hour"`
	// CloseHour ends the public open-close schedule, OperationCloseHour the
	// internal operations schedule that may run later.
	CloseHour          float64 `yaml:"close_hour"`
	OperationCloseHour float64 `yaml:"operation_close_hour"`

	Requests []RequestConfig `yaml:"requests"`
}

type RequestConfig struct {
	TimeStart float64 `yaml:"time_start"`
	Duration  float64 `yaml:"duration"`

	// Commit books the converged slot on the use schedule; otherwise the
	// slot is only reported.
	Commit bool `yaml:"commit"`
}

func DefaultConfig() *Config {
	return &Config{
		Days:               3,
		OpenHour:           8,
		CloseHour:          20,
		OperationCloseHour: 24,

		Requests: []RequestConfig{
			{TimeStart: 8, Duration: 14, Commit: true},
			{TimeStart: 34, Duration: 3, Commit: true},
			{TimeStart: 9, Duration: 3},
		},
	}
}

// LoadConfig reads path over the defaults. An empty path means defaults only.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, errRead := os.ReadFile(path)
	if errRead != nil {
		return nil, fmt.Errorf("read config: %w", errRead)
	}

	if errUnmarshal := yaml.Unmarshal(data, cfg); errUnmarshal != nil {
		return nil, fmt.Errorf("parse config: %w", errUnmarshal)
	}

	if errValidate := cfg.Validate(); errValidate != nil {
		return nil, fmt.Errorf("validate config: %w", errValidate)
	}

	return cfg, nil
}

func (cfg *Config) Validate() error {
	if cfg.Days <= 0 {
		return errors.New("days must be positive")
	}

	if cfg.OpenHour < 0 || cfg.OpenHour >= 24 {
		return errors.New("open_hour must be within a day")
	}

	if cfg.CloseHour <= cfg.OpenHour || cfg.CloseHour > 24 {
		return errors.New("close_hour must follow open_hour within the day")
	}

	if cfg.OperationCloseHour < cfg.CloseHour || cfg.OperationCloseHour > 24 {
		return errors.New("operation_close_hour must not precede close_hour")
	}

	for ix, request := range cfg.Requests {
		if request.Duration <= 0 {
			return fmt.Errorf("request %d: duration must be positive", ix)
		}
	}

	return nil
}
