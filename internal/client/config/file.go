package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/hackorsnooze/internal/flagx"
	"github.com/dmitrijs2005/hackorsnooze/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the config file. Absent keys leave
// the current value untouched.
type FileConfig struct {
	APIBaseURL          *string         `json:"api_base_url" yaml:"api_base_url"`
	SessionDBPath       *string         `json:"session_db_path" yaml:"session_db_path"`
	RequestTimeout      *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval" yaml:"online_check_interval"`
	RequestsPerSecond   *float64        `json:"requests_per_second" yaml:"requests_per_second"`
	StoriesLimit        *int            `json:"stories_limit" yaml:"stories_limit"`
	LogLevel            *string         `json:"log_level" yaml:"log_level"`
	Color               *string         `json:"color" yaml:"color"`
}

// parseFile overlays cfg with the file given by -c/-config. Files ending in
// .yaml or .yml are read as YAML, everything else as JSON.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	setIf(&cfg.APIBaseURL, fc.APIBaseURL)
	setIf(&cfg.SessionDBPath, fc.SessionDBPath)
	setIf(&cfg.RequestsPerSecond, fc.RequestsPerSecond)
	setIf(&cfg.StoriesLimit, fc.StoriesLimit)
	setIf(&cfg.LogLevel, fc.LogLevel)
	setIf(&cfg.Color, fc.Color)
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = fc.OnlineCheckInterval.Duration
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
