package config

import "time"

// Config holds runtime settings for the hack-or-snooze client.
//
// Units: RequestTimeout and OnlineCheckInterval are time.Duration values;
// on the command line they are given in whole seconds.
type Config struct {
	APIBaseURL          string
	SessionDBPath       string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	RequestsPerSecond   float64
	StoriesLimit        int
	LogLevel            string
	Color               string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://hack-or-snooze-v3.herokuapp.com"
	c.SessionDBPath = "session.db"
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 5 * time.Second
	c.RequestsPerSecond = 5
	c.StoriesLimit = 25
	c.LogLevel = "warn"
	c.Color = "auto"
}

// LoadConfig builds a Config from defaults, then the optional config file
// named by -c/-config, then command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
