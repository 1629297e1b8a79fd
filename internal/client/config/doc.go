// Package config loads runtime configuration for the hack-or-snooze client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. JSON by default,
//     YAML when the file name ends in .yaml or .yml.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # File schema
//
// Intervals use timex.Duration, so they can be strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "api_base_url": "https://hack-or-snooze-v3.herokuapp.com",
//	  "session_db_path": "session.db",
//	  "request_timeout": "10s",
//	  "online_check_interval": "5s",
//	  "requests_per_second": 5,
//	  "stories_limit": 25,
//	  "log_level": "info",
//	  "color": "auto"
//	}
//
// Environment variables are not read, except NO_COLOR by the renderer.
package config
