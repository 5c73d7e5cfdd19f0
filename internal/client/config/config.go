package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/flatauth/internal/flagx"
)

// Config holds runtime settings for the flatauth CLI.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:3000"
	c.RequestTimeout = 5 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	return LoadConfigFromArgs(os.Args[1:])
}

// globalValueFlags are the flags in front of the subcommand that take a value.
var globalValueFlags = []string{"-a", "-t", "-c", "-config", "--config"}

// LoadConfigFromArgs is LoadConfig for an explicit argument list. Only the
// flags before the subcommand are read, so subcommand values such as a
// password of "-t" are never taken for global flags.
func LoadConfigFromArgs(args []string) *Config {
	args = flagx.LeadingFlags(args, globalValueFlags)

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
