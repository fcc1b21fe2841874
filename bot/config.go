package bot

import (
	coreconfig "github.com/m3rciful/portfoliobot/core/config"
	coredatabase "github.com/m3rciful/portfoliobot/core/database"

	"github.com/m3rciful/portfoliobot/bot/intake"
)

// Config is the full configuration of the portfolio bot: the shared core plus
// the database used by the SQL session backends and the texts shown to users.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Database coredatabase.Config `yaml:"database" toml:"database"`
	Content  intake.Content      `yaml:"content" toml:"content"`
}

// Load reads the configuration file at path (optional) and the environment.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := coreconfig.Decode(path, &cfg); err != nil {
		return nil, err
	}
	if err := coreconfig.Normalize(&cfg.Config); err != nil {
		return nil, err
	}
	cfg.Content = cfg.Content.WithDefaults()
	return &cfg, nil
}

// CoreConfig implements cmd.ConfigCarrier.
func (c *Config) CoreConfig() *coreconfig.Config {
	if c == nil {
		return nil
	}
	return &c.Config
}
