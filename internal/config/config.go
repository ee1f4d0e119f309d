// internal/config/config.go
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

// Config is the persisted application configuration
type Config struct {
	FetchLimit int       `toml:"fetch_limit"`
	Profiles   []Profile `toml:"profiles"`
	Theme      Theme     `toml:"theme_colors"`
}

// Theme defines the color palette
type Theme struct {
	TextPrimary   string `toml:"text_primary"`
	TextSecondary string `toml:"text_secondary"`
	TextFaint     string `toml:"text_faint"`
	Accent        string `toml:"accent"`
	Success       string `toml:"success"`
	Error         string `toml:"error"`
	Highlight     string `toml:"highlight"`
	Warning       string `toml:"warning"`
	BgSecondary   string `toml:"bg_secondary"`
}

// DefaultConfig returns a config with default values (Nord palette)
func DefaultConfig() *Config {
	return &Config{
		FetchLimit: 1000,
		Profiles:   []Profile{},
		Theme: Theme{
			TextPrimary:   "#D8DEE9",
			TextSecondary: "#81A1C1",
			TextFaint:     "#4C566A",
			Accent:        "#88C0D0",
			Success:       "#A3BE8C",
			Error:         "#BF616A",
			Highlight:     "#8FBCBB",
			Warning:       "#D08770",
			BgSecondary:   "#3B4252",
		},
	}
}

// Path returns the XDG-compliant config file path
func Path() (string, error) {
	return xdg.ConfigFile("dbvim/config.toml")
}

// Load reads the config from disk, creating the default on first run.
// Profile passwords are decrypted with the keyring master key; a missing
// keyring leaves them empty rather than failing startup.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := cfg.Save(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	if cfg.FetchLimit <= 0 {
		cfg.FetchLimit = 1000
	}
	if cfg.Theme.TextPrimary == "" {
		cfg.Theme = DefaultConfig().Theme
	}
	cfg.dedupProfiles()

	if secrets, err := OpenSecrets(); err == nil {
		for i := range cfg.Profiles {
			p := &cfg.Profiles[i]
			if p.EncryptedPassword != "" {
				if plain, err := secrets.Decrypt(p.EncryptedPassword); err == nil {
					p.Password = plain
				}
			}
			if p.EncryptedSSHPassword != "" {
				if plain, err := secrets.Decrypt(p.EncryptedSSHPassword); err == nil {
					p.SSHPassword = plain
				}
			}
		}
	}

	return &cfg, nil
}

// Save writes the config to disk with owner-only permissions, encrypting
// passwords first.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	if secrets, err := OpenSecrets(); err == nil {
		for i := range c.Profiles {
			p := &c.Profiles[i]
			if p.Password != "" {
				if enc, err := secrets.Encrypt(p.Password); err == nil {
					p.EncryptedPassword = enc
				}
			}
			if p.SSHPassword != "" {
				if enc, err := secrets.Encrypt(p.SSHPassword); err == nil {
					p.EncryptedSSHPassword = enc
				}
			}
		}
	}

	return toml.NewEncoder(f).Encode(c)
}

// dedupProfiles drops later profiles that address the same normalized
// (kind, target) as an earlier one.
func (c *Config) dedupProfiles() {
	seen := make(map[string]bool)
	kept := c.Profiles[:0]
	for _, p := range c.Profiles {
		key := p.TargetKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, p)
	}
	c.Profiles = kept
}
