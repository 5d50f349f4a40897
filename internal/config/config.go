// Package config loads the BBS configuration from YAML with compiled-in
// defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the BBS configuration.
type Config struct {
	BBS    BBSConfig    `yaml:"bbs"`
	Server ServerConfig `yaml:"server"`
	Paths  PathsConfig  `yaml:"paths"`
}

// BBSConfig holds board identity settings.
type BBSConfig struct {
	Name string `yaml:"name"`
}

// ServerConfig holds network listener settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// PathsConfig holds filesystem paths for persisted data.
type PathsConfig struct {
	Data string `yaml:"data"`
}

// UsersFile returns the path of the account snapshot.
func (p PathsConfig) UsersFile() string {
	return filepath.Join(p.Data, "users.json")
}

// MessagesFile returns the path of the message board snapshot.
func (p PathsConfig) MessagesFile() string {
	return filepath.Join(p.Data, "messages.json")
}

// BulletinsFile returns the path of the bulletin snapshot.
func (p PathsConfig) BulletinsFile() string {
	return filepath.Join(p.Data, "bulletins.json")
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		BBS: BBSConfig{
			Name: "Goose Retro BBS",
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 2323,
		},
		Paths: PathsConfig{
			Data: "./data",
		},
	}
}

// Load reads and parses a YAML config file over the defaults. A missing
// file is not an error: the board runs fine on defaults alone.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}
