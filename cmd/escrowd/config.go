package main

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/iov-one/custody/commands/server"
	"github.com/iov-one/custody/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const configFile = "escrowd.toml"

// Config is the daemon configuration kept in the home directory.
type Config struct {
	Bind     string `toml:"bind"`
	Metrics  string `toml:"metrics"`
	Debug    bool   `toml:"debug"`
	LogLevel string `toml:"log_level"`
}

func defaultConfig() *Config {
	return &Config{
		Bind:     "tcp://localhost:26658",
		Metrics:  "localhost:26660",
		LogLevel: "info",
	}
}

// LoadConfig reads the configuration from the home directory. A default
// configuration is written if the file does not exist yet.
func LoadConfig(home string) (*Config, error) {
	path := filepath.Join(home, configFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		conf := defaultConfig()
		return conf, persist(path, conf)
	}

	conf := defaultConfig()
	meta, err := toml.DecodeFile(path, conf)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "config %s: %s", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Wrapf(errors.ErrInput, "config %s: unknown key %q", path, undecoded[0].String())
	}
	return conf, nil
}

func persist(path string, conf *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0644)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(conf); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

// Logger returns the daemon logger filtered by the configured level.
func (c *Config) Logger() (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).With("module", "escrow")
	lvl, err := log.AllowLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return log.NewFilter(logger, lvl), nil
}

// StartConfig returns the defaults of the start command.
func (c *Config) StartConfig() server.StartConfig {
	return server.StartConfig{
		Bind:    c.Bind,
		Debug:   c.Debug,
		Metrics: c.Metrics,
	}
}
