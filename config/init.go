package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	yaml "gopkg.in/yaml.v2"
)

// reading config error is fatal, and exists main thread
func processError(err error) {
	fmt.Println(err)
	os.Exit(2)
}

func readFile(path string, cfg *Configuration) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	return decoder.Decode(cfg)
}

func readEnv(cfg *Configuration) error {
	return envconfig.Process("", cfg)
}

// Load reads path, overlays the environment and fills defaults.
// A missing file is not an error, the environment alone may configure the bridge.
func Load(path string) (Configuration, error) {
	var cfg Configuration
	if err := readFile(path, &cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("config file %s: %w", path, err)
	}
	if err := readEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("config env: %w", err)
	}
	cfg.Defaults()
	if cfg.Bridge.GovContract == "" {
		return cfg, errors.New("bridge.gov_contract is required")
	}
	return cfg, nil
}

func Init(path string) {
	cfg, err := Load(path)
	if err != nil {
		processError(err)
	}
	Config = cfg
}
