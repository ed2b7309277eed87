// Package config holds the server settings read from an optional YAML file
// and overridden by command line flags.
package config

import (
	"io/ioutil"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr string `yaml:"addr"`
	// Scene is a path to a scene file. It wins over Demo.
	Scene string `yaml:"scene"`
	Demo  string `yaml:"demo"`
	// TickRate is animation steps per second, 0 disables the ticker.
	TickRate float64 `yaml:"tickrate"`
	// Aspect overrides the scene camera aspect when non zero.
	Aspect  float32 `yaml:"aspect"`
	WebPath string  `yaml:"webpath"`
}

func Default() Config {
	return Config{
		Addr:     ":8000",
		Demo:     "solar",
		TickRate: 30,
		WebPath:  "web",
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	} else if err != nil {
		return c, errors.Wrapf(err, "Failed to read config %q", path)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Default(), errors.Wrapf(err, "Failed to parse config %q", path)
	}
	if err := c.Validate(); err != nil {
		return Default(), errors.Wrapf(err, "config %q", path)
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.TickRate < 0 {
		return errors.Errorf("negative tickrate %v", c.TickRate)
	}
	if c.Aspect < 0 {
		return errors.Errorf("negative aspect %v", c.Aspect)
	}
	if c.Scene == "" && c.Demo == "" {
		return errors.New("neither scene nor demo set")
	}
	return nil
}

// TickInterval is the period between animation steps.
func (c Config) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / c.TickRate)
}
