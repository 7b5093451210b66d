package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/coffeelab/coffeelab/internal/config/data"
)

// Config is the root configuration for the application.
type Config struct {
	Coffeelab *Coffeelab `yaml:"coffeelab"`
	path      string
	flags     *data.Flags
	file      *Coffeelab
	mx        sync.RWMutex
}

// NewConfig creates a new Config with default settings.
func NewConfig() *Config {
	return &Config{
		Coffeelab: NewCoffeelab(),
		path:      AppConfigFile,
	}
}

// Path returns the file the config was last loaded from.
func (c *Config) Path() string {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.path
}

// Load loads the configuration from the given path.
// If the file doesn't exist, the current config is kept.
func (c *Config) Load(path string, force bool) error {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.path = path
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if !force {
			return nil
		}
		return fmt.Errorf("config file does not exist: %s", path)
	}

	cl, err := readFile(path)
	if err != nil {
		return err
	}
	c.Coffeelab, c.file = cl, nil

	return nil
}

func readFile(path string) (*Coffeelab, error) {
	loaded := Config{Coffeelab: NewCoffeelab()}
	if err := data.LoadYAML(path, &loaded); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	if loaded.Coffeelab == nil {
		loaded.Coffeelab = NewCoffeelab()
	}
	loaded.Coffeelab.Validate()
	if _, err := loaded.Coffeelab.GetAPITimeout(); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	return loaded.Coffeelab, nil
}

// Save saves the configuration to its path.
// If force is false, only saves if the file already exists.
// Settings coming from CLI flags are written with their file values.
func (c *Config) Save(force bool) error {
	c.mx.RLock()
	path, cl, file := c.path, c.Coffeelab, c.file
	c.mx.RUnlock()

	if path == "" {
		return fmt.Errorf("no config file path configured")
	}
	if _, err := os.Stat(path); err != nil && !force {
		return nil
	}

	out := cl.clone()
	if file != nil {
		out.restoreFlagged(file)
	}
	if err := data.SaveYAML(path, &Config{Coffeelab: out}); err != nil {
		return fmt.Errorf("failed to save config to %s: %w", path, err)
	}

	return nil
}

// Refine applies CLI flags on top of the loaded file.
// Precedence is flag > file > default. The flags are kept for Reload.
func (c *Config) Refine(flags *data.Flags) error {
	c.mx.Lock()
	cl := c.Coffeelab
	if cl != nil {
		c.flags, c.file = flags, cl.clone()
	}
	c.mx.Unlock()

	if cl == nil {
		return fmt.Errorf("config.Coffeelab is nil")
	}
	cl.Override(flags)
	cl.Validate()

	if _, err := cl.GetAPITimeout(); err != nil {
		return err
	}

	return nil
}

// Reload reads the file again and reapplies the CLI flags.
// The settings are swapped only once the flags are applied.
func (c *Config) Reload() error {
	c.mx.Lock()
	defer c.mx.Unlock()

	cl, err := readFile(c.path)
	if err != nil {
		return err
	}
	file := cl.clone()
	cl.Override(c.flags)
	cl.Validate()
	if _, err := cl.GetAPITimeout(); err != nil {
		return err
	}
	c.Coffeelab, c.file = cl, file

	return nil
}

// Settings returns the active global settings.
func (c *Config) Settings() *Coffeelab {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.Coffeelab
}
