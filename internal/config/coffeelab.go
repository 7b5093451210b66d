package config

import (
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/coffeelab/coffeelab/internal/client"
	"github.com/coffeelab/coffeelab/internal/config/data"
	"github.com/coffeelab/coffeelab/internal/model1"
	"github.com/coffeelab/coffeelab/internal/slogs"
)

// Default values
const (
	DefaultAPITimeout = client.DefaultTimeout
	DefaultView       = "dashboard"
	DefaultTimezone   = "Europe/Paris"
)

// Coffeelab represents the coffeelab global configuration.
type Coffeelab struct {
	APIURL      string            `yaml:"apiURL"`
	APITimeout  string            `yaml:"apiTimeout"`
	RefreshRate float32           `yaml:"refreshRate"`
	PageSize    int               `yaml:"pageSize"`
	DefaultView string            `yaml:"defaultView"`
	ReadOnly    bool              `yaml:"readOnly"`
	NaturalSort bool              `yaml:"naturalSort"`
	UI          data.UI           `yaml:"ui"`
	Logger      data.Logger       `yaml:"logger"`
	Views       data.Views        `yaml:"views,omitempty"`
	Aliases     map[string]string `yaml:"aliases,omitempty"`

	mx sync.RWMutex
}

// NewCoffeelab creates a Coffeelab with default settings.
func NewCoffeelab() *Coffeelab {
	c := Coffeelab{
		APIURL:      client.DefaultBaseURL,
		APITimeout:  DefaultAPITimeout.String(),
		RefreshRate: DefaultRefreshRate,
		PageSize:    model1.DefaultPageSize,
		DefaultView: DefaultView,
		UI:          data.UI{Timezone: DefaultTimezone},
		Logger:      data.Logger{File: AppLogFile},
	}
	c.Logger.Validate()

	return &c
}

// Validate ensures Coffeelab has valid settings.
func (c *Coffeelab) Validate() {
	c.mx.Lock()
	defer c.mx.Unlock()

	if c.APIURL == "" {
		c.APIURL = client.DefaultBaseURL
	}
	if c.APITimeout == "" {
		c.APITimeout = DefaultAPITimeout.String()
	}
	if c.RefreshRate <= 0 {
		c.RefreshRate = DefaultRefreshRate
	}
	if c.PageSize < 1 {
		c.PageSize = model1.DefaultPageSize
	}
	if c.DefaultView == "" {
		c.DefaultView = DefaultView
	}
	if c.UI.Timezone == "" {
		c.UI.Timezone = DefaultTimezone
	}
	c.Logger.Validate()
	if c.Views == nil {
		c.Views = make(data.Views)
	}
	c.Views.Validate()
}

// Override applies CLI flag overrides to the configuration.
func (c *Coffeelab) Override(flags *data.Flags) {
	if flags == nil {
		return
	}

	c.mx.Lock()
	defer c.mx.Unlock()

	if IsStringSet(flags.APIURL) {
		c.APIURL = *flags.APIURL
	}
	if IsStringSet(flags.APITimeout) {
		c.APITimeout = *flags.APITimeout
	}
	if flags.RefreshRate != nil && *flags.RefreshRate > 0 {
		c.RefreshRate = *flags.RefreshRate
	}
	if flags.PageSize != nil && *flags.PageSize > 0 {
		c.PageSize = *flags.PageSize
	}
	if IsStringSet(flags.Command) {
		c.DefaultView = *flags.Command
	}
	if IsBoolSet(flags.Headless) {
		c.UI.Headless = true
	}
	if IsStringSet(flags.LogLevel) {
		c.Logger.Level = *flags.LogLevel
	}
	if IsStringSet(flags.LogFile) {
		c.Logger.File = *flags.LogFile
	}
	if IsBoolSet(flags.ReadOnly) {
		c.ReadOnly = true
	}
	// Write flag overrides ReadOnly
	if IsBoolSet(flags.Write) {
		c.ReadOnly = false
	}
}

// restoreFlagged resets every field Override may set to its value in file.
func (c *Coffeelab) restoreFlagged(file *Coffeelab) {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.APIURL, c.APITimeout = file.APIURL, file.APITimeout
	c.RefreshRate, c.PageSize = file.RefreshRate, file.PageSize
	c.DefaultView, c.ReadOnly = file.DefaultView, file.ReadOnly
	c.UI.Headless = file.UI.Headless
	c.Logger.Level, c.Logger.File = file.Logger.Level, file.Logger.File
}

func (c *Coffeelab) clone() *Coffeelab {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return &Coffeelab{
		APIURL:      c.APIURL,
		APITimeout:  c.APITimeout,
		RefreshRate: c.RefreshRate,
		PageSize:    c.PageSize,
		DefaultView: c.DefaultView,
		ReadOnly:    c.ReadOnly,
		NaturalSort: c.NaturalSort,
		UI:          c.UI,
		Logger:      c.Logger,
		Views:       maps.Clone(c.Views),
		Aliases:     maps.Clone(c.Aliases),
	}
}

// GetAPITimeout returns the parsed API timeout duration.
func (c *Coffeelab) GetAPITimeout() (time.Duration, error) {
	c.mx.RLock()
	s := c.APITimeout
	c.mx.RUnlock()

	timeout, err := time.ParseDuration(s)
	if err != nil {
		return 0, &ConfigError{Field: "apiTimeout", Reason: fmt.Sprintf("invalid duration %q: %v", s, err)}
	}
	if timeout <= 0 {
		return 0, &ConfigError{Field: "apiTimeout", Reason: fmt.Sprintf("must be positive, got %s", s)}
	}

	return timeout, nil
}

// ClientConfig returns the API client settings.
func (c *Coffeelab) ClientConfig() (client.ClientConfig, error) {
	timeout, err := c.GetAPITimeout()
	if err != nil {
		return client.ClientConfig{}, err
	}

	c.mx.RLock()
	defer c.mx.RUnlock()

	return client.ClientConfig{BaseURL: c.APIURL, Timeout: timeout}, nil
}

// LogConfig returns the logger settings.
func (c *Coffeelab) LogConfig() slogs.Config {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return slogs.Config{
		Level:      c.Logger.Level,
		Format:     c.Logger.Format,
		File:       c.Logger.File,
		MaxSize:    c.Logger.MaxSize,
		MaxDays:    c.Logger.MaxDays,
		MaxBackups: c.Logger.MaxBackups,
	}
}

// RefreshDuration returns the refresh rate as a duration.
func (c *Coffeelab) RefreshDuration() time.Duration {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return time.Duration(float64(c.RefreshRate) * float64(time.Second))
}

// Location returns the display timezone, UTC when unknown.
func (c *Coffeelab) Location() *time.Location {
	c.mx.RLock()
	tz := c.UI.Timezone
	c.mx.RUnlock()

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsReadOnly returns true when mutations are disabled.
func (c *Coffeelab) IsReadOnly() bool {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.ReadOnly
}

// ActiveView returns the resource shown on startup.
func (c *Coffeelab) ActiveView() string {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.DefaultView
}

// ViewSettings returns the table settings of a resource.
func (c *Coffeelab) ViewSettings(resource string) data.View {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.Views.Lookup(resource, c.PageSize)
}

// SetViewSettings records the table settings of a resource.
func (c *Coffeelab) SetViewSettings(resource string, v data.View) {
	c.mx.Lock()
	defer c.mx.Unlock()

	if c.Views == nil {
		c.Views = make(data.Views)
	}
	c.Views[resource] = v
}

// TableOptions returns the tabular view options of a resource.
func (c *Coffeelab) TableOptions(resource string) []model1.Option {
	v := c.ViewSettings(resource)

	c.mx.RLock()
	defer c.mx.RUnlock()

	return []model1.Option{
		model1.WithPageSize(v.PageSize),
		model1.WithNaturalSort(c.NaturalSort),
	}
}
