package config

import (
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/coffeelab/coffeelab/internal/config/data"
)

// Aliases represents the alias configuration.
type Aliases struct {
	Alias map[string]string `yaml:"aliases"`
	mx    sync.RWMutex      `yaml:"-"`
}

// DefaultAliases are the built-in command aliases.
var DefaultAliases = map[string]string{
	// Sales
	"orders": "sales/orders",
	"order":  "sales/orders",
	"ord":    "sales/orders",
	"o":      "sales/orders",
	"bills":  "sales/bills",
	"bill":   "sales/bills",
	"b":      "sales/bills",

	// Inventory
	"stock":    "inventory/stock",
	"products": "inventory/stock",
	"product":  "inventory/stock",
	"inv":      "inventory/stock",
	"s":        "inventory/stock",
	"alerts":   "inventory/alerts",
	"alert":    "inventory/alerts",
	"a":        "inventory/alerts",

	// Dashboard
	"dashboard": "dashboard",
	"dash":      "dashboard",
	"home":      "dashboard",
	"d":         "dashboard",
}

// NewAliases creates an Aliases with default aliases loaded.
func NewAliases() *Aliases {
	a := &Aliases{
		Alias: make(map[string]string, len(DefaultAliases)),
	}
	for k, v := range DefaultAliases {
		a.Alias[k] = v
	}
	return a
}

// Load loads aliases from the default config file.
// Merges with default aliases, with file aliases taking precedence.
func (a *Aliases) Load() error {
	return a.LoadFrom(AppAliasesFile)
}

// LoadFrom loads aliases from a specific file path.
func (a *Aliases) LoadFrom(path string) error {
	a.mx.Lock()
	defer a.mx.Unlock()

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	loaded := &Aliases{
		Alias: make(map[string]string),
	}
	if err := data.LoadYAML(path, loaded); err != nil {
		return err
	}
	for k, v := range loaded.Alias {
		a.Alias[k] = v
	}

	return nil
}

// MergeMap merges a plain alias map, e.g. the aliases section of the main config.
func (a *Aliases) MergeMap(m map[string]string) {
	a.mx.Lock()
	defer a.mx.Unlock()

	for k, v := range m {
		a.Alias[k] = v
	}
}

// Resolve returns the resource for a command, ignoring case and a leading colon.
func (a *Aliases) Resolve(cmd string) (string, bool) {
	cmd = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(cmd, ":")))

	a.mx.RLock()
	defer a.mx.RUnlock()

	if res, ok := a.Alias[cmd]; ok {
		return res, true
	}
	for _, res := range a.Alias {
		if res == cmd {
			return res, true
		}
	}

	return "", false
}

// Get returns the resource for an alias, or the original if not found.
func (a *Aliases) Get(alias string) string {
	if res, ok := a.Resolve(alias); ok {
		return res
	}
	return alias
}

// Set sets an alias.
func (a *Aliases) Set(alias, resource string) {
	a.mx.Lock()
	defer a.mx.Unlock()

	a.Alias[alias] = resource
}

// Delete removes an alias.
func (a *Aliases) Delete(alias string) {
	a.mx.Lock()
	defer a.mx.Unlock()

	delete(a.Alias, alias)
}

// ShortNames returns the aliases of every resource, sorted.
func (a *Aliases) ShortNames() map[string][]string {
	a.mx.RLock()
	defer a.mx.RUnlock()

	mm := make(map[string][]string)
	for k, v := range a.Alias {
		mm[v] = append(mm[v], k)
	}
	for _, ss := range mm {
		sort.Strings(ss)
	}

	return mm
}
