package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/coffeelab/coffeelab/internal/config/data"
)

// HotKey binds a shortcut to a command, e.g. Shift-0 to `:alerts`.
type HotKey struct {
	ShortCut    string `yaml:"shortCut"`
	Override    bool   `yaml:"override"`
	Description string `yaml:"description"`
	Command     string `yaml:"command"`
}

// Matches checks the shortcut against a key name, ignoring case and blanks.
func (h HotKey) Matches(key string) bool {
	return normalizeShortCut(h.ShortCut) == normalizeShortCut(key)
}

func (h HotKey) validate(name string) error {
	if strings.TrimSpace(h.ShortCut) == "" {
		return &ConfigError{Field: "hotKeys." + name + ".shortCut", Reason: "shortcut is required"}
	}
	if strings.TrimSpace(strings.TrimPrefix(h.Command, ":")) == "" {
		return &ConfigError{Field: "hotKeys." + name + ".command", Reason: "command is required"}
	}
	return nil
}

func normalizeShortCut(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

// HotKeys holds the user defined shortcuts from hotkeys.yaml.
type HotKeys struct {
	HotKey map[string]HotKey `yaml:"hotKeys"`
	mx     sync.RWMutex      `yaml:"-"`
}

// NewHotKeys creates an empty HotKeys configuration.
func NewHotKeys() *HotKeys {
	return &HotKeys{
		HotKey: make(map[string]HotKey),
	}
}

// Load reads AppHotkeysFile.
func (h *HotKeys) Load() error {
	return h.LoadFrom(AppHotkeysFile)
}

// LoadFrom replaces the hotkeys with the ones in path. A missing file yields
// no hotkeys. Invalid entries are skipped and reported, the rest still load.
func (h *HotKeys) LoadFrom(path string) error {
	var loaded HotKeys
	if _, err := os.Stat(path); err == nil {
		if err := data.LoadYAML(path, &loaded); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("hotkeys %s: %w", path, err)
	}

	mm := make(map[string]HotKey, len(loaded.HotKey))
	var errs []error
	for name, hk := range loaded.HotKey {
		if err := hk.validate(name); err != nil {
			errs = append(errs, err)
			continue
		}
		mm[name] = hk
	}

	h.mx.Lock()
	h.HotKey = mm
	h.mx.Unlock()

	return errors.Join(errs...)
}

// Get returns a hotkey by name, or nil if not found.
func (h *HotKeys) Get(name string) *HotKey {
	h.mx.RLock()
	defer h.mx.RUnlock()

	if hk, ok := h.HotKey[name]; ok {
		return &hk
	}
	return nil
}

// Lookup returns the hotkey bound to key. When several match, the first by name wins.
func (h *HotKeys) Lookup(key string) (*HotKey, bool) {
	for _, n := range h.Names() {
		if hk := h.Get(n); hk != nil && hk.Matches(key) {
			return hk, true
		}
	}
	return nil, false
}

// Set sets a hotkey by name.
func (h *HotKeys) Set(name string, hk HotKey) {
	h.mx.Lock()
	defer h.mx.Unlock()

	h.HotKey[name] = hk
}

// Names returns the sorted hotkey names.
func (h *HotKeys) Names() []string {
	h.mx.RLock()
	defer h.mx.RUnlock()

	nn := make([]string, 0, len(h.HotKey))
	for n := range h.HotKey {
		nn = append(nn, n)
	}
	sort.Strings(nn)

	return nn
}
