package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppName names the config and state directories.
const AppName = "coffeelab"

// Environment overrides for the directories.
const (
	EnvConfigDir = "COFFEELAB_CONFIG_DIR"
	EnvStateDir  = "COFFEELAB_STATE_DIR"
)

var (
	// AppConfigDir holds the user editable files, $XDG_CONFIG_HOME/coffeelab.
	AppConfigDir string

	// AppStateDir holds logs and dumps, $XDG_STATE_HOME/coffeelab.
	AppStateDir string

	// AppConfigFile is coffeelab.yaml in AppConfigDir.
	AppConfigFile string

	// AppHotkeysFile is hotkeys.yaml in AppConfigDir.
	AppHotkeysFile string

	// AppAliasesFile is aliases.yaml in AppConfigDir.
	AppAliasesFile string

	// AppLogFile is coffeelab.log in AppStateDir.
	AppLogFile string

	// AppDumpsDir receives the documents saved from the describe view.
	AppDumpsDir string
)

// InitLocs resolves the application paths and creates the directories.
// COFFEELAB_CONFIG_DIR and COFFEELAB_STATE_DIR win over the XDG variables.
func InitLocs() error {
	configDir, err := locate(EnvConfigDir, "XDG_CONFIG_HOME", ".config")
	if err != nil {
		return err
	}
	stateDir, err := locate(EnvStateDir, "XDG_STATE_HOME", filepath.Join(".local", "state"))
	if err != nil {
		return err
	}
	setLocs(configDir, stateDir)

	for _, dir := range []string{AppConfigDir, AppStateDir, AppDumpsDir} {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	return nil
}

// InitLogLoc ensures the log directory exists.
func InitLogLoc() error {
	return os.MkdirAll(filepath.Dir(AppLogFile), 0o700)
}

func setLocs(configDir, stateDir string) {
	AppConfigDir, AppStateDir = configDir, stateDir

	AppConfigFile = filepath.Join(AppConfigDir, AppName+".yaml")
	AppHotkeysFile = filepath.Join(AppConfigDir, "hotkeys.yaml")
	AppAliasesFile = filepath.Join(AppConfigDir, "aliases.yaml")

	AppLogFile = filepath.Join(AppStateDir, AppName+".log")
	AppDumpsDir = filepath.Join(AppStateDir, "dumps")
}

// locate picks the app override, then the XDG base joined with AppName,
// then the fallback below the home directory.
func locate(appEnv, xdgEnv, fallback string) (string, error) {
	if dir := os.Getenv(appEnv); dir != "" {
		return dir, nil
	}
	if base := os.Getenv(xdgEnv); base != "" {
		return filepath.Join(base, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}

	return filepath.Join(home, fallback, AppName), nil
}
