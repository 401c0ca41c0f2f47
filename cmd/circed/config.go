package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds the editor settings read from ~/.circedrc, a flat key=value
// file. Unknown keys are ignored so older config files keep working.
type Config struct {
	SaveDirectory string
	DefaultWires  int
	StartMenu     bool
	Confirmations bool
}

func defaultConfig() *Config {
	return &Config{
		DefaultWires:  defaultWires,
		StartMenu:     true,
		Confirmations: true,
	}
}

func loadConfig() *Config {
	config := defaultConfig()
	home, err := os.UserHomeDir()
	if err != nil {
		return config
	}
	data, err := os.ReadFile(filepath.Join(home, ".circedrc"))
	if err != nil {
		return config
	}
	config.apply(string(data), home)
	return config
}

// apply folds key=value lines into the config. Split from loadConfig so the
// parsing is testable without a home directory.
func (c *Config) apply(text, home string) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "savedir", "savedirectory":
			if strings.HasPrefix(value, "~") {
				value = filepath.Join(home, strings.TrimPrefix(value, "~"))
			}
			c.SaveDirectory = value
		case "wires", "defaultwires":
			// New circuits get this many wires; the startup menu's 1-9 keys
			// override it per circuit.
			if n, err := strconv.Atoi(value); err == nil && n >= 1 && n <= 9 {
				c.DefaultWires = n
			}
		case "startmenu":
			c.StartMenu = value == "true"
		case "confirmations", "confirm":
			c.Confirmations = value == "true"
		}
	}
}

// GetSavePath prefixes filename with the configured save directory, creating
// the directory on first use.
func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}
