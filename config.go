package main

import (
	"io/ioutil"
	"os"
	"strings"

	"github.com/horgh/config"
	"github.com/pkg/errors"
)

// Config holds a server's configuration. Grounded on the teacher's
// config.go (early revision)'s checkAndParseConfig: keys read via
// github.com/horgh/config, every key optional, with defaults for anything
// spec.md §6 pins a default for.
type Config struct {
	ListenHost string
	ListenPort string
	ServerName string
	MOTD       []string
}

const (
	defaultListenHost = "127.0.0.1"
	defaultListenPort = "6667"
	defaultServerName = "pyircd"
)

// loadConfig reads an optional config file and applies CLI overrides and
// the SERVER_NAME environment variable, in the precedence spec.md §6
// pins: CLI flag > config file > SERVER_NAME env var > built-in default.
func loadConfig(confFile string, cliHost, cliPort, cliName string) (*Config, error) {
	cfg := &Config{
		ListenHost: defaultListenHost,
		ListenPort: defaultListenPort,
		ServerName: defaultServerName,
	}

	if name := os.Getenv("SERVER_NAME"); name != "" {
		cfg.ServerName = name
	}

	if confFile != "" {
		raw, err := config.ReadStringMap(confFile)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to read config file %s", confFile)
		}

		if v, ok := raw["listen-host"]; ok && v != "" {
			cfg.ListenHost = v
		}
		if v, ok := raw["listen-port"]; ok && v != "" {
			cfg.ListenPort = v
		}
		if v, ok := raw["server-name"]; ok && v != "" {
			cfg.ServerName = v
		}
		if v, ok := raw["motd"]; ok && v != "" {
			cfg.MOTD = strings.Split(v, "\\n")
		}
		if v, ok := raw["motd-file"]; ok && v != "" {
			lines, err := readMOTDFile(v)
			if err != nil {
				return nil, errors.Wrapf(err, "unable to read motd file %s", v)
			}
			cfg.MOTD = lines
		}
	}

	if cliHost != "" {
		cfg.ListenHost = cliHost
	}
	if cliPort != "" {
		cfg.ListenPort = cliPort
	}
	if cliName != "" {
		cfg.ServerName = cliName
	}

	if len(cfg.MOTD) == 0 {
		cfg.MOTD = []string{"Welcome to " + cfg.ServerName}
	}

	return cfg, nil
}

func readMOTDFile(path string) ([]string, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, strings.TrimRight(l, "\r"))
	}
	return out, nil
}
