package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/reoring/jsonapiv"
)

const defaultConfigFile = ".jsonapiv.yaml"

// fileConfig mirrors .jsonapiv.yaml. Command-line flags override it.
type fileConfig struct {
	Language      string `yaml:"language"`
	MaxDepth      int    `yaml:"max_depth"`
	MaxBytes      int64  `yaml:"max_bytes"`
	DuplicateKeys string `yaml:"duplicate_keys"` // ignore, warn or error
	Concurrency   int    `yaml:"concurrency"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		Language:      "en",
		MaxDepth:      jsonapiv.DefaultDecodeOpt().MaxDepth,
		DuplicateKeys: "error",
		Concurrency:   4,
	}
}

// loadConfig reads path over the defaults. A missing file is fine unless
// the user named it explicitly.
func loadConfig(path string, explicit bool) (fileConfig, error) {
	cfg := defaultFileConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	switch cfg.DuplicateKeys {
	case "ignore", "warn", "error":
	default:
		return cfg, errors.Errorf("config %s: duplicate_keys must be ignore, warn or error, got %q", path, cfg.DuplicateKeys)
	}
	return cfg, nil
}

func (c fileConfig) decodeOpt() jsonapiv.DecodeOpt {
	return jsonapiv.DecodeOpt{
		OnDuplicateKey: jsonapiv.ParseSeverity(c.DuplicateKeys),
		MaxDepth:       c.MaxDepth,
		MaxBytes:       c.MaxBytes,
	}
}
