package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Bench   BenchConfig   `yaml:"bench"`
}

type StorageConfig struct {
	Driver    string `yaml:"driver"`     // "text" or "sqlite"
	Path      string `yaml:"path"`       // .zst / .lz4 suffix compresses text catalogs
	SaveOrder string `yaml:"save_order"` // "inorder" or "preorder"
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

type BenchConfig struct {
	N    int   `yaml:"n"`
	Seed int64 `yaml:"seed"`
}

func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver:    "text",
			Path:      "codices.txt",
			SaveOrder: "inorder",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Bench: BenchConfig{
			N:    2000,
			Seed: 1,
		},
	}
}

func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath == "" {
		for _, p := range []string{"configs/codex.yaml", "codex.yaml"} {
			data, err := os.ReadFile(p)
			if err == nil {
				if err := yaml.Unmarshal(data, cfg); err != nil {
					return cfg, err
				}
				applyDefaults(cfg)
				return cfg, nil
			}
		}
		applyDefaults(cfg)
		return cfg, nil // no file found: use defaults
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return cfg, err
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = def.Storage.Driver
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = def.Storage.Path
	}
	if cfg.Storage.SaveOrder == "" {
		cfg.Storage.SaveOrder = def.Storage.SaveOrder
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
	if cfg.Bench.N <= 0 {
		cfg.Bench.N = def.Bench.N
	}
}
