package config

import (
	"errors"
	"fmt"
	"os"

	"dario.cat/mergo"
)

const defaultDotEnvPath = ".env"

type configBuilder struct {
	configs    []*StructuredConfig
	dotEnvPath string
	err        error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs:    make([]*StructuredConfig, 0, 5),
		dotEnvPath: defaultDotEnvPath,
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, config.validate()
}

// withDotEnv reads the .env file without touching the process environment.
// A missing file is not an error.
func (b *configBuilder) withDotEnv() *configBuilder {
	dotEnvCfg := &StructuredConfig{}
	found, err := parseDotEnv(b.dotEnvPath, dotEnvCfg)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	if found {
		b.configs = append(b.configs, dotEnvCfg)
	}

	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags() *configBuilder {
	flags := ParseFlags()

	b.configs = append(b.configs, flags)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string

	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
		}
	}

	if jsonPath == "" {
		return b
	}

	jsonCfg, err := parseJSON(jsonPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = append(b.configs, jsonCfg)

	return b
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
