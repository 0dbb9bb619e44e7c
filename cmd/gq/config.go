package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/getoutreach/gq"
)

// fileConfig is the shape of the optional YAML config file.
//
//	endpoint: https://api.example.com/graphql
//	mode: cors
//	headers:
//	  Authorization: Bearer abc
//	options:
//	  credentials: include
type fileConfig struct {
	Endpoint         string `yaml:"endpoint"`
	gq.RequestConfig `yaml:",inline"`
}

// loadFileConfig reads the YAML config file at path. An empty path yields an empty config.
func loadFileConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config file")
	}

	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config file %s", path)
	}
	return cfg, nil
}

// parsePairs parses KEY=VALUE arguments into a map. Only the first "=" separates.
func parsePairs(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, errors.Errorf("invalid pair %q, expected KEY=VALUE", p)
		}
		out[k] = strings.TrimSpace(v)
	}
	return out, nil
}

// buildVariables combines a JSON object of variables with KEY=VALUE string variables, the
// latter winning on collision.
func buildVariables(varsJSON string, pairs []string) (map[string]interface{}, error) {
	vars := map[string]interface{}{}
	if varsJSON != "" {
		if err := json.Unmarshal([]byte(varsJSON), &vars); err != nil {
			return nil, errors.Wrap(err, "parse variables json")
		}
	}

	kv, err := parsePairs(pairs)
	if err != nil {
		return nil, err
	}
	for k, v := range kv {
		vars[k] = v
	}
	return vars, nil
}

// merge layers the flag values over the file config, flags winning.
func (fc fileConfig) merge(endpoint, mode string, header map[string]string) (string, gq.RequestConfig) {
	if endpoint == "" {
		endpoint = fc.Endpoint
	}

	rc := gq.RequestConfig{
		Header:  map[string]string{},
		Mode:    fc.Mode,
		Options: fc.Options,
	}
	for k, v := range fc.Header {
		rc.Header[k] = v
	}
	for k, v := range header {
		rc.Header[k] = v
	}
	if mode != "" {
		rc.Mode = mode
	}
	return endpoint, rc
}
