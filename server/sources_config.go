package server

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// SourcesConfig is the optional YAML file listing the hosted eligibility lists:
//
//	sources:
//	  - https://example.com/eligible.txt
//	  - https://example.com/eligible2.txt
type SourcesConfig struct {
	Sources []string `yaml:"sources"`
}

func ReadSourcesFromFile(fileName string) ([]string, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "read sources file")
	}
	var config SourcesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(err, "parse sources file")
	}
	return config.Sources, nil
}

// ParseSourcesList splits a comma separated list of source URLs.
func ParseSourcesList(s string) []string {
	var sources []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			sources = append(sources, part)
		}
	}
	return sources
}
