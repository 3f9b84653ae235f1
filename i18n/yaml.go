package i18n

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Catalog is one translation document:
//
//	language: fr
//	messages:
//	  conflict.unknown_name: "rien ne s'appelle {name}"
type Catalog struct {
	Language string `yaml:"language"`
	Messages Table  `yaml:"messages"`
}

// LoadYAML decodes a multi-document YAML stream of catalogs.
func LoadYAML(data []byte) ([]Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var out []Catalog
	for {
		var c Catalog
		if err := dec.Decode(&c); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("i18n: decode catalog %d: %w", len(out)+1, err)
		}
		if c.Language == "" {
			return nil, fmt.Errorf("i18n: catalog %d has no language", len(out)+1)
		}
		out = append(out, c)
	}
	return out, nil
}

// RegisterYAML loads catalogs and registers each with Register.
func RegisterYAML(data []byte) error {
	catalogs, err := LoadYAML(data)
	if err != nil {
		return err
	}
	for _, c := range catalogs {
		Register(c.Language, c.Messages)
	}
	return nil
}
