/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package manifest

import (
	"fmt"
	"os"

	"github.com/go-openapi/strfmt"
	"gopkg.in/yaml.v3"
)

// CurrentVersion is the manifest schema version this package understands.
const CurrentVersion = 1

// Manifest is a declarative set of key bindings for a factory: each binding
// aliases a key to a provider key that was registered in code. Manifests let
// deployments pick among speculatively registered alternatives (platform
// backends, driver variants) without recompiling.
type Manifest struct {
	Version     int       `yaml:"version"`
	GeneratedAt string    `yaml:"generatedAt,omitempty"`
	Bindings    []Binding `yaml:"bindings"`
}

// Binding aliases Key to the producer set registered under Provider.
// Key and Provider support ${VAR} environment expansion.
type Binding struct {
	Key      string `yaml:"key"`
	Provider string `yaml:"provider"`
	Doc      string `yaml:"doc,omitempty"`
}

// Load reads and parses a manifest file, expanding environment references in
// binding keys and providers.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes manifest YAML, expanding environment references in binding
// keys and providers.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	for i := range m.Bindings {
		m.Bindings[i].Key = os.ExpandEnv(m.Bindings[i].Key)
		m.Bindings[i].Provider = os.ExpandEnv(m.Bindings[i].Provider)
	}
	return &m, nil
}

// Validate checks structural soundness: supported version, a valid
// generatedAt timestamp when present, non-empty binding fields, no duplicate
// keys, and no self-referential bindings.
func (m *Manifest) Validate() error {
	if m.Version != CurrentVersion {
		return fmt.Errorf("unsupported manifest version %d (want %d)", m.Version, CurrentVersion)
	}
	if m.GeneratedAt != "" && !strfmt.IsDateTime(m.GeneratedAt) {
		return fmt.Errorf("generatedAt %q is not an RFC 3339 date-time", m.GeneratedAt)
	}
	seen := make(map[string]int, len(m.Bindings))
	for i, b := range m.Bindings {
		if b.Key == "" {
			return fmt.Errorf("binding %d: empty key", i)
		}
		if b.Provider == "" {
			return fmt.Errorf("binding %d (%q): empty provider", i, b.Key)
		}
		if b.Key == b.Provider {
			return fmt.Errorf("binding %d (%q): key aliases itself", i, b.Key)
		}
		if prev, dup := seen[b.Key]; dup {
			return fmt.Errorf("binding %d (%q): duplicate of binding %d", i, b.Key, prev)
		}
		seen[b.Key] = i
	}
	return nil
}

// Generated parses the generatedAt field. The zero DateTime is returned when
// the field is absent.
func (m *Manifest) Generated() (strfmt.DateTime, error) {
	if m.GeneratedAt == "" {
		return strfmt.DateTime{}, nil
	}
	return strfmt.ParseDateTime(m.GeneratedAt)
}
