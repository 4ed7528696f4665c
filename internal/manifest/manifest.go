// Package manifest loads YAML descriptions of dependency graphs.
//
// A manifest lists dependencies by string token:
//
//	dependencies:
//	  - token: repository
//	    qualifier: primary
//	    lifecycle: SINGLETON
//	    requires:
//	      - config
//	      - { token: cache, qualifier: redis }
package manifest

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultLifecycle applies when a dependency names none.
const DefaultLifecycle = "SINGLETON"

// Manifest is a parsed dependency manifest.
type Manifest struct {
	Dependencies []Dependency `yaml:"dependencies"`
}

// Dependency is one registration.
type Dependency struct {
	Token     string        `yaml:"token"`
	Qualifier string        `yaml:"qualifier,omitempty"`
	Lifecycle string        `yaml:"lifecycle,omitempty"`
	Requires  []Requirement `yaml:"requires,omitempty"`
}

// Requirement references another dependency, optionally qualified.
type Requirement struct {
	Token     string `yaml:"token"`
	Qualifier string `yaml:"qualifier,omitempty"`
}

// UnmarshalYAML accepts a bare token or a token/qualifier mapping.
func (r *Requirement) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		r.Token = value.Value
		r.Qualifier = ""
		return nil
	}

	type plain Requirement
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*r = Requirement(p)
	return nil
}

// String renders the requirement as token or token/qualifier.
func (r Requirement) String() string {
	if r.Qualifier == "" {
		return r.Token
	}
	return r.Token + "/" + r.Qualifier
}

// Key identifies the dependency the way requirements reference it.
func (d Dependency) Key() Requirement {
	return Requirement{Token: d.Token, Qualifier: d.Qualifier}
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes and validates a manifest, filling in default lifecycles.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	var problems []string

	for i := range m.Dependencies {
		dep := &m.Dependencies[i]
		if dep.Token == "" {
			problems = append(problems, fmt.Sprintf("dependency %d: missing token", i))
		}
		if dep.Lifecycle == "" {
			dep.Lifecycle = DefaultLifecycle
		}
		for j, req := range dep.Requires {
			if req.Token == "" {
				problems = append(problems, fmt.Sprintf("dependency %d requirement %d: missing token", i, j))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid manifest: %s", strings.Join(problems, "; "))
	}
	return nil
}
