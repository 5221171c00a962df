package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Project is one entry of the static CI project registry, keyed by the short
// name users type in commands.
type Project struct {
	ID      int      `json:"id" yaml:"id"`
	Channel string   `json:"channel" yaml:"channel"`
	Ref     string   `json:"ref" yaml:"ref"`
	Users   []string `json:"users" yaml:"users"`
}

// Projects is the registry loaded once at startup. It is never mutated after
// LoadProjects returns.
type Projects map[string]Project

// UnknownProjectError reports a command referencing a project key that is not
// in the registry.
type UnknownProjectError struct {
	Key string
}

func (e *UnknownProjectError) Error() string {
	return fmt.Sprintf("unknown project %q", e.Key)
}

// LoadProjects reads the registry from a JSON or YAML file, chosen by
// extension (.yaml/.yml parse as YAML, anything else as JSON).
func LoadProjects(path string) (Projects, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read projects file %s: %w", path, err)
	}

	projects := make(Projects)
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &projects); err != nil {
			return nil, fmt.Errorf("failed to parse projects file %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &projects); err != nil {
			return nil, fmt.Errorf("failed to parse projects file %s: %w", path, err)
		}
	}

	if len(projects) == 0 {
		return nil, fmt.Errorf("projects file %s contains no projects", path)
	}

	return projects, nil
}

// Lookup returns the project for key, or UnknownProjectError.
func (p Projects) Lookup(key string) (Project, error) {
	project, ok := p[key]
	if !ok {
		return Project{}, &UnknownProjectError{Key: key}
	}
	return project, nil
}
