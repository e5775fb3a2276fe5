package level

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/tactics/internal/game/roster"
)

// EnemyTemplate is a reusable enemy archetype loaded from YAML.
type EnemyTemplate struct {
	ID        string  `yaml:"id"`
	Name      string  `yaml:"name"`
	Behavior  string  `yaml:"behavior"`
	Speed     int     `yaml:"speed"`
	MaxHealth float64 `yaml:"max_health"`
}

// Validate checks the template.
//
// Postcondition: Returns nil iff ID and Name are non-empty, Behavior parses,
// Speed >= 1, and MaxHealth > 0.
func (t *EnemyTemplate) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("enemy template: id must not be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("enemy template %q: name must not be empty", t.ID)
	}
	if _, err := roster.ParseBehavior(t.Behavior); err != nil {
		return fmt.Errorf("enemy template %q: %w", t.ID, err)
	}
	if t.Speed < 1 {
		return fmt.Errorf("enemy template %q: speed must be >= 1", t.ID)
	}
	if t.MaxHealth <= 0 {
		return fmt.Errorf("enemy template %q: max_health must be > 0", t.ID)
	}
	return nil
}

// LoadTemplateFromBytes parses and validates one enemy template.
func LoadTemplateFromBytes(data []byte) (*EnemyTemplate, error) {
	var tmpl EnemyTemplate
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing enemy template YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// Templates indexes enemy templates by ID.
type Templates map[string]*EnemyTemplate

// LoadTemplates reads every *.yaml file in dir.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all templates or the first read, parse, validate, or
// duplicate-ID error.
func LoadTemplates(dir string) (Templates, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading enemy template dir %q: %w", dir, err)
	}

	out := Templates{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		if _, dup := out[tmpl.ID]; dup {
			return nil, fmt.Errorf("loading %q: duplicate enemy template id %q", path, tmpl.ID)
		}
		out[tmpl.ID] = tmpl
	}
	return out, nil
}
