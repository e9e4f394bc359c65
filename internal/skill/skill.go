// Package skill packages the repo's operations as declarative skills. Each
// skill is a SKILL.md document with YAML frontmatter (name, description) and
// Markdown instructions, embedded into the binary and bound at runtime to a
// typed runner that executes the operation.
package skill

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed skills
var builtinFS embed.FS

// Skill is one loaded skill document.
type Skill struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Instructions string `json:"instructions"`
}

// metadata is the YAML frontmatter of a SKILL.md file.
type metadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

const frontmatterDelim = "---"

// Parse splits a SKILL.md document into frontmatter metadata and Markdown
// instructions.
func Parse(content []byte) (Skill, error) {
	text := strings.ReplaceAll(string(content), "\r\n", "\n")

	if !strings.HasPrefix(text, frontmatterDelim+"\n") {
		return Skill{}, fmt.Errorf("missing frontmatter delimiter")
	}
	rest := text[len(frontmatterDelim)+1:]

	end := strings.Index(rest, "\n"+frontmatterDelim)
	if end < 0 {
		return Skill{}, fmt.Errorf("unterminated frontmatter")
	}
	head := rest[:end]
	body := rest[end+len(frontmatterDelim)+1:]
	if i := strings.Index(body, "\n"); i >= 0 {
		body = body[i+1:]
	} else {
		body = ""
	}

	var meta metadata
	if err := yaml.Unmarshal([]byte(head), &meta); err != nil {
		return Skill{}, fmt.Errorf("parse frontmatter: %w", err)
	}
	if meta.Name == "" {
		return Skill{}, fmt.Errorf("frontmatter has no name")
	}

	return Skill{
		Name:         meta.Name,
		Description:  meta.Description,
		Instructions: strings.TrimSpace(body),
	}, nil
}

// Registry holds loaded skills by name.
type Registry struct {
	byName map[string]Skill
}

// LoadBuiltin loads every embedded skills/<name>/SKILL.md document.
func LoadBuiltin() (*Registry, error) {
	r := &Registry{byName: make(map[string]Skill)}

	err := fs.WalkDir(builtinFS, "skills", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != "SKILL.md" {
			return nil
		}

		content, err := builtinFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		s, err := Parse(content)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		if _, exists := r.byName[s.Name]; exists {
			return fmt.Errorf("duplicate skill name %q", s.Name)
		}
		r.byName[s.Name] = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(r.byName) == 0 {
		return nil, fmt.Errorf("no skills embedded")
	}
	return r, nil
}

// Get returns the named skill.
func (r *Registry) Get(name string) (Skill, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// List returns all skills sorted by name.
func (r *Registry) List() []Skill {
	skills := make([]Skill, 0, len(r.byName))
	for _, s := range r.byName {
		skills = append(skills, s)
	}
	sort.Slice(skills, func(i, j int) bool { return skills[i].Name < skills[j].Name })
	return skills
}

// Len returns how many skills are loaded.
func (r *Registry) Len() int {
	return len(r.byName)
}
