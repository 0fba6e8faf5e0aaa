/**
* Name:        resolver.go
* Description: maps a student profile to its tutoring persona prompt
* Workflow:    load embedded table, first-match lookup, render name, fallback prompt
 */
package persona

import (
	"embed"
	"fmt"
	"path"
	"strings"
	"text/template"

	"github.com/ndp-coder/Coustmize-ai-backend/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed personas.yaml templates/*.txt
var assets embed.FS

// Persona is one entry of the selection table. Empty Gender or Stream match any value.
type Persona struct {
	Name       string `yaml:"name"`
	ClassGroup string `yaml:"classGroup"`
	Gender     string `yaml:"gender"`
	Stream     string `yaml:"stream"`
	Template   string `yaml:"template"`

	tmpl *template.Template
}

type table struct {
	Personas []Persona `yaml:"personas"`
}

// Matches reports whether every non-empty field of p equals the profile's field.
func (p Persona) Matches(profile models.UserProfile) bool {
	if p.ClassGroup != profile.ClassGroup {
		return false
	}
	if p.Gender != "" && p.Gender != profile.Gender {
		return false
	}
	if p.Stream != "" && p.Stream != profile.Stream {
		return false
	}
	return true
}

// Render fills the student's name into the persona text.
func (p Persona) Render(profile models.UserProfile) (string, error) {
	var b strings.Builder
	if err := p.tmpl.Execute(&b, struct{ Name string }{profile.Name}); err != nil {
		return "", fmt.Errorf("render persona %q: %w", p.Name, err)
	}
	return b.String(), nil
}

type Resolver struct {
	personas []Persona
}

// NewResolver loads the embedded persona table.
func NewResolver() (*Resolver, error) {
	raw, err := assets.ReadFile("personas.yaml")
	if err != nil {
		return nil, err
	}
	var t table
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("parse persona table: %w", err)
	}
	if len(t.Personas) == 0 {
		return nil, fmt.Errorf("persona table is empty")
	}

	for i := range t.Personas {
		p := &t.Personas[i]
		if p.ClassGroup == "" {
			return nil, fmt.Errorf("persona %q has no classGroup", p.Name)
		}
		body, err := assets.ReadFile(path.Join("templates", p.Template))
		if err != nil {
			return nil, fmt.Errorf("persona %q: %w", p.Name, err)
		}
		p.tmpl, err = template.New(p.Template).Option("missingkey=error").Parse(string(body))
		if err != nil {
			return nil, fmt.Errorf("persona %q: %w", p.Name, err)
		}
	}
	return &Resolver{personas: t.Personas}, nil
}

// MustNewResolver panics if the embedded table does not load. Meant for tests
// and package-level vars.
func MustNewResolver() *Resolver {
	r, err := NewResolver()
	if err != nil {
		panic(err)
	}
	return r
}

// Personas returns the table in match order.
func (r *Resolver) Personas() []Persona {
	out := make([]Persona, len(r.personas))
	copy(out, r.personas)
	return out
}

// Lookup returns the first persona matching profile.
func (r *Resolver) Lookup(profile models.UserProfile) (Persona, bool) {
	for _, p := range r.personas {
		if p.Matches(profile) {
			return p, true
		}
	}
	return Persona{}, false
}

// Resolve returns the system prompt for profile. Profiles outside the table get
// the generic prompt from Fallback.
func (r *Resolver) Resolve(profile models.UserProfile) string {
	if p, ok := r.Lookup(profile); ok {
		if text, err := p.Render(profile); err == nil {
			return text
		}
	}
	return Fallback(profile)
}

// Fallback builds the generic tutoring prompt.
func Fallback(profile models.UserProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a helpful AI assistant. The user you are talking to is named %s, aged %s, and is in %s.",
		profile.Name, profile.Age, profile.ClassGroup)
	if profile.Gender != "" {
		fmt.Fprintf(&b, " The user is a %s.", profile.Gender)
	}
	if profile.Stream != "" {
		fmt.Fprintf(&b, " They are preparing for the %s exam.", profile.Stream)
	}
	b.WriteString(" Tailor your responses to be suitable, encouraging, and supportive for this specific student's context.")
	return b.String()
}
