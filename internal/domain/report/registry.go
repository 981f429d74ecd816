// Package report renders employee records into text reports. Report types
// are looked up by name in a Registry so new ones can be added without
// touching the dispatch code.
package report

import (
	"fmt"
	"sort"

	"github.com/okian/payroll/internal/domain/model"
)

// Generator renders records into a report.
type Generator interface {
	Generate(records []model.Record) string
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(records []model.Record) string

// Generate calls f(records).
func (f GeneratorFunc) Generate(records []model.Record) string { return f(records) }

// Registry maps report names to generators. It is populated at startup and
// read afterwards; it is not safe for concurrent registration.
type Registry struct {
	generators map[string]Generator
}

// Default is the process-wide registry with every built-in report type.
var Default = NewRegistry() //nolint:gochecknoglobals // built once at process start

// NewRegistry returns a registry preloaded with the built-in report types.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	r.MustRegister(PayoutName, Payout{})
	return r
}

// NewEmptyRegistry returns a registry with no report types.
func NewEmptyRegistry() *Registry {
	return &Registry{generators: make(map[string]Generator)}
}

// Register adds a generator under name. Registering a taken name fails with ErrDuplicate.
func (r *Registry) Register(name string, g Generator) error {
	if name == "" || g == nil {
		return fmt.Errorf("register report: name and generator are required")
	}
	if _, ok := r.generators[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}
	r.generators[name] = g
	return nil
}

// MustRegister is Register that panics on error.
func (r *Registry) MustRegister(name string, g Generator) {
	if err := r.Register(name, g); err != nil {
		panic(err)
	}
}

// Lookup returns the generator for name or an *UnknownReportError.
func (r *Registry) Lookup(name string) (Generator, error) {
	g, ok := r.generators[name]
	if !ok {
		return nil, &UnknownReportError{Name: name, Available: r.Names()}
	}
	return g, nil
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate looks up name and renders records with it.
func (r *Registry) Generate(name string, records []model.Record) (string, error) {
	g, err := r.Lookup(name)
	if err != nil {
		return "", err
	}
	return g.Generate(records), nil
}
