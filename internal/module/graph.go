package module

import (
	"sort"

	"github.com/MeKo-Tech/noisetex/internal/errs"
)

// Graph is a registry of named modules wired together by slot.
// Wiring is checked eagerly: unknown names, bad slots and edges that would
// close a cycle are rejected when they are made.
type Graph struct {
	nodes map[string]Module
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[string]Module)}
}

// Add registers m under name.
func (g *Graph) Add(name string, m Module) error {
	if name == "" {
		return errs.Invalid(errs.StageConfigure, "empty module name")
	}
	if m == nil {
		return errs.Invalid(errs.StageConfigure, "module %q is nil", name)
	}
	if !comparableModule(m) {
		return errs.Invalid(errs.StageConfigure, "module %q: %T is not comparable; implement Module on a pointer", name, m)
	}
	if _, dup := g.nodes[name]; dup {
		return errs.Invalid(errs.StageConfigure, "module %q already defined", name)
	}
	g.nodes[name] = m
	return nil
}

// Get returns the module registered under name.
func (g *Graph) Get(name string) (Module, bool) {
	m, ok := g.nodes[name]
	return m, ok
}

// Names lists the registered modules in sorted order.
func (g *Graph) Names() []string {
	names := make([]string, 0, len(g.nodes))
	for name := range g.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Connect binds source to the given slot of consumer.
func (g *Graph) Connect(consumer string, slot int, source string) error {
	dst, err := g.lookup(consumer)
	if err != nil {
		return err
	}
	src, err := g.lookup(source)
	if err != nil {
		return err
	}

	setter, ok := dst.(SourceSetter)
	if !ok {
		return errs.Invalid(errs.StageConfigure, "module %q (%T) has no source slots", consumer, dst)
	}
	if reachable(src, dst) {
		return errs.Invalid(errs.StageConfigure, "connecting %q -> %q would create a cycle", source, consumer)
	}
	if err := setter.SetSource(slot, src); err != nil {
		return err
	}
	return nil
}

// SetControl binds control as the control module of a Select.
func (g *Graph) SetControl(selector, control string) error {
	dst, err := g.lookup(selector)
	if err != nil {
		return err
	}
	if _, ok := dst.(*Select); !ok {
		return errs.Invalid(errs.StageConfigure, "module %q (%T) is not a selector", selector, dst)
	}
	return g.Connect(selector, SelectControlSlot, control)
}

// Validate checks the subgraph rooted at root.
func (g *Graph) Validate(root string) error {
	m, err := g.lookup(root)
	if err != nil {
		return err
	}
	return Validate(m)
}

func (g *Graph) lookup(name string) (Module, error) {
	m, ok := g.nodes[name]
	if !ok {
		return nil, errs.Invalid(errs.StageConfigure, "unknown module %q", name)
	}
	return m, nil
}
