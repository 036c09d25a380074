// Package module implements the noise node graph: generators, point
// transformers, combiners and value adjusters sharing one evaluation contract.
//
// A node never owns its sources. The same node may feed many consumers, so a
// graph is a DAG of shared pointers. Evaluation is a pure walk of that DAG:
// nothing is cached and nothing is mutated, which makes a fully built graph
// safe for concurrent use.
package module

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/MeKo-Tech/noisetex/internal/errs"
)

// MaxOctaves bounds the octave count and roughness parameters.
const MaxOctaves = 30

// ErrMissingSource is raised when an unset source slot is evaluated.
// Validate reports it before sampling starts.
var ErrMissingSource = errors.New("source module not set")

// Module produces a deterministic scalar, roughly in [-1, 1], for any point.
//
// Graph validation identifies nodes by interface equality, so
// implementations must be comparable. Use pointer receivers, as every module
// in this package does; a struct value holding a slice or map is rejected.
type Module interface {
	Value(x, y, z float64) float64
	// SourceCount is the number of input slots, including any control slot.
	SourceCount() int
	// Source returns the module bound to slot i, or nil when unset.
	Source(i int) Module
}

// SourceSetter is implemented by modules with input slots.
type SourceSetter interface {
	SetSource(i int, m Module) error
}

// Checker is implemented by modules whose parameters can be invalid.
type Checker interface {
	Check() error
}

// sources is embedded by every module with inputs.
type sources struct {
	slots []Module
}

func newSources(n int) sources { return sources{slots: make([]Module, n)} }

func (s *sources) SourceCount() int { return len(s.slots) }

func (s *sources) Source(i int) Module {
	if i < 0 || i >= len(s.slots) {
		return nil
	}
	return s.slots[i]
}

// SetSource binds m to slot i.
func (s *sources) SetSource(i int, m Module) error {
	if i < 0 || i >= len(s.slots) {
		return errs.Invalid(errs.StageConfigure, "source slot %d out of range [0,%d)", i, len(s.slots))
	}
	if m == nil {
		return errs.Invalid(errs.StageConfigure, "source slot %d: nil module", i)
	}
	s.slots[i] = m
	return nil
}

func (s *sources) src(i int) Module {
	m := s.slots[i]
	if m == nil {
		panic(fmt.Errorf("%w: %w: slot %d", errs.ErrInvalidParameter, ErrMissingSource, i))
	}
	return m
}

type visitState uint8

const (
	unvisited visitState = iota
	visiting
	visited
)

// Validate walks the graph below root and reports the first unset slot,
// cycle or out-of-range parameter it finds.
func Validate(root Module) error {
	if root == nil {
		return errs.Invalid(errs.StageConfigure, "nil module")
	}
	state := make(map[Module]visitState)

	var visit func(m Module) error
	visit = func(m Module) error {
		if !comparableModule(m) {
			return errs.Invalid(errs.StageConfigure, "%T is not comparable; implement Module on a pointer", m)
		}
		switch state[m] {
		case visiting:
			return errs.Invalid(errs.StageConfigure, "cycle through %T", m)
		case visited:
			return nil
		}
		state[m] = visiting

		if c, ok := m.(Checker); ok {
			if err := c.Check(); err != nil {
				return err
			}
		}
		for i := 0; i < m.SourceCount(); i++ {
			src := m.Source(i)
			if src == nil {
				return errs.Invalid(errs.StageConfigure, "%T: %v: slot %d", m, ErrMissingSource, i)
			}
			if err := visit(src); err != nil {
				return err
			}
		}

		state[m] = visited
		return nil
	}

	return visit(root)
}

// reachable reports whether target is from itself or lies below it.
func reachable(from, target Module) bool {
	seen := make(map[Module]bool)
	var walk func(m Module) bool
	walk = func(m Module) bool {
		// Validate reports non-comparable modules.
		if m == nil || !comparableModule(m) || seen[m] {
			return false
		}
		if m == target {
			return true
		}
		seen[m] = true
		for i := 0; i < m.SourceCount(); i++ {
			if walk(m.Source(i)) {
				return true
			}
		}
		return false
	}
	return walk(from)
}

// comparableModule reports whether m can be used as a map key.
func comparableModule(m Module) bool {
	return reflect.TypeOf(m).Comparable()
}

func checkOctaves(name string, n int) error {
	if n < 1 || n > MaxOctaves {
		return errs.Invalid(errs.StageConfigure, "%s %d out of range [1,%d]", name, n, MaxOctaves)
	}
	return nil
}
