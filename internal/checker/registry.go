// Package checker registers checks and runs them over one file.
package checker

import (
	"errors"
	"fmt"

	"flint/internal/processor"
)

// Kind selects which view of the file a check receives.
type Kind uint8

const (
	KindTree     Kind = iota + 1 // синтаксическое дерево целиком
	KindLogical                  // каждая логическая строка
	KindPhysical                 // каждая физическая строка
)

func (k Kind) String() string {
	switch k {
	case KindTree:
		return "tree"
	case KindLogical:
		return "logical_line"
	case KindPhysical:
		return "physical_line"
	}
	return "unknown"
}

// Names of the arguments the file checker passes explicitly, per kind.
const (
	ArgTree         = "tree"
	ArgPhysicalLine = "physical_line"
)

// provided returns the explicit argument names a check of kind k receives.
func (k Kind) provided() []string {
	switch k {
	case KindTree:
		return []string{ArgTree}
	case KindPhysical:
		return []string{ArgPhysicalLine}
	}
	return nil
}

// Result is one finding returned by a check.
//
// Tree checks set Line (1-based) and Column. Logical-line checks set Column
// to an offset into the logical line. Physical-line checks set Column only;
// the line is the one being checked.
type Result struct {
	Line   int
	Column int
	Code   string
	Text   string
}

// Check is a registered rule.
type Check struct {
	Name       string
	Kind       Kind
	Parameters []string // имена из таблицы процессора плюс аргументы своего вида
	Run        func(args processor.Args) []Result
}

var (
	ErrDuplicateCheck = errors.New("duplicate check name")
	ErrInvalidCheck   = errors.New("invalid check")
)

// Registry holds checks in registration order.
type Registry struct {
	checks []Check
	names  map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

// Register validates c and adds it. Parameters the processor cannot
// resolve are rejected here, before any file is checked.
func (r *Registry) Register(c Check) error {
	switch {
	case c.Name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidCheck)
	case c.Run == nil:
		return fmt.Errorf("%w: %s has no run function", ErrInvalidCheck, c.Name)
	case c.Kind < KindTree || c.Kind > KindPhysical:
		return fmt.Errorf("%w: %s has unknown kind %d", ErrInvalidCheck, c.Name, c.Kind)
	}
	if _, ok := r.names[c.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateCheck, c.Name)
	}
	if err := processor.ValidateParameters(c.Parameters, c.Kind.provided()...); err != nil {
		return fmt.Errorf("register %s: %w", c.Name, err)
	}
	r.names[c.Name] = struct{}{}
	r.checks = append(r.checks, c)
	return nil
}

// MustRegister is Register that panics on error; for static check tables.
func (r *Registry) MustRegister(checks ...Check) {
	for _, c := range checks {
		if err := r.Register(c); err != nil {
			panic(err)
		}
	}
}

// Checks returns the registered checks of kind k in registration order.
func (r *Registry) Checks(k Kind) []Check {
	var out []Check
	for _, c := range r.checks {
		if c.Kind == k {
			out = append(out, c)
		}
	}
	return out
}

func (r *Registry) Len() int { return len(r.checks) }

// Names returns all check names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.checks))
	for i, c := range r.checks {
		out[i] = c.Name
	}
	return out
}
