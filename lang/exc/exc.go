// Package exc holds the per-compile exception state: the category hierarchy
// for classified syntax errors, the exception value itself, and the implicit
// chaining protocol that links a newly raised exception to the one that was
// active when it was raised.
package exc

import (
	"fmt"
	"strings"
)

// Category identifies an exception class. Categories form a hierarchy via
// Base, mirroring IndentationError < SyntaxError and so on.
type Category struct {
	Name string
	Base *Category
}

var (
	SyntaxError      = &Category{Name: "SyntaxError"}
	IndentationError = &Category{Name: "IndentationError", Base: SyntaxError}
	TabError         = &Category{Name: "TabError", Base: IndentationError}
	MemoryError      = &Category{Name: "MemoryError"}
	Interrupt        = &Category{Name: "KeyboardInterrupt"}
)

// Is reports whether c is other or derives from it.
func (c *Category) Is(other *Category) bool {
	for cur := c; cur != nil; cur = cur.Base {
		if cur == other {
			return true
		}
	}
	return false
}

// Exception is a raised error value. Context points at the exception that
// was active when this one was raised; the chain it forms is always acyclic.
type Exception struct {
	Category  *Category
	Args      []any
	Traceback []string

	context *Exception
}

func (e *Exception) Context() *Exception { return e.context }

func (e *Exception) Error() string {
	if len(e.Args) == 0 {
		return e.Category.Name
	}
	parts := make([]string, 0, len(e.Args))
	for _, a := range e.Args {
		parts = append(parts, fmt.Sprintf("%v", a))
	}
	return e.Category.Name + ": " + strings.Join(parts, ", ")
}

// Arg is a raise argument. It is a closed union: NoArgs, Positional or
// Single, each mapping to one construction strategy.
type Arg interface {
	isArg()
}

// NoArgs constructs the exception with no arguments.
type NoArgs struct{}

// Positional spreads its values as the exception's arguments.
type Positional struct {
	Values []any
}

// Single passes one value as the sole argument. A Single holding an
// *Exception of the raised category is installed as-is rather than wrapped.
type Single struct {
	Value any
}

func (NoArgs) isArg()     {}
func (Positional) isArg() {}
func (Single) isArg()     {}

func coerce(cat *Category, arg Arg) *Exception {
	switch a := arg.(type) {
	case nil, NoArgs:
		return &Exception{Category: cat}
	case Positional:
		return &Exception{Category: cat, Args: a.Values}
	case Single:
		if ex, ok := a.Value.(*Exception); ok && ex.Category.Is(cat) {
			return ex
		}
		return &Exception{Category: cat, Args: []any{a.Value}}
	default:
		return &Exception{Category: cat, Args: []any{arg}}
	}
}

// State is the call-scoped slot holding the currently active exception.
// Each compile call owns exactly one State; nothing is shared across calls.
type State struct {
	active *Exception
}

func NewState() *State { return &State{} }

func (s *State) Active() *Exception { return s.active }

func (s *State) Occurred() bool { return s.active != nil }

func (s *State) Clear() { s.active = nil }

// Raise coerces arg into an exception of category cat and installs it as the
// active exception. If another exception is already active, it becomes the
// new exception's context. Before linking, the previous chain is walked and
// the new value is unlinked at its first occurrence, which keeps every
// context chain acyclic.
func (s *State) Raise(cat *Category, arg Arg) {
	prev := s.active
	if prev == nil {
		s.active = coerce(cat, arg)
		return
	}

	// Coercion must never observe a half-installed state.
	s.active = nil
	value := coerce(cat, arg)

	if prev != value {
		for o := prev; o != nil; {
			next := o.context
			if next == value {
				o.context = nil
				break
			}
			o = next
		}
		value.context = prev
	}
	s.active = value
}
