package scenegraph

import (
	"errors"
	"fmt"
)

var (
	// ErrInvariant marks a violated ownership or structure invariant, a
	// programmer error such as releasing a node that still has parents.
	ErrInvariant = errors.New("scenegraph: invariant violation")

	// ErrCycle is reported when a graph that must be acyclic is not.
	ErrCycle = errors.New("scenegraph: cycle detected")
)

// InvariantError describes one invariant violation. It matches ErrInvariant
// with errors.Is.
type InvariantError struct {
	Op     string
	Node   Node
	Reason string
}

func (e *InvariantError) Error() string {
	id := ""
	if e.Node != nil {
		b := e.Node.AsBase()
		id = e.Node.Kind()
		if b.ID() != "" {
			id += " " + b.ID()
		}
	}
	return fmt.Sprintf("scenegraph: %s %s: %s", e.Op, id, e.Reason)
}

// Is reports whether target is ErrInvariant.
func (e *InvariantError) Is(target error) bool {
	return target == ErrInvariant
}
