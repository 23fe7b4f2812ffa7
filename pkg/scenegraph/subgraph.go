package scenegraph

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/scenery/internal/logger"
)

// Builder constructs a sub-root. Kinds embedding Subgraph may implement
// Build themselves instead of setting BuildFunc.
type Builder interface {
	Build() Node
}

// Subgraph owns one extra sub-root built lazily on first traversal. Every
// traversal, query, export and broadcast reaches the sub-root after the
// regular children.
type Subgraph struct {
	Base
	BuildFunc func() Node

	root  Node
	built bool
}

// NewSubgraph creates a subgraph node built by fn.
func NewSubgraph(name string, fn func() Node) *Subgraph {
	s := &Subgraph{BuildFunc: fn}
	s.InitNode(s, name)
	return s
}

func (s *Subgraph) Kind() string { return "subgraph" }

// Build implements Builder with BuildFunc.
func (s *Subgraph) Build() Node {
	if s.BuildFunc == nil {
		return nil
	}
	return s.BuildFunc()
}

// Built reports whether the sub-root was constructed.
func (s *Subgraph) Built() bool { return s.built }

// SubRoot implements SubRooter, building the sub-root on first use.
func (s *Subgraph) SubRoot() Node {
	if s.built || s.freeing {
		return s.root
	}
	s.built = true
	b, ok := s.This().(Builder)
	if !ok {
		return nil
	}
	r := b.Build()
	if r == nil || r.AsBase().freed {
		return nil
	}
	if p, ok := s.This().(interface{ prepare(Node) Node }); ok {
		if r = p.prepare(r); r == nil {
			return nil
		}
	}
	r.AsBase().refs++
	s.root = r
	return r
}

// Rebuild drops the current sub-root so the next traversal builds a fresh
// one.
func (s *Subgraph) Rebuild() {
	s.dropRoot()
	s.built = false
}

func (s *Subgraph) dropRoot() {
	if r := s.root; r != nil {
		s.root = nil
		drop(r)
	}
}

// OnRelease implements Disposer.
func (s *Subgraph) OnRelease() { s.dropRoot() }

// OptimizingSubgraph optimizes its freshly built sub-root and rejects it
// when it contains a cycle.
type OptimizingSubgraph struct {
	Subgraph
	err error
}

// NewOptimizingSubgraph creates an optimizing subgraph node built by fn.
func NewOptimizingSubgraph(name string, fn func() Node) *OptimizingSubgraph {
	s := &OptimizingSubgraph{}
	s.BuildFunc = fn
	s.InitNode(s, name)
	return s
}

func (s *OptimizingSubgraph) Kind() string { return "optsubgraph" }

// Err returns why the last build was rejected, matching ErrCycle.
func (s *OptimizingSubgraph) Err() error { return s.err }

// Rebuild drops the sub-root and clears the last error.
func (s *OptimizingSubgraph) Rebuild() {
	s.Subgraph.Rebuild()
	s.err = nil
}

func (s *OptimizingSubgraph) prepare(r Node) Node {
	if CheckStructure(r) {
		s.err = fmt.Errorf("subgraph %q: %w", s.ID(), ErrCycle)
		logger.Named("scenegraph").Warn("discarding cyclic sub-root",
			zap.String("subgraph", s.ID()), zap.String("root", r.Kind()))
		if r.AsBase().refs == 0 {
			_ = Release(r)
		}
		return nil
	}
	OptimizeAll(r)
	return r
}
