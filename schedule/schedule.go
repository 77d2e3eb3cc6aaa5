// Package schedule runs named steps over a shared state in an order derived
// from declared before/after constraints rather than registration order.
package schedule

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrCycle       = errors.New("schedule: ordering constraints form a cycle")
	ErrUnknownStep = errors.New("schedule: constraint names an unknown step")
	ErrDuplicate   = errors.New("schedule: step registered twice")
)

// Step is one unit of work. Before and After name other steps this one must
// precede or follow.
type Step[S any] struct {
	Name   string
	Before []string
	After  []string
	Run    func(S) error
}

// Schedule holds registered steps and the resolved run order.
type Schedule[S any] struct {
	steps []Step[S]
	index map[string]int
	order []int
	dirty bool
}

func New[S any]() *Schedule[S] {
	return &Schedule[S]{index: make(map[string]int)}
}

// Add registers a step. The order is resolved lazily on the next Build or Run.
func (s *Schedule[S]) Add(step Step[S]) error {
	if _, ok := s.index[step.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, step.Name)
	}
	s.index[step.Name] = len(s.steps)
	s.steps = append(s.steps, step)
	s.dirty = true
	return nil
}

// Build resolves the run order. Among steps with no constraint between
// them, registration order wins, so the result is deterministic.
func (s *Schedule[S]) Build() error {
	n := len(s.steps)
	succ := make([][]int, n)
	indeg := make([]int, n)
	edge := func(from, to int) {
		succ[from] = append(succ[from], to)
		indeg[to]++
	}
	for i, st := range s.steps {
		for _, name := range st.Before {
			j, ok := s.index[name]
			if !ok {
				return fmt.Errorf("%w: %s before %s", ErrUnknownStep, st.Name, name)
			}
			edge(i, j)
		}
		for _, name := range st.After {
			j, ok := s.index[name]
			if !ok {
				return fmt.Errorf("%w: %s after %s", ErrUnknownStep, st.Name, name)
			}
			edge(j, i)
		}
	}

	order := make([]int, 0, n)
	done := make([]bool, n)
	for len(order) < n {
		next := -1
		for i := 0; i < n; i++ {
			if !done[i] && indeg[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			var stuck []string
			for i, st := range s.steps {
				if !done[i] {
					stuck = append(stuck, st.Name)
				}
			}
			return fmt.Errorf("%w: %s", ErrCycle, strings.Join(stuck, ", "))
		}
		done[next] = true
		order = append(order, next)
		for _, j := range succ[next] {
			indeg[j]--
		}
	}

	s.order = order
	s.dirty = false
	return nil
}

// Order returns the step names in run order.
func (s *Schedule[S]) Order() ([]string, error) {
	if s.dirty || s.order == nil {
		if err := s.Build(); err != nil {
			return nil, err
		}
	}
	names := make([]string, len(s.order))
	for i, idx := range s.order {
		names[i] = s.steps[idx].Name
	}
	return names, nil
}

// Run executes every step once against state, stopping at the first error.
func (s *Schedule[S]) Run(state S) error {
	if s.dirty || s.order == nil {
		if err := s.Build(); err != nil {
			return err
		}
	}
	for _, idx := range s.order {
		st := s.steps[idx]
		if st.Run == nil {
			continue
		}
		if err := st.Run(state); err != nil {
			return fmt.Errorf("%s: %w", st.Name, err)
		}
	}
	return nil
}
