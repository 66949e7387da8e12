// Package lifo implements the stack used for depth-first walks of decision trees.
package lifo

type Stack[T any] struct {
	items []T
}

// Push adds an item to the stack
func (s *Stack[T]) Push(value T) {
	s.items = append(s.items, value)
}

// Pop removes and returns the last item from the stack
func (s *Stack[T]) Pop() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	val := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return val, true
}

// Slice returns the items from bottom to top. The result does not alias the
// stack, so it stays valid after further pushes and pops.
func (s *Stack[T]) Slice() []T {
	return append([]T{}, s.items...)
}
