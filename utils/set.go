package utils

// OrderedSet tracks unique values and remembers the order they were first added.
// It is not safe for concurrent use.
type OrderedSet[T comparable] struct {
	seen  map[T]struct{}
	order []T
}

// NewOrderedSet creates an empty OrderedSet.
func NewOrderedSet[T comparable]() *OrderedSet[T] {
	return &OrderedSet[T]{seen: make(map[T]struct{})}
}

// Add returns true if v was newly added, false if already present.
func (s *OrderedSet[T]) Add(v T) bool {
	if _, exists := s.seen[v]; exists {
		return false
	}
	s.seen[v] = struct{}{}
	s.order = append(s.order, v)
	return true
}

// Contains returns true if v has already been added.
func (s *OrderedSet[T]) Contains(v T) bool {
	_, exists := s.seen[v]
	return exists
}

// Size returns the number of unique values tracked.
func (s *OrderedSet[T]) Size() int {
	return len(s.order)
}

// Values returns the values in insertion order.
func (s *OrderedSet[T]) Values() []T {
	out := make([]T, len(s.order))
	copy(out, s.order)
	return out
}
