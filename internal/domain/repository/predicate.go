package repository

// Predicate selects records during a Scan. A nil predicate matches everything.
type Predicate[T any] func(T) bool

// Match applies p, treating nil as match-all.
func (p Predicate[T]) Match(v T) bool {
	return p == nil || p(v)
}
