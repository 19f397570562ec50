package idgen

import (
	"strconv"
	"sync/atomic"
)

// Sequence issues prefixed, strictly increasing identifiers such as ORD1000, ORD1001.
type Sequence struct {
	prefix string
	next   atomic.Int64
}

// NewSequence starts a sequence whose first identifier carries start.
func NewSequence(prefix string, start int64) *Sequence {
	s := &Sequence{prefix: prefix}
	s.next.Store(start)
	return s
}

// Next returns the next identifier.
func (s *Sequence) Next() string {
	return Format(s.prefix, s.next.Add(1)-1)
}

// Advance makes sure the sequence never issues n or anything below it.
func (s *Sequence) Advance(n int64) {
	for {
		cur := s.next.Load()
		if cur > n || s.next.CompareAndSwap(cur, n+1) {
			return
		}
	}
}

// Format joins prefix and counter.
func Format(prefix string, n int64) string {
	return prefix + strconv.FormatInt(n, 10)
}

// Parse extracts the counter from an identifier produced with prefix.
func Parse(prefix, id string) (int64, bool) {
	if len(id) <= len(prefix) || id[:len(prefix)] != prefix {
		return 0, false
	}
	n, err := strconv.ParseInt(id[len(prefix):], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
