package ggscale

import (
	"strconv"
	"sync/atomic"
)

// IDGenerator hands out identifiers, one per call to Next.
type IDGenerator interface {
	Next() string
}

// Sequence is an IDGenerator producing prefix + n + suffix with n counting
// up from 1. It is safe for concurrent use; each Sequence counts on its own.
//
// Example:
//
//	names := ggscale.NewSequence("page-", ".png")
//	names.Next() // "page-1.png"
//	names.Next() // "page-2.png"
type Sequence struct {
	prefix string
	suffix string
	n      atomic.Uint64
}

// NewSequence creates a sequence whose first ID is prefix + "1" + suffix.
func NewSequence(prefix, suffix string) *Sequence {
	return &Sequence{prefix: prefix, suffix: suffix}
}

// Next returns the next identifier.
func (s *Sequence) Next() string {
	return s.prefix + strconv.FormatUint(s.n.Add(1), 10) + s.suffix
}
