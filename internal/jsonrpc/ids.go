// Copyright (c) 2025 Cougardb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package jsonrpc

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"
)

// Correlation ids are drawn from [MinID, MaxID].
const (
	MinID int64 = 1
	MaxID int64 = 1_000_000
)

// IDSource produces correlation ids. Implementations must be safe for concurrent use.
type IDSource interface {
	NextID() int64
}

// RandomIDs draws ids uniformly from [MinID, MaxID].
type RandomIDs struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomIDs returns a RandomIDs backed by src. A nil src uses the
// runtime's shared generator.
func NewRandomIDs(src rand.Source) *RandomIDs {
	if src == nil {
		return &RandomIDs{}
	}
	return &RandomIDs{rnd: rand.New(src)}
}

func (r *RandomIDs) NextID() int64 {
	n := MaxID - MinID + 1
	if r.rnd == nil {
		return MinID + rand.Int64N(n)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return MinID + r.rnd.Int64N(n)
}

// SequentialIDs counts up from MinID and wraps back after MaxID.
type SequentialIDs struct {
	last atomic.Int64
}

func (s *SequentialIDs) NextID() int64 {
	for {
		old := s.last.Load()
		next := old + 1
		if next < MinID || next > MaxID {
			next = MinID
		}
		if s.last.CompareAndSwap(old, next) {
			return next
		}
	}
}
