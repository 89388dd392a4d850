package tier

import (
	"math/rand"
	"sync/atomic"
)

// RoutePolicy decides which of n backends serves a routed-strategy request.
// Policies must be safe for concurrent use.
type RoutePolicy interface {
	Pick(n int) int
}

// alternatePolicy cycles through backends round-robin.
type alternatePolicy struct {
	next atomic.Uint64
}

func (p *alternatePolicy) Pick(n int) int {
	if n <= 0 {
		return 0
	}
	return int((p.next.Add(1) - 1) % uint64(n))
}

// randomPolicy picks uniformly at random.
type randomPolicy struct{}

func (randomPolicy) Pick(n int) int {
	if n <= 0 {
		return 0
	}
	return rand.Intn(n)
}

// NewPolicy returns the routing policy for a configured name. Unknown names
// fall back to alternate, which is deterministic and therefore the safer
// default.
func NewPolicy(name string) RoutePolicy {
	switch name {
	case "random":
		return randomPolicy{}
	default:
		return &alternatePolicy{}
	}
}
