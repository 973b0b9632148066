package mcts

import (
	"sync"

	"chameleon/pkg/game"
)

// Per-position record of accumulated statistics. Created exactly once per
// distinct position key and shared by every search step (and, if the caller
// parallelizes, every worker) that passes through the position.
//
// The (utility, visits) pair is guarded by the node's own lock so it is never
// observed in a torn state. The engine holds at most one node lock at a time,
// never two, so no lock ordering exists between nodes.
type Node[P comparable] struct {
	mu      sync.Mutex
	utility game.Utility[P]
	visits  uint32
}

func newNode[P comparable](utility game.Utility[P]) *Node[P] {
	return &Node[P]{utility: utility, visits: 1}
}

// Consistent snapshot of the (utility, visits) pair
func (n *Node[P]) State() (game.Utility[P], uint32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.utility, n.visits
}

func (n *Node[P]) Utility() game.Utility[P] {
	u, _ := n.State()
	return u
}

func (n *Node[P]) Visits() uint32 {
	_, v := n.State()
	return v
}

// Record a proven outcome on the node. Once exact, a node never changes
// again, a second solve is a no-op and reports false.
func (n *Node[P]) solve(utility game.Utility[P]) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.utility.IsExact() {
		return false
	}
	n.utility = utility
	return true
}

// Fold one observed value into the node during backpropagation. The visit
// count always increments; the stored estimate blends only while the node is
// still approximate, solved nodes are immutable.
//
// The blend is an unweighted arithmetic mean of the stored scalar and the new
// observation, so a fresh single observation carries the same influence as the
// already-averaged value.
func (n *Node[P]) observe(observed game.Utility[P], mover P) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.visits++
	if !n.utility.IsApprox() {
		return
	}
	blended := (game.Dequantize(n.utility.Score()) + observed.Scalar(mover)) / 2
	n.utility = game.Approx[P](game.Quantize(blended))
}
