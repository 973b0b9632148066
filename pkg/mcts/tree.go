// Package mcts implements a Monte-Carlo tree search over any game satisfying
// the game.Game contract.
//
// Unlike a plain alpha-beta search, MCTS is a best-first search: it keeps the
// whole searched tree in memory and repeatedly descends towards the nodes that
// look most promising, treating move selection as a multi-armed bandit
// problem. On top of the statistical search sits an exact-outcome overlay:
// once every continuation of a position is proven, the position itself is
// proven, so the engine can solve small subtrees outright instead of merely
// estimating them.
package mcts

import (
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/exp/rand"
)

// Number of random playouts performed per freshly expanded node
const DefaultPlayouts uint32 = 255

type settings struct {
	playouts uint32
	seed     uint64
	rng      *rand.Rand
}

type Option func(*settings)

// Set the number of random playouts per expanded node
func WithPlayouts(n uint32) Option {
	return func(s *settings) {
		if n > 0 {
			s.playouts = n
		}
	}
}

// Seed the rollout random number generator, for reproducible searches
func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.seed = seed
	}
}

// Use a caller-supplied random number generator for rollouts
func WithRand(rng *rand.Rand) Option {
	return func(s *settings) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// A Monte-Carlo searched tree, parametrized by the action, player and position
// key types of the game it is playing. Positions reached through different
// move orders share a single node, the tree is keyed by position identity.
//
// The node table and the nodes themselves are the only shared data: the table
// has its own lock (never held while a node lock is held) and every node is
// independently lock-guarded, so multiple workers may in principle run Step
// concurrently against the same tree as long as each owns its game state.
type Tree[A comparable, P comparable, H comparable] struct {
	mu    sync.RWMutex
	nodes map[H]*Node[P]

	playoutsPerNode uint32
	solved          atomic.Uint32

	rngMu sync.Mutex
	rng   *rand.Rand

	listener *StatsListener
}

// Construct an empty search tree
func New[A comparable, P comparable, H comparable](opts ...Option) *Tree[A, P, H] {
	s := settings{playouts: DefaultPlayouts, seed: SeedGeneratorFn()}
	for _, opt := range opts {
		opt(&s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(s.seed))
	}

	return &Tree[A, P, H]{
		nodes:           make(map[H]*Node[P]),
		playoutsPerNode: s.playouts,
		rng:             s.rng,
		listener:        &StatsListener{},
	}
}

// Number of distinct positions in the tree
func (t *Tree[A, P, H]) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.nodes)
}

// Number of positions holding a proven outcome
func (t *Tree[A, P, H]) Solved() uint32 {
	return t.solved.Load()
}

// Node for the given position key, nil if the position was never expanded.
// Exposed for diagnostics, the statistics inside are not a stable format.
func (t *Tree[A, P, H]) Lookup(hash H) *Node[P] {
	return t.lookup(hash)
}

func (t *Tree[A, P, H]) SetListener(listener StatsListener) {
	*t.listener = listener
}

func (t *Tree[A, P, H]) String() string {
	return fmt.Sprintf("Tree{size=%d solved=%d playouts=%d}",
		t.Size(), t.Solved(), t.playoutsPerNode)
}

func (t *Tree[A, P, H]) lookup(hash H) *Node[P] {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.nodes[hash]
}

// Insert the node unless the position is already present, returns the node
// that ended up in the table. A concurrent worker may have expanded the same
// position first, in that case its node wins and ours is dropped.
func (t *Tree[A, P, H]) insert(hash H, node *Node[P]) *Node[P] {
	t.mu.Lock()
	defer t.mu.Unlock()
	if existing, ok := t.nodes[hash]; ok {
		return existing
	}
	t.nodes[hash] = node
	return node
}

// Fresh generator for one rollout batch, seeded from the tree's generator so
// seeded trees stay reproducible while concurrent steps never share a source
func (t *Tree[A, P, H]) rolloutRand() *rand.Rand {
	t.rngMu.Lock()
	seed := t.rng.Uint64()
	t.rngMu.Unlock()
	return rand.New(rand.NewSource(seed))
}
