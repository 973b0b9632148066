package mcts

import (
	"fmt"
	"os"
	"testing"

	"chameleon/pkg/game"
)

// A take-away game for exercising the search: a pile of tokens, players
// alternately remove 1, 2 or 3 of them, whoever takes the last token wins.
// The game-theoretic value is known, a pile that is a multiple of 4 is lost
// for the side to move.

type takePlayer uint8
type takeAction int
type takeKey int32

type takeGame struct {
	tokens  int
	history []int
}

func newTakeGame(tokens int) *takeGame {
	return &takeGame{tokens: tokens}
}

func (t *takeGame) Play(a takeAction) {
	t.tokens -= int(a)
	t.history = append(t.history, int(a))
}

func (t *takeGame) Undo() {
	t.tokens += t.history[len(t.history)-1]
	t.history = t.history[:len(t.history)-1]
}

func (t *takeGame) CurrentPlayer() takePlayer {
	return takePlayer(len(t.history) % 2)
}

func (t *takeGame) Actions() []takeAction {
	actions := make([]takeAction, 0, 3)
	for i := 1; i <= min(3, t.tokens); i++ {
		actions = append(actions, takeAction(i))
	}
	return actions
}

func (t *takeGame) Utility() game.Utility[takePlayer] {
	if t.tokens == 0 {
		// Whoever took the last token has just moved
		return game.WinFor(takePlayer((len(t.history) - 1) % 2))
	}
	return game.Unknown[takePlayer]()
}

func (t *takeGame) Hash() takeKey {
	return takeKey(t.tokens<<1 | len(t.history)%2)
}

var _ game.Game[takeAction, takePlayer, takeKey] = (*takeGame)(nil)

func TestMain(m *testing.M) {
	SetSeedGeneratorFn(func() uint64 {
		return 42
	})
	fmt.Printf("Using seed %d\n", SeedGeneratorFn())

	os.Exit(m.Run())
}

func TestStepRestoresState(t *testing.T) {
	tree := New[takeAction, takePlayer, takeKey](WithPlayouts(8))
	g := newTakeGame(21)
	before := g.Hash()

	for i := 0; i < 100; i++ {
		tree.Step(g)
		if g.Hash() != before {
			t.Fatalf("state not restored after step %d: was %d, now %d", i, before, g.Hash())
		}
	}
}

func TestStepInsertsOneNodePerCycle(t *testing.T) {
	tree := New[takeAction, takePlayer, takeKey](WithPlayouts(8))
	g := newTakeGame(30)

	// The first step inserts the root, the next three expand its children, one
	// node per cycle. Every ancestor gains exactly one visit per pass.
	for i := 1; i <= 4; i++ {
		tree.Step(g)
		if tree.Size() != i {
			t.Fatalf("after %d steps expected size %d, got %d", i, i, tree.Size())
		}
	}

	root := tree.Lookup(g.Hash())
	if root == nil {
		t.Fatal("root was never inserted")
	}
	if visits := root.Visits(); visits != 4 {
		t.Fatalf("root visits after 4 steps = %d, want 4", visits)
	}
}

func TestMonotonicSolving(t *testing.T) {
	tree := New[takeAction, takePlayer, takeKey](WithPlayouts(8))
	g := newTakeGame(2)

	// Tiny pile, a handful of steps proves the win for the first player
	for i := 0; i < 16; i++ {
		tree.Step(g)
	}

	root := tree.Lookup(g.Hash())
	if root == nil {
		t.Fatal("root was never inserted")
	}
	utility := root.Utility()
	if !utility.IsExact() {
		t.Fatalf("root not solved after 16 steps, utility %v", utility)
	}
	if winner, ok := utility.Winner(); !ok || winner != 0 {
		t.Fatalf("expected a proven win for the first player, got %v", utility)
	}

	for i := 0; i < 32; i++ {
		tree.Step(g)
		if got := root.Utility(); got != utility {
			t.Fatalf("solved utility changed from %v to %v at step %d", utility, got, i)
		}
	}
}

func TestSolvesToGameTheoreticValue(t *testing.T) {
	tree := New[takeAction, takePlayer, takeKey](WithPlayouts(8))
	g := newTakeGame(4)

	// 4 tokens is a loss for the side to move, the search must prove it
	var utility game.Utility[takePlayer]
	for i := 0; i < 10000; i++ {
		tree.Step(g)
		if root := tree.Lookup(g.Hash()); root != nil {
			if utility = root.Utility(); utility.IsExact() {
				break
			}
		}
	}

	winner, ok := utility.Winner()
	if !ok {
		t.Fatalf("root not proven, utility %v", utility)
	}
	if winner != 1 {
		t.Fatalf("expected a proven win for the second player, got %v", utility)
	}
}

func TestQuantizationBounds(t *testing.T) {
	tree := New[takeAction, takePlayer, takeKey](WithPlayouts(4))
	g := newTakeGame(25)

	for i := 0; i < 2000; i++ {
		tree.Step(g)
	}

	tree.mu.RLock()
	defer tree.mu.RUnlock()
	for key, node := range tree.nodes {
		utility := node.Utility()
		if !utility.IsApprox() {
			continue
		}
		if score := utility.Score(); score > game.ScoreMax || score < -game.ScoreMax {
			t.Fatalf("node %d holds out-of-range score %d", key, score)
		}
	}
}

func TestBestActionGreedyWinShortcut(t *testing.T) {
	tree := New[takeAction, takePlayer, takeKey]()
	g := newTakeGame(5)

	// A tempting statistical child first in action order, and a proven win
	// for the mover later on. The proof must short-circuit everything.
	tree.insert(childKey(g, 1), newNode[takePlayer](game.Approx[takePlayer](30000)))
	tree.insert(childKey(g, 3), newNode[takePlayer](game.WinFor(takePlayer(0))))

	action, ok := tree.BestAction(g)
	if !ok || action != 3 {
		t.Fatalf("expected the proven winning action 3, got %v (ok=%v)", action, ok)
	}
}

func TestBestActionPrefersEstimateOverDraw(t *testing.T) {
	tree := New[takeAction, takePlayer, takeKey]()
	g := newTakeGame(5)

	// Even a poor estimate outranks a proven draw
	tree.insert(childKey(g, 1), newNode[takePlayer](game.Draw[takePlayer]()))
	tree.insert(childKey(g, 2), newNode[takePlayer](game.Approx[takePlayer](-30000)))

	action, ok := tree.BestAction(g)
	if !ok || action != 2 {
		t.Fatalf("expected the estimated action 2, got %v (ok=%v)", action, ok)
	}
}

func TestBestActionAvoidsProvenLoss(t *testing.T) {
	tree := New[takeAction, takePlayer, takeKey]()
	g := newTakeGame(5)

	// A proven loss is only a last resort, an unexplored child beats it
	tree.insert(childKey(g, 1), newNode[takePlayer](game.WinFor(takePlayer(1))))

	action, ok := tree.BestAction(g)
	if !ok || action != 2 {
		t.Fatalf("expected the unexplored action 2, got %v (ok=%v)", action, ok)
	}
}

func TestBestActionLossWhenNothingElse(t *testing.T) {
	tree := New[takeAction, takePlayer, takeKey]()
	g := newTakeGame(3)

	for _, a := range g.Actions() {
		tree.insert(childKey(g, a), newNode[takePlayer](game.WinFor(takePlayer(1))))
	}

	action, ok := tree.BestAction(g)
	if !ok || action != 1 {
		t.Fatalf("expected the first losing action 1, got %v (ok=%v)", action, ok)
	}
}

func TestBestActionUnexploredTree(t *testing.T) {
	tree := New[takeAction, takePlayer, takeKey]()
	g := newTakeGame(5)

	// Nothing searched yet, the first action in order is the fallback
	action, ok := tree.BestAction(g)
	if !ok || action != 1 {
		t.Fatalf("expected fallback action 1, got %v (ok=%v)", action, ok)
	}
}

func TestBestActionTerminalRoot(t *testing.T) {
	tree := New[takeAction, takePlayer, takeKey]()
	g := newTakeGame(3)
	g.Play(3)

	if _, ok := tree.BestAction(g); ok {
		t.Fatal("expected no action on a terminal root")
	}
}

// Position key of the child reached by playing 'action', state restored
func childKey(g game.Game[takeAction, takePlayer, takeKey], action takeAction) takeKey {
	g.Play(action)
	defer g.Undo()
	return g.Hash()
}
