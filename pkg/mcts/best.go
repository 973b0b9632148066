package mcts

import (
	"chameleon/pkg/game"
)

// The strongest action from the current position, judged on the tree as it
// stands, no further search is performed. The state is temporarily mutated to
// inspect each child and fully restored before returning.
//
// A child proven won for the side to move is returned immediately. Otherwise
// approximate children compete on their stored estimate, a proven draw or a
// still unexplored child serves as a fallback while no estimate exists, and a
// proven loss is only ever a last resort. Ties go to the action encountered
// first in Actions() order.
//
// ok is false exactly when the position has no legal actions (terminal root).
func (t *Tree[A, P, H]) BestAction(g game.Game[A, P, H]) (action A, ok bool) {
	mover := g.CurrentPlayer()

	var (
		best      A // best approximate child
		bestScore int16
		hasBest   bool

		fallback    A // first proven draw or unexplored child
		hasFallback bool

		lastResort    A // first proven loss
		hasLastResort bool
	)

	for _, candidate := range g.Actions() {
		g.Play(candidate)
		child := t.lookup(g.Hash())
		var utility game.Utility[P]
		if child != nil {
			utility = child.Utility()
		}
		g.Undo()

		switch {
		case child == nil || utility.IsDraw():
			if !hasFallback {
				fallback = candidate
				hasFallback = true
			}

		case utility.IsApprox():
			if !hasBest || utility.Score() > bestScore {
				bestScore = utility.Score()
				best = candidate
				hasBest = true
			}

		case utility.IsExact():
			if winner, _ := utility.Winner(); winner == mover {
				// Proven win, nothing can beat it
				return candidate, true
			}
			if !hasLastResort {
				lastResort = candidate
				hasLastResort = true
			}
		}
	}

	switch {
	case hasBest:
		return best, true
	case hasFallback:
		return fallback, true
	case hasLastResort:
		return lastResort, true
	}

	var zero A
	return zero, false
}
