package mcts

import (
	"chameleon/pkg/game"
	"gonum.org/v1/gonum/stat"
)

// Estimate the value of the current position by random playouts.
//
// Each playout picks uniformly random actions until the game reports a
// non-unknown utility: a proven outcome, or a heuristic approximation the game
// chooses to stop at. The result is measured from the player to move at the
// start of the rollout, and every played action is undone so the position is
// fully restored between playouts.
func (t *Tree[A, P, H]) simulate(g game.Game[A, P, H]) game.Utility[P] {
	rng := t.rolloutRand()
	mover := g.CurrentPlayer()
	outcomes := make([]float64, t.playoutsPerNode)

	for i := range outcomes {
		plies := 0
		for {
			actions := g.Actions()
			if len(actions) == 0 {
				panic("mcts: rollout reached a position with no legal actions, " +
					"terminal positions must resolve through Utility()")
			}
			g.Play(actions[rng.Intn(len(actions))])
			plies++

			if utility := g.Utility(); !utility.IsUnknown() {
				outcomes[i] = utility.Scalar(mover)
				break
			}
		}

		for ; plies > 0; plies-- {
			g.Undo()
		}
	}

	return game.Approx[P](game.Quantize(stat.Mean(outcomes, nil)))
}
