package mcts

import (
	"math"

	"chameleon/pkg/game"
)

// One full selection/expansion/simulation/backpropagation cycle.
//
// The state is borrowed for the duration of the call: Step plays moves forward
// while descending and undoes every one of them while backpropagating, the
// state is returned value-for-value as it was received. A caller bounds search
// effort purely by bounding how many times Step is invoked.
func (t *Tree[A, P, H]) Step(g game.Game[A, P, H]) {
	// Nodes traversed so far, most recent last, for backpropagation
	var visited []*Node[P]

	// Selection
	// Descend through positions that already have a node until an unexpanded
	// position is reached.
selection:
	for {
		node := t.lookup(g.Hash())
		if node == nil {
			break
		}
		visited = append(visited, node)
		mover := g.CurrentPlayer()
		parentVisits := node.Visits()

		actions := g.Actions()
		if len(actions) == 0 {
			panic("mcts: selection reached a position with no legal actions, " +
				"terminal positions must resolve through Utility()")
		}

		var (
			bestAction    A
			bestPotential float64
			hasBest       bool

			bestExact game.Utility[P]
			hasExact  bool
		)

		for _, action := range actions {
			g.Play(action)

			child := t.lookup(g.Hash())
			if child == nil {
				// Unexpanded child: keep the action played, this position is
				// the expansion target
				break selection
			}

			utility, childVisits := child.State()
			switch {
			case utility.IsApprox():
				// The exploration term keeps the literal ln(N)/n ratio of the
				// historical formula. The stored estimate is relative to the
				// child's side to move, our opponent, hence the sign flip.
				exploration := math.Sqrt2 * math.Log(float64(parentVisits)) / float64(childVisits)
				potential := exploration - game.Dequantize(utility.Score())
				if !hasBest || potential > bestPotential {
					bestPotential = potential
					bestAction = action
					hasBest = true
				}

			case utility.IsExact():
				if winner, ok := utility.Winner(); ok && winner == mover {
					// A proven winning reply proves this position outright,
					// no need to look at anything else
					g.Undo()
					bestExact = utility
					hasExact = true
					goto prove
				}
				// Otherwise prefer a proven draw over a proven loss, ties
				// keep the first found
				if !hasExact || (!bestExact.IsDraw() && utility.IsDraw()) {
					bestExact = utility
					hasExact = true
				}
			}

			g.Undo()
		}

		// Descend into the best statistical action and keep traversing
		if hasBest {
			g.Play(bestAction)
			continue
		}

		if !hasExact {
			panic("mcts: visited a node with no successors")
		}

	prove:
		// Every relevant child is proven, so this position is now solved.
		// It no longer takes part in backpropagation, drop it and resume
		// selection from its parent.
		if node.solve(bestExact) {
			t.solved.Add(1)
		}
		visited = visited[:len(visited)-1]
		if len(visited) == 0 {
			// The whole reachable tree is solved
			return
		}
		g.Undo()
		visited = visited[:len(visited)-1]
	}

	// Expansion
	// The current position has no node yet. Terminal positions carry their
	// own proof, everything else is estimated by random playouts.
	utility := g.Utility()
	if utility.IsUnknown() {
		utility = t.simulate(g)
	}
	t.insert(g.Hash(), newNode[P](utility))
	if utility.IsExact() {
		t.solved.Add(1)
	}

	// Backpropagation
	// Unwind to the original state, folding the fresh observation into every
	// ancestor on the way up.
	for i := len(visited) - 1; i >= 0; i-- {
		g.Undo()
		visited[i].observe(utility, g.CurrentPlayer())
	}
}
