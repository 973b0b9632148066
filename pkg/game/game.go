// Package game describes a (potentially infinite) game tree in a way that is
// usable by the search engine, without any knowledge of the concrete game.
package game

// Capability set the engine requires from a game state. The state is owned by
// the caller and mutated in place: the engine plays moves forward during a
// search step and undoes every one of them before returning.
//
// A is the action (move) type, P identifies a player, H is the position key.
type Game[A comparable, P comparable, H comparable] interface {
	// Apply a legal action, mutating the state forward
	Play(action A)

	// Reverse the most recent Play, exactly and losslessly. Calls are always
	// paired with Play in strict LIFO order, the engine never calls Undo
	// without a matching prior Play on the same state
	Undo()

	// Whose turn it is
	CurrentPlayer() P

	// Legal actions for the current position, empty iff the position is
	// terminal. The order must be stable for a given state, as it is consumed
	// as exploration order and as a tie-break source
	Actions() []A

	// Exact for terminal positions, Unknown or a heuristic Approximate
	// otherwise. The engine calls this only to detect terminality and to seed
	// heuristics, never to replace tree-derived scores
	Utility() Utility[P]

	// Position key. Two strategically identical states (same legal
	// continuations and outcomes) must map to equal keys. A collision between
	// distinct states silently corrupts the tree, the engine does not detect it
	Hash() H
}
