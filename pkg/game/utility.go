package game

import (
	"fmt"
	"math"
)

// Quantized scores are a signed percentage: ScoreMax means the side to move
// has a 100% chance of winning, -ScoreMax a 100% chance of losing.
const ScoreMax int16 = math.MaxInt16

type utilityKind uint8

const (
	kindUnknown utilityKind = iota
	kindWin
	kindDraw
	kindApprox
)

// Utility of a position. It is one of:
//   - exact, the value is known precisely: a proven win for some player, or a
//     proven draw. Exact values are terminal, they never change again.
//   - approximate, a quantized estimate of what the value could be, given
//     either by a heuristic or by random playouts. Refined repeatedly.
//   - unknown, random playouts must be used to determine an approximate value.
//     Only ever appears transiently on a freshly reached state.
type Utility[P comparable] struct {
	kind   utilityKind
	winner P
	score  int16
}

// Unknown utility, the position has not been evaluated yet
func Unknown[P comparable]() Utility[P] {
	return Utility[P]{kind: kindUnknown}
}

// Proven win for player p
func WinFor[P comparable](p P) Utility[P] {
	return Utility[P]{kind: kindWin, winner: p}
}

// Proven draw
func Draw[P comparable]() Utility[P] {
	return Utility[P]{kind: kindDraw}
}

// Approximate utility with a quantized score in [-ScoreMax, ScoreMax],
// relative to the side to move at the position it describes
func Approx[P comparable](score int16) Utility[P] {
	return Utility[P]{kind: kindApprox, score: score}
}

func (u Utility[P]) IsUnknown() bool { return u.kind == kindUnknown }
func (u Utility[P]) IsApprox() bool  { return u.kind == kindApprox }
func (u Utility[P]) IsDraw() bool    { return u.kind == kindDraw }

// Whether the value is proven (win or draw)
func (u Utility[P]) IsExact() bool {
	return u.kind == kindWin || u.kind == kindDraw
}

// The winning player, ok is false unless this is a proven win
func (u Utility[P]) Winner() (winner P, ok bool) {
	return u.winner, u.kind == kindWin
}

// Quantized score of an approximate utility, 0 for any other kind
func (u Utility[P]) Score() int16 {
	if u.kind == kindApprox {
		return u.score
	}
	return 0
}

// Scalar value of the utility measured from 'mover', the player about to move:
// +1 if mover has won, -1 if another player has won, 0 for a draw and
// score/ScoreMax for an approximation. Panics on unknown utilities, those must
// be resolved by playouts before they are ever blended.
func (u Utility[P]) Scalar(mover P) float64 {
	switch u.kind {
	case kindWin:
		if u.winner == mover {
			return 1
		}
		return -1
	case kindDraw:
		return 0
	case kindApprox:
		return Dequantize(u.score)
	}
	panic("game: scalar of an unknown utility")
}

func (u Utility[P]) String() string {
	switch u.kind {
	case kindWin:
		return fmt.Sprintf("Win(%v)", u.winner)
	case kindDraw:
		return "Draw"
	case kindApprox:
		return fmt.Sprintf("Approx(%d)", u.score)
	}
	return "Unknown"
}

// Convert a scalar in [-1, 1] to its quantized storage form
func Quantize(scalar float64) int16 {
	q := math.Round(scalar * float64(ScoreMax))
	if q > float64(ScoreMax) {
		return ScoreMax
	}
	if q < -float64(ScoreMax) {
		return -ScoreMax
	}
	return int16(q)
}

// Convert a quantized score back to a scalar in [-1, 1]
func Dequantize(score int16) float64 {
	return float64(score) / float64(ScoreMax)
}
