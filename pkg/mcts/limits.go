package mcts

import (
	"encoding/json"
	"math"
	"strings"
)

// Search effort bounds consumed by Search. The tree itself has no internal
// notion of a budget, one Step is always run to completion, so limits only
// decide how many steps the driver performs.
type Limits struct {
	Cycles   uint32
	Movetime int
	Infinite bool
}

func (l Limits) String() string {
	builder := strings.Builder{}
	_ = json.NewEncoder(&builder).Encode(l)
	return builder.String()
}

const (
	DefaultCyclesLimit   uint32 = math.MaxUint32
	DefaultMovetimeLimit int    = -1
)

func DefaultLimits() *Limits {
	return &Limits{
		Cycles:   DefaultCyclesLimit,
		Movetime: DefaultMovetimeLimit,
		Infinite: true,
	}
}

// Set the number of search cycles (Step calls) to run
func (l *Limits) SetCycles(cycles uint32) *Limits {
	l.Cycles = cycles
	l.Infinite = false
	return l
}

// Set the maximum time for the engine to think, in milliseconds
func (l *Limits) SetMovetime(movetime int) *Limits {
	l.Movetime = movetime
	l.Infinite = false
	return l
}

func (l *Limits) SetInfinite(infinite bool) {
	l.Infinite = infinite
}

type StopReason int

const (
	StopNone     StopReason = iota
	StopInterrupt            // context cancelled
	StopMovetime             // time limit reached
	StopCycles               // cycle limit reached
	StopSolved               // root holds a proven outcome, further search is pointless
)

func (sr StopReason) String() string {
	switch sr {
	case StopInterrupt:
		return "Interrupt"
	case StopMovetime:
		return "Movetime"
	case StopCycles:
		return "Cycles"
	case StopSolved:
		return "Solved"
	}
	return "None"
}
