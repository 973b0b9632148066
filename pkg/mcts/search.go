package mcts

import (
	"context"

	"chameleon/pkg/game"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Outcome of one Search run
type SearchStats struct {
	ID         uuid.UUID
	Cycles     uint32
	TimeMs     int
	Cps        uint32
	Size       int
	Solved     uint32
	StopReason StopReason
}

// Run Step in a loop until a limit is hit, the context is cancelled, or the
// root position is proven. This is a convenience driver: callers that want
// their own budgeting can invoke Step directly, one call per cycle.
//
// The state is owned by this call for its whole duration and is fully restored
// before returning, as with Step.
func (t *Tree[A, P, H]) Search(ctx context.Context, g game.Game[A, P, H], limits *Limits) SearchStats {
	id := uuid.New()
	root := g.Hash()

	clock := newTimer()
	clock.Movetime(DefaultMovetimeLimit)
	if !limits.Infinite {
		clock.Movetime(limits.Movetime)
	}
	clock.Reset()

	log.Debug().
		Stringer("search", id).
		Uint32("cycles", limits.Cycles).
		Int("movetime", limits.Movetime).
		Bool("infinite", limits.Infinite).
		Msg("search started")

	cycles := uint32(0)
	reason := StopNone
	for reason == StopNone {
		switch {
		case ctx.Err() != nil:
			reason = StopInterrupt
		case clock.IsEnd():
			reason = StopMovetime
		case !limits.Infinite && cycles >= limits.Cycles:
			reason = StopCycles
		case t.rootSolved(root):
			reason = StopSolved
		default:
			t.Step(g)
			cycles++
			t.listener.invokeCycle(t.stats(id, cycles, clock, StopNone), cycles)
		}
	}

	stats := t.stats(id, cycles, clock, reason)
	t.listener.invokeStop(stats)

	log.Debug().
		Stringer("search", id).
		Uint32("cycles", stats.Cycles).
		Int("time_ms", stats.TimeMs).
		Int("size", stats.Size).
		Uint32("solved", stats.Solved).
		Stringer("reason", reason).
		Msg("search finished")

	return stats
}

func (t *Tree[A, P, H]) rootSolved(root H) bool {
	node := t.lookup(root)
	return node != nil && node.Utility().IsExact()
}

func (t *Tree[A, P, H]) stats(id uuid.UUID, cycles uint32, clock *timer, reason StopReason) SearchStats {
	elapsed := clock.Deltatime()
	return SearchStats{
		ID:         id,
		Cycles:     cycles,
		TimeMs:     elapsed,
		Cps:        cycles * 1000 / uint32(elapsed),
		Size:       t.Size(),
		Solved:     t.Solved(),
		StopReason: reason,
	}
}
