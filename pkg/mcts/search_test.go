package mcts

import (
	"context"
	"testing"
)

func TestSearchCyclesLimit(t *testing.T) {
	tree := New[takeAction, takePlayer, takeKey](WithPlayouts(4))
	g := newTakeGame(50)

	stats := tree.Search(context.Background(), g, DefaultLimits().SetCycles(40))

	if stats.StopReason != StopCycles {
		t.Fatalf("stop reason = %v, want %v", stats.StopReason, StopCycles)
	}
	if stats.Cycles != 40 {
		t.Fatalf("cycles = %d, want 40", stats.Cycles)
	}
	if stats.Size == 0 {
		t.Fatal("search grew no tree")
	}
}

func TestSearchContextCancel(t *testing.T) {
	tree := New[takeAction, takePlayer, takeKey](WithPlayouts(4))
	g := newTakeGame(50)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stats := tree.Search(ctx, g, DefaultLimits())

	if stats.StopReason != StopInterrupt {
		t.Fatalf("stop reason = %v, want %v", stats.StopReason, StopInterrupt)
	}
	if stats.Cycles != 0 {
		t.Fatalf("cycles = %d, want 0 on an already-cancelled context", stats.Cycles)
	}
}

func TestSearchStopsOnSolvedRoot(t *testing.T) {
	tree := New[takeAction, takePlayer, takeKey](WithPlayouts(4))
	g := newTakeGame(3)

	stats := tree.Search(context.Background(), g, DefaultLimits().SetCycles(100000))

	if stats.StopReason != StopSolved {
		t.Fatalf("stop reason = %v, want %v", stats.StopReason, StopSolved)
	}
	root := tree.Lookup(g.Hash())
	if root == nil || !root.Utility().IsExact() {
		t.Fatal("root should hold a proven outcome")
	}
	if g.Hash() != newTakeGame(3).Hash() {
		t.Fatal("state not restored after search")
	}
}

func TestSearchListener(t *testing.T) {
	tree := New[takeAction, takePlayer, takeKey](WithPlayouts(4))
	g := newTakeGame(50)

	cycleCalls := 0
	stopCalls := 0
	listener := NewStatsListener()
	listener.
		OnCycle(func(stats SearchStats) { cycleCalls++ }).
		SetCycleInterval(10).
		OnStop(func(stats SearchStats) {
			stopCalls++
			if stats.StopReason != StopCycles {
				t.Fatalf("listener saw stop reason %v, want %v", stats.StopReason, StopCycles)
			}
		})
	tree.SetListener(listener)

	tree.Search(context.Background(), g, DefaultLimits().SetCycles(40))

	if cycleCalls != 4 {
		t.Fatalf("onCycle called %d times, want 4", cycleCalls)
	}
	if stopCalls != 1 {
		t.Fatalf("onStop called %d times, want 1", stopCalls)
	}
}
