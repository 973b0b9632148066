package mcts

import "time"

type SeedGeneratorFnType func() uint64

// Seed source for trees constructed without an explicit seed or generator,
// by default the current time in nanoseconds
var SeedGeneratorFn SeedGeneratorFnType = func() uint64 {
	return uint64(time.Now().UnixNano())
}

// Set a custom seed generator function, used by tests to make every tree in a
// run reproducible without threading options through each construction site
func SetSeedGeneratorFn(f SeedGeneratorFnType) {
	if f != nil {
		SeedGeneratorFn = f
	}
}
