package mcts

// Listener function callback, receives a snapshot of the search statistics
type ListenerFunc func(SearchStats)

// Callbacks invoked by Search while it runs. The search is single threaded per
// state handle, callbacks run inline on the searching goroutine, so a slow
// OnCycle callback slows the search down accordingly.
type StatsListener struct {
	// called every N full cycles
	onCycle ListenerFunc
	nCycles uint32

	// called once when the search stops, with StopReason set
	onStop ListenerFunc
}

func NewStatsListener() StatsListener {
	return StatsListener{nCycles: 1}
}

// Attach an on cycle callback, called every N cycles (SetCycleInterval sets N)
func (listener *StatsListener) OnCycle(onCycle ListenerFunc) *StatsListener {
	listener.onCycle = onCycle
	return listener
}

func (listener *StatsListener) SetCycleInterval(n uint32) *StatsListener {
	if n < 1 {
		n = 1
	}
	listener.nCycles = n
	return listener
}

// Attach an 'on search end' callback, called once with the final statistics
func (listener *StatsListener) OnStop(onStop ListenerFunc) *StatsListener {
	listener.onStop = onStop
	return listener
}

func (listener *StatsListener) invokeCycle(stats SearchStats, cycles uint32) {
	if listener.onCycle != nil && cycles%max(listener.nCycles, 1) == 0 {
		listener.onCycle(stats)
	}
}

func (listener *StatsListener) invokeStop(stats SearchStats) {
	if listener.onStop != nil {
		listener.onStop(stats)
	}
}
