// Package statsview renders live search statistics to a terminal. It is a
// diagnostics surface for applications embedding the engine, nothing in here
// is consumed by the search itself.
package statsview

import (
	"fmt"
	"os"

	"chameleon/pkg/mcts"
	"github.com/muesli/termenv"
)

type View struct {
	out *termenv.Output
}

func New() *View {
	return &View{out: termenv.NewOutput(os.Stdout)}
}

// Rewrites the current terminal line, intended as an OnCycle callback
func (v *View) Cycle(stats mcts.SearchStats) {
	v.out.ClearLine()
	line := fmt.Sprintf("cycle %d  size %d  solved %d  %d cps",
		stats.Cycles, stats.Size, stats.Solved, stats.Cps)
	fmt.Fprintf(v.out, "\r%s", v.out.String(line).Foreground(termenv.ANSICyan))
}

// Prints the final search summary, intended as an OnStop callback
func (v *View) Stop(stats mcts.SearchStats) {
	v.out.ClearLine()
	summary := fmt.Sprintf("searched %d cycles in %dms (%d cps), tree size %d, %d proven, stopped: %s",
		stats.Cycles, stats.TimeMs, stats.Cps, stats.Size, stats.Solved, stats.StopReason)
	fmt.Fprintf(v.out, "\r%s\n", v.out.String(summary).Faint())
}
