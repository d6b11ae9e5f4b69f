package main

import (
	"io"
	"sync"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"

	"ticketsweep/internal/pipeline"
)

// newProgressFunc bridges the pipeline's per-ticket progress ticks to a live
// terminal bar. The tracker is created on the first tick, once the total is
// known; the returned stop function waits for the final frame.
func newProgressFunc(out io.Writer) (pipeline.ProgressFunc, func()) {
	pw := progress.NewWriter()
	pw.SetOutputWriter(out)
	pw.SetUpdateFrequency(100 * time.Millisecond)
	pw.Style().Visibility.ETA = false
	pw.Style().Visibility.Time = false

	var once sync.Once
	tracker := &progress.Tracker{Message: "Evaluating tickets", Units: progress.UnitsDefault}

	tick := func(completed, total int) {
		once.Do(func() {
			tracker.UpdateTotal(int64(total))
			pw.AppendTracker(tracker)
			go pw.Render()
		})
		tracker.SetValue(int64(completed))
		if completed >= total {
			tracker.MarkAsDone()
		}
	}
	stop := func() {
		deadline := time.Now().Add(2 * time.Second)
		for pw.IsRenderInProgress() && pw.LengthActive() > 0 && time.Now().Before(deadline) {
			time.Sleep(10 * time.Millisecond)
		}
		pw.Stop()
	}
	return tick, stop
}
