package render

import (
	"gonum.org/v1/plot"
)

// TickStride returns how many points apart x-axis labels are placed so that
// roughly maxLabels labels are shown.
func TickStride(points, maxLabels int) int {
	if maxLabels <= 0 {
		return 1
	}
	return max(1, points/maxLabels)
}

// labelTicks is a plot.Ticker that labels every stride-th axis position with
// its date text and leaves unlabeled minor ticks in between.
type labelTicks struct {
	labels []string
	stride int
}

func (t labelTicks) Ticks(lo, hi float64) []plot.Tick {
	ticks := make([]plot.Tick, 0, len(t.labels))
	for i, label := range t.labels {
		v := float64(i)
		if v < lo || v > hi {
			continue
		}
		if i%t.stride == 0 {
			ticks = append(ticks, plot.Tick{Value: v, Label: label})
		} else {
			ticks = append(ticks, plot.Tick{Value: v})
		}
	}
	return ticks
}
