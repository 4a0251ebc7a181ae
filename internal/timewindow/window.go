// Package timewindow derives the time span to query price sources over from
// a target moment.
package timewindow

import (
	"time"

	"github.com/srahimian/huquq/pkg/datetime"
)

// Default span around the target, and the widened lookback used when the
// span would reach into the future.
const (
	halfSpan = 30 * time.Minute
	lookback = time.Hour
)

// Window bounds a price query.
type Window struct {
	Start time.Time
	End   time.Time
}

// StartMillis returns the window start as epoch milliseconds.
func (w Window) StartMillis() int64 { return datetime.ToEpochMillis(w.Start) }

// EndMillis returns the window end as epoch milliseconds.
func (w Window) EndMillis() int64 { return datetime.ToEpochMillis(w.End) }

// Plan returns the window around target: thirty minutes either side. When
// the end would land past now, the window becomes [target-1h, now] so no
// query ever asks a provider for future data.
func Plan(target, now time.Time) Window {
	w := Window{
		Start: target.Add(-halfSpan),
		End:   target.Add(halfSpan),
	}
	if w.End.After(now) {
		w.Start = target.Add(-lookback)
		w.End = now
	}
	return w
}
