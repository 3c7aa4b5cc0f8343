package parser

import (
	"time"

	"github.com/jack-barr3tt/erail-engine/src/common/types"
)

// RunsOn reports whether a running-days string has the date's weekday set.
// Position 0 of the string is the anchor weekday.
func RunsOn(runningDays string, date time.Time, anchor time.Weekday) bool {
	if len(runningDays) != 7 {
		return false
	}
	idx := (int(date.Weekday()) - int(anchor) + 7) % 7
	return runningDays[idx] == '1'
}

func FilterByWeekday(trains []types.TrainSummary, date time.Time, anchor time.Weekday) []types.TrainSummary {
	running := make([]types.TrainSummary, 0, len(trains))
	for _, train := range trains {
		if RunsOn(train.RunningDays, date, anchor) {
			running = append(running, train)
		}
	}
	return running
}
