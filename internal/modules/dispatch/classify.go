// README: Pure urgency classification over return legs.
package dispatch

import (
	"fmt"
	"math"
	"sort"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Tier thresholds in minutes until leave-by, evaluated in order.
const (
	leaveNowMaxMinutes  = 60
	leaveSoonMaxMinutes = 240
)

// Classify computes leave-by times and urgency tiers for every leg and
// returns results ordered by descending priority. Legs with an unparseable
// return date or time are excluded and reported in the diagnostics slice;
// the batch itself never fails. Date arithmetic is pinned to loc so ops
// staff see the same queue on every device.
func Classify(legs []ReturnLeg, now time.Time, loc *time.Location) ([]Result, []Diagnostic) {
	results := make([]Result, 0, len(legs))
	var diags []Diagnostic

	for _, leg := range legs {
		departure, err := combineReturnInstant(leg.ReturnDate, leg.ReturnTime, loc)
		if err != nil {
			diags = append(diags, Diagnostic{BookingID: leg.BookingID, Reason: err.Error()})
			continue
		}

		drive := 0.0
		degraded := leg.DriveMinutesFromBase == nil
		if !degraded {
			drive = *leg.DriveMinutesFromBase
		}

		leaveBy := departure.Add(-time.Duration(drive * float64(time.Minute)))
		minutes := leaveBy.Sub(now).Minutes()

		r := Result{
			Leg:               leg,
			LeaveBy:           leaveBy,
			MinutesUntilLeave: minutes,
			Tier:              tierFor(minutes),
			DegradedEstimate:  degraded,
		}
		r.PriorityScore = priorityScore(r)
		results = append(results, r)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return moreUrgent(results[i], results[j])
	})
	return results, diags
}

// moreUrgent orders by tier severity, then minutes until leave ascending,
// then unassigned before assigned.
func moreUrgent(a, b Result) bool {
	sa, sb := tierSeverity(a.Tier), tierSeverity(b.Tier)
	if sa != sb {
		return sa > sb
	}
	if a.MinutesUntilLeave != b.MinutesUntilLeave {
		return a.MinutesUntilLeave < b.MinutesUntilLeave
	}
	return !a.Leg.DriverAssigned && b.Leg.DriverAssigned
}

// tierFor partitions the minutes-until-leave line with no gaps or
// overlaps; first match wins.
func tierFor(minutes float64) Tier {
	switch {
	case minutes <= 0:
		return TierOverdue
	case minutes <= leaveNowMaxMinutes:
		return TierLeaveNow
	case minutes <= leaveSoonMaxMinutes:
		return TierLeaveSoon
	default:
		return TierOnTrack
	}
}

// priorityScore encodes the sort keys as a single integer for display and
// coarse downstream sorting. It matches moreUrgent at whole-minute
// resolution; the canonical ordering is moreUrgent.
func priorityScore(r Result) int64 {
	score := int64(tierSeverity(r.Tier)) * 100_000_000
	score -= int64(math.Round(r.MinutesUntilLeave)) * 1000
	if !r.Leg.DriverAssigned {
		score += 500
	}
	return score
}

func combineReturnInstant(date, clock string, loc *time.Location) (time.Time, error) {
	for _, layout := range []string{timeLayout, "15:04:05"} {
		t, err := time.ParseInLocation(dateLayout+" "+layout, date+" "+clock, loc)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable return date/time %q %q", date, clock)
}

// WithinDays keeps results whose leave-by falls before now+days. Overdue
// legs always pass. This is a presentation policy layered on top of
// Classify, not part of classification itself.
func WithinDays(results []Result, now time.Time, days int) []Result {
	cutoff := now.AddDate(0, 0, days)
	out := make([]Result, 0, len(results))
	for _, r := range results {
		if r.LeaveBy.Before(cutoff) {
			out = append(out, r)
		}
	}
	return out
}

// UrgentWindow keeps results within maxMinutes of their leave-by,
// including overdue ones.
func UrgentWindow(results []Result, maxMinutes float64) []Result {
	out := make([]Result, 0, len(results))
	for _, r := range results {
		if r.MinutesUntilLeave <= maxMinutes {
			out = append(out, r)
		}
	}
	return out
}
