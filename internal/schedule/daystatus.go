package schedule

// DayStatus is the calendar rendering state of a single day.
type DayStatus string

const (
	DayAvailable DayStatus = "available"
	DayHasSlot   DayStatus = "hasSlot"
	DayPast      DayStatus = "past"
)

// DayState pairs a day with its status.
type DayState struct {
	Date   Date      `json:"date"`
	Status DayStatus `json:"status"`
}

// DayStatuses derives one status per day in [from, to].  A day is DayHasSlot
// when blocked contains it at least once, regardless of how much of the day
// is blocked.  Days strictly before today are DayPast whatever their slots;
// a zero today disables the past check.
func DayStatuses(from, to, today Date, blocked []Date) []DayState {
	if to.Before(from) {
		return nil
	}
	has := make(map[Date]bool, len(blocked))
	for _, d := range blocked {
		has[d] = true
	}
	var out []DayState
	for d := from; !d.After(to); d = d.AddDays(1) {
		st := DayAvailable
		switch {
		case !today.IsZero() && d.Before(today):
			st = DayPast
		case has[d]:
			st = DayHasSlot
		}
		out = append(out, DayState{Date: d, Status: st})
	}
	return out
}

// StatusMap is DayStatuses keyed by date.
func StatusMap(from, to, today Date, blocked []Date) map[Date]DayStatus {
	states := DayStatuses(from, to, today, blocked)
	m := make(map[Date]DayStatus, len(states))
	for _, s := range states {
		m[s.Date] = s.Status
	}
	return m
}
