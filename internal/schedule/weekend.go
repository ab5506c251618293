// Package schedule computes the upcoming weekend date windows that deal
// searches are anchored to.
package schedule

import "time"

// DateFormat is the wire format for all departure/return and check-in/out dates.
const DateFormat = "2006-01-02"

// Weekend is a Friday departure with a Sunday return two days later.
type Weekend struct {
	Friday time.Time
	Sunday time.Time
}

// Depart returns the Friday formatted for upstream queries and output records.
func (w Weekend) Depart() string {
	return w.Friday.Format(DateFormat)
}

// Return returns the Sunday formatted for upstream queries and output records.
func (w Weekend) Return() string {
	return w.Sunday.Format(DateFormat)
}

// NextWeekends returns the next n weekends strictly after now. If now is a
// Friday the first weekend is a full week out, never the same day.
func NextWeekends(now time.Time, n int) []Weekend {
	days := (int(time.Friday) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}

	weekends := make([]Weekend, 0, n)
	for i := 0; i < n; i++ {
		friday := now.AddDate(0, 0, days+i*7)
		weekends = append(weekends, Weekend{
			Friday: friday,
			Sunday: friday.AddDate(0, 0, 2),
		})
	}
	return weekends
}

// NextWeekend returns the first upcoming weekend after now.
func NextWeekend(now time.Time) Weekend {
	return NextWeekends(now, 1)[0]
}
