package aggregate

import (
	"sort"
	"time"

	"fintrack/internal/models"
)

const (
	LabelToday     = "Today"
	LabelYesterday = "Yesterday"

	// dayLabelLayout renders "Jan 2, 2006" style labels for older days.
	dayLabelLayout = "Jan 2, 2006"
)

// DayGroup is one date bucket of the grouped transaction list.
type DayGroup struct {
	Label        string
	Day          time.Time
	Transactions []models.Transaction
}

// GroupByDay buckets transactions by calendar day relative to now.
// Timestamps are truncated to date-only before comparison, so any time
// on the current date lands under "Today" and any time on the prior date
// under "Yesterday"; everything else gets its formatted calendar label.
// Groups come back ordered Today first, Yesterday second, then the rest
// descending by day.
func GroupByDay(transactions []models.Transaction, now time.Time) []DayGroup {
	today := truncateToDay(now)
	yesterday := today.AddDate(0, 0, -1)

	index := make(map[time.Time]int)
	groups := make([]DayGroup, 0)

	for i := range transactions {
		txn := &transactions[i]
		// Dates are compared in now's location so a UTC timestamp still
		// lands in the viewer's calendar day.
		day := truncateToDay(txn.Date.In(now.Location()))

		at, seen := index[day]
		if !seen {
			groups = append(groups, DayGroup{
				Label: labelForDay(day, today, yesterday),
				Day:   day,
			})
			at = len(groups) - 1
			index[day] = at
		}

		groups[at].Transactions = append(groups[at].Transactions, *txn)
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Label == LabelToday || groups[j].Label == LabelToday {
			return groups[i].Label == LabelToday
		}
		if groups[i].Label == LabelYesterday || groups[j].Label == LabelYesterday {
			return groups[i].Label == LabelYesterday
		}
		return groups[i].Day.After(groups[j].Day)
	})

	return groups
}

func labelForDay(day, today, yesterday time.Time) string {
	switch {
	case day.Equal(today):
		return LabelToday
	case day.Equal(yesterday):
		return LabelYesterday
	default:
		return day.Format(dayLabelLayout)
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
