package attendance

import (
	"math"
	"strings"
)

// ComputeStats aggregates a set of records (already filtered to the subject)
// into per-status counts and an effective-attendance percentage.
// Late counts as attended: percentage = round(100 * (present+late) / total),
// 0 when there are no records. Pure function; record order is irrelevant.
func ComputeStats(records []Record) Stats {
	var stats Stats
	for _, rec := range records {
		switch rec.Status {
		case StatusPresent:
			stats.Present++
		case StatusAbsent:
			stats.Absent++
		case StatusLate:
			stats.Late++
		case StatusExcused:
			stats.Excused++
		}
	}
	stats.TotalDays = len(records)
	if stats.TotalDays > 0 {
		stats.Percentage = int(math.Round(100 * float64(stats.Present+stats.Late) / float64(stats.TotalDays)))
	}
	return stats
}

// ByStudent groups records by student ID.
func ByStudent(records []Record) map[int][]Record {
	grouped := make(map[int][]Record)
	for _, rec := range records {
		grouped[rec.StudentID] = append(grouped[rec.StudentID], rec)
	}
	return grouped
}

// DateMap flattens one student's records into a date→status map.
func DateMap(records []Record) map[string]Status {
	m := make(map[string]Status, len(records))
	for _, rec := range records {
		m[rec.Date] = rec.Status
	}
	return m
}

// MatchesMonth reports whether a YYYY-MM-DD date falls in the YYYY-MM month.
// A plain prefix match; an empty month matches everything.
func MatchesMonth(date, month string) bool {
	return month == "" || strings.HasPrefix(date, month)
}
