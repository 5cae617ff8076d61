package suggestion

import (
	"fmt"
	"math"
	"time"

	"github.com/plantops/attendance-backend-go/internal/domain/attendance"
	"github.com/plantops/attendance-backend-go/internal/domain/holiday"
)

// Input is one employee-month generation unit: the raw punches, the year's
// holiday calendar and the bound for full-day-absence scanning.
type Input struct {
	EmployeeName string
	Department   string
	Year         int
	Month        int
	Records      []attendance.PunchRecord
	Calendar     *holiday.Calendar
	// Today bounds the no-punch scan in the current month; future dates
	// never count as absences.
	Today time.Time
}

// Generate derives the month's suggestions from raw punches. Pure: same
// input, same output, so repeated regeneration is idempotent.
func Generate(in Input) []attendance.Suggestion {
	byDay := make(map[int]attendance.PunchRecord, len(in.Records))
	for _, record := range in.Records {
		byDay[record.Date.Day()] = record
	}

	var out []attendance.Suggestion
	lastDay := daysIn(in.Year, in.Month)
	for day := 1; day <= lastDay; day++ {
		date := time.Date(in.Year, time.Month(in.Month), day, 0, 0, 0, 0, time.UTC)
		record, punched := byDay[day]
		workday := in.Calendar.IsWorkday(date)

		switch {
		case workday && punched:
			out = append(out, workdaySuggestions(in, date, record)...)
		case workday && !date.After(in.Today):
			out = append(out, suggest(in, absenceStart(date), absenceEnd(date),
				attendance.SuggestionAbsence, "No punches on a workday"))
		case !workday && punched:
			out = append(out, restDaySuggestions(in, date, record)...)
		}
	}
	return out
}

// workdaySuggestions runs the late-arrival, absence-gap and overtime checks
// over a punched workday.
func workdaySuggestions(in Input, date time.Time, record attendance.PunchRecord) []attendance.Suggestion {
	var out []attendance.Suggestion

	if times := record.SortedTimes(); len(times) > 0 {
		first := times[0]
		if first.After(at(date, 8, 0)) && first.Before(at(date, 12, 0)) {
			out = append(out, suggest(in, at(date, 8, 0), first,
				attendance.SuggestionAbsence, "Late arrival"))
		}
	}

	intervals := record.WorkIntervals()
	for i, iv := range intervals {
		clockOut := iv[1]
		if inWorkWindow(date, clockOut) {
			gapEnd := at(date, 17, 0)
			if i+1 < len(intervals) {
				gapEnd = intervals[i+1][0]
			}
			// a gap sitting entirely inside the lunch break is not an
			// absence
			lunch := !clockOut.Before(at(date, 12, 0)) && !gapEnd.After(at(date, 13, 0))
			if clockOut.Before(gapEnd) && !lunch {
				out = append(out, suggest(in, clockOut, gapEnd,
					attendance.SuggestionAbsence, "Gap between punches"))
			}
		}

		start, end, ok := intersect(iv[0], iv[1], at(date, 17, 0), at(date, 24, 0))
		if ok && end.Sub(start) >= time.Hour {
			out = append(out, overtimeSuggestion(in, start, end))
		}
	}
	return out
}

// restDaySuggestions treats the day's first-to-last punch span as candidate
// overtime, carving out the 12:00-13:00 lunch window.
func restDaySuggestions(in Input, date time.Time, record attendance.PunchRecord) []attendance.Suggestion {
	times := record.SortedTimes()
	if len(times) == 0 {
		return nil
	}
	start := times[0]
	end := times[len(times)-1]

	lunchStart, lunchEnd := at(date, 12, 0), at(date, 13, 0)
	// inclusive snapping: a span starting at 12:00 sharp begins at 13:00, one
	// ending at 13:00 sharp ends at 12:00
	if !start.Before(lunchStart) && start.Before(lunchEnd) {
		start = lunchEnd
	}
	if end.After(lunchStart) && !end.After(lunchEnd) {
		end = lunchStart
	}
	if !start.Before(end) {
		return nil
	}

	var out []attendance.Suggestion
	if start.Before(lunchStart) && end.After(lunchEnd) {
		if lunchStart.Sub(start) >= time.Hour {
			out = append(out, overtimeSuggestion(in, start, lunchStart))
		}
		if end.Sub(lunchEnd) >= time.Hour {
			out = append(out, overtimeSuggestion(in, lunchEnd, end))
		}
		return out
	}
	if end.Sub(start) >= time.Hour {
		out = append(out, overtimeSuggestion(in, start, end))
	}
	return out
}

func overtimeSuggestion(in Input, start, end time.Time) attendance.Suggestion {
	hours := math.Floor(end.Sub(start).Hours()*2) / 2
	return suggest(in, start, end, attendance.SuggestionOvertime,
		fmt.Sprintf("Unregistered overtime, %.1f hours", hours))
}

func suggest(in Input, start, end time.Time, status int, message string) attendance.Suggestion {
	return attendance.Suggestion{
		EmployeeName: in.EmployeeName,
		Department:   in.Department,
		Year:         in.Year,
		Month:        in.Month,
		StartTime:    start,
		EndTime:      end,
		Status:       status,
		Message:      message,
	}
}

// inWorkWindow reports whether a clock-out lands in a recognized work
// window: the morning 08:00-12:00 or the afternoon 13:00-17:00.
func inWorkWindow(date, t time.Time) bool {
	morning := !t.Before(at(date, 8, 0)) && !t.After(at(date, 12, 0))
	afternoon := !t.Before(at(date, 13, 0)) && !t.After(at(date, 17, 0))
	return morning || afternoon
}

func intersect(aStart, aEnd, bStart, bEnd time.Time) (time.Time, time.Time, bool) {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func absenceStart(date time.Time) time.Time { return at(date, 8, 0) }
func absenceEnd(date time.Time) time.Time   { return at(date, 17, 0) }

func at(date time.Time, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
