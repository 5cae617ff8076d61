package suggestion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantops/attendance-backend-go/internal/domain/attendance"
	"github.com/plantops/attendance-backend-go/internal/domain/holiday"
)

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func clock(d, h, m int) time.Time {
	return time.Date(2025, 3, d, h, m, 0, 0, time.UTC)
}

func record(d int, times ...time.Time) attendance.PunchRecord {
	return attendance.PunchRecord{
		EmployeeID:   "1001",
		EmployeeName: "Zhou Wei",
		Department:   "Power Generation",
		Date:         day(d),
		Times:        times,
	}
}

// marchInput builds a month where only the listed records exist. Today is
// pushed past the month so full-day absences cover every workday without a
// record; tests that care about specific days pre-fill the others.
func marchInput(cal *holiday.Calendar, today time.Time, records ...attendance.PunchRecord) Input {
	return Input{
		EmployeeName: "Zhou Wei",
		Department:   "Power Generation",
		Year:         2025,
		Month:        3,
		Records:      records,
		Calendar:     cal,
		Today:        today,
	}
}

func onDay(t *testing.T, all []attendance.Suggestion, d int) []attendance.Suggestion {
	t.Helper()
	var out []attendance.Suggestion
	for _, s := range all {
		if s.StartTime.Day() == d {
			out = append(out, s)
		}
	}
	return out
}

func TestLateArrivalAndShortOvertimeSuppression(t *testing.T) {
	// 2025-03-03 is a Monday
	in := marchInput(holiday.NewCalendar(nil), clock(3, 23, 0),
		record(3, clock(3, 8, 5), clock(3, 12, 0), clock(3, 13, 0), clock(3, 17, 30)))

	got := onDay(t, Generate(in), 3)

	require.Len(t, got, 1)
	assert.Equal(t, attendance.SuggestionAbsence, got[0].Status)
	assert.Equal(t, clock(3, 8, 0), got[0].StartTime)
	assert.Equal(t, clock(3, 8, 5), got[0].EndTime)
}

func TestMissingAfternoonEmitsAbsenceToFivePM(t *testing.T) {
	in := marchInput(holiday.NewCalendar(nil), clock(3, 23, 0),
		record(3, clock(3, 8, 0), clock(3, 12, 0)))

	got := onDay(t, Generate(in), 3)

	require.Len(t, got, 1)
	assert.Equal(t, attendance.SuggestionAbsence, got[0].Status)
	assert.Equal(t, clock(3, 12, 0), got[0].StartTime)
	assert.Equal(t, clock(3, 17, 0), got[0].EndTime)
}

func TestMidDayGapBetweenPunchPairs(t *testing.T) {
	// out at 10:00, back at 11:00
	in := marchInput(holiday.NewCalendar(nil), clock(3, 23, 0),
		record(3, clock(3, 8, 0), clock(3, 10, 0), clock(3, 11, 0), clock(3, 17, 0)))

	got := onDay(t, Generate(in), 3)

	require.Len(t, got, 1)
	assert.Equal(t, clock(3, 10, 0), got[0].StartTime)
	assert.Equal(t, clock(3, 11, 0), got[0].EndTime)
}

func TestWorkdayOvertimeAtLeastOneHour(t *testing.T) {
	in := marchInput(holiday.NewCalendar(nil), clock(3, 23, 0),
		record(3, clock(3, 8, 0), clock(3, 12, 0), clock(3, 13, 0), clock(3, 18, 30)))

	got := onDay(t, Generate(in), 3)

	require.Len(t, got, 1)
	assert.Equal(t, attendance.SuggestionOvertime, got[0].Status)
	assert.Equal(t, clock(3, 17, 0), got[0].StartTime)
	assert.Equal(t, clock(3, 18, 30), got[0].EndTime)
	// duration in the message is floored to the nearest half hour
	assert.Contains(t, got[0].Message, "1.5 hours")
}

func TestFullDayAbsenceBoundedByToday(t *testing.T) {
	// today is the 4th: the 3rd counts, the 5th onward must not
	in := marchInput(holiday.NewCalendar(nil), clock(4, 9, 0))

	got := Generate(in)

	var days []int
	for _, s := range got {
		assert.Equal(t, attendance.SuggestionAbsence, s.Status)
		assert.Equal(t, clock(s.StartTime.Day(), 8, 0), s.StartTime)
		assert.Equal(t, clock(s.StartTime.Day(), 17, 0), s.EndTime)
		days = append(days, s.StartTime.Day())
	}
	assert.Equal(t, []int{3, 4}, days)
}

func TestWeekendPunchesBecomeRestDayOvertime(t *testing.T) {
	// 2025-03-08 is a Saturday; span crosses lunch, both halves >= 1h
	in := marchInput(holiday.NewCalendar(nil), clock(8, 23, 0),
		record(8, clock(8, 9, 0), clock(8, 16, 0)))

	got := onDay(t, Generate(in), 8)

	require.Len(t, got, 2)
	assert.Equal(t, clock(8, 9, 0), got[0].StartTime)
	assert.Equal(t, clock(8, 12, 0), got[0].EndTime)
	assert.Equal(t, clock(8, 13, 0), got[1].StartTime)
	assert.Equal(t, clock(8, 16, 0), got[1].EndTime)
	for _, s := range got {
		assert.Equal(t, attendance.SuggestionOvertime, s.Status)
	}
}

func TestRestDayEdgesSnapOutOfLunch(t *testing.T) {
	// start inside lunch snaps forward to 13:00
	in := marchInput(holiday.NewCalendar(nil), clock(8, 23, 0),
		record(8, clock(8, 12, 20), clock(8, 15, 0)))

	got := onDay(t, Generate(in), 8)

	require.Len(t, got, 1)
	assert.Equal(t, clock(8, 13, 0), got[0].StartTime)
	assert.Equal(t, clock(8, 15, 0), got[0].EndTime)
}

func TestRestDayStartExactlyAtNoonSnapsToOne(t *testing.T) {
	in := marchInput(holiday.NewCalendar(nil), clock(8, 23, 0),
		record(8, clock(8, 12, 0), clock(8, 16, 0)))

	got := onDay(t, Generate(in), 8)

	require.Len(t, got, 1)
	assert.Equal(t, clock(8, 13, 0), got[0].StartTime)
	assert.Equal(t, clock(8, 16, 0), got[0].EndTime)
}

func TestRestDayEndExactlyAtOneSnapsToNoon(t *testing.T) {
	in := marchInput(holiday.NewCalendar(nil), clock(8, 23, 0),
		record(8, clock(8, 9, 0), clock(8, 13, 0)))

	got := onDay(t, Generate(in), 8)

	require.Len(t, got, 1)
	assert.Equal(t, clock(8, 9, 0), got[0].StartTime)
	assert.Equal(t, clock(8, 12, 0), got[0].EndTime)
}

func TestRestDayShortHalfDropped(t *testing.T) {
	// morning half is only 30 minutes, afternoon survives
	in := marchInput(holiday.NewCalendar(nil), clock(8, 23, 0),
		record(8, clock(8, 11, 30), clock(8, 15, 0)))

	got := onDay(t, Generate(in), 8)

	require.Len(t, got, 1)
	assert.Equal(t, clock(8, 13, 0), got[0].StartTime)
	assert.Equal(t, clock(8, 15, 0), got[0].EndTime)
}

func TestMakeupWorkdayForcesWorkdayRules(t *testing.T) {
	cal := holiday.NewCalendar([]holiday.Holiday{
		{Year: 2025, Date: day(8), Type: holiday.TypeMakeupWorkday},
	})
	// Saturday the 8th is a makeup workday with no punches
	in := marchInput(cal, clock(8, 23, 0))

	got := onDay(t, Generate(in), 8)

	require.Len(t, got, 1)
	assert.Equal(t, attendance.SuggestionAbsence, got[0].Status)
}

func TestHolidayOnWeekdayUsesRestDayRules(t *testing.T) {
	cal := holiday.NewCalendar([]holiday.Holiday{
		{Year: 2025, Date: day(3), Type: holiday.TypeHoliday, Festival: "Spring Festival"},
	})
	in := marchInput(cal, clock(3, 23, 0),
		record(3, clock(3, 9, 0), clock(3, 11, 0)))

	got := onDay(t, Generate(in), 3)

	require.Len(t, got, 1)
	assert.Equal(t, attendance.SuggestionOvertime, got[0].Status)
	assert.Equal(t, clock(3, 9, 0), got[0].StartTime)
	assert.Equal(t, clock(3, 11, 0), got[0].EndTime)
}

func TestOutOfOrderPunchesAnalyzeChronologically(t *testing.T) {
	// same day as TestLateArrivalAndShortOvertimeSuppression, punches shuffled
	in := marchInput(holiday.NewCalendar(nil), clock(3, 23, 0),
		record(3, clock(3, 13, 0), clock(3, 8, 5), clock(3, 17, 30), clock(3, 12, 0)))

	got := onDay(t, Generate(in), 3)

	require.Len(t, got, 1)
	assert.Equal(t, attendance.SuggestionAbsence, got[0].Status)
	assert.Equal(t, clock(3, 8, 0), got[0].StartTime)
	assert.Equal(t, clock(3, 8, 5), got[0].EndTime)
}

func TestRestDayOutOfOrderPunchesSpanFirstToLast(t *testing.T) {
	in := marchInput(holiday.NewCalendar(nil), clock(8, 23, 0),
		record(8, clock(8, 16, 0), clock(8, 9, 0)))

	got := onDay(t, Generate(in), 8)

	require.Len(t, got, 2)
	assert.Equal(t, clock(8, 9, 0), got[0].StartTime)
	assert.Equal(t, clock(8, 12, 0), got[0].EndTime)
	assert.Equal(t, clock(8, 13, 0), got[1].StartTime)
	assert.Equal(t, clock(8, 16, 0), got[1].EndTime)
}

func TestGenerateIsDeterministic(t *testing.T) {
	in := marchInput(holiday.NewCalendar(nil), clock(10, 23, 0),
		record(3, clock(3, 8, 5), clock(3, 12, 0), clock(3, 13, 0), clock(3, 18, 30)),
		record(8, clock(8, 9, 0), clock(8, 16, 0)))

	first := Generate(in)
	second := Generate(in)
	assert.Equal(t, first, second)
}
