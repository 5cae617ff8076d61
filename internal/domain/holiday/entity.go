package holiday

import "time"

type Type string

const (
	// TypeHoliday marks a non-working festival or public holiday.
	TypeHoliday Type = "holiday"
	// TypeMakeupWorkday marks a date worked in exchange for a holiday
	// bridge; it forces workday classification even on a weekend.
	TypeMakeupWorkday Type = "makeup-workday"
)

// Holiday is one calendar entry. Festival carries the festival name on
// holiday entries that belong to one (payroll reads it for incentive days).
type Holiday struct {
	Year     int       `json:"year"`
	Date     time.Time `json:"date"`
	Type     Type      `json:"type"`
	Festival string    `json:"festival,omitempty"`
}

// Calendar indexes one year's holidays by date for classification lookups.
type Calendar struct {
	byDate map[string]Holiday
}

func NewCalendar(holidays []Holiday) *Calendar {
	c := &Calendar{byDate: make(map[string]Holiday, len(holidays))}
	for _, h := range holidays {
		c.byDate[dateKey(h.Date)] = h
	}
	return c
}

// IsWorkday classifies a date: not a weekend and not a holiday, unless the
// calendar marks it a makeup workday, which forces workday regardless.
func (c *Calendar) IsWorkday(date time.Time) bool {
	if h, ok := c.byDate[dateKey(date)]; ok {
		return h.Type == TypeMakeupWorkday
	}
	wd := date.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// Festival returns the festival name attached to a date, if any.
func (c *Calendar) Festival(date time.Time) string {
	if h, ok := c.byDate[dateKey(date)]; ok && h.Type == TypeHoliday {
		return h.Festival
	}
	return ""
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
