package shift

// =============================================================================
// HOLIDAY CALENDAR - Unit holidays for non-working day classification
// =============================================================================

// Holiday is a public or unit holiday.
type Holiday struct {
	ID        string
	UnitID    string // Empty string = applies to every unit
	Date      Date
	Name      string
	Recurring bool // true = same month/day every year
}

// HolidayCalendar answers whether a calendar day is a holiday.
type HolidayCalendar interface {
	IsHoliday(date Date) bool
}

// HolidaySet is an in-memory HolidayCalendar built from a list of holidays.
type HolidaySet struct {
	exact     map[Date]string
	recurring map[monthDay]string
}

type monthDay struct {
	month int
	day   int
}

// NewHolidaySet indexes holidays by calendar day.
func NewHolidaySet(holidays []Holiday) *HolidaySet {
	hs := &HolidaySet{
		exact:     make(map[Date]string, len(holidays)),
		recurring: make(map[monthDay]string),
	}
	for _, h := range holidays {
		if h.Recurring {
			hs.recurring[monthDay{int(h.Date.Month()), h.Date.Day()}] = h.Name
			continue
		}
		// Re-normalise in case the caller built the Date from a full timestamp.
		hs.exact[DateOf(h.Date.Time)] = h.Name
	}
	return hs
}

// IsHoliday matches by day/month/year, or by day/month for recurring holidays.
func (hs *HolidaySet) IsHoliday(date Date) bool {
	_, ok := hs.Name(date)
	return ok
}

// Name returns the holiday name for date, if any.
func (hs *HolidaySet) Name(date Date) (string, bool) {
	if hs == nil {
		return "", false
	}
	d := DateOf(date.Time)
	if name, ok := hs.exact[d]; ok {
		return name, true
	}
	name, ok := hs.recurring[monthDay{int(d.Month()), d.Day()}]
	return name, ok
}

// IsNonWorkingDay reports whether date is a Saturday, a Sunday, or a holiday
// in cal. A nil calendar only considers weekends.
func IsNonWorkingDay(date Date, cal HolidayCalendar) bool {
	if date.IsWeekend() {
		return true
	}
	return cal != nil && cal.IsHoliday(date)
}
