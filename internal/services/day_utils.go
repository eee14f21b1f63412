package services

import "time"

const calendarDateLayout = "2006-01-02"

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// CalendarDate returns the local calendar date of value as UTC midnight.
// Stored challenge and cycle dates use this form so that day arithmetic
// never crosses a DST offset.
func CalendarDate(value time.Time, location *time.Location) time.Time {
	local := DateAtLocation(value, location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// StoredDate drops the clock and zone of a date column read back from the store.
func StoredDate(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// WholeDaysBetween counts calendar days from since to date; negative when date is earlier.
func WholeDaysBetween(date time.Time, since time.Time) int {
	return int(StoredDate(date).Sub(StoredDate(since)).Hours() / 24)
}

func FormatCalendarDate(value time.Time) string {
	return StoredDate(value).Format(calendarDateLayout)
}

func ParseCalendarDate(raw string) (time.Time, error) {
	parsed, err := time.Parse(calendarDateLayout, raw)
	if err != nil {
		return time.Time{}, err
	}
	return StoredDate(parsed), nil
}
