package types

import "time"

// DateFormat формат календарной даты (YYYY-MM-DD)
const DateFormat = "2006-01-02"

// DateOnly отбрасывает время суток, сохраняя часовой пояс
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseDate парсит дату формата YYYY-MM-DD в указанном часовом поясе
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateFormat, s, loc)
}

// InLocation переносит календарную дату в другой часовой пояс без сдвига дня
func InLocation(date time.Time, loc *time.Location) time.Time {
	if loc == nil {
		return DateOnly(date)
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
