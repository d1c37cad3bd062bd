package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("invalid time string format")

const secondsPerDay = 24 * 60 * 60

// TimeString время суток без даты (HH:MM или HH:MM:SS)
// Хранится как количество секунд от полуночи
type TimeString struct {
	seconds int
	valid   bool
}

// NewTimeString создает TimeString из time.Time (дата отбрасывается)
func NewTimeString(t time.Time) TimeString {
	return TimeString{
		seconds: t.Hour()*3600 + t.Minute()*60 + t.Second(),
		valid:   true,
	}
}

// NewTimeStringFromClock создает TimeString из часов, минут и секунд
func NewTimeStringFromClock(hour, minute, second int) (TimeString, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return TimeString{}, fmt.Errorf("%w: %02d:%02d:%02d", ErrInvalidTimeString, hour, minute, second)
	}
	return TimeString{seconds: hour*3600 + minute*60 + second, valid: true}, nil
}

// NewTimeStringFromString парсит строку формата "15:04" или "15:04:05"
func NewTimeStringFromString(s string) (TimeString, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return NewTimeString(t), nil
		}
	}
	return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
}

// MustTimeString парсит строку и паникует при ошибке (для констант и тестов)
func MustTimeString(s string) TimeString {
	t, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return t
}

// EndOfDay последняя секунда суток (23:59:59)
func EndOfDay() TimeString {
	return TimeString{seconds: secondsPerDay - 1, valid: true}
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return !t.valid
}

// Validate проверяет, что время задано и лежит в пределах суток
func (t TimeString) Validate() error {
	if !t.valid {
		return fmt.Errorf("%w: empty", ErrInvalidTimeString)
	}
	if t.seconds < 0 || t.seconds >= secondsPerDay {
		return fmt.Errorf("%w: out of range", ErrInvalidTimeString)
	}
	return nil
}

// Seconds количество секунд от полуночи
func (t TimeString) Seconds() int {
	return t.seconds
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.seconds < other.seconds
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.seconds > other.seconds
}

// AddMinutes прибавляет минуты; переход через полночь считается ошибкой
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	result := t.seconds + minutes*60
	if result < 0 || result >= secondsPerDay {
		return TimeString{}, fmt.Errorf("%w: %s%+d minutes crosses midnight", ErrInvalidTimeString, t, minutes)
	}
	return TimeString{seconds: result, valid: true}, nil
}

// OnDate собирает момент времени из календарной даты и времени суток
// Используется часовой пояс даты
func (t TimeString) OnDate(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, t.seconds/3600, (t.seconds%3600)/60, t.seconds%60, 0, date.Location())
}

// String форматирует время как "15:04" или "15:04:05", если есть секунды
func (t TimeString) String() string {
	if !t.valid {
		return ""
	}
	h, m, s := t.seconds/3600, (t.seconds%3600)/60, t.seconds%60
	if s == 0 {
		return fmt.Sprintf("%02d:%02d", h, m)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// Scan реализует sql.Scanner для колонок типа TIME
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = TimeString{}
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	// PostgreSQL может вернуть дробные секунды ("10:00:00.000000")
	if len(s) > 8 {
		s = s[:8]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if !t.valid {
		return nil, nil
	}
	h, m, s := t.seconds/3600, (t.seconds%3600)/60, t.seconds%60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s), nil
}

// MarshalJSON сериализует время в строку
func (t TimeString) MarshalJSON() ([]byte, error) {
	if !t.valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON парсит время из строки
func (t *TimeString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = TimeString{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeString, err)
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
