package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout формат даты в API и БД (YYYY-MM-DD)
const DateLayout = "2006-01-02"

// Date календарная дата без времени суток.
// Используется для дат заезда/выезда: бронирование оперирует целыми сутками,
// поэтому время и таймзона намеренно отбрасываются.
type Date struct {
	t time.Time
}

// NewDate создает дату из компонентов времени, обнуляя время суток
func NewDate(t time.Time) Date {
	return Date{t: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate разбирает строку формата YYYY-MM-DD
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return NewDate(t), nil
}

// String возвращает дату в формате YYYY-MM-DD
func (d Date) String() string {
	return d.t.Format(DateLayout)
}

// Time возвращает полночь UTC соответствующего дня
func (d Date) Time() time.Time {
	return d.t
}

// IsZero сообщает, что дата не задана
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Before сравнение дат (строго раньше)
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// After сравнение дат (строго позже)
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// Equal сообщает, совпадают ли даты
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// AddDays возвращает дату, сдвинутую на n дней
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// DaysUntil количество ночей между двумя датами
func (d Date) DaysUntil(other Date) int {
	return int(other.t.Sub(d.t).Hours() / 24)
}

// MarshalJSON сериализует дату как строку YYYY-MM-DD
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON разбирает дату из строки YYYY-MM-DD
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value реализует driver.Valuer для записи в колонку типа date
func (d Date) Value() (driver.Value, error) {
	return d.t, nil
}

// Scan реализует sql.Scanner для чтения из колонки типа date
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDate(v)
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into types.Date", src)
	}
}
