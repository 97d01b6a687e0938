package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout - формат даты, которым обмениваются клиент и сервер.
const DateLayout = "2006-01-02"

// displayLayout - формат даты для отображения пользователю.
const displayLayout = "Jan 2, 2006"

// Бэкенд отдает даты то как "2006-01-02", то как полный timestamp.
//
//nolint:gochecknoglobals // Неизменяемый список форматов
var dateLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

var jsonNull = []byte("null")

// ID - идентификатор ресурса. Сервер может вернуть его числом или строкой.
type ID string

// UnmarshalJSON принимает как число, так и строку.
func (id *ID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonNull) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("ошибка декодирования идентификатора: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("ошибка декодирования идентификатора: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Date - календарная дата без времени суток.
// Хранится как полночь UTC соответствующего дня, поэтому разница дат всегда кратна суткам.
type Date struct {
	t time.Time
}

// NewDate возвращает дату календарного дня t (в часовом поясе t).
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Today возвращает текущую дату по местному времени.
func Today(now time.Time) Date {
	return NewDate(now.Local())
}

// ParseDate разбирает дату в одном из поддерживаемых форматов.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t), nil
		}
	}
	return Date{}, fmt.Errorf("неверный формат даты %q", s)
}

// MustParseDate - ParseDate для констант в тестах и сидах.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) IsZero() bool { return d.t.IsZero() }

// Time возвращает полночь UTC этой даты.
func (d Date) Time() time.Time { return d.t }

// AddDays возвращает дату, сдвинутую на n дней.
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// DaysUntil возвращает количество дней от d до other (отрицательное, если other раньше).
func (d Date) DaysUntil(other Date) int {
	return int(other.t.Sub(d.t).Hours() / 24) //nolint:mnd // часы в сутках
}

// Before сообщает, что d раньше other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// String возвращает дату в формате 2006-01-02 или пустую строку.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// Display возвращает дату для показа пользователю ("Jan 2, 2006") или "-".
func (d Date) Display() string {
	if d.IsZero() {
		return "-"
	}
	return d.t.Format(displayLayout)
}

// UnmarshalJSON не падает на нераспознанной дате: такая дата считается пустой,
// чтобы одна битая запись не ломала весь список.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonNull) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("ошибка декодирования даты: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		*d = Date{}
		return nil
	}
	*d = parsed
	return nil
}

// MarshalJSON кодирует пустую дату как null.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return jsonNull, nil
	}
	return json.Marshal(d.String())
}

// Money - денежная сумма. Postgres numeric приходит строкой, поэтому принимаем оба варианта.
type Money float64

// UnmarshalJSON принимает число, строку с числом или null.
func (m *Money) UnmarshalJSON(data []byte) error {
	f, err := decodeNumber(data)
	if err != nil {
		return fmt.Errorf("ошибка декодирования суммы: %w", err)
	}
	*m = Money(f)
	return nil
}

// String возвращает сумму с двумя знаками после запятой.
func (m Money) String() string {
	return strconv.FormatFloat(float64(m), 'f', 2, 64)
}

// Display возвращает сумму со знаком доллара.
func (m Money) Display() string {
	return "$" + m.String()
}

// Count - целое число, которое сервер может отдать строкой (bigint из COUNT(*)).
type Count int64

// UnmarshalJSON принимает число, строку с числом или null.
func (c *Count) UnmarshalJSON(data []byte) error {
	f, err := decodeNumber(data)
	if err != nil {
		return fmt.Errorf("ошибка декодирования счетчика: %w", err)
	}
	*c = Count(f)
	return nil
}

func (c Count) Int() int { return int(c) }

func decodeNumber(data []byte) (float64, error) {
	if bytes.Equal(data, jsonNull) {
		return 0, nil
	}
	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return 0, err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return 0, nil
		}
	}
	return strconv.ParseFloat(raw, 64)
}
