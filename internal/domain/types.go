package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire and storage format of dates / Format des dates en transit et en base
const DateLayout = "2006-01-02"

// Date is a calendar day without time of day / Jour calendaire sans heure
type Date struct {
	t time.Time
}

// NewDate truncates t to its calendar day / Tronque t à son jour calendaire
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current local day / Retourne le jour courant
func Today() Date {
	return NewDate(time.Now())
}

// ParseDate accepts YYYY-MM-DD or a full RFC 3339 timestamp, keeping its calendar day
// Accepte YYYY-MM-DD ou un horodatage RFC 3339 complet dont seul le jour est conservé
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{t: t}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return NewDate(t), nil
	}
	return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
}

// Time returns the underlying time at midnight UTC / Retourne l'heure sous-jacente à minuit UTC
func (d Date) Time() time.Time { return d.t }

// IsZero reports whether the date is unset / Indique si la date est vide
func (d Date) IsZero() bool { return d.t.IsZero() }

// Equal compares two days / Compare deux jours
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// MarshalJSON encodes the date as "YYYY-MM-DD" or null / Encode la date en "YYYY-MM-DD" ou null
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes "YYYY-MM-DD" or null / Décode "YYYY-MM-DD" ou null
func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer / Implémente driver.Valuer
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Scan implements sql.Scanner for DATE columns of every supported driver / Implémente sql.Scanner
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = NewDate(v)
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

// Flag is a 0/1 indicator stored as a small integer / Indicateur 0/1 stocké en entier
type Flag int

// Flag values / Valeurs des indicateurs
const (
	FlagOff Flag = 0
	FlagOn  Flag = 1
)

// Bool reports whether the flag is set / Indique si l'indicateur est levé
func (f Flag) Bool() bool { return f != FlagOff }

// UnmarshalJSON accepts true, false, 0 or 1 / Accepte true, false, 0 ou 1
func (f *Flag) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case "true":
		*f = FlagOn
		return nil
	case "false":
		*f = FlagOff
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("flag must be a boolean or 0/1: %w", err)
	}
	if n != 0 && n != 1 {
		return fmt.Errorf("flag must be 0 or 1, got %d", n)
	}
	*f = Flag(n)
	return nil
}
