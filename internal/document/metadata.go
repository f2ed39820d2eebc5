package document

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ErrInvalidDate indicates a date value that is not a YYYY-MM-DD calendar date.
var ErrInvalidDate = errors.New("invalid date")

// Metadata holds the typed properties declared at the top of a document.
// Every dialect converges on this shape. Unknown keys are rejected at parse
// time, so a Metadata value only ever carries the fields below.
type Metadata struct {
	Page       bool    `yaml:"page" toml:"page"`
	Title      string  `yaml:"title" toml:"title"`
	Author     *string `yaml:"author" toml:"author"`
	Date       *Date   `yaml:"date" toml:"date"`
	UpdateDate *Date   `yaml:"update_date" toml:"update_date"`
	Slug       *string `yaml:"slug" toml:"slug"`
	Draft      bool    `yaml:"draft" toml:"draft"`
	Template   *string `yaml:"template" toml:"template"`

	// Dialect-specific rendering flags.
	TOC      bool `yaml:"toc" toml:"toc"`
	TOCLevel *int `yaml:"toc_level" toml:"toc_level"`
	Math     bool `yaml:"math" toml:"math"`
}

// IsArticle reports whether the document is a dated, indexed article.
func (m Metadata) IsArticle() bool {
	return !m.Page
}

// Date is a calendar date with no time-of-day or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date from its components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return dateOf(t), nil
}

func dateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Time().Format(dateLayout)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to,
// or after other.
func (d Date) Compare(other Date) int {
	return d.Time().Compare(other.Time())
}

// UnmarshalYAML decodes a YAML scalar date.
func (d *Date) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// UnmarshalTOML decodes either a TOML local date or a quoted string.
func (d *Date) UnmarshalTOML(v any) error {
	switch val := v.(type) {
	case time.Time:
		*d = dateOf(val)
		return nil
	case string:
		parsed, err := ParseDate(val)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("%w: unexpected %T", ErrInvalidDate, v)
	}
}

// MarshalText renders the date for templates and logs.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
