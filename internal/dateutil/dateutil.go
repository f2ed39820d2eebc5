// Package dateutil turns user-facing date patterns such as "MMMM D, YYYY"
// into formatters for entry dates shown on generated pages.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length to prevent abuse.
const MaxDateFormatLength = 50

// DefaultDateFormat is used when the site does not configure one.
const DefaultDateFormat = "YYYY-MM-DD"

// dateTokens maps pattern tokens to Go layout components, longest first.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// DatePresets provides named shortcuts for common date formats.
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// Formatter renders dates with a validated pattern.
type Formatter struct {
	pattern string
	layout  string
}

// NewFormatter compiles a pattern or preset name. An empty pattern selects
// DefaultDateFormat.
func NewFormatter(pattern string) (*Formatter, error) {
	if pattern == "" {
		pattern = DefaultDateFormat
	}
	if preset, ok := DatePresets[strings.ToLower(pattern)]; ok {
		pattern = preset
	}
	layout, err := ParseDateFormat(pattern)
	if err != nil {
		return nil, err
	}
	return &Formatter{pattern: pattern, layout: layout}, nil
}

// Format renders t.
func (f *Formatter) Format(t time.Time) string {
	return t.Format(f.layout)
}

// Pattern returns the resolved user-facing pattern.
func (f *Formatter) Pattern() string {
	return f.pattern
}

// ParseDateFormat converts a pattern to Go's reference layout.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D. Text in brackets is copied
// literally, e.g. "[Day] D". Other characters are kept as they are.
func ParseDateFormat(format string) (string, error) {
	switch {
	case format == "":
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	case len(format) > MaxDateFormatLength:
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var layout strings.Builder
	rest := format
	for rest != "" {
		if rest[0] == '[' {
			literal, after, ok := strings.Cut(rest[1:], "]")
			if !ok {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, len(format)-len(rest))
			}
			layout.WriteString(literal)
			rest = after
			continue
		}

		n, goFmt := matchToken(rest)
		if n == 0 {
			layout.WriteByte(rest[0])
			rest = rest[1:]
			continue
		}
		layout.WriteString(goFmt)
		rest = rest[n:]
	}
	return layout.String(), nil
}

func matchToken(s string) (int, string) {
	for _, t := range dateTokens {
		if strings.HasPrefix(s, t.token) {
			return len(t.token), t.goFmt
		}
	}
	return 0, ""
}
