// Package locale resolves the timezone and locale used at the command-line
// boundary: parsing --oldest/--latest time bounds and formatting progress
// counts. Message display timestamps are deliberately not locale-aware;
// they are fixed UTC strings computed by the export orchestrator.
package locale

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Accepted layouts for command-line time bounds, tried in order.
var boundLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Resolver carries a resolved timezone and locale.
type Resolver struct {
	Location *time.Location
	Tag      language.Tag

	printer *message.Printer
}

// Resolve builds a Resolver from a tz database name and an IETF language
// tag. Empty inputs fall back to the process timezone and English.
func Resolve(timezone, localeTag string) (*Resolver, error) {
	loc := time.Local
	if timezone != "" {
		var err error
		loc, err = time.LoadLocation(timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone: %w", err)
		}
	}

	tag := language.English
	if localeTag != "" {
		var err error
		tag, err = language.Parse(localeTag)
		if err != nil {
			return nil, fmt.Errorf("invalid locale %q: %w", localeTag, err)
		}
	}

	return &Resolver{
		Location: loc,
		Tag:      tag,
		printer:  message.NewPrinter(tag),
	}, nil
}

// ParseBound parses a command-line time bound in the resolved timezone.
func (r *Resolver) ParseBound(s string) (time.Time, error) {
	for _, layout := range boundLayouts {
		if t, err := time.ParseInLocation(layout, s, r.Location); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q: want YYYY-MM-DD [HH:MM[:SS]]", s)
}

// FormatCount renders a count with the locale's digit grouping, for
// progress output.
func (r *Resolver) FormatCount(n int) string {
	return r.printer.Sprintf("%d", n)
}
