package format

import (
	"strconv"
	"strings"
	"time"

	"github.com/footprint-tools/commands/internal/domain"
)

// Formatter renders timestamps using the display_date and display_time
// settings of a config provider.
type Formatter struct {
	cfg domain.ConfigProvider
}

// New returns a Formatter reading its settings from cfg. A nil cfg uses
// the defaults.
func New(cfg domain.ConfigProvider) Formatter {
	return Formatter{cfg: cfg}
}

func (f Formatter) setting(key, def string) string {
	if f.cfg == nil {
		return def
	}
	v, _ := f.cfg.Get(key)
	if v == "" {
		return def
	}
	return v
}

// DateTime formats a time with both date and time.
// Example output: "23/01/2024 15:04" or "01/23/2024 3:04 PM"
func (f Formatter) DateTime(t time.Time) string {
	return f.Date(t) + " " + f.Time(t)
}

// DateTimeShort formats a time with short date and time (no year).
// Example output: "23/01 15:04" or "01/23 3:04 PM"
func (f Formatter) DateTimeShort(t time.Time) string {
	return f.DateShort(t) + " " + f.Time(t)
}

// Date formats only the date portion.
func (f Formatter) Date(t time.Time) string {
	return t.Format(dateLayout(f.setting("display_date", "Jan 02")))
}

// DateShort formats date without year.
func (f Formatter) DateShort(t time.Time) string {
	return t.Format(shortDateLayout(f.setting("display_date", "Jan 02")))
}

// Time formats only the time portion.
func (f Formatter) Time(t time.Time) string {
	if f.setting("display_time", "24h") == "12h" {
		return t.Format("3:04 PM")
	}
	return t.Format("15:04")
}

// TimeFull formats time with seconds.
func (f Formatter) TimeFull(t time.Time) string {
	if f.setting("display_time", "24h") == "12h" {
		return t.Format("3:04:05 PM")
	}
	return t.Format("15:04:05")
}

// Full formats with full date and time with seconds.
func (f Formatter) Full(t time.Time) string {
	return f.Date(t) + " " + f.TimeFull(t)
}

func dateLayout(displayDate string) string {
	switch displayDate {
	case "mm/dd/yyyy":
		return "01/02/2006"
	case "yyyy-mm-dd":
		return "2006-01-02"
	case "dd/mm/yyyy":
		return "02/01/2006"
	default:
		// Anything else is taken as a Go layout.
		return displayDate
	}
}

func shortDateLayout(displayDate string) string {
	switch displayDate {
	case "mm/dd/yyyy":
		return "01/02"
	case "yyyy-mm-dd":
		return "01-02"
	case "dd/mm/yyyy":
		return "02/01"
	default:
		short := displayDate
		for _, year := range []string{"2006", "/06", "-06", " 06"} {
			short = strings.ReplaceAll(short, year, "")
		}
		short = strings.Trim(strings.TrimSpace(short), "/-")
		if short == "" {
			return "Jan 02"
		}
		return short
	}
}

// Ago describes how long before now t was, in the largest whole unit.
func Ago(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute") + " ago"
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour") + " ago"
	default:
		return plural(int(d/(24*time.Hour)), "day") + " ago"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.Itoa(n) + " " + unit + "s"
}
