package convert

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"jscard/internal/jscontact"
)

var offsetPattern = regexp.MustCompile(`^([+-])(\d{2}):?(\d{2})?$`)

// pseudoZonePattern matches the Etc/GMT form of offsets with minutes, which
// has no IANA zone.
var pseudoZonePattern = regexp.MustCompile(`^Etc/GMT([+-])(\d{1,2}):(\d{2})$`)

// NormalizeTimeZone returns a time zone identifier for a vCard TZ value.
// IANA names pass through. UTC offsets become Etc/GMT pseudo-zones with the
// POSIX inverted sign ("-05:00" is "Etc/GMT+5", "+05:30" is "Etc/GMT-5:30")
// and a zero offset becomes "Etc/GMT". Pseudo-zones with minutes are read
// back as well. ok is false for anything else.
func NormalizeTimeZone(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}

	if m := offsetPattern.FindStringSubmatch(v); m != nil {
		hours, _ := strconv.Atoi(m[2])
		minutes := 0

		if m[3] != "" {
			minutes, _ = strconv.Atoi(m[3])
		}

		if hours > 23 || minutes > 59 {
			return "", false
		}

		if hours == 0 && minutes == 0 {
			return "Etc/GMT", true
		}

		sign := "-"
		if m[1] == "-" {
			sign = "+"
		}

		if minutes == 0 {
			return fmt.Sprintf("Etc/GMT%s%d", sign, hours), true
		}

		return fmt.Sprintf("Etc/GMT%s%d:%02d", sign, hours, minutes), true
	}

	if off, ok := utcOffset(v); ok {
		return NormalizeTimeZone(off)
	}

	if v == "Local" {
		return "", false
	}

	if _, err := time.LoadLocation(v); err != nil {
		return "", false
	}

	return v, true
}

// utcOffset returns the UTC offset for an Etc/GMT zone with minutes
// ("Etc/GMT-5:30" is "+05:30"). ok is false for any other value.
func utcOffset(tz string) (string, bool) {
	m := pseudoZonePattern.FindStringSubmatch(tz)
	if m == nil {
		return "", false
	}

	hours, _ := strconv.Atoi(m[2])

	sign := "+"
	if m[1] == "+" {
		sign = "-"
	}

	return fmt.Sprintf("%s%02d:%s", sign, hours, m[3]), true
}

// vcardTimeZone is the TZ parameter value for a time zone.
func vcardTimeZone(tz string) string {
	if off, ok := utcOffset(tz); ok {
		return off
	}

	return tz
}

var timestampLayouts = []string{
	"20060102T150405Z",
	"20060102T150405Z0700",
	"20060102T150405-0700",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05Z",
	"20060102T150405",
}

// parseTimestamp reads a vCard timestamp and returns it as RFC 3339 in UTC.
func parseTimestamp(v string) (string, bool) {
	v = strings.TrimSpace(v)

	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, v)
		if err == nil {
			return t.UTC().Format(time.RFC3339), true
		}
	}

	return "", false
}

var partialDatePatterns = []struct {
	re               *regexp.Regexp
	year, month, day int
}{
	{regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})$`), 1, 2, 3},
	{regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`), 1, 2, 3},
	{regexp.MustCompile(`^(\d{4})-(\d{2})$`), 1, 2, 0},
	{regexp.MustCompile(`^(\d{4})$`), 1, 0, 0},
	{regexp.MustCompile(`^--(\d{2})-?(\d{2})$`), 0, 1, 2},
	{regexp.MustCompile(`^--(\d{2})$`), 0, 1, 0},
	{regexp.MustCompile(`^---(\d{2})$`), 0, 0, 1},
}

// parseDate reads a vCard date or timestamp. Dates may omit the year, the
// day or both; timestamps become a UTC Timestamp.
func parseDate(v, calendarScale string) (*jscontact.Date, bool) {
	v = strings.TrimSpace(v)

	if strings.Contains(v, "T") {
		ts, ok := parseTimestamp(v)
		if !ok {
			return nil, false
		}

		return &jscontact.Date{UTC: ts}, true
	}

	for _, p := range partialDatePatterns {
		m := p.re.FindStringSubmatch(v)
		if m == nil {
			continue
		}

		pd := &jscontact.PartialDate{CalendarScale: calendarScale}

		if p.year > 0 {
			pd.Year, _ = strconv.Atoi(m[p.year])
		}

		if p.month > 0 {
			pd.Month, _ = strconv.Atoi(m[p.month])
			if pd.Month < 1 || pd.Month > 12 {
				return nil, false
			}
		}

		if p.day > 0 {
			pd.Day, _ = strconv.Atoi(m[p.day])
			if pd.Day < 1 || pd.Day > 31 {
				return nil, false
			}
		}

		return &jscontact.Date{Partial: pd}, true
	}

	return nil, false
}

// formatDate renders a date back to vCard form.
func formatDate(d *jscontact.Date) string {
	if d.Partial == nil {
		t, err := time.Parse(time.RFC3339, d.UTC)
		if err != nil {
			return d.UTC
		}

		return t.UTC().Format("20060102T150405Z")
	}

	pd := d.Partial

	switch {
	case pd.Year > 0 && pd.Month > 0 && pd.Day > 0:
		return fmt.Sprintf("%04d%02d%02d", pd.Year, pd.Month, pd.Day)
	case pd.Year > 0 && pd.Month > 0:
		return fmt.Sprintf("%04d-%02d", pd.Year, pd.Month)
	case pd.Year > 0:
		return fmt.Sprintf("%04d", pd.Year)
	case pd.Month > 0 && pd.Day > 0:
		return fmt.Sprintf("--%02d%02d", pd.Month, pd.Day)
	case pd.Month > 0:
		return fmt.Sprintf("--%02d", pd.Month)
	default:
		return fmt.Sprintf("---%02d", pd.Day)
	}
}

// formatTimestamp renders an RFC 3339 timestamp in vCard basic format.
func formatTimestamp(v string) string {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return v
	}

	return t.UTC().Format("20060102T150405Z")
}

func positiveInt(v string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	return err == nil && n > 0
}

func validTimeZone(v string) bool {
	_, ok := NormalizeTimeZone(v)
	return ok
}

func validTimestamp(v string) bool {
	_, ok := parseTimestamp(v)
	return ok
}
