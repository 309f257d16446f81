package appointment

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Frequency is a supported recurrence cadence.
type Frequency string

const (
	FreqDaily   Frequency = "daily"
	FreqWeekly  Frequency = "weekly"
	FreqMonthly Frequency = "monthly"
)

// weekdaySymbols maps calendar weekday symbols to Go weekdays (Sunday = 0).
var weekdaySymbols = map[string]time.Weekday{
	"SU": time.Sunday,
	"MO": time.Monday,
	"TU": time.Tuesday,
	"WE": time.Wednesday,
	"TH": time.Thursday,
	"FR": time.Friday,
	"SA": time.Saturday,
}

var weekdayNames = map[time.Weekday]string{
	time.Sunday:    "SU",
	time.Monday:    "MO",
	time.Tuesday:   "TU",
	time.Wednesday: "WE",
	time.Thursday:  "TH",
	time.Friday:    "FR",
	time.Saturday:  "SA",
}

// Rule is a normalized recurrence rule. Weekdays is populated for weekly
// rules only and is always sorted ascending; the generator relies on that
// order to emit occurrences chronologically.
type Rule struct {
	Freq     Frequency
	Interval int
	Weekdays []time.Weekday
}

// RuleInput is the wire shape of a recurrence rule as submitted by clients
// and as stored alongside the series root.
type RuleInput struct {
	Freq      string   `json:"freq"`
	Interval  int      `json:"interval"`
	ByWeekday []string `json:"byWeekday,omitempty"`
}

// NormalizeRule canonicalizes a raw rule. It returns nil when the input is
// absent or names an unsupported frequency, which callers treat as "no
// recurrence". A non-positive interval defaults to 1. Unrecognized weekday
// symbols are dropped without error.
func NormalizeRule(in *RuleInput) *Rule {
	if in == nil {
		return nil
	}

	freq := Frequency(strings.ToLower(strings.TrimSpace(in.Freq)))
	switch freq {
	case FreqDaily, FreqWeekly, FreqMonthly:
	default:
		return nil
	}

	interval := in.Interval
	if interval <= 0 {
		interval = 1
	}

	var weekdays []time.Weekday
	seen := map[time.Weekday]bool{}
	for _, sym := range in.ByWeekday {
		wd, ok := weekdaySymbols[strings.ToUpper(strings.TrimSpace(sym))]
		if !ok || seen[wd] {
			continue
		}
		seen[wd] = true
		weekdays = append(weekdays, wd)
	}
	sort.Slice(weekdays, func(i, j int) bool { return weekdays[i] < weekdays[j] })

	return &Rule{Freq: freq, Interval: interval, Weekdays: weekdays}
}

// MarshalJSON renders the rule in its wire shape.
func (r Rule) MarshalJSON() ([]byte, error) {
	w := RuleInput{Freq: string(r.Freq), Interval: r.Interval}
	for _, wd := range r.Weekdays {
		w.ByWeekday = append(w.ByWeekday, weekdayNames[wd])
	}
	return json.Marshal(w)
}

// UnmarshalJSON parses a stored rule. Stored rules were normalized on write,
// so an unsupported frequency here indicates corrupt data.
func (r *Rule) UnmarshalJSON(b []byte) error {
	var w RuleInput
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	norm := NormalizeRule(&w)
	if norm == nil {
		return fmt.Errorf("unsupported recurrence frequency %q", w.Freq)
	}
	*r = *norm
	return nil
}

// AddDays shifts t by n calendar days, preserving time of day.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// AddMonths shifts t by n calendar months, clamping the day of month to the
// last valid day of the target month. Jan 31 + 1 month is Feb 28/29, never
// Mar 2. Callers iterating month-by-month apply the clamp at every step, so
// a clamped cursor stays clamped (Jan 31 -> Feb 29 -> Mar 29).
func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	target := first.AddDate(0, n, 0)
	if last := daysInMonth(target.Year(), target.Month()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FormatOccurrence renders an occurrence instant in the stable form used
// throughout the API, seconds precision.
func FormatOccurrence(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// Generate produces the ordered occurrence instants for a series starting at
// start. Generation stops at whichever bound is reached first: maxCount (when
// positive) or end (inclusive). Without a rule, or without any bound at all,
// the series degrades to the single start occurrence.
func Generate(start time.Time, rule *Rule, maxCount int, end *time.Time) []time.Time {
	if rule == nil || (maxCount <= 0 && end == nil) {
		return []time.Time{start}
	}

	if rule.Freq == FreqWeekly {
		return generateWeekly(start, rule, maxCount, end)
	}

	step := func(t time.Time) time.Time { return AddDays(t, rule.Interval) }
	if rule.Freq == FreqMonthly {
		step = func(t time.Time) time.Time { return AddMonths(t, rule.Interval) }
	}

	var out []time.Time
	cursor := start
	for {
		if end != nil && cursor.After(*end) {
			break
		}
		out = append(out, cursor)
		if maxCount > 0 && len(out) >= maxCount {
			break
		}
		cursor = step(cursor)
	}
	return out
}

// generateWeekly walks week by week from the Sunday of start's week. Within
// each week it visits the target weekdays in ascending order, skipping
// candidates before start; reaching either bound returns immediately, even
// mid-week.
func generateWeekly(start time.Time, rule *Rule, maxCount int, end *time.Time) []time.Time {
	targets := rule.Weekdays
	if len(targets) == 0 {
		targets = []time.Weekday{start.Weekday()}
	}

	var out []time.Time
	weekStart := AddDays(start, -int(start.Weekday()))
	for {
		for _, wd := range targets {
			candidate := AddDays(weekStart, int(wd))
			if candidate.Before(start) {
				continue
			}
			if end != nil && candidate.After(*end) {
				return out
			}
			out = append(out, candidate)
			if maxCount > 0 && len(out) >= maxCount {
				return out
			}
		}
		weekStart = AddDays(weekStart, 7*rule.Interval)
	}
}
