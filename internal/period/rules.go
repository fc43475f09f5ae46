package period

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// rule inspects normalized text and, on a hit, returns the resolved range.
// today is a UTC midnight.
type rule struct {
	name  string
	match func(text string, today time.Time) (Range, bool)
}

// Ranges never start before this date; counts reaching further back make the
// rule miss.
var minStart = date(1900, time.January, 1)

var (
	lastDaysRe   = regexp.MustCompile(`ultimos?\s+(\d+)\s+dias?`)
	lastMonthsRe = regexp.MustCompile(`ultimos?\s+(\d+)\s+mes(?:es)?`)
	lastYearsRe  = regexp.MustCompile(`ultimos?\s+(\d+)\s+anos?`)
	anyYearRe    = regexp.MustCompile(`\b(\d{4})\b`)
	bareYearRe   = regexp.MustCompile(`\b(20[0-9]{2})\b`)
)

// monthNames is in calendar order; the first name found in the text wins.
var monthNames = []string{
	"janeiro",
	"fevereiro",
	"marco",
	"abril",
	"maio",
	"junho",
	"julho",
	"agosto",
	"setembro",
	"outubro",
	"novembro",
	"dezembro",
}

// defaultRules returns the rules in priority order.
func defaultRules() []rule {
	return []rule{
		{name: "last_days", match: matchLastDays},
		{name: "last_months", match: matchLastMonths},
		{name: "last_years", match: matchLastYears},
		{name: "today", match: matchToday},
		{name: "yesterday", match: matchYesterday},
		{name: "this_week", match: matchThisWeek},
		{name: "this_month", match: matchThisMonth},
		{name: "previous_month", match: matchPreviousMonth},
		{name: "named_month", match: matchNamedMonth},
		{name: "year", match: matchYear},
	}
}

func matchLastDays(text string, today time.Time) (Range, bool) {
	n, ok := countFrom(lastDaysRe, text)
	if !ok || n > int(today.Sub(minStart).Hours()/24) {
		return Range{}, false
	}
	return startOnly(today.AddDate(0, 0, -n)), true
}

func matchLastMonths(text string, today time.Time) (Range, bool) {
	n, ok := countFrom(lastMonthsRe, text)
	if !ok || n > (today.Year()-minStart.Year())*12+int(today.Month())-1 {
		return Range{}, false
	}
	return startOnly(addMonthsClamped(today, -n)), true
}

func matchLastYears(text string, today time.Time) (Range, bool) {
	n, ok := countFrom(lastYearsRe, text)
	if !ok || n > today.Year()-minStart.Year() {
		return Range{}, false
	}
	return startOnly(addMonthsClamped(today, -12*n)), true
}

func matchToday(text string, today time.Time) (Range, bool) {
	if !strings.Contains(text, "hoje") {
		return Range{}, false
	}
	return startOnly(today), true
}

func matchYesterday(text string, today time.Time) (Range, bool) {
	if !strings.Contains(text, "ontem") {
		return Range{}, false
	}
	yesterday := today.AddDate(0, 0, -1)
	return between(yesterday, yesterday), true
}

func matchThisWeek(text string, today time.Time) (Range, bool) {
	if !containsAny(text, "esta semana", "dessa semana") {
		return Range{}, false
	}
	// Weeks start on Sunday.
	return startOnly(today.AddDate(0, 0, -int(today.Weekday()))), true
}

func matchThisMonth(text string, today time.Time) (Range, bool) {
	if !containsAny(text, "este mes", "deste mes") {
		return Range{}, false
	}
	return startOnly(date(today.Year(), today.Month(), 1)), true
}

func matchPreviousMonth(text string, today time.Time) (Range, bool) {
	if !containsAny(text, "mes passado", "ultimo mes") {
		return Range{}, false
	}
	return between(MonthBounds(today.Year(), today.Month()-1)), true
}

func matchNamedMonth(text string, today time.Time) (Range, bool) {
	for i, name := range monthNames {
		if !strings.Contains(text, name) {
			continue
		}
		year := today.Year()
		if m := anyYearRe.FindStringSubmatch(text); m != nil {
			year, _ = strconv.Atoi(m[1])
		}
		return between(MonthBounds(year, time.Month(i+1))), true
	}
	return Range{}, false
}

func matchYear(text string, _ time.Time) (Range, bool) {
	m := bareYearRe.FindStringSubmatch(text)
	if m == nil {
		return Range{}, false
	}
	year, _ := strconv.Atoi(m[1])
	return between(date(year, time.January, 1), date(year, time.December, 31)), true
}

// countFrom extracts the numeric capture of re. Counts that do not fit an int
// are treated as a miss.
func countFrom(re *regexp.Regexp, text string) (int, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// addMonthsClamped shifts t by months, clamping the day to the length of the
// target month (31 Mar - 1 month = 28/29 Feb).
func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := date(y, m, 1).AddDate(0, months, 0)
	_, last := MonthBounds(first.Year(), first.Month())
	if d > last.Day() {
		d = last.Day()
	}
	return date(first.Year(), first.Month(), d)
}

func containsAny(text string, subs ...string) bool {
	for _, s := range subs {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}

func startOnly(start time.Time) Range {
	return Range{Start: &start}
}

func between(start, end time.Time) Range {
	return Range{Start: &start, End: &end}
}
