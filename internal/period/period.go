// Package period resolves Brazilian Portuguese period expressions such as
// "últimos 7 dias", "mês passado" or "janeiro de 2024" into inclusive
// calendar-date ranges.
//
// All dates are UTC midnights. Callers that display dates in another timezone
// convert them at the edge.
package period

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// DateLayout is the calendar date format used for every serialized bound.
const DateLayout = "2006-01-02"

// Range is an inclusive calendar-date interval. A nil bound means the range
// is unbounded in that direction.
type Range struct {
	Start *time.Time
	End   *time.Time
}

// IsEmpty reports whether neither bound is set.
func (r Range) IsEmpty() bool {
	return r.Start == nil && r.End == nil
}

// StartDate returns the start bound as YYYY-MM-DD, or "" when unbounded.
func (r Range) StartDate() string {
	return formatBound(r.Start)
}

// EndDate returns the end bound as YYYY-MM-DD, or "" when unbounded.
func (r Range) EndDate() string {
	return formatBound(r.End)
}

type rangeJSON struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

func (r Range) MarshalJSON() ([]byte, error) {
	return json.Marshal(rangeJSON{Start: r.StartDate(), End: r.EndDate()})
}

func (r *Range) UnmarshalJSON(data []byte) error {
	var raw rangeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	start, err := ParseDate(raw.Start)
	if err != nil {
		return err
	}
	end, err := ParseDate(raw.End)
	if err != nil {
		return err
	}
	r.Start, r.End = start, end
	return nil
}

// ParseDate parses a YYYY-MM-DD string into a UTC midnight. An empty string
// yields a nil bound.
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatBound(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithClock overrides the source of the current instant.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		r.now = now
	}
}

// Resolver maps free text to a Range. It holds no mutable state and is safe
// for concurrent use.
type Resolver struct {
	now    func() time.Time
	logger *zap.Logger
	rules  []rule
}

func New(logger *zap.Logger, opts ...Option) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Resolver{
		now:    time.Now,
		logger: logger,
		rules:  defaultRules(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve resolves text against the resolver's clock. The boolean is false
// when no rule recognized the expression; the returned Range is then empty and
// callers must apply no date filter.
func (r *Resolver) Resolve(text string) (Range, bool) {
	return r.ResolveAt(text, r.now())
}

// ResolveAt resolves text as if the current instant were now.
func (r *Resolver) ResolveAt(text string, now time.Time) (Range, bool) {
	folded := Normalize(text)
	today := truncateDay(now)

	for _, rl := range r.rules {
		rg, ok := rl.match(folded, today)
		if !ok {
			continue
		}
		r.logger.Debug("Period resolved",
			zap.String("period", text),
			zap.String("rule", rl.name),
			zap.String("start", rg.StartDate()),
			zap.String("end", rg.EndDate()),
		)
		return rg, true
	}

	r.logger.Warn("Period not recognized, no date filter applied", zap.String("period", text))
	return Range{}, false
}

// MonthBounds returns the first and last calendar day of the given month.
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	return date(year, month, 1), date(year, month+1, 0)
}

// Today returns now truncated to its UTC calendar day.
func Today(now time.Time) time.Time {
	return truncateDay(now)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return date(y, m, d)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
