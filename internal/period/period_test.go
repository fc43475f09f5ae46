package period_test

import (
	"encoding/json"
	"strconv"
	"sync"
	"testing"
	"time"

	"oficina-api/internal/period"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// 2025-03-31 is a Monday.
var frozenNow = time.Date(2025, time.March, 31, 15, 4, 5, 0, time.UTC)

func newResolver(now time.Time) *period.Resolver {
	return period.New(zap.NewNop(), period.WithClock(func() time.Time { return now }))
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		start string
		end   string
	}{
		{"last days", "últimos 5 dias", "2025-03-26", ""},
		{"last day singular", "último 1 dia", "2025-03-30", ""},
		{"last days uppercase", "ÚLTIMOS 5 DIAS", "2025-03-26", ""},
		{"last days without accent", "ultimos 5 dias", "2025-03-26", ""},
		{"last zero days", "últimos 0 dias", "2025-03-31", ""},
		{"last months", "últimos 2 meses", "2025-01-31", ""},
		{"last month clamps day", "último 1 mês", "2025-02-28", ""},
		{"last month unaccented", "ultimo 1 mes", "2025-02-28", ""},
		{"last years", "últimos 2 anos", "2023-03-31", ""},
		{"today", "hoje", "2025-03-31", ""},
		{"today in a sentence", "orçamentos de hoje", "2025-03-31", ""},
		{"yesterday", "ontem", "2025-03-30", "2025-03-30"},
		{"this week", "esta semana", "2025-03-30", ""},
		{"this week alternate", "transações dessa semana", "2025-03-30", ""},
		{"this month", "este mês", "2025-03-01", ""},
		{"this month alternate", "deste mes", "2025-03-01", ""},
		{"previous month", "mês passado", "2025-02-01", "2025-02-28"},
		{"previous month alternate", "último mês", "2025-02-01", "2025-02-28"},
		{"named month with year", "janeiro de 2023", "2023-01-01", "2023-01-31"},
		{"named month leap year", "fevereiro 2024", "2024-02-01", "2024-02-29"},
		{"named month current year", "dezembro", "2025-12-01", "2025-12-31"},
		{"accented month", "março", "2025-03-01", "2025-03-31"},
		{"unaccented month", "marco", "2025-03-01", "2025-03-31"},
		{"uppercase month", "MARÇO DE 2022", "2022-03-01", "2022-03-31"},
		{"bare year", "2024", "2024-01-01", "2024-12-31"},
		{"year in sentence", "ano de 2024", "2024-01-01", "2024-12-31"},
		{"extra whitespace", "  esta   semana ", "2025-03-30", ""},
	}

	r := newResolver(frozenNow)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rg, ok := r.Resolve(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.start, rg.StartDate())
			assert.Equal(t, tt.end, rg.EndDate())
		})
	}
}

func TestResolvePriorityOrder(t *testing.T) {
	r := newResolver(frozenNow)

	tests := []struct {
		name  string
		text  string
		start string
		end   string
	}{
		{"relative window beats month name", "últimos 3 dias de janeiro", "2025-03-28", ""},
		{"today beats yesterday", "hoje e ontem", "2025-03-31", ""},
		{"this month beats month name", "este mês de janeiro", "2025-03-01", ""},
		{"month names checked in calendar order", "junho e maio", "2025-05-01", "2025-05-31"},
		{"month name beats bare year", "abril 2021", "2021-04-01", "2021-04-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rg, ok := r.Resolve(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.start, rg.StartDate())
			assert.Equal(t, tt.end, rg.EndDate())
		})
	}
}

func TestResolvePreviousMonthAcrossYearBoundary(t *testing.T) {
	r := newResolver(time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC))

	rg, ok := r.Resolve("mês passado")
	require.True(t, ok)
	assert.Equal(t, "2024-12-01", rg.StartDate())
	assert.Equal(t, "2024-12-31", rg.EndDate())
}

func TestResolveLastDaysForAnyCount(t *testing.T) {
	r := newResolver(frozenNow)
	today := period.Today(frozenNow)

	for n := 1; n <= 800; n++ {
		rg, ok := r.ResolveAt("últimos "+strconv.Itoa(n)+" dias", frozenNow)
		require.True(t, ok)
		require.Nil(t, rg.End)
		require.Equal(t, today.AddDate(0, 0, -n), *rg.Start, "n=%d", n)
	}
}

func TestResolveLastYearFromLeapDay(t *testing.T) {
	r := newResolver(time.Date(2024, time.February, 29, 12, 0, 0, 0, time.UTC))

	rg, ok := r.Resolve("último 1 ano")
	require.True(t, ok)
	assert.Equal(t, "2023-02-28", rg.StartDate())
}

func TestResolveUsesUTCCalendarDay(t *testing.T) {
	// 22:30 in São Paulo is already the next day in UTC.
	loc := time.FixedZone("BRT", -3*60*60)
	r := newResolver(time.Date(2025, time.March, 30, 22, 30, 0, 0, loc))

	rg, ok := r.Resolve("hoje")
	require.True(t, ok)
	assert.Equal(t, "2025-03-31", rg.StartDate())
}

func TestResolveUnrecognized(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	r := period.New(zap.New(core), period.WithClock(func() time.Time { return frozenNow }))

	for _, text := range []string{
		"xyz not a period",
		"1999",
		"últimos 99999999999999999999 dias",
		"últimos 200000 dias",
		"últimos 5000 anos",
	} {
		rg, ok := r.Resolve(text)
		assert.False(t, ok, text)
		assert.True(t, rg.IsEmpty(), text)
	}

	assert.Equal(t, 5, logs.FilterMessage("Period not recognized, no date filter applied").Len())
}

func TestResolveIsIdempotent(t *testing.T) {
	r := newResolver(frozenNow)

	first, _ := r.Resolve("mês passado")
	second, _ := r.Resolve("mês passado")
	assert.Equal(t, first, second)
}

func TestResolveConcurrentUse(t *testing.T) {
	r := newResolver(frozenNow)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rg, ok := r.Resolve("janeiro de 2023")
			assert.True(t, ok)
			assert.Equal(t, "2023-01-01", rg.StartDate())
		}()
	}
	wg.Wait()
}

func TestRangeJSON(t *testing.T) {
	r := newResolver(frozenNow)

	rg, _ := r.Resolve("últimos 5 dias")
	data, err := json.Marshal(rg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2025-03-26"}`, string(data))

	data, err = json.Marshal(period.Range{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))

	var decoded period.Range
	require.NoError(t, json.Unmarshal([]byte(`{"start":"2024-01-01","end":"2024-12-31"}`), &decoded))
	assert.Equal(t, "2024-01-01", decoded.StartDate())
	assert.Equal(t, "2024-12-31", decoded.EndDate())
}

func TestMonthBounds(t *testing.T) {
	start, end := period.MonthBounds(2024, time.February)
	assert.Equal(t, "2024-02-01", start.Format(period.DateLayout))
	assert.Equal(t, "2024-02-29", end.Format(period.DateLayout))

	start, end = period.MonthBounds(2025, 0)
	assert.Equal(t, "2024-12-01", start.Format(period.DateLayout))
	assert.Equal(t, "2024-12-31", end.Format(period.DateLayout))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "ultimos 5 dias", period.Normalize("  ÚLTIMOS   5 Dias "))
	assert.Equal(t, "marco", period.Normalize("Março"))
	assert.Equal(t, "este mes", period.Normalize("Este Mês"))
}
