package calendar

import (
	"testing"
	"time"
)

func TestMonthName(t *testing.T) {
	ru := NewFormatter("")
	cases := []struct {
		month int
		want  string
	}{
		{1, "Январь"},
		{5, "Май"},
		{12, "Декабрь"},
		{0, "Неизвестно"},
		{13, "Неизвестно"},
	}
	for _, tc := range cases {
		if got := ru.MonthName(tc.month); got != tc.want {
			t.Fatalf("month %d: expected %q, got %q", tc.month, tc.want, got)
		}
	}

	en := NewFormatter("EN")
	if got := en.MonthName(3); got != "March" {
		t.Fatalf("expected March, got %q", got)
	}
	if got := en.MonthName(-1); got != "Unknown" {
		t.Fatalf("expected Unknown, got %q", got)
	}
}

func TestUnknownLocaleFallsBackToRussian(t *testing.T) {
	f := NewFormatter("de")
	if f.Locale() != LocaleRU {
		t.Fatalf("expected ru locale, got %s", f.Locale())
	}
}

func TestPeriodLabelAndDates(t *testing.T) {
	clock := FixedClock(time.Date(2026, time.October, 16, 9, 30, 0, 0, time.UTC))
	f := NewFormatter(LocaleRU, WithClock(clock))

	if got := f.PeriodLabel(10, 2026); got != "Октябрь 2026" {
		t.Fatalf("unexpected period label %q", got)
	}
	if got := f.Today(); got != "16.10.2026" {
		t.Fatalf("unexpected date %q", got)
	}

	iso := NewFormatter(LocaleEN, WithClock(clock), WithLayout("2006-01-02"))
	if got := iso.Today(); got != "2026-10-16" {
		t.Fatalf("unexpected date %q", got)
	}
}
