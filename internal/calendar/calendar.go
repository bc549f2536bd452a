package calendar

import (
	"strconv"
	"strings"
	"time"
)

// DefaultDateLayout renders dates as dd.mm.yyyy.
const DefaultDateLayout = "02.01.2006"

// Supported locales.
const (
	LocaleRU = "ru"
	LocaleEN = "en"
)

var monthNames = map[string][12]string{
	LocaleRU: {
		"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
		"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
	},
	LocaleEN: {
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
}

var unknownMonth = map[string]string{
	LocaleRU: "Неизвестно",
	LocaleEN: "Unknown",
}

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// Formatter produces localized month labels and formatted dates.
type Formatter struct {
	locale string
	layout string
	clock  Clock
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithLayout overrides the date layout.
func WithLayout(layout string) Option {
	return func(f *Formatter) {
		if layout != "" {
			f.layout = layout
		}
	}
}

// WithClock overrides the clock used by Today.
func WithClock(clock Clock) Option {
	return func(f *Formatter) {
		if clock != nil {
			f.clock = clock
		}
	}
}

// NewFormatter builds a formatter. Unknown locales fall back to Russian.
func NewFormatter(locale string, opts ...Option) *Formatter {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if _, ok := monthNames[locale]; !ok {
		locale = LocaleRU
	}
	f := &Formatter{locale: locale, layout: DefaultDateLayout, clock: SystemClock{}}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Locale returns the effective locale.
func (f *Formatter) Locale() string { return f.locale }

// MonthName returns the month label for 1..12.
func (f *Formatter) MonthName(month int) string {
	if month < 1 || month > 12 {
		return unknownMonth[f.locale]
	}
	return monthNames[f.locale][month-1]
}

// PeriodLabel renders "<Month> <Year>".
func (f *Formatter) PeriodLabel(month, year int) string {
	return f.MonthName(month) + " " + strconv.Itoa(year)
}

// FormatDate renders t with the configured layout.
func (f *Formatter) FormatDate(t time.Time) string {
	return t.Format(f.layout)
}

// Today returns the formatted current date.
func (f *Formatter) Today() string {
	return f.FormatDate(f.clock.Now())
}

// Now returns the current time of the formatter's clock.
func (f *Formatter) Now() time.Time {
	return f.clock.Now()
}

