package billing

import (
	"fmt"
	"time"
)

// ChargeLine pairs a charge with its resolved service.
type ChargeLine struct {
	Charge  Charge
	Service Service
}

// Cost returns the undiscounted line cost.
func (l ChargeLine) Cost() float64 {
	return l.Service.Cost(l.Charge.Quantity)
}

// Period is a billing month.
type Period struct {
	Month int
	Year  int
}

// NewPeriod validates and builds a period.
func NewPeriod(month, year int) (Period, error) {
	p := Period{Month: month, Year: year}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Month: int(t.Month()), Year: t.Year()}
}

// ParsePeriod parses a YYYY-MM string.
func ParsePeriod(value string) (Period, error) {
	if value == "" {
		return Period{}, &ValidationError{Reason: "period required"}
	}
	t, err := time.Parse("2006-01", value)
	if err != nil {
		return Period{}, &ValidationError{Reason: "period must be YYYY-MM"}
	}
	return PeriodOf(t), nil
}

// Validate checks the month range.
func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return &ValidationError{Reason: fmt.Sprintf("invalid period month %d", p.Month)}
	}
	if p.Year <= 0 {
		return &ValidationError{Reason: fmt.Sprintf("invalid period year %d", p.Year)}
	}
	return nil
}

// String returns the period as YYYY-MM.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// PaymentNotice is the per-account, per-period statement of charges.
// TotalAmount stays zero until the charge pipeline fills it in.
type PaymentNotice struct {
	Account     PersonalAccount
	Street      Street
	Lines       []ChargeLine
	PeriodMonth int
	PeriodYear  int
	TotalAmount float64
}

// Period returns the notice billing period.
func (n *PaymentNotice) Period() Period {
	return Period{Month: n.PeriodMonth, Year: n.PeriodYear}
}

// Address returns the formatted account address.
func (n *PaymentNotice) Address() string {
	return n.Account.Address(&n.Street)
}
