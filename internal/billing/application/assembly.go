package application

import (
	"context"
	"errors"

	billing "payment-notices/internal/billing/domain"
)

// Assembler joins an account, its street and its charges into a notice.
type Assembler struct {
	store billing.RecordStore
}

// NewAssembler constructs an assembler.
func NewAssembler(store billing.RecordStore) (*Assembler, error) {
	if store == nil {
		return nil, errors.New("notice assembler: nil record store")
	}
	return &Assembler{store: store}, nil
}

// Assemble builds an unpriced notice for the account and period.
// Charges whose service cannot be resolved are dropped.
func (a *Assembler) Assemble(ctx context.Context, accountCode int, period billing.Period) (*billing.PaymentNotice, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	account, err := a.store.GetAccount(ctx, accountCode)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, &billing.NotFoundError{Kind: billing.KindAccount, Code: accountCode}
	}

	street, err := a.store.GetStreet(ctx, account.StreetCode)
	if err != nil {
		return nil, err
	}
	if street == nil {
		return nil, &billing.NotFoundError{Kind: billing.KindStreet, Code: account.StreetCode}
	}

	charges, err := a.store.ChargesForAccount(ctx, accountCode)
	if err != nil {
		return nil, err
	}
	lines := make([]billing.ChargeLine, 0, len(charges))
	for _, charge := range charges {
		service, err := a.store.GetService(ctx, charge.ServiceCode)
		if err != nil {
			return nil, err
		}
		if service == nil {
			continue
		}
		lines = append(lines, billing.ChargeLine{Charge: charge, Service: *service})
	}
	if len(lines) == 0 {
		return nil, &billing.NotFoundError{Kind: billing.KindCharges, Code: accountCode}
	}

	return &billing.PaymentNotice{
		Account:     *account,
		Street:      *street,
		Lines:       lines,
		PeriodMonth: period.Month,
		PeriodYear:  period.Year,
	}, nil
}
