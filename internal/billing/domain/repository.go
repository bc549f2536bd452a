package billing

import "context"

// RecordStore provides keyed access to billing records.
// Lookups of missing codes return nil without an error.
type RecordStore interface {
	GetStreet(ctx context.Context, code int) (*Street, error)
	GetAccount(ctx context.Context, code int) (*PersonalAccount, error)
	GetService(ctx context.Context, code int) (*Service, error)
	ChargesForAccount(ctx context.Context, accountCode int) ([]Charge, error)
	ListAccounts(ctx context.Context) ([]PersonalAccount, error)
}
