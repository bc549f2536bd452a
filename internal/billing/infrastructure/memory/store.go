package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	billing "payment-notices/internal/billing/domain"
)

// ErrDuplicateCode is returned when a record code is already taken.
var ErrDuplicateCode = errors.New("memory record store: duplicate code")

// RecordStore is an in-memory billing.RecordStore.
type RecordStore struct {
	mu       sync.RWMutex
	streets  map[int]billing.Street
	accounts map[int]billing.PersonalAccount
	services map[int]billing.Service
	charges  map[int]billing.Charge
}

// NewRecordStore constructs an empty store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		streets:  make(map[int]billing.Street),
		accounts: make(map[int]billing.PersonalAccount),
		services: make(map[int]billing.Service),
		charges:  make(map[int]billing.Charge),
	}
}

// AddStreet inserts a street.
func (s *RecordStore) AddStreet(street billing.Street) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.streets[street.Code]; ok {
		return fmt.Errorf("%w: street %d", ErrDuplicateCode, street.Code)
	}
	s.streets[street.Code] = street
	return nil
}

// AddAccount inserts a personal account.
func (s *RecordStore) AddAccount(account billing.PersonalAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[account.Code]; ok {
		return fmt.Errorf("%w: account %d", ErrDuplicateCode, account.Code)
	}
	s.accounts[account.Code] = account
	return nil
}

// AddService inserts a service.
func (s *RecordStore) AddService(service billing.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.services[service.Code]; ok {
		return fmt.Errorf("%w: service %d", ErrDuplicateCode, service.Code)
	}
	s.services[service.Code] = service
	return nil
}

// AddCharge inserts a charge.
func (s *RecordStore) AddCharge(charge billing.Charge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.charges[charge.Code]; ok {
		return fmt.Errorf("%w: charge %d", ErrDuplicateCode, charge.Code)
	}
	s.charges[charge.Code] = charge
	return nil
}

// GetStreet looks up a street by code.
func (s *RecordStore) GetStreet(ctx context.Context, code int) (*billing.Street, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	street, ok := s.streets[code]
	if !ok {
		return nil, nil
	}
	return &street, nil
}

// GetAccount looks up an account by code.
func (s *RecordStore) GetAccount(ctx context.Context, code int) (*billing.PersonalAccount, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[code]
	if !ok {
		return nil, nil
	}
	return &account, nil
}

// GetService looks up a service by code.
func (s *RecordStore) GetService(ctx context.Context, code int) (*billing.Service, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	service, ok := s.services[code]
	if !ok {
		return nil, nil
	}
	return &service, nil
}

// ChargesForAccount returns the account's charges ordered by charge code.
func (s *RecordStore) ChargesForAccount(ctx context.Context, accountCode int) ([]billing.Charge, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []billing.Charge
	for _, charge := range s.charges {
		if charge.AccountCode == accountCode {
			result = append(result, charge)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

// ListAccounts returns all accounts ordered by code.
func (s *RecordStore) ListAccounts(ctx context.Context) ([]billing.PersonalAccount, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]billing.PersonalAccount, 0, len(s.accounts))
	for _, account := range s.accounts {
		result = append(result, account)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}
