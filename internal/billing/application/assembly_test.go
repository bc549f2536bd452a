package application

import (
	"context"
	"errors"
	"testing"

	billing "payment-notices/internal/billing/domain"
	"payment-notices/internal/billing/infrastructure/memory"
)

func demoStore(t *testing.T) *memory.RecordStore {
	t.Helper()
	store, err := memory.NewDemoRecordStore()
	if err != nil {
		t.Fatalf("demo store: %v", err)
	}
	return store
}

func TestAssembleNotice(t *testing.T) {
	assembler, err := NewAssembler(demoStore(t))
	if err != nil {
		t.Fatalf("new assembler: %v", err)
	}
	period := billing.Period{Month: 10, Year: 2026}

	notice, err := assembler.Assemble(context.Background(), 2, period)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if notice.Account.AccountNumber != "ЛС-002" {
		t.Fatalf("unexpected account %s", notice.Account.AccountNumber)
	}
	if notice.Street.Name != "Пушкина" {
		t.Fatalf("unexpected street %s", notice.Street.Name)
	}
	if len(notice.Lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(notice.Lines))
	}
	if notice.Lines[2].Service.Name != "Отопление" {
		t.Fatalf("unexpected third service %s", notice.Lines[2].Service.Name)
	}
	if notice.TotalAmount != 0 {
		t.Fatalf("expected zero total, got %v", notice.TotalAmount)
	}
	if notice.Period() != period {
		t.Fatalf("unexpected period %v", notice.Period())
	}
}

func TestAssembleDropsUnresolvedServices(t *testing.T) {
	store := demoStore(t)
	if err := store.AddCharge(billing.Charge{Code: 50, AccountCode: 1, ServiceCode: 99, Quantity: 1}); err != nil {
		t.Fatalf("add charge: %v", err)
	}
	assembler, _ := NewAssembler(store)

	notice, err := assembler.Assemble(context.Background(), 1, billing.Period{Month: 1, Year: 2026})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	for _, l := range notice.Lines {
		if l.Charge.Code == 50 {
			t.Fatalf("expected charge with unknown service to be dropped")
		}
	}
	if len(notice.Lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(notice.Lines))
	}
}

func TestAssembleNotFound(t *testing.T) {
	store := demoStore(t)
	if err := store.AddAccount(billing.PersonalAccount{Code: 4, AccountNumber: "ЛС-004", StreetCode: 77, House: "1", Apartment: "1"}); err != nil {
		t.Fatalf("add account: %v", err)
	}
	if err := store.AddAccount(billing.PersonalAccount{Code: 5, AccountNumber: "ЛС-005", StreetCode: 1, House: "2", Apartment: "3"}); err != nil {
		t.Fatalf("add account: %v", err)
	}
	if err := store.AddCharge(billing.Charge{Code: 60, AccountCode: 5, ServiceCode: 99, Quantity: 1}); err != nil {
		t.Fatalf("add charge: %v", err)
	}
	assembler, _ := NewAssembler(store)
	period := billing.Period{Month: 3, Year: 2026}

	cases := []struct {
		name    string
		account int
		kind    string
	}{
		{"missing account", 404, billing.KindAccount},
		{"missing street", 4, billing.KindStreet},
		{"no resolvable charges", 5, billing.KindCharges},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := assembler.Assemble(context.Background(), tc.account, period)
			var nf *billing.NotFoundError
			if !errors.As(err, &nf) {
				t.Fatalf("expected not found error, got %v", err)
			}
			if nf.Kind != tc.kind {
				t.Fatalf("expected kind %q, got %q", tc.kind, nf.Kind)
			}
			if !errors.Is(err, billing.ErrNotFound) {
				t.Fatalf("expected ErrNotFound match")
			}
		})
	}
}

func TestAssembleRejectsInvalidPeriod(t *testing.T) {
	assembler, _ := NewAssembler(demoStore(t))
	_, err := assembler.Assemble(context.Background(), 1, billing.Period{Month: 13, Year: 2026})
	if !errors.Is(err, billing.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNewAssemblerNilStore(t *testing.T) {
	if _, err := NewAssembler(nil); err == nil {
		t.Fatalf("expected error for nil store")
	}
}
