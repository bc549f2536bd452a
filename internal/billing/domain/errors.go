package billing

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation classifies invalid charge or period input.
	ErrValidation = errors.New("billing: validation failed")
	// ErrNotFound classifies missing accounts, streets or charges.
	ErrNotFound = errors.New("billing: not found")
	// ErrProcessing classifies a stage chain that produced no amount.
	ErrProcessing = errors.New("billing: processing failed")
)

// ValidationError reports negative quantities, negative tariffs or bad periods.
type ValidationError struct {
	ChargeCode  int
	ServiceCode int
	Reason      string
}

func (e *ValidationError) Error() string {
	return "billing: " + e.Reason
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error { return ErrValidation }

// NegativeQuantity builds the validation error for a charge.
func NegativeQuantity(charge Charge) *ValidationError {
	return &ValidationError{
		ChargeCode:  charge.Code,
		ServiceCode: charge.ServiceCode,
		Reason:      fmt.Sprintf("negative quantity for charge #%d", charge.Code),
	}
}

// NegativeTariff builds the validation error for a service.
func NegativeTariff(charge Charge, service Service) *ValidationError {
	return &ValidationError{
		ChargeCode:  charge.Code,
		ServiceCode: service.Code,
		Reason:      fmt.Sprintf("negative tariff for service #%d", service.Code),
	}
}

// NotFoundError reports an unresolved record needed to assemble a notice.
type NotFoundError struct {
	Kind string
	Code int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("billing: %s %d not found", e.Kind, e.Code)
}

// Unwrap lets errors.Is match ErrNotFound.
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ProcessingError reports a charge no stage produced an amount for.
type ProcessingError struct {
	ChargeCode int
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("billing: no stage produced an amount for charge #%d", e.ChargeCode)
}

// Unwrap lets errors.Is match ErrProcessing.
func (e *ProcessingError) Unwrap() error { return ErrProcessing }

// Record kinds used in NotFoundError.
const (
	KindAccount = "account"
	KindStreet  = "street"
	KindCharges = "charges for account"
)
