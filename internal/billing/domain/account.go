package billing

import (
	"fmt"
	"strings"
)

// Street is a street referenced by personal accounts.
type Street struct {
	Code int
	Name string
}

// Service is a billable offering with a per-unit tariff.
type Service struct {
	Code   int
	Name   string
	Tariff float64
}

// Cost returns tariff * quantity.
func (s Service) Cost(quantity float64) float64 {
	return s.Tariff * quantity
}

// PersonalAccount identifies a payer and the premises being billed.
type PersonalAccount struct {
	Code          int
	AccountNumber string
	StreetCode    int
	House         string
	// Building is optional; empty means the house has no separate buildings.
	Building  string
	Apartment string
	FullName  string
}

// Address formats the account address. A nil street falls back to a
// placeholder built from the street code.
func (a PersonalAccount) Address(street *Street) string {
	streetName := fmt.Sprintf("Улица #%d", a.StreetCode)
	if street != nil {
		streetName = street.Name
	}

	var b strings.Builder
	b.WriteString(streetName)
	b.WriteString(", д. ")
	b.WriteString(a.House)
	if a.Building != "" {
		b.WriteString(", корп. ")
		b.WriteString(a.Building)
	}
	b.WriteString(", кв. ")
	b.WriteString(a.Apartment)
	return b.String()
}

// Charge is a raw billable fact: an account consumed a quantity of a service.
type Charge struct {
	Code        int
	AccountCode int
	ServiceCode int
	Quantity    float64
}
