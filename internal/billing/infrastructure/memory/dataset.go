package memory

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	billing "payment-notices/internal/billing/domain"
)

// Dataset is the YAML representation of a billing record set.
type Dataset struct {
	Streets  []StreetRecord  `yaml:"streets"`
	Services []ServiceRecord `yaml:"services"`
	Accounts []AccountRecord `yaml:"accounts"`
	Charges  []ChargeRecord  `yaml:"charges"`
}

// StreetRecord is a street entry.
type StreetRecord struct {
	Code int    `yaml:"code"`
	Name string `yaml:"name"`
}

// ServiceRecord is a service entry.
type ServiceRecord struct {
	Code   int     `yaml:"code"`
	Name   string  `yaml:"name"`
	Tariff float64 `yaml:"tariff"`
}

// AccountRecord is a personal account entry.
type AccountRecord struct {
	Code          int    `yaml:"code"`
	AccountNumber string `yaml:"account_number"`
	StreetCode    int    `yaml:"street_code"`
	House         string `yaml:"house"`
	Building      string `yaml:"building,omitempty"`
	Apartment     string `yaml:"apartment"`
	FullName      string `yaml:"full_name"`
}

// ChargeRecord is a charge entry.
type ChargeRecord struct {
	Code        int     `yaml:"code"`
	AccountCode int     `yaml:"account_code"`
	ServiceCode int     `yaml:"service_code"`
	Quantity    float64 `yaml:"quantity"`
}

// LoadDatasetFile reads a YAML dataset from disk.
func LoadDatasetFile(path string) (Dataset, error) {
	if path == "" {
		return Dataset{}, errors.New("dataset: empty path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, err
	}
	return ParseDataset(data)
}

// ParseDataset decodes a YAML dataset.
func ParseDataset(data []byte) (Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

// Load inserts every record of the dataset into the store.
func (s *RecordStore) Load(ds Dataset) error {
	for _, r := range ds.Streets {
		if err := s.AddStreet(billing.Street{Code: r.Code, Name: r.Name}); err != nil {
			return err
		}
	}
	for _, r := range ds.Services {
		if err := s.AddService(billing.Service{Code: r.Code, Name: r.Name, Tariff: r.Tariff}); err != nil {
			return err
		}
	}
	for _, r := range ds.Accounts {
		err := s.AddAccount(billing.PersonalAccount{
			Code:          r.Code,
			AccountNumber: r.AccountNumber,
			StreetCode:    r.StreetCode,
			House:         r.House,
			Building:      r.Building,
			Apartment:     r.Apartment,
			FullName:      r.FullName,
		})
		if err != nil {
			return err
		}
	}
	for _, r := range ds.Charges {
		err := s.AddCharge(billing.Charge{
			Code:        r.Code,
			AccountCode: r.AccountCode,
			ServiceCode: r.ServiceCode,
			Quantity:    r.Quantity,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
