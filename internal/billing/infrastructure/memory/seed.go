package memory

// DemoDataset is the built-in record set used when no dataset file is configured.
func DemoDataset() Dataset {
	return Dataset{
		Streets: []StreetRecord{
			{Code: 1, Name: "Ленина"},
			{Code: 2, Name: "Пушкина"},
			{Code: 3, Name: "Гагарина"},
		},
		Services: []ServiceRecord{
			{Code: 1, Name: "Холодное водоснабжение", Tariff: 45.50},
			{Code: 2, Name: "Горячее водоснабжение", Tariff: 180.30},
			{Code: 3, Name: "Электроэнергия", Tariff: 4.65},
			{Code: 4, Name: "Отопление", Tariff: 2200.00},
			{Code: 5, Name: "Газоснабжение", Tariff: 6.40},
		},
		Accounts: []AccountRecord{
			{Code: 1, AccountNumber: "ЛС-001", StreetCode: 1, House: "10", Building: "А", Apartment: "15", FullName: "Иванов Иван Иванович"},
			{Code: 2, AccountNumber: "ЛС-002", StreetCode: 2, House: "25", Apartment: "42", FullName: "Петрова Мария Сергеевна"},
			{Code: 3, AccountNumber: "ЛС-003", StreetCode: 3, House: "5", Building: "Б", Apartment: "8", FullName: "Сидоров Петр Александрович"},
		},
		Charges: []ChargeRecord{
			{Code: 1, AccountCode: 1, ServiceCode: 1, Quantity: 15.5},
			{Code: 2, AccountCode: 1, ServiceCode: 2, Quantity: 12.3},
			{Code: 3, AccountCode: 1, ServiceCode: 3, Quantity: 350.0},
			{Code: 4, AccountCode: 2, ServiceCode: 1, Quantity: 10.0},
			{Code: 5, AccountCode: 2, ServiceCode: 3, Quantity: 280.0},
			{Code: 6, AccountCode: 2, ServiceCode: 4, Quantity: 2.5},
			{Code: 7, AccountCode: 3, ServiceCode: 1, Quantity: 18.0},
			{Code: 8, AccountCode: 3, ServiceCode: 2, Quantity: 14.5},
			{Code: 9, AccountCode: 3, ServiceCode: 3, Quantity: 420.0},
			{Code: 10, AccountCode: 3, ServiceCode: 5, Quantity: 25.0},
		},
	}
}

// NewDemoRecordStore returns a store loaded with DemoDataset.
func NewDemoRecordStore() (*RecordStore, error) {
	s := NewRecordStore()
	if err := s.Load(DemoDataset()); err != nil {
		return nil, err
	}
	return s, nil
}
