package domain

// Currency represents a currency reference record.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // ISO 4217 style code, e.g. "USD"
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Precision    int    `json:"precision"`
}

// Company is the tenant boundary. Only the fields this core consumes are
// modeled; company management itself lives upstream.
type Company struct {
	CompanyID        string `json:"companyID"`
	Name             string `json:"name"`
	BaseCurrencyCode string `json:"baseCurrencyCode"`
}
