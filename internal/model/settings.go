package model

import "time"

// Settings holds the single-row organization configuration.
type Settings struct {
	CurrencySymbol  string    `json:"currency_symbol"`
	TaxRate         float64   `json:"tax_rate"`
	BusinessName    string    `json:"business_name,omitempty"`
	BusinessAddress string    `json:"business_address,omitempty"`
	BusinessPhone   string    `json:"business_phone,omitempty"`
	BusinessEmail   string    `json:"business_email,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Stats are the dashboard counters.
type Stats struct {
	Items     int `json:"items"`
	Low       int `json:"low"`
	Events    int `json:"events"`
	Checkouts int `json:"checkouts"`
}
