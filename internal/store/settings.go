package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/invtracker/invtracker/internal/model"
)

// GetSettings returns the organization settings. The row is seeded with
// defaults at schema creation, so this never reports absence.
func GetSettings(ctx context.Context, db *sql.DB) (*model.Settings, error) {
	s := &model.Settings{}
	err := db.QueryRowContext(ctx,
		`SELECT currency_symbol, tax_rate, business_name, business_address,
		        business_phone, business_email, updated_at
		 FROM settings WHERE id = 1`,
	).Scan(&s.CurrencySymbol, &s.TaxRate, &s.BusinessName, &s.BusinessAddress,
		&s.BusinessPhone, &s.BusinessEmail, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("getting settings: %w", err)
	}
	return s, nil
}

// UpdateSettings replaces the organization settings.
func UpdateSettings(ctx context.Context, db *sql.DB, s *model.Settings) (*model.Settings, error) {
	if s.CurrencySymbol == "" {
		s.CurrencySymbol = "$"
	}
	if s.TaxRate < 0 {
		return nil, validationf("tax rate must not be negative")
	}

	_, err := db.ExecContext(ctx,
		`UPDATE settings SET currency_symbol = ?, tax_rate = ?, business_name = ?,
		        business_address = ?, business_phone = ?, business_email = ?,
		        updated_at = CURRENT_TIMESTAMP
		 WHERE id = 1`,
		s.CurrencySymbol, s.TaxRate, s.BusinessName, s.BusinessAddress, s.BusinessPhone, s.BusinessEmail,
	)
	if err != nil {
		return nil, fmt.Errorf("updating settings: %w", err)
	}

	return GetSettings(ctx, db)
}
