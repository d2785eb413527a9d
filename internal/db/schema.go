package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
//
// event_id on checkouts and item_id on checkout_lines/returns are weak
// references on purpose: deleting an event or item leaves checkout history
// intact, and readers fall back to the snapshotted names.
const schema = `
CREATE TABLE IF NOT EXISTS settings (
    id               INTEGER PRIMARY KEY CHECK (id = 1),
    currency_symbol  TEXT NOT NULL DEFAULT '$',
    tax_rate         REAL NOT NULL DEFAULT 0,
    business_name    TEXT NOT NULL DEFAULT '',
    business_address TEXT NOT NULL DEFAULT '',
    business_phone   TEXT NOT NULL DEFAULT '',
    business_email   TEXT NOT NULL DEFAULT '',
    updated_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

INSERT OR IGNORE INTO settings (id) VALUES (1);

CREATE TABLE IF NOT EXISTS items (
    id           TEXT PRIMARY KEY,
    sku          TEXT NOT NULL,
    name         TEXT NOT NULL,
    category     TEXT NOT NULL DEFAULT '',
    location     TEXT NOT NULL DEFAULT '',
    unit         TEXT NOT NULL DEFAULT '',
    safety_stock INTEGER NOT NULL DEFAULT 0,
    qty_total    INTEGER NOT NULL DEFAULT 0 CHECK (qty_total >= 0),
    cost         REAL NOT NULL DEFAULT 0,
    price        REAL NOT NULL DEFAULT 0,
    tags         TEXT NOT NULL DEFAULT '[]',
    notes        TEXT NOT NULL DEFAULT '',
    image        BLOB,
    image_mime   TEXT,
    created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS events (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    client     TEXT NOT NULL DEFAULT '',
    date       TEXT NOT NULL DEFAULT '',
    location   TEXT NOT NULL DEFAULT '',
    contact    TEXT NOT NULL DEFAULT '',
    status     TEXT NOT NULL DEFAULT 'planned',
    notes      TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS checkouts (
    id       TEXT PRIMARY KEY,
    event_id TEXT NOT NULL,
    date     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    due_date TEXT NOT NULL DEFAULT '',
    subtotal REAL NOT NULL DEFAULT 0,
    tax      REAL NOT NULL DEFAULT 0,
    total    REAL NOT NULL DEFAULT 0,
    returned INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS checkout_lines (
    id          INTEGER PRIMARY KEY,
    checkout_id TEXT NOT NULL REFERENCES checkouts(id) ON DELETE CASCADE,
    item_id     TEXT NOT NULL,
    sku         TEXT NOT NULL,
    name        TEXT NOT NULL,
    qty         INTEGER NOT NULL CHECK (qty > 0),
    unit_price  REAL NOT NULL CHECK (unit_price >= 0)
);

CREATE INDEX IF NOT EXISTS idx_checkout_lines_checkout ON checkout_lines(checkout_id);
CREATE INDEX IF NOT EXISTS idx_checkout_lines_item ON checkout_lines(item_id);

CREATE TABLE IF NOT EXISTS returns (
    id          INTEGER PRIMARY KEY,
    checkout_id TEXT NOT NULL,
    item_id     TEXT NOT NULL,
    qty         INTEGER NOT NULL CHECK (qty > 0),
    returned_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_returns_checkout ON returns(checkout_id);
CREATE INDEX IF NOT EXISTS idx_returns_item ON returns(item_id);

CREATE TABLE IF NOT EXISTS activity (
    id      INTEGER PRIMARY KEY,
    type    TEXT NOT NULL,
    ref     TEXT NOT NULL DEFAULT '',
    details TEXT NOT NULL DEFAULT '',
    date    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_activity_date ON activity(date DESC);
`

// EnsureSchema creates all tables and indexes if they don't already exist
// and seeds the settings row.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
