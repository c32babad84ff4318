package phone

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/pantrylink/pantrylink/pkg/errors"
	"github.com/pantrylink/pantrylink/pkg/snapshot"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const activeListKey = "active_list_name"

// Store is the phone's authoritative copy of the grocery data. All list
// mutations, whether they originate on the phone or arrive from a watch, go
// through the store before any peer sees them.
type Store struct {
	db *sql.DB
}

// OpenStore opens the database at the given path, creating it and applying
// any pending schema migrations if necessary.
func OpenStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, errors.WithContext(err, "create database directory")
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, errors.WithContext(err, "migrate database")
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.WithContext(err, "open database")
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.WithContext(err, "connect to database")
	}

	return &Store{db: db}, nil
}

func runMigrations(dbPath string) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return errors.WithContext(err, "create migration source")
	}

	m, err := migrate.NewWithSourceInstance("iofs", source,
		fmt.Sprintf("sqlite://%s", dbPath))
	if err != nil {
		return errors.WithContext(err, "create migrator")
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return errors.WithContext(err, "apply migrations")
	}

	log.WithField("path", dbPath).Debug("Database schema is up to date")
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ListShoppingItems returns every item on the shopping list, including
// checked items.
func (s *Store) ListShoppingItems(ctx context.Context) ([]snapshot.ShoppingItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, quantity, unit, is_checked, aisle, priority, estimated_price
		FROM shopping_items
		ORDER BY created_at, id`)
	if err != nil {
		return nil, errors.WithContext(err, "query shopping items")
	}
	defer rows.Close()

	var items []snapshot.ShoppingItem
	for rows.Next() {
		var item snapshot.ShoppingItem
		var price sql.NullFloat64
		err := rows.Scan(&item.ID, &item.Name, &item.Quantity, &item.Unit,
			&item.Checked, &item.Aisle, &item.Priority, &price)
		if err != nil {
			return nil, errors.WithContext(err, "scan shopping item")
		}
		if price.Valid {
			item.EstimatedPrice = &price.Float64
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// SetItemChecked updates the checked state of the item with the given id. It
// returns false if no such item exists, which callers treat as a stale
// request rather than an error.
func (s *Store) SetItemChecked(ctx context.Context, id string, checked bool) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE shopping_items SET is_checked = ? WHERE id = ?`, checked, id)
	if err != nil {
		return false, errors.WithContext(err, "update shopping item")
	}

	matched, err := result.RowsAffected()
	if err != nil {
		return false, errors.WithContext(err, "count updated rows")
	}
	return matched > 0, nil
}

// InsertShoppingItem adds a new item to the shopping list.
func (s *Store) InsertShoppingItem(ctx context.Context, item snapshot.ShoppingItem) error {
	var price sql.NullFloat64
	if item.EstimatedPrice != nil {
		price = sql.NullFloat64{Float64: *item.EstimatedPrice, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO shopping_items
			(id, name, quantity, unit, is_checked, aisle, priority, estimated_price, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Name, item.Quantity, item.Unit, item.Checked,
		item.Aisle, item.Priority, price, time.Now().UTC())
	if err != nil {
		return errors.WithContext(err, "insert shopping item")
	}
	return nil
}

// ListExpiringItems returns the pantry items that expire within the given
// window of now, soonest first. Already expired items are included so the
// watch can surface them with a negative day count.
func (s *Store) ListExpiringItems(ctx context.Context, now time.Time,
	window time.Duration) ([]snapshot.ExpiringItem, error) {

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, quantity, unit, location, expiration_date
		FROM pantry_items
		WHERE expiration_date <= ?
		ORDER BY expiration_date`, now.Add(window).UTC())
	if err != nil {
		return nil, errors.WithContext(err, "query pantry items")
	}
	defer rows.Close()

	var items []snapshot.ExpiringItem
	for rows.Next() {
		var item snapshot.ExpiringItem
		err := rows.Scan(&item.ID, &item.Name, &item.Quantity, &item.Unit,
			&item.Location, &item.ExpirationDate)
		if err != nil {
			return nil, errors.WithContext(err, "scan pantry item")
		}
		item.DaysUntilExpiration = snapshot.DaysUntil(now, item.ExpirationDate)
		items = append(items, item)
	}
	return items, rows.Err()
}

// InsertPantryItem adds a new item to the pantry inventory.
func (s *Store) InsertPantryItem(ctx context.Context, item snapshot.ExpiringItem) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pantry_items (id, name, quantity, unit, location, expiration_date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		item.ID, item.Name, item.Quantity, item.Unit, item.Location,
		item.ExpirationDate.UTC())
	if err != nil {
		return errors.WithContext(err, "insert pantry item")
	}
	return nil
}

// ListPresets returns the quick add presets in alphabetical order.
func (s *Store) ListPresets(ctx context.Context) ([]snapshot.QuickAddPreset, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, quantity, unit FROM quick_add_presets ORDER BY name`)
	if err != nil {
		return nil, errors.WithContext(err, "query presets")
	}
	defer rows.Close()

	var presets []snapshot.QuickAddPreset
	for rows.Next() {
		var preset snapshot.QuickAddPreset
		if err := rows.Scan(&preset.Name, &preset.Quantity, &preset.Unit); err != nil {
			return nil, errors.WithContext(err, "scan preset")
		}
		presets = append(presets, preset)
	}
	return presets, rows.Err()
}

// ActiveListName returns the name of the active shopping list, or an empty
// string if none has been set.
func (s *Store) ActiveListName(ctx context.Context) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, activeListKey).Scan(&name)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", errors.WithContext(err, "query list name")
	}
	return name, nil
}

// SetActiveListName sets the name of the active shopping list.
func (s *Store) SetActiveListName(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		activeListKey, name)
	if err != nil {
		return errors.WithContext(err, "set list name")
	}
	return nil
}
