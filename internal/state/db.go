package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/TemirB/storefront/internal/domain"

	_ "modernc.org/sqlite"
)

// The durable store is fully rewritten on every flush, so the column layout
// only has to round-trip the in-memory model.
var schemaStmts = []string{
	`CREATE TABLE IF NOT EXISTS sellers (
		id       INTEGER PRIMARY KEY,
		name     TEXT NOT NULL,
		password TEXT NOT NULL,
		products TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id          INTEGER PRIMARY KEY,
		seller_id   INTEGER NOT NULL,
		name        TEXT NOT NULL,
		description TEXT NOT NULL,
		price       REAL NOT NULL,
		available   INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id         INTEGER PRIMARY KEY,
		seller_id  INTEGER NOT NULL,
		product_id INTEGER NOT NULL,
		user       TEXT NOT NULL,
		quantity   INTEGER NOT NULL,
		price      REAL NOT NULL,
		status     TEXT NOT NULL,
		paid       INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		note       TEXT NOT NULL
	)`,
}

func openDB(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection serializes flushes against any concurrent direct readers
	// of the same file handle.
	db.SetMaxOpenConns(1)
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func loadSellers(ctx context.Context, db *sql.DB) ([]domain.Seller, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, name, password, products FROM sellers ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Seller
	for rows.Next() {
		var s domain.Seller
		var products string
		if err := rows.Scan(&s.ID, &s.Name, &s.Password, &products); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(products), &s.Products); err != nil {
			return nil, fmt.Errorf("seller %d: decode products: %w", s.ID, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func loadProducts(ctx context.Context, db *sql.DB) ([]domain.Product, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, seller_id, name, description, price, available FROM products ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.SellerID, &p.Name, &p.Description, &p.Price, &p.Available); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func loadOrders(ctx context.Context, db *sql.DB) ([]domain.Order, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, seller_id, product_id, user, quantity, price, status, paid, created_at, updated_at, note FROM orders ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		var o domain.Order
		var createdAt, updatedAt string
		if err := rows.Scan(&o.ID, &o.SellerID, &o.ProductID, &o.User, &o.Quantity,
			&o.Price, &o.Status, &o.Paid, &createdAt, &updatedAt, &o.Note); err != nil {
			return nil, err
		}
		if o.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("order %d: created_at: %w", o.ID, err)
		}
		if o.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, fmt.Errorf("order %d: updated_at: %w", o.ID, err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// replicate rewrites the three tables from the in-memory collections as one
// transaction. Either all rows land or the file is left as it was.
func replicate(db *sql.DB, sellers []domain.Seller, products []domain.Product, orders []domain.Order) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, tbl := range []string{"sellers", "products", "orders"} {
		if _, err := tx.Exec(`DELETE FROM ` + tbl); err != nil {
			return err
		}
	}

	for _, s := range sellers {
		ids := s.Products
		if ids == nil {
			ids = []int64{}
		}
		encoded, err := json.Marshal(ids)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(
			`INSERT INTO sellers (id, name, password, products) VALUES (?, ?, ?, ?)`,
			s.ID, s.Name, s.Password, string(encoded),
		); err != nil {
			return err
		}
	}

	for _, p := range products {
		if _, err := tx.Exec(
			`INSERT INTO products (id, seller_id, name, description, price, available) VALUES (?, ?, ?, ?, ?, ?)`,
			p.ID, p.SellerID, p.Name, p.Description, p.Price, p.Available,
		); err != nil {
			return err
		}
	}

	for _, o := range orders {
		if _, err := tx.Exec(
			`INSERT INTO orders (id, seller_id, product_id, user, quantity, price, status, paid, created_at, updated_at, note)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			o.ID, o.SellerID, o.ProductID, o.User, o.Quantity, o.Price,
			string(o.Status), o.Paid, formatTime(o.CreatedAt), formatTime(o.UpdatedAt), o.Note,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
