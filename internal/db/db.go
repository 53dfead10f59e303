package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// ErrDocumentNotFound is returned when a root document is not in the store
var ErrDocumentNotFound = errors.New("document not found")

// DB wraps a SQLite database connection
type DB struct {
	conn *sql.DB
	Path string
}

// connPragmas run on every pooled connection
const connPragmas = "_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"

// OpenDB opens a SQLite database with WAL mode and foreign keys enabled
func OpenDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Each connection to :memory: is a separate database
	if path == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return &DB{conn: conn, Path: path}, nil
}

func dsn(path string) string {
	if strings.Contains(path, "?") {
		return path + "&" + connPragmas
	}
	return path + "?" + connPragmas
}

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	doctype TEXT NOT NULL,
	name TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'Draft',
	PRIMARY KEY (doctype, name)
);
CREATE TABLE IF NOT EXISTS document_items (
	doctype TEXT NOT NULL,
	parent_doctype TEXT NOT NULL,
	parent TEXT NOT NULL,
	idx INTEGER NOT NULL,
	name TEXT NOT NULL,
	item_code TEXT NOT NULL,
	item_name TEXT NOT NULL DEFAULT '',
	qty REAL NOT NULL DEFAULT 0,
	sales_order TEXT,
	sales_order_item TEXT,
	material_request TEXT,
	purchase_order TEXT,
	PRIMARY KEY (doctype, parent, idx),
	FOREIGN KEY (parent_doctype, parent) REFERENCES documents (doctype, name) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_items_sales_order ON document_items (doctype, sales_order, item_code);
CREATE INDEX IF NOT EXISTS idx_items_sales_order_item ON document_items (doctype, sales_order_item, item_code);
CREATE INDEX IF NOT EXISTS idx_items_material_request ON document_items (doctype, material_request);
CREATE INDEX IF NOT EXISTS idx_items_purchase_order ON document_items (doctype, purchase_order);
`

// Migrate creates the tables if they do not exist
func (d *DB) Migrate() error {
	if _, err := d.conn.Exec(schema); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.conn.Close()
}

// Conn returns the underlying sql.DB for custom queries
func (d *DB) Conn() *sql.DB {
	return d.conn
}
