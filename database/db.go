// Package database хранит историю запусков конвертера в SQLite:
// сводку запуска, готовые записи фида и лог ошибок парсинга.
package database

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"catalogfeed/pipeline"
)

// DB обертка над SQLite соединением
type DB struct {
	conn *sql.DB
}

// Open открывает (и при необходимости создает) базу запусков
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite: одно соединение, чтобы не ловить database is locked
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close закрывает соединение
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at DATETIME NOT NULL,
			completed_at DATETIME NOT NULL,
			exchange_rate REAL NOT NULL,
			total_lines INTEGER NOT NULL,
			output_count INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			error_count INTEGER NOT NULL,
			unknown_suppliers INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			name TEXT NOT NULL,
			sku TEXT NOT NULL,
			price INTEGER NOT NULL,
			stock TEXT NOT NULL,
			eta TEXT,
			available_quantity INTEGER NOT NULL,
			moq INTEGER NOT NULL,
			brand TEXT,
			category TEXT,
			visible_customer_types TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS parse_errors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			lineno INTEGER NOT NULL,
			raw TEXT NOT NULL,
			reason TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_products_run ON products(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_parse_errors_run ON parse_errors(run_id)`,
	}
	for _, stmt := range statements {
		if err := db.execWithRetry(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// execWithRetry выполняет statement с повтором при блокировке базы
func (db *DB) execWithRetry(query string, args ...any) error {
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		_, err := db.conn.Exec(query, args...)
		if err == nil {
			return nil
		}
		lastErr = err
		if !strings.Contains(strings.ToLower(err.Error()), "locked") {
			return err
		}
		time.Sleep(time.Duration(attempt+1) * 100 * time.Millisecond)
	}
	return lastErr
}

// SaveRun сохраняет итог запуска целиком: сводку, записи и ошибки,
// в одной транзакции
func (db *DB) SaveRun(result *pipeline.Result) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, started_at, completed_at, exchange_rate, total_lines, output_count, skipped, error_count, unknown_suppliers)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.RunID, result.Started, result.Completed, result.ExchangeRate,
		result.TotalLines, len(result.Records), result.Skipped,
		len(result.ParseErrors), result.UnknownSuppliers,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	productStmt, err := tx.Prepare(
		`INSERT INTO products (run_id, name, sku, price, stock, eta, available_quantity, moq, brand, category, visible_customer_types)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare product insert: %w", err)
	}
	defer productStmt.Close()

	for _, r := range result.Records {
		if _, err := productStmt.Exec(result.RunID, r.Name, r.SKU, r.Price, r.Stock, r.ETA,
			r.AvailableQuantity, r.MOQ, r.Brand, r.Category, r.VisibleCustomerTypes); err != nil {
			return fmt.Errorf("failed to insert product: %w", err)
		}
	}

	for _, e := range result.ParseErrors {
		if _, err := tx.Exec(
			`INSERT INTO parse_errors (run_id, lineno, raw, reason) VALUES (?, ?, ?, ?)`,
			result.RunID, e.LineNo, e.Raw, e.Reason); err != nil {
			return fmt.Errorf("failed to insert parse error: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}

	log.Printf("[Database] Saved run %s: %d product(s), %d error(s)",
		result.RunID, len(result.Records), len(result.ParseErrors))
	return nil
}

// RunSummary сводка одного запуска из истории
type RunSummary struct {
	ID               string
	Started          time.Time
	Completed        time.Time
	ExchangeRate     float64
	TotalLines       int
	OutputCount      int
	Skipped          int
	ErrorCount       int
	UnknownSuppliers int
}

// ListRuns возвращает последние запуски, новые первыми
func (db *DB) ListRuns(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(
		`SELECT id, started_at, completed_at, exchange_rate, total_lines, output_count, skipped, error_count, unknown_suppliers
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var s RunSummary
		if err := rows.Scan(&s.ID, &s.Started, &s.Completed, &s.ExchangeRate,
			&s.TotalLines, &s.OutputCount, &s.Skipped, &s.ErrorCount, &s.UnknownSuppliers); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CountProducts возвращает количество сохранённых записей запуска
func (db *DB) CountProducts(runID string) (int, error) {
	var n int
	err := db.conn.QueryRow(`SELECT COUNT(*) FROM products WHERE run_id = ?`, runID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}
