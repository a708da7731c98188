package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/phishscore/internal/model"
)

// DefaultDBFile is the database file name inside the data directory.
const DefaultDBFile = "scans.db"

// ErrDatabaseNotFound is returned by Open when the database file does not
// exist and CreateIfNotExists is false.
var ErrDatabaseNotFound = errors.New("database not found")

// ScanDB provides SQLite-based storage for scan and report records.
// Both tables are append-only: rows are inserted and queried, never updated.
//
// Design decision: We keep the table layout of earlier deployments
// (scans and reports with JSON-encoded reasons and ISO-8601 timestamps) so
// an existing database file can be opened as-is. The url_hash column is
// added in place when missing.
type ScanDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures ScanDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the database file DefaultDBFile inside dbDir.
func Open(dbDir string, opts Options) (*ScanDB, error) {
	return OpenFile(filepath.Join(dbDir, DefaultDBFile), opts)
}

// OpenFile opens or creates a ScanDB at the given file path.
// If CreateIfNotExists is true, the parent directory and file are created.
func OpenFile(dbPath string, opts Options) (*ScanDB, error) {
	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s (use CreateIfNotExists option to create)", ErrDatabaseNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file; mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	sdb := &ScanDB{
		db:     db,
		dbPath: dbPath,
	}

	// The CLI and a running server may share the file.
	if _, err := db.ExecContext(context.Background(), "PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := sdb.createTables(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return sdb, nil
}

// Close closes the database connection.
func (sdb *ScanDB) Close() error {
	return sdb.db.Close()
}

// Path returns the database file path.
func (sdb *ScanDB) Path() string {
	return sdb.dbPath
}

// createTables creates the schema if it doesn't exist and adds the
// url_hash column to databases created before it existed.
func (sdb *ScanDB) createTables(ctx context.Context) error {
	schema := `
	-- One row per scan, never updated
	CREATE TABLE IF NOT EXISTS scans (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT,
		confidence INTEGER,
		status TEXT,
		reasons TEXT,
		created_at TEXT
	);

	-- User-submitted reports about URLs
	CREATE TABLE IF NOT EXISTS reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT,
		note TEXT,
		created_at TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_scans_created ON scans(created_at);
	CREATE INDEX IF NOT EXISTS idx_reports_url ON reports(url);
	`
	if _, err := sdb.db.ExecContext(ctx, schema); err != nil {
		return err
	}

	hasHash, err := sdb.hasColumn(ctx, "scans", "url_hash")
	if err != nil {
		return err
	}
	if !hasHash {
		if _, err := sdb.db.ExecContext(ctx, "ALTER TABLE scans ADD COLUMN url_hash TEXT"); err != nil {
			return fmt.Errorf("failed to add url_hash column: %w", err)
		}
	}

	_, err = sdb.db.ExecContext(ctx, "CREATE INDEX IF NOT EXISTS idx_scans_url_hash ON scans(url_hash)")
	return err
}

// hasColumn reports whether table has the named column.
func (sdb *ScanDB) hasColumn(ctx context.Context, table, column string) (bool, error) {
	rows, err := sdb.db.QueryContext(ctx, "SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return false, fmt.Errorf("failed to inspect table %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

// RecordScan appends a scan record and sets its ID.
func (sdb *ScanDB) RecordScan(ctx context.Context, rec *model.ScanRecord) error {
	findings := rec.Findings
	if findings == nil {
		findings = []model.Finding{}
	}
	reasonsJSON, err := json.Marshal(findings)
	if err != nil {
		return fmt.Errorf("failed to serialize reasons: %w", err)
	}

	hash := rec.URLHash
	if hash == "" {
		hash = model.HashURL(rec.URL)
	}

	query := `
	INSERT INTO scans (url, url_hash, confidence, status, reasons, created_at)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := sdb.db.ExecContext(ctx, query,
		rec.URL,
		hash,
		rec.Confidence,
		rec.Status.String(),
		string(reasonsJSON),
		model.FormatTimestamp(rec.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert scan: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read scan id: %w", err)
	}
	rec.ID = id
	rec.URLHash = hash
	return nil
}

// RecordReport appends a user report and sets its ID.
func (sdb *ScanDB) RecordReport(ctx context.Context, rep *model.UserReport) error {
	query := `
	INSERT INTO reports (url, note, created_at)
	VALUES (?, ?, ?)
	`

	result, err := sdb.db.ExecContext(ctx, query,
		rep.URL,
		rep.Note,
		model.FormatTimestamp(rep.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read report id: %w", err)
	}
	rep.ID = id
	return nil
}

// RecentScans returns the most recent scans, newest first.
// A non-positive limit returns every scan.
func (sdb *ScanDB) RecentScans(ctx context.Context, limit int) ([]model.ScanRecord, error) {
	query := `
	SELECT id, url, url_hash, confidence, status, reasons, created_at
	FROM scans
	ORDER BY created_at DESC, id DESC
	LIMIT ?
	`
	return sdb.queryScans(ctx, query, sqlLimit(limit))
}

// ScanHistory returns the scans of one URL, newest first.
// Rows written before url_hash existed are matched by URL text.
func (sdb *ScanDB) ScanHistory(ctx context.Context, url string, limit int) ([]model.ScanRecord, error) {
	query := `
	SELECT id, url, url_hash, confidence, status, reasons, created_at
	FROM scans
	WHERE url_hash = ? OR (url_hash IS NULL AND url = ?)
	ORDER BY created_at DESC, id DESC
	LIMIT ?
	`
	return sdb.queryScans(ctx, query, model.HashURL(url), url, sqlLimit(limit))
}

// Reports returns user reports, newest first. An empty url returns
// reports for every URL.
func (sdb *ScanDB) Reports(ctx context.Context, url string, limit int) ([]model.UserReport, error) {
	query := `
	SELECT id, url, note, created_at
	FROM reports
	WHERE ? = '' OR url = ?
	ORDER BY created_at DESC, id DESC
	LIMIT ?
	`

	rows, err := sdb.db.QueryContext(ctx, query, url, url, sqlLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	var reports []model.UserReport
	for rows.Next() {
		var rep model.UserReport
		var u, note, createdAt sql.NullString
		if err := rows.Scan(&rep.ID, &u, &note, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		rep.URL = u.String
		rep.Note = note.String
		rep.CreatedAt = parseTimestamp(createdAt.String)
		reports = append(reports, rep)
	}

	return reports, rows.Err()
}

// CountByStatus returns the number of stored scans per status.
// Rows with an unrecognized status are ignored.
func (sdb *ScanDB) CountByStatus(ctx context.Context) (map[model.Status]int, error) {
	rows, err := sdb.db.QueryContext(ctx, "SELECT status, COUNT(*) FROM scans GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("failed to count scans: %w", err)
	}
	defer rows.Close()

	counts := make(map[model.Status]int)
	for rows.Next() {
		var label sql.NullString
		var n int
		if err := rows.Scan(&label, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		status, err := model.ParseStatus(label.String)
		if err != nil {
			continue
		}
		counts[status] += n
	}

	return counts, rows.Err()
}

// queryScans runs a scans query and decodes the rows.
func (sdb *ScanDB) queryScans(ctx context.Context, query string, args ...any) ([]model.ScanRecord, error) {
	rows, err := sdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query scans: %w", err)
	}
	defer rows.Close()

	var records []model.ScanRecord
	for rows.Next() {
		var rec model.ScanRecord
		var u, hash, status, reasons, createdAt sql.NullString
		var confidence sql.NullInt64

		if err := rows.Scan(&rec.ID, &u, &hash, &confidence, &status, &reasons, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		rec.URL = u.String
		rec.URLHash = hash.String
		rec.Confidence = int(confidence.Int64)
		rec.CreatedAt = parseTimestamp(createdAt.String)

		parsed, err := model.ParseStatus(status.String)
		if err != nil {
			continue // Skip rows with a status we cannot interpret
		}
		rec.Status = parsed

		if reasons.Valid && reasons.String != "" {
			if err := json.Unmarshal([]byte(reasons.String), &rec.Findings); err != nil {
				rec.Findings = nil
			}
		}

		records = append(records, rec)
	}

	return records, rows.Err()
}

// sqlLimit converts a non-positive limit to SQLite's "no limit".
func sqlLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

// timestampFormats contains the timestamp formats found in stored rows.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	model.TimestampFormat,     // Our own layout
	"2006-01-02T15:04:05",     // ISO 8601 without fraction or timezone
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// Stored timestamps are UTC. If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
