// Package exporter writes the plugin inventory held in a local SQLite plugin
// database as an inventory CSV that the reconciler reads like any other source.
package exporter

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/agentstation/vstmap/pkg/constants"
	"github.com/agentstation/vstmap/pkg/errors"
	"github.com/agentstation/vstmap/pkg/inventory"
	"github.com/agentstation/vstmap/pkg/logging"
)

// Query selects every plugin in inventory column order, sorted by vendor,
// name and version without regard to case.
const Query = `SELECT vendor, name, version, sdk_version, subcategories FROM plugins ` +
	`ORDER BY vendor COLLATE NOCASE, name COLLATE NOCASE, version COLLATE NOCASE`

// Exporter reads plugins from a database.
type Exporter struct {
	db   *sql.DB
	path string
}

// New wraps an open database handle.
func New(db *sql.DB) *Exporter {
	return &Exporter{db: db}
}

// Open opens the database at path read-only. A missing file is a
// configuration error.
func Open(ctx context.Context, path string) (*Exporter, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewConfigError("database", "plugin database not found: "+path, err)
		}
		return nil, errors.WrapIO("stat", path, err)
	}

	dsn, err := readOnlyDSN(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.WrapIO("open", path, err)
	}

	logging.FromContext(ctx).Debug().Str("path", path).Msg("Opened plugin database")
	return &Exporter{db: db, path: path}, nil
}

// readOnlyDSN builds a read-only SQLite URI for path. The path is made
// absolute and escaped, so names containing '?' or '#' stay part of the file.
func readOnlyDSN(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p, RawQuery: "mode=ro"}
	return u.String(), nil
}

// Close releases the database handle.
func (e *Exporter) Close() error {
	return e.db.Close()
}

// Rows reads every plugin. NULL columns read as empty strings.
func (e *Exporter) Rows(ctx context.Context) ([]inventory.Row, error) {
	rows, err := e.db.QueryContext(ctx, Query)
	if err != nil {
		return nil, errors.WrapIO("query", e.path, err)
	}
	defer func() { _ = rows.Close() }()

	var out []inventory.Row
	for rows.Next() {
		var vendor, name, version, sdk, subcategories sql.NullString
		if err := rows.Scan(&vendor, &name, &version, &sdk, &subcategories); err != nil {
			return nil, errors.WrapIO("scan", e.path, err)
		}
		out = append(out, inventory.Row{
			Company:    vendor.String,
			Software:   name.String,
			Version:    version.String,
			SDKVersion: sdk.String,
			Type:       subcategories.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapIO("query", e.path, err)
	}

	return out, nil
}

// Export writes every plugin as an inventory CSV and returns the row count.
func (e *Exporter) Export(ctx context.Context, w io.Writer) (int, error) {
	rows, err := e.Rows(ctx)
	if err != nil {
		return 0, err
	}
	if err := inventory.WriteCSV(w, rows); err != nil {
		return 0, errors.WrapIO("write", "", err)
	}

	logging.FromContext(ctx).Info().Int("plugins", len(rows)).Msg("Exported plugin inventory")
	return len(rows), nil
}

// ResolvePath returns the database path to use. An explicit path wins;
// otherwise the first line of the .db_path file in dir is used.
func ResolvePath(explicit, dir string) (string, error) {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return explicit, nil
	}

	pointer := filepath.Join(dir, constants.DBPathFile)
	f, err := os.Open(pointer) //nolint:gosec // fixed file name in the working directory
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewConfigError("database",
				"no database path given: pass --db, set VSTMAP_DB_PATH or create "+constants.DBPathFile, nil)
		}
		return "", errors.WrapIO("read", pointer, err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	if scanner.Scan() {
		if path := strings.TrimSpace(scanner.Text()); path != "" {
			return path, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", errors.WrapIO("read", pointer, err)
	}

	return "", errors.NewConfigError("database", pointer+" is empty", nil)
}
