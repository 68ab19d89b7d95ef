// Package storage implements spec component C22: a generic record store on
// top of PostgreSQL, with a query translator that parameterizes filter
// values instead of string-interpolating them (spec §4.13's hard
// invariant). The teacher has no direct SQL-backed store to imitate, so
// this is grounded on the teacher's one already-declared-but-unused SQL
// driver dependency (`github.com/lib/pq`, present in go.mod but never
// imported anywhere in the copied tree) plus the stdlib `database/sql`
// idiom that driver serves, and on `pkg/core.KindError` for the error
// taxonomy used throughout the rest of this runtime.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/continuum-run/continuum/pkg/core"
	_ "github.com/lib/pq"
)

// SortDirection is the direction of a query's ORDER BY clause.
type SortDirection string

const (
	Ascending  SortDirection = "ASC"
	Descending SortDirection = "DESC"
)

// Sort is one ORDER BY term.
type Sort struct {
	Field     string
	Direction SortDirection
}

// Query is spec §4.13's query translator input.
type Query struct {
	Collection string
	Filter     map[string]any
	Sort       []Sort
	Limit      int
	Offset     int
}

// Metadata is a record's bookkeeping envelope. Missing fields default to
// the zero value (nil CreatedAt/UpdatedAt, Version 1), per spec §4.13.
type Metadata struct {
	CreatedAt *time.Time
	UpdatedAt *time.Time
	Version   int
}

// Record is spec §4.13's wrapped return shape: `{id, collection, data,
// metadata}`.
type Record struct {
	ID         string
	Collection string
	Data       map[string]any
	Metadata   Metadata
}

// camelToSnake normalizes a camelCase key to snake_case before it is bound
// to a column name, per spec §4.13's normalization requirement.
func camelToSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// buildQuery translates q into a parameterized SQL statement and its bind
// arguments. Filter values are NEVER interpolated into the SQL string —
// they are always passed as placeholder arguments, per spec §4.13's hard
// invariant (the known legacy bug this implementation must avoid).
func buildQuery(q Query) (string, []any) {
	var sb strings.Builder
	args := make([]any, 0, len(q.Filter))

	fmt.Fprintf(&sb, "SELECT id, data, created_at, updated_at, version FROM %s", q.Collection)

	if len(q.Filter) > 0 {
		keys := make([]string, 0, len(q.Filter))
		for k := range q.Filter {
			keys = append(keys, k)
		}
		// Deterministic column order so generated SQL and arg order are
		// stable across calls with the same filter.
		sortStrings(keys)

		sb.WriteString(" WHERE ")
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(" AND ")
			}
			col := camelToSnake(k)
			args = append(args, q.Filter[k])
			fmt.Fprintf(&sb, "%s = $%d", col, len(args))
		}
	}

	if len(q.Sort) > 0 {
		sb.WriteString(" ORDER BY ")
		for i, s := range q.Sort {
			if i > 0 {
				sb.WriteString(", ")
			}
			dir := s.Direction
			if dir == "" {
				dir = Ascending
			}
			fmt.Fprintf(&sb, "%s %s", camelToSnake(s.Field), dir)
		}
	}

	if q.Limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", q.Limit)
	}
	if q.Offset > 0 {
		fmt.Fprintf(&sb, " OFFSET %d", q.Offset)
	}

	return sb.String(), args
}

// sortStrings is a tiny insertion sort — avoids pulling in "sort" for a
// handful of filter keys while keeping output deterministic.
func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// Store is a Postgres-backed implementation of spec §4.13's storage
// adapter.
type Store struct {
	db *sql.DB
}

// Open connects to the given data source and returns a Store. The caller
// owns schema lifecycle; EnsureSchema is a no-op helper for externally
// managed schemas.
func Open(ctx context.Context, dataSourceName string) (*Store, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, core.NewKindError("storage.Open", core.KindBadParam, "opening database", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, core.NewKindError("storage.Open", core.KindNotInitialized, "pinging database", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureSchema is a no-op when the schema is externally managed, per spec
// §4.13. Collections here are expected to pre-exist as tables named
// `<collection>` with columns `id, data jsonb, created_at, updated_at,
// version`.
func (s *Store) EnsureSchema(ctx context.Context, collection string) error {
	return nil
}

// Create inserts data under id into collection and returns the wrapped
// record.
func (s *Store) Create(ctx context.Context, collection, id string, data map[string]any) (Record, error) {
	row := s.db.QueryRowContext(ctx,
		fmt.Sprintf("INSERT INTO %s (id, data, created_at, updated_at, version) VALUES ($1, $2, now(), now(), 1) RETURNING created_at, updated_at, version", collection),
		id, jsonb(data))

	var createdAt, updatedAt time.Time
	var version int
	if err := row.Scan(&createdAt, &updatedAt, &version); err != nil {
		return Record{}, core.NewKindError("storage.Create", core.KindBadParam, "inserting record", err)
	}

	return Record{
		ID:         id,
		Collection: collection,
		Data:       data,
		Metadata:   Metadata{CreatedAt: &createdAt, UpdatedAt: &updatedAt, Version: version},
	}, nil
}

// Read fetches a single record by id.
func (s *Store) Read(ctx context.Context, collection, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT id, data, created_at, updated_at, version FROM %s WHERE id = $1", collection),
		id)
	return scanRecord(row, collection)
}

// Query runs a filtered/sorted/paginated read, per spec §4.13's translator
// rules.
func (s *Store) Query(ctx context.Context, q Query) ([]Record, error) {
	query, args := buildQuery(q)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, core.NewKindError("storage.Query", core.KindBadParam, "executing query", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRows(rows, q.Collection)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Update replaces data for id within collection and bumps version.
func (s *Store) Update(ctx context.Context, collection, id string, data map[string]any) (Record, error) {
	row := s.db.QueryRowContext(ctx,
		fmt.Sprintf("UPDATE %s SET data = $2, updated_at = now(), version = version + 1 WHERE id = $1 RETURNING created_at, updated_at, version", collection),
		id, jsonb(data))

	var createdAt, updatedAt time.Time
	var version int
	if err := row.Scan(&createdAt, &updatedAt, &version); err != nil {
		return Record{}, core.NewKindError("storage.Update", core.KindBadParam, "updating record", err)
	}

	return Record{
		ID:         id,
		Collection: collection,
		Data:       data,
		Metadata:   Metadata{CreatedAt: &createdAt, UpdatedAt: &updatedAt, Version: version},
	}, nil
}

// Delete removes id from collection.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", collection), id)
	if err != nil {
		return core.NewKindError("storage.Delete", core.KindBadParam, "deleting record", err)
	}
	return nil
}

// ListCollections returns the known table names in the current schema.
func (s *Store) ListCollections(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema()")
	if err != nil {
		return nil, core.NewKindError("storage.ListCollections", core.KindBadParam, "listing collections", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// CollectionStats is the summary returned by collection_stats.
type CollectionStats struct {
	Collection string
	RowCount   int64
}

// CollectionStats returns row-count stats for a collection.
func (s *Store) CollectionStats(ctx context.Context, collection string) (CollectionStats, error) {
	row := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT count(*) FROM %s", collection))
	var count int64
	if err := row.Scan(&count); err != nil {
		return CollectionStats{}, core.NewKindError("storage.CollectionStats", core.KindBadParam, "counting rows", err)
	}
	return CollectionStats{Collection: collection, RowCount: count}, nil
}
