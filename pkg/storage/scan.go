package storage

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/continuum-run/continuum/pkg/core"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows, letting
// scanRecord/scanRows share one code path.
type rowScanner interface {
	Scan(dest ...any) error
}

// jsonb marshals data for binding into a jsonb column.
func jsonb(data map[string]any) []byte {
	b, err := json.Marshal(data)
	if err != nil {
		// data originates from in-process callers constructing plain
		// maps; a marshal failure here means a non-JSON-safe value (e.g.
		// a channel) was passed, which is a caller bug, not a storage
		// fault.
		panic(err)
	}
	return b
}

func scanRecord(row rowScanner, collection string) (Record, error) {
	var id string
	var raw []byte
	var createdAt, updatedAt time.Time
	var version int

	if err := row.Scan(&id, &raw, &createdAt, &updatedAt, &version); err != nil {
		if err == sql.ErrNoRows {
			return Record{}, core.NewKindError("storage.Read", core.KindBadParam, "record not found", err)
		}
		return Record{}, core.NewKindError("storage.Read", core.KindBadParam, "scanning record", err)
	}

	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return Record{}, core.NewKindError("storage.Read", core.KindBadParam, "decoding record data", err)
	}

	return Record{
		ID:         id,
		Collection: collection,
		Data:       data,
		Metadata:   Metadata{CreatedAt: &createdAt, UpdatedAt: &updatedAt, Version: version},
	}, nil
}

func scanRows(rows *sql.Rows, collection string) (Record, error) {
	return scanRecord(rows, collection)
}
