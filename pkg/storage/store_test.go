package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCamelToSnake(t *testing.T) {
	assert.Equal(t, "user_id", camelToSnake("userId"))
	assert.Equal(t, "name", camelToSnake("name"))
	assert.Equal(t, "room_id", camelToSnake("roomId"))
}

func TestBuildQueryParameterizesFilterValues(t *testing.T) {
	q := Query{
		Collection: "messages",
		Filter: map[string]any{
			"roomId": "room1",
			"userId": "alice",
		},
		Sort:   []Sort{{Field: "createdAt", Direction: Descending}},
		Limit:  10,
		Offset: 5,
	}

	sql, args := buildQuery(q)

	assert.Contains(t, sql, "WHERE room_id = $1 AND user_id = $2")
	assert.Contains(t, sql, "ORDER BY created_at DESC")
	assert.Contains(t, sql, "LIMIT 10")
	assert.Contains(t, sql, "OFFSET 5")
	assert.Equal(t, []any{"room1", "alice"}, args)

	// The filter values must never appear literally in the SQL string —
	// only as bind arguments — per spec §4.13's hard invariant.
	assert.NotContains(t, sql, "room1")
	assert.NotContains(t, sql, "alice")
}

func TestBuildQueryWithNoFilterOmitsWhere(t *testing.T) {
	sql, args := buildQuery(Query{Collection: "messages"})
	assert.NotContains(t, sql, "WHERE")
	assert.Empty(t, args)
}

func TestBuildQueryDefaultsAscending(t *testing.T) {
	sql, _ := buildQuery(Query{
		Collection: "messages",
		Sort:       []Sort{{Field: "name"}},
	})
	assert.Contains(t, sql, "ORDER BY name ASC")
}

func TestBuildQueryDeterministicColumnOrder(t *testing.T) {
	q := Query{
		Collection: "messages",
		Filter: map[string]any{
			"zKey": 1,
			"aKey": 2,
		},
	}
	sql1, args1 := buildQuery(q)
	sql2, args2 := buildQuery(q)
	assert.Equal(t, sql1, sql2)
	assert.Equal(t, args1, args2)
	assert.Contains(t, sql1, "a_key = $1 AND z_key = $2")
}
