package driver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryHelpers(t *testing.T) {
	ctx := context.Background()
	m := (&MockDriver{}).On("MATCH (n:Person)", map[string]interface{}{"uuid": "a"}, map[string]interface{}{"uuid": "b"})

	rows, err := QueryRows(ctx, m, "MATCH (n:Person) RETURN n.uuid AS uuid", nil)
	require.NoError(t, err)
	assert.Equal(t, []map[string]interface{}{{"uuid": "a"}, {"uuid": "b"}}, rows)

	row, err := QueryOptional(ctx, m, "MATCH (n:Venue) RETURN n", nil)
	require.NoError(t, err)
	assert.Nil(t, row)

	_, err = QuerySingle(ctx, m, "MATCH (n:Venue) RETURN n", nil)
	assert.ErrorIs(t, err, ErrNotFound)

	row, err = QuerySingle(ctx, m, "MATCH (n:Person) RETURN n.uuid AS uuid", nil)
	require.NoError(t, err)
	assert.Equal(t, "a", row["uuid"])
	assert.True(t, m.Executed("MATCH (n:Venue)"))
}

func TestStoreError(t *testing.T) {
	cause := errors.New("connection reset")
	m := (&MockDriver{}).Fail("RETURN 1", cause)

	_, err := QueryRows(context.Background(), m, PingQuery, nil)
	require.Error(t, err)
	assert.True(t, IsStoreError(err))
	assert.ErrorIs(t, err, cause)
	assert.False(t, IsStoreError(ErrNotFound))

	m.WriteErr = cause
	err = m.ExecuteWrite(context.Background(), []Statement{{Query: "CREATE (n)"}})
	assert.True(t, IsStoreError(err))
	assert.Equal(t, 1, m.WriteCount())
}

func TestIndexQueriesCoverEveryLabel(t *testing.T) {
	queries := IndexQueries()
	assert.Len(t, queries, 3*len(IndexedLabels))
	assert.Contains(t, queries, "CREATE CONSTRAINT ON (n:Material) ASSERT n.uuid IS UNIQUE;")
	assert.Contains(t, queries, "CREATE INDEX ON :AwardCeremonyCategory(uuid);")
}
