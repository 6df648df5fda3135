package driver

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Rows flattens an eager result into one map per record, in record order.
func Rows(result neo4j.EagerResult) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(result.Records))
	for _, rec := range result.Records {
		rows = append(rows, rec.AsMap())
	}
	return rows
}

// QueryRows runs a read query and returns every record.
func QueryRows(ctx context.Context, d GraphDriver, query string, params map[string]interface{}) ([]map[string]interface{}, error) {
	res, err := d.ExecuteQuery(ctx, query, params)
	if err != nil {
		return nil, err
	}
	return Rows(res), nil
}

// QueryOptional returns the first record, or nil when there is none.
func QueryOptional(ctx context.Context, d GraphDriver, query string, params map[string]interface{}) (map[string]interface{}, error) {
	rows, err := QueryRows(ctx, d, query, params)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// QuerySingle returns the first record and ErrNotFound when there is none.
func QuerySingle(ctx context.Context, d GraphDriver, query string, params map[string]interface{}) (map[string]interface{}, error) {
	row, err := QueryOptional(ctx, d, query, params)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	return row, nil
}
