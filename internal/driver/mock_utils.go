package driver

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Stub answers every query containing Match with Result.
type Stub struct {
	Match  string
	Result neo4j.EagerResult
	Err    error
}

// MockDriver is an in-memory GraphDriver for tests. Reads are answered by
// the first matching stub (an empty result otherwise) and every call is
// recorded. It is safe for concurrent use.
type MockDriver struct {
	mu       sync.Mutex
	Stubs    []Stub
	Queries  []string
	Params   []map[string]interface{}
	Writes   [][]Statement
	WriteErr error
}

// On registers a stub returning rows for queries containing match.
func (m *MockDriver) On(match string, rows ...map[string]interface{}) *MockDriver {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Stubs = append(m.Stubs, Stub{Match: match, Result: Records(rows...)})
	return m
}

// Fail registers a stub that fails queries containing match.
func (m *MockDriver) Fail(match string, err error) *MockDriver {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Stubs = append(m.Stubs, Stub{Match: match, Err: err})
	return m
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Queries = append(m.Queries, query)
	m.Params = append(m.Params, params)
	for _, s := range m.Stubs {
		if strings.Contains(query, s.Match) {
			if s.Err != nil {
				return neo4j.EagerResult{}, &StoreError{Query: query, Err: s.Err}
			}
			return s.Result, nil
		}
	}
	return neo4j.EagerResult{}, nil
}

func (m *MockDriver) ExecuteWrite(ctx context.Context, statements []Statement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Writes = append(m.Writes, statements)
	if m.WriteErr != nil {
		return &StoreError{Err: m.WriteErr}
	}
	return nil
}

func (m *MockDriver) BuildIndices(ctx context.Context) error {
	return nil
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}

// Executed reports whether any read query contained fragment.
func (m *MockDriver) Executed(fragment string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, q := range m.Queries {
		if strings.Contains(q, fragment) {
			return true
		}
	}
	return false
}

func (m *MockDriver) WriteCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Writes)
}

// Records builds an eager result with one record per row.
func Records(rows ...map[string]interface{}) neo4j.EagerResult {
	var result neo4j.EagerResult
	for _, row := range rows {
		keys := make([]string, 0, len(row))
		for k := range row {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		values := make([]any, len(keys))
		for i, k := range keys {
			values[i] = row[k]
		}
		result.Keys = keys
		result.Records = append(result.Records, &neo4j.Record{Keys: keys, Values: values})
	}
	return result
}
