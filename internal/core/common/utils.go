package common

import (
	"encoding/json"
	"fmt"
)

// Decode converts a value read from the store (maps, lists and scalars as
// returned by the bolt driver) into a type T.
func Decode[T any](raw interface{}) (T, error) {
	var zero T

	data, err := json.Marshal(raw)
	if err != nil {
		return zero, fmt.Errorf("failed to marshal record: %w", err)
	}

	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal record: %w\nData: %s", err, data)
	}

	return result, nil
}
