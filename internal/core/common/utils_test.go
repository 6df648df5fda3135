package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	Name     string  `json:"name"`
	Position int     `json:"position"`
	Members  []row   `json:"members"`
	Optional *string `json:"optional"`
}

func TestDecode(t *testing.T) {
	raw := map[string]interface{}{
		"name":     "Hedda Gabler",
		"position": int64(2),
		"members": []interface{}{
			map[string]interface{}{"name": "Tesman", "position": int64(0)},
		},
		"optional": nil,
	}

	got, err := Decode[row](raw)
	require.NoError(t, err)

	assert.Equal(t, "Hedda Gabler", got.Name)
	assert.Equal(t, 2, got.Position)
	assert.Len(t, got.Members, 1)
	assert.Equal(t, "Tesman", got.Members[0].Name)
	assert.Nil(t, got.Optional)
}

func TestDecode_TypeMismatch(t *testing.T) {
	_, err := Decode[row](map[string]interface{}{"position": "not a number"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal record")
}
