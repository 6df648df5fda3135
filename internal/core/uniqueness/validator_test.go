package uniqueness

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/playbill/internal/core/model"
	"github.com/agenthands/playbill/internal/driver"
)

func TestNameCollision(t *testing.T) {
	mock := (&driver.MockDriver{}).On("MATCH (n:Material {name: $name})", map[string]interface{}{"exists": true})
	v := NewValidator(mock)

	collides, err := v.NameCollision(context.Background(), model.KindMaterial, "The Wild Duck", "", "")

	require.NoError(t, err)
	assert.True(t, collides)
	assert.Equal(t, "The Wild Duck", mock.Params[0]["name"])
	assert.Equal(t, "", mock.Params[0]["differentiator"])
	assert.Equal(t, "", mock.Params[0]["uuid"])
}

func TestNameCollision_NoRows(t *testing.T) {
	v := NewValidator(&driver.MockDriver{})

	collides, err := v.NameCollision(context.Background(), model.KindPerson, "Ian McKellen", "", "abc")

	require.NoError(t, err)
	assert.False(t, collides)
}

func TestSubStatusByName(t *testing.T) {
	mock := (&driver.MockDriver{}).On("HAS_SUB_MATERIAL", map[string]interface{}{
		"exists":   true,
		"assigned": true,
		"isSur":    false,
	})
	v := NewValidator(mock)

	status, err := v.SubStatusByName(context.Background(), model.KindMaterial, "Sub-Grault", "", "")

	require.NoError(t, err)
	assert.Equal(t, SubStatus{Exists: true, Assigned: true}, status)
	assert.Contains(t, mock.Queries[0], "OPTIONAL MATCH (sur:Material)-[:HAS_SUB_MATERIAL]->(n)")
}

func TestSubStatusByUUID(t *testing.T) {
	mock := (&driver.MockDriver{}).On("HAS_SUB_PRODUCTION", map[string]interface{}{
		"exists":   true,
		"assigned": false,
		"isSur":    true,
	})
	v := NewValidator(mock)

	status, err := v.SubStatusByUUID(context.Background(), model.KindProduction, "sub", "root")

	require.NoError(t, err)
	assert.True(t, status.IsSur)
	assert.Equal(t, "sub", mock.Params[0]["subUuid"])
	assert.Equal(t, "root", mock.Params[0]["uuid"])
}

func TestMissingProductions(t *testing.T) {
	mock := (&driver.MockDriver{}).On("n.uuid IN $uuids", map[string]interface{}{
		"uuids": []interface{}{"a"},
	})
	v := NewValidator(mock)

	missing, err := v.MissingProductions(context.Background(), []string{"a", "b"})

	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"b": true}, missing)
}

func TestMissingProductions_Empty(t *testing.T) {
	mock := &driver.MockDriver{}
	missing, err := NewValidator(mock).MissingProductions(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, missing)
	assert.Empty(t, mock.Queries)
}

func TestAssociatedKinds(t *testing.T) {
	mock := (&driver.MockDriver{}).On("<-[]-(m)", map[string]interface{}{
		"labels": []interface{}{"Production", "AwardCeremonyCategory", "Material", "Production"},
	})
	v := NewValidator(mock)

	kinds, err := v.AssociatedKinds(context.Background(), model.KindPerson, "abc")

	require.NoError(t, err)
	assert.Equal(t, []string{"AwardCeremony", "Material", "Production"}, kinds)
}

func TestAssociatedKinds_Award(t *testing.T) {
	mock := (&driver.MockDriver{}).On("-[:PRESENTED_AT]->(m)", map[string]interface{}{
		"labels": []interface{}{"AwardCeremony"},
	})

	kinds, err := NewValidator(mock).AssociatedKinds(context.Background(), model.KindAward, "abc")

	require.NoError(t, err)
	assert.Equal(t, []string{"AwardCeremony"}, kinds)
}

func TestStoreErrorPropagates(t *testing.T) {
	mock := (&driver.MockDriver{}).Fail("MATCH", errors.New("connection reset"))

	_, err := NewValidator(mock).Exists(context.Background(), model.KindVenue, "abc")

	assert.True(t, driver.IsStoreError(err))
}
