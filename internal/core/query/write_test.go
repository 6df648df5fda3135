package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/playbill/internal/core/model"
)

func TestCreate_Material(t *testing.T) {
	params := map[string]interface{}{"uuid": "root"}
	stmts := Create(model.KindMaterial, params)

	require.Len(t, stmts, 6)
	assert.Equal(t, "CREATE (n:Material) SET n = $props", stmts[0].Query)
	assert.Contains(t, stmts[1].Query, "UNWIND $subMaterials AS row")
	assert.Contains(t, stmts[1].Query, "CREATE (root)-[:HAS_SUB_MATERIAL {position: row.position}]->(entity)")
	assert.Contains(t, stmts[1].Query, "MERGE (entity:Material {uuid: coalesce(existing.uuid, row.uuid)})")
	assert.Contains(t, stmts[5].Query, "OPTIONAL MATCH (existing:Character {name: row.name})")
	for _, s := range stmts {
		assert.Equal(t, params, s.Params)
	}
}

func TestCreate_ProductionMembersFollowCompanies(t *testing.T) {
	stmts := Create(model.KindProduction, map[string]interface{}{})

	var companies, members int
	for i, s := range stmts {
		if strings.Contains(s.Query, "UNWIND $producerCompanies") {
			companies = i
		}
		if strings.Contains(s.Query, "UNWIND $producerMembers") {
			members = i
			assert.Contains(t, s.Query, "MATCH (company:Company {name: row.companyName})")
			assert.Contains(t, s.Query, "creditedCompanyUuid: company.uuid")
		}
	}
	assert.Less(t, companies, members)
}

func TestCreate_SubProductionsMatchByUUID(t *testing.T) {
	stmts := Create(model.KindProduction, map[string]interface{}{})

	for _, s := range stmts {
		if strings.Contains(s.Query, "UNWIND $subProductions") {
			assert.Contains(t, s.Query, "MATCH (entity:Production {uuid: row.uuid})")
			assert.NotContains(t, s.Query, "MERGE")
			return
		}
	}
	t.Fatal("no sub-production statement")
}

func TestCreate_AwardCeremony(t *testing.T) {
	stmts := Create(model.KindAwardCeremony, map[string]interface{}{})

	require.GreaterOrEqual(t, len(stmts), 4)
	assert.Contains(t, stmts[1].Query, "CREATE (entity)-[:PRESENTED_AT]->(root)")
	assert.Contains(t, stmts[2].Query, "UNWIND $categories AS row")
	for _, s := range stmts[3:] {
		assert.Contains(t, s.Query, "(category:AwardCeremonyCategory {uuid: row.categoryUuid})")
		assert.Contains(t, s.Query, "CREATE (category)-[:HAS_NOMINEE")
	}
}

func TestUpdate_DetachesOwnedRelationships(t *testing.T) {
	stmts := Update(model.KindMaterial, map[string]interface{}{})

	assert.Equal(t, "MATCH (n:Material {uuid: $uuid}) SET n = $props", stmts[0].Query)
	assert.Equal(t,
		"MATCH (n:Material {uuid: $uuid})-[r:HAS_SUB_MATERIAL|HAS_WRITING_ENTITY|DEPICTS]->() DELETE r",
		stmts[1].Query)
}

func TestUpdate_AwardCeremonyRebuildsCategories(t *testing.T) {
	stmts := Update(model.KindAwardCeremony, map[string]interface{}{})

	assert.Contains(t, stmts[1].Query, "<-[r:PRESENTED_AT]-() DELETE r")
	assert.Contains(t, stmts[2].Query, "DETACH DELETE category")
}

func TestUpdate_PlainKind(t *testing.T) {
	stmts := Update(model.KindPerson, map[string]interface{}{})

	require.Len(t, stmts, 1)
}

func TestDelete(t *testing.T) {
	stmts := Delete(model.KindVenue, "abc")

	require.Len(t, stmts, 1)
	assert.Equal(t, "MATCH (n:Venue {uuid: $uuid}) DETACH DELETE n", stmts[0].Query)
	assert.Equal(t, "abc", stmts[0].Params["uuid"])

	assert.Len(t, Delete(model.KindAwardCeremony, "abc"), 2)
}

func TestSubRelation(t *testing.T) {
	assert.Equal(t, RelSubVenue, SubRelation(model.KindVenue))
	assert.Panics(t, func() { SubRelation(model.KindPerson) })
}
