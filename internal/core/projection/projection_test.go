package projection

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/playbill/internal/core/model"
	"github.com/agenthands/playbill/internal/driver"
)

func ip(i int) *int { return &i }

func TestCoreQueryShape(t *testing.T) {
	q := CoreQuery(model.KindProduction)
	assert.Contains(t, q, "MATCH (production:Production {uuid: $uuid})")
	assert.Contains(t, q, "RETURN properties(production) AS node, materials, materialWriters, venues")
	assert.Contains(t, q, "AS crew")

	q = CoreQuery(model.KindPerson)
	assert.Contains(t, q, "castProductions")
	q = CoreQuery(model.KindCompany)
	assert.NotContains(t, q, "castProductions")
	assert.Contains(t, q, "memberRel.creditedCompanyUuid = n.uuid")
}

func TestAwardsQueryTiers(t *testing.T) {
	assert.Contains(t, AwardsQuery(model.KindProduction), "collect(DISTINCT sub) + collect(DISTINCT sur)")
	assert.Contains(t, AwardsQuery(model.KindPerson), "WITH n, [n] AS tiers")
}

func TestCreditViewsGroupsEntitiesAndMembers(t *testing.T) {
	rows := []link{
		{Kind: "Person", UUID: "p2", Name: "Ben", CreditPosition: 1, EntityPosition: 0, Credit: "design"},
		{Kind: "Company", UUID: "c1", Name: "Acme", CreditPosition: 0, EntityPosition: 1},
		{Kind: "Person", UUID: "p1", Name: "Ann", CreditPosition: 0, EntityPosition: 0},
		{Kind: "Person", UUID: "m2", Name: "Zed", CreditPosition: 0, EntityPosition: 1, MemberPosition: ip(1), CreditedCompanyUUID: "c1"},
		{Kind: "Person", UUID: "m1", Name: "Max", CreditPosition: 0, EntityPosition: 1, MemberPosition: ip(0), CreditedCompanyUUID: "c1"},
	}

	views := creditViews(rows, producerCreditFallback)
	require.Len(t, views, 2)
	assert.Equal(t, "produced by", views[0].Name)
	require.Len(t, views[0].Entities, 2)
	assert.Equal(t, "Ann", views[0].Entities[0].Name)
	assert.Empty(t, views[0].Entities[0].CreditedMembers)
	assert.NotNil(t, views[0].Entities[0].CreditedMembers)
	assert.Equal(t, "Acme", views[0].Entities[1].Name)
	require.Len(t, views[0].Entities[1].CreditedMembers, 2)
	assert.Equal(t, "Max", views[0].Entities[1].CreditedMembers[0].Name)
	assert.Equal(t, "Zed", views[0].Entities[1].CreditedMembers[1].Name)
	assert.Equal(t, "design", views[1].Name)

	unnamed := creditViews([]link{{Kind: "Person", UUID: "p3", Name: "Cy"}}, "")
	assert.Equal(t, "", unnamed[0].Name)
}

func TestGroupCastKeepsMembersWithoutRoles(t *testing.T) {
	rows := []link{
		{Kind: "Person", UUID: "p2", Name: "Bea", CastMemberPosition: 1},
		{Kind: "Person", UUID: "p1", Name: "Al", CastMemberPosition: 0, RolePosition: ip(1), RoleName: "Ghost"},
		{Kind: "Person", UUID: "p1", Name: "Al", CastMemberPosition: 0, RolePosition: ip(0), RoleName: "King Hamlet", CharacterName: "Hamlet"},
	}
	cast := groupCast(rows)
	require.Len(t, cast, 2)
	assert.Equal(t, "Al", cast[0].person.Name)
	require.Len(t, cast[0].roles, 2)
	assert.Equal(t, "King Hamlet", cast[0].roles[0].RoleName)
	assert.Equal(t, "Bea", cast[1].person.Name)
	assert.Empty(t, cast[1].roles)
}

func awardsRow(holder string, nominees ...map[string]interface{}) map[string]interface{} {
	list := make([]interface{}, 0, len(nominees))
	for _, n := range nominees {
		list = append(list, n)
	}
	return map[string]interface{}{
		"award":              map[string]interface{}{"kind": "Award", "uuid": "a1", "name": "Olivier"},
		"ceremony":           map[string]interface{}{"uuid": "c2020", "name": "2020"},
		"category":           map[string]interface{}{"uuid": "cat1", "name": "Best Revival", "position": 0},
		"nominationPosition": 0,
		"isWinner":           true,
		"customType":         nil,
		"viaCompanyUuid":     nil,
		"holderUuid":         holder,
		"nominees":           list,
	}
}

func TestShowProductionAwardsAcrossTiers(t *testing.T) {
	nominee := map[string]interface{}{"kind": "Production", "uuid": "sub", "name": "Part One", "productionPosition": 0}

	t.Run("sur production names the sub as recipient", func(t *testing.T) {
		m := &driver.MockDriver{}
		m.On("MATCH (production:Production {uuid: $uuid})", map[string]interface{}{
			"node": map[string]interface{}{"uuid": "sur", "name": "The Whole Thing"},
		})
		m.On("MATCH (n:Production {uuid: $uuid})", awardsRow("sub", nominee))

		view, err := NewProjector(m, 0).Show(context.Background(), model.KindProduction, "sur")
		require.NoError(t, err)
		pv := view.(ProductionView)
		require.Len(t, pv.Awards, 1)
		nomination := pv.Awards[0].Ceremonies[0].Categories[0].Nominations[0]
		require.NotNil(t, nomination.Recipient)
		assert.Equal(t, "sub", nomination.Recipient.UUID)
		assert.Empty(t, nomination.Productions)
		assert.Equal(t, "Winner", nomination.Type)

		data, err := json.Marshal(nomination)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"recipientProduction":{`)
	})

	t.Run("sub production holds it itself", func(t *testing.T) {
		m := &driver.MockDriver{}
		m.On("MATCH (production:Production {uuid: $uuid})", map[string]interface{}{
			"node": map[string]interface{}{"uuid": "sub", "name": "Part One"},
		})
		co := map[string]interface{}{"kind": "Person", "uuid": "p1", "name": "Director", "entityPosition": 0}
		m.On("MATCH (n:Production {uuid: $uuid})", awardsRow("sub", nominee, co))

		view, err := NewProjector(m, 0).Show(context.Background(), model.KindProduction, "sub")
		require.NoError(t, err)
		nomination := view.(ProductionView).Awards[0].Ceremonies[0].Categories[0].Nominations[0]
		assert.Nil(t, nomination.Recipient)
		assert.Empty(t, nomination.Productions)
		require.Len(t, nomination.Entities, 1)
		assert.Equal(t, "Director", nomination.Entities[0].Name)

		data, err := json.Marshal(nomination)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"recipientProduction":null`)
	})
}

func TestResolveAwardsPersonViaCompany(t *testing.T) {
	rows := []awardRow{{
		Award:          link{UUID: "a1", Name: "Tony"},
		Ceremony:       link{UUID: "c1", Name: "2019"},
		Category:       link{UUID: "cat", Name: "Best Design"},
		ViaCompanyUUID: "co",
		HolderUUID:     "person",
		Nominees: []link{
			{Kind: "Company", UUID: "co", Name: "Studio", EntityPosition: 0},
			{Kind: "Person", UUID: "person", Name: "Designer", EntityPosition: 0, MemberPosition: ip(0)},
			{Kind: "Person", UUID: "other", Name: "Other", EntityPosition: 1},
		},
	}}

	awards := resolveAwards(model.KindPerson, "person", rows)
	nomination := awards[0].Ceremonies[0].Categories[0].Nominations[0]
	assert.Equal(t, "recipientCompany", nomination.RecipientField)
	require.NotNil(t, nomination.Recipient)
	assert.Equal(t, "Studio", nomination.Recipient.Name)
	require.Len(t, nomination.Entities, 1)
	assert.Equal(t, "Other", nomination.Entities[0].Name)
	assert.Equal(t, "Nomination", nomination.Type)
}

func TestResolveAwardsOrdering(t *testing.T) {
	row := func(award, ceremony string, category int, position int) awardRow {
		return awardRow{
			Award:              link{UUID: award, Name: award},
			Ceremony:           link{UUID: award + ceremony, Name: ceremony},
			Category:           link{UUID: award + ceremony + string(rune('a'+category)), Position: category},
			NominationPosition: position,
			HolderUUID:         "self",
			Nominees:           []link{{Kind: "Material", UUID: "self", Name: "Self"}},
		}
	}
	awards := resolveAwards(model.KindMaterial, "self", []awardRow{
		row("Tony", "2019", 0, 0),
		row("Olivier", "2019", 1, 0),
		row("Olivier", "2021", 0, 2),
		row("Olivier", "2021", 0, 1),
	})

	require.Len(t, awards, 2)
	assert.Equal(t, "Olivier", awards[0].Name)
	assert.Equal(t, "Award", awards[0].Kind)
	require.Len(t, awards[0].Ceremonies, 2)
	assert.Equal(t, "2021", awards[0].Ceremonies[0].Name)
	assert.Len(t, awards[0].Ceremonies[0].Categories[0].Nominations, 2)
	assert.Equal(t, "2019", awards[0].Ceremonies[1].Name)
	assert.Equal(t, "Tony", awards[1].Name)
}

func TestShowMaterial(t *testing.T) {
	m := &driver.MockDriver{}
	m.On("MATCH (material:Material {uuid: $uuid})", map[string]interface{}{
		"node": map[string]interface{}{"uuid": "m1", "name": "Hamlet", "format": "play", "year": 1600},
		"subMaterials": []interface{}{
			map[string]interface{}{"kind": "Material", "uuid": "s2", "name": "Act Two", "position": 1},
			map[string]interface{}{"kind": "Material", "uuid": "s1", "name": "Act One", "position": 0},
		},
		"writers": []interface{}{
			map[string]interface{}{"kind": "Person", "uuid": "w1", "name": "William Shakespeare", "creditPosition": 0, "entityPosition": 0},
		},
		"characters": []interface{}{
			map[string]interface{}{"kind": "Character", "uuid": "ch1", "name": "Hamlet", "groupPosition": 0, "position": 0, "displayName": "Prince Hamlet"},
			map[string]interface{}{"kind": "Character", "uuid": "ch2", "name": "Ophelia", "groupPosition": 0, "position": 1},
		},
		"productions": []interface{}{
			map[string]interface{}{"kind": "Production", "uuid": "p1", "name": "Hamlet", "startDate": "2010-01-01"},
			map[string]interface{}{"kind": "Production", "uuid": "p2", "name": "Hamlet", "startDate": "2020-01-01",
				"venue": map[string]interface{}{"kind": "Venue", "uuid": "v1", "name": "Olivier Theatre"}},
		},
	})

	view, err := NewProjector(m, 0).Show(context.Background(), model.KindMaterial, "m1")
	require.NoError(t, err)
	mv := view.(MaterialView)
	assert.Equal(t, "Hamlet", mv.Name)
	require.NotNil(t, mv.Year)
	assert.Equal(t, 1600, *mv.Year)
	assert.Nil(t, mv.SurMaterial)
	assert.Equal(t, []Summary{{Kind: "Material", UUID: "s1", Name: "Act One"}, {Kind: "Material", UUID: "s2", Name: "Act Two"}}, mv.SubMaterials)
	require.Len(t, mv.WritingCredits, 1)
	assert.Equal(t, "by", mv.WritingCredits[0].Name)
	require.Len(t, mv.CharacterGroups, 1)
	assert.Equal(t, "Prince Hamlet", mv.CharacterGroups[0].Characters[0].Name)
	assert.Equal(t, "Hamlet", mv.CharacterGroups[0].Characters[0].UnderlyingName)
	require.Len(t, mv.Productions, 2)
	assert.Equal(t, "p2", mv.Productions[0].UUID)
	assert.Equal(t, "Olivier Theatre", mv.Productions[0].Venue.Name)
	assert.Empty(t, mv.Awards)
	assert.True(t, m.Executed("MATCH (n:Material {uuid: $uuid})"))
}

func TestShowNotFound(t *testing.T) {
	m := &driver.MockDriver{}
	_, err := NewProjector(m, 0).Show(context.Background(), model.KindVenue, "missing")
	assert.ErrorIs(t, err, driver.ErrNotFound)
}

func TestShowStoreFailure(t *testing.T) {
	m := &driver.MockDriver{}
	m.Fail("AS tiers", errors.New("connection reset"))
	m.On("MATCH (n:Person", map[string]interface{}{"node": map[string]interface{}{"uuid": "p1", "name": "Ann"}})
	_, err := NewProjector(m, 0).Show(context.Background(), model.KindPerson, "p1")
	require.Error(t, err)
	assert.True(t, driver.IsStoreError(err))
}

func TestShowCompanyCreditedProductions(t *testing.T) {
	m := &driver.MockDriver{}
	m.On("MATCH (n:Company {uuid: $uuid})\nOPTIONAL", map[string]interface{}{
		"node": map[string]interface{}{"uuid": "co", "name": "Studio"},
		"creativeProductions": []interface{}{
			map[string]interface{}{"kind": "Production", "uuid": "p1", "name": "Show", "creditPosition": 0, "credit": "Set design",
				"member": map[string]interface{}{"kind": "Person", "uuid": "m2", "name": "Bo", "memberPosition": 1}},
			map[string]interface{}{"kind": "Production", "uuid": "p1", "name": "Show", "creditPosition": 0, "credit": "Set design",
				"member": map[string]interface{}{"kind": "Person", "uuid": "m1", "name": "Al", "memberPosition": 0}},
		},
	})

	view, err := NewProjector(m, 0).Show(context.Background(), model.KindCompany, "co")
	require.NoError(t, err)
	pv := view.(ParticipantView)
	require.Len(t, pv.CreativeProductions, 1)
	assert.Equal(t, "Set design", pv.CreativeProductions[0].Credit)
	assert.Equal(t, []Summary{{Kind: "Person", UUID: "m1", Name: "Al"}, {Kind: "Person", UUID: "m2", Name: "Bo"}},
		pv.CreativeProductions[0].CreditedMembers)
	assert.Nil(t, pv.CastProductions)
	assert.Empty(t, pv.ProducerProductions)
}

func TestShowCharacter(t *testing.T) {
	m := &driver.MockDriver{}
	m.On("MATCH (character:Character {uuid: $uuid})", map[string]interface{}{
		"node": map[string]interface{}{"uuid": "ch1", "name": "Hamlet"},
		"materials": []interface{}{
			map[string]interface{}{"kind": "Material", "uuid": "m1", "name": "Hamlet", "displayName": "Prince Hamlet", "groupPosition": 0, "position": 0},
		},
		"productions": []interface{}{
			map[string]interface{}{"kind": "Production", "uuid": "p1", "name": "Hamlet", "castMemberPosition": 0, "rolePosition": 0, "roleName": "Hamlet",
				"performer": map[string]interface{}{"kind": "Person", "uuid": "actor", "name": "Actor"}},
		},
	})
	view, err := NewProjector(m, 0).Show(context.Background(), model.KindCharacter, "ch1")
	require.NoError(t, err)
	cv := view.(CharacterShowView)
	require.Len(t, cv.Materials, 1)
	assert.Equal(t, "Prince Hamlet", cv.Materials[0].Depictions[0].DisplayName)
	require.Len(t, cv.Productions, 1)
	require.Len(t, cv.Productions[0].Performers, 1)
	assert.Equal(t, "Actor", cv.Productions[0].Performers[0].Name)
}

func TestShowCharacterMatchesRolesByQualifier(t *testing.T) {
	role := func(production, qualifier, depictionQualifier string, pos int) map[string]interface{} {
		return map[string]interface{}{"kind": "Production", "uuid": production, "name": production,
			"castMemberPosition": pos, "rolePosition": 0, "roleName": "Ghost", "qualifier": qualifier,
			"depictionName": "", "depictionQualifier": depictionQualifier,
			"performer": map[string]interface{}{"kind": "Person", "uuid": "actor-" + production, "name": "Actor " + production}}
	}
	m := &driver.MockDriver{}
	m.On("MATCH (character:Character {uuid: $uuid})", map[string]interface{}{
		"node": map[string]interface{}{"uuid": "ch1", "name": "Ghost"},
		"productions": []interface{}{
			role("p1", "young", "young", 0),
			role("p1", "young", "old", 0),
			role("p2", "old", "young", 0),
			role("p3", "", "young", 0),
			role("p3", "", "old", 0),
		},
	})

	view, err := NewProjector(m, 0).Show(context.Background(), model.KindCharacter, "ch1")
	require.NoError(t, err)
	cv := view.(CharacterShowView)
	require.Len(t, cv.Productions, 2)
	names := []string{cv.Productions[0].Name, cv.Productions[1].Name}
	assert.ElementsMatch(t, []string{"p1", "p3"}, names)
	for _, p := range cv.Productions {
		assert.Len(t, p.Performers, 1, p.Name)
	}
}

func TestShowCharacterMatchesRolesByDisplayName(t *testing.T) {
	m := &driver.MockDriver{}
	m.On("MATCH (character:Character {uuid: $uuid})", map[string]interface{}{
		"node": map[string]interface{}{"uuid": "ch1", "name": "Hamlet"},
		"productions": []interface{}{
			map[string]interface{}{"kind": "Production", "uuid": "p1", "name": "Hamlet", "castMemberPosition": 0, "rolePosition": 0,
				"roleName": "The Prince", "characterName": "Hamlet", "depictionName": "Prince Hamlet",
				"performer": map[string]interface{}{"kind": "Person", "uuid": "a1", "name": "Underlying"}},
			map[string]interface{}{"kind": "Production", "uuid": "p1", "name": "Hamlet", "castMemberPosition": 1, "rolePosition": 0,
				"roleName": "Prince Hamlet", "depictionName": "Prince Hamlet",
				"performer": map[string]interface{}{"kind": "Person", "uuid": "a2", "name": "Displayed"}},
			map[string]interface{}{"kind": "Production", "uuid": "p1", "name": "Hamlet", "castMemberPosition": 2, "rolePosition": 0,
				"roleName": "Horatio", "depictionName": "Prince Hamlet",
				"performer": map[string]interface{}{"kind": "Person", "uuid": "a3", "name": "Other"}},
		},
	})

	view, err := NewProjector(m, 0).Show(context.Background(), model.KindCharacter, "ch1")
	require.NoError(t, err)
	cv := view.(CharacterShowView)
	require.Len(t, cv.Productions, 1)
	var performers []string
	for _, p := range cv.Productions[0].Performers {
		performers = append(performers, p.Name)
	}
	assert.Equal(t, []string{"Underlying", "Displayed"}, performers)

	q := m.Queries[0]
	assert.Contains(t, q, "character.name IN [rel.roleName, rel.characterName]")
	assert.Contains(t, q, "depiction.displayName IN [rel.roleName, rel.characterName]")
	assert.Contains(t, q, "rel.qualifier = depiction.qualifier")
}

func TestShowAwardCeremony(t *testing.T) {
	m := &driver.MockDriver{}
	m.On("MATCH (ceremony:AwardCeremony {uuid: $uuid})", map[string]interface{}{
		"node":   map[string]interface{}{"uuid": "c1", "name": "2020"},
		"awards": []interface{}{map[string]interface{}{"kind": "Award", "uuid": "a1", "name": "Olivier"}},
		"categories": []interface{}{
			map[string]interface{}{"uuid": "cat2", "name": "Best Actor", "position": 1},
			map[string]interface{}{"uuid": "cat1", "name": "Best Play", "position": 0},
		},
		"nominees": []interface{}{
			map[string]interface{}{"kind": "Material", "uuid": "m1", "name": "Play", "categoryUuid": "cat1", "nominationPosition": 0, "materialPosition": 0, "isWinner": true},
			map[string]interface{}{"kind": "Person", "uuid": "p1", "name": "Actor", "categoryUuid": "cat2", "nominationPosition": 0, "entityPosition": 0, "customType": "Shortlisted"},
		},
	})

	view, err := NewProjector(m, 0).Show(context.Background(), model.KindAwardCeremony, "c1")
	require.NoError(t, err)
	cv := view.(AwardCeremonyView)
	require.NotNil(t, cv.Award)
	assert.Equal(t, "Olivier", cv.Award.Name)
	require.Len(t, cv.Categories, 2)
	assert.Equal(t, "Best Play", cv.Categories[0].Name)
	assert.Equal(t, "Winner", cv.Categories[0].Nominations[0].Type)
	assert.Equal(t, "Shortlisted", cv.Categories[1].Nominations[0].Type)

	data, err := json.Marshal(cv.Categories[0].Nominations[0])
	require.NoError(t, err)
	assert.NotContains(t, string(data), "recipient")
}

func TestEditProductionForm(t *testing.T) {
	m := &driver.MockDriver{}
	m.On("MATCH (production:Production {uuid: $uuid})", map[string]interface{}{
		"node":      map[string]interface{}{"uuid": "p1", "name": "Hamlet", "startDate": "2020-01-01"},
		"materials": []interface{}{map[string]interface{}{"kind": "Material", "uuid": "m1", "name": "Hamlet", "differentiator": "1"}},
		"subProductions": []interface{}{
			map[string]interface{}{"kind": "Production", "uuid": "s1", "name": "Part One", "position": 0},
		},
		"cast": []interface{}{
			map[string]interface{}{"kind": "Person", "uuid": "a1", "name": "Actor", "castMemberPosition": 0, "rolePosition": 0, "roleName": "Hamlet", "isAlternate": true},
		},
		"producers": []interface{}{
			map[string]interface{}{"kind": "Company", "uuid": "co", "name": "Studio", "creditPosition": 0, "entityPosition": 0},
			map[string]interface{}{"kind": "Person", "uuid": "pm", "name": "Member", "creditPosition": 0, "entityPosition": 0, "memberPosition": 0},
		},
	})

	e, err := NewProjector(m, 0).Edit(context.Background(), model.KindProduction, "p1")
	require.NoError(t, err)
	p := e.(*model.Production)
	assert.Equal(t, "p1", p.UUID)
	assert.Equal(t, "Hamlet", p.Material.Name)
	assert.Equal(t, "1", p.Material.Differentiator)
	require.NotNil(t, p.Venue)
	assert.Equal(t, "", p.Venue.Name)
	require.Len(t, p.SubProductions, 1)
	assert.Equal(t, "s1", p.SubProductions[0].UUID)
	require.Len(t, p.Cast, 1)
	require.Len(t, p.Cast[0].Roles, 1)
	assert.True(t, p.Cast[0].Roles[0].IsAlternate)
	require.Len(t, p.ProducerCredits, 1)
	require.Len(t, p.ProducerCredits[0].Entities, 1)
	assert.Equal(t, model.KindCompany, p.ProducerCredits[0].Entities[0].Kind)
	assert.Equal(t, "Member", p.ProducerCredits[0].Entities[0].CreditedMembers[0].Name)
}

func TestEditMaterialForm(t *testing.T) {
	m := &driver.MockDriver{}
	m.On("MATCH (material:Material {uuid: $uuid})", map[string]interface{}{
		"node": map[string]interface{}{"uuid": "m1", "name": "Hamlet", "year": 1600},
		"characters": []interface{}{
			map[string]interface{}{"kind": "Character", "uuid": "c2", "name": "Ghost", "groupPosition": 1, "group": "Spirits", "position": 0},
			map[string]interface{}{"kind": "Character", "uuid": "c1", "name": "Hamlet", "groupPosition": 0, "position": 0, "displayName": "Prince Hamlet"},
		},
	})

	e, err := NewProjector(m, 0).Edit(context.Background(), model.KindMaterial, "m1")
	require.NoError(t, err)
	mat := e.(*model.Material)
	assert.Equal(t, "1600", mat.Year)
	require.Len(t, mat.CharacterGroups, 2)
	assert.Equal(t, "Prince Hamlet", mat.CharacterGroups[0].Characters[0].Name)
	assert.Equal(t, "Hamlet", mat.CharacterGroups[0].Characters[0].UnderlyingName)
	assert.Equal(t, "Spirits", mat.CharacterGroups[1].Name)
	assert.Equal(t, "", mat.CharacterGroups[1].Characters[0].UnderlyingName)
}

func TestEditCeremonyForm(t *testing.T) {
	m := &driver.MockDriver{}
	m.On("MATCH (ceremony:AwardCeremony {uuid: $uuid})", map[string]interface{}{
		"node":       map[string]interface{}{"uuid": "c1", "name": "2020"},
		"awards":     []interface{}{map[string]interface{}{"kind": "Award", "uuid": "a1", "name": "Olivier"}},
		"categories": []interface{}{map[string]interface{}{"uuid": "cat1", "name": "Best Revival", "position": 0}},
		"nominees": []interface{}{
			map[string]interface{}{"kind": "Production", "uuid": "p1", "name": "Hamlet", "categoryUuid": "cat1", "nominationPosition": 0, "productionPosition": 0, "isWinner": true},
		},
	})

	e, err := NewProjector(m, 0).Edit(context.Background(), model.KindAwardCeremony, "c1")
	require.NoError(t, err)
	c := e.(*model.AwardCeremony)
	assert.Equal(t, "Olivier", c.Award.Name)
	require.Len(t, c.Categories, 1)
	require.Len(t, c.Categories[0].Nominations, 1)
	n := c.Categories[0].Nominations[0]
	assert.True(t, n.IsWinner)
	require.Len(t, n.Productions, 1)
	assert.Equal(t, "p1", n.Productions[0].UUID)
}

func TestList(t *testing.T) {
	m := &driver.MockDriver{}
	m.On("MATCH (n:Production)", map[string]interface{}{
		"item": map[string]interface{}{"kind": "Production", "uuid": "p1", "name": "Hamlet", "startDate": "2020-01-01",
			"venue": map[string]interface{}{"kind": "Venue", "uuid": "v1", "name": "Olivier",
				"surVenue": map[string]interface{}{"kind": "Venue", "uuid": "nt", "name": "National Theatre"}}},
	})

	items, err := NewProjector(m, 5).List(context.Background(), model.KindProduction)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "National Theatre", items[0].Venue.SurVenue.Name)
	assert.Equal(t, 5, m.Params[0]["limit"])
}
