package projection

import (
	"sort"

	"github.com/agenthands/playbill/internal/core/model"
)

// form rebuilds the editable tree of kind k from its core rows.
func form(k model.Kind, c *core) model.Entity {
	identity := c.node.identity()
	switch k {
	case model.KindMaterial:
		return materialForm(c)
	case model.KindProduction:
		return productionForm(c)
	case model.KindVenue:
		subs := append([]link(nil), c.list("subVenues")...)
		byPosition(subs, position)
		return &model.Venue{Identity: identity, SubVenues: references(subs)}
	case model.KindAwardCeremony:
		return ceremonyForm(c)
	case model.KindPerson:
		return &model.Person{Identity: identity}
	case model.KindCompany:
		return &model.Company{Identity: identity}
	case model.KindCharacter:
		return &model.Character{Identity: identity}
	case model.KindAward:
		return &model.Award{Identity: identity}
	default:
		panic("projection: no form for kind " + string(k))
	}
}

func references(rows []link) []*model.Reference {
	refs := make([]*model.Reference, 0, len(rows))
	for _, r := range rows {
		refs = append(refs, r.reference())
	}
	return refs
}

func materialForm(c *core) *model.Material {
	subs := append([]link(nil), c.list("subMaterials")...)
	byPosition(subs, position)

	m := &model.Material{
		Identity:       c.node.identity(),
		Format:         c.node.Format,
		Year:           yearString(c.node.Year),
		SubMaterials:   references(subs),
		WritingCredits: writingCreditForms(c.list("writers")),
	}

	rows := append([]link(nil), c.list("characters")...)
	byPosition(rows, groupPosition, position)
	index := map[int]*model.CharacterGroup{}
	for _, r := range rows {
		g, ok := index[r.GroupPosition]
		if !ok {
			g = &model.CharacterGroup{Name: r.Group}
			index[r.GroupPosition] = g
			m.CharacterGroups = append(m.CharacterGroups, g)
		}
		d := &model.CharacterDepiction{Identity: r.identity(), Qualifier: r.Qualifier}
		if r.DisplayName != "" {
			d.Name = r.DisplayName
			d.UnderlyingName = r.Name
		}
		g.Characters = append(g.Characters, d)
	}
	return m
}

func productionForm(c *core) *model.Production {
	p := &model.Production{
		Base:            c.node.identity().Base,
		StartDate:       c.node.StartDate,
		PressDate:       c.node.PressDate,
		EndDate:         c.node.EndDate,
		ProducerCredits: productionCreditForms(c.list("producers")),
		CreativeCredits: productionCreditForms(c.list("creatives")),
		CrewCredits:     productionCreditForms(c.list("crew")),
	}
	if m := c.first("materials"); m != nil {
		p.Material = m.reference()
	}
	if v := c.first("venues"); v != nil {
		p.Venue = v.reference()
	}

	subs := append([]link(nil), c.list("subProductions")...)
	byPosition(subs, position)
	for _, s := range subs {
		p.SubProductions = append(p.SubProductions, &model.ProductionRef{UUID: s.UUID})
	}

	for _, g := range groupCast(c.list("cast")) {
		member := &model.CastMember{Identity: g.person.identity()}
		for _, r := range g.roles {
			member.Roles = append(member.Roles, &model.Role{
				Name:                    r.RoleName,
				CharacterName:           r.CharacterName,
				CharacterDifferentiator: r.CharacterDifferentiator,
				Qualifier:               r.Qualifier,
				IsAlternate:             r.IsAlternate,
			})
		}
		p.Cast = append(p.Cast, member)
	}
	return p
}

func ceremonyForm(c *core) *model.AwardCeremony {
	ceremony := &model.AwardCeremony{Base: c.node.identity().Base}
	if a := c.first("awards"); a != nil {
		ceremony.Award = a.reference()
	}

	categories := append([]link(nil), c.list("categories")...)
	byPosition(categories, position)

	byCategory := map[string]map[int][]link{}
	for _, n := range c.list("nominees") {
		if byCategory[n.CategoryUUID] == nil {
			byCategory[n.CategoryUUID] = map[int][]link{}
		}
		byCategory[n.CategoryUUID][n.NominationPosition] = append(byCategory[n.CategoryUUID][n.NominationPosition], n)
	}

	for _, cat := range categories {
		category := &model.Category{Name: cat.Name}
		nominations := byCategory[cat.UUID]
		positions := make([]int, 0, len(nominations))
		for p := range nominations {
			positions = append(positions, p)
		}
		sort.Ints(positions)
		for _, p := range positions {
			rows := nominations[p]
			g := groupNominees(rows)
			n := &model.Nomination{
				IsWinner:   rows[0].IsWinner,
				CustomType: rows[0].CustomType,
				Entities:   creditEntities(g.entities),
			}
			for _, prod := range g.productions {
				n.Productions = append(n.Productions, &model.ProductionRef{UUID: prod.UUID})
			}
			n.Materials = references(g.materials)
			category.Nominations = append(category.Nominations, n)
		}
		ceremony.Categories = append(ceremony.Categories, category)
	}
	return ceremony
}
