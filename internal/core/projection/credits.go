package projection

import "github.com/agenthands/playbill/internal/core/model"

// Fallback names for credits stored without one.
const (
	writingCreditFallback  = "by"
	producerCreditFallback = "produced by"
)

type entityGroup struct {
	entity  link
	members []link
}

type creditGroup struct {
	name, creditType string
	entities         []*entityGroup
}

// groupCredits rebuilds ordered credits from flat entity rows. Member rows
// (those with a member position) attach to the company at the same entity
// position of the same credit.
func groupCredits(rows []link) []*creditGroup {
	rows = append([]link(nil), rows...)
	byPosition(rows, creditPosition, entityPosition, memberPosition)

	var credits []*creditGroup
	index := map[int]*creditGroup{}
	entities := map[[2]int]*entityGroup{}
	for _, r := range rows {
		c, ok := index[r.CreditPosition]
		if !ok {
			c = &creditGroup{name: r.Credit, creditType: r.CreditType}
			index[r.CreditPosition] = c
			credits = append(credits, c)
		}
		key := [2]int{r.CreditPosition, r.EntityPosition}
		if r.MemberPosition == nil {
			e := &entityGroup{entity: r}
			entities[key] = e
			c.entities = append(c.entities, e)
			continue
		}
		if e, ok := entities[key]; ok {
			e.members = append(e.members, r)
		}
	}
	return credits
}

func entityViews(groups []*entityGroup) []EntityView {
	views := make([]EntityView, 0, len(groups))
	for _, g := range groups {
		members := make([]Summary, 0, len(g.members))
		for _, m := range g.members {
			members = append(members, m.summary())
		}
		views = append(views, EntityView{Summary: g.entity.summary(), CreditedMembers: members})
	}
	return views
}

func creditViews(rows []link, fallback string) []CreditView {
	groups := groupCredits(rows)
	views := make([]CreditView, 0, len(groups))
	for _, g := range groups {
		name := g.name
		if name == "" {
			name = fallback
		}
		views = append(views, CreditView{Name: name, CreditType: g.creditType, Entities: entityViews(g.entities)})
	}
	return views
}

func creditEntities(groups []*entityGroup) []*model.CreditEntity {
	entities := make([]*model.CreditEntity, 0, len(groups))
	for _, g := range groups {
		e := &model.CreditEntity{Kind: model.Kind(g.entity.Kind), Identity: g.entity.identity()}
		for _, m := range g.members {
			e.CreditedMembers = append(e.CreditedMembers, m.reference())
		}
		entities = append(entities, e)
	}
	return entities
}

func writingCreditForms(rows []link) []*model.WritingCredit {
	groups := groupCredits(rows)
	credits := make([]*model.WritingCredit, 0, len(groups))
	for _, g := range groups {
		credits = append(credits, &model.WritingCredit{
			Name:       g.name,
			CreditType: g.creditType,
			Entities:   creditEntities(g.entities),
		})
	}
	return credits
}

func productionCreditForms(rows []link) []*model.ProductionCredit {
	groups := groupCredits(rows)
	credits := make([]*model.ProductionCredit, 0, len(groups))
	for _, g := range groups {
		credits = append(credits, &model.ProductionCredit{Name: g.name, Entities: creditEntities(g.entities)})
	}
	return credits
}

type castGroup struct {
	person link
	roles  []link
}

// groupCast rebuilds cast members from one row per role; a member with no
// roles has a single row without a role position.
func groupCast(rows []link) []*castGroup {
	rows = append([]link(nil), rows...)
	byPosition(rows, castPosition, rolePosition)

	var cast []*castGroup
	index := map[int]*castGroup{}
	for _, r := range rows {
		g, ok := index[r.CastMemberPosition]
		if !ok {
			g = &castGroup{person: r}
			index[r.CastMemberPosition] = g
			cast = append(cast, g)
		}
		if r.RolePosition != nil {
			g.roles = append(g.roles, r)
		}
	}
	return cast
}

func roleView(r link) RoleView {
	return RoleView{
		Name:                    r.RoleName,
		CharacterName:           r.CharacterName,
		CharacterDifferentiator: r.CharacterDifferentiator,
		Qualifier:               r.Qualifier,
		IsAlternate:             r.IsAlternate,
	}
}

func roleViews(rows []link) []RoleView {
	views := make([]RoleView, 0, len(rows))
	for _, r := range rows {
		views = append(views, roleView(r))
	}
	return views
}
