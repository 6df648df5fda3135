package projection

import (
	"fmt"
	"slices"
	"sort"

	"github.com/agenthands/playbill/internal/core/model"
)

func summaries(rows []link) []Summary {
	out := make([]Summary, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.summary())
	}
	return out
}

func productionSummaries(rows []link) []ProductionSummary {
	out := make([]ProductionSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.productionSummary())
	}
	return out
}

// sortProductions orders productions latest first, then by name.
func sortProductions(rows []link) []link {
	ordered := append([]link(nil), rows...)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.StartDate != b.StartDate {
			return a.StartDate > b.StartDate
		}
		return lessByName(a, b)
	})
	return ordered
}

func sortedProductions(rows []link) []link {
	return sortProductions(dedupeByUUID(rows))
}

func materialView(c *core, awards []AwardView) MaterialView {
	n := c.node
	subs := append([]link(nil), c.list("subMaterials")...)
	byPosition(subs, position)
	sourcing := dedupeByUUID(c.list("sourcingMaterials"))
	byName(sourcing)

	return MaterialView{
		Summary:           n.summary(),
		Differentiator:    n.Differentiator,
		Format:            n.Format,
		Year:              n.Year,
		SurMaterial:       c.first("surMaterials").summaryPtr(),
		SubMaterials:      summaries(subs),
		WritingCredits:    creditViews(c.list("writers"), writingCreditFallback),
		CharacterGroups:   characterGroupViews(c.list("characters")),
		SourcingMaterials: summaries(sourcing),
		Productions:       productionSummaries(sortedProductions(c.list("productions"))),
		Awards:            awards,
	}
}

func characterGroupViews(rows []link) []CharacterGroupView {
	rows = append([]link(nil), rows...)
	byPosition(rows, groupPosition, position)

	var views []CharacterGroupView
	index := map[int]int{}
	for _, r := range rows {
		i, ok := index[r.GroupPosition]
		if !ok {
			i = len(views)
			index[r.GroupPosition] = i
			views = append(views, CharacterGroupView{Name: r.Group, Characters: []CharacterView{}})
		}
		cv := CharacterView{Summary: r.summary(), Qualifier: r.Qualifier}
		if r.DisplayName != "" {
			cv.Name = r.DisplayName
			cv.UnderlyingName = r.Name
		}
		views[i].Characters = append(views[i].Characters, cv)
	}
	if views == nil {
		views = []CharacterGroupView{}
	}
	return views
}

func productionView(c *core, awards []AwardView) ProductionView {
	n := c.node
	v := ProductionView{
		Summary:         n.summary(),
		StartDate:       n.StartDate,
		PressDate:       n.PressDate,
		EndDate:         n.EndDate,
		ProducerCredits: creditViews(c.list("producers"), producerCreditFallback),
		CreativeCredits: creditViews(c.list("creatives"), ""),
		CrewCredits:     creditViews(c.list("crew"), ""),
		Awards:          awards,
	}

	if m := c.first("materials"); m != nil {
		v.Material = &MaterialSummary{
			Summary:        m.summary(),
			Format:         m.Format,
			Year:           m.Year,
			WritingCredits: creditViews(c.list("materialWriters"), writingCreditFallback),
		}
	}
	if venue := c.first("venues"); venue != nil {
		v.Venue = venue.venueSummary()
	}
	if sur := c.first("surProductions"); sur != nil {
		s := sur.productionSummary()
		v.SurProduction = &s
	}

	subs := append([]link(nil), c.list("subProductions")...)
	byPosition(subs, position)
	v.SubProductions = productionSummaries(subs)

	cast := groupCast(c.list("cast"))
	v.Cast = make([]CastMemberView, 0, len(cast))
	for _, g := range cast {
		v.Cast = append(v.Cast, CastMemberView{Summary: g.person.summary(), Roles: roleViews(g.roles)})
	}
	return v
}

func venueView(c *core) VenueView {
	n := c.node
	subs := append([]link(nil), c.list("subVenues")...)
	byPosition(subs, position)

	// Productions at a sub-venue are listed with that sub-venue attached.
	productions := append([]link(nil), c.list("productions")...)
	productions = append(productions, c.list("subVenueProductions")...)

	return VenueView{
		Summary:        n.summary(),
		Differentiator: n.Differentiator,
		SurVenue:       c.first("surVenues").summaryPtr(),
		SubVenues:      summaries(subs),
		Productions:    productionSummaries(sortedProductions(productions)),
	}
}

func participantView(k model.Kind, c *core, awards []AwardView) ParticipantView {
	n := c.node
	v := ParticipantView{
		Summary:             n.summary(),
		Differentiator:      n.Differentiator,
		Materials:           writingSummaries(c.list("materials")),
		ProducerProductions: creditedProductions(k, c.list("producerProductions"), producerCreditFallback),
		CreativeProductions: creditedProductions(k, c.list("creativeProductions"), ""),
		CrewProductions:     creditedProductions(k, c.list("crewProductions"), ""),
		Awards:              awards,
	}
	if k == model.KindPerson {
		v.CastProductions = castProductions(c.list("castProductions"))
	}
	return v
}

func writingSummaries(rows []link) []WritingCreditSummary {
	rows = append([]link(nil), rows...)
	byPosition(rows, creditPosition)
	byName(rows)

	out := make([]WritingCreditSummary, 0, len(rows))
	seen := map[[2]string]bool{}
	for _, r := range rows {
		credit := r.Credit
		if credit == "" {
			credit = writingCreditFallback
		}
		key := [2]string{r.UUID, credit}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, WritingCreditSummary{
			Summary:    r.summary(),
			Format:     r.Format,
			Year:       r.Year,
			Credit:     credit,
			CreditType: r.CreditType,
		})
	}
	return out
}

func castProductions(rows []link) []CastProductionView {
	rows = append([]link(nil), rows...)
	byPosition(rows, rolePosition)

	var order []link
	roles := map[string][]RoleView{}
	for _, r := range rows {
		if _, ok := roles[r.UUID]; !ok {
			order = append(order, r)
			roles[r.UUID] = []RoleView{}
		}
		if r.RolePosition != nil {
			roles[r.UUID] = append(roles[r.UUID], roleView(r))
		}
	}

	out := make([]CastProductionView, 0, len(order))
	for _, p := range sortedProductions(order) {
		out = append(out, CastProductionView{ProductionSummary: p.productionSummary(), Roles: roles[p.UUID]})
	}
	return out
}

// creditedProductions lists one entry per (production, credit). Companies
// gather the members credited through them into the entry.
func creditedProductions(k model.Kind, rows []link, fallback string) []CreditedProductionView {
	type key struct {
		uuid   string
		credit int
	}
	var order []link
	entries := map[key]*CreditedProductionView{}
	sorted := append([]link(nil), rows...)
	byPosition(sorted, creditPosition, func(l link) int {
		if l.Member == nil {
			return -1
		}
		return memberPosition(*l.Member)
	})
	for _, r := range sorted {
		kk := key{uuid: r.UUID, credit: r.CreditPosition}
		entry, ok := entries[kk]
		if !ok {
			name := r.Credit
			if name == "" {
				name = fallback
			}
			entry = &CreditedProductionView{ProductionSummary: r.productionSummary(), Credit: name}
			entry.CreditedMembers = []Summary{}
			if k == model.KindPerson {
				entry.Employer = r.Employer.summaryPtr()
			}
			entries[kk] = entry
			order = append(order, r)
		}
		if r.Member != nil {
			entry.CreditedMembers = append(entry.CreditedMembers, r.Member.summary())
		}
	}

	out := make([]CreditedProductionView, 0, len(order))
	for _, r := range sortProductions(order) {
		out = append(out, *entries[key{uuid: r.UUID, credit: r.CreditPosition}])
	}
	return out
}

func characterView(c *core) CharacterShowView {
	n := c.node

	materialRows := append([]link(nil), c.list("materials")...)
	byPosition(materialRows, groupPosition, position)
	var materials []CharacterMaterialView
	index := map[string]int{}
	for _, r := range materialRows {
		i, ok := index[r.UUID]
		if !ok {
			i = len(materials)
			index[r.UUID] = i
			materials = append(materials, CharacterMaterialView{Summary: r.summary(), Depictions: []DepictionView{}})
		}
		materials[i].Depictions = append(materials[i].Depictions, DepictionView{
			DisplayName: r.DisplayName,
			Qualifier:   r.Qualifier,
			Group:       r.Group,
		})
	}
	sort.SliceStable(materials, func(i, j int) bool {
		return materials[i].Name < materials[j].Name
	})
	if materials == nil {
		materials = []CharacterMaterialView{}
	}

	performanceRows := append([]link(nil), c.list("productions")...)
	byPosition(performanceRows, castPosition, rolePosition)
	var order []link
	performers := map[string][]PerformerView{}
	seen := map[string]bool{}
	for _, r := range performanceRows {
		if !playsCharacter(r, n.Name, n.Differentiator) {
			continue
		}
		if _, ok := performers[r.UUID]; !ok {
			order = append(order, r)
			performers[r.UUID] = []PerformerView{}
		}
		if r.Performer == nil {
			continue
		}
		// One role can match several depictions of the character.
		role := fmt.Sprintf("%s/%d/%d", r.UUID, r.CastMemberPosition, rolePosition(r))
		if seen[role] {
			continue
		}
		seen[role] = true
		performers[r.UUID] = append(performers[r.UUID], PerformerView{
			Summary:     r.Performer.summary(),
			RoleName:    r.RoleName,
			Qualifier:   r.Qualifier,
			IsAlternate: r.IsAlternate,
		})
	}
	productions := make([]CharacterProductionView, 0, len(order))
	for _, p := range sortProductions(order) {
		productions = append(productions, CharacterProductionView{
			ProductionSummary: p.productionSummary(),
			Performers:        performers[p.UUID],
		})
	}

	return CharacterShowView{
		Summary:        n.summary(),
		Differentiator: n.Differentiator,
		Materials:      materials,
		Productions:    productions,
	}
}

func awardView(c *core) AwardShowView {
	ceremonies := dedupeByUUID(c.list("ceremonies"))
	sort.SliceStable(ceremonies, func(i, j int) bool {
		if ceremonies[i].Name != ceremonies[j].Name {
			return ceremonies[i].Name > ceremonies[j].Name
		}
		return ceremonies[i].UUID < ceremonies[j].UUID
	})
	return AwardShowView{
		Summary:        c.node.summary(),
		Differentiator: c.node.Differentiator,
		Ceremonies:     summaries(ceremonies),
	}
}

func ceremonyView(c *core) AwardCeremonyView {
	return AwardCeremonyView{
		Summary:    c.node.summary(),
		Award:      c.first("awards").summaryPtr(),
		Categories: ceremonyCategories(c.list("categories"), c.list("nominees")),
	}
}

// playsCharacter reports whether a cast role performs the character: the
// role or its character name is the character's name or the depicting
// material's display name for it, and qualifiers agree when both are given.
func playsCharacter(r link, name, differentiator string) bool {
	names := []string{r.RoleName, r.CharacterName}
	named := slices.Contains(names, name) || (r.DepictionName != "" && slices.Contains(names, r.DepictionName))
	if !named || r.CharacterDifferentiator != differentiator {
		return false
	}
	return r.Qualifier == "" || r.DepictionQualifier == "" || r.Qualifier == r.DepictionQualifier
}
