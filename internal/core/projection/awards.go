package projection

import (
	"sort"

	"github.com/agenthands/playbill/internal/core/common"
	"github.com/agenthands/playbill/internal/core/model"
)

// awardRow is one (holder, nomination) row of an awards query.
type awardRow struct {
	Award              link   `json:"award"`
	Ceremony           link   `json:"ceremony"`
	Category           link   `json:"category"`
	NominationPosition int    `json:"nominationPosition"`
	IsWinner           bool   `json:"isWinner"`
	CustomType         string `json:"customType"`
	ViaCompanyUUID     string `json:"viaCompanyUuid"`
	HolderUUID         string `json:"holderUuid"`
	Nominees           []link `json:"nominees"`
}

func decodeAwardRows(rows []map[string]interface{}) ([]awardRow, error) {
	out := make([]awardRow, 0, len(rows))
	for _, r := range rows {
		ar, err := common.Decode[awardRow](r)
		if err != nil {
			return nil, err
		}
		out = append(out, ar)
	}
	return out, nil
}

type nomineeGroup struct {
	entities    []*entityGroup
	productions []link
	materials   []link
}

// groupNominees splits one nomination's nominees by kind, each list in its
// stored order, with credited members attached to their company.
func groupNominees(rows []link) nomineeGroup {
	var g nomineeGroup
	var entityRows []link
	for _, r := range rows {
		switch model.Kind(r.Kind) {
		case model.KindProduction:
			g.productions = append(g.productions, r)
		case model.KindMaterial:
			g.materials = append(g.materials, r)
		default:
			entityRows = append(entityRows, r)
		}
	}
	byPosition(g.productions, func(l link) int { return l.ProductionPosition })
	byPosition(g.materials, func(l link) int { return l.MaterialPosition })
	byPosition(entityRows, entityPosition, memberPosition)

	index := map[int]*entityGroup{}
	for _, r := range entityRows {
		if r.MemberPosition == nil {
			e := &entityGroup{entity: r}
			index[r.EntityPosition] = e
			g.entities = append(g.entities, e)
			continue
		}
		if e, ok := index[r.EntityPosition]; ok {
			e.members = append(e.members, r)
		}
	}
	return g
}

func nominationType(isWinner bool, customType string) string {
	if customType != "" {
		return customType
	}
	if isWinner {
		return "Winner"
	}
	return "Nomination"
}

// view renders the nomination, leaving out the node with uuid exclude.
func (g nomineeGroup) view(exclude string) NominationView {
	var entities []*entityGroup
	for _, e := range g.entities {
		if e.entity.UUID != exclude {
			entities = append(entities, e)
		}
	}
	productions := make([]ProductionSummary, 0, len(g.productions))
	for _, p := range g.productions {
		if p.UUID != exclude {
			productions = append(productions, p.productionSummary())
		}
	}
	materials := make([]Summary, 0, len(g.materials))
	for _, m := range g.materials {
		if m.UUID != exclude {
			materials = append(materials, m.summary())
		}
	}
	return NominationView{Entities: entityViews(entities), Productions: productions, Materials: materials}
}

func (g nomineeGroup) find(uuid string) *Summary {
	for _, e := range g.entities {
		if e.entity.UUID == uuid {
			s := e.entity.summary()
			return &s
		}
	}
	for _, l := range append(append([]link(nil), g.productions...), g.materials...) {
		if l.UUID == uuid {
			s := l.summary()
			return &s
		}
	}
	return nil
}

func recipientField(k model.Kind) string {
	switch k {
	case model.KindProduction:
		return "recipientProduction"
	case model.KindMaterial:
		return "recipientMaterial"
	case model.KindPerson:
		return "recipientCompany"
	default:
		return ""
	}
}

type nominationKey struct {
	category string
	position int
}

// resolveAwards builds the awards section of the view of node self. A
// nomination reached through several tiers is attributed to self when self
// holds it; otherwise the holding tier becomes the recipient and is left
// out of the co-nominee lists.
func resolveAwards(k model.Kind, self string, rows []awardRow) []AwardView {
	candidates := map[nominationKey][]awardRow{}
	var keys []nominationKey
	for _, r := range rows {
		key := nominationKey{category: r.Category.UUID, position: r.NominationPosition}
		if _, ok := candidates[key]; !ok {
			keys = append(keys, key)
		}
		candidates[key] = append(candidates[key], r)
	}

	tree := newAwardTree()
	for _, key := range keys {
		row := pickHolder(self, candidates[key])
		group := groupNominees(row.Nominees)

		var nv NominationView
		var recipient *Summary
		switch {
		case k == model.KindPerson && row.ViaCompanyUUID != "":
			recipient = group.find(row.ViaCompanyUUID)
			nv = group.view(row.ViaCompanyUUID)
		case row.HolderUUID == self:
			nv = group.view(self)
		default:
			recipient = group.find(row.HolderUUID)
			nv = group.view(row.HolderUUID)
		}
		nv.IsWinner = row.IsWinner
		nv.Type = nominationType(row.IsWinner, row.CustomType)
		nv.RecipientField = recipientField(k)
		nv.Recipient = recipient

		tree.add(row.Award, row.Ceremony, row.Category, row.NominationPosition, nv)
	}
	return tree.views()
}

func pickHolder(self string, rows []awardRow) awardRow {
	sort.SliceStable(rows, func(i, j int) bool {
		si, sj := rows[i].HolderUUID == self, rows[j].HolderUUID == self
		if si != sj {
			return si
		}
		di, dj := rows[i].ViaCompanyUUID == "", rows[j].ViaCompanyUUID == ""
		if di != dj {
			return di
		}
		return rows[i].HolderUUID < rows[j].HolderUUID
	})
	return rows[0]
}

// awardTree accumulates nominations and emits them ordered: awards by
// name, ceremonies by name descending, categories and nominations by
// stored position.
type awardTree struct {
	awards map[string]*awardNode
}

type awardNode struct {
	award      link
	ceremonies map[string]*ceremonyNode
}

type ceremonyNode struct {
	ceremony   link
	categories map[string]*categoryNode
}

type categoryNode struct {
	category    link
	nominations map[int]NominationView
}

func newAwardTree() *awardTree {
	return &awardTree{awards: map[string]*awardNode{}}
}

func (t *awardTree) add(award, ceremony, category link, position int, nv NominationView) {
	a, ok := t.awards[award.UUID]
	if !ok {
		a = &awardNode{award: award, ceremonies: map[string]*ceremonyNode{}}
		t.awards[award.UUID] = a
	}
	c, ok := a.ceremonies[ceremony.UUID]
	if !ok {
		c = &ceremonyNode{ceremony: ceremony, categories: map[string]*categoryNode{}}
		a.ceremonies[ceremony.UUID] = c
	}
	cat, ok := c.categories[category.UUID]
	if !ok {
		cat = &categoryNode{category: category, nominations: map[int]NominationView{}}
		c.categories[category.UUID] = cat
	}
	cat.nominations[position] = nv
}

func (t *awardTree) views() []AwardView {
	awards := make([]*awardNode, 0, len(t.awards))
	for _, a := range t.awards {
		awards = append(awards, a)
	}
	sort.Slice(awards, func(i, j int) bool {
		return lessByName(awards[i].award, awards[j].award)
	})

	views := make([]AwardView, 0, len(awards))
	for _, a := range awards {
		ceremonies := make([]*ceremonyNode, 0, len(a.ceremonies))
		for _, c := range a.ceremonies {
			ceremonies = append(ceremonies, c)
		}
		sort.Slice(ceremonies, func(i, j int) bool {
			ci, cj := ceremonies[i].ceremony, ceremonies[j].ceremony
			if ci.Name != cj.Name {
				return ci.Name > cj.Name
			}
			return ci.UUID < cj.UUID
		})

		av := AwardView{Summary: a.award.summary(), Ceremonies: make([]CeremonyAwardsView, 0, len(ceremonies))}
		av.Kind = string(model.KindAward)
		for _, c := range ceremonies {
			cv := CeremonyAwardsView{Summary: c.ceremony.summary()}
			cv.Kind = string(model.KindAwardCeremony)
			cv.Categories = c.categoryViews()
			av.Ceremonies = append(av.Ceremonies, cv)
		}
		views = append(views, av)
	}
	return views
}

func (c *ceremonyNode) categoryViews() []CategoryView {
	categories := make([]*categoryNode, 0, len(c.categories))
	for _, cat := range c.categories {
		categories = append(categories, cat)
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].category.Position != categories[j].category.Position {
			return categories[i].category.Position < categories[j].category.Position
		}
		return categories[i].category.UUID < categories[j].category.UUID
	})

	views := make([]CategoryView, 0, len(categories))
	for _, cat := range categories {
		positions := make([]int, 0, len(cat.nominations))
		for p := range cat.nominations {
			positions = append(positions, p)
		}
		sort.Ints(positions)
		nominations := make([]NominationView, 0, len(positions))
		for _, p := range positions {
			nominations = append(nominations, cat.nominations[p])
		}
		views = append(views, CategoryView{Name: cat.category.Name, Nominations: nominations})
	}
	return views
}

func lessByName(a, b link) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.UUID < b.UUID
}

// ceremonyCategories builds an award ceremony's own categories; nominations
// there carry no recipient.
func ceremonyCategories(categories, nominees []link) []CategoryView {
	categories = append([]link(nil), categories...)
	byPosition(categories, position)

	byCategory := map[string]map[int][]link{}
	for _, n := range nominees {
		if byCategory[n.CategoryUUID] == nil {
			byCategory[n.CategoryUUID] = map[int][]link{}
		}
		byCategory[n.CategoryUUID][n.NominationPosition] = append(byCategory[n.CategoryUUID][n.NominationPosition], n)
	}

	views := make([]CategoryView, 0, len(categories))
	for _, cat := range categories {
		nominations := byCategory[cat.UUID]
		positions := make([]int, 0, len(nominations))
		for p := range nominations {
			positions = append(positions, p)
		}
		sort.Ints(positions)

		cv := CategoryView{Name: cat.Name, Nominations: make([]NominationView, 0, len(positions))}
		for _, p := range positions {
			rows := nominations[p]
			nv := groupNominees(rows).view("")
			nv.IsWinner = rows[0].IsWinner
			nv.Type = nominationType(rows[0].IsWinner, rows[0].CustomType)
			cv.Nominations = append(cv.Nominations, nv)
		}
		views = append(views, cv)
	}
	return views
}
