package projection

import (
	"fmt"
	"sort"

	"github.com/agenthands/playbill/internal/core/common"
	"github.com/agenthands/playbill/internal/core/model"
)

// link is one collected row: a linked node's summary fields together with
// the properties of the relationship that reached it. Absent properties
// decode to zero values.
type link struct {
	Kind           string `json:"kind"`
	UUID           string `json:"uuid"`
	Name           string `json:"name"`
	Differentiator string `json:"differentiator"`

	Format    string `json:"format"`
	Year      *int   `json:"year"`
	StartDate string `json:"startDate"`
	PressDate string `json:"pressDate"`
	EndDate   string `json:"endDate"`

	Venue     *link `json:"venue"`
	SurVenue  *link `json:"surVenue"`
	Award     *link `json:"award"`
	Employer  *link `json:"employer"`
	Member    *link `json:"member"`
	Performer *link `json:"performer"`

	Position           int  `json:"position"`
	CreditPosition     int  `json:"creditPosition"`
	EntityPosition     int  `json:"entityPosition"`
	MemberPosition     *int `json:"memberPosition"`
	GroupPosition      int  `json:"groupPosition"`
	CastMemberPosition int  `json:"castMemberPosition"`
	RolePosition       *int `json:"rolePosition"`
	NominationPosition int  `json:"nominationPosition"`
	ProductionPosition int  `json:"productionPosition"`
	MaterialPosition   int  `json:"materialPosition"`

	Credit                  string `json:"credit"`
	CreditType              string `json:"creditType"`
	CreditedCompanyUUID     string `json:"creditedCompanyUuid"`
	Group                   string `json:"group"`
	DisplayName             string `json:"displayName"`
	Qualifier               string `json:"qualifier"`
	RoleName                string `json:"roleName"`
	CharacterName           string `json:"characterName"`
	CharacterDifferentiator string `json:"characterDifferentiator"`
	IsAlternate             bool   `json:"isAlternate"`
	DepictionName           string `json:"depictionName"`
	DepictionQualifier      string `json:"depictionQualifier"`

	CategoryUUID         string `json:"categoryUuid"`
	NominatedCompanyUUID string `json:"nominatedCompanyUuid"`
	IsWinner             bool   `json:"isWinner"`
	CustomType           string `json:"customType"`
}

// core is the decoded single row of a core query.
type core struct {
	node  link
	lists map[string][]link
}

func decodeCore(k model.Kind, row map[string]interface{}) (*core, error) {
	node, err := common.Decode[link](row["node"])
	if err != nil {
		return nil, err
	}
	node.Kind = string(k)

	c := &core{node: node, lists: make(map[string][]link)}
	for _, s := range stagesFor(k) {
		items, err := common.Decode[[]link](row[s.name])
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", s.name, err)
		}
		c.lists[s.name] = items
	}
	return c, nil
}

func (c *core) list(name string) []link {
	return c.lists[name]
}

// first returns the single item of a to-one stage, or nil.
func (c *core) first(name string) *link {
	items := c.lists[name]
	if len(items) == 0 {
		return nil
	}
	l := items[0]
	return &l
}

func (l link) summary() Summary {
	return Summary{Kind: l.Kind, UUID: l.UUID, Name: l.Name}
}

func (l *link) summaryPtr() *Summary {
	if l == nil {
		return nil
	}
	s := l.summary()
	return &s
}

func (l link) productionSummary() ProductionSummary {
	return ProductionSummary{
		Summary:   l.summary(),
		StartDate: l.StartDate,
		EndDate:   l.EndDate,
		Venue:     l.Venue.venueSummary(),
	}
}

func (l *link) venueSummary() *VenueSummary {
	if l == nil {
		return nil
	}
	return &VenueSummary{Summary: l.summary(), SurVenue: l.SurVenue.summaryPtr()}
}

func (l link) reference() *model.Reference {
	return &model.Reference{Identity: l.identity()}
}

func (l link) identity() model.Identity {
	return model.Identity{Base: model.Base{UUID: l.UUID, Name: l.Name}, Differentiator: l.Differentiator}
}

func memberPosition(l link) int {
	if l.MemberPosition == nil {
		return -1
	}
	return *l.MemberPosition
}

func rolePosition(l link) int {
	if l.RolePosition == nil {
		return -1
	}
	return *l.RolePosition
}

// byPosition sorts items by the given keys, falling back to name then uuid
// so that equal positions never depend on store scan order.
func byPosition(items []link, keys ...func(link) int) {
	sort.SliceStable(items, func(i, j int) bool {
		for _, key := range keys {
			a, b := key(items[i]), key(items[j])
			if a != b {
				return a < b
			}
		}
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].UUID < items[j].UUID
	})
}

func byName(items []link) {
	byPosition(items)
}

func position(l link) int           { return l.Position }
func creditPosition(l link) int     { return l.CreditPosition }
func entityPosition(l link) int     { return l.EntityPosition }
func groupPosition(l link) int      { return l.GroupPosition }
func castPosition(l link) int       { return l.CastMemberPosition }
func nominationPosition(l link) int { return l.NominationPosition }

func dedupeByUUID(items []link) []link {
	seen := map[string]bool{}
	out := make([]link, 0, len(items))
	for _, l := range items {
		if seen[l.UUID] {
			continue
		}
		seen[l.UUID] = true
		out = append(out, l)
	}
	return out
}
