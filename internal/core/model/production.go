package model

import (
	"time"

	"github.com/agenthands/playbill/internal/core/dedupe"
)

const dateLayout = "2006-01-02"

// Production is identified by uuid alone; it has no differentiator.
type Production struct {
	Base
	StartDate       string              `json:"startDate"`
	PressDate       string              `json:"pressDate"`
	EndDate         string              `json:"endDate"`
	Material        *Reference          `json:"material"`
	Venue           *Reference          `json:"venue"`
	SubProductions  []*ProductionRef    `json:"subProductions"`
	Cast            []*CastMember       `json:"cast"`
	ProducerCredits []*ProductionCredit `json:"producerCredits"`
	CreativeCredits []*ProductionCredit `json:"creativeCredits"`
	CrewCredits     []*ProductionCredit `json:"crewCredits"`
}

type CastMember struct {
	Identity
	Roles []*Role `json:"roles"`
}

type Role struct {
	Name                    string `json:"name"`
	CharacterName           string `json:"characterName"`
	CharacterDifferentiator string `json:"characterDifferentiator"`
	Qualifier               string `json:"qualifier"`
	IsAlternate             bool   `json:"isAlternate"`
	Errors                  Errors `json:"errors"`
}

func (p *Production) Kind() Kind { return KindProduction }

func (p *Production) Children() []Child {
	var children []Child
	if p.Material != nil {
		children = append(children, Child{Path: "material", Node: p.Material})
	}
	if p.Venue != nil {
		children = append(children, Child{Path: "venue", Node: p.Venue})
	}
	children = append(children, productionRefChildren("subProductions", p.SubProductions)...)
	for i, m := range p.Cast {
		children = append(children, Child{Path: indexed("cast", i), Node: m})
	}
	for _, group := range []struct {
		path    string
		credits []*ProductionCredit
	}{
		{"producerCredits", p.ProducerCredits},
		{"creativeCredits", p.CreativeCredits},
		{"crewCredits", p.CrewCredits},
	} {
		for i, c := range group.credits {
			children = append(children, Child{Path: indexed(group.path, i), Node: c})
		}
	}
	return children
}

func (p *Production) Prepare() {
	trim(&p.Name, &p.StartDate, &p.PressDate, &p.EndDate)
	if p.Material == nil {
		p.Material = &Reference{}
	}
	if p.Venue == nil {
		p.Venue = &Reference{}
	}
	p.Material.prepare()
	p.Venue.prepare()
	p.SubProductions = prepareProductionRefs(p.SubProductions)

	cast := make([]*CastMember, 0, len(p.Cast))
	for _, m := range p.Cast {
		if m == nil {
			continue
		}
		m.prepare()
		cast = append(cast, m)
	}
	p.Cast = cast

	p.ProducerCredits = prepareProductionCredits(p.ProducerCredits)
	p.CreativeCredits = prepareProductionCredits(p.CreativeCredits)
	p.CrewCredits = prepareProductionCredits(p.CrewCredits)
}

func prepareProductionCredits(credits []*ProductionCredit) []*ProductionCredit {
	out := make([]*ProductionCredit, 0, len(credits))
	for _, c := range credits {
		if c == nil {
			continue
		}
		c.prepare()
		out = append(out, c)
	}
	return out
}

func (p *Production) Validate() {
	validateString(&p.Errors, "name", p.Name, true)
	p.validateDates()
	if !p.Material.Blank() {
		p.Material.validate()
	}
	if !p.Venue.Blank() {
		p.Venue.validate()
	}
	validateProductionRefs(p.SubProductions, p.UUID)

	keys := make([]string, len(p.Cast))
	errs := make([]*Errors, len(p.Cast))
	for i, m := range p.Cast {
		errs[i] = &m.Errors
		if m.Blank() {
			continue
		}
		keys[i] = dedupe.Key(m.Name, m.Differentiator)
		m.validate()
	}
	markDuplicates(errs, keys, "name", "differentiator")

	validateProductionCredits(p.ProducerCredits, false)
	validateProductionCredits(p.CreativeCredits, true)
	validateProductionCredits(p.CrewCredits, true)
}

func (p *Production) validateDates() {
	dates := map[string]time.Time{}
	for field, value := range map[string]string{
		"startDate": p.StartDate,
		"pressDate": p.PressDate,
		"endDate":   p.EndDate,
	} {
		if value == "" {
			continue
		}
		t, err := time.Parse(dateLayout, value)
		if err != nil {
			p.Errors.Add(field, MsgInvalidDate)
			continue
		}
		dates[field] = t
	}
	start, hasStart := dates["startDate"]
	end, hasEnd := dates["endDate"]
	if hasStart && hasEnd && start.After(end) {
		p.Errors.Add("startDate", MsgStartAfterEnd)
		p.Errors.Add("endDate", MsgStartAfterEnd)
	}
}

func (m *CastMember) Children() []Child {
	children := make([]Child, 0, len(m.Roles))
	for i, r := range m.Roles {
		children = append(children, Child{Path: indexed("roles", i), Node: r})
	}
	return children
}

func (m *CastMember) Blank() bool {
	if m.Name != "" || m.Differentiator != "" {
		return false
	}
	for _, r := range m.Roles {
		if !r.Blank() {
			return false
		}
	}
	return true
}

func (m *CastMember) prepare() {
	trim(&m.Name, &m.Differentiator)
	roles := make([]*Role, 0, len(m.Roles))
	for _, r := range m.Roles {
		if r == nil {
			continue
		}
		trim(&r.Name, &r.CharacterName, &r.CharacterDifferentiator, &r.Qualifier)
		roles = append(roles, r)
	}
	m.Roles = roles
}

func (m *CastMember) validate() {
	hasNamed := false
	for _, r := range m.Roles {
		if r.Name != "" {
			hasNamed = true
		}
	}
	if m.Name == "" && hasNamed {
		m.Errors.Add("name", MsgNameRequired)
	} else {
		validateString(&m.Errors, "name", m.Name, true)
	}
	validateString(&m.Errors, "differentiator", m.Differentiator, false)

	keys := make([]string, len(m.Roles))
	errs := make([]*Errors, len(m.Roles))
	for i, r := range m.Roles {
		errs[i] = &r.Errors
		if r.Blank() {
			continue
		}
		keys[i] = dedupe.Key(r.Name, r.CharacterName, r.CharacterDifferentiator, r.Qualifier)
		r.validate()
	}
	markDuplicates(errs, keys, "name", "characterName", "characterDifferentiator", "qualifier")
}

func (r *Role) ErrorMap() *Errors { return &r.Errors }

func (r *Role) Children() []Child { return nil }

func (r *Role) Blank() bool {
	return r.Name == "" && r.CharacterName == "" && r.CharacterDifferentiator == "" && r.Qualifier == ""
}

func (r *Role) validate() {
	if r.Name == "" && r.CharacterName != "" {
		r.Errors.Add("name", MsgNameRequired)
	} else {
		validateString(&r.Errors, "name", r.Name, true)
	}
	validateString(&r.Errors, "characterName", r.CharacterName, false)
	validateString(&r.Errors, "characterDifferentiator", r.CharacterDifferentiator, false)
	validateString(&r.Errors, "qualifier", r.Qualifier, false)
	if r.CharacterName != "" && r.CharacterName == r.Name {
		r.Errors.Add("characterName", MsgCharacterNameSame)
	}
}

func (p *Production) Params(newUUID func() string) map[string]interface{} {
	alloc := newAllocator(newUUID)

	props := baseProps(&p.Base)
	props["startDate"] = nullable(p.StartDate)
	props["pressDate"] = nullable(p.PressDate)
	props["endDate"] = nullable(p.EndDate)

	params := map[string]interface{}{
		"uuid":     p.UUID,
		"props":    props,
		"material": optionalRow(alloc, KindMaterial, p.Material),
		"venue":    optionalRow(alloc, KindVenue, p.Venue),
	}

	subs := make([]map[string]interface{}, 0, len(p.SubProductions))
	for _, s := range p.SubProductions {
		if s.Blank() {
			continue
		}
		subs = append(subs, map[string]interface{}{"uuid": s.UUID, "position": len(subs)})
	}
	params["subProductions"] = subs

	cast := make([]map[string]interface{}, 0, len(p.Cast))
	castMemberPosition := 0
	for _, m := range p.Cast {
		if m.Blank() {
			continue
		}
		rolePosition := 0
		for _, r := range m.Roles {
			if r.Blank() {
				continue
			}
			row := alloc.row(KindPerson, &m.Identity)
			row["castMemberPosition"] = castMemberPosition
			row["rolePosition"] = rolePosition
			row["roleName"] = nullable(r.Name)
			row["characterName"] = nullable(r.CharacterName)
			row["characterDifferentiator"] = nullable(r.CharacterDifferentiator)
			row["qualifier"] = nullable(r.Qualifier)
			row["isAlternate"] = r.IsAlternate
			cast = append(cast, row)
			rolePosition++
		}
		if rolePosition == 0 {
			row := alloc.row(KindPerson, &m.Identity)
			row["castMemberPosition"] = castMemberPosition
			row["rolePosition"] = nil
			row["roleName"] = nil
			row["characterName"] = nil
			row["characterDifferentiator"] = nil
			row["qualifier"] = nil
			row["isAlternate"] = nil
			cast = append(cast, row)
		}
		castMemberPosition++
	}
	params["cast"] = cast

	creditParams(alloc, p.ProducerCredits).into(params, "producer")
	creditParams(alloc, p.CreativeCredits).into(params, "creative")
	creditParams(alloc, p.CrewCredits).into(params, "crew")

	return params
}

func creditParams(alloc *allocator, credits []*ProductionCredit) *entityRows {
	rows := &entityRows{}
	creditPosition := 0
	for _, c := range credits {
		if c.Blank() {
			continue
		}
		base := map[string]interface{}{
			"creditPosition": creditPosition,
			"credit":         nullable(c.Name),
		}
		entityPosition := 0
		for _, e := range c.Entities {
			if e.Blank() {
				continue
			}
			rows.add(alloc, e, base, entityPosition)
			entityPosition++
		}
		creditPosition++
	}
	return rows
}
