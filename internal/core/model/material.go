package model

import (
	"strconv"

	"github.com/agenthands/playbill/internal/core/dedupe"
)

const (
	minYear = -5000
	maxYear = 9999
)

type Material struct {
	Identity
	Format          string            `json:"format"`
	Year            string            `json:"year"`
	SubMaterials    []*Reference      `json:"subMaterials"`
	WritingCredits  []*WritingCredit  `json:"writingCredits"`
	CharacterGroups []*CharacterGroup `json:"characterGroups"`
}

// CharacterGroup is an optionally named run of characters, e.g. "The Montagues".
type CharacterGroup struct {
	Name       string                `json:"name"`
	Characters []*CharacterDepiction `json:"characters"`
	Errors     Errors                `json:"errors"`
}

// CharacterDepiction is one appearance of a character in a material. Name is
// the name used in this material; UnderlyingName, when set, is the name of
// the Character node being depicted.
type CharacterDepiction struct {
	Identity
	UnderlyingName string `json:"underlyingName"`
	Qualifier      string `json:"qualifier"`
}

func (m *Material) Kind() Kind { return KindMaterial }

func (m *Material) Children() []Child {
	children := referenceChildren("subMaterials", m.SubMaterials)
	for i, c := range m.WritingCredits {
		children = append(children, Child{Path: indexed("writingCredits", i), Node: c})
	}
	for i, g := range m.CharacterGroups {
		children = append(children, Child{Path: indexed("characterGroups", i), Node: g})
	}
	return children
}

func (m *Material) Prepare() {
	trim(&m.Name, &m.Differentiator, &m.Format, &m.Year)
	m.SubMaterials = prepareReferences(m.SubMaterials)

	credits := make([]*WritingCredit, 0, len(m.WritingCredits))
	for _, c := range m.WritingCredits {
		if c == nil {
			continue
		}
		c.prepare()
		credits = append(credits, c)
	}
	m.WritingCredits = credits

	groups := make([]*CharacterGroup, 0, len(m.CharacterGroups))
	for _, g := range m.CharacterGroups {
		if g == nil {
			continue
		}
		g.prepare()
		groups = append(groups, g)
	}
	m.CharacterGroups = groups
}

func (m *Material) Validate() {
	m.Identity.validate()
	validateString(&m.Errors, "format", m.Format, false)
	if m.Year != "" {
		if _, ok := parseYear(m.Year); !ok {
			m.Errors.Add("year", MsgInvalidYear)
		}
	}
	validateReferences(m.SubMaterials, &m.Identity)
	validateWritingCredits(m.WritingCredits, &m.Identity)
	for _, g := range m.CharacterGroups {
		if g.Blank() {
			continue
		}
		g.validate()
	}
}

func parseYear(s string) (int, bool) {
	year, err := strconv.Atoi(s)
	if err != nil || year < minYear || year > maxYear {
		return 0, false
	}
	return year, true
}

func (g *CharacterGroup) ErrorMap() *Errors { return &g.Errors }

func (g *CharacterGroup) Children() []Child {
	children := make([]Child, 0, len(g.Characters))
	for i, c := range g.Characters {
		children = append(children, Child{Path: indexed("characters", i), Node: c})
	}
	return children
}

func (g *CharacterGroup) Blank() bool {
	if g.Name != "" {
		return false
	}
	for _, c := range g.Characters {
		if !c.Blank() {
			return false
		}
	}
	return true
}

func (g *CharacterGroup) prepare() {
	trim(&g.Name)
	characters := make([]*CharacterDepiction, 0, len(g.Characters))
	for _, c := range g.Characters {
		if c == nil {
			continue
		}
		trim(&c.Name, &c.UnderlyingName, &c.Differentiator, &c.Qualifier)
		characters = append(characters, c)
	}
	g.Characters = characters
}

func (g *CharacterGroup) validate() {
	validateString(&g.Errors, "name", g.Name, false)

	keys := make([]string, len(g.Characters))
	errs := make([]*Errors, len(g.Characters))
	for i, c := range g.Characters {
		errs[i] = &c.Errors
		if c.Blank() {
			continue
		}
		keys[i] = dedupe.Key(c.Name, c.UnderlyingName, c.Differentiator, c.Qualifier)
		c.validate()
	}
	markDuplicates(errs, keys, "name", "underlyingName", "differentiator", "qualifier")
}

func (c *CharacterDepiction) Children() []Child { return nil }

func (c *CharacterDepiction) Blank() bool {
	return c.Name == "" && c.UnderlyingName == "" && c.Differentiator == "" && c.Qualifier == ""
}

func (c *CharacterDepiction) validate() {
	validateString(&c.Errors, "name", c.Name, true)
	validateString(&c.Errors, "underlyingName", c.UnderlyingName, false)
	validateString(&c.Errors, "differentiator", c.Differentiator, false)
	validateString(&c.Errors, "qualifier", c.Qualifier, false)
	if c.UnderlyingName != "" && c.UnderlyingName == c.Name {
		c.Errors.Add("underlyingName", MsgUnderlyingNameSame)
	}
}

// characterName is the name of the Character node this depiction points at.
func (c *CharacterDepiction) characterName() string {
	if c.UnderlyingName != "" {
		return c.UnderlyingName
	}
	return c.Name
}

func (c *CharacterDepiction) displayName() interface{} {
	if c.UnderlyingName != "" {
		return c.Name
	}
	return nil
}

func (m *Material) Params(newUUID func() string) map[string]interface{} {
	alloc := newAllocator(newUUID)
	alloc.register(KindMaterial, &m.Identity)

	props := identityProps(&m.Identity)
	props["format"] = nullable(m.Format)
	if year, ok := parseYear(m.Year); ok {
		props["year"] = year
	} else {
		props["year"] = nil
	}

	params := map[string]interface{}{
		"uuid":         m.UUID,
		"props":        props,
		"subMaterials": positionedRows(alloc, KindMaterial, m.SubMaterials),
	}

	var people, companies, materials []map[string]interface{}
	creditPosition := 0
	for _, c := range m.WritingCredits {
		if c.Blank() {
			continue
		}
		entityPosition := 0
		for _, e := range c.Entities {
			if e.Blank() {
				continue
			}
			row := alloc.row(e.Kind, &e.Identity)
			row["creditPosition"] = creditPosition
			row["entityPosition"] = entityPosition
			row["credit"] = nullable(c.Name)
			row["creditType"] = nullable(c.CreditType)
			switch e.Kind {
			case KindCompany:
				companies = append(companies, row)
			case KindMaterial:
				materials = append(materials, row)
			default:
				people = append(people, row)
			}
			entityPosition++
		}
		creditPosition++
	}
	params["writingPeople"] = rowsOrEmpty(people)
	params["writingCompanies"] = rowsOrEmpty(companies)
	params["writingMaterials"] = rowsOrEmpty(materials)

	var characters []map[string]interface{}
	groupPosition := 0
	for _, g := range m.CharacterGroups {
		if g.Blank() {
			continue
		}
		position := 0
		for _, c := range g.Characters {
			if c.Blank() {
				continue
			}
			row := alloc.row(KindCharacter, &Identity{
				Base:           Base{Name: c.characterName()},
				Differentiator: c.Differentiator,
			})
			row["groupPosition"] = groupPosition
			row["group"] = nullable(g.Name)
			row["position"] = position
			row["displayName"] = c.displayName()
			row["qualifier"] = nullable(c.Qualifier)
			characters = append(characters, row)
			position++
		}
		groupPosition++
	}
	params["characters"] = rowsOrEmpty(characters)

	return params
}
