package model

import "github.com/agenthands/playbill/internal/core/dedupe"

// AwardCeremony is unique per (award, name) rather than by differentiator.
type AwardCeremony struct {
	Base
	Award      *Reference  `json:"award"`
	Categories []*Category `json:"categories"`
}

type Category struct {
	Name        string        `json:"name"`
	Nominations []*Nomination `json:"nominations"`
	Errors      Errors        `json:"errors"`
}

type Nomination struct {
	IsWinner    bool             `json:"isWinner"`
	CustomType  string           `json:"customType"`
	Entities    []*CreditEntity  `json:"entities"`
	Productions []*ProductionRef `json:"productions"`
	Materials   []*Reference     `json:"materials"`
	Errors      Errors           `json:"errors"`
}

func (c *AwardCeremony) Kind() Kind { return KindAwardCeremony }

func (c *AwardCeremony) Children() []Child {
	var children []Child
	if c.Award != nil {
		children = append(children, Child{Path: "award", Node: c.Award})
	}
	for i, cat := range c.Categories {
		children = append(children, Child{Path: indexed("categories", i), Node: cat})
	}
	return children
}

func (c *AwardCeremony) Prepare() {
	trim(&c.Name)
	if c.Award == nil {
		c.Award = &Reference{}
	}
	c.Award.prepare()
	categories := make([]*Category, 0, len(c.Categories))
	for _, cat := range c.Categories {
		if cat == nil {
			continue
		}
		cat.prepare()
		categories = append(categories, cat)
	}
	c.Categories = categories
}

func (c *AwardCeremony) Validate() {
	validateString(&c.Errors, "name", c.Name, true)
	validateString(&c.Award.Errors, "name", c.Award.Name, true)
	validateString(&c.Award.Errors, "differentiator", c.Award.Differentiator, false)

	keys := make([]string, len(c.Categories))
	errs := make([]*Errors, len(c.Categories))
	for i, cat := range c.Categories {
		errs[i] = &cat.Errors
		if cat.Blank() {
			continue
		}
		keys[i] = dedupe.Key(cat.Name)
		cat.validate()
	}
	markDuplicates(errs, keys, "name")
}

func (cat *Category) ErrorMap() *Errors { return &cat.Errors }

func (cat *Category) Children() []Child {
	children := make([]Child, 0, len(cat.Nominations))
	for i, n := range cat.Nominations {
		children = append(children, Child{Path: indexed("nominations", i), Node: n})
	}
	return children
}

func (cat *Category) Blank() bool {
	if cat.Name != "" {
		return false
	}
	for _, n := range cat.Nominations {
		if !n.Blank() {
			return false
		}
	}
	return true
}

func (cat *Category) prepare() {
	trim(&cat.Name)
	nominations := make([]*Nomination, 0, len(cat.Nominations))
	for _, n := range cat.Nominations {
		if n == nil {
			continue
		}
		n.prepare()
		nominations = append(nominations, n)
	}
	cat.Nominations = nominations
}

func (cat *Category) validate() {
	hasNominations := false
	for _, n := range cat.Nominations {
		if !n.Blank() {
			hasNominations = true
		}
	}
	if cat.Name == "" && hasNominations {
		cat.Errors.Add("name", MsgNameRequired)
	} else {
		validateString(&cat.Errors, "name", cat.Name, true)
	}
	for _, n := range cat.Nominations {
		if n.Blank() {
			continue
		}
		n.validate()
	}
}

func (n *Nomination) ErrorMap() *Errors { return &n.Errors }

func (n *Nomination) Children() []Child {
	children := creditEntityChildren("entities", n.Entities)
	children = append(children, productionRefChildren("productions", n.Productions)...)
	return append(children, referenceChildren("materials", n.Materials)...)
}

func (n *Nomination) Blank() bool {
	if n.IsWinner || n.CustomType != "" || !allBlank(n.Entities) {
		return false
	}
	for _, p := range n.Productions {
		if !p.Blank() {
			return false
		}
	}
	for _, m := range n.Materials {
		if !m.Blank() {
			return false
		}
	}
	return true
}

func (n *Nomination) prepare() {
	trim(&n.CustomType)
	n.Entities = prepareCreditEntities(n.Entities)
	n.Productions = prepareProductionRefs(n.Productions)
	n.Materials = prepareReferences(n.Materials)
}

func (n *Nomination) validate() {
	validateString(&n.Errors, "customType", n.CustomType, false)
	validateCreditEntities(n.Entities, creditEntityKinds, nil)
	validateProductionRefs(n.Productions, "")
	validateReferences(n.Materials, nil)
}

func (c *AwardCeremony) Params(newUUID func() string) map[string]interface{} {
	alloc := newAllocator(newUUID)

	params := map[string]interface{}{
		"uuid":  c.UUID,
		"props": baseProps(&c.Base),
		"award": optionalRow(alloc, KindAward, c.Award),
	}

	categories := make([]map[string]interface{}, 0, len(c.Categories))
	nominees := &entityRows{}
	productions := make([]map[string]interface{}, 0)
	materials := make([]map[string]interface{}, 0)
	for _, cat := range c.Categories {
		if cat.Blank() {
			continue
		}
		categoryUUID := newUUID()
		categories = append(categories, map[string]interface{}{
			"uuid":     categoryUUID,
			"name":     cat.Name,
			"position": len(categories),
		})

		nominationPosition := 0
		for _, n := range cat.Nominations {
			if n.Blank() {
				continue
			}
			base := map[string]interface{}{
				"categoryUuid":       categoryUUID,
				"nominationPosition": nominationPosition,
				"isWinner":           n.IsWinner,
				"customType":         nullable(n.CustomType),
			}
			entityPosition := 0
			for _, e := range n.Entities {
				if e.Blank() {
					continue
				}
				nominees.add(alloc, e, base, entityPosition)
				entityPosition++
			}
			productionPosition := 0
			for _, p := range n.Productions {
				if p.Blank() {
					continue
				}
				row := map[string]interface{}{"uuid": p.UUID, "productionPosition": productionPosition}
				for k, v := range base {
					row[k] = v
				}
				productions = append(productions, row)
				productionPosition++
			}
			materialPosition := 0
			for _, m := range n.Materials {
				if m.Blank() {
					continue
				}
				row := alloc.row(KindMaterial, &m.Identity)
				row["materialPosition"] = materialPosition
				for k, v := range base {
					row[k] = v
				}
				materials = append(materials, row)
				materialPosition++
			}
			nominationPosition++
		}
	}

	params["categories"] = categories
	nominees.into(params, "nominee")
	params["nomineeProductions"] = productions
	params["nomineeMaterials"] = materials
	return params
}
