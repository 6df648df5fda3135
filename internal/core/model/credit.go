package model

import (
	"github.com/agenthands/playbill/internal/core/dedupe"
)

// CreditEntity is one participant in a credit or nomination. Kind
// discriminates Person, Company and (for writing credits) Material;
// only companies carry credited members.
type CreditEntity struct {
	Kind Kind `json:"kind"`
	Identity
	CreditedMembers []*Reference `json:"creditedMembers,omitempty"`
}

func (e *CreditEntity) Children() []Child {
	return referenceChildren("creditedMembers", e.CreditedMembers)
}

func (e *CreditEntity) Blank() bool {
	if e.Name != "" || e.Differentiator != "" {
		return false
	}
	for _, m := range e.CreditedMembers {
		if !m.Blank() {
			return false
		}
	}
	return true
}

func (e *CreditEntity) key() string {
	return dedupe.Key(string(e.Kind), e.Name, e.Differentiator)
}

func (e *CreditEntity) prepare() {
	trim(&e.Name, &e.Differentiator)
	if e.Kind == "" {
		e.Kind = KindPerson
	}
	if e.Kind == KindCompany {
		e.CreditedMembers = prepareReferences(e.CreditedMembers)
	} else {
		e.CreditedMembers = nil
	}
}

func (e *CreditEntity) hasNamedMembers() bool {
	for _, m := range e.CreditedMembers {
		if m.Name != "" {
			return true
		}
	}
	return false
}

func (e *CreditEntity) validate(permitted []Kind, owner *Identity) {
	if !kindIn(e.Kind, permitted) {
		e.Errors.Add("kind", MsgNotPermittedKind)
	}
	if e.Name == "" && e.hasNamedMembers() {
		e.Errors.Add("name", MsgNameRequired)
	} else {
		validateString(&e.Errors, "name", e.Name, true)
	}
	validateString(&e.Errors, "differentiator", e.Differentiator, false)
	if owner != nil && e.Kind == KindMaterial && e.Name == owner.Name && e.Differentiator == owner.Differentiator {
		e.Errors.Add("name", MsgSelfAssociation)
		e.Errors.Add("differentiator", MsgSelfAssociation)
	}
	validateReferences(e.CreditedMembers, nil)
}

func validateCreditEntities(entities []*CreditEntity, permitted []Kind, owner *Identity) {
	keys := make([]string, len(entities))
	errs := make([]*Errors, len(entities))
	for i, e := range entities {
		errs[i] = &e.Errors
		if e.Blank() {
			continue
		}
		keys[i] = e.key()
		e.validate(permitted, owner)
	}
	markDuplicates(errs, keys, "name", "differentiator")
}

func prepareCreditEntities(entities []*CreditEntity) []*CreditEntity {
	out := make([]*CreditEntity, 0, len(entities))
	for _, e := range entities {
		if e == nil {
			continue
		}
		e.prepare()
		out = append(out, e)
	}
	return out
}

func creditEntityChildren(path string, entities []*CreditEntity) []Child {
	children := make([]Child, 0, len(entities))
	for i, e := range entities {
		children = append(children, Child{Path: indexed(path, i), Node: e})
	}
	return children
}

func allBlank(entities []*CreditEntity) bool {
	for _, e := range entities {
		if !e.Blank() {
			return false
		}
	}
	return true
}

func kindIn(k Kind, permitted []Kind) bool {
	for _, p := range permitted {
		if k == p {
			return true
		}
	}
	return false
}

var (
	writingEntityKinds = []Kind{KindPerson, KindCompany, KindMaterial}
	creditEntityKinds  = []Kind{KindPerson, KindCompany}
)

// Writing credit types beyond a plain writing credit.
const (
	CreditTypeNonSpecificSourceMaterial = "NON_SPECIFIC_SOURCE_MATERIAL"
	CreditTypeRightsGrantor             = "RIGHTS_GRANTOR"
)

type WritingCredit struct {
	Name       string          `json:"name"`
	CreditType string          `json:"creditType"`
	Entities   []*CreditEntity `json:"entities"`
	Errors     Errors          `json:"errors"`
}

func (c *WritingCredit) ErrorMap() *Errors { return &c.Errors }

func (c *WritingCredit) Children() []Child {
	return creditEntityChildren("entities", c.Entities)
}

func (c *WritingCredit) Blank() bool {
	return c.Name == "" && c.CreditType == "" && allBlank(c.Entities)
}

func (c *WritingCredit) prepare() {
	trim(&c.Name, &c.CreditType)
	c.Entities = prepareCreditEntities(c.Entities)
	for _, e := range c.Entities {
		e.CreditedMembers = nil
	}
}

func (c *WritingCredit) validate(owner *Identity) {
	validateString(&c.Errors, "name", c.Name, false)
	switch c.CreditType {
	case "", CreditTypeNonSpecificSourceMaterial, CreditTypeRightsGrantor:
	default:
		c.Errors.Add("creditType", MsgInvalidCreditType)
	}
	validateCreditEntities(c.Entities, writingEntityKinds, owner)
}

// ProductionCredit is a named group of producer, creative or crew entities.
type ProductionCredit struct {
	Name     string          `json:"name"`
	Entities []*CreditEntity `json:"entities"`
	Errors   Errors          `json:"errors"`
}

func (c *ProductionCredit) ErrorMap() *Errors { return &c.Errors }

func (c *ProductionCredit) Children() []Child {
	return creditEntityChildren("entities", c.Entities)
}

func (c *ProductionCredit) Blank() bool {
	return c.Name == "" && allBlank(c.Entities)
}

func (c *ProductionCredit) prepare() {
	trim(&c.Name)
	c.Entities = prepareCreditEntities(c.Entities)
}

func (c *ProductionCredit) validate(requireName bool) {
	hasNamed := false
	for _, e := range c.Entities {
		if e.Name != "" {
			hasNamed = true
		}
	}
	if requireName {
		validateNestedName(&c.Errors, c.Name, hasNamed)
	} else {
		validateString(&c.Errors, "name", c.Name, false)
	}
	validateCreditEntities(c.Entities, creditEntityKinds, nil)
}

func validateProductionCredits(credits []*ProductionCredit, requireName bool) {
	keys := make([]string, len(credits))
	errs := make([]*Errors, len(credits))
	for i, c := range credits {
		errs[i] = &c.Errors
		if c.Blank() {
			continue
		}
		keys[i] = dedupe.Key(c.Name)
		c.validate(requireName)
	}
	markDuplicates(errs, keys, "name")
}

func validateWritingCredits(credits []*WritingCredit, owner *Identity) {
	keys := make([]string, len(credits))
	errs := make([]*Errors, len(credits))
	for i, c := range credits {
		errs[i] = &c.Errors
		if c.Blank() {
			continue
		}
		keys[i] = dedupe.Key(c.Name)
		c.validate(owner)
	}
	markDuplicates(errs, keys, "name")
}
