package model

import (
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/agenthands/playbill/internal/core/dedupe"
)

const maxLength = 1000

// Base carries what every node in the archive has: an optional uuid, a name
// and the node's own errors.
type Base struct {
	UUID   string `json:"uuid,omitempty"`
	Name   string `json:"name"`
	Errors Errors `json:"errors"`
}

func (b *Base) ErrorMap() *Errors { return &b.Errors }

func (b *Base) Core() *Base { return b }

func (b *Base) sealed() {}

// Identity is a Base disambiguated by a differentiator; (kind, name,
// differentiator) is unique across the archive.
type Identity struct {
	Base
	Differentiator string `json:"differentiator"`
}

// Reference names another entity by (name, differentiator).
type Reference struct {
	Identity
}

func (r *Reference) Children() []Child { return nil }

func (r *Reference) Blank() bool {
	return r.Name == "" && r.Differentiator == ""
}

func (r *Reference) key() string {
	return dedupe.Key(r.Name, r.Differentiator)
}

func (r *Reference) prepare() {
	trim(&r.Name, &r.Differentiator)
}

func (r *Reference) validate() {
	validateString(&r.Errors, "name", r.Name, !r.Blank())
	validateString(&r.Errors, "differentiator", r.Differentiator, false)
}

func (r *Reference) matches(other *Identity) bool {
	return r.Name == other.Name && r.Differentiator == other.Differentiator
}

// ProductionRef points at an existing production by uuid.
type ProductionRef struct {
	UUID   string `json:"uuid"`
	Errors Errors `json:"errors"`
}

func (p *ProductionRef) ErrorMap() *Errors { return &p.Errors }

func (p *ProductionRef) Children() []Child { return nil }

func (p *ProductionRef) Blank() bool { return p.UUID == "" }

func (p *ProductionRef) validate(owner string) {
	if p.Blank() {
		return
	}
	if _, err := uuid.Parse(p.UUID); err != nil {
		p.Errors.Add("uuid", MsgInvalidUUID)
	}
	if owner != "" && p.UUID == owner {
		p.Errors.Add("uuid", MsgSelfAssociation)
	}
}

func validateString(errs *Errors, field, value string, required bool) {
	n := utf8.RuneCountInString(value)
	if required && n < 1 {
		errs.Add(field, MsgTooShort)
		return
	}
	if n > maxLength {
		errs.Add(field, MsgTooLong)
	}
}

// validateNestedName applies to nested items whose name is optional unless
// they have named children.
func validateNestedName(errs *Errors, name string, hasNamedChildren bool) {
	if name == "" && hasNamedChildren {
		errs.Add("name", MsgNameRequired)
		return
	}
	validateString(errs, "name", name, false)
}

func markDuplicates(nodes []*Errors, keys []string, fields ...string) {
	for i := range dedupe.DuplicateIndices(keys) {
		for _, f := range fields {
			nodes[i].Add(f, MsgDuplicate)
		}
	}
}

func validateReferences(refs []*Reference, owner *Identity) {
	keys := make([]string, len(refs))
	errs := make([]*Errors, len(refs))
	for i, r := range refs {
		errs[i] = &r.Errors
		if r.Blank() {
			continue
		}
		keys[i] = r.key()
		r.validate()
		if owner != nil && r.matches(owner) {
			r.Errors.Add("name", MsgSelfAssociation)
			r.Errors.Add("differentiator", MsgSelfAssociation)
		}
	}
	markDuplicates(errs, keys, "name", "differentiator")
}

func validateProductionRefs(refs []*ProductionRef, owner string) {
	keys := make([]string, len(refs))
	errs := make([]*Errors, len(refs))
	for i, r := range refs {
		errs[i] = &r.Errors
		if r.Blank() {
			continue
		}
		keys[i] = dedupe.Key(r.UUID)
		r.validate(owner)
	}
	markDuplicates(errs, keys, "uuid")
}

// trim normalizes user text in place.
func trim(fields ...*string) {
	for _, f := range fields {
		*f = dedupe.Normalize(*f)
	}
}

func prepareReferences(refs []*Reference) []*Reference {
	out := make([]*Reference, 0, len(refs))
	for _, r := range refs {
		if r == nil {
			continue
		}
		r.prepare()
		out = append(out, r)
	}
	return out
}

func prepareProductionRefs(refs []*ProductionRef) []*ProductionRef {
	out := make([]*ProductionRef, 0, len(refs))
	for _, r := range refs {
		if r == nil {
			continue
		}
		trim(&r.UUID)
		out = append(out, r)
	}
	return out
}

func referenceChildren(path string, refs []*Reference) []Child {
	children := make([]Child, 0, len(refs))
	for i, r := range refs {
		children = append(children, Child{Path: indexed(path, i), Node: r})
	}
	return children
}

func productionRefChildren(path string, refs []*ProductionRef) []Child {
	children := make([]Child, 0, len(refs))
	for i, r := range refs {
		children = append(children, Child{Path: indexed(path, i), Node: r})
	}
	return children
}

// nullable maps "" to nil so empty optional properties are never stored.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
