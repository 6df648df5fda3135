package model

type Venue struct {
	Identity
	SubVenues []*Reference `json:"subVenues"`
}

func (v *Venue) Kind() Kind { return KindVenue }

func (v *Venue) Children() []Child {
	return referenceChildren("subVenues", v.SubVenues)
}

func (v *Venue) Prepare() {
	v.Identity.prepare()
	v.SubVenues = prepareReferences(v.SubVenues)
}

func (v *Venue) Validate() {
	v.Identity.validate()
	validateReferences(v.SubVenues, &v.Identity)
}

func (v *Venue) Params(newUUID func() string) map[string]interface{} {
	alloc := newAllocator(newUUID)
	alloc.register(KindVenue, &v.Identity)
	return map[string]interface{}{
		"uuid":      v.UUID,
		"props":     identityProps(&v.Identity),
		"subVenues": positionedRows(alloc, KindVenue, v.SubVenues),
	}
}
