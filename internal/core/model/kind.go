package model

import (
	"fmt"

	"github.com/go-openapi/inflect"
)

// Kind names one of the fixed set of archive entity kinds. It doubles as the
// node label, so only values from this closed set ever reach query text.
type Kind string

const (
	KindAward         Kind = "Award"
	KindAwardCeremony Kind = "AwardCeremony"
	KindCharacter     Kind = "Character"
	KindCompany       Kind = "Company"
	KindMaterial      Kind = "Material"
	KindPerson        Kind = "Person"
	KindProduction    Kind = "Production"
	KindVenue         Kind = "Venue"
)

// Kinds lists every top-level kind in route order.
var Kinds = []Kind{
	KindAward,
	KindAwardCeremony,
	KindCharacter,
	KindCompany,
	KindMaterial,
	KindPerson,
	KindProduction,
	KindVenue,
}

func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown kind %q", s)
	}
	return k, nil
}

func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

func (k Kind) Label() string {
	if !k.Valid() {
		panic(fmt.Sprintf("model: label requested for unknown kind %q", string(k)))
	}
	return string(k)
}

// Route is the collection name used in URLs, e.g. "award-ceremonies".
func (k Kind) Route() string {
	return inflect.Pluralize(inflect.Dasherize(string(k)))
}

// Noun is the lower-case form used inside messages, e.g. "sur-material".
func (k Kind) Noun() string {
	return inflect.Dasherize(string(k))
}

// Tiered reports whether the kind supports sub/sur grouping.
func (k Kind) Tiered() bool {
	return k == KindMaterial || k == KindProduction || k == KindVenue
}
