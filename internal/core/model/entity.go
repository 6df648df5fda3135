package model

import (
	"encoding/json"
	"fmt"
)

// Entity is a top-level archive node together with the tree of nested
// items submitted with it. The set of implementations is closed.
type Entity interface {
	Node
	Kind() Kind
	Core() *Base
	// Prepare trims input and fills defaults. It runs once, at the boundary.
	Prepare()
	// Validate checks the tree without touching the store and records
	// problems on the nodes they concern.
	Validate()
	// Params derives write parameters from a validated tree. newUUID
	// supplies identities for nodes the write may create.
	Params(newUUID func() string) map[string]interface{}
	sealed()
}

// New returns an empty entity of kind k.
func New(k Kind) (Entity, error) {
	switch k {
	case KindAward:
		return &Award{}, nil
	case KindAwardCeremony:
		return &AwardCeremony{}, nil
	case KindCharacter:
		return &Character{}, nil
	case KindCompany:
		return &Company{}, nil
	case KindMaterial:
		return &Material{}, nil
	case KindPerson:
		return &Person{}, nil
	case KindProduction:
		return &Production{}, nil
	case KindVenue:
		return &Venue{}, nil
	default:
		return nil, fmt.Errorf("unknown kind %q", string(k))
	}
}

// Decode builds a prepared entity tree of kind k from a request body.
// Bodies that do not fit the kind's shape are rejected with ErrMalformed.
func Decode(k Kind, data []byte) (Entity, error) {
	e, err := New(k)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, e); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	e.Prepare()
	return e, nil
}

func indexed(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

func baseProps(b *Base) map[string]interface{} {
	return map[string]interface{}{
		"uuid": b.UUID,
		"name": b.Name,
	}
}

func identityProps(i *Identity) map[string]interface{} {
	props := baseProps(&i.Base)
	props["differentiator"] = nullable(i.Differentiator)
	return props
}
