// Package uniqueness answers the store-backed questions asked before a
// write: collisions, sub/sur placement, existence and dependants. It only
// reports; callers decide what a positive answer means.
package uniqueness

import (
	"context"
	"fmt"
	"sort"

	"github.com/agenthands/playbill/internal/core/model"
	"github.com/agenthands/playbill/internal/core/query"
	"github.com/agenthands/playbill/internal/driver"
)

type Validator struct {
	Driver driver.GraphDriver
}

func NewValidator(d driver.GraphDriver) *Validator {
	return &Validator{Driver: d}
}

// SubStatus describes a candidate sub-entity as the store currently sees it.
type SubStatus struct {
	Exists bool
	// Assigned is set when another sur already holds the candidate.
	Assigned bool
	// IsSur is set when the candidate has subs of its own.
	IsSur bool
}

func (v *Validator) Exists(ctx context.Context, k model.Kind, uuid string) (bool, error) {
	return v.flag(ctx, fmt.Sprintf(existsQuery, k.Label()), map[string]interface{}{"uuid": uuid})
}

// NameCollision reports whether another node of kind k has the same name and
// differentiator. exclude is the uuid of the node being updated, or "".
func (v *Validator) NameCollision(ctx context.Context, k model.Kind, name, differentiator, exclude string) (bool, error) {
	return v.flag(ctx, fmt.Sprintf(nameCollisionQuery, k.Label()), map[string]interface{}{
		"name":           name,
		"differentiator": differentiator,
		"uuid":           exclude,
	})
}

// SubStatusByName inspects a prospective sub-entity named by (name,
// differentiator). root is the uuid of the prospective sur, or "".
func (v *Validator) SubStatusByName(ctx context.Context, k model.Kind, name, differentiator, root string) (SubStatus, error) {
	return v.subStatus(ctx, fmt.Sprintf(subStatusByNameQuery, k.Label(), query.SubRelation(k)), map[string]interface{}{
		"name":           name,
		"differentiator": differentiator,
		"uuid":           root,
	})
}

func (v *Validator) SubStatusByUUID(ctx context.Context, k model.Kind, sub, root string) (SubStatus, error) {
	return v.subStatus(ctx, fmt.Sprintf(subStatusByUUIDQuery, k.Label(), query.SubRelation(k)), map[string]interface{}{
		"subUuid": sub,
		"uuid":    root,
	})
}

// IsSub reports whether the node is already held by a sur.
func (v *Validator) IsSub(ctx context.Context, k model.Kind, uuid string) (bool, error) {
	return v.flag(ctx, fmt.Sprintf(isSubQuery, k.Label(), query.SubRelation(k)), map[string]interface{}{"uuid": uuid})
}

// CeremonyExists reports whether the award already presents a ceremony of
// this name, other than exclude.
func (v *Validator) CeremonyExists(ctx context.Context, award *model.Reference, name, exclude string) (bool, error) {
	return v.flag(ctx, ceremonyExistsQuery, map[string]interface{}{
		"awardName":           award.Name,
		"awardDifferentiator": award.Differentiator,
		"name":                name,
		"uuid":                exclude,
	})
}

// MissingProductions returns the subset of uuids with no Production node.
func (v *Validator) MissingProductions(ctx context.Context, uuids []string) (map[string]bool, error) {
	missing := make(map[string]bool, len(uuids))
	if len(uuids) == 0 {
		return missing, nil
	}
	row, err := driver.QueryOptional(ctx, v.Driver, existingProductionsQuery, map[string]interface{}{"uuids": uuids})
	if err != nil {
		return nil, err
	}
	found := map[string]bool{}
	if row != nil {
		for _, id := range stringList(row["uuids"]) {
			found[id] = true
		}
	}
	for _, id := range uuids {
		if !found[id] {
			missing[id] = true
		}
	}
	return missing, nil
}

// AssociatedKinds lists, sorted and deduplicated, the kinds of the entities
// that depend on the node and so block its deletion. Categories are reported
// as the ceremony that owns them.
func (v *Validator) AssociatedKinds(ctx context.Context, k model.Kind, uuid string) ([]string, error) {
	q := fmt.Sprintf(incomingLabelsQuery, k.Label())
	if k == model.KindAward {
		q = presentedAtLabelsQuery
	}
	row, err := driver.QueryOptional(ctx, v.Driver, q, map[string]interface{}{"uuid": uuid})
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}

	seen := map[string]bool{}
	var kinds []string
	for _, label := range stringList(row["labels"]) {
		if label == query.CategoryLabel {
			label = string(model.KindAwardCeremony)
		}
		if seen[label] {
			continue
		}
		seen[label] = true
		kinds = append(kinds, label)
	}
	sort.Strings(kinds)
	return kinds, nil
}

func (v *Validator) flag(ctx context.Context, q string, params map[string]interface{}) (bool, error) {
	row, err := driver.QueryOptional(ctx, v.Driver, q, params)
	if err != nil {
		return false, err
	}
	if row == nil {
		return false, nil
	}
	exists, _ := row["exists"].(bool)
	return exists, nil
}

func (v *Validator) subStatus(ctx context.Context, q string, params map[string]interface{}) (SubStatus, error) {
	row, err := driver.QueryOptional(ctx, v.Driver, q, params)
	if err != nil || row == nil {
		return SubStatus{}, err
	}
	exists, _ := row["exists"].(bool)
	assigned, _ := row["assigned"].(bool)
	isSur, _ := row["isSur"].(bool)
	return SubStatus{Exists: exists, Assigned: assigned, IsSur: isSur}, nil
}

func stringList(raw interface{}) []string {
	items, _ := raw.([]interface{})
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
