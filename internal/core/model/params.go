package model

import "github.com/agenthands/playbill/internal/core/dedupe"

// allocator hands out uuids for nodes a write may create. The same
// (kind, name, differentiator) always gets the same uuid within one write,
// so repeated mentions resolve to one node even before the store sees it.
type allocator struct {
	newUUID func() string
	seen    map[string]string
}

func newAllocator(newUUID func() string) *allocator {
	return &allocator{newUUID: newUUID, seen: make(map[string]string)}
}

func (a *allocator) register(k Kind, i *Identity) {
	if i.UUID != "" {
		a.seen[dedupe.Key(string(k), i.Name, i.Differentiator)] = i.UUID
	}
}

func (a *allocator) uuid(k Kind, name, differentiator string) string {
	key := dedupe.Key(string(k), name, differentiator)
	if id, ok := a.seen[key]; ok {
		return id
	}
	id := a.newUUID()
	a.seen[key] = id
	return id
}

// row is the parameter shape every MERGE-by-name statement expects. The
// differentiator stays a string so it can be compared with coalesce().
func (a *allocator) row(k Kind, i *Identity) map[string]interface{} {
	return map[string]interface{}{
		"uuid":           a.uuid(k, i.Name, i.Differentiator),
		"name":           i.Name,
		"differentiator": i.Differentiator,
	}
}

func positionedRows(a *allocator, k Kind, refs []*Reference) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(refs))
	for _, r := range refs {
		if r.Blank() {
			continue
		}
		row := a.row(k, &r.Identity)
		row["position"] = len(rows)
		rows = append(rows, row)
	}
	return rows
}

// optionalRow yields zero or one row so single references can share the
// UNWIND form used for lists.
func optionalRow(a *allocator, k Kind, r *Reference) []map[string]interface{} {
	if r == nil || r.Blank() {
		return []map[string]interface{}{}
	}
	return []map[string]interface{}{a.row(k, &r.Identity)}
}

func rowsOrEmpty(rows []map[string]interface{}) []map[string]interface{} {
	if rows == nil {
		return []map[string]interface{}{}
	}
	return rows
}

// entityRows splits credited entities into per-label row lists. Credited
// members of a company carry the company's name so the members statement
// can find the company created earlier in the same transaction.
type entityRows struct {
	people, companies, members []map[string]interface{}
}

func (r *entityRows) add(a *allocator, e *CreditEntity, base map[string]interface{}, entityPosition int) {
	row := a.row(e.Kind, &e.Identity)
	for k, v := range base {
		row[k] = v
	}
	row["entityPosition"] = entityPosition
	if e.Kind != KindCompany {
		r.people = append(r.people, row)
		return
	}
	r.companies = append(r.companies, row)

	memberPosition := 0
	for _, m := range e.CreditedMembers {
		if m.Blank() {
			continue
		}
		member := a.row(KindPerson, &m.Identity)
		for k, v := range base {
			member[k] = v
		}
		member["entityPosition"] = entityPosition
		member["memberPosition"] = memberPosition
		member["companyName"] = e.Name
		member["companyDifferentiator"] = e.Differentiator
		r.members = append(r.members, member)
		memberPosition++
	}
}

func (r *entityRows) into(params map[string]interface{}, prefix string) {
	params[prefix+"People"] = rowsOrEmpty(r.people)
	params[prefix+"Companies"] = rowsOrEmpty(r.companies)
	params[prefix+"Members"] = rowsOrEmpty(r.members)
}
