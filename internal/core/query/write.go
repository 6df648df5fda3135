package query

import (
	"fmt"
	"strings"

	"github.com/agenthands/playbill/internal/core/model"
	"github.com/agenthands/playbill/internal/driver"
)

// Create returns the statements that write a new entity of kind k together
// with every relationship its form owns. They run in one transaction.
func Create(k model.Kind, params map[string]interface{}) []driver.Statement {
	queries := []string{fmt.Sprintf("CREATE (n:%s) SET n = $props", k.Label())}
	queries = append(queries, relationshipQueries(k)...)
	return statements(queries, params)
}

// Update returns the statements that overwrite an existing entity: scalar
// properties are replaced, owned relationships are torn down and rewritten.
func Update(k model.Kind, params map[string]interface{}) []driver.Statement {
	queries := []string{fmt.Sprintf("MATCH (n:%s {uuid: $uuid}) SET n = $props", k.Label())}
	queries = append(queries, detachQueries(k)...)
	queries = append(queries, relationshipQueries(k)...)
	return statements(queries, params)
}

// Delete returns the statements that remove an entity and what it owns.
func Delete(k model.Kind, uuid string) []driver.Statement {
	var queries []string
	if k == model.KindAwardCeremony {
		queries = append(queries, categoryTeardown)
	}
	queries = append(queries, fmt.Sprintf("MATCH (n:%s {uuid: $uuid}) DETACH DELETE n", k.Label()))
	return statements(queries, map[string]interface{}{"uuid": uuid})
}

var categoryTeardown = fmt.Sprintf(`
MATCH (n:AwardCeremony {uuid: $uuid})-[:%s]->(category:%s)
DETACH DELETE category`, RelPresentsCategory, CategoryLabel)

var categoryCreate = fmt.Sprintf(`
MATCH (root:AwardCeremony {uuid: $uuid})
UNWIND $categories AS row
CREATE (root)-[:%s {position: row.position}]->(:%s {uuid: row.uuid, name: row.name})`,
	RelPresentsCategory, CategoryLabel)

func statements(queries []string, params map[string]interface{}) []driver.Statement {
	stmts := make([]driver.Statement, 0, len(queries))
	for _, q := range queries {
		stmts = append(stmts, driver.Statement{Query: q, Params: params})
	}
	return stmts
}

func detachQueries(k model.Kind) []string {
	var queries []string
	if types := ownedTypes(k); len(types) > 0 {
		queries = append(queries, fmt.Sprintf(
			"MATCH (n:%s {uuid: $uuid})-[r:%s]->() DELETE r", k.Label(), strings.Join(types, "|")))
	}
	if k == model.KindAwardCeremony {
		queries = append(queries,
			fmt.Sprintf("MATCH (n:AwardCeremony {uuid: $uuid})<-[r:%s]-() DELETE r", RelPresentedAt),
			categoryTeardown,
		)
	}
	return queries
}

func relationshipQueries(k model.Kind) []string {
	var queries []string
	categories := false
	for _, r := range relations(k) {
		if r.inCategory && !categories {
			queries = append(queries, categoryCreate)
			categories = true
		}
		queries = append(queries, r.query(k))
	}
	return queries
}

// query renders the statement for one relation, e.g. for sub-materials:
//
//	MATCH (root:Material {uuid: $uuid})
//	UNWIND $subMaterials AS row
//	OPTIONAL MATCH (existing:Material {name: row.name})
//	WHERE coalesce(existing.differentiator, '') = row.differentiator
//	WITH root, row, collect(existing)[0] AS existing
//	MERGE (entity:Material {uuid: coalesce(existing.uuid, row.uuid)})
//	ON CREATE SET entity.name = row.name, entity.differentiator = ...
//	CREATE (root)-[:HAS_SUB_MATERIAL {position: row.position}]->(entity)
func (r relation) query(root model.Kind) string {
	var b strings.Builder
	carry := []string{"root", "row"}

	fmt.Fprintf(&b, "MATCH (root:%s {uuid: $uuid})\n", root.Label())
	fmt.Fprintf(&b, "UNWIND $%s AS row\n", r.param)

	from := "root"
	if r.inCategory {
		fmt.Fprintf(&b, "MATCH (root)-[:%s]->(category:%s {uuid: row.categoryUuid})\n", RelPresentsCategory, CategoryLabel)
		carry = append(carry, "category")
		from = "category"
	}

	if r.companyProp != "" {
		b.WriteString("MATCH (company:Company {name: row.companyName})\n")
		b.WriteString("WHERE coalesce(company.differentiator, '') = row.companyDifferentiator\n")
		fmt.Fprintf(&b, "WITH %s, collect(company)[0] AS company\n", strings.Join(carry, ", "))
		carry = append(carry, "company")
	}

	if r.byUUID {
		fmt.Fprintf(&b, "MATCH (entity:%s {uuid: row.uuid})\n", r.target.Label())
	} else {
		fmt.Fprintf(&b, "OPTIONAL MATCH (existing:%s {name: row.name})\n", r.target.Label())
		b.WriteString("WHERE coalesce(existing.differentiator, '') = row.differentiator\n")
		fmt.Fprintf(&b, "WITH %s, collect(existing)[0] AS existing\n", strings.Join(carry, ", "))
		fmt.Fprintf(&b, "MERGE (entity:%s {uuid: coalesce(existing.uuid, row.uuid)})\n", r.target.Label())
		b.WriteString("ON CREATE SET entity.name = row.name, ")
		b.WriteString("entity.differentiator = CASE row.differentiator WHEN '' THEN null ELSE row.differentiator END\n")
	}

	props := make([]string, 0, len(r.props)+1)
	for _, p := range r.props {
		props = append(props, fmt.Sprintf("%s: row.%s", p, p))
	}
	if r.companyProp != "" {
		props = append(props, r.companyProp+": company.uuid")
	}
	rel := r.rel
	if len(props) > 0 {
		rel = fmt.Sprintf("%s {%s}", r.rel, strings.Join(props, ", "))
	}

	if r.incoming {
		fmt.Fprintf(&b, "CREATE (entity)-[:%s]->(%s)", rel, from)
	} else {
		fmt.Fprintf(&b, "CREATE (%s)-[:%s]->(entity)", from, rel)
	}
	return b.String()
}
