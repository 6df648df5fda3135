package projection

import (
	"fmt"
	"strings"
)

// stage is one OPTIONAL MATCH ... WITH collect(...) step of a core query.
// Every stage collapses back to a single row, so stages never multiply one
// another's results.
type stage struct {
	name  string
	match string
	// guard is the variable whose absence means "no match"; its row is
	// dropped instead of surfacing as an empty map.
	guard  string
	fields []string
}

// coreQuery matches the root by uuid and runs each stage in order. The
// result has one row: node (the root's properties) plus one list column per
// stage.
func coreQuery(label, root string, stages []stage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "MATCH (%s:%s {uuid: $uuid})\n", root, label)

	carried := []string{root}
	for _, s := range stages {
		b.WriteString(s.match)
		b.WriteString("\n")
		fmt.Fprintf(&b, "WITH %s, collect(DISTINCT CASE WHEN %s IS NULL THEN null ELSE {%s} END) AS %s\n",
			strings.Join(carried, ", "), s.guard, strings.Join(s.fields, ", "), s.name)
		carried = append(carried, s.name)
	}

	fmt.Fprintf(&b, "RETURN properties(%s) AS node", root)
	for _, name := range carried[1:] {
		fmt.Fprintf(&b, ", %s", name)
	}
	return b.String()
}

// summary lists the fields every linked node is returned with.
func summary(v string) []string {
	return []string{
		fmt.Sprintf("kind: labels(%s)[0]", v),
		fmt.Sprintf("uuid: %s.uuid", v),
		fmt.Sprintf("name: %s.name", v),
		fmt.Sprintf("differentiator: %s.differentiator", v),
	}
}

// nested renders an optional node as a map-or-null field.
func nested(field, v string, extra ...string) string {
	fields := append(summary(v), extra...)
	return fmt.Sprintf("%s: CASE WHEN %s IS NULL THEN null ELSE {%s} END", field, v, strings.Join(fields, ", "))
}

// relProps copies relationship properties of the same name.
func relProps(rel string, names ...string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, fmt.Sprintf("%s: %s.%s", n, rel, n))
	}
	return out
}

func productionSummary(v string) []string {
	return append(summary(v),
		fmt.Sprintf("startDate: %s.startDate", v),
		fmt.Sprintf("endDate: %s.endDate", v),
	)
}

func fields(groups ...[]string) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
