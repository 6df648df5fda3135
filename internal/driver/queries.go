package driver

import "fmt"

// IndexedLabels lists every node label the archive writes.
var IndexedLabels = []string{
	"Award",
	"AwardCeremony",
	"AwardCeremonyCategory",
	"Character",
	"Company",
	"Material",
	"Person",
	"Production",
	"Venue",
}

const PingQuery = `RETURN 1 AS ok`

func IndexQueries() []string {
	var queries []string
	for _, label := range IndexedLabels {
		queries = append(queries,
			fmt.Sprintf("CREATE CONSTRAINT ON (n:%s) ASSERT n.uuid IS UNIQUE;", label),
			fmt.Sprintf("CREATE INDEX ON :%s(uuid);", label),
			fmt.Sprintf("CREATE INDEX ON :%s(name);", label),
		)
	}
	return queries
}
