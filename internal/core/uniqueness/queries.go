package uniqueness

// Query templates take the node label (and, where noted, a relationship
// type) as their only format arguments; values always travel as parameters.

const existsQuery = `
MATCH (n:%s {uuid: $uuid})
RETURN count(n) > 0 AS exists`

const nameCollisionQuery = `
MATCH (n:%s {name: $name})
WHERE coalesce(n.differentiator, '') = $differentiator
	AND ($uuid = '' OR n.uuid <> $uuid)
RETURN count(n) > 0 AS exists`

// label, sub relationship (x2)
const subStatusByNameQuery = `
OPTIONAL MATCH (n:%[1]s {name: $name})
WHERE coalesce(n.differentiator, '') = $differentiator
OPTIONAL MATCH (sur:%[1]s)-[:%[2]s]->(n)
WHERE $uuid = '' OR sur.uuid <> $uuid
OPTIONAL MATCH (n)-[:%[2]s]->(sub:%[1]s)
RETURN count(DISTINCT n) > 0 AS exists,
	count(DISTINCT sur) > 0 AS assigned,
	count(DISTINCT sub) > 0 AS isSur`

const subStatusByUUIDQuery = `
OPTIONAL MATCH (n:%[1]s {uuid: $subUuid})
OPTIONAL MATCH (sur:%[1]s)-[:%[2]s]->(n)
WHERE $uuid = '' OR sur.uuid <> $uuid
OPTIONAL MATCH (n)-[:%[2]s]->(sub:%[1]s)
RETURN count(DISTINCT n) > 0 AS exists,
	count(DISTINCT sur) > 0 AS assigned,
	count(DISTINCT sub) > 0 AS isSur`

const isSubQuery = `
MATCH (sur:%[1]s)-[:%[2]s]->(n:%[1]s {uuid: $uuid})
RETURN count(sur) > 0 AS exists`

const ceremonyExistsQuery = `
MATCH (award:Award {name: $awardName})-[:PRESENTED_AT]->(ceremony:AwardCeremony {name: $name})
WHERE coalesce(award.differentiator, '') = $awardDifferentiator
	AND ($uuid = '' OR ceremony.uuid <> $uuid)
RETURN count(ceremony) > 0 AS exists`

const existingProductionsQuery = `
MATCH (n:Production)
WHERE n.uuid IN $uuids
RETURN collect(n.uuid) AS uuids`

// Incoming relationships mark the node as used by another entity's form.
const incomingLabelsQuery = `
MATCH (n:%s {uuid: $uuid})<-[]-(m)
RETURN collect(DISTINCT labels(m)[0]) AS labels`

const presentedAtLabelsQuery = `
MATCH (n:Award {uuid: $uuid})-[:PRESENTED_AT]->(m)
RETURN collect(DISTINCT labels(m)[0]) AS labels`
