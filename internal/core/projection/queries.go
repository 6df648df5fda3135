package projection

import (
	"fmt"
	"strings"

	"github.com/agenthands/playbill/internal/core/model"
	"github.com/agenthands/playbill/internal/core/query"
)

var (
	writingRelProps = []string{"creditPosition", "entityPosition", "credit", "creditType"}
	creditRelProps  = []string{"creditPosition", "entityPosition", "memberPosition", "credit", "creditedCompanyUuid"}
	castRelProps    = []string{"castMemberPosition", "rolePosition", "roleName", "characterName", "characterDifferentiator", "qualifier", "isAlternate"}
	depictsRelProps = []string{"groupPosition", "group", "position", "displayName", "qualifier"}
	nomineeRelProps = []string{"nominationPosition", "entityPosition", "productionPosition", "materialPosition", "memberPosition", "nominatedCompanyUuid", "isWinner", "customType"}
)

func materialStages() []stage {
	return []stage{
		{
			name:   "subMaterials",
			match:  fmt.Sprintf("OPTIONAL MATCH (material)-[rel:%s]->(sub:Material)", query.RelSubMaterial),
			guard:  "sub",
			fields: fields(summary("sub"), relProps("rel", "position")),
		},
		{
			name:   "surMaterials",
			match:  fmt.Sprintf("OPTIONAL MATCH (sur:Material)-[:%s]->(material)", query.RelSubMaterial),
			guard:  "sur",
			fields: summary("sur"),
		},
		{
			name:   "writers",
			match:  fmt.Sprintf("OPTIONAL MATCH (material)-[rel:%s]->(writer)", query.RelWritingEntity),
			guard:  "writer",
			fields: fields(summary("writer"), relProps("rel", writingRelProps...)),
		},
		{
			name:   "characters",
			match:  fmt.Sprintf("OPTIONAL MATCH (material)-[rel:%s]->(character:Character)", query.RelDepicts),
			guard:  "character",
			fields: fields(summary("character"), relProps("rel", depictsRelProps...)),
		},
		{
			name: "productions",
			match: fmt.Sprintf("OPTIONAL MATCH (material)<-[:%s]-(production:Production)\nOPTIONAL MATCH (production)-[:%s]->(venue:Venue)",
				query.RelProductionOf, query.RelPlaysAt),
			guard:  "production",
			fields: fields(productionSummary("production"), []string{nested("venue", "venue")}),
		},
		{
			name:   "sourcingMaterials",
			match:  fmt.Sprintf("OPTIONAL MATCH (material)<-[:%s]-(sourcing:Material)", query.RelWritingEntity),
			guard:  "sourcing",
			fields: summary("sourcing"),
		},
	}
}

func productionStages() []stage {
	return []stage{
		{
			name:   "materials",
			match:  fmt.Sprintf("OPTIONAL MATCH (production)-[:%s]->(material:Material)", query.RelProductionOf),
			guard:  "material",
			fields: fields(summary("material"), []string{"format: material.format", "year: material.year"}),
		},
		{
			name: "materialWriters",
			match: fmt.Sprintf("OPTIONAL MATCH (production)-[:%s]->(:Material)-[rel:%s]->(writer)",
				query.RelProductionOf, query.RelWritingEntity),
			guard:  "writer",
			fields: fields(summary("writer"), relProps("rel", writingRelProps...)),
		},
		{
			name: "venues",
			match: fmt.Sprintf("OPTIONAL MATCH (production)-[:%s]->(venue:Venue)\nOPTIONAL MATCH (surVenue:Venue)-[:%s]->(venue)",
				query.RelPlaysAt, query.RelSubVenue),
			guard:  "venue",
			fields: fields(summary("venue"), []string{nested("surVenue", "surVenue")}),
		},
		{
			name:   "surProductions",
			match:  fmt.Sprintf("OPTIONAL MATCH (sur:Production)-[:%s]->(production)", query.RelSubProduction),
			guard:  "sur",
			fields: productionSummary("sur"),
		},
		{
			name:   "subProductions",
			match:  fmt.Sprintf("OPTIONAL MATCH (production)-[rel:%s]->(sub:Production)", query.RelSubProduction),
			guard:  "sub",
			fields: fields(productionSummary("sub"), relProps("rel", "position")),
		},
		{
			name:   "cast",
			match:  fmt.Sprintf("OPTIONAL MATCH (production)-[rel:%s]->(person:Person)", query.RelCastMember),
			guard:  "person",
			fields: fields(summary("person"), relProps("rel", castRelProps...)),
		},
		creditStage("producers", query.RelProducerEntity),
		creditStage("creatives", query.RelCreativeEntity),
		creditStage("crew", query.RelCrewEntity),
	}
}

func creditStage(name, rel string) stage {
	return stage{
		name:   name,
		match:  fmt.Sprintf("OPTIONAL MATCH (production)-[rel:%s]->(entity)", rel),
		guard:  "entity",
		fields: fields(summary("entity"), relProps("rel", creditRelProps...)),
	}
}

func venueStages() []stage {
	return []stage{
		{
			name:   "surVenues",
			match:  fmt.Sprintf("OPTIONAL MATCH (sur:Venue)-[:%s]->(venue)", query.RelSubVenue),
			guard:  "sur",
			fields: summary("sur"),
		},
		{
			name:   "subVenues",
			match:  fmt.Sprintf("OPTIONAL MATCH (venue)-[rel:%s]->(sub:Venue)", query.RelSubVenue),
			guard:  "sub",
			fields: fields(summary("sub"), relProps("rel", "position")),
		},
		{
			name:   "productions",
			match:  fmt.Sprintf("OPTIONAL MATCH (venue)<-[:%s]-(production:Production)", query.RelPlaysAt),
			guard:  "production",
			fields: productionSummary("production"),
		},
		{
			name: "subVenueProductions",
			match: fmt.Sprintf("OPTIONAL MATCH (venue)-[:%s]->(sub:Venue)<-[:%s]-(production:Production)",
				query.RelSubVenue, query.RelPlaysAt),
			guard:  "production",
			fields: fields(productionSummary("production"), []string{nested("venue", "sub")}),
		},
	}
}

// participantStages serve Person and Company, whose views list the
// materials they wrote and the productions that credit them.
func participantStages(k model.Kind) []stage {
	stages := []stage{
		{
			name:   "materials",
			match:  fmt.Sprintf("OPTIONAL MATCH (n)<-[rel:%s]-(material:Material)", query.RelWritingEntity),
			guard:  "material",
			fields: fields(summary("material"), []string{"format: material.format", "year: material.year"}, relProps("rel", writingRelProps...)),
		},
	}
	if k == model.KindPerson {
		stages = append(stages, stage{
			name: "castProductions",
			match: fmt.Sprintf("OPTIONAL MATCH (n)<-[rel:%s]-(production:Production)\nOPTIONAL MATCH (production)-[:%s]->(venue:Venue)",
				query.RelCastMember, query.RelPlaysAt),
			guard:  "production",
			fields: fields(productionSummary("production"), []string{nested("venue", "venue")}, relProps("rel", castRelProps...)),
		})
	}
	for _, c := range []struct{ name, rel string }{
		{"producerProductions", query.RelProducerEntity},
		{"creativeProductions", query.RelCreativeEntity},
		{"crewProductions", query.RelCrewEntity},
	} {
		stages = append(stages, participantCreditStage(k, c.name, c.rel))
	}
	return stages
}

// participantCreditStage returns one row per (production, credit) crediting
// n. People credited through a company carry that company as employer;
// companies carry each member credited through them.
func participantCreditStage(k model.Kind, name, rel string) stage {
	match := fmt.Sprintf("OPTIONAL MATCH (n)<-[rel:%s]-(production:Production)\nOPTIONAL MATCH (production)-[:%s]->(venue:Venue)",
		rel, query.RelPlaysAt)
	extra := []string{nested("venue", "venue")}
	if k == model.KindPerson {
		match += "\nOPTIONAL MATCH (employer:Company) WHERE employer.uuid = rel.creditedCompanyUuid"
		extra = append(extra, nested("employer", "employer"))
	} else {
		match += fmt.Sprintf("\nOPTIONAL MATCH (production)-[memberRel:%s]->(member:Person)"+
			" WHERE memberRel.creditedCompanyUuid = n.uuid AND memberRel.creditPosition = rel.creditPosition", rel)
		extra = append(extra, nested("member", "member", "memberPosition: memberRel.memberPosition"))
	}
	return stage{
		name:   name,
		match:  match,
		guard:  "production",
		fields: fields(productionSummary("production"), extra, relProps("rel", "creditPosition", "credit")),
	}
}

func characterStages() []stage {
	return []stage{
		{
			name:   "materials",
			match:  fmt.Sprintf("OPTIONAL MATCH (character)<-[rel:%s]-(material:Material)", query.RelDepicts),
			guard:  "material",
			fields: fields(summary("material"), relProps("rel", depictsRelProps...)),
		},
		{
			// A cast role plays this character when it names the character or
			// the production material's depiction of it. playsCharacter
			// applies the same rule to the returned rows.
			name: "productions",
			match: fmt.Sprintf("OPTIONAL MATCH (character)<-[depiction:%s]-(:Material)<-[:%s]-(production:Production)-[rel:%s]->(performer:Person)\n"+
				"WHERE (character.name IN [rel.roleName, rel.characterName] OR depiction.displayName IN [rel.roleName, rel.characterName])\n"+
				"AND coalesce(rel.characterDifferentiator, '') = coalesce(character.differentiator, '')\n"+
				"AND (coalesce(rel.qualifier, '') = '' OR coalesce(depiction.qualifier, '') = '' OR rel.qualifier = depiction.qualifier)\n"+
				"OPTIONAL MATCH (production)-[:%s]->(venue:Venue)",
				query.RelDepicts, query.RelProductionOf, query.RelCastMember, query.RelPlaysAt),
			guard: "performer",
			fields: fields(productionSummary("production"), []string{
				nested("venue", "venue"),
				nested("performer", "performer"),
				"depictionName: depiction.displayName",
				"depictionQualifier: depiction.qualifier",
			}, relProps("rel", castRelProps...)),
		},
	}
}

func awardStages() []stage {
	return []stage{
		{
			name:   "ceremonies",
			match:  fmt.Sprintf("OPTIONAL MATCH (award)-[:%s]->(ceremony:AwardCeremony)", query.RelPresentedAt),
			guard:  "ceremony",
			fields: summary("ceremony"),
		},
	}
}

func ceremonyStages() []stage {
	return []stage{
		{
			name:   "awards",
			match:  fmt.Sprintf("OPTIONAL MATCH (ceremony)<-[:%s]-(award:Award)", query.RelPresentedAt),
			guard:  "award",
			fields: summary("award"),
		},
		{
			name:   "categories",
			match:  fmt.Sprintf("OPTIONAL MATCH (ceremony)-[rel:%s]->(category:%s)", query.RelPresentsCategory, query.CategoryLabel),
			guard:  "category",
			fields: []string{"uuid: category.uuid", "name: category.name", "position: rel.position"},
		},
		{
			name: "nominees",
			match: fmt.Sprintf("OPTIONAL MATCH (ceremony)-[:%s]->(category:%s)-[rel:%s]->(nominee)\nOPTIONAL MATCH (nominee)-[:%s]->(venue:Venue)",
				query.RelPresentsCategory, query.CategoryLabel, query.RelNominee, query.RelPlaysAt),
			guard: "nominee",
			fields: fields(productionSummary("nominee"), []string{
				"categoryUuid: category.uuid",
				nested("venue", "venue"),
			}, relProps("rel", nomineeRelProps...)),
		},
	}
}

// rootVariable names the root node in each kind's core query.
func rootVariable(k model.Kind) string {
	switch k {
	case model.KindMaterial:
		return "material"
	case model.KindProduction:
		return "production"
	case model.KindVenue:
		return "venue"
	case model.KindCharacter:
		return "character"
	case model.KindAward:
		return "award"
	case model.KindAwardCeremony:
		return "ceremony"
	default:
		return "n"
	}
}

func stagesFor(k model.Kind) []stage {
	switch k {
	case model.KindMaterial:
		return materialStages()
	case model.KindProduction:
		return productionStages()
	case model.KindVenue:
		return venueStages()
	case model.KindPerson, model.KindCompany:
		return participantStages(k)
	case model.KindCharacter:
		return characterStages()
	case model.KindAward:
		return awardStages()
	case model.KindAwardCeremony:
		return ceremonyStages()
	default:
		return nil
	}
}

// CoreQuery returns the read query whose rows back both the show view and
// the edit form of kind k.
func CoreQuery(k model.Kind) string {
	return coreQuery(k.Label(), rootVariable(k), stagesFor(k))
}

// hasAwards reports whether a kind can be nominated and so shows awards.
func hasAwards(k model.Kind) bool {
	switch k {
	case model.KindMaterial, model.KindProduction, model.KindPerson, model.KindCompany:
		return true
	default:
		return false
	}
}

// AwardsQuery returns every nomination held by the node or, for tiered
// kinds, by its sub or sur tier, one row per (holder, nomination) with all
// of the nomination's nominees collected.
func AwardsQuery(k model.Kind) string {
	tiers := "WITH n, [n] AS tiers"
	if k.Tiered() {
		rel := query.SubRelation(k)
		tiers = fmt.Sprintf("OPTIONAL MATCH (n)-[:%[1]s]->(sub:%[2]s)\n"+
			"OPTIONAL MATCH (sur:%[2]s)-[:%[1]s]->(n)\n"+
			"WITH n, [n] + collect(DISTINCT sub) + collect(DISTINCT sur) AS tiers", rel, k.Label())
	}

	nominee := fields(productionSummary("co"), []string{nested("venue", "venue")}, relProps("coRel", nomineeRelProps...))
	return fmt.Sprintf(`MATCH (n:%s {uuid: $uuid})
%s
UNWIND tiers AS holder
MATCH (award:Award)-[:%s]->(ceremony:AwardCeremony)-[categoryRel:%s]->(category:%s)-[nomineeRel:%s]->(holder)
MATCH (category)-[coRel:%s]->(co)
WHERE coRel.nominationPosition = nomineeRel.nominationPosition
OPTIONAL MATCH (co)-[:%s]->(venue:Venue)
RETURN {%s} AS award,
	{uuid: ceremony.uuid, name: ceremony.name} AS ceremony,
	{uuid: category.uuid, name: category.name, position: categoryRel.position} AS category,
	nomineeRel.nominationPosition AS nominationPosition,
	nomineeRel.isWinner AS isWinner,
	nomineeRel.customType AS customType,
	nomineeRel.nominatedCompanyUuid AS viaCompanyUuid,
	holder.uuid AS holderUuid,
	collect(DISTINCT {%s}) AS nominees`,
		k.Label(), tiers,
		query.RelPresentedAt, query.RelPresentsCategory, query.CategoryLabel, query.RelNominee,
		query.RelNominee, query.RelPlaysAt,
		joinFields(summary("award")), joinFields(nominee))
}

// ListQuery returns up to $limit nodes of kind k with kind-specific extras.
func ListQuery(k model.Kind) string {
	switch k {
	case model.KindProduction:
		return fmt.Sprintf(`MATCH (n:Production)
OPTIONAL MATCH (n)-[:%s]->(venue:Venue)
OPTIONAL MATCH (surVenue:Venue)-[:%s]->(venue)
RETURN {%s} AS item
ORDER BY n.startDate DESC, n.name, n.uuid
LIMIT $limit`, query.RelPlaysAt, query.RelSubVenue,
			joinFields(fields(productionSummary("n"), []string{nested("venue", "venue", nested("surVenue", "surVenue"))})))
	case model.KindMaterial:
		return fmt.Sprintf(`MATCH (n:Material)
RETURN {%s} AS item
ORDER BY n.name, n.differentiator, n.uuid
LIMIT $limit`, joinFields(fields(summary("n"), []string{"format: n.format", "year: n.year"})))
	case model.KindAwardCeremony:
		return fmt.Sprintf(`MATCH (n:AwardCeremony)
OPTIONAL MATCH (award:Award)-[:%s]->(n)
RETURN {%s} AS item
ORDER BY award.name, n.name DESC, n.uuid
LIMIT $limit`, query.RelPresentedAt, joinFields(fields(summary("n"), []string{nested("award", "award")})))
	default:
		return fmt.Sprintf(`MATCH (n:%s)
RETURN {%s} AS item
ORDER BY n.name, n.differentiator, n.uuid
LIMIT $limit`, k.Label(), joinFields(summary("n")))
	}
}

func joinFields(f []string) string {
	return strings.Join(f, ", ")
}
