package query

import "github.com/agenthands/playbill/internal/core/model"

// Relationship types. Together with the kind labels these are the only
// identifiers ever interpolated into query text.
const (
	RelSubMaterial      = "HAS_SUB_MATERIAL"
	RelSubProduction    = "HAS_SUB_PRODUCTION"
	RelSubVenue         = "HAS_SUB_VENUE"
	RelWritingEntity    = "HAS_WRITING_ENTITY"
	RelDepicts          = "DEPICTS"
	RelProductionOf     = "PRODUCTION_OF"
	RelPlaysAt          = "PLAYS_AT"
	RelCastMember       = "HAS_CAST_MEMBER"
	RelProducerEntity   = "HAS_PRODUCER_ENTITY"
	RelCreativeEntity   = "HAS_CREATIVE_ENTITY"
	RelCrewEntity       = "HAS_CREW_ENTITY"
	RelPresentedAt      = "PRESENTED_AT"
	RelPresentsCategory = "PRESENTS_CATEGORY"
	RelNominee          = "HAS_NOMINEE"

	// CategoryLabel is the label of the nodes an award ceremony owns outright.
	CategoryLabel = "AwardCeremonyCategory"
)

// SubRelation returns the sub/sur relationship type of a tiered kind.
func SubRelation(k model.Kind) string {
	switch k {
	case model.KindMaterial:
		return RelSubMaterial
	case model.KindProduction:
		return RelSubProduction
	case model.KindVenue:
		return RelSubVenue
	default:
		panic("query: kind " + string(k) + " has no sub/sur tiers")
	}
}

// relation describes how one list of row parameters becomes relationships
// from the root node.
type relation struct {
	param  string
	target model.Kind
	rel    string
	props  []string
	// byUUID rows point at an existing node; otherwise the target is resolved
	// by (name, differentiator) and created on first mention.
	byUUID bool
	// incoming relationships point at the root instead of away from it.
	incoming bool
	// inCategory rows hang off one of the ceremony's categories.
	inCategory bool
	// companyProp, when set, names the relationship property that records
	// the uuid of the company a member is credited through.
	companyProp string
}

var (
	positionProps = []string{"position"}
	writingProps  = []string{"creditPosition", "entityPosition", "credit", "creditType"}
	creditProps   = []string{"creditPosition", "entityPosition", "credit"}
	memberProps   = []string{"creditPosition", "entityPosition", "memberPosition", "credit"}
	castProps     = []string{"castMemberPosition", "rolePosition", "roleName", "characterName", "characterDifferentiator", "qualifier", "isAlternate"}
	depictsProps  = []string{"groupPosition", "group", "position", "displayName", "qualifier"}

	nominationProps = []string{"nominationPosition", "isWinner", "customType"}
)

func creditRelations(prefix, rel string) []relation {
	return []relation{
		{param: prefix + "People", target: model.KindPerson, rel: rel, props: creditProps},
		{param: prefix + "Companies", target: model.KindCompany, rel: rel, props: creditProps},
		{param: prefix + "Members", target: model.KindPerson, rel: rel, props: memberProps, companyProp: "creditedCompanyUuid"},
	}
}

func nominationRelations() []relation {
	with := func(extra ...string) []string {
		return append(append([]string{}, nominationProps...), extra...)
	}
	return []relation{
		{param: "nomineePeople", target: model.KindPerson, rel: RelNominee, props: with("entityPosition"), inCategory: true},
		{param: "nomineeCompanies", target: model.KindCompany, rel: RelNominee, props: with("entityPosition"), inCategory: true},
		{param: "nomineeMembers", target: model.KindPerson, rel: RelNominee, props: with("entityPosition", "memberPosition"), inCategory: true, companyProp: "nominatedCompanyUuid"},
		{param: "nomineeProductions", target: model.KindProduction, rel: RelNominee, props: with("productionPosition"), inCategory: true, byUUID: true},
		{param: "nomineeMaterials", target: model.KindMaterial, rel: RelNominee, props: with("materialPosition"), inCategory: true},
	}
}

// relations lists, in write order, every relationship a kind owns. Company
// rows precede member rows so members can find their company.
func relations(k model.Kind) []relation {
	switch k {
	case model.KindMaterial:
		return []relation{
			{param: "subMaterials", target: model.KindMaterial, rel: RelSubMaterial, props: positionProps},
			{param: "writingPeople", target: model.KindPerson, rel: RelWritingEntity, props: writingProps},
			{param: "writingCompanies", target: model.KindCompany, rel: RelWritingEntity, props: writingProps},
			{param: "writingMaterials", target: model.KindMaterial, rel: RelWritingEntity, props: writingProps},
			{param: "characters", target: model.KindCharacter, rel: RelDepicts, props: depictsProps},
		}
	case model.KindProduction:
		rels := []relation{
			{param: "material", target: model.KindMaterial, rel: RelProductionOf},
			{param: "venue", target: model.KindVenue, rel: RelPlaysAt},
			{param: "subProductions", target: model.KindProduction, rel: RelSubProduction, props: positionProps, byUUID: true},
			{param: "cast", target: model.KindPerson, rel: RelCastMember, props: castProps},
		}
		rels = append(rels, creditRelations("producer", RelProducerEntity)...)
		rels = append(rels, creditRelations("creative", RelCreativeEntity)...)
		return append(rels, creditRelations("crew", RelCrewEntity)...)
	case model.KindVenue:
		return []relation{
			{param: "subVenues", target: model.KindVenue, rel: RelSubVenue, props: positionProps},
		}
	case model.KindAwardCeremony:
		return append([]relation{
			{param: "award", target: model.KindAward, rel: RelPresentedAt, incoming: true},
		}, nominationRelations()...)
	default:
		return nil
	}
}

// ownedTypes lists the distinct relationship types a kind writes from its
// own form; they are torn down before an update rewrites them.
func ownedTypes(k model.Kind) []string {
	var types []string
	seen := map[string]bool{}
	for _, r := range relations(k) {
		if r.incoming || r.inCategory || seen[r.rel] {
			continue
		}
		seen[r.rel] = true
		types = append(types, r.rel)
	}
	return types
}
