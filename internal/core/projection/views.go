package projection

import "encoding/json"

// Summary is the depth-bounded form in which one entity appears inside
// another's view.
type Summary struct {
	Kind string `json:"kind"`
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

type VenueSummary struct {
	Summary
	SurVenue *Summary `json:"surVenue"`
}

type ProductionSummary struct {
	Summary
	StartDate string        `json:"startDate,omitempty"`
	EndDate   string        `json:"endDate,omitempty"`
	Venue     *VenueSummary `json:"venue"`
}

type MaterialSummary struct {
	Summary
	Format         string       `json:"format,omitempty"`
	Year           *int         `json:"year,omitempty"`
	WritingCredits []CreditView `json:"writingCredits"`
}

type EntityView struct {
	Summary
	CreditedMembers []Summary `json:"creditedMembers"`
}

type CreditView struct {
	Name       string       `json:"name"`
	CreditType string       `json:"creditType,omitempty"`
	Entities   []EntityView `json:"entities"`
}

type RoleView struct {
	Name                    string `json:"name"`
	CharacterName           string `json:"characterName,omitempty"`
	CharacterDifferentiator string `json:"characterDifferentiator,omitempty"`
	Qualifier               string `json:"qualifier,omitempty"`
	IsAlternate             bool   `json:"isAlternate"`
}

type CastMemberView struct {
	Summary
	Roles []RoleView `json:"roles"`
}

type AwardView struct {
	Summary
	Ceremonies []CeremonyAwardsView `json:"ceremonies"`
}

type CeremonyAwardsView struct {
	Summary
	Categories []CategoryView `json:"categories"`
}

type CategoryView struct {
	Name        string           `json:"name"`
	Nominations []NominationView `json:"nominations"`
}

// NominationView is one nomination as seen from a particular node. When
// RecipientField is set the view carries that field: null when the node
// holds the nomination itself, otherwise the tier that does.
type NominationView struct {
	IsWinner       bool
	Type           string
	RecipientField string
	Recipient      *Summary
	Entities       []EntityView
	Productions    []ProductionSummary
	Materials      []Summary
}

func (n NominationView) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		"isWinner":    n.IsWinner,
		"type":        n.Type,
		"entities":    n.Entities,
		"productions": n.Productions,
		"materials":   n.Materials,
	}
	if n.RecipientField != "" {
		out[n.RecipientField] = n.Recipient
	}
	return json.Marshal(out)
}

type CharacterGroupView struct {
	Name       string          `json:"name,omitempty"`
	Characters []CharacterView `json:"characters"`
}

type CharacterView struct {
	Summary
	UnderlyingName string `json:"underlyingName,omitempty"`
	Qualifier      string `json:"qualifier,omitempty"`
}

type MaterialView struct {
	Summary
	Differentiator    string               `json:"differentiator,omitempty"`
	Format            string               `json:"format,omitempty"`
	Year              *int                 `json:"year,omitempty"`
	SurMaterial       *Summary             `json:"surMaterial"`
	SubMaterials      []Summary            `json:"subMaterials"`
	WritingCredits    []CreditView         `json:"writingCredits"`
	CharacterGroups   []CharacterGroupView `json:"characterGroups"`
	SourcingMaterials []Summary            `json:"sourcingMaterials"`
	Productions       []ProductionSummary  `json:"productions"`
	Awards            []AwardView          `json:"awards"`
}

type ProductionView struct {
	Summary
	StartDate       string              `json:"startDate,omitempty"`
	PressDate       string              `json:"pressDate,omitempty"`
	EndDate         string              `json:"endDate,omitempty"`
	Material        *MaterialSummary    `json:"material"`
	Venue           *VenueSummary       `json:"venue"`
	SurProduction   *ProductionSummary  `json:"surProduction"`
	SubProductions  []ProductionSummary `json:"subProductions"`
	Cast            []CastMemberView    `json:"cast"`
	ProducerCredits []CreditView        `json:"producerCredits"`
	CreativeCredits []CreditView        `json:"creativeCredits"`
	CrewCredits     []CreditView        `json:"crewCredits"`
	Awards          []AwardView         `json:"awards"`
}

type VenueView struct {
	Summary
	Differentiator string              `json:"differentiator,omitempty"`
	SurVenue       *Summary            `json:"surVenue"`
	SubVenues      []Summary           `json:"subVenues"`
	Productions    []ProductionSummary `json:"productions"`
}

// WritingCreditSummary is a material as listed on one of its writers.
type WritingCreditSummary struct {
	Summary
	Format     string `json:"format,omitempty"`
	Year       *int   `json:"year,omitempty"`
	Credit     string `json:"credit"`
	CreditType string `json:"creditType,omitempty"`
}

type CastProductionView struct {
	ProductionSummary
	Roles []RoleView `json:"roles"`
}

// CreditedProductionView is a production as listed on a person or company
// it credits.
type CreditedProductionView struct {
	ProductionSummary
	Credit          string    `json:"credit"`
	Employer        *Summary  `json:"creditedEmployerCompany,omitempty"`
	CreditedMembers []Summary `json:"creditedMembers"`
}

type ParticipantView struct {
	Summary
	Differentiator      string                   `json:"differentiator,omitempty"`
	Materials           []WritingCreditSummary   `json:"materials"`
	CastProductions     []CastProductionView     `json:"castMemberProductions,omitempty"`
	ProducerProductions []CreditedProductionView `json:"producerProductions"`
	CreativeProductions []CreditedProductionView `json:"creativeProductions"`
	CrewProductions     []CreditedProductionView `json:"crewProductions"`
	Awards              []AwardView              `json:"awards"`
}

type DepictionView struct {
	DisplayName string `json:"displayName,omitempty"`
	Qualifier   string `json:"qualifier,omitempty"`
	Group       string `json:"group,omitempty"`
}

type CharacterMaterialView struct {
	Summary
	Depictions []DepictionView `json:"depictions"`
}

type PerformerView struct {
	Summary
	RoleName    string `json:"roleName"`
	Qualifier   string `json:"qualifier,omitempty"`
	IsAlternate bool   `json:"isAlternate"`
}

type CharacterProductionView struct {
	ProductionSummary
	Performers []PerformerView `json:"performers"`
}

type CharacterShowView struct {
	Summary
	Differentiator string                    `json:"differentiator,omitempty"`
	Materials      []CharacterMaterialView   `json:"materials"`
	Productions    []CharacterProductionView `json:"productions"`
}

type AwardShowView struct {
	Summary
	Differentiator string    `json:"differentiator,omitempty"`
	Ceremonies     []Summary `json:"ceremonies"`
}

type AwardCeremonyView struct {
	Summary
	Award      *Summary       `json:"award"`
	Categories []CategoryView `json:"categories"`
}

// ListItem is one entry of a list response.
type ListItem struct {
	Summary
	Differentiator string        `json:"differentiator,omitempty"`
	Format         string        `json:"format,omitempty"`
	Year           *int          `json:"year,omitempty"`
	StartDate      string        `json:"startDate,omitempty"`
	EndDate        string        `json:"endDate,omitempty"`
	Venue          *VenueSummary `json:"venue,omitempty"`
	Award          *Summary      `json:"award,omitempty"`
}
