package model

import "fmt"

const (
	MsgTooShort           = "Value is too short"
	MsgTooLong            = "Value is too long"
	MsgDuplicate          = "This item has been duplicated within the group"
	MsgNameRequired       = "Name is required if named children exist"
	MsgSelfAssociation    = "Instance cannot form association with itself"
	MsgCharacterNameSame  = "Character name is only required if different from role name"
	MsgUnderlyingNameSame = "Underlying name is only required if different from display name"
	MsgNotPermittedKind   = "Value is not a permitted kind"
	MsgInvalidUUID        = "Value must be a valid UUID"
	MsgInvalidDate        = "Value must be a valid date"
	MsgStartAfterEnd      = "Start date must not be after end date"
	MsgInvalidYear        = "Value must be a valid year"
	MsgInvalidCreditType  = "Value is not a permitted credit type"

	MsgNameCollision      = "Name and differentiator combination already exists"
	MsgCeremonyExists     = "Award ceremony already exists for given award"
	MsgProductionNotFound = "Production with this UUID does not exist"
)

func MsgAssignedToOtherSur(k Kind) string {
	return fmt.Sprintf("%s with these attributes is already assigned to another sur-%s", k, k.Noun())
}

func MsgIsSur(k Kind) string {
	return fmt.Sprintf("%s with these attributes is itself a sur-%s and cannot be assigned as a sub-%s", k, k.Noun(), k.Noun())
}

func MsgRootIsSub(k Kind) string {
	return fmt.Sprintf("%s with these attributes is a sub-%s and cannot have sub-%ss", k, k.Noun(), k.Noun())
}
