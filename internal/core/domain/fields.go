package domain

// Requirement is how the input layer must treat a field for the current selections.
type Requirement string

const (
	Required Requirement = "required"
	Optional Requirement = "optional"
	Hidden   Requirement = "hidden"
)

// Field names as they appear on the wire.
const (
	FieldValuationName         = "valuationName"
	FieldFaceValue             = "faceValue"
	FieldMarketPrice           = "marketPrice"
	FieldIssueDate             = "issueDate"
	FieldMaturityDate          = "maturityDate"
	FieldTotalPeriods          = "totalPeriods"
	FieldRateType              = "rateType"
	FieldRateValue             = "rateValue"
	FieldCapitalization        = "capitalization"
	FieldFrequency             = "frequency"
	FieldGraceType             = "graceType"
	FieldGraceCapital          = "graceCapital"
	FieldMarketRate            = "marketRate"
	FieldIssuerStructuringCost = "issuerStructuringCost"
	FieldIssuerPlacementCost   = "issuerPlacementCost"
	FieldIssuerCavaliCost      = "issuerCavaliCost"
	FieldInvestorSabCost       = "investorSabCost"
	FieldInvestorCavaliCost    = "investorCavaliCost"
)

// FieldRules maps every input field to its requirement.
type FieldRules map[string]Requirement

// DeriveFieldRules computes the requirement of each field from the current selections.
// Both the form-rules endpoint and the validator use it, so they never disagree.
// An unknown or empty rate type is treated as EFFECTIVE; an unknown grace type as NONE.
func DeriveFieldRules(rateType RateType, graceType GraceType) FieldRules {
	rules := FieldRules{
		FieldValuationName:         Required,
		FieldFaceValue:             Required,
		FieldMarketPrice:           Required,
		FieldIssueDate:             Required,
		FieldMaturityDate:          Required,
		FieldTotalPeriods:          Required,
		FieldRateType:              Optional,
		FieldRateValue:             Required,
		FieldCapitalization:        Hidden,
		FieldFrequency:             Required,
		FieldGraceType:             Required,
		FieldGraceCapital:          Hidden,
		FieldMarketRate:            Required,
		FieldIssuerStructuringCost: Required,
		FieldIssuerPlacementCost:   Required,
		FieldIssuerCavaliCost:      Required,
		FieldInvestorSabCost:       Required,
		FieldInvestorCavaliCost:    Required,
	}
	if rateType == RateNominal {
		rules[FieldCapitalization] = Required
	}
	if graceType == GracePartial || graceType == GraceTotal {
		rules[FieldGraceCapital] = Required
	}
	return rules
}

// IsHidden reports whether field is hidden under these rules.
func (r FieldRules) IsHidden(field string) bool {
	return r[field] == Hidden
}

// IsRequired reports whether field is required under these rules.
func (r FieldRules) IsRequired(field string) bool {
	return r[field] == Required
}
