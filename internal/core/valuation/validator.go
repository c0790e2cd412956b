// Package valuation turns raw bond parameters into backend-ready valuation requests.
package valuation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/JuanPescoran/bond-valuation-app/internal/apperrors"
	"github.com/JuanPescoran/bond-valuation-app/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

// Context carries the caller state the validator depends on.
// Session is nil when the caller is anonymous.
type Context struct {
	Session  *domain.Session
	Settings domain.Settings
}

// Validator checks BondParameters and normalizes them. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds a Validator with the bond-specific rules registered.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	// Registration only fails on empty tags or nil funcs.
	_ = v.RegisterValidation("facevalue", isFaceValue)
	_ = v.RegisterValidation("period", isPeriod)
	return &Validator{validate: v}
}

// FieldRules exposes the requirement derivation used by Validate, with the
// same rate-type fallback applied.
func (v *Validator) FieldRules(vctx Context, rateType domain.RateType, graceType domain.GraceType) domain.FieldRules {
	return domain.DeriveFieldRules(resolveRateType(vctx, rateType), graceType)
}

// Validate returns the normalized request for p, a *apperrors.ValidationError
// listing every violated field, or apperrors.ErrAuthenticationRequired when the
// input is valid but no session is available.
func (v *Validator) Validate(vctx Context, p domain.BondParameters) (*domain.CreateValuationRequest, error) {
	p.ValuationName = strings.TrimSpace(p.ValuationName)
	if p.RateType == "" {
		p.RateType = resolveRateType(vctx, "")
	}

	rules := domain.DeriveFieldRules(p.RateType, p.GraceType)
	if rules.IsHidden(domain.FieldCapitalization) {
		p.Capitalization = nil
	} else if p.Capitalization == nil && vctx.Settings.DefaultCapitalization != nil {
		c := *vctx.Settings.DefaultCapitalization
		p.Capitalization = &c
	}
	if rules.IsHidden(domain.FieldGraceCapital) {
		p.GraceCapital = nil
	}

	fields, err := v.checkFields(p)
	if err != nil {
		return nil, err
	}
	// Values that could not be decoded replace the "is required" their nil field produced.
	for name, msg := range p.Invalid {
		if !rules.IsHidden(name) {
			fields[name] = msg
		}
	}
	checkCrossFields(p, rules, fields)
	if len(fields) > 0 {
		return nil, apperrors.NewValidationError(fields)
	}

	if vctx.Session == nil {
		return nil, apperrors.ErrAuthenticationRequired
	}
	return normalize(p, vctx.Session.ID), nil
}

// checkFields runs the per-field type and range checks.
func (v *Validator) checkFields(p domain.BondParameters) (map[string]string, error) {
	fields := make(map[string]string)
	err := v.validate.Struct(p)
	if err == nil {
		return fields, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, fmt.Errorf("validating bond parameters: %w", err)
	}
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; !seen {
			fields[fe.Field()] = fieldMessage(fe)
		}
	}
	return fields, nil
}

// checkCrossFields only compares fields that passed their own checks and
// reports against the dependent field.
func checkCrossFields(p domain.BondParameters, rules domain.FieldRules, fields map[string]string) {
	ok := func(name string) bool {
		_, failed := fields[name]
		return !failed
	}

	if ok(domain.FieldIssueDate) && ok(domain.FieldMaturityDate) && !p.IssueDate.Before(*p.MaturityDate) {
		fields[domain.FieldMaturityDate] = "must be after the issue date"
	}

	if ok(domain.FieldRateType) && rules.IsRequired(domain.FieldCapitalization) && p.Capitalization == nil {
		fields[domain.FieldCapitalization] = "is required for nominal rates"
	}

	if ok(domain.FieldGraceType) && ok(domain.FieldGraceCapital) && rules.IsRequired(domain.FieldGraceCapital) {
		switch {
		case p.GraceCapital == nil:
			fields[domain.FieldGraceCapital] = "is required when a grace period applies"
		case *p.GraceCapital <= 0:
			fields[domain.FieldGraceCapital] = "must be greater than 0"
		case ok(domain.FieldTotalPeriods) && *p.GraceCapital >= *p.TotalPeriods:
			fields[domain.FieldGraceCapital] = fmt.Sprintf("must be less than the total periods (%d)", *p.TotalPeriods)
		}
	}
}

// normalize assumes p passed every check.
func normalize(p domain.BondParameters, userID int64) *domain.CreateValuationRequest {
	graceCapital := 0
	if p.GraceType != domain.GraceNone && p.GraceCapital != nil {
		graceCapital = *p.GraceCapital
	}
	var capitalization *domain.Period
	if p.RateType == domain.RateNominal && p.Capitalization != nil {
		c := *p.Capitalization
		capitalization = &c
	}
	return &domain.CreateValuationRequest{
		ValuationName:         p.ValuationName,
		UserID:                userID,
		FaceValue:             *p.FaceValue,
		MarketPrice:           *p.MarketPrice,
		IssueDate:             *p.IssueDate,
		MaturityDate:          *p.MaturityDate,
		TotalPeriods:          *p.TotalPeriods,
		RateType:              p.RateType,
		RateValue:             *p.RateValue,
		Capitalization:        capitalization,
		Frequency:             p.Frequency,
		GraceType:             p.GraceType,
		GraceCapital:          graceCapital,
		GraceInterest:         graceCapital,
		MarketRate:            *p.MarketRate,
		IssuerStructuringCost: *p.IssuerStructuringCost,
		IssuerPlacementCost:   *p.IssuerPlacementCost,
		IssuerCavaliCost:      *p.IssuerCavaliCost,
		InvestorSabCost:       *p.InvestorSabCost,
		InvestorCavaliCost:    *p.InvestorCavaliCost,
	}
}

func resolveRateType(vctx Context, rateType domain.RateType) domain.RateType {
	if rateType != "" {
		return rateType
	}
	if vctx.Settings.DefaultRateType.Valid() {
		return vctx.Settings.DefaultRateType
	}
	return domain.RateEffective
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "facevalue":
		return "must be one of 1000, 2000, 3000, 4000, 5000"
	case "period":
		return "must be one of " + periodList()
	default:
		return "is invalid"
	}
}

func periodList() string {
	names := make([]string, len(domain.Periods))
	for i, p := range domain.Periods {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

func isFaceValue(fl validator.FieldLevel) bool {
	v := fl.Field().Float()
	for _, allowed := range domain.FaceValues {
		if v == allowed {
			return true
		}
	}
	return false
}

func isPeriod(fl validator.FieldLevel) bool {
	return domain.Period(fl.Field().String()).Valid()
}
