package valuation_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/JuanPescoran/bond-valuation-app/internal/apperrors"
	"github.com/JuanPescoran/bond-valuation-app/internal/core/domain"
	"github.com/JuanPescoran/bond-valuation-app/internal/core/valuation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ValidatorTestSuite struct {
	suite.Suite
	validator *valuation.Validator
	vctx      valuation.Context
}

func (s *ValidatorTestSuite) SetupTest() {
	s.validator = valuation.NewValidator()
	s.vctx = valuation.Context{
		Session:  &domain.Session{User: domain.User{ID: 42, Username: "ana", Roles: []string{domain.RoleUser}}, Token: "t"},
		Settings: domain.DefaultSettings(),
	}
}

func TestValidatorTestSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}

func f64(v float64) *float64 { return &v }
func intp(v int) *int        { return &v }
func period(p domain.Period) *domain.Period {
	return &p
}
func date(y int, m time.Month, d int) *domain.Date {
	v := domain.NewDate(y, m, d)
	return &v
}

// validParams is a complete EFFECTIVE, no-grace input.
func validParams() domain.BondParameters {
	return domain.BondParameters{
		ValuationName:         "Bono Corporativo",
		FaceValue:             f64(1000),
		MarketPrice:           f64(1050),
		IssueDate:             date(2025, time.January, 1),
		MaturityDate:          date(2030, time.January, 1),
		TotalPeriods:          intp(10),
		RateType:              domain.RateEffective,
		RateValue:             f64(5),
		Frequency:             domain.PeriodSemester,
		GraceType:             domain.GraceNone,
		MarketRate:            f64(4.5),
		IssuerStructuringCost: f64(0.45),
		IssuerPlacementCost:   f64(0.25),
		IssuerCavaliCost:      f64(0.0525),
		InvestorSabCost:       f64(0.0525),
		InvestorCavaliCost:    f64(0.0525),
	}
}

func (s *ValidatorTestSuite) fieldErrors(err error) map[string]string {
	s.Require().Error(err)
	s.Require().True(errors.Is(err, apperrors.ErrValidation), "expected validation error, got %v", err)
	return apperrors.FieldErrors(err)
}

func (s *ValidatorTestSuite) TestValidate_NoGraceForcesZero() {
	p := validParams()
	p.GraceCapital = intp(3) // hidden for NONE, must be discarded

	req, err := s.validator.Validate(s.vctx, p)

	s.Require().NoError(err)
	s.Equal(0, req.GraceCapital)
	s.Equal(0, req.GraceInterest)
	s.Equal(int64(42), req.UserID)
	s.Equal(1000.0, req.FaceValue)
	s.Equal(10, req.TotalPeriods)
	s.Equal("2025-01-01", req.IssueDate.String())
	s.Equal("2030-01-01", req.MaturityDate.String())
	s.Nil(req.Capitalization)
}

func (s *ValidatorTestSuite) TestValidate_GraceBounds() {
	tests := []struct {
		name         string
		graceType    domain.GraceType
		graceCapital *int
		wantErr      bool
	}{
		{"partial missing", domain.GracePartial, nil, true},
		{"partial zero", domain.GracePartial, intp(0), true},
		{"partial negative", domain.GracePartial, intp(-1), true},
		{"partial equal to total", domain.GracePartial, intp(10), true},
		{"partial above total", domain.GracePartial, intp(11), true},
		{"partial lower bound", domain.GracePartial, intp(1), false},
		{"total upper bound", domain.GraceTotal, intp(9), false},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			p := validParams()
			p.GraceType = tt.graceType
			p.GraceCapital = tt.graceCapital

			req, err := s.validator.Validate(s.vctx, p)
			if tt.wantErr {
				fields := s.fieldErrors(err)
				s.Contains(fields, domain.FieldGraceCapital)
				s.NotContains(fields, domain.FieldGraceType)
				s.Nil(req)
				return
			}
			s.Require().NoError(err)
			s.Equal(*tt.graceCapital, req.GraceCapital)
			s.Equal(*tt.graceCapital, req.GraceInterest)
		})
	}
}

func (s *ValidatorTestSuite) TestValidate_MaturityMustFollowIssue() {
	p := validParams()
	p.MaturityDate = date(2025, time.January, 1)

	_, err := s.validator.Validate(s.vctx, p)
	fields := s.fieldErrors(err)
	s.Contains(fields, domain.FieldMaturityDate)
	s.NotContains(fields, domain.FieldIssueDate)

	p.MaturityDate = date(2024, time.December, 31)
	_, err = s.validator.Validate(s.vctx, p)
	s.Contains(s.fieldErrors(err), domain.FieldMaturityDate)
}

func (s *ValidatorTestSuite) TestValidate_PerFieldChecks() {
	p := validParams()
	p.ValuationName = "ab"
	p.FaceValue = f64(1500)
	p.MarketPrice = f64(0)
	p.TotalPeriods = nil
	p.RateValue = f64(11)
	p.Frequency = "WEEKLY"
	p.InvestorSabCost = f64(-1)

	_, err := s.validator.Validate(s.vctx, p)
	fields := s.fieldErrors(err)

	s.Equal("must be at least 3 characters", fields[domain.FieldValuationName])
	s.Equal("must be one of 1000, 2000, 3000, 4000, 5000", fields[domain.FieldFaceValue])
	s.Equal("must be greater than 0", fields[domain.FieldMarketPrice])
	s.Equal("is required", fields[domain.FieldTotalPeriods])
	s.Equal("must be at most 10", fields[domain.FieldRateValue])
	s.Contains(fields[domain.FieldFrequency], "SEMESTER")
	s.Equal("must be at least 0", fields[domain.FieldInvestorSabCost])
	s.Len(fields, 7)
}

func (s *ValidatorTestSuite) TestValidate_CrossFieldSkipsFailedDependencies() {
	p := validParams()
	p.IssueDate = nil
	p.MaturityDate = date(2000, time.January, 1)

	_, err := s.validator.Validate(s.vctx, p)
	fields := s.fieldErrors(err)
	s.Contains(fields, domain.FieldIssueDate)
	s.NotContains(fields, domain.FieldMaturityDate)
}

func (s *ValidatorTestSuite) TestValidate_NominalRequiresCapitalization() {
	p := validParams()
	p.RateType = domain.RateNominal

	_, err := s.validator.Validate(s.vctx, p)
	fields := s.fieldErrors(err)
	s.Equal("is required for nominal rates", fields[domain.FieldCapitalization])

	p.Capitalization = period(domain.PeriodMonth)
	req, err := s.validator.Validate(s.vctx, p)
	s.Require().NoError(err)
	s.Require().NotNil(req.Capitalization)
	s.Equal(domain.PeriodMonth, *req.Capitalization)
}

func (s *ValidatorTestSuite) TestValidate_EffectiveDropsCapitalization() {
	p := validParams()
	p.Capitalization = period(domain.PeriodDay)

	req, err := s.validator.Validate(s.vctx, p)
	s.Require().NoError(err)
	s.Nil(req.Capitalization)
}

func (s *ValidatorTestSuite) TestValidate_SettingsFallback() {
	p := validParams()
	p.RateType = ""
	s.vctx.Settings = domain.Settings{
		Currency:              domain.CurrencyUSD,
		DefaultRateType:       domain.RateNominal,
		DefaultCapitalization: period(domain.PeriodQuarter),
	}

	req, err := s.validator.Validate(s.vctx, p)
	s.Require().NoError(err)
	s.Equal(domain.RateNominal, req.RateType)
	s.Require().NotNil(req.Capitalization)
	s.Equal(domain.PeriodQuarter, *req.Capitalization)

	s.vctx.Settings = domain.Settings{}
	req, err = s.validator.Validate(s.vctx, p)
	s.Require().NoError(err)
	s.Equal(domain.RateEffective, req.RateType)
}

func (s *ValidatorTestSuite) TestValidate_RequiresSession() {
	s.vctx.Session = nil

	req, err := s.validator.Validate(s.vctx, validParams())
	s.Nil(req)
	s.ErrorIs(err, apperrors.ErrAuthenticationRequired)
}

func (s *ValidatorTestSuite) TestValidate_FieldErrorsBeforeSession() {
	s.vctx.Session = nil
	p := validParams()
	p.FaceValue = nil

	_, err := s.validator.Validate(s.vctx, p)
	s.Contains(s.fieldErrors(err), domain.FieldFaceValue)
}

func (s *ValidatorTestSuite) TestValidate_Idempotent() {
	inputs := map[string]func(p *domain.BondParameters){
		"effective without grace": func(p *domain.BondParameters) {},
		"nominal with partial grace": func(p *domain.BondParameters) {
			p.RateType = domain.RateNominal
			p.Capitalization = period(domain.PeriodBimonthly)
			p.GraceType = domain.GracePartial
			p.GraceCapital = intp(2)
		},
		"padded name": func(p *domain.BondParameters) {
			p.ValuationName = "  Bono Soberano  "
		},
	}

	for name, mutate := range inputs {
		s.Run(name, func() {
			p := validParams()
			mutate(&p)

			first, err := s.validator.Validate(s.vctx, p)
			s.Require().NoError(err)
			second, err := s.validator.Validate(s.vctx, domain.ParamsFromRequest(*first))
			s.Require().NoError(err)
			s.Equal(first, second)
		})
	}
}

func TestValidator_FieldRulesUsesSettingsDefault(t *testing.T) {
	v := valuation.NewValidator()
	vctx := valuation.Context{Settings: domain.Settings{DefaultRateType: domain.RateNominal}}

	rules := v.FieldRules(vctx, "", domain.GraceTotal)
	assert.True(t, rules.IsRequired(domain.FieldCapitalization))
	assert.True(t, rules.IsRequired(domain.FieldGraceCapital))

	rules = v.FieldRules(vctx, domain.RateEffective, domain.GraceNone)
	assert.True(t, rules.IsHidden(domain.FieldCapitalization))
	assert.True(t, rules.IsHidden(domain.FieldGraceCapital))
}

func TestValidator_ValidationErrorMessage(t *testing.T) {
	v := valuation.NewValidator()
	_, err := v.Validate(valuation.Context{}, domain.BondParameters{})
	require.Error(t, err)

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "is required", verr.Fields[domain.FieldValuationName])
	assert.Equal(t, "is required", verr.Fields[domain.FieldGraceType])
	assert.NotContains(t, verr.Fields, domain.FieldRateType)
	assert.NotContains(t, verr.Fields, domain.FieldGraceCapital)
}

func (s *ValidatorTestSuite) TestValidate_MalformedValuesBecomeFieldViolations() {
	body, err := json.Marshal(validParams())
	s.Require().NoError(err)
	var raw map[string]any
	s.Require().NoError(json.Unmarshal(body, &raw))
	raw["issueDate"] = ""
	raw["maturityDate"] = "2024-02-30"
	raw["faceValue"] = "1000"
	raw["totalPeriods"] = 2.5
	raw["rateValue"] = 20
	body, err = json.Marshal(raw)
	s.Require().NoError(err)

	var p domain.BondParameters
	s.Require().NoError(json.Unmarshal(body, &p))
	_, err = s.validator.Validate(s.vctx, p)

	s.Equal(map[string]string{
		domain.FieldIssueDate:    "is required",
		domain.FieldMaturityDate: "must be a valid date (YYYY-MM-DD)",
		domain.FieldFaceValue:    "must be a number",
		domain.FieldTotalPeriods: "must be a whole number",
		domain.FieldRateValue:    "must be at most 10",
	}, s.fieldErrors(err))
}

func (s *ValidatorTestSuite) TestValidate_MalformedHiddenFieldIgnored() {
	p := validParams()
	p.Invalid = map[string]string{domain.FieldCapitalization: "must be a string"}

	req, err := s.validator.Validate(s.vctx, p)
	s.Require().NoError(err)
	s.Nil(req.Capitalization)
}
