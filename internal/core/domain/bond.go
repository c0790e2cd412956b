package domain

// RateType is the kind of coupon rate entered by the user.
type RateType string

const (
	RateEffective RateType = "EFFECTIVE"
	RateNominal   RateType = "NOMINAL"
)

// Valid reports whether r is a known rate type.
func (r RateType) Valid() bool {
	return r == RateEffective || r == RateNominal
}

// Period is the shared domain of capitalization and payment frequency.
type Period string

const (
	PeriodDay         Period = "DAY"
	PeriodFortnight   Period = "FORTNIGHT"
	PeriodMonth       Period = "MONTH"
	PeriodBimonthly   Period = "BIMONTHLY"
	PeriodQuarter     Period = "QUARTER"
	PeriodFourMonthly Period = "FOUR_MONTHLY"
	PeriodSemester    Period = "SEMESTER"
	PeriodYear        Period = "YEAR"
)

// Periods lists every Period in ascending length.
var Periods = []Period{
	PeriodDay, PeriodFortnight, PeriodMonth, PeriodBimonthly,
	PeriodQuarter, PeriodFourMonthly, PeriodSemester, PeriodYear,
}

// Valid reports whether p is a known period.
func (p Period) Valid() bool {
	for _, known := range Periods {
		if p == known {
			return true
		}
	}
	return false
}

// GraceType says which payments are deferred during the grace periods.
type GraceType string

const (
	GraceNone    GraceType = "NONE"
	GracePartial GraceType = "PARTIAL"
	GraceTotal   GraceType = "TOTAL"
)

// Valid reports whether g is a known grace type.
func (g GraceType) Valid() bool {
	return g == GraceNone || g == GracePartial || g == GraceTotal
}

// FaceValues is the closed set of accepted face values.
var FaceValues = []float64{1000, 2000, 3000, 4000, 5000}

// BondParameters is the raw user input. Pointer fields are nil when the user left them blank.
type BondParameters struct {
	ValuationName         string    `json:"valuationName" validate:"required,min=3,max=50"`
	FaceValue             *float64  `json:"faceValue" validate:"required,facevalue"`
	MarketPrice           *float64  `json:"marketPrice" validate:"required,gt=0"`
	IssueDate             *Date     `json:"issueDate" validate:"required"`
	MaturityDate          *Date     `json:"maturityDate" validate:"required"`
	TotalPeriods          *int      `json:"totalPeriods" validate:"required,gte=1"`
	RateType              RateType  `json:"rateType" validate:"omitempty,oneof=EFFECTIVE NOMINAL"`
	RateValue             *float64  `json:"rateValue" validate:"required,gte=2,lte=10"`
	Capitalization        *Period   `json:"capitalization" validate:"omitempty,period"`
	Frequency             Period    `json:"frequency" validate:"required,period"`
	GraceType             GraceType `json:"graceType" validate:"required,oneof=NONE PARTIAL TOTAL"`
	GraceCapital          *int      `json:"graceCapital" validate:"omitempty,gte=0"`
	MarketRate            *float64  `json:"marketRate" validate:"required,gt=0"`
	IssuerStructuringCost *float64  `json:"issuerStructuringCost" validate:"required,gte=0,lte=100"`
	IssuerPlacementCost   *float64  `json:"issuerPlacementCost" validate:"required,gte=0,lte=100"`
	IssuerCavaliCost      *float64  `json:"issuerCavaliCost" validate:"required,gte=0,lte=100"`
	InvestorSabCost       *float64  `json:"investorSabCost" validate:"required,gte=0,lte=100"`
	InvestorCavaliCost    *float64  `json:"investorCavaliCost" validate:"required,gte=0,lte=100"`

	// Invalid holds fields whose JSON value could not be converted, keyed by json name.
	// Those fields are left nil; the validator reports these messages for them.
	Invalid map[string]string `json:"-" validate:"-"`
}

// CreateValuationRequest is the backend-ready body of POST /valuations.
type CreateValuationRequest struct {
	ValuationName         string    `json:"valuationName"`
	UserID                int64     `json:"userId"`
	FaceValue             float64   `json:"faceValue"`
	MarketPrice           float64   `json:"marketPrice"`
	IssueDate             Date      `json:"issueDate"`
	MaturityDate          Date      `json:"maturityDate"`
	TotalPeriods          int       `json:"totalPeriods"`
	RateType              RateType  `json:"rateType"`
	RateValue             float64   `json:"rateValue"`
	Capitalization        *Period   `json:"capitalization"`
	Frequency             Period    `json:"frequency"`
	GraceType             GraceType `json:"graceType"`
	GraceCapital          int       `json:"graceCapital"`
	GraceInterest         int       `json:"graceInterest"`
	MarketRate            float64   `json:"marketRate"`
	IssuerStructuringCost float64   `json:"issuerStructuringCost"`
	IssuerPlacementCost   float64   `json:"issuerPlacementCost"`
	IssuerCavaliCost      float64   `json:"issuerCavaliCost"`
	InvestorSabCost       float64   `json:"investorSabCost"`
	InvestorCavaliCost    float64   `json:"investorCavaliCost"`
}

// ParamsFromRequest turns a normalized request back into user input.
// The user id is dropped; it always comes from the session.
func ParamsFromRequest(req CreateValuationRequest) BondParameters {
	issue, maturity := req.IssueDate, req.MaturityDate
	var capitalization *Period
	if req.Capitalization != nil {
		c := *req.Capitalization
		capitalization = &c
	}
	return BondParameters{
		ValuationName:         req.ValuationName,
		FaceValue:             ptr(req.FaceValue),
		MarketPrice:           ptr(req.MarketPrice),
		IssueDate:             &issue,
		MaturityDate:          &maturity,
		TotalPeriods:          ptr(req.TotalPeriods),
		RateType:              req.RateType,
		RateValue:             ptr(req.RateValue),
		Capitalization:        capitalization,
		Frequency:             req.Frequency,
		GraceType:             req.GraceType,
		GraceCapital:          ptr(req.GraceCapital),
		MarketRate:            ptr(req.MarketRate),
		IssuerStructuringCost: ptr(req.IssuerStructuringCost),
		IssuerPlacementCost:   ptr(req.IssuerPlacementCost),
		IssuerCavaliCost:      ptr(req.IssuerCavaliCost),
		InvestorSabCost:       ptr(req.InvestorSabCost),
		InvestorCavaliCost:    ptr(req.InvestorCavaliCost),
	}
}

func ptr[T any](v T) *T {
	return &v
}
