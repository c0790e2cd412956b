package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JuanPescoran/bond-valuation-app/internal/core/domain"
	"github.com/JuanPescoran/bond-valuation-app/internal/core/projection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validBond = `{
	"valuationName": "Bono Corporativo",
	"faceValue": 1000,
	"marketPrice": 1050,
	"issueDate": "2025-01-01",
	"maturityDate": "2030-01-01",
	"totalPeriods": 10,
	"rateType": "EFFECTIVE",
	"rateValue": 5,
	"frequency": "SEMESTER",
	"graceType": "NONE",
	"marketRate": 4.5,
	"issuerStructuringCost": 0.45,
	"issuerPlacementCost": 0.25,
	"issuerCavaliCost": 0.0525,
	"investorSabCost": 0.0525,
	"investorCavaliCost": 0.0525
}`

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidateCmd_PrintsRequest(t *testing.T) {
	out, err := execute(t, validBond, "validate", "--user-id", "7")
	require.NoError(t, err)

	var req domain.CreateValuationRequest
	require.NoError(t, json.Unmarshal([]byte(out), &req))
	assert.Equal(t, int64(7), req.UserID)
	assert.Equal(t, "2025-01-01", req.IssueDate.String())
	assert.Equal(t, 0, req.GraceCapital)
	assert.Nil(t, req.Capitalization)
}

func TestValidateCmd_PrintsViolations(t *testing.T) {
	out, err := execute(t, `{"valuationName": "ab"}`, "validate")
	require.ErrorIs(t, err, errInvalidParameters)

	var fields map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &fields))
	assert.Contains(t, fields, "valuationName")
	assert.Contains(t, fields, "faceValue")
}

func TestValidateCmd_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bond.json")
	require.NoError(t, os.WriteFile(path, []byte(validBond), 0o600))

	out, err := execute(t, "", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"userId": 1`)
}

func TestProjectCmd(t *testing.T) {
	body := `{"id": 3, "faceValue": 1000, "tcea": 5.5, "cashFlow": [
		{"number": 1, "initialBalance": 1000, "coupon": 50, "amortization": 500, "finalBalance": 500, "cashflow": 550},
		{"number": 2, "initialBalance": 500, "coupon": 25.5, "amortization": 500, "finalBalance": 0, "cashflow": 525.5}
	]}`

	out, err := execute(t, body, "project", "--currency", "USD")
	require.NoError(t, err)

	var p projection.Projection
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, domain.CurrencyUSD, p.Currency)
	assert.Equal(t, "75.5", p.Summary.TotalCoupons.String())
	assert.Equal(t, "1075.5", p.Summary.TotalCashflow.String())
	assert.Equal(t, "5.5000%", p.Headline.TCEA)
	assert.Len(t, p.Chart, 2)
	assert.Contains(t, out, `"totalCashflow": 1075.5`)
}

func TestProjectCmd_RejectsCurrency(t *testing.T) {
	_, err := execute(t, `{}`, "project", "--currency", "EUR")
	assert.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "bondval dev\n", out)
}
