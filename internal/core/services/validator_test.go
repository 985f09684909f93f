package services_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradelens/barter_ledger/internal/core/services"
)

func strPtr(s string) *string { return &s }

func exchangeInput(receivedFMV, providedFMV string) services.ExchangeInput {
	return services.ExchangeInput{
		ReceivedDescription: strPtr("Website design services"),
		ReceivedFMV:         receivedFMV,
		ProvidedDescription: strPtr("Office furniture"),
		ProvidedFMV:         providedFMV,
		FMVBasis:            strPtr("COMPARABLE_SALES"),
	}
}

func TestValidateExchange_Valid(t *testing.T) {
	result := services.ValidateExchange(exchangeInput("500.00", "450.00"))

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
	assert.True(t, result.FMVReceived.Equal(decimal.RequireFromString("500.00")))
	assert.True(t, result.FMVDifference.Equal(decimal.RequireFromString("50.00")))
	assert.True(t, result.FMVDifferencePercentage.Equal(decimal.RequireFromString("10")))
}

func TestValidateExchange_NonPositiveAmounts(t *testing.T) {
	result := services.ValidateExchange(exchangeInput("0", "-25.00"))

	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "received FMV must be greater than zero")
	assert.Contains(t, result.Errors[1], "provided FMV must be greater than zero")
}

func TestValidateExchange_MalformedDecimal(t *testing.T) {
	result := services.ValidateExchange(exchangeInput("12.3.4", "100.00"))

	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "not a valid decimal amount")
	assert.True(t, result.FMVReceived.IsZero())
	assert.True(t, result.FMVProvided.IsZero())
	assert.True(t, result.FMVDifferencePercentage.IsZero())
}

func TestValidateExchange_BlankDescriptions(t *testing.T) {
	in := exchangeInput("100.00", "100.00")
	in.ReceivedDescription = strPtr("   ")
	in.ProvidedDescription = strPtr("")
	result := services.ValidateExchange(in)

	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "received description is required")
	assert.Contains(t, result.Errors[1], "provided description is required")
}

func TestValidateExchange_AbsentFieldsSkipRequiredChecks(t *testing.T) {
	// Partial updates omit descriptions and basis; only present fields are
	// checked.
	result := services.ValidateExchange(services.ExchangeInput{
		ReceivedFMV: "100.00",
		ProvidedFMV: "100.00",
	})

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Warnings)
}

func TestValidateExchange_SkewWarning(t *testing.T) {
	// Difference is 300 of 1000 received = 30%, above the 20% advisory line.
	result := services.ValidateExchange(exchangeInput("1000.00", "700.00"))

	assert.True(t, result.IsValid)
	require.Len(t, result.Warnings, 2) // skew plus the 600.00 threshold
	assert.Contains(t, result.Warnings[0], "differ by 30.00%")
}

func TestValidateExchange_EqualValuesOnlyBasisWarning(t *testing.T) {
	in := exchangeInput("1000.00", "1000.00")
	in.FMVBasis = strPtr("")
	result := services.ValidateExchange(in)

	assert.True(t, result.IsValid)
	for _, w := range result.Warnings {
		assert.NotContains(t, w, "differ by")
	}
	foundBasis := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "basis") {
			foundBasis = true
		}
	}
	assert.True(t, foundBasis, "expected a missing-basis warning")
}

func TestValidateExchange_ExactlyTwentyPercentNoWarning(t *testing.T) {
	result := services.ValidateExchange(exchangeInput("100.00", "80.00"))

	assert.True(t, result.IsValid)
	for _, w := range result.Warnings {
		assert.NotContains(t, w, "differ by")
	}
}

func TestValidateExchange_ReportableThresholdWarning(t *testing.T) {
	result := services.ValidateExchange(exchangeInput("600.00", "600.00"))

	assert.True(t, result.IsValid)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "600.00")

	below := services.ValidateExchange(exchangeInput("599.99", "599.99"))
	assert.Empty(t, below.Warnings)
}

func TestValidateExchange_ExactArithmetic(t *testing.T) {
	// 0.1 + 0.2 style values must not pick up float noise.
	result := services.ValidateExchange(exchangeInput("0.30", "0.10"))

	assert.True(t, result.FMVDifference.Equal(decimal.RequireFromString("0.20")))
	assert.Equal(t, "66.67", result.FMVDifferencePercentage.StringFixed(2))
}

func TestFormatTransactionNumber(t *testing.T) {
	assert.Equal(t, "BRT-2026-00007", services.FormatTransactionNumber("BARTER", 2026, 7))
	assert.Equal(t, "JE-2026-00123", services.FormatTransactionNumber("JOURNAL_ENTRY", 2026, 123))
}
