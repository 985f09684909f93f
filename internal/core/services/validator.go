package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tradelens/barter_ledger/internal/core/domain"
)

var (
	oneHundred           = decimal.New(100, 0)
	skewWarningThreshold = decimal.New(20, 0) // percent of received value
)

// ExchangeInput is the validator's input. Description and basis pointers are
// nil when the field is absent from the request variant (partial updates);
// required-field checks apply only to present fields.
type ExchangeInput struct {
	ReceivedDescription *string
	ReceivedFMV         string
	ProvidedDescription *string
	ProvidedFMV         string
	FMVBasis            *string
}

// ExchangeValidation is the validator's verdict. Errors block persistence;
// warnings are advisory and returned alongside a successful result.
type ExchangeValidation struct {
	IsValid                 bool
	Errors                  []string
	Warnings                []string
	FMVReceived             decimal.Decimal
	FMVProvided             decimal.Decimal
	FMVDifference           decimal.Decimal
	FMVDifferencePercentage decimal.Decimal
}

// ValidateExchange validates a proposed economic exchange. It is pure: a
// malformed decimal string yields a single error and zeroed amounts rather
// than a propagated parse failure.
func ValidateExchange(in ExchangeInput) ExchangeValidation {
	received, err := decimal.NewFromString(in.ReceivedFMV)
	if err != nil {
		return ExchangeValidation{
			Errors: []string{fmt.Sprintf("goods received FMV %q is not a valid decimal amount", in.ReceivedFMV)},
		}
	}
	provided, err := decimal.NewFromString(in.ProvidedFMV)
	if err != nil {
		return ExchangeValidation{
			Errors: []string{fmt.Sprintf("goods provided FMV %q is not a valid decimal amount", in.ProvidedFMV)},
		}
	}

	result := ExchangeValidation{
		FMVReceived: received,
		FMVProvided: provided,
	}

	if !received.IsPositive() {
		result.Errors = append(result.Errors, "goods received FMV must be greater than zero")
	}
	if !provided.IsPositive() {
		result.Errors = append(result.Errors, "goods provided FMV must be greater than zero")
	}
	if in.ReceivedDescription != nil && strings.TrimSpace(*in.ReceivedDescription) == "" {
		result.Errors = append(result.Errors, "goods received description is required")
	}
	if in.ProvidedDescription != nil && strings.TrimSpace(*in.ProvidedDescription) == "" {
		result.Errors = append(result.Errors, "goods provided description is required")
	}

	// Exact decimal arithmetic throughout; rounding happens only when the
	// numbers are rendered into warning text or DTOs.
	result.FMVDifference = received.Sub(provided).Abs()
	if received.IsPositive() {
		result.FMVDifferencePercentage = result.FMVDifference.Div(received).Mul(oneHundred)
	} else {
		result.FMVDifferencePercentage = decimal.Zero
	}

	if result.FMVDifferencePercentage.GreaterThan(skewWarningThreshold) {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"received and provided fair market values differ by %s%%, more than 20%% of the received value; verify both valuations",
			result.FMVDifferencePercentage.StringFixed(2)))
	}
	if in.FMVBasis != nil && strings.TrimSpace(*in.FMVBasis) == "" {
		result.Warnings = append(result.Warnings,
			"no fair market value basis documented; keep supporting records for how these values were determined")
	}
	if received.GreaterThanOrEqual(domain.ReportableThreshold) {
		result.Warnings = append(result.Warnings,
			"received FMV meets or exceeds the 600.00 reporting threshold; counterparty tax identification may be required for Form 1099-B")
	}

	result.IsValid = len(result.Errors) == 0
	return result
}
