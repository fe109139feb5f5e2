package billing

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kounterpro/billing/internal/apperr"
	"github.com/kounterpro/billing/pkg/zerror"
)

func validInput() InvoiceInput {
	return InvoiceInput{
		CustomerName:    "Ravi Kumar",
		CustomerAddress: "12 Market Road, Bijapur",
		CustomerMobile:  "9876543210",
		TaxRatePercent:  d("18"),
		TermsText:       "Goods once sold will not be taken back.",
		Items: []LineItemInput{
			{Description: "Exide 12V battery", Quantity: d("2"), RateInclTax: d("118.00")},
		},
	}
}

func assertValidationMsg(t *testing.T, err error, wantMsg string) {
	t.Helper()
	require.Error(t, err)
	var zErr zerror.ZError
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, apperr.ValidationErrorCode, zErr.Code())
	assert.Equal(t, wantMsg, zErr.Msg())
}

func TestValidateDraft(t *testing.T) {
	t.Run("valid input is normalized", func(t *testing.T) {
		in := validInput()
		in.CustomerName = "  Ravi Kumar  "
		in.CustomerMobile = "+91 98765 43210"
		in.CustomerGST = "22aaaaa0000a1z5"

		draft, err := ValidateDraft(in)
		require.NoError(t, err)

		assert.Equal(t, "Ravi Kumar", draft.Customer.Name)
		assert.Equal(t, "9876543210", draft.Customer.Mobile)
		assert.Equal(t, "22AAAAA0000A1Z5", draft.Customer.GSTNumber)
		require.Len(t, draft.Items, 1)
		assert.Equal(t, 1, draft.Items[0].SlNo)
	})

	t.Run("first failure wins", func(t *testing.T) {
		in := validInput()
		in.CustomerName = "X"
		in.CustomerMobile = "12345"

		_, err := ValidateDraft(in)
		assertValidationMsg(t, err, "customer name must be at least 2 characters")
	})

	t.Run("mobile 12345 rejected", func(t *testing.T) {
		in := validInput()
		in.CustomerMobile = "12345"

		_, err := ValidateDraft(in)
		assertValidationMsg(t, err, "please enter a valid 10-digit mobile number (starting with 6-9)")
	})

	t.Run("mobile bad leading digit rejected", func(t *testing.T) {
		in := validInput()
		in.CustomerMobile = "1234567890"

		_, err := ValidateDraft(in)
		assertValidationMsg(t, err, "please enter a valid 10-digit mobile number (starting with 6-9)")
	})

	t.Run("mobile with country code accepted", func(t *testing.T) {
		in := validInput()
		in.CustomerMobile = "919876543210"

		draft, err := ValidateDraft(in)
		require.NoError(t, err)
		assert.Equal(t, "9876543210", draft.Customer.Mobile)
	})

	t.Run("missing mobile", func(t *testing.T) {
		in := validInput()
		in.CustomerMobile = "   "

		_, err := ValidateDraft(in)
		assertValidationMsg(t, err, "mobile number is required")
	})

	t.Run("gst is optional", func(t *testing.T) {
		in := validInput()
		in.CustomerGST = ""

		draft, err := ValidateDraft(in)
		require.NoError(t, err)
		assert.Empty(t, draft.Customer.GSTNumber)
	})

	t.Run("malformed gst rejected", func(t *testing.T) {
		in := validInput()
		in.CustomerGST = "22AAAAA0000A1X5"

		_, err := ValidateDraft(in)
		assertValidationMsg(t, err, "invalid GST format, example: 22AAAAA0000A1Z5")
	})

	t.Run("tax rate bounds", func(t *testing.T) {
		in := validInput()
		in.TaxRatePercent = d("50.01")
		_, err := ValidateDraft(in)
		assertValidationMsg(t, err, "tax rate must be between 0 and 50")

		in.TaxRatePercent = d("-1")
		_, err = ValidateDraft(in)
		assertValidationMsg(t, err, "tax rate must be between 0 and 50")

		in.TaxRatePercent = d("0")
		_, err = ValidateDraft(in)
		assert.NoError(t, err)
	})

	t.Run("short terms rejected", func(t *testing.T) {
		in := validInput()
		in.TermsText = "too short"

		_, err := ValidateDraft(in)
		assertValidationMsg(t, err, "terms and conditions must be at least 10 characters")
	})

	t.Run("no items rejected", func(t *testing.T) {
		in := validInput()
		in.Items = nil

		_, err := ValidateDraft(in)
		assertValidationMsg(t, err, "at least one item is required")
	})

	t.Run("address too long", func(t *testing.T) {
		in := validInput()
		in.CustomerAddress = strings.Repeat("a", 256)

		_, err := ValidateDraft(in)
		assertValidationMsg(t, err, "customer address must not exceed 255 characters")
	})
}

func TestValidateDraftLineItems(t *testing.T) {
	t.Run("fractional quantity rejected", func(t *testing.T) {
		in := validInput()
		in.Items[0].Quantity = d("1.5")

		_, err := ValidateDraft(in)
		assertValidationMsg(t, err, "item 1: quantity must be a whole number")
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		in := validInput()
		in.Items[0].Quantity = d("0")

		_, err := ValidateDraft(in)
		assertValidationMsg(t, err, "item 1: quantity must be greater than 0")
	})

	t.Run("quantity cap", func(t *testing.T) {
		in := validInput()
		in.Items[0].Quantity = d("10000")

		_, err := ValidateDraft(in)
		assertValidationMsg(t, err, "item 1: quantity too large (max 9999)")
	})

	t.Run("rate cap", func(t *testing.T) {
		in := validInput()
		in.Items[0].RateInclTax = d("10000000")

		_, err := ValidateDraft(in)
		assertValidationMsg(t, err, "item 1: rate too large")
	})

	t.Run("error names the offending row", func(t *testing.T) {
		in := validInput()
		in.Items = append(in.Items, LineItemInput{Description: "  ", Quantity: d("1"), RateInclTax: d("10")})

		_, err := ValidateDraft(in)
		assertValidationMsg(t, err, "item 2: description is required")
	})

	t.Run("serial count mismatch rejected", func(t *testing.T) {
		in := validInput()
		in.Items[0].Quantity = d("5")
		in.Items[0].SerialNumbers = []string{"SN1", "SN2", "SN3"}

		_, err := ValidateDraft(in)
		assertValidationMsg(t, err, "item 1: number of serial numbers (3) must match quantity (5)")
	})

	t.Run("serial count matching quantity accepted", func(t *testing.T) {
		in := validInput()
		in.Items[0].Quantity = d("3")
		in.Items[0].SerialNumbers = []string{"SN1", "SN2", "SN3"}

		draft, err := ValidateDraft(in)
		require.NoError(t, err)
		assert.Equal(t, []string{"SN1", "SN2", "SN3"}, draft.Items[0].SerialNumbers)
	})

	t.Run("empty serial lines are ignored", func(t *testing.T) {
		in := validInput()
		in.Items[0].Quantity = d("2")
		in.Items[0].SerialNumbers = []string{"SN1", "  ", "SN2", ""}

		draft, err := ValidateDraft(in)
		require.NoError(t, err)
		assert.Equal(t, []string{"SN1", "SN2"}, draft.Items[0].SerialNumbers)
	})

	t.Run("no serials is always permitted", func(t *testing.T) {
		in := validInput()
		in.Items[0].Quantity = d("5")
		in.Items[0].SerialNumbers = []string{"", " "}

		draft, err := ValidateDraft(in)
		require.NoError(t, err)
		assert.Nil(t, draft.Items[0].SerialNumbers)
	})
}
