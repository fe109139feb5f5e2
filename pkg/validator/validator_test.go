package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMobile(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantOK  bool
	}{
		{name: "bare 10 digits", raw: "9876543210", want: "9876543210", wantOK: true},
		{name: "with country code", raw: "919876543210", want: "9876543210", wantOK: true},
		{name: "with plus and spaces", raw: "+91 98765 43210", want: "9876543210", wantOK: true},
		{name: "with dashes", raw: "98765-43210", want: "9876543210", wantOK: true},
		{name: "bad leading digit", raw: "1234567890", wantOK: false},
		{name: "too short", raw: "98765432", wantOK: false},
		{name: "garbage", raw: "12345", wantOK: false},
		{name: "empty", raw: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeMobile(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNormalizeGSTIN(t *testing.T) {
	got, ok := NormalizeGSTIN(" 22aaaaa0000a1z5 ")
	assert.True(t, ok)
	assert.Equal(t, "22AAAAA0000A1Z5", got)

	_, ok = NormalizeGSTIN("22AAAAA0000A1X5")
	assert.False(t, ok, "missing literal Z")

	_, ok = NormalizeGSTIN("22AAAAA0000A1Z")
	assert.False(t, ok, "wrong length")
}

func TestDefaultValidatorCustomTags(t *testing.T) {
	v, err := NewDefaultValidator()
	require.NoError(t, err)

	type form struct {
		Mobile string `validate:"inmobile"`
		GST    string `validate:"omitempty,gstin"`
	}

	assert.NoError(t, v.Validate(form{Mobile: "9876543210", GST: "22AAAAA0000A1Z5"}))
	assert.NoError(t, v.Validate(form{Mobile: "919876543210"}))
	assert.Error(t, v.Validate(form{Mobile: "1234567890"}))
	assert.Error(t, v.Validate(form{Mobile: "9876543210", GST: "not-a-gstin"}))
}
