package services

import (
	"testing"

	"github.com/alexandru1c/refeelv2/entity"

	"github.com/stretchr/testify/assert"
)

func TestValidationBadge(t *testing.T) {
	cases := []struct {
		status entity.ValidationStatus
		label  string
		tone   Tone
	}{
		{entity.ValidationPending, "Pending validation", ToneWarning},
		{entity.ValidationCancelled, "Cancelled", ToneDanger},
		{entity.ValidationSuccessful, "Validated", ToneSuccess},
		{"", "No validation needed", ToneBasic},
		{"redeemed", "No validation needed", ToneBasic},
	}
	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			b := ValidationBadge(tc.status)
			assert.Equal(t, tc.label, b.Label)
			assert.Equal(t, tc.tone, b.Tone)
		})
	}
}

func TestCheckBalance(t *testing.T) {
	cases := []struct {
		name              string
		balance, required int64
		state             Affordance
		can               bool
	}{
		{"more than enough", 30, 20, Sufficient, true},
		{"exactly enough", 20, 20, ExactlySufficient, true},
		{"short by one", 19, 20, Insufficient, false},
		{"empty cart", 0, 0, ExactlySufficient, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := CheckBalance(tc.balance, tc.required)
			assert.Equal(t, tc.state, a.State)
			assert.Equal(t, tc.can, a.CanCheckout)
			assert.Equal(t, tc.balance-tc.required, a.Remaining)
		})
	}
}
