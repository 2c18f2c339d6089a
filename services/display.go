package services

import "github.com/alexandru1c/refeelv2/entity"

type Tone string

const (
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
	ToneSuccess Tone = "success"
	ToneBasic   Tone = "basic"
)

type StatusBadge struct {
	Label string `json:"label"`
	Tone  Tone   `json:"tone"`
}

// ValidationBadge: rows created before validation existed have no status
// and fall into the default case.
func ValidationBadge(status entity.ValidationStatus) StatusBadge {
	switch status {
	case entity.ValidationPending:
		return StatusBadge{Label: "Pending validation", Tone: ToneWarning}
	case entity.ValidationCancelled:
		return StatusBadge{Label: "Cancelled", Tone: ToneDanger}
	case entity.ValidationSuccessful:
		return StatusBadge{Label: "Validated", Tone: ToneSuccess}
	default:
		return StatusBadge{Label: "No validation needed", Tone: ToneBasic}
	}
}

type Affordance string

const (
	Sufficient        Affordance = "sufficient"
	ExactlySufficient Affordance = "exactly_sufficient"
	Insufficient      Affordance = "insufficient"
)

type BalanceAffordance struct {
	State    Affordance `json:"state"`
	Balance  int64      `json:"balance"`
	Required int64      `json:"required"`
	// balance after checkout; negative when insufficient
	Remaining   int64 `json:"remaining"`
	CanCheckout bool  `json:"canCheckout"`
}

func CheckBalance(balance, required int64) BalanceAffordance {
	out := BalanceAffordance{Balance: balance, Required: required, Remaining: balance - required}
	switch {
	case balance > required:
		out.State = Sufficient
	case balance == required:
		out.State = ExactlySufficient
	default:
		out.State = Insufficient
	}
	out.CanCheckout = out.State != Insufficient
	return out
}
