// Package report computes the financial-responsibility report in its two
// shapes: DP (department responsibility) and Gestor (shared or manager
// responsibility). Figures feed official restitution decisions, so every
// output is an exact two-digit decimal.
package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/smdhc/parcerias-engine/internal/correlate"
	"github.com/smdhc/parcerias-engine/internal/ledger"
	"github.com/smdhc/parcerias-engine/internal/portaria"
)

// Yield modes.
const (
	YieldGross = "gross"
	YieldNet   = "net"
)

// Input is the contract snapshot the report is computed over.
type Input struct {
	Contract     ledger.Contract
	Movements    []ledger.Movement
	Budget       []ledger.PlannedBudgetLine
	Counterparts []ledger.CounterpartEntry
	Yields       []ledger.YieldRecord

	// YieldMode selects gross (default) or net yields.
	YieldMode string
	// ResponsibilityOverride, when non-zero, replaces the contract's stored
	// tier for diagnostic dry-runs.
	ResponsibilityOverride int
}

// DP is the department-responsibility shape.
type DP struct {
	ExecutedApproved    decimal.Decimal `json:"executed_approved"`
	CounterpartDiscount decimal.Decimal `json:"counterpart_discount"`
	Glosa               decimal.Decimal `json:"glosa"`
	UnrefundedFees      decimal.Decimal `json:"unrefunded_fees"`
	AlreadyRefunded     decimal.Decimal `json:"already_refunded"`
	AlreadyExecuted     decimal.Decimal `json:"already_executed_discounts"` // fixed at 0 in this revision
	RemainingBalance    decimal.Decimal `json:"remaining_balance"`
	TotalDiscounts      decimal.Decimal `json:"total_discounts"`
	ValueToRefund       decimal.Decimal `json:"value_to_refund"`
}

// Gestor is the manager-responsibility shape.
type Gestor struct {
	ValueIdentified   decimal.Decimal `json:"value_identified"`
	ValueUnidentified decimal.Decimal `json:"value_unidentified"`
	ExternalCredit    decimal.Decimal `json:"external_credit"`
	UnrefundedFees    decimal.Decimal `json:"unrefunded_fees"`
	Glosa             decimal.Decimal `json:"glosa"`
	HasGlosa          bool            `json:"has_glosa"`
	UnusedBalance     decimal.Decimal `json:"unused_balance"`
}

// Report is the full payload, with exactly one shape populated.
type Report struct {
	Contract       string          `json:"contract"`
	Responsibility int             `json:"responsibility"`
	YieldMode      string          `json:"yield_mode"`
	ProjectTotal   decimal.Decimal `json:"project_total"`
	YieldUsed      decimal.Decimal `json:"yield_used"`
	DP             *DP             `json:"dp,omitempty"`
	Gestor         *Gestor         `json:"gestor,omitempty"`
}

// Compute builds the report for the tier in effect.
func Compute(in Input) (Report, error) {
	mode := in.YieldMode
	if mode == "" {
		mode = YieldGross
	}
	if mode != YieldGross && mode != YieldNet {
		return Report{}, fmt.Errorf("invalid yield mode %q", mode)
	}

	tier := in.Contract.Responsibility
	if in.ResponsibilityOverride != 0 {
		tier = in.ResponsibilityOverride
	}
	switch tier {
	case portaria.TierDepartment, portaria.TierShared, portaria.TierManager:
	default:
		return Report{}, fmt.Errorf("invalid responsibility tier %d", tier)
	}

	yieldUsed := decimal.Zero
	for _, y := range in.Yields {
		if mode == YieldNet {
			yieldUsed = yieldUsed.Add(y.Net())
		} else {
			yieldUsed = yieldUsed.Add(y.Gross)
		}
	}

	counterpartTotal := decimal.Zero
	for _, cp := range in.Counterparts {
		counterpartTotal = counterpartTotal.Add(cp.Planned)
	}

	projectTotal := in.Contract.PaidTotal.Add(yieldUsed).Add(counterpartTotal)

	out := Report{
		Contract:       in.Contract.ID,
		Responsibility: tier,
		YieldMode:      mode,
		ProjectTotal:   projectTotal.Round(2),
		YieldUsed:      yieldUsed.Round(2),
	}

	figures := correlate.Compute(correlate.Input{
		Movements:    in.Movements,
		Budget:       in.Budget,
		Counterparts: in.Counterparts,
	})

	if tier == portaria.TierDepartment {
		out.DP = computeDP(projectTotal, figures)
	} else {
		out.Gestor = computeGestor(in.Contract.PaidTotal, yieldUsed, in.Movements, figures)
	}

	return out, nil
}

// computeDP follows the historical formula: the remaining balance already
// subtracts the three loss categories, and total_discounts adds them back on
// top of it. The identity total_discounts - value_to_refund =
// already_refunded holds exactly.
func computeDP(projectTotal decimal.Decimal, f correlate.Figures) *DP {
	remaining := projectTotal.
		Sub(f.ExecutedApproved).
		Sub(f.CounterpartDiscount).
		Sub(f.Glosa).
		Sub(f.UnrefundedFees)

	alreadyExecuted := decimal.Zero

	total := remaining.
		Add(alreadyExecuted).
		Add(f.CounterpartDiscount).
		Add(f.Glosa).
		Add(f.UnrefundedFees)

	return &DP{
		ExecutedApproved:    f.ExecutedApproved.Round(2),
		CounterpartDiscount: f.CounterpartDiscount.Round(2),
		Glosa:               f.Glosa.Round(2),
		UnrefundedFees:      f.UnrefundedFees.Round(2),
		AlreadyRefunded:     f.AlreadyRefunded.Round(2),
		AlreadyExecuted:     alreadyExecuted,
		RemainingBalance:    remaining.Round(2),
		TotalDiscounts:      total.Round(2),
		ValueToRefund:       total.Sub(f.AlreadyRefunded).Round(2),
	}
}

func computeGestor(paidTotal, yieldUsed decimal.Decimal, movements []ledger.Movement, f correlate.Figures) *Gestor {
	var identified, unidentified, external decimal.Decimal
	for _, m := range movements {
		switch m.Category {
		case ledger.CategoryIdentificado:
			identified = identified.Add(m.AbsAmount())
		case ledger.CategoryNaoIdentificado:
			unidentified = unidentified.Add(m.AbsAmount())
		case ledger.CategoryCreditoExterno:
			external = external.Add(m.AbsAmount())
		}
	}

	unused := paidTotal.
		Add(yieldUsed).
		Sub(identified).
		Sub(unidentified).
		Sub(f.UnrefundedFees)

	return &Gestor{
		ValueIdentified:   identified.Round(2),
		ValueUnidentified: unidentified.Round(2),
		ExternalCredit:    external.Round(2),
		UnrefundedFees:    f.UnrefundedFees.Round(2),
		Glosa:             f.Glosa.Round(2),
		HasGlosa:          f.Glosa.IsPositive(),
		UnusedBalance:     unused.Round(2),
	}
}
