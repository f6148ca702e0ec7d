// Package correlate joins the ledger against the partnership's planned
// budget and derives the figures the financial report is built from.
package correlate

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/smdhc/parcerias-engine/internal/ledger"
)

// Input is the contract-scoped snapshot the figures are computed over.
type Input struct {
	Movements    []ledger.Movement
	Budget       []ledger.PlannedBudgetLine
	Counterparts []ledger.CounterpartEntry
}

// Figures are the aggregated amounts the financial report consumes. Every sum
// is over absolute signed amounts, rounded to two fractional digits.
type Figures struct {
	ExecutedApproved    decimal.Decimal
	CounterpartDiscount decimal.Decimal
	Glosa               decimal.Decimal
	UnrefundedFees      decimal.Decimal
	AlreadyRefunded     decimal.Decimal
}

// Compute derives all figures in one pass over the snapshot.
//
// ExecutedApproved uses category existence, not a join: a movement whose
// category matches several planned lines still counts once.
func Compute(in Input) Figures {
	planned := make(map[string]struct{}, len(in.Budget))
	for _, line := range in.Budget {
		planned[strings.ToLower(strings.TrimSpace(line.Category))] = struct{}{}
	}

	var f Figures
	var fees, feeRefunds decimal.Decimal

	for _, m := range in.Movements {
		abs := m.AbsAmount()

		switch m.Category {
		case ledger.CategoryTaxasBancarias:
			fees = fees.Add(abs)
		case ledger.CategoryDevolucaoTaxas:
			feeRefunds = feeRefunds.Add(abs)
		}

		if m.Evaluation == ledger.EvaluationGlosar && m.Category != ledger.CategoryTaxasBancarias {
			f.Glosa = f.Glosa.Add(abs)
		}
		if m.Evaluation == ledger.EvaluationRestituicao {
			f.AlreadyRefunded = f.AlreadyRefunded.Add(abs)
		}

		if m.Evaluation == ledger.EvaluationAvaliado {
			if _, ok := planned[strings.ToLower(strings.TrimSpace(string(m.Category)))]; ok {
				f.ExecutedApproved = f.ExecutedApproved.Add(abs)
			}
		}
	}

	f.UnrefundedFees = fees.Sub(feeRefunds)

	for _, cp := range in.Counterparts {
		if short := cp.Planned.Sub(cp.Executed); short.IsPositive() {
			f.CounterpartDiscount = f.CounterpartDiscount.Add(short)
		}
		if over := cp.Executed.Sub(cp.Considered); over.IsPositive() {
			f.CounterpartDiscount = f.CounterpartDiscount.Add(over)
		}
	}

	f.ExecutedApproved = f.ExecutedApproved.Round(2)
	f.CounterpartDiscount = f.CounterpartDiscount.Round(2)
	f.Glosa = f.Glosa.Round(2)
	f.UnrefundedFees = f.UnrefundedFees.Round(2)
	f.AlreadyRefunded = f.AlreadyRefunded.Round(2)

	return f
}
