// Package inconsistency runs the fixed battery of accountability checks over
// a contract's ledger snapshot. The twelve checks have stable template ids;
// their texts live in the template table and are rendered here by placeholder
// substitution, never hard-coded.
package inconsistency

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/smdhc/parcerias-engine/internal/correlate"
	"github.com/smdhc/parcerias-engine/internal/ledger"
	"github.com/smdhc/parcerias-engine/internal/money"
)

// Template ids of the known checks.
const (
	ItemTaxasBancarias       = 1
	ItemJurosMultas          = 2
	ItemContaEspecifica      = 3
	ItemRestituicaoFinal     = 4
	ItemContratos            = 5
	ItemCreditosSemJustif    = 6
	ItemDespesasNaoPrevistas = 7
	ItemTodasGuias           = 8
	ItemDespesaSemGuia       = 9
	ItemPagoEspecie          = 10
	ItemPagoCartao           = 11
	ItemPagoCheque           = 12
)

// Snapshot is everything the detector reads for one contract.
type Snapshot struct {
	Contract     ledger.Contract
	Movements    []ledger.Movement
	Evaluations  map[int64]ledger.DocEvaluation // keyed by movement id
	BankAccount  *ledger.BankAccountRecord
	Yields       []ledger.YieldRecord
	Counterparts []ledger.CounterpartEntry
	Budget       []ledger.PlannedBudgetLine
	Ratified     map[string]bool // item name -> a ratification exists
}

// Item is one detected inconsistency.
type Item struct {
	ID         int               `json:"id"`
	Name       string            `json:"name"`
	Text       string            `json:"text"`
	Resolution string            `json:"resolution"`
	Supporting []ledger.Movement `json:"supporting"`
	Value      decimal.Decimal   `json:"value"`
	HasValue   bool              `json:"has_value"`
	ShowTable  bool              `json:"show_table"`
	Ratified   bool              `json:"ratified"`
}

// Detect evaluates all twelve checks and returns the triggered items in the
// ordering stored on their templates. A triggered check whose template row is
// absent from the reference table is an error, as is emitting both items 8
// and 9, which come from one mutually exclusive predicate.
func Detect(snap Snapshot, templates []ledger.InconsistencyTemplate) ([]Item, error) {
	byID := make(map[int]ledger.InconsistencyTemplate, len(templates))
	for _, t := range templates {
		byID[t.ID] = t
	}

	figures := correlate.Compute(correlate.Input{
		Movements:    snap.Movements,
		Budget:       snap.Budget,
		Counterparts: snap.Counterparts,
	})

	var items []Item
	var missing []int
	emit := func(id int, supporting []ledger.Movement, value *decimal.Decimal, vars map[string]string) {
		tmpl, ok := byID[id]
		if !ok {
			// A triggered check without its reference row must not vanish
			// silently; collected and reported below.
			missing = append(missing, id)
			return
		}
		item := Item{
			ID:         id,
			Name:       tmpl.Name,
			Text:       render(tmpl.ModelText, vars),
			Resolution: tmpl.Resolution,
			Supporting: supporting,
			ShowTable:  len(supporting) > 0,
			Ratified:   snap.Ratified[tmpl.Name],
		}
		if value != nil {
			item.Value = value.Round(2)
			item.HasValue = true
		}
		items = append(items, item)
	}

	// Item 8 / 9: guia checks share one exclusive predicate.
	allMissing, someMissing, missingRows, populatedRows := guiaStatus(snap)
	if allMissing {
		emit(ItemTodasGuias, populatedRows, nil, nil)
	} else if someMissing {
		emit(ItemDespesaSemGuia, missingRows, nil, nil)
	}

	// Item 1: unrefunded bank fees.
	if figures.UnrefundedFees.IsPositive() {
		v := figures.UnrefundedFees
		emit(ItemTaxasBancarias, nil, &v, map[string]string{"valor": money.FormatBRL(v)})
	}

	// Item 2: interest and penalties not refunded.
	juros, jurosRows := sumByCategory(snap.Movements, ledger.CategoryJurosMultas)
	devolucao, devolucaoRows := sumByCategory(snap.Movements, ledger.CategoryDevolucaoJurosMultas)
	if net := juros.Sub(devolucao); net.IsPositive() {
		emit(ItemJurosMultas, append(jurosRows, devolucaoRows...), &net,
			map[string]string{"valor": money.FormatBRL(net)})
	}

	// Item 3: execution outside the contract's declared account.
	if snap.BankAccount != nil && snap.BankAccount.ExecutionAccount != "" &&
		snap.BankAccount.ExecutionAccount != snap.Contract.Account {
		emit(ItemContaEspecifica, nil, nil, map[string]string{
			"conta_prevista": snap.Contract.Account,
			"conta_execucao": snap.BankAccount.ExecutionAccount,
		})
	}

	// Item 4: final restitution.
	restitution := snap.Contract.PlannedTotal.
		Add(grossYields(snap.Yields)).
		Add(counterpartTotal(snap.Counterparts)).
		Sub(figures.ExecutedApproved).
		Sub(figures.Glosa).
		Sub(figures.UnrefundedFees)
	if restitution.IsPositive() {
		emit(ItemRestituicaoFinal, nil, &restitution,
			map[string]string{"valor": money.FormatBRL(restitution)})
	}

	// Item 5: service contracts not presented.
	if rows := movementsWhere(snap, func(ev ledger.DocEvaluation) bool {
		return ev.Contratos == ledger.ContratosNaoApresentado
	}); len(rows) > 0 {
		emit(ItemContratos, rows, nil, nil)
	}

	// Item 6: credits without an approved justification.
	var unjustified []ledger.Movement
	for _, m := range snap.Movements {
		if m.Credit.IsPositive() && m.Evaluation != ledger.EvaluationAvaliado {
			unjustified = append(unjustified, m)
		}
	}
	if len(unjustified) > 0 {
		emit(ItemCreditosSemJustif, unjustified, nil, nil)
	}

	// Item 7: expenses outside the plan.
	if _, rows := sumByCategory(snap.Movements, ledger.CategoryDebitosIndevidos); len(rows) > 0 {
		emit(ItemDespesasNaoPrevistas, rows, nil, nil)
	}

	// Items 10-12: irregular payment instruments.
	for id, comprovante := range map[int]string{
		ItemPagoEspecie: ledger.ComprovanteEspecie,
		ItemPagoCartao:  ledger.ComprovanteCartao,
		ItemPagoCheque:  ledger.ComprovanteCheque,
	} {
		if rows := movementsWhere(snap, func(ev ledger.DocEvaluation) bool {
			return ev.Comprovante == comprovante
		}); len(rows) > 0 {
			emit(id, rows, nil, nil)
		}
	}

	if len(missing) > 0 {
		sort.Ints(missing)
		return nil, fmt.Errorf("inconsistency templates %v missing from the reference table", missing)
	}

	if hasItem(items, ItemTodasGuias) && hasItem(items, ItemDespesaSemGuia) {
		return nil, fmt.Errorf("items 8 and 9 emitted together for contract %s", snap.Contract.ID)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return byID[items[i].ID].Ordering < byID[items[j].ID].Ordering
	})

	return items, nil
}

// guiaStatus classifies the guia situation: every populated guia missing,
// some missing, or none. The two outcomes feeding items 8 and 9 cannot both
// hold.
func guiaStatus(snap Snapshot) (allMissing, someMissing bool, missingRows, populatedRows []ledger.Movement) {
	populated, missing := 0, 0
	for _, m := range snap.Movements {
		ev, ok := snap.Evaluations[m.ID]
		if !ok || ev.Guia == "" {
			continue
		}
		populated++
		populatedRows = append(populatedRows, m)
		if ev.Guia == ledger.GuiaNaoApresentada {
			missing++
			missingRows = append(missingRows, m)
		}
	}
	if populated == 0 {
		return false, false, nil, nil
	}
	if missing == populated {
		return true, false, missingRows, populatedRows
	}
	return false, missing > 0, missingRows, populatedRows
}

func movementsWhere(snap Snapshot, pred func(ledger.DocEvaluation) bool) []ledger.Movement {
	var rows []ledger.Movement
	for _, m := range snap.Movements {
		if ev, ok := snap.Evaluations[m.ID]; ok && pred(ev) {
			rows = append(rows, m)
		}
	}
	return rows
}

func sumByCategory(movements []ledger.Movement, cat ledger.Category) (decimal.Decimal, []ledger.Movement) {
	var sum decimal.Decimal
	var rows []ledger.Movement
	for _, m := range movements {
		if m.Category == cat {
			sum = sum.Add(m.AbsAmount())
			rows = append(rows, m)
		}
	}
	return sum, rows
}

func grossYields(yields []ledger.YieldRecord) decimal.Decimal {
	var sum decimal.Decimal
	for _, y := range yields {
		sum = sum.Add(y.Gross)
	}
	return sum
}

func counterpartTotal(entries []ledger.CounterpartEntry) decimal.Decimal {
	var sum decimal.Decimal
	for _, cp := range entries {
		sum = sum.Add(cp.Planned)
	}
	return sum
}

func hasItem(items []Item, id int) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}

func render(text string, vars map[string]string) string {
	for k, v := range vars {
		text = strings.ReplaceAll(text, "{"+k+"}", v)
	}
	return text
}
