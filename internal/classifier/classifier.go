// Package classifier applies the portaria cut-off rules that assign
// transaction categories to freshly ingested movements. It runs once, right
// after a bulk upsert, inside the same transaction.
package classifier

import (
	"time"

	"github.com/smdhc/parcerias-engine/internal/ledger"
	"github.com/smdhc/parcerias-engine/internal/portaria"
)

// Rule is the resolved auto-classification rule for one contract.
type Rule struct {
	Cutoff  time.Time
	Enabled bool
}

// RuleFor resolves the contract's portaria into a classification rule.
// Contracts outside the known portaria set get no rule.
func RuleFor(c ledger.Contract) Rule {
	norm := portaria.Normalize(c.PortariaName)
	cutoff, ok := portaria.Cutoff(norm.Portaria, c.Transition)
	return Rule{Cutoff: cutoff, Enabled: ok}
}

// Classify decides the category and evaluation for one movement. It returns
// false when the rule does not apply: no rule for the portaria, competence
// missing or before the cut-off, or a category already set by the analyst.
func Classify(rule Rule, m ledger.Movement) (ledger.Category, ledger.Evaluation, bool) {
	if !rule.Enabled {
		return "", "", false
	}
	if !m.HasCompetence() || m.Competence.Before(rule.Cutoff) {
		return "", "", false
	}
	if m.Category != ledger.CategoryNone {
		return "", "", false
	}

	if m.Origin != "" {
		return ledger.CategoryIdentificado, ledger.EvaluationAvaliado, true
	}
	return ledger.CategoryNaoIdentificado, ledger.EvaluationAvaliado, true
}

// Apply runs Classify over a batch in place and returns the ids of the rows
// it rewrote. Running it twice over the same rows is a no-op the second time,
// because classified rows no longer have an empty category.
func Apply(rule Rule, rows []ledger.Movement) []int64 {
	var changed []int64
	for i := range rows {
		cat, eval, ok := Classify(rule, rows[i])
		if !ok {
			continue
		}
		rows[i].Category = cat
		rows[i].Evaluation = eval
		changed = append(changed, rows[i].ID)
	}
	return changed
}
