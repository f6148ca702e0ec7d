package classifier

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smdhc/parcerias-engine/internal/ledger"
)

func contract021() ledger.Contract {
	return ledger.Contract{
		ID:           "TCL/024/2023/SMDHC/SESANA",
		PortariaName: "Portaria nº 021/SMDHC/2023",
	}
}

func debit(comp time.Time, origin string) ledger.Movement {
	return ledger.Movement{
		Date:       comp,
		Debit:      decimal.NewFromInt(100),
		Amount:     decimal.NewFromInt(-100),
		Competence: comp,
		Origin:     origin,
	}
}

func TestClassifyOnBoundary(t *testing.T) {
	t.Parallel()

	rule := RuleFor(contract021())
	if !rule.Enabled {
		t.Fatal("portaria 021 must yield a rule")
	}

	boundary := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	cat, eval, ok := Classify(rule, debit(boundary, "ACME LTDA"))
	if !ok || cat != ledger.CategoryIdentificado || eval != ledger.EvaluationAvaliado {
		t.Errorf("boundary competence: got (%q, %q, %v)", cat, eval, ok)
	}

	before := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)
	if _, _, ok := Classify(rule, debit(before, "")); ok {
		t.Error("competence before cut-off must not classify")
	}
}

func TestClassifyUnidentified(t *testing.T) {
	t.Parallel()

	rule := RuleFor(contract021())
	comp := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)

	cat, _, ok := Classify(rule, debit(comp, ""))
	if !ok || cat != ledger.CategoryNaoIdentificado {
		t.Errorf("empty origin: got (%q, %v)", cat, ok)
	}
}

func TestClassifyNeverOverwrites(t *testing.T) {
	t.Parallel()

	rule := RuleFor(contract021())
	m := debit(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), "ACME LTDA")
	m.Category = ledger.CategoryParcela

	if _, _, ok := Classify(rule, m); ok {
		t.Error("analyst category must never be overwritten")
	}
}

func TestClassifyRequiresCompetence(t *testing.T) {
	t.Parallel()

	rule := RuleFor(contract021())
	m := debit(time.Time{}, "ACME LTDA")
	m.Competence = time.Time{}

	if _, _, ok := Classify(rule, m); ok {
		t.Error("missing competence must not classify")
	}
}

func TestRuleForTransitionPortarias(t *testing.T) {
	t.Parallel()

	c := ledger.Contract{PortariaName: "Portaria nº 121/SMDHC/2019"}
	if RuleFor(c).Enabled {
		t.Error("portaria 121 without transition flag must not classify")
	}

	c.Transition = true
	rule := RuleFor(c)
	if !rule.Enabled || !rule.Cutoff.Equal(time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("portaria 121 with transition: %+v", rule)
	}

	c = ledger.Contract{PortariaName: "Portaria nº 140/SMDHC/2023", Transition: true}
	rule = RuleFor(c)
	if !rule.Enabled || !rule.Cutoff.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("portaria 140 with transition: %+v", rule)
	}

	c = ledger.Contract{PortariaName: "Portaria nº 077/SMDHC/2020"}
	if RuleFor(c).Enabled {
		t.Error("unknown portaria must not classify")
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	t.Parallel()

	rule := RuleFor(contract021())
	comp := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
	rows := []ledger.Movement{
		debit(comp, "ACME LTDA"),
		debit(time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), ""),
	}
	rows[0].ID = 1
	rows[1].ID = 2

	changed := Apply(rule, rows)
	if len(changed) != 1 || changed[0] != 1 {
		t.Fatalf("first pass changed %v, want [1]", changed)
	}

	if rows[0].Category != ledger.CategoryIdentificado || rows[0].Evaluation != ledger.EvaluationAvaliado {
		t.Errorf("row 1 not classified: %+v", rows[0])
	}
	if rows[1].Category != ledger.CategoryNone {
		t.Errorf("row 2 must stay unclassified: %+v", rows[1])
	}

	snapshot := make([]ledger.Movement, len(rows))
	copy(snapshot, rows)

	if changed := Apply(rule, rows); changed != nil {
		t.Errorf("second pass changed %v, want nothing", changed)
	}
	for i := range rows {
		if rows[i].Category != snapshot[i].Category || rows[i].Evaluation != snapshot[i].Evaluation {
			t.Errorf("row %d mutated on second pass", i)
		}
	}
}
