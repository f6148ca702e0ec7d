package ledger

import (
	"errors"
	"fmt"
)

// ErrInvalidMovement marks a row that violates the credit-xor-debit invariant
// or whose signed amount disagrees with its credit/debit columns.
var ErrInvalidMovement = errors.New("invalid movement")

// Validate enforces the per-row invariants before anything is persisted:
// credit and debit are never both positive, and the signed amount equals the
// credit or the negated debit.
func Validate(m Movement) error {
	if m.Credit.IsPositive() && m.Debit.IsPositive() {
		return fmt.Errorf("%w: movement %d has both credit and debit", ErrInvalidMovement, m.ID)
	}
	if m.Credit.IsPositive() {
		if !m.Amount.Equal(m.Credit) {
			return fmt.Errorf("%w: movement %d amount %s does not match credit %s", ErrInvalidMovement, m.ID, m.Amount, m.Credit)
		}
		return nil
	}
	if m.Debit.IsPositive() {
		if !m.Amount.Equal(m.Debit.Neg()) {
			return fmt.Errorf("%w: movement %d amount %s does not match debit %s", ErrInvalidMovement, m.ID, m.Amount, m.Debit)
		}
		return nil
	}
	if !m.Amount.IsZero() {
		return fmt.Errorf("%w: movement %d has amount %s without credit or debit", ErrInvalidMovement, m.ID, m.Amount)
	}
	return nil
}

// fullyPopulated reports whether the analyst finished filling the movement.
func fullyPopulated(m Movement) bool {
	return !m.Date.IsZero() && m.Category != CategoryNone && m.HasCompetence() && m.Origin != ""
}

// AutoFillDocEvaluation applies the documentary defaults. Movements whose
// category is exempt in the reference catalog always get all four fields
// cleared. Otherwise, once the movement is fully populated and evaluated,
// empty fields receive their positive defaults.
func AutoFillDocEvaluation(m Movement, ev DocEvaluation, exempt bool) DocEvaluation {
	if exempt {
		ev.Guia = ""
		ev.Comprovante = ""
		ev.Contratos = ""
		ev.ForaMunicipio = ""
		return ev
	}

	if m.Evaluation != EvaluationAvaliado || !fullyPopulated(m) {
		return ev
	}

	if ev.Guia == "" {
		ev.Guia = GuiaApresentada
	}
	if ev.Comprovante == "" {
		ev.Comprovante = ComprovanteCorreto
	}
	if ev.Contratos == "" {
		ev.Contratos = ContratosApresentados
	}
	if ev.ForaMunicipio == "" {
		ev.ForaMunicipio = MunicipioSaoPaulo
	}
	return ev
}
