package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/smdhc/parcerias-engine/internal/ledger"
)

type EvaluationStore struct {
	db *sqlx.DB
}

// ForContract loads the documentary evaluations of every movement of the
// contract, keyed by movement id.
func (es *EvaluationStore) ForContract(ctx context.Context, contract string) (map[int64]ledger.DocEvaluation, error) {
	query := `
		SELECT e.id, e.movement_id, e.guia, e.comprovante, e.contratos, e.fora_municipio
		FROM doc_evaluations e
		JOIN movements m ON m.id = e.movement_id
		WHERE m.contract_id = $1`

	var rows []ledger.DocEvaluation
	if err := es.db.SelectContext(ctx, &rows, query, contract); err != nil {
		return nil, fmt.Errorf("failed to query doc evaluations of %s: %w", contract, err)
	}

	out := make(map[int64]ledger.DocEvaluation, len(rows))
	for _, ev := range rows {
		out[ev.MovementID] = ev
	}
	return out, nil
}

// Upsert writes the evaluation of one movement, one row per movement.
func (es *EvaluationStore) Upsert(ctx context.Context, ev *ledger.DocEvaluation) error {
	query := `
		INSERT INTO doc_evaluations (
			movement_id,
			guia,
			comprovante,
			contratos,
			fora_municipio
		) VALUES (
			:movement_id,
			:guia,
			:comprovante,
			:contratos,
			:fora_municipio
		)
		ON CONFLICT (movement_id) DO UPDATE SET
			guia = EXCLUDED.guia,
			comprovante = EXCLUDED.comprovante,
			contratos = EXCLUDED.contratos,
			fora_municipio = EXCLUDED.fora_municipio`

	if _, err := es.db.NamedExecContext(ctx, query, ev); err != nil {
		return fmt.Errorf("failed to upsert doc evaluation of movement %d: %w", ev.MovementID, err)
	}
	return nil
}
