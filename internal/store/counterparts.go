package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/smdhc/parcerias-engine/internal/ledger"
)

type CounterpartStore struct {
	db *sqlx.DB
}

func (cs *CounterpartStore) ForContract(ctx context.Context, contract string) ([]ledger.CounterpartEntry, error) {
	query := `
		SELECT id, contract_id, competence, category, planned, executed,
		       considered, has_guia, has_proof, note
		FROM counterparts
		WHERE contract_id = $1
		ORDER BY competence, category, id`

	var out []ledger.CounterpartEntry
	if err := cs.db.SelectContext(ctx, &out, query, contract); err != nil {
		return nil, fmt.Errorf("failed to query counterparts of %s: %w", contract, err)
	}
	return out, nil
}

func (cs *CounterpartStore) Upsert(ctx context.Context, cp *ledger.CounterpartEntry) error {
	if cp.ID > 0 {
		query := `
			UPDATE counterparts SET
				competence = :competence,
				category = :category,
				planned = :planned,
				executed = :executed,
				considered = :considered,
				has_guia = :has_guia,
				has_proof = :has_proof,
				note = :note
			WHERE id = :id AND contract_id = :contract_id`
		if _, err := cs.db.NamedExecContext(ctx, query, cp); err != nil {
			return fmt.Errorf("failed to update counterpart %d: %w", cp.ID, err)
		}
		return nil
	}

	query := `
		INSERT INTO counterparts (
			contract_id, competence, category, planned, executed,
			considered, has_guia, has_proof, note
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	err := cs.db.QueryRowxContext(ctx, query,
		cp.Contract, cp.Competence, cp.Category, cp.Planned, cp.Executed,
		cp.Considered, cp.HasGuia, cp.HasProof, cp.Note).Scan(&cp.ID)
	if err != nil {
		return fmt.Errorf("failed to insert counterpart for %s: %w", cp.Contract, err)
	}
	return nil
}
