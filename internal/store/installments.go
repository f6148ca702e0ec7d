package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/smdhc/parcerias-engine/internal/ledger"
)

type InstallmentStore struct {
	db *sqlx.DB
}

func (is *InstallmentStore) ForContract(ctx context.Context, contract string) ([]ledger.Installment, error) {
	query := `
		SELECT id, contract_id, kind, number, vigencia_inicial, vigencia_final,
		       delivered, note, responsibility, responsibility_override
		FROM installments
		WHERE contract_id = $1
		ORDER BY vigencia_inicial, kind, number`

	var out []ledger.Installment
	if err := is.db.SelectContext(ctx, &out, query, contract); err != nil {
		return nil, fmt.Errorf("failed to query installments of %s: %w", contract, err)
	}
	return out, nil
}

// Replace swaps the stored schedule for the freshly reconciled one in a
// single transaction.
func (is *InstallmentStore) Replace(ctx context.Context, contract string, rows []ledger.Installment) error {
	tx, err := is.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin installments transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM installments WHERE contract_id = $1`, contract); err != nil {
		return fmt.Errorf("failed to trim installments of %s: %w", contract, err)
	}

	query := `
		INSERT INTO installments (
			contract_id, kind, number, vigencia_inicial, vigencia_final,
			delivered, note, responsibility, responsibility_override
		) VALUES (
			:contract_id, :kind, :number, :vigencia_inicial, :vigencia_final,
			:delivered, :note, :responsibility, :responsibility_override
		)`

	for i := range rows {
		rows[i].Contract = contract
		if _, err := tx.NamedExecContext(ctx, query, &rows[i]); err != nil {
			return fmt.Errorf("failed to insert installment %s %d: %w", rows[i].Kind, rows[i].Number, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit installments of %s: %w", contract, err)
	}
	return nil
}

// SetAnalystFields writes the analyst-owned fields of one installment. A
// non-nil override also becomes the tier in force; a nil override leaves the
// stored tier for the next recompute to settle.
func (is *InstallmentStore) SetAnalystFields(ctx context.Context, id int64, delivered bool, note string, override *int) (ledger.Installment, error) {
	query := `
		UPDATE installments SET
			delivered = $1,
			note = $2,
			responsibility_override = $3,
			responsibility = COALESCE($3, responsibility)
		WHERE id = $4
		RETURNING id, contract_id, kind, number, vigencia_inicial, vigencia_final,
		          delivered, note, responsibility, responsibility_override`

	var out ledger.Installment
	if err := is.db.GetContext(ctx, &out, query, delivered, note, override, id); err != nil {
		return ledger.Installment{}, fmt.Errorf("failed to update installment %d: %w", id, err)
	}
	return out, nil
}

// DeleteForContract drops the whole schedule, used when a rescission leaves
// the contract with no resources to account for.
func (is *InstallmentStore) DeleteForContract(ctx context.Context, contract string) error {
	if _, err := is.db.ExecContext(ctx, `DELETE FROM installments WHERE contract_id = $1`, contract); err != nil {
		return fmt.Errorf("failed to delete installments of %s: %w", contract, err)
	}
	return nil
}
