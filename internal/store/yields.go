package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/smdhc/parcerias-engine/internal/ledger"
)

type YieldStore struct {
	db *sqlx.DB
}

func (ys *YieldStore) ForContract(ctx context.Context, contract string) ([]ledger.YieldRecord, error) {
	query := `
		SELECT id, contract_id, reference_date, gross, ir, iof, note
		FROM yields
		WHERE contract_id = $1
		ORDER BY reference_date, id`

	var out []ledger.YieldRecord
	if err := ys.db.SelectContext(ctx, &out, query, contract); err != nil {
		return nil, fmt.Errorf("failed to query yields of %s: %w", contract, err)
	}
	return out, nil
}

func (ys *YieldStore) Insert(ctx context.Context, y *ledger.YieldRecord) error {
	query := `
		INSERT INTO yields (contract_id, reference_date, gross, ir, iof, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := ys.db.QueryRowxContext(ctx, query,
		y.Contract, y.ReferenceDate, y.Gross, y.IR, y.IOF, y.Note).Scan(&y.ID)
	if err != nil {
		return fmt.Errorf("failed to insert yield for %s: %w", y.Contract, err)
	}
	return nil
}

func (ys *YieldStore) Delete(ctx context.Context, id int64) error {
	if _, err := ys.db.ExecContext(ctx, `DELETE FROM yields WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete yield %d: %w", id, err)
	}
	return nil
}
