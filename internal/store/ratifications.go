package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/smdhc/parcerias-engine/internal/ledger"
)

// RatificationStore appends inconsistency ratification snapshots. The table
// is the audit trail of analyst decisions: rows are never updated or deleted,
// re-ratifying an item simply appends another batch.
type RatificationStore struct {
	db *sqlx.DB
}

func (rs *RatificationStore) InsertBatch(ctx context.Context, rows []ledger.RatifiedInconsistency) error {
	query := `
		INSERT INTO ratified_inconsistencies (
			contract_id,
			item_name,
			movement_id,
			movement_date,
			amount,
			category,
			origin_or_destination,
			evaluation,
			status,
			operator,
			batch_id
		) VALUES (
			:contract_id,
			:item_name,
			:movement_id,
			:movement_date,
			:amount,
			:category,
			:origin_or_destination,
			:evaluation,
			:status,
			:operator,
			:batch_id
		)`

	tx, err := rs.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin ratification transaction: %w", err)
	}
	defer tx.Rollback()

	for i := range rows {
		if _, err := tx.NamedExecContext(ctx, query, &rows[i]); err != nil {
			return fmt.Errorf("failed to insert ratification of %q: %w", rows[i].ItemName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ratification batch: %w", err)
	}
	return nil
}

// RatifiedNames returns the set of item names already ratified for the
// contract, for marking re-detected items.
func (rs *RatificationStore) RatifiedNames(ctx context.Context, contract string) (map[string]bool, error) {
	query := `
		SELECT DISTINCT item_name
		FROM ratified_inconsistencies
		WHERE contract_id = $1`

	var names []string
	if err := rs.db.SelectContext(ctx, &names, query, contract); err != nil {
		return nil, fmt.Errorf("failed to query ratified items of %s: %w", contract, err)
	}

	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out, nil
}

func (rs *RatificationStore) ForContract(ctx context.Context, contract string) ([]ledger.RatifiedInconsistency, error) {
	query := `
		SELECT id, contract_id, item_name, movement_id, movement_date, amount,
		       category, origin_or_destination, evaluation, status, operator,
		       batch_id, created_at
		FROM ratified_inconsistencies
		WHERE contract_id = $1
		ORDER BY created_at, id`

	var out []ledger.RatifiedInconsistency
	if err := rs.db.SelectContext(ctx, &out, query, contract); err != nil {
		return nil, fmt.Errorf("failed to query ratifications of %s: %w", contract, err)
	}
	return out, nil
}
