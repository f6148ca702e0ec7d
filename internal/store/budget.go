package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/smdhc/parcerias-engine/internal/ledger"
)

// BudgetStore reads the planned budget of each partnership. Like contracts,
// the table is master data from the partnership plan and is not written here.
type BudgetStore struct {
	db *sqlx.DB
}

func (bs *BudgetStore) ForContract(ctx context.Context, contract string) ([]ledger.PlannedBudgetLine, error) {
	query := `
		SELECT id, contract_id, category, rubric, amount_per_month, amendment_index
		FROM planned_budget
		WHERE contract_id = $1
		ORDER BY amendment_index, category, id`

	var out []ledger.PlannedBudgetLine
	if err := bs.db.SelectContext(ctx, &out, query, contract); err != nil {
		return nil, fmt.Errorf("failed to query planned budget of %s: %w", contract, err)
	}
	return out, nil
}
