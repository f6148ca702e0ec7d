package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/smdhc/parcerias-engine/internal/ledger"
)

// ContractStore reads the external contract table. The table is master data
// maintained by another system, so there are no writes here.
type ContractStore struct {
	db *sqlx.DB
}

const contractColumns = `
	contract_id,
	osc_name,
	portaria_name,
	transition,
	start_date,
	end_date,
	duration_months,
	planned_total,
	paid_total,
	has_counterpart,
	account,
	responsibility,
	rescission_date
`

func (cs *ContractStore) Get(ctx context.Context, id string) (ledger.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE contract_id = $1`

	var c ledger.Contract
	err := cs.db.GetContext(ctx, &c, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.Contract{}, fmt.Errorf("%w: %s", ErrUnknownContract, id)
	}
	if err != nil {
		return ledger.Contract{}, fmt.Errorf("failed to query contract %s: %w", id, err)
	}
	return c, nil
}

func (cs *ContractStore) List(ctx context.Context) ([]ledger.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts ORDER BY contract_id`

	var out []ledger.Contract
	if err := cs.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("failed to query contracts: %w", err)
	}
	return out, nil
}
