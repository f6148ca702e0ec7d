package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/smdhc/parcerias-engine/internal/ledger"
)

type BankAccountStore struct {
	db *sqlx.DB
}

// ForContract returns the recorded execution account, or nil when the analyst
// has not filled one in yet.
func (bs *BankAccountStore) ForContract(ctx context.Context, contract string) (*ledger.BankAccountRecord, error) {
	query := `
		SELECT id, contract_id, statement_bank, execution_account
		FROM bank_accounts
		WHERE contract_id = $1`

	var rec ledger.BankAccountRecord
	err := bs.db.GetContext(ctx, &rec, query, contract)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query bank account of %s: %w", contract, err)
	}
	return &rec, nil
}

func (bs *BankAccountStore) Upsert(ctx context.Context, rec *ledger.BankAccountRecord) error {
	query := `
		INSERT INTO bank_accounts (contract_id, statement_bank, execution_account)
		VALUES (:contract_id, :statement_bank, :execution_account)
		ON CONFLICT (contract_id) DO UPDATE SET
			statement_bank = EXCLUDED.statement_bank,
			execution_account = EXCLUDED.execution_account`

	if _, err := bs.db.NamedExecContext(ctx, query, rec); err != nil {
		return fmt.Errorf("failed to upsert bank account of %s: %w", rec.Contract, err)
	}
	return nil
}
