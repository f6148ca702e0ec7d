package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/smdhc/parcerias-engine/internal/ledger"
)

type NotaFiscalStore struct {
	db *sqlx.DB
}

func (ns *NotaFiscalStore) ForMovement(ctx context.Context, movementID int64) ([]ledger.NotaFiscalLink, error) {
	query := `
		SELECT id, movement_id, number, issuer, issue_date, amount, url
		FROM nota_fiscal_links
		WHERE movement_id = $1
		ORDER BY issue_date, id`

	var out []ledger.NotaFiscalLink
	if err := ns.db.SelectContext(ctx, &out, query, movementID); err != nil {
		return nil, fmt.Errorf("failed to query nota fiscal links of movement %d: %w", movementID, err)
	}
	return out, nil
}

func (ns *NotaFiscalStore) Insert(ctx context.Context, link *ledger.NotaFiscalLink) error {
	query := `
		INSERT INTO nota_fiscal_links (movement_id, number, issuer, issue_date, amount, url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := ns.db.QueryRowxContext(ctx, query,
		link.MovementID, link.Number, link.Issuer, link.IssueDate,
		link.Amount, link.URL).Scan(&link.ID)
	if err != nil {
		return fmt.Errorf("failed to insert nota fiscal link: %w", err)
	}
	return nil
}

func (ns *NotaFiscalStore) Delete(ctx context.Context, id int64) error {
	if _, err := ns.db.ExecContext(ctx, `DELETE FROM nota_fiscal_links WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete nota fiscal link %d: %w", id, err)
	}
	return nil
}
