package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/smdhc/parcerias-engine/internal/classifier"
	"github.com/smdhc/parcerias-engine/internal/ledger"
)

type MovementStore struct {
	db *sqlx.DB
}

const movementColumns = `
	id,
	contract_id,
	seq,
	movement_date,
	credit,
	debit,
	amount,
	category,
	COALESCE(competence, '0001-01-01'::date) AS competence,
	origin_or_destination,
	evaluation,
	note,
	COALESCE(merged_with, '{}') AS merged_with
`

// UpsertBulk persists a batch of rows and runs the auto-classifier over the
// resulting ledger, all in one transaction. With full set, rows absent from
// the input are deleted so the stored set mirrors the input exactly. Any
// invalid row aborts the whole batch before a single write happens.
func (ms *MovementStore) UpsertBulk(ctx context.Context, contract string, rows []ledger.Movement, full bool, rule classifier.Rule) ([]ledger.Movement, error) {
	for _, m := range rows {
		if err := ledger.Validate(m); err != nil {
			return nil, err
		}
	}

	tx, err := ms.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin movements transaction: %w", err)
	}
	defer tx.Rollback()

	if full {
		keep := make(pq.Int64Array, 0, len(rows))
		for _, m := range rows {
			if m.ID > 0 {
				keep = append(keep, m.ID)
			}
		}
		_, err := tx.ExecContext(ctx,
			`DELETE FROM movements WHERE contract_id = $1 AND NOT (id = ANY($2))`,
			contract, keep)
		if err != nil {
			return nil, fmt.Errorf("failed to trim movements of %s: %w", contract, err)
		}
	}

	for i := range rows {
		if err := upsertMovement(ctx, tx, contract, &rows[i]); err != nil {
			return nil, err
		}
	}

	all, err := selectMovements(ctx, tx, MovementFilter{Contract: contract})
	if err != nil {
		return nil, err
	}

	for _, id := range classifier.Apply(rule, all) {
		m := movementByID(all, id)
		_, err := tx.ExecContext(ctx,
			`UPDATE movements SET category = $1, evaluation = $2 WHERE id = $3`,
			m.Category, m.Evaluation, id)
		if err != nil {
			return nil, fmt.Errorf("failed to classify movement %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit movements of %s: %w", contract, err)
	}
	log.Printf("Upserted %d rows into movements table for %s", len(rows), contract)
	return all, nil
}

func upsertMovement(ctx context.Context, tx *sqlx.Tx, contract string, m *ledger.Movement) error {
	m.Contract = contract

	if m.ID > 0 {
		_, err := tx.ExecContext(ctx, `
			UPDATE movements SET
				seq = $1,
				movement_date = $2,
				credit = $3,
				debit = $4,
				amount = $5,
				category = $6,
				competence = $7,
				origin_or_destination = $8,
				evaluation = $9,
				note = $10,
				merged_with = $11
			WHERE id = $12 AND contract_id = $13`,
			m.Seq, m.Date, m.Credit, m.Debit, m.Amount, m.Category,
			nullableDate(m.Competence), m.Origin, m.Evaluation, m.Note,
			m.MergedWith, m.ID, contract)
		if err != nil {
			return fmt.Errorf("failed to update movement %d: %w", m.ID, err)
		}
		return nil
	}

	err := tx.QueryRowxContext(ctx, `
		INSERT INTO movements (
			contract_id,
			seq,
			movement_date,
			credit,
			debit,
			amount,
			category,
			competence,
			origin_or_destination,
			evaluation,
			note,
			merged_with
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`,
		contract, m.Seq, m.Date, m.Credit, m.Debit, m.Amount, m.Category,
		nullableDate(m.Competence), m.Origin, m.Evaluation, m.Note,
		m.MergedWith).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("failed to insert movement: %w", err)
	}
	return nil
}

func (ms *MovementStore) Get(ctx context.Context, id int64) (ledger.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`

	var m ledger.Movement
	if err := ms.db.GetContext(ctx, &m, query, id); err != nil {
		return ledger.Movement{}, fmt.Errorf("failed to query movement %d: %w", id, err)
	}
	return m, nil
}

func (ms *MovementStore) List(ctx context.Context, f MovementFilter) ([]ledger.Movement, error) {
	return selectMovements(ctx, ms.db, f)
}

// Clear removes a contract's whole accountable set in one transaction:
// yields, counterparts and movements. Documentary evaluations and nota-fiscal
// links go with the movements through the schema's cascade; ratification
// snapshots stay, they are the audit trail.
func (ms *MovementStore) Clear(ctx context.Context, contract string) error {
	tx, err := ms.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin clear transaction: %w", err)
	}
	defer tx.Rollback()

	for _, query := range []string{
		`DELETE FROM yields WHERE contract_id = $1`,
		`DELETE FROM counterparts WHERE contract_id = $1`,
		`DELETE FROM movements WHERE contract_id = $1`,
	} {
		if _, err := tx.ExecContext(ctx, query, contract); err != nil {
			return fmt.Errorf("failed to clear contract %s: %w", contract, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit clear of %s: %w", contract, err)
	}
	log.Printf("Cleared ledger and side records of %s", contract)
	return nil
}

func selectMovements(ctx context.Context, q sqlx.QueryerContext, f MovementFilter) ([]ledger.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE contract_id = $1`
	args := []any{f.Contract}

	if f.Category != "" {
		args = append(args, f.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if f.Evaluation != "" {
		args = append(args, f.Evaluation)
		query += fmt.Sprintf(" AND evaluation = $%d", len(args))
	}
	if !f.Competence.IsZero() {
		args = append(args, f.Competence)
		query += fmt.Sprintf(" AND competence = $%d", len(args))
	}
	if f.Origin != "" {
		args = append(args, "%"+f.Origin+"%")
		query += fmt.Sprintf(" AND origin_or_destination ILIKE $%d", len(args))
	}
	query += " ORDER BY movement_date, seq, id"

	var out []ledger.Movement
	if err := sqlx.SelectContext(ctx, q, &out, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query movements of %s: %w", f.Contract, err)
	}
	return out, nil
}

func movementByID(rows []ledger.Movement, id int64) ledger.Movement {
	for _, m := range rows {
		if m.ID == id {
			return m
		}
	}
	return ledger.Movement{}
}

// nullableDate maps the zero time to SQL NULL so unset competences do not
// land as year-one dates.
func nullableDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
