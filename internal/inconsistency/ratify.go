package inconsistency

import (
	"time"

	"github.com/google/uuid"

	"github.com/smdhc/parcerias-engine/internal/ledger"
)

// StatusRatified is the status every ratification row is written with; the
// log is append-only and rows are never revised.
const StatusRatified = "Ratificada"

// BuildRatifications snapshots the supporting movements of a detected item
// into audit rows. Every call produces a fresh batch id; re-ratifying the
// same item appends a new batch.
func BuildRatifications(contract string, item Item, operator string) []ledger.RatifiedInconsistency {
	batch := uuid.NewString()
	now := time.Now().UTC()

	rows := make([]ledger.RatifiedInconsistency, 0, len(item.Supporting))
	for _, m := range item.Supporting {
		rows = append(rows, ledger.RatifiedInconsistency{
			Contract:   contract,
			ItemName:   item.Name,
			MovementID: m.ID,
			Date:       m.Date,
			Amount:     m.Amount,
			Category:   m.Category,
			Origin:     m.Origin,
			Evaluation: m.Evaluation,
			Status:     StatusRatified,
			Operator:   operator,
			BatchID:    batch,
			CreatedAt:  now,
		})
	}

	// Numeric-only items carry no supporting rows; the ratification is
	// still recorded so later runs report the item as ratified.
	if len(rows) == 0 {
		rows = append(rows, ledger.RatifiedInconsistency{
			Contract:  contract,
			ItemName:  item.Name,
			Status:    StatusRatified,
			Operator:  operator,
			BatchID:   batch,
			CreatedAt: now,
		})
	}

	return rows
}
