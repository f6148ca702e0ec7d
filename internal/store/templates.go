package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/smdhc/parcerias-engine/internal/ledger"
)

// TemplateStore reads the reference tables: the twelve inconsistency
// templates and the transaction-category catalog.
type TemplateStore struct {
	db *sqlx.DB
}

func (ts *TemplateStore) List(ctx context.Context) ([]ledger.InconsistencyTemplate, error) {
	query := `
		SELECT id, name, model_text, resolution, ordering
		FROM inconsistency_templates
		ORDER BY ordering`

	var out []ledger.InconsistencyTemplate
	if err := ts.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("failed to query inconsistency templates: %w", err)
	}
	return out, nil
}

// CategoryRefs returns, per category name, whether documentary evaluation is
// exempt for it.
func (ts *TemplateStore) CategoryRefs(ctx context.Context) (map[string]bool, error) {
	query := `SELECT id, name, docs_exempt FROM category_refs`

	var rows []ledger.CategoryRef
	if err := ts.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to query category catalog: %w", err)
	}

	out := make(map[string]bool, len(rows))
	for _, r := range rows {
		out[r.Name] = r.DocsExempt
	}
	return out, nil
}
