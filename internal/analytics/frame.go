// Package analytics produces the per-category ledger breakdown through gota
// dataframes. The figures are diagnostic (two-digit rounded floats under the
// hood); the exact decimals live in the correlator and report packages.
package analytics

import (
	"fmt"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/shopspring/decimal"

	"github.com/smdhc/parcerias-engine/internal/ledger"
)

// CategoryBreakdown is one aggregated row of the by-category view.
type CategoryBreakdown struct {
	Category string          `json:"category"`
	Rows     int             `json:"rows"`
	Credits  decimal.Decimal `json:"credits"`
	Debits   decimal.Decimal `json:"debits"`
	Net      decimal.Decimal `json:"net"`
}

// ByCategory groups the ledger by transaction category and sums credits and
// debits per group. Uncategorized rows are grouped under "Sem categoria".
// Results come back sorted by category name.
func ByCategory(rows []ledger.Movement) ([]CategoryBreakdown, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	cats := make([]string, len(rows))
	credits := make([]float64, len(rows))
	debits := make([]float64, len(rows))
	for i, m := range rows {
		cat := string(m.Category)
		if cat == "" {
			cat = "Sem categoria"
		}
		cats[i] = cat
		credits[i], _ = m.Credit.Float64()
		debits[i], _ = m.Debit.Float64()
	}

	df := dataframe.New(
		series.New(cats, series.String, "categoria"),
		series.New(credits, series.Float, "credito"),
		series.New(debits, series.Float, "debito"),
	)
	if df.Error() != nil {
		return nil, fmt.Errorf("error building ledger dataframe: %v", df.Error())
	}

	agg := df.GroupBy("categoria").Aggregation(
		[]dataframe.AggregationType{
			dataframe.Aggregation_SUM,
			dataframe.Aggregation_SUM,
			dataframe.Aggregation_COUNT,
		},
		[]string{"credito", "debito", "categoria"},
	)
	if agg.Error() != nil {
		return nil, fmt.Errorf("error aggregating ledger dataframe: %v", agg.Error())
	}

	names := agg.Col("categoria").Records()
	creditSums := agg.Col("credito_SUM").Float()
	debitSums := agg.Col("debito_SUM").Float()
	counts := agg.Col("categoria_COUNT").Float()

	out := make([]CategoryBreakdown, len(names))
	for i := range names {
		credit := decimal.NewFromFloat(creditSums[i]).Round(2)
		debit := decimal.NewFromFloat(debitSums[i]).Round(2)
		out[i] = CategoryBreakdown{
			Category: names[i],
			Rows:     int(counts[i]),
			Credits:  credit,
			Debits:   debit,
			Net:      credit.Sub(debit),
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}
