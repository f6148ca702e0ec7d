package analytics

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/smdhc/parcerias-engine/internal/ledger"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestByCategory(t *testing.T) {
	t.Parallel()

	rows := []ledger.Movement{
		{Credit: dec("100000"), Amount: dec("100000"), Category: ledger.CategoryParcela},
		{Debit: dec("1500.50"), Amount: dec("-1500.50"), Category: ledger.CategoryIdentificado},
		{Debit: dec("499.50"), Amount: dec("-499.50"), Category: ledger.CategoryIdentificado},
		{Debit: dec("35"), Amount: dec("-35"), Category: ledger.CategoryTaxasBancarias},
		{Credit: dec("12"), Amount: dec("12")},
	}

	out, err := ByCategory(rows)
	if err != nil {
		t.Fatalf("ByCategory: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("got %d groups, want 4: %+v", len(out), out)
	}

	byName := map[string]CategoryBreakdown{}
	for _, b := range out {
		byName[b.Category] = b
	}

	ident := byName[string(ledger.CategoryIdentificado)]
	if ident.Rows != 2 || !ident.Debits.Equal(dec("2000")) || !ident.Net.Equal(dec("-2000")) {
		t.Errorf("identificado group = %+v", ident)
	}
	parcela := byName[string(ledger.CategoryParcela)]
	if parcela.Rows != 1 || !parcela.Credits.Equal(dec("100000")) {
		t.Errorf("parcela group = %+v", parcela)
	}
	if _, ok := byName["Sem categoria"]; !ok {
		t.Error("uncategorized rows must group under Sem categoria")
	}

	for i := 1; i < len(out); i++ {
		if out[i-1].Category > out[i].Category {
			t.Errorf("groups out of order: %q > %q", out[i-1].Category, out[i].Category)
		}
	}
}

func TestByCategoryEmpty(t *testing.T) {
	t.Parallel()

	out, err := ByCategory(nil)
	if err != nil {
		t.Fatalf("ByCategory: %v", err)
	}
	if out != nil {
		t.Errorf("empty ledger must yield no groups, got %+v", out)
	}
}
