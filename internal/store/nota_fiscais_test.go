package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/smdhc/parcerias-engine/internal/ledger"
)

func mockNotaFiscalStore(t *testing.T) (*NotaFiscalStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return &NotaFiscalStore{db: sqlx.NewDb(db, "sqlmock")}, mock
}

func TestNotaFiscalInsertAssignsID(t *testing.T) {
	t.Parallel()

	ns, mock := mockNotaFiscalStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO nota_fiscal_links`)).
		WithArgs(int64(7), "NF-1234", "Acme Servicos Ltda", sqlmock.AnyArg(), sqlmock.AnyArg(), "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	link := &ledger.NotaFiscalLink{
		MovementID: 7,
		Number:     "NF-1234",
		Issuer:     "Acme Servicos Ltda",
		IssueDate:  time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC),
		Amount:     decimal.NewFromInt(1500),
	}
	if err := ns.Insert(context.Background(), link); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if link.ID != 42 {
		t.Errorf("link id = %d, want 42", link.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected statement flow: %v", err)
	}
}

func TestNotaFiscalForMovement(t *testing.T) {
	t.Parallel()

	ns, mock := mockNotaFiscalStore(t)

	cols := []string{"id", "movement_id", "number", "issuer", "issue_date", "amount", "url"}
	mock.ExpectQuery(regexp.QuoteMeta(`FROM nota_fiscal_links`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(1), int64(7), "NF-1234", "Acme Servicos Ltda",
				time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC), "1500.00", ""))

	out, err := ns.ForMovement(context.Background(), 7)
	if err != nil {
		t.Fatalf("ForMovement: %v", err)
	}
	if len(out) != 1 || out[0].Number != "NF-1234" || !out[0].Amount.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("unexpected links: %+v", out)
	}
}
