package store

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/smdhc/parcerias-engine/internal/classifier"
	"github.com/smdhc/parcerias-engine/internal/ledger"
)

// ErrUnknownContract marks a read against a contract the external contract
// table does not know.
var ErrUnknownContract = errors.New("unknown contract")

// MovementFilter narrows List queries. Zero-valued fields are ignored.
type MovementFilter struct {
	Contract   string
	Category   string
	Evaluation string
	Competence time.Time
	Origin     string
}

type Storage struct {
	Contracts interface {
		Get(ctx context.Context, id string) (ledger.Contract, error)
		List(ctx context.Context) ([]ledger.Contract, error)
	}

	Movements interface {
		UpsertBulk(ctx context.Context, contract string, rows []ledger.Movement, full bool, rule classifier.Rule) ([]ledger.Movement, error)
		Get(ctx context.Context, id int64) (ledger.Movement, error)
		List(ctx context.Context, f MovementFilter) ([]ledger.Movement, error)
		Clear(ctx context.Context, contract string) error
	}

	Evaluations interface {
		ForContract(ctx context.Context, contract string) (map[int64]ledger.DocEvaluation, error)
		Upsert(ctx context.Context, ev *ledger.DocEvaluation) error
	}

	NotaFiscais interface {
		ForMovement(ctx context.Context, movementID int64) ([]ledger.NotaFiscalLink, error)
		Insert(ctx context.Context, link *ledger.NotaFiscalLink) error
		Delete(ctx context.Context, id int64) error
	}

	Yields interface {
		ForContract(ctx context.Context, contract string) ([]ledger.YieldRecord, error)
		Insert(ctx context.Context, y *ledger.YieldRecord) error
		Delete(ctx context.Context, id int64) error
	}

	Counterparts interface {
		ForContract(ctx context.Context, contract string) ([]ledger.CounterpartEntry, error)
		Upsert(ctx context.Context, cp *ledger.CounterpartEntry) error
	}

	BankAccounts interface {
		ForContract(ctx context.Context, contract string) (*ledger.BankAccountRecord, error)
		Upsert(ctx context.Context, rec *ledger.BankAccountRecord) error
	}

	Budget interface {
		ForContract(ctx context.Context, contract string) ([]ledger.PlannedBudgetLine, error)
	}

	Templates interface {
		List(ctx context.Context) ([]ledger.InconsistencyTemplate, error)
		CategoryRefs(ctx context.Context) (map[string]bool, error)
	}

	Ratifications interface {
		InsertBatch(ctx context.Context, rows []ledger.RatifiedInconsistency) error
		RatifiedNames(ctx context.Context, contract string) (map[string]bool, error)
		ForContract(ctx context.Context, contract string) ([]ledger.RatifiedInconsistency, error)
	}

	Installments interface {
		ForContract(ctx context.Context, contract string) ([]ledger.Installment, error)
		Replace(ctx context.Context, contract string, rows []ledger.Installment) error
		SetAnalystFields(ctx context.Context, id int64, delivered bool, note string, override *int) (ledger.Installment, error)
		DeleteForContract(ctx context.Context, contract string) error
	}
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{
		Contracts:     &ContractStore{db: db},
		Movements:     &MovementStore{db: db},
		Evaluations:   &EvaluationStore{db: db},
		NotaFiscais:   &NotaFiscalStore{db: db},
		Yields:        &YieldStore{db: db},
		Counterparts:  &CounterpartStore{db: db},
		BankAccounts:  &BankAccountStore{db: db},
		Budget:        &BudgetStore{db: db},
		Templates:     &TemplateStore{db: db},
		Ratifications: &RatificationStore{db: db},
		Installments:  &InstallmentStore{db: db},
	}
}
