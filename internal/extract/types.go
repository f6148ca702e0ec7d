package extract

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smdhc/parcerias-engine/internal/ledger"
)

var (
	// ErrEmptyStatement is returned when a recognized statement carries no
	// movements.
	ErrEmptyStatement = errors.New("empty statement")
	// ErrUnrecognizedFormat is returned when neither known layout matches
	// the input.
	ErrUnrecognizedFormat = errors.New("unrecognized statement format")
)

// Options tune the extraction of one statement.
type Options struct {
	// BankName replaces the origin-or-destination of Resgate and Taxas
	// Bancárias rows, which never name a counterparty.
	BankName string
}

// RawMovement is one extracted statement row, before persistence.
type RawMovement struct {
	Date        time.Time
	Credit      decimal.Decimal
	Debit       decimal.Decimal
	Amount      decimal.Decimal // signed: credit or -debit
	Category    ledger.Category
	Competence  time.Time
	Origin      string
	Saldo       decimal.Decimal
	HasSaldo    bool
	BalanceOnly bool // "Saldo Anterior" style rows carry no movement
}

// Layout identifies one of the two known statement formats.
type Layout int

const (
	LayoutUnknown Layout = iota
	Layout1              // legacy: date first, amount, C/D marker, optional balance
	Layout2              // new: amount, (+)/(-) sign, date, documents, history
)
