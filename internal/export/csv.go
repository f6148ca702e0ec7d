// Package export renders a classified ledger as the semicolon-separated CSV
// the accountability analysts file with the official processes. The shape is
// fixed: ten columns, CRLF line endings, a UTF-8 BOM so spreadsheet software
// opens the accents correctly, and comma-decimal monetary values.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/smdhc/parcerias-engine/internal/dates"
	"github.com/smdhc/parcerias-engine/internal/ledger"
	"github.com/smdhc/parcerias-engine/internal/money"
)

var header = []string{
	"Índice",
	"Data",
	"Crédito",
	"Débito",
	"Composição de valor",
	"Categoria da transação",
	"Competência",
	"Origem ou Destino",
	"Avaliação",
	"Observações",
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteLedger writes the full CSV document, BOM included, for the given rows.
// Rows are written in the order received.
func WriteLedger(w io.Writer, rows []ledger.Movement) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	cw.Comma = ';'
	cw.UseCRLF = true

	if err := cw.Write(header); err != nil {
		return err
	}
	for i, m := range rows {
		if err := cw.Write(record(i+1, m)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func record(index int, m ledger.Movement) []string {
	credit := ""
	if m.Credit.IsPositive() {
		credit = money.Format(m.Credit)
	}
	debit := ""
	if m.Debit.IsPositive() {
		debit = money.Format(m.Debit)
	}

	competence := ""
	if m.HasCompetence() {
		competence = dates.FormatCompetence(m.Competence)
	}

	return []string{
		strconv.Itoa(index),
		dates.FormatBR(m.Date),
		credit,
		debit,
		money.Format(m.Amount),
		string(m.Category),
		competence,
		m.Origin,
		string(m.Evaluation),
		m.Note,
	}
}
