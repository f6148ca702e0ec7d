package extract

import (
	"regexp"
	"strings"

	"github.com/smdhc/parcerias-engine/internal/dates"
	"github.com/smdhc/parcerias-engine/internal/ledger"
	"github.com/smdhc/parcerias-engine/internal/money"
)

var (
	leadingDocNumberRe = regexp.MustCompile(`^[\d.\-/]+\s+`)
	numericOnlyRe      = regexp.MustCompile(`^[\d.\-/\s]+$`)
)

// parseLayout2 handles the newer layout: amount first, then the sign
// indicator in parentheses, the date, document numbers and the history text
// on the tail of the same line.
func parseLayout2(lines []string, opts Options) []RawMovement {
	var rows []RawMovement

	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}

		m := layout2LineRe.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}

		date, err := dates.Parse(m[3])
		if err != nil {
			continue
		}
		amount, err := money.Parse(m[1])
		if err != nil {
			continue
		}

		row := RawMovement{
			Date:       date,
			Competence: dates.FirstOfMonth(date),
		}
		if m[2] == "+" {
			row.Credit = amount
			row.Amount = amount
		} else {
			row.Debit = amount
			row.Amount = amount.Neg()
		}

		history := stripDocNumbers(m[4])
		historyIdx := i
		if history == "" || numericOnlyRe.MatchString(history) {
			if next, idx, ok := nextDescriptionLine(lines, i+1, false); ok {
				history = next
				historyIdx = idx
			}
		}

		row.Category = inferCategory(history)

		up := strings.ToUpper(history)
		switch {
		case row.Category == ledger.CategoryResgate || row.Category == ledger.CategoryTaxasBancarias:
			row.Origin = opts.BankName
		case strings.Contains(up, "PIX ENVIADO") || strings.Contains(up, "PAGAMENTO DE BOLETO"):
			// These histories hide the counterparty in a follow-up line.
			if next, _, ok := nextDescriptionLine(lines, historyIdx+1, true); ok {
				row.Origin = CleanName(next)
			} else {
				row.Origin = CleanName(history)
			}
		default:
			row.Origin = CleanName(history)
		}

		rows = append(rows, row)
	}

	return rows
}

// stripDocNumbers drops the leading document-number groups that precede the
// history text.
func stripDocNumbers(tail string) string {
	s := strings.TrimSpace(tail)
	for {
		next := leadingDocNumberRe.ReplaceAllString(s, "")
		if next == s {
			break
		}
		s = next
	}
	return strings.TrimSpace(s)
}
