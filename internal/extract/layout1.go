package extract

import (
	"regexp"
	"strings"

	"github.com/smdhc/parcerias-engine/internal/dates"
	"github.com/smdhc/parcerias-engine/internal/ledger"
	"github.com/smdhc/parcerias-engine/internal/money"
)

var amountRe = regexp.MustCompile(`\d{1,3}(?:\.\d{3})*,\d{2}`)

// parseLayout1 handles the legacy layout: each movement line starts with the
// date, carries the amount and a C/D marker, optionally followed by the
// running balance and its own marker. The counterparty name lives on the
// following non-movement line.
func parseLayout1(lines []string, opts Options) []RawMovement {
	var rows []RawMovement

	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}

		if strings.Contains(strings.ToUpper(trimmed), "SALDO ANTERIOR") {
			row := RawMovement{BalanceOnly: true}
			if a := amountRe.FindString(trimmed); a != "" {
				if saldo, err := money.Parse(a); err == nil {
					row.Saldo = saldo
					row.HasSaldo = true
				}
			}
			rows = append(rows, row)
			continue
		}

		m := layout1LineRe.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}

		date, err := dates.Parse(m[1])
		if err != nil {
			continue
		}
		amount, err := money.Parse(m[3])
		if err != nil {
			continue
		}

		row := RawMovement{
			Date:       date,
			Competence: dates.FirstOfMonth(date),
		}
		if m[4] == "C" {
			row.Credit = amount
			row.Amount = amount
		} else {
			row.Debit = amount
			row.Amount = amount.Neg()
		}
		if m[5] != "" {
			if saldo, err := money.Parse(m[5]); err == nil {
				row.Saldo = saldo
				row.HasSaldo = true
				if m[6] == "D" {
					row.Saldo = saldo.Neg()
				}
			}
		}

		row.Category = inferCategory(m[2])

		switch row.Category {
		case ledger.CategoryResgate, ledger.CategoryTaxasBancarias:
			row.Origin = opts.BankName
		default:
			if next, _, ok := nextDescriptionLine(lines, i+1, false); ok {
				row.Origin = CleanName(next)
			}
		}

		rows = append(rows, row)
	}

	return rows
}

// nextDescriptionLine scans forward for the first non-empty line that is not
// itself a movement, returning it with its index. When skipTariffs is set,
// tariff descriptions are skipped too, since they never name the
// counterparty.
func nextDescriptionLine(lines []string, from int, skipTariffs bool) (string, int, bool) {
	for i := from; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}
		if isMovementLine(trimmed) {
			return "", 0, false
		}
		if skipTariffs && inferCategory(trimmed) == ledger.CategoryTaxasBancarias {
			continue
		}
		return trimmed, i, true
	}
	return "", 0, false
}
