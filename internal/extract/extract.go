package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/smdhc/parcerias-engine/internal/ledger"
	"github.com/smdhc/parcerias-engine/internal/logger"
)

var extractLogger = &logger.Logger{MinLevel: logger.LevelInfo}

var (
	layout1LineRe = regexp.MustCompile(`^(\d{2}/\d{2}/\d{4})\s+(.*?)\s*(\d{1,3}(?:\.\d{3})*,\d{2})\s*([CD])(?:\s+(\d{1,3}(?:\.\d{3})*,\d{2})\s*([CD]))?\s*$`)
	layout2LineRe = regexp.MustCompile(`^(\d{1,3}(?:\.\d{3})*,\d{2})\s*\(([+-])\)\s*(\d{2}/\d{2}/\d{4})\s*(.*)$`)
	layout2TailRe = regexp.MustCompile(`^(\d{1,3}(?:\.\d{3})*,\d{2})\s*\(([+-])\)\s*$`)
	dateStartRe   = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}`)
)

// Extract parses a plain-text bank statement into ordered raw movements. It
// is a pure function of the bytes and options: format detection picks one of
// the two known layouts, then the matching parser runs over the joined lines.
func Extract(data []byte, opts Options) ([]RawMovement, error) {
	text := decode(data)
	lines := joinBrokenLines(splitLines(text))

	nonEmpty := 0
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			nonEmpty++
		}
	}
	if nonEmpty == 0 {
		return nil, ErrEmptyStatement
	}

	layout, score1, score2 := detectLayout(lines)
	extractLogger.Debug("extract", "layout scores: layout1=%d layout2=%d", score1, score2)

	var rows []RawMovement
	if layout == Layout2 {
		rows = parseLayout2(lines, opts)
		if len(rows) == 0 {
			extractLogger.Warn("extract", "layout 2 matched but parsed no rows, retrying with layout 1")
			rows = parseLayout1(lines, opts)
		}
	} else {
		rows = parseLayout1(lines, opts)
		if len(rows) == 0 {
			rows = parseLayout2(lines, opts)
		}
	}

	if len(rows) == 0 {
		if score1 == 0 && score2 == 0 {
			return nil, ErrUnrecognizedFormat
		}
		return nil, ErrEmptyStatement
	}

	return rows, nil
}

// decode falls back to Windows-1252, the encoding bank exports still ship in.
func decode(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(out)
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

// joinBrokenLines merges the visually broken layout-2 pattern where the
// amount and its sign indicator sit on one physical line and the date opens
// the next one.
func joinBrokenLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], " \t")
		if layout2TailRe.MatchString(strings.TrimSpace(line)) && i+1 < len(lines) {
			next := strings.TrimSpace(lines[i+1])
			if dateStartRe.MatchString(next) {
				out = append(out, strings.TrimSpace(line)+" "+next)
				i++
				continue
			}
		}
		out = append(out, line)
	}
	return out
}

// detectLayout samples up to the first 30 non-empty lines and scores both
// known layouts. A single layout-2 hit decides for layout 2.
func detectLayout(lines []string) (Layout, int, int) {
	score1, score2, sampled := 0, 0, 0
	for _, l := range lines {
		trimmed := strings.TrimSpace(l)
		if trimmed == "" {
			continue
		}
		sampled++
		if sampled > 30 {
			break
		}
		if layout2LineRe.MatchString(trimmed) {
			score2++
		} else if layout1LineRe.MatchString(trimmed) {
			score1++
		}
	}
	if score2 >= 1 {
		return Layout2, score1, score2
	}
	return Layout1, score1, score2
}

func isMovementLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return layout1LineRe.MatchString(trimmed) || layout2LineRe.MatchString(trimmed)
}

// inferCategory maps upper-cased history text to a transaction category.
// Rules run in order; anything unmatched stays empty for the auto-classifier.
func inferCategory(history string) ledger.Category {
	up := strings.ToUpper(history)

	switch {
	case strings.Contains(up, "BB RENDA FIXA") || strings.Contains(up, "RESGATE"):
		return ledger.CategoryResgate
	case strings.Contains(up, "TARIFA") || strings.Contains(up, "TAR.") || strings.Contains(up, "TAR "):
		return ledger.CategoryTaxasBancarias
	case strings.Contains(up, "PIX - REJEITADO") || strings.Contains(up, "PIX - DEVOLVIDO") || strings.Contains(up, "DEVOLVID"):
		return ledger.CategoryPixTedDevolvido
	case strings.Contains(up, "SECRETARIA MUNICIPAL") && strings.Contains(up, "FAZENDA"):
		return ledger.CategoryParcela
	case strings.Contains(up, "RECEBIMENTO FORNECEDOR"):
		return ledger.CategoryParcela
	default:
		return ledger.CategoryNone
	}
}
