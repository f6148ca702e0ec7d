package extract

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	leadingTimeRe = regexp.MustCompile(`^\d{2}:\d{2}\s*`)
	leadingPartRe = regexp.MustCompile(`^\d{2}/\d{2}\s*`)
	agencyDocRe   = regexp.MustCompile(`\b\d{3}\s+\d{4}\s+\d{5,}\b`)
	cpfCnpjRunRe  = regexp.MustCompile(`\b\d{11,}\b`)
	multiSpaceRe  = regexp.MustCompile(`\s{2,}`)
	ptTitleCaser  = cases.Title(language.BrazilianPortuguese)
	smDuplication = "Secretaria Municipal Secretaria Municipal"
)

// CleanName normalizes a counterparty description into a presentable name:
// leading times and partial dates, agency/document triplets and CPF/CNPJ
// digit runs are stripped, the rest is title-cased.
func CleanName(s string) string {
	s = strings.TrimSpace(s)

	for {
		next := leadingTimeRe.ReplaceAllString(s, "")
		next = leadingPartRe.ReplaceAllString(next, "")
		if next == s {
			break
		}
		s = strings.TrimSpace(next)
	}

	s = agencyDocRe.ReplaceAllString(s, " ")
	s = cpfCnpjRunRe.ReplaceAllString(s, " ")
	s = multiSpaceRe.ReplaceAllString(strings.TrimSpace(s), " ")

	s = ptTitleCaser.String(strings.ToLower(s))

	for strings.Contains(s, smDuplication) {
		s = strings.Replace(s, smDuplication, "Secretaria Municipal", 1)
	}

	return strings.TrimSpace(s)
}
