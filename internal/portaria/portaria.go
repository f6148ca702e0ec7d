package portaria

import (
	"strings"
	"time"
)

// Portaria identifies the governing regulation of a partnership. The source
// documents spell it as free text ("Portaria nº 021/SMDHC/2023", sometimes
// with the ordinal sign typed as "n°"), so the known set is recognized by a
// normalization step and everything else stays Unknown with the raw string
// preserved.
type Portaria int

const (
	Unknown Portaria = iota
	P021
	P090
	P121
	P140
)

var names = map[Portaria]string{
	Unknown: "Desconhecida",
	P021:    "Portaria 021",
	P090:    "Portaria 090",
	P121:    "Portaria 121",
	P140:    "Portaria 140",
}

func (p Portaria) String() string { return names[p] }

// Norm is the result of normalizing a free-text portaria name.
type Norm struct {
	Portaria Portaria
	Raw      string
}

var tokens = []struct {
	token    string
	portaria Portaria
}{
	{"021", P021},
	{"090", P090},
	{"121", P121},
	{"140", P140},
}

// Normalize matches the known portaria numbers inside the free-text name.
// Matching is case-insensitive and tolerant of the "nº"/"n°" variants. The
// 2019 and 2023 editions of each portaria carry the same rules, so the year
// is not part of the result.
func Normalize(raw string) Norm {
	up := strings.ToUpper(raw)
	up = strings.ReplaceAll(up, "º", " ")
	up = strings.ReplaceAll(up, "°", " ")

	for _, t := range tokens {
		idx := strings.Index(up, t.token)
		if idx < 0 {
			continue
		}
		// The number must stand alone, not be part of a longer digit run
		// (e.g. "1021" or year digits).
		if idx > 0 && isDigit(up[idx-1]) {
			continue
		}
		if end := idx + len(t.token); end < len(up) && isDigit(up[end]) {
			continue
		}
		return Norm{Portaria: t.portaria, Raw: raw}
	}
	return Norm{Portaria: Unknown, Raw: raw}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

var (
	cutoff2023 = time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC)
	cutoff2024 = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// Cutoff returns the auto-classification cut-off date for a portaria.
// Portarias 121 and 140 only classify automatically when the contract is
// flagged as transitioned to the new accountability regime.
func Cutoff(p Portaria, transition bool) (time.Time, bool) {
	switch p {
	case P021:
		return cutoff2023, true
	case P090:
		return cutoff2024, true
	case P121:
		if transition {
			return cutoff2023, true
		}
	case P140:
		if transition {
			return cutoff2024, true
		}
	}
	return time.Time{}, false
}

// Cadence controls which installment kinds the provision scheduler emits.
type Cadence int

const (
	CadenceTrimestral Cadence = iota // trimestral installments plus a final one
	CadenceSemestral                 // semestral installments plus a final one
	CadenceBoth                      // trimestral and semestral plus a final one
)

func CadenceFor(p Portaria) Cadence {
	switch p {
	case P021, P090:
		return CadenceSemestral
	case P121, P140:
		return CadenceBoth
	default:
		return CadenceTrimestral
	}
}

// Responsibility tiers for accountability analysis.
const (
	TierDepartment = 1
	TierShared     = 2
	TierManager    = 3
)

// Responsibility assigns the tier for an installment from the portaria and
// the installment's closing date.
func Responsibility(p Portaria, vigenciaFinal time.Time) int {
	switch p {
	case P021:
		if vigenciaFinal.Before(cutoff2023) {
			return TierShared
		}
		return TierManager
	case P090:
		if vigenciaFinal.Before(cutoff2024) {
			return TierShared
		}
		return TierManager
	case P121, P140:
		return TierShared
	default:
		return TierDepartment
	}
}
