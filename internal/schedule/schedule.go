// Package schedule projects the accountability installments of a contract
// from its dates and governing portaria, and reconciles the projection when
// a rescission is recorded.
package schedule

import (
	"errors"
	"time"

	"github.com/smdhc/parcerias-engine/internal/ledger"
	"github.com/smdhc/parcerias-engine/internal/portaria"
)

var (
	// ErrMinimalExecution marks a rescission within five days of the start:
	// nothing was executed, no schedule applies.
	ErrMinimalExecution = errors.New("contract rescinded with minimal execution")
	// ErrNoResources marks a rescinded contract that never received funds;
	// any existing schedule must be dropped.
	ErrNoResources = errors.New("contract rescinded without disbursed resources")
)

// Generate produces the full installment list for a contract. The effective
// end is the rescission date when one is recorded, otherwise the contract
// end date.
func Generate(c ledger.Contract) ([]ledger.Installment, error) {
	start := c.StartDate
	end := c.EffectiveEnd()

	if c.RescissionDate != nil && !c.RescissionDate.IsZero() {
		if !c.RescissionDate.After(start.AddDate(0, 0, 5)) {
			return nil, ErrMinimalExecution
		}
		if c.PaidTotal.IsZero() {
			return nil, ErrNoResources
		}
	}

	norm := portaria.Normalize(c.PortariaName)

	var out []ledger.Installment
	switch portaria.CadenceFor(norm.Portaria) {
	case portaria.CadenceSemestral:
		out = append(out, strictFit(c, norm.Portaria, ledger.InstallmentSemestral, 6, start, end)...)
	case portaria.CadenceBoth:
		out = append(out, covering(c, norm.Portaria, ledger.InstallmentTrimestral, 3, start, end)...)
		out = append(out, covering(c, norm.Portaria, ledger.InstallmentSemestral, 6, start, end)...)
	default:
		out = append(out, covering(c, norm.Portaria, ledger.InstallmentTrimestral, 3, start, end)...)
	}

	out = append(out, ledger.Installment{
		Contract:        c.ID,
		Kind:            ledger.InstallmentFinal,
		Number:          1,
		VigenciaInicial: start,
		VigenciaFinal:   end,
		Responsibility:  portaria.Responsibility(norm.Portaria, end),
	})

	return out, nil
}

// strictFit emits consecutive windows of `months` months while another full
// window still closes strictly before the effective end.
func strictFit(c ledger.Contract, p portaria.Portaria, kind string, months int, start, end time.Time) []ledger.Installment {
	var out []ledger.Installment
	for n := 1; ; n++ {
		winStart := start.AddDate(0, months*(n-1), 0)
		winEnd := start.AddDate(0, months*n, 0).AddDate(0, 0, -1)
		if !winEnd.Before(end) {
			break
		}
		out = append(out, ledger.Installment{
			Contract:        c.ID,
			Kind:            kind,
			Number:          n,
			VigenciaInicial: winStart,
			VigenciaFinal:   winEnd,
			Responsibility:  portaria.Responsibility(p, winEnd),
		})
	}
	return out
}

// covering emits consecutive windows of `months` months until the effective
// end is covered; the last window is shortened to end exactly there.
func covering(c ledger.Contract, p portaria.Portaria, kind string, months int, start, end time.Time) []ledger.Installment {
	var out []ledger.Installment
	for n := 1; ; n++ {
		winStart := start.AddDate(0, months*(n-1), 0)
		if winStart.After(end) {
			break
		}
		winEnd := start.AddDate(0, months*n, 0).AddDate(0, 0, -1)
		if winEnd.After(end) {
			winEnd = end
		}
		out = append(out, ledger.Installment{
			Contract:        c.ID,
			Kind:            kind,
			Number:          n,
			VigenciaInicial: winStart,
			VigenciaFinal:   winEnd,
			Responsibility:  portaria.Responsibility(p, winEnd),
		})
		if winEnd.Equal(end) {
			break
		}
	}
	return out
}

// Reconcile regenerates the schedule and carries over the analyst-entered
// fields of every (kind, number) pair that survives. Installments that fall
// outside the new effective end simply do not reappear. The responsibility
// tier is recomputed with the new window dates; only an explicit analyst
// override pins it.
func Reconcile(c ledger.Contract, existing []ledger.Installment) ([]ledger.Installment, error) {
	fresh, err := Generate(c)
	if err != nil {
		return nil, err
	}

	type key struct {
		kind   string
		number int
	}
	prior := make(map[key]ledger.Installment, len(existing))
	for _, inst := range existing {
		prior[key{inst.Kind, inst.Number}] = inst
	}

	for i := range fresh {
		old, ok := prior[key{fresh[i].Kind, fresh[i].Number}]
		if !ok {
			continue
		}
		fresh[i].Delivered = old.Delivered
		fresh[i].Note = old.Note
		if old.ResponsibilityOverride != nil {
			fresh[i].ResponsibilityOverride = old.ResponsibilityOverride
			fresh[i].Responsibility = *old.ResponsibilityOverride
		}
	}

	return fresh, nil
}
