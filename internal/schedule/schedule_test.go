package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smdhc/parcerias-engine/internal/ledger"
	"github.com/smdhc/parcerias-engine/internal/portaria"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func contract021() ledger.Contract {
	return ledger.Contract{
		ID:           "TCL/024/2023/SMDHC/SESANA",
		PortariaName: "Portaria nº 021/SMDHC/2023",
		StartDate:    date(2023, 3, 1),
		EndDate:      date(2024, 2, 29),
		PaidTotal:    decimal.NewFromInt(100000),
	}
}

func TestGeneratePortaria021(t *testing.T) {
	t.Parallel()

	out, err := Generate(contract021())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d installments, want 2: %+v", len(out), out)
	}

	sem := out[0]
	if sem.Kind != ledger.InstallmentSemestral || sem.Number != 1 {
		t.Errorf("first installment = %s %d", sem.Kind, sem.Number)
	}
	if !sem.VigenciaInicial.Equal(date(2023, 3, 1)) || !sem.VigenciaFinal.Equal(date(2023, 8, 31)) {
		t.Errorf("semestral 1 window = %v..%v", sem.VigenciaInicial, sem.VigenciaFinal)
	}

	final := out[1]
	if final.Kind != ledger.InstallmentFinal {
		t.Errorf("last installment kind = %s", final.Kind)
	}
	if !final.VigenciaInicial.Equal(date(2023, 3, 1)) || !final.VigenciaFinal.Equal(date(2024, 2, 29)) {
		t.Errorf("final window = %v..%v", final.VigenciaInicial, final.VigenciaFinal)
	}

	// A second semester would close exactly on the end date, not strictly
	// before it, so it is omitted; and every tier is 3 under portaria 021
	// past the 2023-03-01 cut-off.
	for _, inst := range out {
		if inst.Responsibility != portaria.TierManager {
			t.Errorf("%s %d responsibility = %d, want 3", inst.Kind, inst.Number, inst.Responsibility)
		}
	}
}

func TestGenerateCoveringCadence(t *testing.T) {
	t.Parallel()

	c := ledger.Contract{
		ID:           "TCL/030/2023/SMDHC/CPIR",
		PortariaName: "Portaria nº 121/SMDHC/2019",
		StartDate:    date(2023, 1, 15),
		EndDate:      date(2023, 11, 30),
		PaidTotal:    decimal.NewFromInt(5000),
	}

	out, err := Generate(c)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var tri, sem, fin []ledger.Installment
	for _, inst := range out {
		switch inst.Kind {
		case ledger.InstallmentTrimestral:
			tri = append(tri, inst)
		case ledger.InstallmentSemestral:
			sem = append(sem, inst)
		case ledger.InstallmentFinal:
			fin = append(fin, inst)
		}
	}

	// Jan 15 .. Nov 30 is four trimesters (the last one shortened) and two
	// semesters (the second shortened).
	if len(tri) != 4 || len(sem) != 2 || len(fin) != 1 {
		t.Fatalf("got %d/%d/%d tri/sem/final", len(tri), len(sem), len(fin))
	}
	if !tri[3].VigenciaFinal.Equal(date(2023, 11, 30)) {
		t.Errorf("last trimester must be clamped to the end: %v", tri[3].VigenciaFinal)
	}
	if !sem[1].VigenciaFinal.Equal(date(2023, 11, 30)) {
		t.Errorf("last semester must be clamped to the end: %v", sem[1].VigenciaFinal)
	}

	// Consecutive installments of one kind are gapless.
	for i := 1; i < len(tri); i++ {
		if !tri[i].VigenciaInicial.Equal(tri[i-1].VigenciaFinal.AddDate(0, 0, 1)) {
			t.Errorf("gap between trimesters %d and %d", i, i+1)
		}
	}

	// No installment exceeds the effective end.
	for _, inst := range out {
		if inst.VigenciaFinal.After(date(2023, 11, 30)) {
			t.Errorf("%s %d exceeds the effective end", inst.Kind, inst.Number)
		}
	}

	// Portarias 121/140 applied directly always carry tier 2.
	for _, inst := range out {
		if inst.Responsibility != portaria.TierShared {
			t.Errorf("%s %d responsibility = %d, want 2", inst.Kind, inst.Number, inst.Responsibility)
		}
	}
}

func TestGenerateUnknownPortaria(t *testing.T) {
	t.Parallel()

	c := ledger.Contract{
		ID:           "ACP/001/2022/SMDHC/DPDC",
		PortariaName: "Portaria nº 077/SMDHC/2020",
		StartDate:    date(2022, 1, 1),
		EndDate:      date(2022, 12, 31),
		PaidTotal:    decimal.NewFromInt(1000),
	}

	out, err := Generate(c)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	kinds := map[string]int{}
	for _, inst := range out {
		kinds[inst.Kind]++
		if inst.Responsibility != portaria.TierDepartment {
			t.Errorf("unknown portaria responsibility = %d, want 1", inst.Responsibility)
		}
	}
	if kinds[ledger.InstallmentTrimestral] != 4 || kinds[ledger.InstallmentFinal] != 1 || kinds[ledger.InstallmentSemestral] != 0 {
		t.Errorf("unexpected kinds: %v", kinds)
	}
}

func TestRescissionGuardrails(t *testing.T) {
	t.Parallel()

	c := contract021()
	resc := c.StartDate.AddDate(0, 0, 4)
	c.RescissionDate = &resc
	if _, err := Generate(c); !errors.Is(err, ErrMinimalExecution) {
		t.Errorf("rescission within 5 days: got %v, want ErrMinimalExecution", err)
	}

	c = contract021()
	c.PaidTotal = decimal.Zero
	resc = c.StartDate.AddDate(0, 3, 0)
	c.RescissionDate = &resc
	if _, err := Generate(c); !errors.Is(err, ErrNoResources) {
		t.Errorf("rescission with zero disbursement: got %v, want ErrNoResources", err)
	}
}

func TestRescissionShortensSchedule(t *testing.T) {
	t.Parallel()

	c := contract021()
	resc := date(2023, 7, 15)
	c.RescissionDate = &resc

	out, err := Generate(c)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// No full semester closes strictly before Jul 15: only the final remains.
	if len(out) != 1 || out[0].Kind != ledger.InstallmentFinal {
		t.Fatalf("got %+v, want a single final installment", out)
	}
	if !out[0].VigenciaFinal.Equal(resc) {
		t.Errorf("final must end on the rescission date: %v", out[0].VigenciaFinal)
	}
}

func TestReconcilePreservesAnalystFields(t *testing.T) {
	t.Parallel()

	c := contract021()
	existing, err := Generate(c)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	override := portaria.TierShared
	existing[0].Delivered = true
	existing[0].Note = "entregue em atraso"
	existing[0].ResponsibilityOverride = &override

	out, err := Reconcile(c, existing)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if !out[0].Delivered || out[0].Note != "entregue em atraso" {
		t.Errorf("analyst fields lost: %+v", out[0])
	}
	if out[0].Responsibility != portaria.TierShared || out[0].ResponsibilityOverride == nil {
		t.Errorf("responsibility override lost: %+v", out[0])
	}
	if out[1].Delivered || out[1].Note != "" {
		t.Errorf("untouched installment polluted: %+v", out[1])
	}
}

func TestReconcileRecomputesTierAfterRescission(t *testing.T) {
	t.Parallel()

	c := ledger.Contract{
		ID:           "TCL/051/2023/SMDHC/CPM",
		PortariaName: "Portaria nº 090/SMDHC/2023",
		StartDate:    date(2023, 6, 1),
		EndDate:      date(2024, 8, 31),
		PaidTotal:    decimal.NewFromInt(80000),
	}

	existing, err := Generate(c)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// The final installment closes on 2024-08-31, past the 2024-01-01
	// cut-off, so it starts at tier 3.
	last := existing[len(existing)-1]
	if last.Kind != ledger.InstallmentFinal || last.Responsibility != portaria.TierManager {
		t.Fatalf("final installment = %+v, want tier 3", last)
	}

	resc := date(2023, 12, 15)
	c.RescissionDate = &resc

	out, err := Reconcile(c, existing)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	final := out[len(out)-1]
	if final.Kind != ledger.InstallmentFinal {
		t.Fatalf("last installment kind = %s", final.Kind)
	}
	if !final.VigenciaFinal.Equal(resc) {
		t.Errorf("final must end on the rescission date: %v", final.VigenciaFinal)
	}
	// With no analyst override, the surviving (Final, 1) pair follows its new
	// closing date back across the cut-off to tier 2.
	if final.Responsibility != portaria.TierShared {
		t.Errorf("final responsibility = %d, want 2 after the rescission", final.Responsibility)
	}
	if final.ResponsibilityOverride != nil {
		t.Errorf("no override was set, got %d", *final.ResponsibilityOverride)
	}
}
