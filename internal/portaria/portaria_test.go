package portaria

import (
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want Portaria
	}{
		{"Portaria nº 021/SMDHC/2023", P021},
		{"Portaria n° 021/SMDHC/2019", P021},
		{"portaria nº 090/smdhc/2023", P090},
		{"Portaria nº 121/SMDHC/2019", P121},
		{"Portaria nº 140/SMDHC/2023", P140},
		{"Portaria nº 077/SMDHC/2020", Unknown},
		{"Decreto 1021/2023", Unknown},
		{"", Unknown},
	}

	for _, tc := range tests {
		got := Normalize(tc.raw)
		if got.Portaria != tc.want {
			t.Errorf("Normalize(%q) = %v, want %v", tc.raw, got.Portaria, tc.want)
		}
		if got.Raw != tc.raw {
			t.Errorf("Normalize(%q) lost the raw string: %q", tc.raw, got.Raw)
		}
	}
}

func TestCutoff(t *testing.T) {
	t.Parallel()

	mar2023 := time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC)
	jan2024 := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		p          Portaria
		transition bool
		want       time.Time
		ok         bool
	}{
		{P021, false, mar2023, true},
		{P021, true, mar2023, true},
		{P090, false, jan2024, true},
		{P121, true, mar2023, true},
		{P121, false, time.Time{}, false},
		{P140, true, jan2024, true},
		{P140, false, time.Time{}, false},
		{Unknown, true, time.Time{}, false},
	}

	for _, tc := range tests {
		got, ok := Cutoff(tc.p, tc.transition)
		if ok != tc.ok || !got.Equal(tc.want) {
			t.Errorf("Cutoff(%v, %v) = (%v, %v), want (%v, %v)", tc.p, tc.transition, got, ok, tc.want, tc.ok)
		}
	}
}

func TestResponsibility(t *testing.T) {
	t.Parallel()

	feb2023 := time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC)
	aug2023 := time.Date(2023, time.August, 31, 0, 0, 0, 0, time.UTC)
	feb2024 := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		p     Portaria
		final time.Time
		want  int
	}{
		{P021, feb2023, TierShared},
		{P021, aug2023, TierManager},
		{P090, aug2023, TierShared},
		{P090, feb2024, TierManager},
		{P121, feb2024, TierShared},
		{P140, feb2023, TierShared},
		{Unknown, feb2024, TierDepartment},
	}

	for _, tc := range tests {
		if got := Responsibility(tc.p, tc.final); got != tc.want {
			t.Errorf("Responsibility(%v, %s) = %d, want %d", tc.p, tc.final.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestCadenceFor(t *testing.T) {
	t.Parallel()

	if CadenceFor(P021) != CadenceSemestral || CadenceFor(P090) != CadenceSemestral {
		t.Error("portarias 021/090 must use semestral cadence")
	}
	if CadenceFor(P121) != CadenceBoth || CadenceFor(P140) != CadenceBoth {
		t.Error("portarias 121/140 must use combined cadence")
	}
	if CadenceFor(Unknown) != CadenceTrimestral {
		t.Error("unknown portarias must use trimestral cadence")
	}
}
