package extract

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/smdhc/parcerias-engine/internal/ledger"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

const layout1Statement = `Extrato de conta corrente

Saldo Anterior 1.000,00 C
02/03/2023 TED RECEBIDA 10.000,00 C 11.000,00 C
SECRETARIA MUNICIPAL DE FAZENDA
05/03/2023 TARIFA PACOTE 25,00 D 10.975,00 C
10/03/2023 PAGTO FORNECEDOR 1.500,00 D
ACME SERVICOS LTDA
15/03/2023 RESGATE AUTOM 200,00 C
`

func TestExtractLayout1(t *testing.T) {
	t.Parallel()

	rows, err := Extract([]byte(layout1Statement), Options{BankName: "Banco do Brasil"})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("got %d rows, want 5", len(rows))
	}

	if !rows[0].BalanceOnly || !rows[0].HasSaldo || !rows[0].Saldo.Equal(dec("1000")) {
		t.Errorf("saldo anterior row wrong: %+v", rows[0])
	}

	ted := rows[1]
	if !ted.Credit.Equal(dec("10000")) || !ted.Amount.Equal(dec("10000")) {
		t.Errorf("TED credit wrong: %+v", ted)
	}
	if !ted.HasSaldo || !ted.Saldo.Equal(dec("11000")) {
		t.Errorf("TED balance wrong: %+v", ted)
	}
	if ted.Origin != "Secretaria Municipal De Fazenda" {
		t.Errorf("TED origin = %q", ted.Origin)
	}
	if ted.Date.Day() != 2 || ted.Competence.Day() != 1 {
		t.Errorf("TED dates wrong: %v / %v", ted.Date, ted.Competence)
	}

	tarifa := rows[2]
	if tarifa.Category != ledger.CategoryTaxasBancarias {
		t.Errorf("tariff category = %q", tarifa.Category)
	}
	if tarifa.Origin != "Banco do Brasil" {
		t.Errorf("tariff origin = %q", tarifa.Origin)
	}
	if !tarifa.Amount.Equal(dec("-25")) {
		t.Errorf("tariff amount = %s", tarifa.Amount)
	}

	pagto := rows[3]
	if pagto.Origin != "Acme Servicos Ltda" {
		t.Errorf("pagto origin = %q", pagto.Origin)
	}
	if !pagto.Debit.Equal(dec("1500")) || !pagto.Amount.Equal(dec("-1500")) {
		t.Errorf("pagto amounts wrong: %+v", pagto)
	}

	resgate := rows[4]
	if resgate.Category != ledger.CategoryResgate || resgate.Origin != "Banco do Brasil" {
		t.Errorf("resgate row wrong: %+v", resgate)
	}
}

func TestExtractLayout1Resgate(t *testing.T) {
	t.Parallel()

	rows, err := Extract([]byte("15/03/2023 RESGATE AUTOM 200,00 C\n"), Options{BankName: "Banco do Brasil"})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if rows[0].Category != ledger.CategoryResgate {
		t.Errorf("category = %q", rows[0].Category)
	}
	if rows[0].Origin != "Banco do Brasil" {
		t.Errorf("origin = %q", rows[0].Origin)
	}
}

const layout2Statement = `1.000,00 (+) 01/03/2023 123 4567 8901234 SECRETARIA MUNICIPAL DA FAZENDA
25,00 (-) 05/03/2023 000123 TARIFA PACOTE SERVICOS
2.500,00 (-) 10/03/2023 987654
PIX ENVIADO
ACME SERVICOS LTDA
300,00 (+) 12/03/2023 555 PIX - DEVOLVIDO JOAO DA SILVA
`

func TestExtractLayout2(t *testing.T) {
	t.Parallel()

	rows, err := Extract([]byte(layout2Statement), Options{BankName: "Banco do Brasil"})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}

	parcela := rows[0]
	if parcela.Category != ledger.CategoryParcela {
		t.Errorf("parcela category = %q", parcela.Category)
	}
	if !parcela.Credit.Equal(dec("1000")) {
		t.Errorf("parcela credit = %s", parcela.Credit)
	}

	tarifa := rows[1]
	if tarifa.Category != ledger.CategoryTaxasBancarias || tarifa.Origin != "Banco do Brasil" {
		t.Errorf("tariff row wrong: %+v", tarifa)
	}

	pix := rows[2]
	if pix.Category != ledger.CategoryNone {
		t.Errorf("pix category = %q", pix.Category)
	}
	if pix.Origin != "Acme Servicos Ltda" {
		t.Errorf("pix origin = %q", pix.Origin)
	}
	if !pix.Amount.Equal(dec("-2500")) {
		t.Errorf("pix amount = %s", pix.Amount)
	}

	devolvido := rows[3]
	if devolvido.Category != ledger.CategoryPixTedDevolvido {
		t.Errorf("devolvido category = %q", devolvido.Category)
	}
}

func TestExtractJoinsBrokenLines(t *testing.T) {
	t.Parallel()

	broken := "150,00 (-)\n05/03/2023 000123 TARIFA PACOTE\n"
	rows, err := Extract([]byte(broken), Options{BankName: "Banco do Brasil"})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Category != ledger.CategoryTaxasBancarias || !rows[0].Amount.Equal(dec("-150")) {
		t.Errorf("joined row wrong: %+v", rows[0])
	}
}

func TestExtractErrors(t *testing.T) {
	t.Parallel()

	if _, err := Extract([]byte("   \n\n"), Options{}); !errors.Is(err, ErrEmptyStatement) {
		t.Errorf("blank input: got %v, want ErrEmptyStatement", err)
	}

	garbage := "relatorio interno\nsem movimentos aqui\napenas texto\n"
	if _, err := Extract([]byte(garbage), Options{}); !errors.Is(err, ErrUnrecognizedFormat) {
		t.Errorf("garbage input: got %v, want ErrUnrecognizedFormat", err)
	}
}

func TestExtractWindows1252(t *testing.T) {
	t.Parallel()

	// "SÃO" spelled in Windows-1252 (0xC3 alone is invalid UTF-8).
	line := append([]byte("02/03/2023 DEPOSITO 100,00 C\nS"), 0xC3)
	line = append(line, []byte("O PAULO TRANSPORTES\n")...)

	rows, err := Extract(line, Options{})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(rows) != 1 || rows[0].Origin == "" {
		t.Errorf("windows-1252 statement not decoded: %+v", rows)
	}
}

func TestInferCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		history string
		want    ledger.Category
	}{
		{"BB RENDA FIXA CP AUTOM", ledger.CategoryResgate},
		{"RESGATE INVEST FACIL", ledger.CategoryResgate},
		{"TARIFA PIX", ledger.CategoryTaxasBancarias},
		{"TAR. MANUTENCAO", ledger.CategoryTaxasBancarias},
		{"PIX - REJEITADO SEM SALDO", ledger.CategoryPixTedDevolvido},
		{"TED DEVOLVIDA", ledger.CategoryPixTedDevolvido},
		{"SECRETARIA MUNICIPAL DA FAZENDA", ledger.CategoryParcela},
		{"RECEBIMENTO FORNECEDOR PMSP", ledger.CategoryParcela},
		{"PAGAMENTO FORNECEDOR COMUM", ledger.CategoryNone},
	}

	for _, tc := range tests {
		if got := inferCategory(tc.history); got != tc.want {
			t.Errorf("inferCategory(%q) = %q, want %q", tc.history, got, tc.want)
		}
	}
}

func TestCleanName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"14:32 ACME SERVICOS LTDA", "Acme Servicos Ltda"},
		{"05/03 JOAO DA SILVA", "Joao Da Silva"},
		{"ACME LTDA 12345678000190", "Acme Ltda"},
		{"123 4567 8901234 FORNECEDOR XYZ", "Fornecedor Xyz"},
		{"SECRETARIA MUNICIPAL SECRETARIA MUNICIPAL DE DIREITOS HUMANOS", "Secretaria Municipal De Direitos Humanos"},
	}

	for _, tc := range tests {
		if got := CleanName(tc.in); got != tc.want {
			t.Errorf("CleanName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
