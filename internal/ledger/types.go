package ledger

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Category is a transaction category from the closed vocabulary, plus any
// analyst-defined category that appears in the planned-budget table.
type Category string

const (
	CategoryNone                 Category = ""
	CategoryParcela              Category = "Parcela"
	CategoryIdentificado         Category = "Destinatário Identificado"
	CategoryNaoIdentificado      Category = "Destinatário não Identificado"
	CategoryCreditoExterno       Category = "Crédito Externo da OSC"
	CategoryTaxasBancarias       Category = "Taxas Bancárias"
	CategoryDevolucaoTaxas       Category = "Devolução de Taxas Bancárias"
	CategoryJurosMultas          Category = "Juros e/ou Multas"
	CategoryDevolucaoJurosMultas Category = "Devolução de Juros e/ou Multas"
	CategoryDebitosIndevidos     Category = "Débitos Indevidos"
	CategoryRendimentos          Category = "Rendimentos"
	CategoryResgate              Category = "Resgate"
	CategoryPixTedDevolvido      Category = "Pix / TED Devolvido"
)

// Evaluation is the analyst's verdict on a movement.
type Evaluation string

const (
	EvaluationNone        Evaluation = ""
	EvaluationAvaliado    Evaluation = "Avaliado"
	EvaluationAguardando  Evaluation = "Aguardando"
	EvaluationGestor      Evaluation = "Gestor"
	EvaluationGlosar      Evaluation = "Glosar"
	EvaluationRestituicao Evaluation = "Restituição de Verba"
)

// Movement is one normalized row of a contract's bank ledger.
type Movement struct {
	ID         int64           `db:"id" json:"id"`
	Contract   string          `db:"contract_id" json:"contract"`
	Seq        int             `db:"seq" json:"seq"`
	Date       time.Time       `db:"movement_date" json:"date"`
	Credit     decimal.Decimal `db:"credit" json:"credit"`
	Debit      decimal.Decimal `db:"debit" json:"debit"`
	Amount     decimal.Decimal `db:"amount" json:"amount"` // signed: credit or -debit
	Category   Category        `db:"category" json:"category"`
	Competence time.Time       `db:"competence" json:"competence"` // first day of month; zero when unset
	Origin     string          `db:"origin_or_destination" json:"origin_or_destination"`
	Evaluation Evaluation      `db:"evaluation" json:"evaluation"`
	Note       string          `db:"note" json:"note"`
	MergedWith pq.Int64Array   `db:"merged_with" json:"merged_with"`
}

// AbsAmount is |signed amount|, the figure every aggregation sums.
func (m Movement) AbsAmount() decimal.Decimal {
	return m.Amount.Abs()
}

func (m Movement) HasCompetence() bool {
	return !m.Competence.IsZero()
}

// Documentary evaluation vocabularies.
const (
	GuiaApresentada    = "Guia apresentada"
	GuiaNaoApresentada = "Não apresentada"

	ComprovanteCorreto = "Apresentado corretamente"
	ComprovanteEspecie = "Pago em Espécie"
	ComprovanteCartao  = "Cartão de Crédito"
	ComprovanteCheque  = "Pago em Cheque"

	ContratosApresentados   = "Contratos apresentados"
	ContratosNaoApresentado = "Não apresentado"

	MunicipioSaoPaulo = "São Paulo"
	ForaDoMunicipio   = "Fora do município"
)

// DocEvaluation is the per-movement documentary evaluation.
type DocEvaluation struct {
	ID            int64  `db:"id" json:"id"`
	MovementID    int64  `db:"movement_id" json:"movement_id"`
	Guia          string `db:"guia" json:"guia"`
	Comprovante   string `db:"comprovante" json:"comprovante"`
	Contratos     string `db:"contratos" json:"contratos"`
	ForaMunicipio string `db:"fora_municipio" json:"fora_municipio"`
}

func (d DocEvaluation) Empty() bool {
	return d.Guia == "" && d.Comprovante == "" && d.Contratos == "" && d.ForaMunicipio == ""
}

// NotaFiscalLink ties a fiscal document to the movement that paid it. Links
// follow their movement: deleting the movement deletes them.
type NotaFiscalLink struct {
	ID         int64           `db:"id" json:"id"`
	MovementID int64           `db:"movement_id" json:"movement_id"`
	Number     string          `db:"number" json:"number"`
	Issuer     string          `db:"issuer" json:"issuer"`
	IssueDate  time.Time       `db:"issue_date" json:"issue_date"`
	Amount     decimal.Decimal `db:"amount" json:"amount"`
	URL        string          `db:"url" json:"url"`
}

// YieldRecord is a financial yield entry of the partnership account.
type YieldRecord struct {
	ID            int64           `db:"id" json:"id"`
	Contract      string          `db:"contract_id" json:"contract"`
	ReferenceDate time.Time       `db:"reference_date" json:"reference_date"`
	Gross         decimal.Decimal `db:"gross" json:"gross"`
	IR            decimal.Decimal `db:"ir" json:"ir"`
	IOF           decimal.Decimal `db:"iof" json:"iof"`
	Note          string          `db:"note" json:"note"`
}

// Net is gross minus withheld taxes.
func (y YieldRecord) Net() decimal.Decimal {
	return y.Gross.Sub(y.IR).Sub(y.IOF)
}

// CounterpartEntry is a committed counterpart contribution of the OSC.
type CounterpartEntry struct {
	ID         int64           `db:"id" json:"id"`
	Contract   string          `db:"contract_id" json:"contract"`
	Competence time.Time       `db:"competence" json:"competence"`
	Category   string          `db:"category" json:"category"`
	Planned    decimal.Decimal `db:"planned" json:"planned"`
	Executed   decimal.Decimal `db:"executed" json:"executed"`
	Considered decimal.Decimal `db:"considered" json:"considered"`
	HasGuia    bool            `db:"has_guia" json:"has_guia"`
	HasProof   bool            `db:"has_proof" json:"has_proof"`
	Note       string          `db:"note" json:"note"`
}

// BankAccountRecord records the account the OSC actually executed through,
// compared against the contract's declared account.
type BankAccountRecord struct {
	ID               int64  `db:"id" json:"id"`
	Contract         string `db:"contract_id" json:"contract"`
	StatementBank    string `db:"statement_bank" json:"statement_bank"`
	ExecutionAccount string `db:"execution_account" json:"execution_account"`
}

// PlannedBudgetLine is one planned expense category of the partnership
// (external master data, read-only here).
type PlannedBudgetLine struct {
	ID             int64           `db:"id" json:"id"`
	Contract       string          `db:"contract_id" json:"contract"`
	Category       string          `db:"category" json:"category"`
	Rubric         string          `db:"rubric" json:"rubric"`
	AmountPerMonth decimal.Decimal `db:"amount_per_month" json:"amount_per_month"`
	AmendmentIndex int             `db:"amendment_index" json:"amendment_index"`
}

// Contract mirrors the external contract table (read-only here).
type Contract struct {
	ID             string          `db:"contract_id" json:"contract"`
	OSCName        string          `db:"osc_name" json:"osc_name"`
	PortariaName   string          `db:"portaria_name" json:"portaria_name"`
	Transition     bool            `db:"transition" json:"transition"`
	StartDate      time.Time       `db:"start_date" json:"start_date"`
	EndDate        time.Time       `db:"end_date" json:"end_date"`
	DurationMonths int             `db:"duration_months" json:"duration_months"`
	PlannedTotal   decimal.Decimal `db:"planned_total" json:"planned_total"`
	PaidTotal      decimal.Decimal `db:"paid_total" json:"paid_total"`
	HasCounterpart bool            `db:"has_counterpart" json:"has_counterpart"`
	Account        string          `db:"account" json:"account"`
	Responsibility int             `db:"responsibility" json:"responsibility"`
	RescissionDate *time.Time      `db:"rescission_date" json:"rescission_date,omitempty"`
}

// EffectiveEnd is the rescission date when one is recorded, otherwise the
// contractual end date.
func (c Contract) EffectiveEnd() time.Time {
	if c.RescissionDate != nil && !c.RescissionDate.IsZero() {
		return *c.RescissionDate
	}
	return c.EndDate
}

// Installment kinds of the provision schedule.
const (
	InstallmentTrimestral = "Trimestral"
	InstallmentSemestral  = "Semestral"
	InstallmentFinal      = "Final"
)

// Installment is one projected accountability window of a contract.
// Responsibility is the tier in force; ResponsibilityOverride, when set, is
// the analyst's pin and survives schedule recomputes.
type Installment struct {
	ID                     int64     `db:"id" json:"id"`
	Contract               string    `db:"contract_id" json:"contract"`
	Kind                   string    `db:"kind" json:"kind"`
	Number                 int       `db:"number" json:"number"`
	VigenciaInicial        time.Time `db:"vigencia_inicial" json:"vigencia_inicial"`
	VigenciaFinal          time.Time `db:"vigencia_final" json:"vigencia_final"`
	Delivered              bool      `db:"delivered" json:"delivered"`
	Note                   string    `db:"note" json:"note"`
	Responsibility         int       `db:"responsibility" json:"responsibility"`
	ResponsibilityOverride *int      `db:"responsibility_override" json:"responsibility_override,omitempty"`
}

// RatifiedInconsistency is one append-only audit row confirming a detected
// inconsistency for a supporting movement. Movement fields are snapshotted so
// the audit survives later edits.
type RatifiedInconsistency struct {
	ID         int64           `db:"id" json:"id"`
	Contract   string          `db:"contract_id" json:"contract"`
	ItemName   string          `db:"item_name" json:"item_name"`
	MovementID int64           `db:"movement_id" json:"movement_id"`
	Date       time.Time       `db:"movement_date" json:"movement_date"`
	Amount     decimal.Decimal `db:"amount" json:"amount"`
	Category   Category        `db:"category" json:"category"`
	Origin     string          `db:"origin_or_destination" json:"origin_or_destination"`
	Evaluation Evaluation      `db:"evaluation" json:"evaluation"`
	Status     string          `db:"status" json:"status"`
	Operator   string          `db:"operator" json:"operator"`
	BatchID    string          `db:"batch_id" json:"batch_id"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// InconsistencyTemplate is the externally stored text of one of the twelve
// known checks.
type InconsistencyTemplate struct {
	ID         int    `db:"id" json:"id"`
	Name       string `db:"name" json:"name"`
	ModelText  string `db:"model_text" json:"model_text"`
	Resolution string `db:"resolution" json:"resolution"`
	Ordering   int    `db:"ordering" json:"ordering"`
}

// CategoryRef is the reference catalog entry for a transaction category.
// DocsExempt means the documentary evaluation does not apply to the category
// and its four fields must stay empty. (The source system stored this in a
// column named "aplicacao" with inverted meaning.)
type CategoryRef struct {
	ID         int64  `db:"id" json:"id"`
	Name       string `db:"name" json:"name"`
	DocsExempt bool   `db:"docs_exempt" json:"docs_exempt"`
}
