package main

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/smdhc/parcerias-engine/internal/dates"
	"github.com/smdhc/parcerias-engine/internal/ledger"
	"github.com/smdhc/parcerias-engine/internal/money"
	"github.com/smdhc/parcerias-engine/internal/response"
)

// Handlers for the analyst-entered side records: yields, counterpart entries
// and the execution bank account. They are plain CRUD over the store; all the
// logic that consumes them lives in the detector and the report.

type GetYieldsResponse = response.APIResponse[[]ledger.YieldRecord]
type CreateYieldResponse = response.APIResponse[*ledger.YieldRecord]
type GetCounterpartsResponse = response.APIResponse[[]ledger.CounterpartEntry]
type UpsertCounterpartResponse = response.APIResponse[*ledger.CounterpartEntry]
type GetBankAccountResponse = response.APIResponse[*ledger.BankAccountRecord]
type UpsertBankAccountResponse = response.APIResponse[*ledger.BankAccountRecord]

func (app *application) handleGetYields(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contract, ok := app.contractFromRequest(ctx, w, r)
	if !ok {
		return
	}

	data, err := app.store.Yields.ForContract(ctx, contract.ID)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to list yields: "+err.Error())
		return
	}

	response := &GetYieldsResponse{
		Success: true,
		Data:    data,
		Message: "Successfully listed yields",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleCreateYield(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contract, ok := app.contractFromRequest(ctx, w, r)
	if !ok {
		return
	}

	var input struct {
		ReferenceDate string `json:"reference_date"`
		Gross         string `json:"gross"`
		IR            string `json:"ir"`
		IOF           string `json:"iof"`
		Note          string `json:"note"`
	}
	if err := readJSON(w, r, &input); err != nil {
		return
	}

	refDate, err := dates.Parse(input.ReferenceDate)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	gross, err := money.Parse(input.Gross)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid gross: "+err.Error())
		return
	}
	ir, iof := decimalOrZero(input.IR), decimalOrZero(input.IOF)

	y := &ledger.YieldRecord{
		Contract:      contract.ID,
		ReferenceDate: refDate,
		Gross:         gross,
		IR:            ir,
		IOF:           iof,
		Note:          input.Note,
	}
	if err := app.store.Yields.Insert(ctx, y); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to insert yield: "+err.Error())
		return
	}

	response := &CreateYieldResponse{
		Success: true,
		Data:    y,
		Message: "Successfully recorded yield",
	}

	if err := writeJSON(w, http.StatusCreated, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleDeleteYield(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid yield id")
		return
	}

	if err := app.store.Yields.Delete(ctx, id); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to delete yield: "+err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) handleGetCounterparts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contract, ok := app.contractFromRequest(ctx, w, r)
	if !ok {
		return
	}

	data, err := app.store.Counterparts.ForContract(ctx, contract.ID)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to list counterparts: "+err.Error())
		return
	}

	response := &GetCounterpartsResponse{
		Success: true,
		Data:    data,
		Message: "Successfully listed counterparts",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleUpsertCounterpart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contract, ok := app.contractFromRequest(ctx, w, r)
	if !ok {
		return
	}
	if !contract.HasCounterpart {
		writeJSONError(w, http.StatusConflict, "contract has no counterpart commitment")
		return
	}

	var cp ledger.CounterpartEntry
	if err := readJSON(w, r, &cp); err != nil {
		return
	}
	cp.Contract = contract.ID
	cp.Competence = dates.FirstOfMonth(cp.Competence)

	if err := app.store.Counterparts.Upsert(ctx, &cp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to upsert counterpart: "+err.Error())
		return
	}

	response := &UpsertCounterpartResponse{
		Success: true,
		Data:    &cp,
		Message: "Successfully recorded counterpart entry",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleGetBankAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contract, ok := app.contractFromRequest(ctx, w, r)
	if !ok {
		return
	}

	data, err := app.store.BankAccounts.ForContract(ctx, contract.ID)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to load bank account: "+err.Error())
		return
	}

	response := &GetBankAccountResponse{
		Success: true,
		Data:    data,
		Message: "Successfully loaded bank account",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleUpsertBankAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contract, ok := app.contractFromRequest(ctx, w, r)
	if !ok {
		return
	}

	var rec ledger.BankAccountRecord
	if err := readJSON(w, r, &rec); err != nil {
		return
	}
	rec.Contract = contract.ID

	if err := app.store.BankAccounts.Upsert(ctx, &rec); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to upsert bank account: "+err.Error())
		return
	}

	response := &UpsertBankAccountResponse{
		Success: true,
		Data:    &rec,
		Message: "Successfully recorded bank account",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func decimalOrZero(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := money.Parse(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
