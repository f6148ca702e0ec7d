package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/smdhc/parcerias-engine/internal/dates"
	"github.com/smdhc/parcerias-engine/internal/ledger"
	"github.com/smdhc/parcerias-engine/internal/money"
	"github.com/smdhc/parcerias-engine/internal/response"
)

type GetNotaFiscaisResponse = response.APIResponse[[]ledger.NotaFiscalLink]
type CreateNotaFiscalResponse = response.APIResponse[*ledger.NotaFiscalLink]

func (app *application) handleGetNotaFiscais(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	movementID, ok := app.movementFromRequest(ctx, w, r)
	if !ok {
		return
	}

	data, err := app.store.NotaFiscais.ForMovement(ctx, movementID)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to list nota fiscal links: "+err.Error())
		return
	}

	response := &GetNotaFiscaisResponse{
		Success: true,
		Data:    data,
		Message: "Successfully listed nota fiscal links",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleCreateNotaFiscal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	movementID, ok := app.movementFromRequest(ctx, w, r)
	if !ok {
		return
	}

	var input struct {
		Number    string `json:"number"`
		Issuer    string `json:"issuer"`
		IssueDate string `json:"issue_date"`
		Amount    string `json:"amount"`
		URL       string `json:"url"`
	}
	if err := readJSON(w, r, &input); err != nil {
		return
	}

	issueDate, err := dates.Parse(input.IssueDate)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid issue date: "+err.Error())
		return
	}
	amount, err := money.Parse(input.Amount)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid amount: "+err.Error())
		return
	}

	link := &ledger.NotaFiscalLink{
		MovementID: movementID,
		Number:     input.Number,
		Issuer:     input.Issuer,
		IssueDate:  issueDate,
		Amount:     amount,
		URL:        input.URL,
	}
	if err := app.store.NotaFiscais.Insert(ctx, link); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to insert nota fiscal link: "+err.Error())
		return
	}

	response := &CreateNotaFiscalResponse{
		Success: true,
		Data:    link,
		Message: "Successfully linked nota fiscal",
	}

	if err := writeJSON(w, http.StatusCreated, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleDeleteNotaFiscal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid nota fiscal link id")
		return
	}

	if err := app.store.NotaFiscais.Delete(ctx, id); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to delete nota fiscal link: "+err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// movementFromRequest resolves the {id} route parameter against the movements
// table, writing the error response itself when resolution fails.
func (app *application) movementFromRequest(ctx context.Context, w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid movement id")
		return 0, false
	}

	if _, err := app.store.Movements.Get(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "unknown movement")
		} else {
			writeJSONError(w, http.StatusInternalServerError, "failed to load movement: "+err.Error())
		}
		return 0, false
	}
	return id, true
}
