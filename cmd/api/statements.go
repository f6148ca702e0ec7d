package main

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/smdhc/parcerias-engine/internal/classifier"
	"github.com/smdhc/parcerias-engine/internal/extract"
	"github.com/smdhc/parcerias-engine/internal/ledger"
	"github.com/smdhc/parcerias-engine/internal/response"
)

type ExtractStatementResponse = response.APIResponse[[]ledger.Movement]

// @Summary		Extract a bank statement
// @Description	Parses a text or PDF statement, replaces the contract's ledger with the extracted rows and runs the auto-classifier.
// @Tags			Statements
// @Accept			plain
// @Produce		json
// @Param			contract	query		string						true	"Contract id"
// @Success		201			{object}	ExtractStatementResponse	"Extracted and persisted rows"
// @Failure		422			{object}	response.ErrorResponse		"Empty or unrecognized statement"
// @Router			/statements/extract [post]
func (app *application) handleExtractStatement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contract, ok := app.contractFromRequest(ctx, w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 20<<20)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "failed to read statement body: "+err.Error())
		return
	}

	opts := extract.Options{BankName: app.config.bankName}
	var raws []extract.RawMovement
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/pdf") {
		raws, err = extract.ExtractPDF(body, opts)
	} else {
		raws, err = extract.Extract(body, opts)
	}
	if errors.Is(err, extract.ErrEmptyStatement) || errors.Is(err, extract.ErrUnrecognizedFormat) {
		writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to extract statement: "+err.Error())
		return
	}

	rows := make([]ledger.Movement, 0, len(raws))
	seq := 0
	for _, raw := range raws {
		if raw.BalanceOnly {
			continue
		}
		seq++
		rows = append(rows, ledger.Movement{
			Seq:        seq,
			Date:       raw.Date,
			Credit:     raw.Credit,
			Debit:      raw.Debit,
			Amount:     raw.Amount,
			Category:   raw.Category,
			Competence: raw.Competence,
			Origin:     raw.Origin,
		})
	}

	data, err := app.store.Movements.UpsertBulk(ctx, contract.ID, rows, true, classifier.RuleFor(contract))
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to persist extracted rows: "+err.Error())
		return
	}

	response := &ExtractStatementResponse{
		Success: true,
		Data:    data,
		Message: "Successfully extracted statement",
	}

	if err := writeJSON(w, http.StatusCreated, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
