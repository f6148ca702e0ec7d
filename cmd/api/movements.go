package main

import (
	"errors"
	"net/http"

	"github.com/smdhc/parcerias-engine/internal/classifier"
	"github.com/smdhc/parcerias-engine/internal/dates"
	"github.com/smdhc/parcerias-engine/internal/ledger"
	"github.com/smdhc/parcerias-engine/internal/response"
	"github.com/smdhc/parcerias-engine/internal/store"
)

type GetMovementsResponse = response.APIResponse[[]ledger.Movement]
type BulkUpsertMovementsResponse = response.APIResponse[[]ledger.Movement]
type ClearMovementsResponse = response.APIResponse[any]

func (app *application) handleGetMovements(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contract, ok := app.contractFromRequest(ctx, w, r)
	if !ok {
		return
	}

	filter := store.MovementFilter{
		Contract:   contract.ID,
		Category:   r.URL.Query().Get("category"),
		Evaluation: r.URL.Query().Get("evaluation"),
		Origin:     r.URL.Query().Get("origin"),
	}
	if comp := r.URL.Query().Get("competence"); comp != "" {
		t, err := dates.ParseCompetence(comp)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		filter.Competence = t
	}

	data, err := app.store.Movements.List(ctx, filter)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to list movements: "+err.Error())
		return
	}

	response := &GetMovementsResponse{
		Success: true,
		Data:    data,
		Message: "Successfully listed movements",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Bulk upsert movements
// @Description	Upserts ledger rows and runs the auto-classifier in the same transaction. mode=full mirrors the input set, mode=partial never deletes.
// @Tags			Movements
// @Accept			json
// @Produce		json
// @Param			contract	query		string							true	"Contract id"
// @Param			mode		query		string							false	"full or partial"	default(partial)
// @Success		200			{object}	BulkUpsertMovementsResponse		"Resulting ledger"
// @Failure		422			{object}	response.ErrorResponse			"A row violates the credit-xor-debit invariant"
// @Router			/movements/bulk [post]
func (app *application) handleBulkUpsertMovements(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contract, ok := app.contractFromRequest(ctx, w, r)
	if !ok {
		return
	}

	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = "partial"
	}
	if mode != "full" && mode != "partial" {
		writeJSONError(w, http.StatusBadRequest, "mode must be full or partial")
		return
	}

	var input struct {
		Rows []ledger.Movement `json:"rows"`
	}
	if err := readJSON(w, r, &input); err != nil {
		return
	}

	data, err := app.store.Movements.UpsertBulk(ctx, contract.ID, input.Rows, mode == "full", classifier.RuleFor(contract))
	if errors.Is(err, ledger.ErrInvalidMovement) {
		writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to upsert movements: "+err.Error())
		return
	}

	response := &BulkUpsertMovementsResponse{
		Success: true,
		Data:    data,
		Message: "Successfully upserted movements",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleClearMovements(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contract, ok := app.contractFromRequest(ctx, w, r)
	if !ok {
		return
	}

	if err := app.store.Movements.Clear(ctx, contract.ID); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to clear movements: "+err.Error())
		return
	}

	response := &ClearMovementsResponse{
		Success: true,
		Message: "Successfully cleared movements",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
