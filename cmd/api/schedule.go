package main

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/smdhc/parcerias-engine/internal/ledger"
	"github.com/smdhc/parcerias-engine/internal/portaria"
	"github.com/smdhc/parcerias-engine/internal/response"
	"github.com/smdhc/parcerias-engine/internal/schedule"
)

type GetScheduleResponse = response.APIResponse[[]ledger.Installment]
type RecomputeScheduleResponse = response.APIResponse[[]ledger.Installment]
type UpdateInstallmentResponse = response.APIResponse[ledger.Installment]

func (app *application) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contract, ok := app.contractFromRequest(ctx, w, r)
	if !ok {
		return
	}

	data, err := app.store.Installments.ForContract(ctx, contract.ID)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to list installments: "+err.Error())
		return
	}

	response := &GetScheduleResponse{
		Success: true,
		Data:    data,
		Message: "Successfully listed installments",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleUpdateInstallment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid installment id")
		return
	}

	var input struct {
		Delivered      bool   `json:"delivered"`
		Note           string `json:"note"`
		Responsibility *int   `json:"responsibility"`
	}
	if err := readJSON(w, r, &input); err != nil {
		return
	}
	if o := input.Responsibility; o != nil && (*o < portaria.TierDepartment || *o > portaria.TierManager) {
		writeJSONError(w, http.StatusBadRequest, "responsibility tier must be 1, 2 or 3")
		return
	}

	data, err := app.store.Installments.SetAnalystFields(ctx, id, input.Delivered, input.Note, input.Responsibility)
	if errors.Is(err, sql.ErrNoRows) {
		writeJSONError(w, http.StatusNotFound, "unknown installment")
		return
	}
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to update installment: "+err.Error())
		return
	}

	response := &UpdateInstallmentResponse{
		Success: true,
		Data:    data,
		Message: "Successfully updated installment",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Recompute the provision schedule
// @Description	Regenerates the installment projection from the contract dates and portaria, preserving analyst-entered fields. A rescission without disbursed resources drops the stored schedule.
// @Tags			Schedule
// @Produce		json
// @Param			contract	query		string						true	"Contract id"
// @Success		200			{object}	RecomputeScheduleResponse	"Reconciled schedule"
// @Failure		409			{object}	response.ErrorResponse		"Rescission leaves nothing to schedule"
// @Router			/schedule/recompute [post]
func (app *application) handleRecomputeSchedule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contract, ok := app.contractFromRequest(ctx, w, r)
	if !ok {
		return
	}

	existing, err := app.store.Installments.ForContract(ctx, contract.ID)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to list installments: "+err.Error())
		return
	}

	data, err := schedule.Reconcile(contract, existing)
	if errors.Is(err, schedule.ErrNoResources) {
		if err := app.store.Installments.DeleteForContract(ctx, contract.ID); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to drop installments: "+err.Error())
			return
		}
		writeJSONError(w, http.StatusConflict, schedule.ErrNoResources.Error())
		return
	}
	if errors.Is(err, schedule.ErrMinimalExecution) {
		writeJSONError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to recompute schedule: "+err.Error())
		return
	}

	if err := app.store.Installments.Replace(ctx, contract.ID, data); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to persist schedule: "+err.Error())
		return
	}

	response := &RecomputeScheduleResponse{
		Success: true,
		Data:    data,
		Message: "Successfully recomputed schedule",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
