package main

import (
	"context"
	"net/http"

	"github.com/smdhc/parcerias-engine/internal/inconsistency"
	"github.com/smdhc/parcerias-engine/internal/ledger"
	"github.com/smdhc/parcerias-engine/internal/response"
	"github.com/smdhc/parcerias-engine/internal/store"
)

type GetInconsistenciesResponse = response.APIResponse[[]inconsistency.Item]
type RatifyInconsistencyResponse = response.APIResponse[[]ledger.RatifiedInconsistency]

// snapshotFor assembles everything the detector reads for one contract.
func (app *application) snapshotFor(ctx context.Context, contract ledger.Contract) (inconsistency.Snapshot, error) {
	movements, err := app.store.Movements.List(ctx, store.MovementFilter{Contract: contract.ID})
	if err != nil {
		return inconsistency.Snapshot{}, err
	}
	evaluations, err := app.store.Evaluations.ForContract(ctx, contract.ID)
	if err != nil {
		return inconsistency.Snapshot{}, err
	}
	account, err := app.store.BankAccounts.ForContract(ctx, contract.ID)
	if err != nil {
		return inconsistency.Snapshot{}, err
	}
	yields, err := app.store.Yields.ForContract(ctx, contract.ID)
	if err != nil {
		return inconsistency.Snapshot{}, err
	}
	counterparts, err := app.store.Counterparts.ForContract(ctx, contract.ID)
	if err != nil {
		return inconsistency.Snapshot{}, err
	}
	budget, err := app.store.Budget.ForContract(ctx, contract.ID)
	if err != nil {
		return inconsistency.Snapshot{}, err
	}
	ratified, err := app.store.Ratifications.RatifiedNames(ctx, contract.ID)
	if err != nil {
		return inconsistency.Snapshot{}, err
	}

	return inconsistency.Snapshot{
		Contract:     contract,
		Movements:    movements,
		Evaluations:  evaluations,
		BankAccount:  account,
		Yields:       yields,
		Counterparts: counterparts,
		Budget:       budget,
		Ratified:     ratified,
	}, nil
}

func (app *application) handleGetInconsistencies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contract, ok := app.contractFromRequest(ctx, w, r)
	if !ok {
		return
	}

	snap, err := app.snapshotFor(ctx, contract)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to load contract snapshot: "+err.Error())
		return
	}
	templates, err := app.store.Templates.List(ctx)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to load inconsistency templates: "+err.Error())
		return
	}

	items, err := inconsistency.Detect(snap, templates)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to detect inconsistencies: "+err.Error())
		return
	}

	response := &GetInconsistenciesResponse{
		Success: true,
		Data:    items,
		Message: "Successfully detected inconsistencies",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Ratify an inconsistency
// @Description	Snapshots the supporting movements of a detected item into the append-only ratification log.
// @Tags			Inconsistencies
// @Accept			json
// @Produce		json
// @Param			contract	query		string							true	"Contract id"
// @Param			input		body		object{item_name:string,operator:string}	true	"Item to ratify"
// @Success		201			{object}	RatifyInconsistencyResponse		"Appended ratification batch"
// @Failure		404			{object}	response.ErrorResponse			"Item not currently detected"
// @Router			/inconsistencies/ratify [post]
func (app *application) handleRatifyInconsistency(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contract, ok := app.contractFromRequest(ctx, w, r)
	if !ok {
		return
	}

	var input struct {
		ItemName string `json:"item_name"`
		Operator string `json:"operator"`
	}
	if err := readJSON(w, r, &input); err != nil {
		return
	}
	if input.ItemName == "" || input.Operator == "" {
		writeJSONError(w, http.StatusBadRequest, "item_name and operator are required")
		return
	}

	snap, err := app.snapshotFor(ctx, contract)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to load contract snapshot: "+err.Error())
		return
	}
	templates, err := app.store.Templates.List(ctx)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to load inconsistency templates: "+err.Error())
		return
	}
	items, err := inconsistency.Detect(snap, templates)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to detect inconsistencies: "+err.Error())
		return
	}

	var target *inconsistency.Item
	for i := range items {
		if items[i].Name == input.ItemName {
			target = &items[i]
			break
		}
	}
	if target == nil {
		writeJSONError(w, http.StatusNotFound, "item is not currently detected for this contract")
		return
	}

	rows := inconsistency.BuildRatifications(contract.ID, *target, input.Operator)
	if err := app.store.Ratifications.InsertBatch(ctx, rows); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to append ratification: "+err.Error())
		return
	}

	response := &RatifyInconsistencyResponse{
		Success: true,
		Data:    rows,
		Message: "Successfully ratified inconsistency",
	}

	if err := writeJSON(w, http.StatusCreated, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
