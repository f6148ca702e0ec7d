package main

import (
	"net/http"
	"strconv"

	"github.com/smdhc/parcerias-engine/internal/report"
	"github.com/smdhc/parcerias-engine/internal/response"
	"github.com/smdhc/parcerias-engine/internal/store"
)

type GetFinancialReportResponse = response.APIResponse[report.Report]

func (app *application) handleGetFinancialReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contract, ok := app.contractFromRequest(ctx, w, r)
	if !ok {
		return
	}

	override := 0
	if tierParam := r.URL.Query().Get("responsibility"); tierParam != "" {
		t, err := strconv.Atoi(tierParam)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid responsibility parameter")
			return
		}
		override = t
	}

	movements, err := app.store.Movements.List(ctx, store.MovementFilter{Contract: contract.ID})
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to list movements: "+err.Error())
		return
	}
	budget, err := app.store.Budget.ForContract(ctx, contract.ID)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to load planned budget: "+err.Error())
		return
	}
	counterparts, err := app.store.Counterparts.ForContract(ctx, contract.ID)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to load counterparts: "+err.Error())
		return
	}
	yields, err := app.store.Yields.ForContract(ctx, contract.ID)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to load yields: "+err.Error())
		return
	}

	data, err := report.Compute(report.Input{
		Contract:               contract,
		Movements:              movements,
		Budget:                 budget,
		Counterparts:           counterparts,
		Yields:                 yields,
		YieldMode:              r.URL.Query().Get("yield_mode"),
		ResponsibilityOverride: override,
	})
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	response := &GetFinancialReportResponse{
		Success: true,
		Data:    data,
		Message: "Successfully computed financial report",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
