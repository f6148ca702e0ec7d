package main

import (
	"fmt"
	"net/http"

	"github.com/smdhc/parcerias-engine/internal/analytics"
	"github.com/smdhc/parcerias-engine/internal/export"
	"github.com/smdhc/parcerias-engine/internal/response"
	"github.com/smdhc/parcerias-engine/internal/store"
)

type GetLedgerByCategoryResponse = response.APIResponse[[]analytics.CategoryBreakdown]

// @Summary		Export the classified ledger
// @Description	Streams the ledger as the semicolon-separated CSV filed with official processes.
// @Tags			Ledger
// @Produce		text/csv
// @Param			contract	query	string	true	"Contract id"
// @Router			/ledger/export [get]
func (app *application) handleExportLedger(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contract, ok := app.contractFromRequest(ctx, w, r)
	if !ok {
		return
	}

	rows, err := app.store.Movements.List(ctx, store.MovementFilter{Contract: contract.ID})
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to list movements: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(contract.ID)))
	if err := export.WriteLedger(w, rows); err != nil {
		// Headers are gone at this point, nothing more to report to the client.
		return
	}
}

// exportFilename flattens the contract id (slashes and all) into a safe name.
func exportFilename(contract string) string {
	out := make([]rune, 0, len(contract))
	for _, r := range contract {
		if r == '/' || r == '\\' {
			r = '_'
		}
		out = append(out, r)
	}
	return "extrato_" + string(out) + ".csv"
}

func (app *application) handleGetLedgerByCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contract, ok := app.contractFromRequest(ctx, w, r)
	if !ok {
		return
	}

	rows, err := app.store.Movements.List(ctx, store.MovementFilter{Contract: contract.ID})
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to list movements: "+err.Error())
		return
	}

	data, err := analytics.ByCategory(rows)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to aggregate ledger: "+err.Error())
		return
	}

	response := &GetLedgerByCategoryResponse{
		Success: true,
		Data:    data,
		Message: "Successfully aggregated ledger by category",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
