package main

import (
	"net/http"

	"github.com/smdhc/parcerias-engine/internal/ledger"
	"github.com/smdhc/parcerias-engine/internal/response"
)

type GetContractsResponse = response.APIResponse[[]ledger.Contract]

func (app *application) handleGetContracts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data, err := app.store.Contracts.List(ctx)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to list contracts: "+err.Error())
		return
	}

	response := &GetContractsResponse{
		Success: true,
		Data:    data,
		Message: "Successfully listed contracts",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
