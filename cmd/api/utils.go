package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/smdhc/parcerias-engine/internal/ledger"
	"github.com/smdhc/parcerias-engine/internal/store"
)

// contractFromRequest resolves the mandatory ?contract= parameter against the
// external contract table. It writes the error response itself, so callers
// just bail out on !ok.
func (app *application) contractFromRequest(ctx context.Context, w http.ResponseWriter, r *http.Request) (ledger.Contract, bool) {
	id := r.URL.Query().Get("contract")
	if id == "" {
		writeJSONError(w, http.StatusBadRequest, "missing contract parameter")
		return ledger.Contract{}, false
	}

	c, err := app.store.Contracts.Get(ctx, id)
	if errors.Is(err, store.ErrUnknownContract) {
		writeJSONError(w, http.StatusNotFound, err.Error())
		return ledger.Contract{}, false
	}
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to load contract: "+err.Error())
		return ledger.Contract{}, false
	}
	return c, true
}
