package main

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/smdhc/parcerias-engine/internal/ledger"
	"github.com/smdhc/parcerias-engine/internal/response"
)

type PutDocEvaluationResponse = response.APIResponse[ledger.DocEvaluation]

// @Summary		Record a documentary evaluation
// @Description	Writes the four documentary fields of one movement. Exempt categories are forced empty; evaluated and fully populated movements get positive defaults into empty fields.
// @Tags			Movements
// @Accept			json
// @Produce		json
// @Param			id		path		int							true	"Movement id"
// @Success		200		{object}	PutDocEvaluationResponse	"Stored evaluation after auto-fill"
// @Failure		404		{object}	response.ErrorResponse		"Unknown movement"
// @Router			/movements/{id}/evaluation [put]
func (app *application) handlePutDocEvaluation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid movement id")
		return
	}

	var input struct {
		Guia          string `json:"guia"`
		Comprovante   string `json:"comprovante"`
		Contratos     string `json:"contratos"`
		ForaMunicipio string `json:"fora_municipio"`
	}
	if err := readJSON(w, r, &input); err != nil {
		return
	}

	movement, err := app.store.Movements.Get(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		writeJSONError(w, http.StatusNotFound, "unknown movement")
		return
	}
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to load movement: "+err.Error())
		return
	}

	refs, err := app.store.Templates.CategoryRefs(ctx)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to load category catalog: "+err.Error())
		return
	}

	ev := ledger.DocEvaluation{
		MovementID:    id,
		Guia:          input.Guia,
		Comprovante:   input.Comprovante,
		Contratos:     input.Contratos,
		ForaMunicipio: input.ForaMunicipio,
	}
	ev = ledger.AutoFillDocEvaluation(movement, ev, refs[string(movement.Category)])

	if err := app.store.Evaluations.Upsert(ctx, &ev); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to upsert doc evaluation: "+err.Error())
		return
	}

	response := &PutDocEvaluationResponse{
		Success: true,
		Data:    ev,
		Message: "Successfully recorded documentary evaluation",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
