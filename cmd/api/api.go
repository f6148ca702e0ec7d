package main

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/smdhc/parcerias-engine/internal/store"
)

type application struct {
	config config
	store  store.Storage
}

type config struct {
	addr     string
	bankName string
	db       dbConfig
}

type dbConfig struct {
	addr         string
	maxOpenConns int
	maxIdleConns int
	maxIdleTime  string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.Get("/contracts", app.handleGetContracts)

		r.Route("/statements", func(r chi.Router) {
			r.Post("/extract", app.handleExtractStatement)
		})
		r.Route("/movements", func(r chi.Router) {
			r.Get("/", app.handleGetMovements)
			r.Post("/bulk", app.handleBulkUpsertMovements)
			r.Delete("/", app.handleClearMovements)
			r.Put("/{id}/evaluation", app.handlePutDocEvaluation)
			r.Get("/{id}/nota-fiscais", app.handleGetNotaFiscais)
			r.Post("/{id}/nota-fiscais", app.handleCreateNotaFiscal)
		})
		r.Route("/nota-fiscais", func(r chi.Router) {
			r.Delete("/{id}", app.handleDeleteNotaFiscal)
		})
		r.Route("/ledger", func(r chi.Router) {
			r.Get("/export", app.handleExportLedger)
			r.Get("/by-category", app.handleGetLedgerByCategory)
		})
		r.Route("/inconsistencies", func(r chi.Router) {
			r.Get("/", app.handleGetInconsistencies)
			r.Post("/ratify", app.handleRatifyInconsistency)
		})
		r.Route("/yields", func(r chi.Router) {
			r.Get("/", app.handleGetYields)
			r.Post("/", app.handleCreateYield)
			r.Delete("/{id}", app.handleDeleteYield)
		})
		r.Route("/counterparts", func(r chi.Router) {
			r.Get("/", app.handleGetCounterparts)
			r.Post("/", app.handleUpsertCounterpart)
		})
		r.Route("/bank-account", func(r chi.Router) {
			r.Get("/", app.handleGetBankAccount)
			r.Put("/", app.handleUpsertBankAccount)
		})
		r.Route("/reports", func(r chi.Router) {
			r.Get("/financial", app.handleGetFinancialReport)
		})
		r.Route("/schedule", func(r chi.Router) {
			r.Get("/", app.handleGetSchedule)
			r.Put("/{id}", app.handleUpdateInstallment)
			r.Post("/recompute", app.handleRecomputeSchedule)
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 120,
		ReadTimeout:  time.Second * 40,
		IdleTimeout:  time.Minute,
	}

	log.Printf("Server started on %s", app.config.addr)
	return srv.ListenAndServe()
}
