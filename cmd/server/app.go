package main

import (
	"net/http"

	"github.com/diewo77/garage-estimates/internal/handlers"
	"github.com/diewo77/garage-estimates/internal/httpx"
	"github.com/diewo77/garage-estimates/internal/storage"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux   *http.ServeMux
	store *storage.Store
}

// NewApp creates a new application with all routes configured.
func NewApp(store *storage.Store) *App {
	app := &App{
		mux:   http.NewServeMux(),
		store: store,
	}
	app.setupRoutes()
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	dh := handlers.NewDraftHandler(a.store)
	ch := handlers.NewComputeHandler()
	ph := handlers.NewPDFHandler(a.store)

	a.mux.HandleFunc("GET /health", a.health)

	// Draft persistence
	a.mux.HandleFunc("GET /api/draft", dh.Get)
	a.mux.HandleFunc("PUT /api/draft", dh.Save)
	a.mux.HandleFunc("DELETE /api/draft", dh.Clear)

	// Calculation engine
	a.mux.HandleFunc("POST /api/draft/totals", ch.Totals)
	a.mux.HandleFunc("POST /api/line-items/validate", ch.ValidateLineItem)

	// PDF rendering
	a.mux.HandleFunc("POST /api/pdf", ph.Render)
	a.mux.HandleFunc("GET /api/draft/pdf", ph.RenderStored)
}

func (a *App) health(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
