// Package ui exposes the validation engine over HTTP. Uploads are
// validated synchronously; the results live in a session until the
// caller exports or deletes them.
package ui

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"camcheck/adapters/excel"
	"camcheck/adapters/postgres"
	"camcheck/internal/config"
	"camcheck/internal/session"
)

// App represents the HTTP application
type App struct {
	router    *chi.Mux
	config    *config.Config
	loader    *excel.Loader
	annotator *excel.Annotator
	sessions  *session.Store
	runs      *postgres.RunRepository // nil when history is disabled
}

// NewApp creates a new HTTP application. runs may be nil.
func NewApp(cfg *config.Config, runs *postgres.RunRepository) *App {
	app := &App{
		router:    chi.NewRouter(),
		config:    cfg,
		loader:    excel.NewLoader(),
		annotator: excel.NewAnnotator(),
		sessions:  session.NewStore(time.Duration(cfg.Uploads.SessionTTL) * time.Minute),
		runs:      runs,
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/api/health", a.handleHealth)
	a.router.Get("/api/rules/{validator_type}", a.handleListRules)

	a.router.Post("/api/validate", a.handleValidate)
	a.router.Post("/api/export/csv", a.handleExportCSV)
	a.router.Post("/api/export/excel", a.handleExportExcel)
	a.router.Post("/api/save", a.handleSaveAnnotated)
	a.router.Delete("/api/session/{session_id}", a.handleDeleteSession)

	if a.runs != nil {
		a.router.Get("/api/history", a.handleHistory)
	}
}

// Start runs the HTTP server and the background session sweeper
func (a *App) Start() error {
	go a.sweepLoop()

	addr := ":" + a.config.Server.Port
	log.Printf("[App] listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// Router exposes the chi mux for tests
func (a *App) Router() http.Handler {
	return a.router
}

func (a *App) sweepLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		a.sessions.Sweep()
	}
}
