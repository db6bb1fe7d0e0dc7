// Package api provides the HTTP API for the Ruth Gorge expedition planner.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ruthgorge/expedition/internal/api/handler"
	"github.com/ruthgorge/expedition/internal/api/middleware"
	"github.com/ruthgorge/expedition/internal/document"
	"github.com/ruthgorge/expedition/internal/plan"
	"github.com/ruthgorge/expedition/internal/provider/resilience"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics
	RequireTLS  bool
	Plans       *plan.Service
	Sweeper     *plan.Sweeper
	Document    *document.Loader
	Registry    *resilience.Registry
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "expedition-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))         // Structured logging
	r.Use(middleware.Recovery(cfg.Logger))       // Panic recovery
	r.Use(chimiddleware.RealIP)                  // Real IP extraction
	r.Use(middleware.SecurityHeaders)            // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS(cfg.RequireTLS)) // TLS enforcement
	r.Use(middleware.ContentTypeJSON)            // JSON content type

	opsHandler := handler.NewOpsHandler(handler.OpsConfig{
		Version:   cfg.Version,
		BuildTime: cfg.BuildTime,
		Plans:     cfg.Plans,
		Sweeper:   cfg.Sweeper,
		Document:  cfg.Document,
		Registry:  cfg.Registry,
	})
	catalogHandler := handler.NewCatalogHandler(cfg.Plans.Store(), cfg.Logger)
	planHandler := handler.NewPlanHandler(cfg.Plans, cfg.Logger)
	mapHandler := handler.NewMapHandler(cfg.Plans, cfg.Logger)
	itineraryHandler := handler.NewItineraryHandler(cfg.Plans, cfg.Logger)
	budgetHandler := handler.NewBudgetHandler(cfg.Plans, cfg.Logger)
	packingHandler := handler.NewPackingHandler(cfg.Plans, cfg.Logger)
	documentHandler := handler.NewDocumentHandler(cfg.Document, cfg.Logger)

	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min
	exportRateLimit := middleware.RateLimitByPlan(middleware.ExpensiveRateLimit)  // 30 req/min per plan

	r.Route("/v1", func(r chi.Router) {
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})

		// Reference catalog (read-only)
		r.Group(func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/routes", catalogHandler.ListRoutes)
			r.Get("/routes/facets", catalogHandler.RouteFacets)
			r.Get("/routes/{routeId}", catalogHandler.GetRoute)
			r.Get("/climbers", catalogHandler.ListClimbers)
			r.Get("/packing/catalog", catalogHandler.PackingCatalog)
			r.Get("/budget/items", catalogHandler.BudgetItems)
			r.Get("/logistics", catalogHandler.Logistics)
			r.Get("/seasonal", catalogHandler.Seasonal)
			r.Get("/seasonal/climate-chart", catalogHandler.ClimateChart)
			r.Get("/volcanic-risk", catalogHandler.VolcanicRisk)
			r.Get("/map/markers/{markerId}", mapHandler.MarkerInfo)
		})

		r.Route("/documents/reference", func(r chi.Router) {
			r.Use(expensiveRateLimit)
			r.Get("/", documentHandler.Status)
			r.Get("/pages/{page}", documentHandler.Page)
			r.Get("/file", documentHandler.Download)
		})

		r.Route("/plans", func(r chi.Router) {
			r.Use(middleware.RequireJSON)
			r.With(middleware.RateLimitByIP(middleware.PlanCreateRateLimit)).Post("/", planHandler.CreatePlan)

			r.Route("/{planId}", func(r chi.Router) {
				r.Use(middleware.RateLimitByPlan(middleware.StandardRateLimit)) // 100 req/min per plan
				r.Get("/", planHandler.GetPlan)
				r.Delete("/", planHandler.DeletePlan)
				r.Get("/dashboard", planHandler.Dashboard)

				r.Put("/routes", planHandler.SetRoutes)
				r.Post("/routes/{routeId}/toggle", planHandler.ToggleRoute)
				r.Get("/map", mapHandler.PlanMap)

				r.Put("/dates", planHandler.SetDates)
				r.Get("/calendar", itineraryHandler.Calendar)

				r.Route("/team", func(r chi.Router) {
					r.Put("/", planHandler.SetTeam)
					r.Post("/view", planHandler.ShowTeamView)
					r.Post("/{climberId}/toggle", planHandler.ToggleClimber)
					r.Post("/{climberId}/activate", planHandler.ActivateClimber)
				})

				r.Route("/itinerary", func(r chi.Router) {
					r.Get("/", itineraryHandler.ListActivities)
					r.Post("/generate", itineraryHandler.Generate)
					r.Route("/editor", func(r chi.Router) {
						r.Get("/", itineraryHandler.Editor)
						r.Post("/", itineraryHandler.OpenEditor)
						r.Put("/draft", itineraryHandler.UpdateDraft)
						r.Post("/save", itineraryHandler.SaveActivity)
						r.Post("/cancel", itineraryHandler.CancelEdit)
						r.Post("/delete", itineraryHandler.DeleteActivity)
					})
				})

				r.Route("/budget", func(r chi.Router) {
					r.Get("/", budgetHandler.GetBudget)
					r.Post("/items/{itemId}/toggle", budgetHandler.ToggleItem)
					r.Put("/items/{itemId}/quantity", budgetHandler.SetQuantity)
					r.Put("/persons", budgetHandler.SetPersons)
					r.Post("/custom-items", budgetHandler.AddCustomItem)
					r.Delete("/custom-items/{itemId}", budgetHandler.DeleteCustomItem)
					r.With(exportRateLimit).Get("/export.csv", budgetHandler.ExportCSV)
					r.With(exportRateLimit).Get("/export.xlsx", budgetHandler.ExportXLSX)
				})

				r.Route("/packing", func(r chi.Router) {
					r.Get("/", packingHandler.GetPacking)
					r.Post("/check", packingHandler.CheckItem)
					r.Post("/essentials", packingHandler.CheckEssentials)
					r.Delete("/checks", packingHandler.ClearChecks)
					r.Post("/custom-items", packingHandler.AddCustomItem)
					r.Delete("/custom-items/{itemId}", packingHandler.DeleteCustomItem)
					r.With(exportRateLimit).Get("/export.csv", packingHandler.ExportCSV)
				})
			})
		})
	})

	return r
}
