package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ReportRoutes interface {
	GetReports(w http.ResponseWriter, r *http.Request)
	GetReportsCSV(w http.ResponseWriter, r *http.Request)
	GetFilterOptions(w http.ResponseWriter, r *http.Request)
}

type DashboardRoutes interface {
	TablePage(w http.ResponseWriter, r *http.Request)
	MapPage(w http.ResponseWriter, r *http.Request)
	MapChart(w http.ResponseWriter, r *http.Request)
}

type HealthRoutes interface {
	Ping(w http.ResponseWriter, r *http.Request)
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	reportHandler    ReportRoutes
	dashboardHandler DashboardRoutes
	healthHandler    HealthRoutes
	metricsHandler   http.Handler
	router           *mux.Router
}

// NewRouter creates a router with the app’s routes.
func NewRouter(
	reportHandler ReportRoutes,
	dashboardHandler DashboardRoutes,
	healthHandler HealthRoutes,
	router *mux.Router) *Router {
	return &Router{
		reportHandler:    reportHandler,
		dashboardHandler: dashboardHandler,
		healthHandler:    healthHandler,
		metricsHandler:   promhttp.Handler(),
		router:           router,
	}
}

func (r *Router) RegisterRoutes() {
	// pages, both accept ?report_date={YYYY-MM-DD|All}&province={name|All}
	r.router.HandleFunc("/", r.dashboardHandler.TablePage).Methods("GET")
	r.router.HandleFunc("/map", r.dashboardHandler.MapPage).Methods("GET")
	r.router.HandleFunc("/map/chart", r.dashboardHandler.MapChart).Methods("GET")

	r.router.HandleFunc("/v1/reports", r.reportHandler.GetReports).Methods("GET")
	r.router.HandleFunc("/v1/reports.csv", r.reportHandler.GetReportsCSV).Methods("GET")
	r.router.HandleFunc("/v1/filters", r.reportHandler.GetFilterOptions).Methods("GET")

	r.router.HandleFunc("/ping", r.healthHandler.Ping).Methods("GET")
	r.router.HandleFunc("/healthz", r.healthHandler.Healthz).Methods("GET")
	r.router.HandleFunc("/readyz", r.healthHandler.Readyz).Methods("GET")
	r.router.Handle("/metrics", r.metricsHandler).Methods("GET")
}
