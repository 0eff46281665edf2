package server

import (
	"log/slog"
	"net/http"

	"datalens/internal/handlers"
	"datalens/internal/services"
)

type Server struct {
	mux         *http.ServeMux
	logger      *slog.Logger
	apiHandlers *handlers.APIHandlers
	sseHandlers *handlers.SSEHandlers
}

// PageHandlers carries the template-rendering handlers wired in by main so
// the server package stays free of UI dependencies.
type PageHandlers struct {
	Dashboard http.HandlerFunc
}

func NewServer(catalog *services.Catalog, logger *slog.Logger, pages *PageHandlers) *Server {
	s := &Server{
		mux:         http.NewServeMux(),
		logger:      logger,
		apiHandlers: handlers.NewAPIHandlers(catalog, logger),
		sseHandlers: handlers.NewSSEHandlers(catalog, logger),
	}
	s.setupRoutes(pages)
	return s
}

func (s *Server) setupRoutes(pages *PageHandlers) {
	s.mux.HandleFunc("GET /", pages.Dashboard)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)

	s.mux.HandleFunc("GET /api/datasets", s.apiHandlers.HandleListDatasets)
	s.mux.HandleFunc("GET /api/datasets/{name}", s.apiHandlers.HandleDashboard)
	s.mux.HandleFunc("GET /api/datasets/{name}/metrics", s.apiHandlers.HandleMetrics)
	s.mux.HandleFunc("GET /api/datasets/{name}/charts", s.apiHandlers.HandleCharts)

	s.mux.HandleFunc("GET /sse/datasets/{name}", s.sseHandlers.HandleDataset)
	s.mux.HandleFunc("GET /sse/refresh-all", s.sseHandlers.HandleRefreshAll)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
