package api

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/Mentallyspammed1/neonsearch/driver"
	"github.com/Mentallyspammed1/neonsearch/repository"
	"github.com/Mentallyspammed1/neonsearch/search"
	"github.com/Mentallyspammed1/neonsearch/storage"
)

// Server exposes the aggregation engine over HTTP.
type Server struct {
	aggregator *search.Aggregator
	registry   *driver.Registry
	history    *storage.HistoryStore
	statusRepo repository.StatusCheckRepo
	logger     *zap.Logger
	port       int
}

// NewServer creates a new API server.
func NewServer(
	aggregator *search.Aggregator,
	registry *driver.Registry,
	history *storage.HistoryStore,
	statusRepo repository.StatusCheckRepo,
	port int,
	logger *zap.Logger,
) *Server {
	return &Server{
		aggregator: aggregator,
		registry:   registry,
		history:    history,
		statusRepo: statusRepo,
		logger:     logger,
		port:       port,
	}
}

// Routes returns the request multiplexer with every endpoint registered.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/{$}", s.RootHandler)
	mux.HandleFunc("/api/search", s.SearchHandler)
	mux.HandleFunc("/api/sources", s.SourcesHandler)
	mux.HandleFunc("/api/sources/{name}/toggle", s.ToggleSourceHandler)
	mux.HandleFunc("/api/suggestions", s.SuggestionsHandler)
	mux.HandleFunc("/api/status", s.StatusHandler)

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return mux
}

// Start starts the API server.
func (s *Server) Start() error {
	s.logger.Info("starting API server", zap.Int("port", s.port))
	return http.ListenAndServe(":"+strconv.Itoa(s.port), s.Routes())
}
