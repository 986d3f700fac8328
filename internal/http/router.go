package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"humata-ai/internal/handlers"
	"humata-ai/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	ChatService   service.ChatService
	FileService   service.FileService
	StatusService service.StatusService

	// Health check inputs.
	ReasoningConfigured bool
	ImageStrategy       string
	Cache               handlers.CacheInspector // nil when the extraction cache is disabled

	UploadDir      string
	MaxUploadBytes int64

	IndexHTML []byte // Embedded web client
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)

	// Add CORS middleware
	r.Use(CORS)

	chatHandler := handlers.NewChatHandler(deps.ChatService, handlers.ChatBodyLimit(deps.MaxUploadBytes))
	uploadHandler := handlers.NewUploadHandler(deps.FileService, deps.UploadDir, deps.MaxUploadBytes)
	statusHandler := handlers.NewStatusHandler(deps.StatusService)
	healthHandler := handlers.NewHealthHandler(deps.ReasoningConfigured, deps.ImageStrategy, deps.Cache)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/chat", chatHandler)
		r.Method(http.MethodPost, "/upload", uploadHandler)
		r.Method(http.MethodGet, "/status", statusHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	// Serve the web client at root
	r.Method(http.MethodGet, "/", handlers.NewPageHandler(deps.IndexHTML))

	return r
}
