package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/finbridge-app/advisory-service/internal/domain"
	"github.com/finbridge-app/advisory-service/internal/ports"
)

// AdvisoryService is what the HTTP layer needs from the use case.
type AdvisoryService interface {
	Advise(ctx context.Context, req domain.AdviceRequest) (*domain.AdviceResponse, error)
	Transactions(ctx context.Context, userID string) (*domain.Ledger, error)
	Translate(ctx context.Context, texts []string, target string) ([]string, error)
	User(ctx context.Context, userID string) (*domain.UserPreferences, error)
	SaveUser(ctx context.Context, prefs domain.UserPreferences) error
	ports.HealthPort
}

type Handler struct {
	svc      AdvisoryService
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

func NewHandler(svc AdvisoryService, log zerolog.Logger) *Handler {
	return &Handler{
		svc: svc,
		log: log.With().Str("component", "http").Logger(),
		upgrader: websocket.Upgrader{
			// the browser client is served from another origin
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Routes builds the chi router with middleware and every endpoint.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(h.log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("FinBridge backend is running."))
	})
	r.Get("/health", h.handleHealth)
	r.Get("/ws", h.handleWebSocket)

	r.Route("/api", func(r chi.Router) {
		r.Post("/advice", h.handleAdvice)
		r.Get("/transactions/{id}", h.handleTransactions)
		r.Post("/translate", h.handleTranslate)
		r.Get("/user/{id}", h.handleGetUser)
		r.Put("/user/{id}", h.handlePutUser)
	})
	return r
}

func accessLog(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("http request")
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
