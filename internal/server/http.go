package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/question"
	"github.com/gokatarajesh/trivia-api/internal/quiz"
	"github.com/gokatarajesh/trivia-api/internal/ratelimit"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// Deps are the handlers and infrastructure the router serves.
type Deps struct {
	Questions *question.HTTPHandlers
	Quiz      *quiz.HTTPHandlers
	// Limiter throttles mutating routes; nil disables throttling.
	Limiter  *ratelimit.Limiter
	Registry *prometheus.Registry
	Checks   map[string]Check
	CORS     config.CORS
	Logger   zerolog.Logger
}

// NewRouter registers every API route and wraps the mux in the middleware chain.
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()
	limit := func(h http.HandlerFunc) http.HandlerFunc {
		if deps.Limiter == nil {
			return h
		}
		return deps.Limiter.Wrap(h)
	}

	q := deps.Questions
	mux.HandleFunc("GET /categories", q.ListCategories)
	mux.HandleFunc("GET /categories/{id}/questions", q.CategoryQuestions)
	mux.HandleFunc("GET /questions", q.ListQuestions)
	mux.HandleFunc("POST /questions", limit(q.CreateQuestion))
	mux.HandleFunc("GET /questions/{id}", q.GetQuestion)
	mux.HandleFunc("DELETE /questions/{id}", limit(q.DeleteQuestion))
	mux.HandleFunc("POST /questions/search", q.SearchQuestions)
	mux.HandleFunc("POST /questions/category", q.QuestionsByCategory)
	mux.HandleFunc("POST /quizzes", deps.Quiz.Next)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		httperrors.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /readyz", readinessHandler(deps.Checks, deps.Logger))

	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		httperrors.RespondNotFound(w)
	})

	metrics := newHTTPMetrics(registry)
	var handler http.Handler = mux
	handler = metrics.middleware(handler)
	handler = corsMiddleware(deps.CORS).Handler(handler)
	handler = requestLogger(deps.Logger)(handler)
	return handler
}

// NewHTTPServer builds the API server around NewRouter.
func NewHTTPServer(cfg *config.App, deps Deps) *http.Server {
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: NewRouter(deps),
	}
}
