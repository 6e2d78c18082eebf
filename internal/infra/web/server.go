package web

import (
	"crypto/subtle"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"telegram-anon-relay/internal/infra/logging"
	"telegram-anon-relay/internal/usecase"
)

// SecretTokenHeader is set by the platform on every webhook request when a
// secret token was registered alongside the webhook URL.
const SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

type Server struct {
	relay  usecase.RelayUseCase
	secret string
	log    *zerolog.Logger
}

func NewServer(relay usecase.RelayUseCase, secret string, logger *zerolog.Logger) *Server {
	return &Server{relay: relay, secret: secret, log: logger}
}

// Router assembles the inbound gateway: the webhook endpoint behind the
// secret-token check, plus health and metrics.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.traceMiddleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.With(s.secretTokenMiddleware).Post("/update", s.handleUpdate)
	return r
}

// traceMiddleware mints a trace id for correlating every log line of one
// webhook delivery.
func (s *Server) traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.WithTraceID(r.Context(), uuid.NewString())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// secretTokenMiddleware rejects requests whose secret-token header does not
// match the configured value. The check is skipped entirely when no secret is
// configured.
func (s *Server) secretTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.secret != "" {
			got := r.Header.Get(SecretTokenHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(s.secret)) != 1 {
				logging.With(r.Context(), s.log).Warn().Msg("webhook request with missing or mismatched secret token")
				http.Error(w, "Bad Request", http.StatusBadRequest)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
