package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/cfohub/cfohub/internal/auth"
	"github.com/cfohub/cfohub/internal/beneficios"
	"github.com/cfohub/cfohub/internal/clientes"
	"github.com/cfohub/cfohub/internal/colaboradores"
	"github.com/cfohub/cfohub/internal/fixtures"
	"github.com/cfohub/cfohub/internal/folha"
	"github.com/cfohub/cfohub/internal/lembretes"
	"github.com/cfohub/cfohub/internal/notificacoes"
	"github.com/cfohub/cfohub/internal/observability"
	"github.com/cfohub/cfohub/internal/okrs"
	"github.com/cfohub/cfohub/internal/platform/httpx"
	"github.com/cfohub/cfohub/internal/solicitacoes"
	"github.com/cfohub/cfohub/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger      *slog.Logger
	Config      *Config
	Provider    *fixtures.Provider
	AuthService *auth.Service
	Services    *Services
	JobHandler  *jobs.Handler
	Metrics     *observability.Metrics
}

// NewRouter constructs the chi.Router with CFO Hub defaults.
func NewRouter(params RouterParams) http.Handler {
	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}

	r.Route("/api", func(r chi.Router) {
		fixtures.NewHandler(logger, params.Provider).MountRoutes(r)
		if params.AuthService != nil {
			auth.NewHandler(logger, params.AuthService, params.Provider).MountRoutes(r)
		}
	})

	if params.Services != nil {
		r.Route("/v1", func(r chi.Router) {
			switch {
			case params.Config != nil && params.Config.AuthDisabled:
				r.Use(auth.Anonymous)
			case params.AuthService != nil:
				r.Use(params.AuthService.RequireBearer(logger))
			}
			mountDomains(r, logger, params.Services)
		})
	}

	return r
}

func mountDomains(r chi.Router, logger *slog.Logger, s *Services) {
	r.Route("/"+clientes.StoreName, clientes.NewHandler(logger, s.Clientes).MountRoutes)
	r.Route("/"+colaboradores.StoreName, colaboradores.NewHandler(logger, s.Colaboradores).MountRoutes)
	r.Route("/"+folha.StoreName, folha.NewHandler(logger, s.Folha).MountRoutes)
	r.Route("/"+beneficios.StoreName, beneficios.NewHandler(logger, s.Beneficios).MountRoutes)
	r.Route("/"+okrs.StoreName, okrs.NewHandler(logger, s.OKRs).MountRoutes)
	r.Route("/"+lembretes.StoreName, lembretes.NewHandler(logger, s.Lembretes).MountRoutes)
	r.Route("/"+notificacoes.StoreName, notificacoes.NewHandler(logger, s.Notificacoes).MountRoutes)
	r.Route("/"+solicitacoes.StoreName, solicitacoes.NewHandler(logger, s.Solicitacoes).MountRoutes)
}
