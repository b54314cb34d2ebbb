package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/debate-arena/backend/internal/config"
	"github.com/zhouzirui/debate-arena/backend/internal/handler/debate"
	"github.com/zhouzirui/debate-arena/backend/internal/handler/health"
	"github.com/zhouzirui/debate-arena/backend/internal/handler/persona"
	middlewarePkg "github.com/zhouzirui/debate-arena/backend/internal/middleware"
	personaModel "github.com/zhouzirui/debate-arena/backend/internal/model/persona"
	debateService "github.com/zhouzirui/debate-arena/backend/internal/service/debate"
	"github.com/zhouzirui/debate-arena/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(app config.AppConfig, personas personaModel.Store, debateSvc *debateService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	health.New(app).RegisterRoutes(r)

	r.Route("/api", func(api chi.Router) {
		persona.New(personas).RegisterRoutes(api)

		api.Route("/debate", func(d chi.Router) {
			debate.New(debateSvc).RegisterRoutes(d)
		})
	})

	return r
}
