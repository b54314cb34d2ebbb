package health

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/debate-arena/backend/internal/config"
	"github.com/zhouzirui/debate-arena/backend/pkg/utils"
)

// Response is the health check payload.
type Response struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

// Handler 处理健康检查请求
type Handler struct {
	app config.AppConfig
}

// New 创建健康检查处理器
func New(app config.AppConfig) *Handler {
	return &Handler{app: app}
}

// RegisterRoutes 注册健康检查路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.handleHealth)
}

// handleHealth 返回服务状态与版本信息
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, Response{
		Status:      "ok",
		Version:     h.app.Version,
		Environment: h.app.Environment,
	})
}
