package debate

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	debatemodel "github.com/zhouzirui/debate-arena/backend/internal/model/debate"
	debatesvc "github.com/zhouzirui/debate-arena/backend/internal/service/debate"
	"github.com/zhouzirui/debate-arena/backend/pkg/utils"
)

// Handler 辩论服务的HTTP处理器
type Handler struct {
	svc *debatesvc.Service
}

// New 创建辩论处理器
func New(svc *debatesvc.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes 注册辩论相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/start", h.handleStart)
	r.Post("/message", h.handleMessage)
	r.Get("/sessions/{sessionID}", h.handleGetSession)
	r.Get("/sessions/{sessionID}/history", h.handleHistory)
}

// StartRequest is the body of POST /start.
type StartRequest struct {
	Topic        string `json:"topic"`
	UserPosition string `json:"userPosition"`
}

// StartResponse is returned once a debate is opened.
type StartResponse struct {
	SessionID             string             `json:"sessionId"`
	Topic                 string             `json:"topic"`
	FirstPersonaPosition  debatemodel.Stance `json:"firstPersonaPosition"`
	SecondPersonaPosition debatemodel.Stance `json:"secondPersonaPosition"`
	OpeningMessage        string             `json:"openingMessage"`
	CreatedAt             time.Time          `json:"createdAt"`
}

// MessageRequest is the body of POST /message.
type MessageRequest struct {
	SessionID     string `json:"sessionId"`
	Message       string `json:"message"`
	TargetPersona string `json:"targetPersona"`
}

// MessageResponse carries the persona's reply turn.
type MessageResponse struct {
	SessionID string           `json:"sessionId"`
	Persona   debatemodel.Role `json:"persona"`
	Message   string           `json:"message"`
	AudioURL  *string          `json:"audioUrl"`
	Timestamp time.Time        `json:"timestamp"`
}

// handleStart 开启一场辩论
func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	var payload StartRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	stance, ok := debatemodel.ParseStance(payload.UserPosition)
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "userPosition must be pro or con")
		return
	}

	session, err := h.svc.Start(r.Context(), payload.Topic, stance)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, StartResponse{
		SessionID:             session.ID,
		Topic:                 session.Topic,
		FirstPersonaPosition:  session.JamesPosition,
		SecondPersonaPosition: session.LindaPosition,
		OpeningMessage:        session.OpeningMessage,
		CreatedAt:             session.CreatedAt,
	})
}

// handleMessage 向指定辩手发送消息
func (h *Handler) handleMessage(w http.ResponseWriter, r *http.Request) {
	var payload MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	target := debatemodel.RoleJames
	if strings.TrimSpace(payload.TargetPersona) != "" {
		parsed, ok := debatemodel.ParseRole(payload.TargetPersona)
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "targetPersona must be james or linda")
			return
		}
		target = parsed
	}

	turn, err := h.svc.PostMessage(r.Context(), payload.SessionID, payload.Message, target)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, MessageResponse{
		SessionID: strings.TrimSpace(payload.SessionID),
		Persona:   turn.Role,
		Message:   turn.Message,
		AudioURL:  turn.AudioURL,
		Timestamp: turn.Timestamp,
	})
}

// handleGetSession 查询会话
func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, view)
}

// handleHistory 返回完整对话记录
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.svc.History(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, history)
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, debatesvc.ErrInvalidInput):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, debatesvc.ErrSessionNotFound):
		utils.RespondError(w, http.StatusNotFound, debatesvc.ErrSessionNotFound.Error())
	default:
		log.Printf("[debate] request failed: %v", err)
		utils.RespondErrorDetail(w, http.StatusInternalServerError, "internal error", err.Error())
	}
}
