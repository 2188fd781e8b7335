package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"chedoparti/internal/openmatches/service"
	httputil "chedoparti/pkg/http"
	"chedoparti/pkg/logger"
	"chedoparti/pkg/middleware"
	"chedoparti/pkg/model"
)

type OpenMatchHandler struct {
	service service.OpenMatchService
	log     *logger.Logger
}

func NewOpenMatchHandler(service service.OpenMatchService, log *logger.Logger) *OpenMatchHandler {
	return &OpenMatchHandler{
		service: service,
		log:     log,
	}
}

type joinRequest struct {
	PlayerName string `json:"player_name"`
	Phone      string `json:"phone,omitempty"`
}

func (h *OpenMatchHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var match model.OpenMatch
	if err := json.NewDecoder(r.Body).Decode(&match); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	user := middleware.UserFrom(r.Context())
	if err := h.service.Create(r.Context(), user, &match); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, match)
}

func (h *OpenMatchHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	match, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, match)
}

func (h *OpenMatchHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	// open=true narrows the listing to joinable matches, optionally by sport.
	if r.URL.Query().Get("open") == "true" {
		matches, err := h.service.ListOpen(r.Context(), r.URL.Query().Get("sport"), limit, offset)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteSuccess(w, matches)
		return
	}

	matches, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, matches, total, limit, offset)
}

func (h *OpenMatchHandler) Join(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	match, err := h.service.Join(r.Context(), ps.ByName("id"), req.PlayerName, req.Phone)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, match)
}

func (h *OpenMatchHandler) Leave(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	match, err := h.service.Leave(r.Context(), ps.ByName("id"), req.PlayerName)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, match)
}

func (h *OpenMatchHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user := middleware.UserFrom(r.Context())
	if err := h.service.Cancel(r.Context(), user, ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *OpenMatchHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/open-matches", h.Create)
	router.GET("/api/v1/open-matches", h.GetAll)
	router.GET("/api/v1/open-matches/id/:id", h.GetByID)
	router.POST("/api/v1/open-matches/id/:id/join", h.Join)
	router.POST("/api/v1/open-matches/id/:id/leave", h.Leave)
	router.DELETE("/api/v1/open-matches/id/:id", h.Cancel)
}
