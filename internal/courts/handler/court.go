package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"chedoparti/internal/courts/service"
	httputil "chedoparti/pkg/http"
	"chedoparti/pkg/locale"
	"chedoparti/pkg/logger"
	"chedoparti/pkg/model"
	"chedoparti/pkg/pricing"
)

type CourtHandler struct {
	service service.CourtService
	log     *logger.Logger
}

func NewCourtHandler(service service.CourtService, log *logger.Logger) *CourtHandler {
	return &CourtHandler{
		service: service,
		log:     log,
	}
}

func (h *CourtHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var court model.Court
	if err := json.NewDecoder(r.Body).Decode(&court); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.service.Create(r.Context(), &court); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, court)
}

func (h *CourtHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	court, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, court)
}

func (h *CourtHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	courts, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, courts, total, limit, offset)
}

func (h *CourtHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.CourtUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.service.Update(r.Context(), ps.ByName("id"), &updates); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *CourtHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *CourtHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	institutionID := query.Get("institution_id")
	sport := query.Get("sport")

	courts, err := h.service.Search(r.Context(), institutionID, sport)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, courts)
}

// Pricing returns the rate table clients use to preview slot prices, along
// with the region's weekend days so the calendar can shade premium dates.
func (h *CourtHandler) Pricing(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	cfg := h.service.PricingConfig()

	weekend := make([]string, 0, 2)
	for _, day := range locale.WeekendDays(cfg.Region) {
		weekend = append(weekend, day.String())
	}

	httputil.WriteSuccess(w, pricingResponse{
		Config:      cfg,
		WeekendDays: weekend,
	})
}

type pricingResponse struct {
	pricing.Config
	WeekendDays []string `json:"weekend_days"`
}

func (h *CourtHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/courts", h.Create)
	router.GET("/api/v1/courts", h.GetAll)
	router.GET("/api/v1/courts/id/:id", h.GetByID)
	router.PATCH("/api/v1/courts/id/:id", h.Update)
	router.DELETE("/api/v1/courts/id/:id", h.Delete)
	router.GET("/api/v1/courts/search", h.Search)
	router.GET("/api/v1/courts/pricing", h.Pricing)
}
