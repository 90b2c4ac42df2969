package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/ccis-backend/internal/ccis"
	"github.com/yungbote/ccis-backend/internal/gaming"
	"github.com/yungbote/ccis-backend/internal/http/response"
	"github.com/yungbote/ccis-backend/internal/platform/apierr"
	"github.com/yungbote/ccis-backend/internal/services"
)

type GamingHandler struct {
	historyService     services.HistoryService
	scaffoldingService services.ScaffoldingService
}

func NewGamingHandler(historyService services.HistoryService, scaffoldingService services.ScaffoldingService) *GamingHandler {
	return &GamingHandler{historyService: historyService, scaffoldingService: scaffoldingService}
}

func (h *GamingHandler) Incidents(c *gin.Context) {
	learnerID, ok := learnerIDFrom(c)
	if !ok {
		return
	}
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	rows, err := h.historyService.Incidents(c.Request.Context(), learnerID, limit)
	if err != nil {
		ae := apierr.FromError(err)
		response.RespondError(c, ae.Status, ae.Code, err)
		return
	}
	response.RespondOK(c, gin.H{"incidents": rows})
}

func (h *GamingHandler) Prevention(c *gin.Context) {
	learnerID, ok := learnerIDFrom(c)
	if !ok {
		return
	}
	competency := ccis.CompetencyType(c.Query("competency"))
	if competency == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", nil)
		return
	}
	strategy, err := h.historyService.PreventionStrategy(c.Request.Context(), learnerID, competency)
	if err != nil {
		ae := apierr.FromError(err)
		response.RespondError(c, ae.Status, ae.Code, err)
		return
	}
	response.RespondOK(c, strategy)
}

func (h *GamingHandler) ResolveIncident(c *gin.Context) {
	learnerID, ok := learnerIDFrom(c)
	if !ok {
		return
	}
	incidentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	var req struct {
		Resolution string `json:"resolution"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := h.historyService.ResolveIncident(c.Request.Context(), learnerID, incidentID, req.Resolution); err != nil {
		ae := apierr.FromError(err)
		response.RespondError(c, ae.Status, ae.Code, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// AdjustScaffolding applies the fixed gaming override table to the learner's
// current configuration from a supplied analysis result.
func (h *GamingHandler) AdjustScaffolding(c *gin.Context) {
	learnerID, ok := learnerIDFrom(c)
	if !ok {
		return
	}
	var req struct {
		Competency string                `json:"competency"`
		Analysis   gaming.AnalysisResult `json:"analysis"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	adj, err := h.scaffoldingService.AdjustForGaming(c.Request.Context(), learnerID, ccis.CompetencyType(req.Competency), req.Analysis)
	if err != nil {
		ae := apierr.FromError(err)
		response.RespondError(c, ae.Status, ae.Code, err)
		return
	}
	response.RespondOK(c, adj)
}

func (h *GamingHandler) Events(c *gin.Context) {
	learnerID, ok := learnerIDFrom(c)
	if !ok {
		return
	}
	var since time.Time
	if raw := c.Query("since"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			since = t
		}
	}
	rows, err := h.historyService.Events(c.Request.Context(), learnerID, since, 100)
	if err != nil {
		ae := apierr.FromError(err)
		response.RespondError(c, ae.Status, ae.Code, err)
		return
	}
	response.RespondOK(c, gin.H{"events": rows})
}
