package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/ccis-backend/internal/ccis"
	"github.com/yungbote/ccis-backend/internal/http/response"
	"github.com/yungbote/ccis-backend/internal/platform/apierr"
	"github.com/yungbote/ccis-backend/internal/scaffolding"
	"github.com/yungbote/ccis-backend/internal/services"
)

type ScaffoldingHandler struct {
	scaffoldingService services.ScaffoldingService
}

func NewScaffoldingHandler(scaffoldingService services.ScaffoldingService) *ScaffoldingHandler {
	return &ScaffoldingHandler{scaffoldingService: scaffoldingService}
}

func (h *ScaffoldingHandler) Current(c *gin.Context) {
	learnerID, ok := learnerIDFrom(c)
	if !ok {
		return
	}
	competency := ccis.CompetencyType(c.Query("competency"))
	if competency == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", nil)
		return
	}
	state, err := h.scaffoldingService.CurrentConfig(c.Request.Context(), learnerID, competency)
	if err != nil {
		ae := apierr.FromError(err)
		response.RespondError(c, ae.Status, ae.Code, err)
		return
	}
	response.RespondOK(c, state)
}

func (h *ScaffoldingHandler) Optimize(c *gin.Context) {
	learnerID, ok := learnerIDFrom(c)
	if !ok {
		return
	}
	var req struct {
		Competency  string                  `json:"competency"`
		Performance scaffolding.Performance `json:"performance"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	result, err := h.scaffoldingService.Optimize(c.Request.Context(), learnerID, ccis.CompetencyType(req.Competency), req.Performance)
	if err != nil {
		ae := apierr.FromError(err)
		response.RespondError(c, ae.Status, ae.Code, err)
		return
	}
	response.RespondOK(c, result)
}

func (h *ScaffoldingHandler) Advancement(c *gin.Context) {
	learnerID, ok := learnerIDFrom(c)
	if !ok {
		return
	}
	var req struct {
		Competency  string                  `json:"competency"`
		Performance scaffolding.Performance `json:"performance"`
		TargetLevel int                     `json:"target_level"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	result, err := h.scaffoldingService.OptimizeForAdvancement(
		c.Request.Context(),
		learnerID,
		ccis.CompetencyType(req.Competency),
		req.Performance,
		ccis.Level(req.TargetLevel),
	)
	if err != nil {
		ae := apierr.FromError(err)
		response.RespondError(c, ae.Status, ae.Code, err)
		return
	}
	response.RespondOK(c, result)
}
