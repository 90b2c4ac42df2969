package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/ccis-backend/internal/ccis"
	"github.com/yungbote/ccis-backend/internal/http/response"
	"github.com/yungbote/ccis-backend/internal/platform/apierr"
	"github.com/yungbote/ccis-backend/internal/requestdata"
	"github.com/yungbote/ccis-backend/internal/services"
)

type AssessmentHandler struct {
	assessmentService services.AssessmentService
	historyService    services.HistoryService
}

func NewAssessmentHandler(assessmentService services.AssessmentService, historyService services.HistoryService) *AssessmentHandler {
	return &AssessmentHandler{assessmentService: assessmentService, historyService: historyService}
}

func learnerIDFrom(c *gin.Context) (uuid.UUID, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.LearnerID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return uuid.Nil, false
	}
	return rd.LearnerID, true
}

func (h *AssessmentHandler) StartSession(c *gin.Context) {
	learnerID, ok := learnerIDFrom(c)
	if !ok {
		return
	}
	var req struct {
		Competency string `json:"competency"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	session, err := h.assessmentService.StartSession(c.Request.Context(), learnerID, ccis.CompetencyType(req.Competency))
	if err != nil {
		ae := apierr.FromError(err)
		response.RespondError(c, ae.Status, ae.Code, err)
		return
	}
	response.RespondOK(c, session)
}

func (h *AssessmentHandler) Submit(c *gin.Context) {
	learnerID, ok := learnerIDFrom(c)
	if !ok {
		return
	}
	var req services.SubmitInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	outcome, err := h.assessmentService.Submit(c.Request.Context(), learnerID, req)
	if err != nil {
		ae := apierr.FromError(err)
		response.RespondError(c, ae.Status, ae.Code, err)
		return
	}
	response.RespondOK(c, outcome)
}

func (h *AssessmentHandler) Overall(c *gin.Context) {
	learnerID, ok := learnerIDFrom(c)
	if !ok {
		return
	}
	var req struct {
		Competencies []ccis.CompetencySignals `json:"competencies"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	overall, err := h.assessmentService.CalculateOverall(c.Request.Context(), learnerID, req.Competencies)
	if err != nil {
		ae := apierr.FromError(err)
		response.RespondError(c, ae.Status, ae.Code, err)
		return
	}
	response.RespondOK(c, overall)
}

func (h *AssessmentHandler) Get(c *gin.Context) {
	learnerID, ok := learnerIDFrom(c)
	if !ok {
		return
	}
	assessmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	row, err := h.historyService.Assessment(c.Request.Context(), learnerID, assessmentID)
	if err != nil {
		ae := apierr.FromError(err)
		response.RespondError(c, ae.Status, ae.Code, err)
		return
	}
	response.RespondOK(c, row)
}

func (h *AssessmentHandler) RecordEvent(c *gin.Context) {
	learnerID, ok := learnerIDFrom(c)
	if !ok {
		return
	}
	var req struct {
		SessionID *uuid.UUID      `json:"session_id"`
		Type      string          `json:"type"`
		Payload   json.RawMessage `json:"payload"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	ev, err := h.assessmentService.RecordEvent(c.Request.Context(), learnerID, req.SessionID, req.Type, datatypes.JSON(req.Payload))
	if err != nil {
		ae := apierr.FromError(err)
		response.RespondError(c, ae.Status, ae.Code, err)
		return
	}
	response.RespondOK(c, ev)
}

func (h *AssessmentHandler) History(c *gin.Context) {
	learnerID, ok := learnerIDFrom(c)
	if !ok {
		return
	}
	rows, err := h.historyService.Assessments(c.Request.Context(), learnerID, c.Query("competency"), 50)
	if err != nil {
		ae := apierr.FromError(err)
		response.RespondError(c, ae.Status, ae.Code, err)
		return
	}
	response.RespondOK(c, gin.H{"assessments": rows})
}

func (h *AssessmentHandler) Latest(c *gin.Context) {
	learnerID, ok := learnerIDFrom(c)
	if !ok {
		return
	}
	rows, err := h.historyService.LatestPerCompetency(c.Request.Context(), learnerID)
	if err != nil {
		ae := apierr.FromError(err)
		response.RespondError(c, ae.Status, ae.Code, err)
		return
	}
	response.RespondOK(c, gin.H{"assessments": rows})
}

func (h *AssessmentHandler) Sessions(c *gin.Context) {
	learnerID, ok := learnerIDFrom(c)
	if !ok {
		return
	}
	rows, err := h.historyService.Sessions(c.Request.Context(), learnerID, 50)
	if err != nil {
		ae := apierr.FromError(err)
		response.RespondError(c, ae.Status, ae.Code, err)
		return
	}
	response.RespondOK(c, gin.H{"sessions": rows})
}
