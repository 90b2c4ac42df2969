package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/ccis-backend/internal/domain/learner"
	"github.com/yungbote/ccis-backend/internal/http/response"
	"github.com/yungbote/ccis-backend/internal/platform/apierr"
	"github.com/yungbote/ccis-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Password  string `json:"password"`
		Region    string `json:"region"`
		Language  string `json:"language"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	l := learner.Learner{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
		Region:    req.Region,
		Language:  req.Language,
	}
	if err := ah.authService.Register(c.Request.Context(), &l); err != nil {
		ae := apierr.FromError(err)
		response.RespondError(c, ae.Status, ae.Code, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true, "learner_id": l.ID})
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	accessToken, refreshToken, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		ae := apierr.FromError(err)
		response.RespondError(c, ae.Status, ae.Code, err)
		return
	}
	response.RespondOK(c, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"expires_in":    int(ah.authService.AccessTTL().Seconds()),
	})
}

func (ah *AuthHandler) Refresh(c *gin.Context) {
	accessToken, refreshToken, err := ah.authService.Refresh(c.Request.Context())
	if err != nil {
		ae := apierr.FromError(err)
		response.RespondError(c, ae.Status, ae.Code, err)
		return
	}
	response.RespondOK(c, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"expires_in":    int(ah.authService.AccessTTL().Seconds()),
	})
}

func (ah *AuthHandler) Logout(c *gin.Context) {
	if err := ah.authService.Logout(c.Request.Context()); err != nil {
		ae := apierr.FromError(err)
		response.RespondError(c, ae.Status, ae.Code, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
