package handler

import (
	"errors"
	"net/http"

	"github.com/osse101/Bossforge_Go/internal/auth"
	"github.com/osse101/Bossforge_Go/internal/domain"
	"github.com/osse101/Bossforge_Go/internal/logger"
)

// LoginRequest carries credentials
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=30"`
	Password string `json:"password" validate:"required,max=72"`
}

// HandleLogin exchanges credentials for an access token
// @Summary Log in
// @Description Returns a signed access token for the x-access-token header
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} auth.Session
// @Failure 400 {object} ValidationErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func HandleLogin(svc auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Login"); err != nil {
			return
		}

		session, err := svc.Login(r.Context(), req.Username, req.Password)
		if errors.Is(err, domain.ErrUnauthorized) {
			logger.FromContext(r.Context()).Warn("Login rejected")
			respondError(w, http.StatusUnauthorized, ErrMsgBadCredentials)
			return
		}
		if err != nil {
			respondServiceError(w, r, "Login", err)
			return
		}

		respondJSON(w, http.StatusOK, session)
	}
}
