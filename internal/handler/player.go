package handler

import (
	"net/http"

	"github.com/osse101/Bossforge_Go/internal/player"
)

// RegisterRequest creates a player. IsAdmin requires a privileged caller.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30,excludesall=@"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	IsAdmin  bool   `json:"is_admin"`
}

// HandleRegister registers a player
// @Summary Register a player
// @Tags players
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "New player"
// @Success 201 {object} domain.Player
// @Failure 400 {object} ValidationErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/players [post]
func HandleRegister(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register"); err != nil {
			return
		}

		p, err := svc.Register(r.Context(), player.RegisterInput{
			Username:   req.Username,
			Email:      req.Email,
			Password:   req.Password,
			Privileged: req.IsAdmin,
		})
		if err != nil {
			respondServiceError(w, r, "Register", err)
			return
		}

		respondJSON(w, http.StatusCreated, p)
	}
}

// HandleGetPlayer returns a player. Other players see the public view.
// @Summary Get a player
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} domain.Player
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/players/{id} [get]
func HandleGetPlayer(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		p, err := svc.GetPlayer(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, "Get player", err)
			return
		}

		respondJSON(w, http.StatusOK, p)
	}
}

// HandleListAchievements lists a player's achievement grants
// @Summary List a player's achievements
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} ListResponse[domain.AchievementGrant]
// @Router /api/v1/players/{id}/achievements [get]
func HandleListAchievements(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		grants, err := svc.ListAchievements(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, "List achievements", err)
			return
		}

		respondJSON(w, http.StatusOK, newList(grants))
	}
}

// HandleListBattles lists a player's battles, newest first
// @Summary List a player's battles
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Param limit query int false "Max records (1-100, default 20)"
// @Success 200 {object} ListResponse[domain.BattleRecord]
// @Router /api/v1/players/{id}/battles [get]
func HandleListBattles(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}
		limit, ok := queryInt(w, r, "limit", 0, ErrMsgInvalidLimit)
		if !ok {
			return
		}

		battles, err := svc.ListBattles(r.Context(), id, limit)
		if err != nil {
			respondServiceError(w, r, "List battles", err)
			return
		}

		respondJSON(w, http.StatusOK, newList(battles))
	}
}
