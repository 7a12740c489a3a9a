package handler

import (
	"net/http"

	"github.com/osse101/Bossforge_Go/internal/domain"
	"github.com/osse101/Bossforge_Go/internal/player"
)

// HandleCompletePhase completes a phase for a player. It answers 201 the
// first time and 200 with already_completed afterwards.
// @Summary Complete a phase
// @Tags progression
// @Produce json
// @Param id path int true "Player ID"
// @Param phaseID path int true "Phase ID"
// @Success 201 {object} player.Outcome
// @Success 200 {object} player.Outcome
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/players/{id}/phases/{phaseID}/complete [post]
func HandleCompletePhase(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := pathID(w, r, "id")
		if !ok {
			return
		}
		phaseID, ok := pathID(w, r, "phaseID")
		if !ok {
			return
		}

		out, err := svc.CompletePhase(r.Context(), playerID, phaseID)
		if err != nil {
			respondServiceError(w, r, "Complete phase", err)
			return
		}

		status := http.StatusCreated
		if out.AlreadyCompleted {
			status = http.StatusOK
		}
		respondJSON(w, status, out)
	}
}

// RecordBattleRequest reports a resolved battle
type RecordBattleRequest struct {
	PlayerID         int64  `json:"player_id" validate:"required,gt=0"`
	BossID           *int64 `json:"boss_id,omitempty" validate:"omitempty,gt=0"`
	Result           string `json:"result" validate:"required,battle_result"`
	RewardCoins      int64  `json:"reward_coins" validate:"gte=0,lte=1000000000"`
	RewardExperience int64  `json:"reward_experience" validate:"gte=0,lte=1000000000"`
}

// HandleRecordBattle records a battle. Only a win carries its reward.
// @Summary Record a battle
// @Tags progression
// @Accept json
// @Produce json
// @Param request body RecordBattleRequest true "Battle"
// @Success 201 {object} player.Outcome
// @Failure 400 {object} ValidationErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/v1/battles [post]
func HandleRecordBattle(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RecordBattleRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Record battle"); err != nil {
			return
		}

		out, err := svc.RecordBattle(r.Context(), player.BattleInput(req))
		if err != nil {
			respondServiceError(w, r, "Record battle", err)
			return
		}

		respondJSON(w, http.StatusCreated, out)
	}
}

// OverrideRequest sets progress fields directly. Omitted fields are unchanged.
type OverrideRequest struct {
	Level      *int   `json:"level,omitempty" validate:"omitempty,gte=0"`
	Experience *int64 `json:"experience,omitempty"`
	Coins      *int64 `json:"coins,omitempty"`
}

// HandleOverride sets a player's progress directly
// @Summary Override player progress
// @Description Privileged. Bypasses progression rules except level >= 0.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Player ID"
// @Param request body OverrideRequest true "Fields to set"
// @Success 200 {object} domain.Player
// @Failure 403 {object} ErrorResponse
// @Router /api/v1/admin/players/{id} [patch]
func HandleOverride(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}
		var req OverrideRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Override"); err != nil {
			return
		}

		p, err := svc.Override(r.Context(), id, domain.PlayerOverride(req))
		if err != nil {
			respondServiceError(w, r, "Override", err)
			return
		}

		respondJSON(w, http.StatusOK, p)
	}
}
