package handler

import (
	"net/http"

	"github.com/osse101/Bossforge_Go/internal/leaderboard"
)

// HandleLeaderboard returns the top players by experience. A nil board
// means the leaderboard is not configured.
// @Summary Experience leaderboard
// @Tags leaderboard
// @Produce json
// @Param limit query int false "Entries (1-100, default 10)"
// @Success 200 {object} ListResponse[leaderboard.Entry]
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/leaderboard [get]
func HandleLeaderboard(board leaderboard.Board) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if board == nil {
			respondError(w, http.StatusServiceUnavailable, ErrMsgLeaderboardDisabled)
			return
		}
		limit, ok := queryInt(w, r, "limit", leaderboard.DefaultLimit, ErrMsgInvalidLimit)
		if !ok {
			return
		}

		entries, err := board.Top(r.Context(), limit)
		if err != nil {
			respondServiceError(w, r, "Get leaderboard", err)
			return
		}

		respondJSON(w, http.StatusOK, newList(entries))
	}
}

// HandleLeaderboardRank returns one player's position
// @Summary Player rank
// @Tags leaderboard
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} leaderboard.Entry
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/leaderboard/{id} [get]
func HandleLeaderboardRank(board leaderboard.Board) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if board == nil {
			respondError(w, http.StatusServiceUnavailable, ErrMsgLeaderboardDisabled)
			return
		}
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		entry, err := board.Rank(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, "Get leaderboard rank", err)
			return
		}

		respondJSON(w, http.StatusOK, entry)
	}
}
