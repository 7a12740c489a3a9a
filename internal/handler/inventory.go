package handler

import (
	"net/http"

	"github.com/osse101/Bossforge_Go/internal/player"
)

// AcquireItemRequest adds an item to an inventory
type AcquireItemRequest struct {
	ItemID   int64 `json:"item_id" validate:"required,gt=0"`
	Quantity int   `json:"quantity" validate:"min=1,max=10000"`
}

// RemoveItemResponse reports what is left after a removal
type RemoveItemResponse struct {
	ItemID    int64 `json:"item_id"`
	Removed   int   `json:"removed"`
	Remaining int   `json:"remaining"`
}

// HandleGetInventory lists a player's holdings
// @Summary Get inventory
// @Tags inventory
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} ListResponse[domain.InventoryEntry]
// @Router /api/v1/players/{id}/inventory [get]
func HandleGetInventory(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		entries, err := svc.GetInventory(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, "Get inventory", err)
			return
		}

		respondJSON(w, http.StatusOK, newList(entries))
	}
}

// HandleAcquireItem adds an item to a player's inventory
// @Summary Acquire item
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path int true "Player ID"
// @Param request body AcquireItemRequest true "Item"
// @Success 200 {object} player.Outcome
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/players/{id}/inventory [post]
func HandleAcquireItem(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}
		var req AcquireItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Acquire item"); err != nil {
			return
		}

		out, err := svc.AcquireItem(r.Context(), id, req.ItemID, req.Quantity)
		if err != nil {
			respondServiceError(w, r, "Acquire item", err)
			return
		}

		respondJSON(w, http.StatusOK, out)
	}
}

// HandleRemoveItem removes quantity (default 1) of an item
// @Summary Remove item
// @Tags inventory
// @Produce json
// @Param id path int true "Player ID"
// @Param itemID path int true "Item ID"
// @Param quantity query int false "Quantity to remove (default 1)"
// @Success 200 {object} RemoveItemResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/players/{id}/inventory/{itemID} [delete]
func HandleRemoveItem(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}
		itemID, ok := pathID(w, r, "itemID")
		if !ok {
			return
		}
		quantity, ok := queryInt(w, r, "quantity", 1, ErrMsgInvalidQuantity)
		if !ok {
			return
		}

		entry, err := svc.RemoveItem(r.Context(), id, itemID, quantity)
		if err != nil {
			respondServiceError(w, r, "Remove item", err)
			return
		}

		respondJSON(w, http.StatusOK, RemoveItemResponse{
			ItemID:    itemID,
			Removed:   quantity,
			Remaining: entry.Quantity,
		})
	}
}
