package handler

import (
	"context"
	"net/http"

	"github.com/osse101/Bossforge_Go/internal/catalog"
)

// handleList serves a catalog listing
func handleList[T any](op string, list func(context.Context) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := list(r.Context())
		if err != nil {
			respondServiceError(w, r, op, err)
			return
		}
		respondJSON(w, http.StatusOK, newList(items))
	}
}

// handleGet serves one catalog entry by its {id} route parameter
func handleGet[T any](op string, get func(context.Context, int64) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}
		v, err := get(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, op, err)
			return
		}
		respondJSON(w, http.StatusOK, v)
	}
}

// handleCreate decodes REQ and answers 201 with the created entry
func handleCreate[REQ any, RES any](op string, create func(context.Context, REQ) (*RES, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req REQ
		if err := DecodeAndValidateRequest(r, w, &req, op); err != nil {
			return
		}
		v, err := create(r.Context(), req)
		if err != nil {
			respondServiceError(w, r, op, err)
			return
		}
		respondJSON(w, http.StatusCreated, v)
	}
}

// handleUpdate decodes REQ and replaces the entry at {id}
func handleUpdate[REQ any, RES any](op string, update func(context.Context, int64, REQ) (*RES, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}
		var req REQ
		if err := DecodeAndValidateRequest(r, w, &req, op); err != nil {
			return
		}
		v, err := update(r.Context(), id, req)
		if err != nil {
			respondServiceError(w, r, op, err)
			return
		}
		respondJSON(w, http.StatusOK, v)
	}
}

// CatalogHandlers serves bosses, phases, rarities, items and achievements
type CatalogHandlers struct {
	svc catalog.Service
}

// NewCatalogHandlers creates the catalog handlers
func NewCatalogHandlers(svc catalog.Service) *CatalogHandlers {
	return &CatalogHandlers{svc: svc}
}

// ListBosses godoc
// @Summary List bosses
// @Tags catalog
// @Produce json
// @Success 200 {object} ListResponse[domain.Boss]
// @Router /api/v1/bosses [get]
func (h *CatalogHandlers) ListBosses() http.HandlerFunc {
	return handleList("List bosses", h.svc.ListBosses)
}

// GetBoss godoc
// @Summary Get a boss
// @Tags catalog
// @Param id path int true "Boss ID"
// @Success 200 {object} domain.Boss
// @Router /api/v1/bosses/{id} [get]
func (h *CatalogHandlers) GetBoss() http.HandlerFunc {
	return handleGet("Get boss", h.svc.GetBoss)
}

// CreateBoss godoc
// @Summary Create a boss
// @Tags catalog
// @Param request body catalog.BossInput true "Boss"
// @Success 201 {object} domain.Boss
// @Failure 403 {object} ErrorResponse
// @Router /api/v1/bosses [post]
func (h *CatalogHandlers) CreateBoss() http.HandlerFunc {
	return handleCreate("Create boss", h.svc.CreateBoss)
}

// ListPhases godoc
// @Summary List phases
// @Tags catalog
// @Success 200 {object} ListResponse[domain.Phase]
// @Router /api/v1/phases [get]
func (h *CatalogHandlers) ListPhases() http.HandlerFunc {
	return handleList("List phases", h.svc.ListPhases)
}

// GetPhase godoc
// @Summary Get a phase
// @Tags catalog
// @Param id path int true "Phase ID"
// @Success 200 {object} domain.Phase
// @Router /api/v1/phases/{id} [get]
func (h *CatalogHandlers) GetPhase() http.HandlerFunc {
	return handleGet("Get phase", h.svc.GetPhase)
}

// CreatePhase godoc
// @Summary Create a phase
// @Tags catalog
// @Param request body catalog.PhaseInput true "Phase"
// @Success 201 {object} domain.Phase
// @Router /api/v1/phases [post]
func (h *CatalogHandlers) CreatePhase() http.HandlerFunc {
	return handleCreate("Create phase", h.svc.CreatePhase)
}

// ListRarities godoc
// @Summary List rarities
// @Tags catalog
// @Success 200 {object} ListResponse[domain.Rarity]
// @Router /api/v1/rarities [get]
func (h *CatalogHandlers) ListRarities() http.HandlerFunc {
	return handleList("List rarities", h.svc.ListRarities)
}

// GetRarity godoc
// @Summary Get a rarity
// @Tags catalog
// @Param id path int true "Rarity ID"
// @Success 200 {object} domain.Rarity
// @Router /api/v1/rarities/{id} [get]
func (h *CatalogHandlers) GetRarity() http.HandlerFunc {
	return handleGet("Get rarity", h.svc.GetRarity)
}

// CreateRarity godoc
// @Summary Create a rarity
// @Tags catalog
// @Param request body catalog.RarityInput true "Rarity"
// @Success 201 {object} domain.Rarity
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/rarities [post]
func (h *CatalogHandlers) CreateRarity() http.HandlerFunc {
	return handleCreate("Create rarity", h.svc.CreateRarity)
}

// ListItems godoc
// @Summary List items
// @Tags catalog
// @Success 200 {object} ListResponse[domain.Item]
// @Router /api/v1/items [get]
func (h *CatalogHandlers) ListItems() http.HandlerFunc {
	return handleList("List items", h.svc.ListItems)
}

// GetItem godoc
// @Summary Get an item
// @Tags catalog
// @Param id path int true "Item ID"
// @Success 200 {object} domain.Item
// @Router /api/v1/items/{id} [get]
func (h *CatalogHandlers) GetItem() http.HandlerFunc {
	return handleGet("Get item", h.svc.GetItem)
}

// CreateItem godoc
// @Summary Create an item
// @Tags catalog
// @Failure 404 {object} ErrorResponse "unknown rarity"
// @Param request body catalog.ItemInput true "Item"
// @Success 201 {object} domain.Item
// @Router /api/v1/items [post]
func (h *CatalogHandlers) CreateItem() http.HandlerFunc {
	return handleCreate("Create item", h.svc.CreateItem)
}

// UpdateItem godoc
// @Summary Replace an item
// @Description Items held in any inventory cannot change.
// @Tags catalog
// @Param id path int true "Item ID"
// @Param request body catalog.ItemInput true "Item"
// @Success 200 {object} domain.Item
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/items/{id} [put]
func (h *CatalogHandlers) UpdateItem() http.HandlerFunc {
	return handleUpdate("Update item", h.svc.UpdateItem)
}

// ListAchievements godoc
// @Summary List achievements
// @Tags catalog
// @Success 200 {object} ListResponse[domain.Achievement]
// @Router /api/v1/achievements [get]
func (h *CatalogHandlers) ListAchievements() http.HandlerFunc {
	return handleList("List achievement catalog", h.svc.ListAchievements)
}

// GetAchievement godoc
// @Summary Get an achievement
// @Tags catalog
// @Param id path int true "Achievement ID"
// @Success 200 {object} domain.Achievement
// @Router /api/v1/achievements/{id} [get]
func (h *CatalogHandlers) GetAchievement() http.HandlerFunc {
	return handleGet("Get achievement", h.svc.GetAchievement)
}

// CreateAchievement godoc
// @Summary Create an achievement
// @Tags catalog
// @Param request body catalog.AchievementInput true "Achievement"
// @Success 201 {object} domain.Achievement
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/achievements [post]
func (h *CatalogHandlers) CreateAchievement() http.HandlerFunc {
	return handleCreate("Create achievement", h.svc.CreateAchievement)
}

// UpdateAchievement godoc
// @Summary Replace an achievement
// @Description Existing grants are kept.
// @Tags catalog
// @Param id path int true "Achievement ID"
// @Param request body catalog.AchievementInput true "Achievement"
// @Success 200 {object} domain.Achievement
// @Router /api/v1/achievements/{id} [put]
func (h *CatalogHandlers) UpdateAchievement() http.HandlerFunc {
	return handleUpdate("Update achievement", h.svc.UpdateAchievement)
}

// DeleteAchievement godoc
// @Summary Delete an achievement
// @Description Removes its grants. Coins already paid are kept.
// @Tags catalog
// @Param id path int true "Achievement ID"
// @Success 200 {object} SuccessResponse
// @Router /api/v1/achievements/{id} [delete]
func (h *CatalogHandlers) DeleteAchievement() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}
		if err := h.svc.DeleteAchievement(r.Context(), id); err != nil {
			respondServiceError(w, r, "Delete achievement", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgAchievementDeleted})
	}
}
