package domain

import "time"

// Boss is a catalog entity a player can fight
type Boss struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Health int    `json:"health"`
}

// Phase is a catalog stage, optionally guarded by a boss, with a one-time reward
type Phase struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	BossID           *int64 `json:"boss_id,omitempty"`
	RewardCoins      int64  `json:"reward_coins"`
	RewardExperience int64  `json:"reward_experience"`
}

// Rarity is a display tier items may belong to
type Rarity struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description,omitempty"`
}

// Item is a catalog entity. It is immutable once any inventory references it.
type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Power       int    `json:"power"`
	RarityID    *int64 `json:"rarity_id,omitempty"`
}

// Achievement is granted once a player's experience reaches XPRequired and,
// when set, the named predicate holds.
type Achievement struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	XPRequired  int64     `json:"xp_required"`
	Predicate   string    `json:"predicate,omitempty"`
	RewardCoins int64     `json:"reward_coins"`
	CreatedAt   time.Time `json:"created_at"`
}
