package domain

import "time"

// Player represents a registered player and their persistent progression state
type Player struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin,omitempty"`
	Experience   int64     `json:"experience"`
	Coins        int64     `json:"coins"`
	Level        int       `json:"level"`
	CreatedAt    time.Time `json:"created_at"`
	SavedAt      time.Time `json:"saved_at"`
}

// PublicView strips the fields only the owner or a privileged principal may read
func (p Player) PublicView() Player {
	p.Email = ""
	p.IsAdmin = false
	p.PasswordHash = ""
	return p
}

// PlayerStats holds the progress counters used by achievement predicates
type PlayerStats struct {
	Wins            int64 `json:"wins"`
	PhasesCompleted int64 `json:"phases_completed"`
}

// PlayerProgress is the persisted mutation applied to a player row
type PlayerProgress struct {
	Experience int64
	Coins      int64
	Level      int
}

// PlayerOverride carries the privileged direct-set fields. Nil means unchanged.
type PlayerOverride struct {
	Level      *int   `json:"level,omitempty"`
	Experience *int64 `json:"experience,omitempty"`
	Coins      *int64 `json:"coins,omitempty"`
}

// IsEmpty reports whether the override changes nothing
func (o PlayerOverride) IsEmpty() bool {
	return o.Level == nil && o.Experience == nil && o.Coins == nil
}

// InventoryEntry is a (player, item) holding. Entries are mutated, never duplicated.
type InventoryEntry struct {
	PlayerID   int64     `json:"player_id"`
	ItemID     int64     `json:"item_id"`
	ItemName   string    `json:"item_name,omitempty"`
	Quantity   int       `json:"quantity"`
	AcquiredAt time.Time `json:"acquired_at"`
}
