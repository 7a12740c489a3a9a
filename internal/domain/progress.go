package domain

import (
	"fmt"
	"strings"
	"time"
)

// BattleResult is the closed set of battle outcomes
type BattleResult string

const (
	BattleWin  BattleResult = "win"
	BattleLoss BattleResult = "loss"
	BattleFlee BattleResult = "flee"
)

// ParseBattleResult validates a result string, case-insensitively
func ParseBattleResult(s string) (BattleResult, error) {
	switch r := BattleResult(strings.ToLower(strings.TrimSpace(s))); r {
	case BattleWin, BattleLoss, BattleFlee:
		return r, nil
	case "":
		return "", fmt.Errorf("%w: result is required", ErrInvalidInput)
	default:
		return "", fmt.Errorf("%w: unknown battle result %q", ErrInvalidInput, s)
	}
}

// PhaseCompletion records the first, authoritative completion of a phase by a player
type PhaseCompletion struct {
	ID          int64     `json:"id"`
	PlayerID    int64     `json:"player_id"`
	PhaseID     int64     `json:"phase_id"`
	Completed   bool      `json:"completed"`
	CompletedAt time.Time `json:"completed_at"`
}

// AchievementGrant is an irrevocable record that a player earned an achievement
type AchievementGrant struct {
	ID              int64     `json:"id"`
	PlayerID        int64     `json:"player_id"`
	AchievementID   int64     `json:"achievement_id"`
	AchievementName string    `json:"achievement_name,omitempty"`
	RewardCoins     int64     `json:"reward_coins"`
	CompletedAt     time.Time `json:"completed_at"`
}

// BattleRecord is an append-only battle log entry
type BattleRecord struct {
	ID               int64        `json:"id"`
	PlayerID         int64        `json:"player_id"`
	BossID           *int64       `json:"boss_id,omitempty"`
	Result           BattleResult `json:"result"`
	RewardCoins      int64        `json:"reward_coins"`
	RewardExperience int64        `json:"reward_experience"`
	CreatedAt        time.Time    `json:"created_at"`
}
