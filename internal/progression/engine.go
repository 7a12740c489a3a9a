package progression

import (
	"fmt"
	"math"

	"github.com/osse101/Bossforge_Go/internal/domain"
)

// Snapshot is the player state the engine decides against
type Snapshot struct {
	PlayerID   int64
	Experience int64
	Coins      int64
	Level      int
	Stats      domain.PlayerStats
}

// SnapshotOf builds a snapshot from a stored player and its counters
func SnapshotOf(p domain.Player, stats domain.PlayerStats) Snapshot {
	return Snapshot{
		PlayerID:   p.ID,
		Experience: p.Experience,
		Coins:      p.Coins,
		Level:      p.Level,
		Stats:      stats,
	}
}

// Delta is a coin/experience change. Engine deltas are never negative.
type Delta struct {
	Coins      int64 `json:"coins"`
	Experience int64 `json:"experience"`
}

// IsZero reports whether the delta changes nothing
func (d Delta) IsZero() bool {
	return d.Coins == 0 && d.Experience == 0
}

// EventKind tags the closed set of engine events
type EventKind int

const (
	KindPhaseCompleted EventKind = iota + 1
	KindBattleResolved
	KindItemAcquired
)

// String returns the event kind name
func (k EventKind) String() string {
	switch k {
	case KindPhaseCompleted:
		return "phase_completed"
	case KindBattleResolved:
		return "battle_resolved"
	case KindItemAcquired:
		return "item_acquired"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Event is implemented only by the event types of this package.
// Adding a kind requires extending Evaluate.
type Event interface {
	Kind() EventKind
	sealed()
}

// PhaseCompletion asks to complete Phase. Existing is the player's stored
// completion for that phase, nil when there is none.
type PhaseCompletion struct {
	Phase    *domain.Phase
	Existing *domain.PhaseCompletion
}

// BattleInput is a resolved battle as reported by the caller
type BattleInput struct {
	BossID           *int64
	Result           domain.BattleResult
	RewardCoins      int64
	RewardExperience int64
}

// ItemAcquisition adds Quantity of Item to the player's inventory
type ItemAcquisition struct {
	Item     *domain.Item
	Quantity int
}

func (PhaseCompletion) Kind() EventKind { return KindPhaseCompleted }
func (BattleInput) Kind() EventKind     { return KindBattleResolved }
func (ItemAcquisition) Kind() EventKind { return KindItemAcquired }

func (PhaseCompletion) sealed() {}
func (BattleInput) sealed()     {}
func (ItemAcquisition) sealed() {}

// InventoryChange is a request to add to a (player, item) entry
type InventoryChange struct {
	ItemID   int64
	Quantity int
}

// Grant is a newly earned achievement
type Grant struct {
	Achievement domain.Achievement
}

// Outcome is the engine's decision for one event, prior to commit
type Outcome struct {
	Kind EventKind
	// Delta is cumulative: event reward plus the coins of every grant
	Delta Delta
	// Level is the player's level after the delta
	Level int

	AlreadyCompleted bool
	// Existing is set when AlreadyCompleted
	Existing *domain.PhaseCompletion
	// NewCompletion requests exactly one PhaseCompletion row
	NewCompletion *domain.PhaseCompletion
	// Battle requests one appended BattleRecord
	Battle *domain.BattleRecord
	// Inventory requests an inventory increment
	Inventory *InventoryChange

	Grants []Grant

	statsAdvanced bool
}

// Changed reports whether the outcome mutates a player row currently at level
func (o Outcome) Changed(level int) bool {
	return !o.Delta.IsZero() || o.Level != level
}

// EvaluatePhaseCompletion decides the reward for completing a phase. A phase
// already completed yields a zero delta and no new record.
func EvaluatePhaseCompletion(s Snapshot, phase *domain.Phase, existing *domain.PhaseCompletion) (Outcome, error) {
	if phase == nil {
		return Outcome{}, domain.ErrPhaseNotFound
	}

	out := Outcome{Kind: KindPhaseCompleted, Level: s.Level}
	if existing != nil {
		out.AlreadyCompleted = true
		out.Existing = existing
		return out, nil
	}

	out.Delta = Delta{
		Coins:      max(phase.RewardCoins, 0),
		Experience: max(phase.RewardExperience, 0),
	}
	if err := s.checkFits(out.Delta); err != nil {
		return Outcome{}, err
	}
	out.NewCompletion = &domain.PhaseCompletion{
		PlayerID:  s.PlayerID,
		PhaseID:   phase.ID,
		Completed: true,
	}
	out.statsAdvanced = true
	return out, nil
}

// EvaluateBattle always records the battle; only a win carries its reward
func EvaluateBattle(s Snapshot, in BattleInput) (Outcome, error) {
	result, err := domain.ParseBattleResult(string(in.Result))
	if err != nil {
		return Outcome{}, err
	}
	in.Result = result
	if in.RewardCoins < 0 || in.RewardExperience < 0 {
		return Outcome{}, fmt.Errorf("%w: battle rewards must not be negative", domain.ErrInvalidInput)
	}

	if in.Result == domain.BattleWin {
		if err := s.checkFits(Delta{Coins: in.RewardCoins, Experience: in.RewardExperience}); err != nil {
			return Outcome{}, err
		}
	}

	out := Outcome{Kind: KindBattleResolved, Level: s.Level}
	record := &domain.BattleRecord{
		PlayerID: s.PlayerID,
		BossID:   in.BossID,
		Result:   in.Result,
	}

	switch in.Result {
	case domain.BattleWin:
		out.Delta = Delta{Coins: in.RewardCoins, Experience: in.RewardExperience}
		record.RewardCoins = in.RewardCoins
		record.RewardExperience = in.RewardExperience
		out.statsAdvanced = true
	case domain.BattleLoss, domain.BattleFlee:
	}

	out.Battle = record
	return out, nil
}

// EvaluateItemAcquisition requests an inventory increment with no reward
func EvaluateItemAcquisition(s Snapshot, in ItemAcquisition) (Outcome, error) {
	if in.Item == nil {
		return Outcome{}, domain.ErrItemNotFound
	}
	if in.Quantity < 1 {
		return Outcome{}, fmt.Errorf("%w: quantity must be at least 1", domain.ErrInvalidInput)
	}
	return Outcome{
		Kind:      KindItemAcquired,
		Level:     s.Level,
		Inventory: &InventoryChange{ItemID: in.Item.ID, Quantity: in.Quantity},
	}, nil
}

// Evaluate computes the full outcome of an event: the event's own delta, then
// the achievements it newly qualifies for, evaluated on the post-delta state.
func Evaluate(s Snapshot, ev Event, catalog []domain.Achievement, granted map[int64]struct{}) (Outcome, error) {
	var (
		out Outcome
		err error
	)

	switch e := ev.(type) {
	case PhaseCompletion:
		out, err = EvaluatePhaseCompletion(s, e.Phase, e.Existing)
	case BattleInput:
		out, err = EvaluateBattle(s, e)
	case ItemAcquisition:
		out, err = EvaluateItemAcquisition(s, e)
	default:
		return Outcome{}, fmt.Errorf("%w: unsupported event %T", domain.ErrInvalidInput, ev)
	}
	if err != nil {
		return Outcome{}, err
	}

	after := s.advance(out)
	if out.Delta.Experience > 0 || out.statsAdvanced {
		out.Grants = EvaluateAchievements(after, catalog, granted)
		for _, g := range out.Grants {
			coins := max(g.Achievement.RewardCoins, 0)
			if !fits(s.Coins+out.Delta.Coins, coins) {
				return Outcome{}, fmt.Errorf("%w: coins would overflow", domain.ErrInvalidInput)
			}
			out.Delta.Coins += coins
		}
	}
	out.Level = NextLevel(s.Level, after.Experience)
	return out, nil
}

// advance returns the snapshot after the event's own delta and counters
func (s Snapshot) advance(out Outcome) Snapshot {
	s.Experience += out.Delta.Experience
	s.Coins += out.Delta.Coins
	if out.NewCompletion != nil {
		s.Stats.PhasesCompleted++
	}
	if out.Battle != nil && out.Battle.Result == domain.BattleWin {
		s.Stats.Wins++
	}
	return s
}

// checkFits rejects a delta whose sum with the snapshot totals overflows int64
func (s Snapshot) checkFits(d Delta) error {
	if !fits(s.Coins, d.Coins) {
		return fmt.Errorf("%w: coins would overflow", domain.ErrInvalidInput)
	}
	if !fits(s.Experience, d.Experience) {
		return fmt.Errorf("%w: experience would overflow", domain.ErrInvalidInput)
	}
	return nil
}

// fits reports whether total+add stays within int64 for add >= 0
func fits(total, add int64) bool {
	return add <= 0 || total <= math.MaxInt64-add
}
