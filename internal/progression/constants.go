package progression

// XP formula constants
const (
	// BaseXP is the base XP value used in level calculations
	BaseXP = 100.0

	// LevelExponent is the exponent used in the XP formula: XP = BaseXP * (Level ^ LevelExponent)
	LevelExponent = 1.5

	// MaxLevel caps derived levels
	MaxLevel = 100
)

// Achievement predicate ids
const (
	PredicateFirstVictory = "first_victory"
	PredicateVeteran      = "veteran"
	PredicateFirstPhase   = "first_phase"
	PredicateExplorer     = "explorer"
)

// Predicate thresholds
const (
	VeteranWins       = 10
	ExplorerPhaseRuns = 5
)

// MaxBattleReward bounds each caller-reported battle reward field
const MaxBattleReward = 1_000_000_000
