package progression

import "github.com/osse101/Bossforge_Go/internal/domain"

// Predicate is an extra achievement condition on the post-event snapshot
type Predicate func(Snapshot) bool

var predicates = map[string]Predicate{
	PredicateFirstVictory: func(s Snapshot) bool { return s.Stats.Wins >= 1 },
	PredicateVeteran:      func(s Snapshot) bool { return s.Stats.Wins >= VeteranWins },
	PredicateFirstPhase:   func(s Snapshot) bool { return s.Stats.PhasesCompleted >= 1 },
	PredicateExplorer:     func(s Snapshot) bool { return s.Stats.PhasesCompleted >= ExplorerPhaseRuns },
}

// ValidPredicate reports whether id names a known predicate. Empty is valid.
func ValidPredicate(id string) bool {
	if id == "" {
		return true
	}
	_, ok := predicates[id]
	return ok
}

// Qualifies reports whether the snapshot meets the achievement's conditions
func Qualifies(s Snapshot, a domain.Achievement) bool {
	if s.Experience < a.XPRequired {
		return false
	}
	if a.Predicate == "" {
		return true
	}
	pred, ok := predicates[a.Predicate]
	return ok && pred(s)
}

// EvaluateAchievements returns, in catalog order, every achievement not yet
// granted that the snapshot qualifies for. All of them fire in one pass.
func EvaluateAchievements(after Snapshot, catalog []domain.Achievement, granted map[int64]struct{}) []Grant {
	var grants []Grant
	seen := make(map[int64]struct{}, len(catalog))
	for _, a := range catalog {
		if _, ok := granted[a.ID]; ok {
			continue
		}
		if _, ok := seen[a.ID]; ok {
			continue
		}
		if !Qualifies(after, a) {
			continue
		}
		seen[a.ID] = struct{}{}
		grants = append(grants, Grant{Achievement: a})
	}
	return grants
}
