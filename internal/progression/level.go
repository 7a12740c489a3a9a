package progression

import "math"

// LevelForExperience determines the level from total XP using the formula:
// XP to go from level N-1 to N = BaseXP * (N ^ LevelExponent), cumulative
func LevelForExperience(totalXP int64) int {
	level, _ := levelAndNextXP(totalXP)
	return level
}

// XPForLevel returns the cumulative XP required to reach a level from level 0
func XPForLevel(level int) int64 {
	if level <= 0 {
		return 0
	}
	if level > MaxLevel {
		level = MaxLevel
	}

	cumulative := int64(0)
	for i := 1; i <= level; i++ {
		cumulative += stepXP(i)
	}
	return cumulative
}

// XPToNextLevel returns the XP still missing before the next level
func XPToNextLevel(totalXP int64) int64 {
	level, next := levelAndNextXP(totalXP)
	if level >= MaxLevel {
		return 0
	}
	return next - max(totalXP, 0)
}

// NextLevel returns the level after a change in experience. Engine-driven
// changes never lower the level.
func NextLevel(current int, experience int64) int {
	return max(current, LevelForExperience(experience))
}

func stepXP(level int) int64 {
	return int64(BaseXP * math.Pow(float64(level), LevelExponent))
}

// levelAndNextXP computes the level and the cumulative XP required for the NEXT level
func levelAndNextXP(totalXP int64) (int, int64) {
	if totalXP <= 0 {
		return 0, stepXP(1)
	}

	level := 0
	cumulative := int64(0)
	for level < MaxLevel {
		next := stepXP(level + 1)
		if cumulative+next > totalXP {
			return level, cumulative + next
		}
		cumulative += next
		level++
	}
	return level, cumulative
}
