package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelForExperience(t *testing.T) {
	tests := []struct {
		name     string
		xp       int64
		expected int
	}{
		{"zero xp", 0, 0},
		{"negative xp", -10, 0},
		{"just below level 1", 99, 0},
		{"exactly level 1", 100, 1},
		{"between 1 and 2", 381, 1},
		{"exactly level 2", 382, 2},
		{"level 3", 901, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LevelForExperience(tt.xp))
		})
	}
}

func TestXPForLevel_RoundTrip(t *testing.T) {
	for level := 1; level <= 20; level++ {
		xp := XPForLevel(level)
		assert.Equal(t, level, LevelForExperience(xp), "level %d", level)
		assert.Equal(t, level-1, LevelForExperience(xp-1), "level %d minus one", level)
	}
}

func TestXPForLevel_Capped(t *testing.T) {
	assert.Equal(t, int64(0), XPForLevel(0))
	assert.Equal(t, XPForLevel(MaxLevel), XPForLevel(MaxLevel+5))
	assert.Equal(t, MaxLevel, LevelForExperience(XPForLevel(MaxLevel)*2))
}

func TestXPToNextLevel(t *testing.T) {
	assert.Equal(t, int64(100), XPToNextLevel(0))
	assert.Equal(t, int64(10), XPToNextLevel(90))
	assert.Equal(t, int64(282), XPToNextLevel(100))
	assert.Equal(t, int64(0), XPToNextLevel(XPForLevel(MaxLevel)))
}

func TestNextLevel_NeverDecreases(t *testing.T) {
	assert.Equal(t, 5, NextLevel(5, 0), "stored level wins over a lower derived level")
	assert.Equal(t, 2, NextLevel(0, 400))
}
