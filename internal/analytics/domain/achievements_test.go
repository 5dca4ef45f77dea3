package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findAchievement(t *testing.T, achievements []Achievement, id string) Achievement {
	t.Helper()
	for _, a := range achievements {
		if a.ID == id {
			return a
		}
	}
	t.Fatalf("achievement %q not in table", id)
	return Achievement{}
}

func TestEvaluateAchievements(t *testing.T) {
	t.Run("empty counters leave everything locked", func(t *testing.T) {
		achievements := EvaluateAchievements(Counters{})

		require.Len(t, achievements, len(AchievementTable()))
		for _, a := range achievements {
			assert.False(t, a.Unlocked, a.ID)
			assert.Zero(t, a.Progress, a.ID)
		}
		assert.Zero(t, TotalPoints(achievements))
	})

	t.Run("unlocks exactly at the threshold", func(t *testing.T) {
		achievements := EvaluateAchievements(Counters{TotalCompletions: 25})

		assert.True(t, findAchievement(t, achievements, "first-step").Unlocked)
		assert.True(t, findAchievement(t, achievements, "getting-going").Unlocked)
		assert.False(t, findAchievement(t, achievements, "century").Unlocked)
	})

	t.Run("progress is clamped at one hundred", func(t *testing.T) {
		achievements := EvaluateAchievements(Counters{TotalCompletions: 9000})

		for _, id := range []string{"first-step", "getting-going", "century", "marathon"} {
			assert.Equal(t, 100, findAchievement(t, achievements, id).Progress)
		}
	})

	t.Run("progress is monotone in the counter", func(t *testing.T) {
		prev := -1
		for _, completions := range []int{0, 10, 50, 100, 499, 500, 501} {
			achievements := EvaluateAchievements(Counters{TotalCompletions: completions})
			p := findAchievement(t, achievements, "marathon").Progress
			assert.GreaterOrEqual(t, p, prev)
			prev = p
		}
	})

	t.Run("partial progress rounds to nearest percent", func(t *testing.T) {
		achievements := EvaluateAchievements(Counters{TotalCompletions: 10})
		assert.Equal(t, 40, findAchievement(t, achievements, "getting-going").Progress)
	})

	t.Run("perfect day derives fresh and can regress", func(t *testing.T) {
		unlocked := EvaluateAchievements(Counters{PerfectDay: true})
		assert.True(t, findAchievement(t, unlocked, "perfect-day").Unlocked)

		relocked := EvaluateAchievements(Counters{PerfectDay: false})
		assert.False(t, findAchievement(t, relocked, "perfect-day").Unlocked)
	})

	t.Run("distinct life areas unlock well rounded", func(t *testing.T) {
		achievements := EvaluateAchievements(Counters{ActiveAreas: 4})
		assert.True(t, findAchievement(t, achievements, "well-rounded").Unlocked)

		achievements = EvaluateAchievements(Counters{ActiveAreas: 3})
		a := findAchievement(t, achievements, "well-rounded")
		assert.False(t, a.Unlocked)
		assert.Equal(t, 75, a.Progress)
	})
}

func TestTotalPoints(t *testing.T) {
	t.Run("sums fixed per-tier values", func(t *testing.T) {
		achievements := EvaluateAchievements(Counters{
			TotalCompletions: 25, // first-step (bronze) + getting-going (bronze)
			LongestStreak:    7,  // week-strong (bronze)
		})
		assert.Equal(t, 30, TotalPoints(achievements))
	})

	t.Run("tier values", func(t *testing.T) {
		assert.Equal(t, 10, TierBronze.Points())
		assert.Equal(t, 25, TierSilver.Points())
		assert.Equal(t, 50, TierGold.Points())
		assert.Equal(t, 100, TierPlatinum.Points())
	})
}
