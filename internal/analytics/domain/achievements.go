package domain

import "math"

// Tier grades achievements and sets their point value.
type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

// Points returns the fixed point value for a tier.
func (t Tier) Points() int {
	switch t {
	case TierBronze:
		return 10
	case TierSilver:
		return 25
	case TierGold:
		return 50
	case TierPlatinum:
		return 100
	default:
		return 0
	}
}

// RequirementType names the counter an achievement rule reads.
type RequirementType string

const (
	ReqTotalCompletions RequirementType = "total_completions"
	ReqLongestStreak    RequirementType = "longest_streak"
	ReqJournalEntries   RequirementType = "journal_entries"
	ReqJournalStreak    RequirementType = "journal_streak"
	ReqGoalsCreated     RequirementType = "goals_created"
	ReqGoalsCompleted   RequirementType = "goals_completed"
	ReqSkincareDone     RequirementType = "skincare_completions"
	ReqRoutineStreak    RequirementType = "routine_streak"
	ReqPerfectDay       RequirementType = "perfect_day"
	ReqActiveAreas      RequirementType = "active_areas"
)

// AchievementDefinition is one immutable rule of the fixed table.
type AchievementDefinition struct {
	ID          string
	Title       string
	Description string
	Tier        Tier
	Requires    RequirementType
	Threshold   int
}

// Achievement is the derived unlock/progress view over a definition.
// It is recomputed fresh on every evaluation and never persisted; an
// achievement whose underlying counter regresses locks again.
type Achievement struct {
	AchievementDefinition
	Current  int
	Progress int // 0-100, clamped
	Unlocked bool
}

// Counters is the aggregate snapshot the achievement table evaluates
// against. Callers assemble it from live data; the engine adds nothing.
type Counters struct {
	TotalCompletions    int
	LongestStreak       int
	JournalEntries      int
	JournalStreak       int
	GoalsCreated        int
	GoalsCompleted      int
	SkincareCompletions int
	RoutineStreak       int
	PerfectDay          bool
	ActiveAreas         int
}

func (c Counters) value(req RequirementType) int {
	switch req {
	case ReqTotalCompletions:
		return c.TotalCompletions
	case ReqLongestStreak:
		return c.LongestStreak
	case ReqJournalEntries:
		return c.JournalEntries
	case ReqJournalStreak:
		return c.JournalStreak
	case ReqGoalsCreated:
		return c.GoalsCreated
	case ReqGoalsCompleted:
		return c.GoalsCompleted
	case ReqSkincareDone:
		return c.SkincareCompletions
	case ReqRoutineStreak:
		return c.RoutineStreak
	case ReqPerfectDay:
		if c.PerfectDay {
			return 1
		}
		return 0
	case ReqActiveAreas:
		return c.ActiveAreas
	default:
		return 0
	}
}

// AchievementTable returns the fixed rule table.
func AchievementTable() []AchievementDefinition {
	return achievementTable
}

var achievementTable = []AchievementDefinition{
	{"first-step", "First Step", "Complete your first habit", TierBronze, ReqTotalCompletions, 1},
	{"getting-going", "Getting Going", "Complete 25 habit sessions", TierBronze, ReqTotalCompletions, 25},
	{"century", "Century", "Complete 100 habit sessions", TierSilver, ReqTotalCompletions, 100},
	{"marathon", "Marathon", "Complete 500 habit sessions", TierGold, ReqTotalCompletions, 500},
	{"week-strong", "Week Strong", "Hold a 7-day habit streak", TierBronze, ReqLongestStreak, 7},
	{"unbroken", "Unbroken", "Hold a 30-day habit streak", TierSilver, ReqLongestStreak, 30},
	{"relentless", "Relentless", "Hold a 100-day habit streak", TierPlatinum, ReqLongestStreak, 100},
	{"dear-diary", "Dear Diary", "Write 5 journal entries", TierBronze, ReqJournalEntries, 5},
	{"storyteller", "Storyteller", "Write 50 journal entries", TierSilver, ReqJournalEntries, 50},
	{"chronicler", "Chronicler", "Write 200 journal entries", TierGold, ReqJournalEntries, 200},
	{"reflective-week", "Reflective Week", "Journal 7 days in a row", TierSilver, ReqJournalStreak, 7},
	{"dreamer", "Dreamer", "Set 3 goals", TierBronze, ReqGoalsCreated, 3},
	{"achiever", "Achiever", "Complete 5 goals", TierGold, ReqGoalsCompleted, 5},
	{"glow-up", "Glow Up", "Complete 10 skincare routines", TierBronze, ReqSkincareDone, 10},
	{"ritualist", "Ritualist", "Hold a 14-day routine streak", TierSilver, ReqRoutineStreak, 14},
	{"perfect-day", "Perfect Day", "Complete every habit in a single day", TierGold, ReqPerfectDay, 1},
	{"well-rounded", "Well Rounded", "Keep habits active in all 4 life areas", TierGold, ReqActiveAreas, 4},
}

// EvaluateAchievements runs the fixed rule table against a counter
// snapshot. Progress is min(100, round(current/threshold*100)) and is
// monotone in the counter; unlocked means current >= threshold.
func EvaluateAchievements(counters Counters) []Achievement {
	out := make([]Achievement, 0, len(achievementTable))
	for _, def := range achievementTable {
		current := counters.value(def.Requires)
		out = append(out, Achievement{
			AchievementDefinition: def,
			Current:               current,
			Progress:              progressPercent(current, def.Threshold),
			Unlocked:              current >= def.Threshold,
		})
	}
	return out
}

// TotalPoints sums the tier point values of unlocked achievements.
func TotalPoints(achievements []Achievement) int {
	total := 0
	for _, a := range achievements {
		if a.Unlocked {
			total += a.Tier.Points()
		}
	}
	return total
}

func progressPercent(current, threshold int) int {
	if threshold <= 0 {
		return 100
	}
	p := int(math.Round(float64(current) / float64(threshold) * 100))
	if p > 100 {
		return 100
	}
	return p
}
