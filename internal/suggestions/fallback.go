package suggestions

import "math/rand"

// Fixed fallback pool, keyed by time of day with a shared default set.
// The copy is intentionally generic so it reads sensibly regardless of
// which habits the user tracks.
var fallbacksByTime = map[string][]Suggestion{
	"morning": {
		{
			Suggestion:  "Start with your easiest habit to build momentum for the day.",
			Affirmation: "Small steps this morning shape the whole day.",
			Tip:         "Habits chained to an existing routine stick best.",
		},
		{
			Suggestion:  "Pick one habit and do it before checking your phone.",
			Affirmation: "You get to decide how this day begins.",
		},
	},
	"afternoon": {
		{
			Suggestion:  "A short walk or stretch now can reset your focus.",
			Affirmation: "Consistency matters more than intensity.",
			Tip:         "An afternoon slump is a cue, not a verdict.",
		},
		{
			Suggestion:  "Check your list: one quick win is probably still open.",
			Affirmation: "Progress counts even when it is quiet.",
		},
	},
	"evening": {
		{
			Suggestion:  "Wind down with your skincare or journaling routine.",
			Affirmation: "Ending the day with care is a habit too.",
			Tip:         "A two-line journal entry still keeps the streak alive.",
		},
		{
			Suggestion:  "Review today and mark anything you finished but forgot to log.",
			Affirmation: "You did more today than you think.",
		},
	},
	"night": {
		{
			Suggestion:  "Let today be done. Tomorrow's first habit is already waiting.",
			Affirmation: "Rest is part of the practice.",
		},
	},
}

var fallbackDefaults = []Suggestion{
	{
		Suggestion:  "Pick the habit you have been avoiding and give it two minutes.",
		Affirmation: "Showing up is the hardest part, and you are here.",
		Tip:         "Two minutes is enough to count.",
	},
	{
		Suggestion:  "Revisit your goals list. Is one of them a single step from done?",
		Affirmation: "Direction beats speed.",
	},
	{
		Suggestion:  "Write one sentence in your journal about how right now feels.",
		Affirmation: "Noticing is its own kind of progress.",
	},
}

// PickFallback returns a random local suggestion for the given time of
// day, falling back to the generic pool for unknown values.
func PickFallback(timeOfDay string) Suggestion {
	pool, ok := fallbacksByTime[timeOfDay]
	if !ok || len(pool) == 0 {
		pool = fallbackDefaults
	}
	return pool[rand.Intn(len(pool))]
}

// FallbackPool returns every local suggestion, for display or testing.
func FallbackPool() []Suggestion {
	out := make([]Suggestion, 0, len(fallbackDefaults))
	out = append(out, fallbackDefaults...)
	for _, pool := range fallbacksByTime {
		out = append(out, pool...)
	}
	return out
}
