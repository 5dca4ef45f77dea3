package domain

import (
	"fmt"
	"math"
)

// Thresholds for the habit/mood correlation heuristics. These are text
// synthesis cut-offs, not statistics.
const (
	minCorrelationEntries = 3
	highCompletionRatio   = 0.7
	lowCompletionRatio    = 0.3
	moodGapThreshold      = 15.0
	lowMoodThreshold      = -10.0
	minPartitionSize      = 2
	minHabitOccurrences   = 3
	habitMoodThreshold    = 30.0
	maxCorrelationInsights = 3
)

// CorrelationResult links same-day habit completion with journal mood.
type CorrelationResult struct {
	HighCompletionAvgMood float64
	LowCompletionAvgMood  float64
	Insights              []string
	DataPoints            int
}

// HabitMoodCorrelation joins daily habit-completion ratios with same-day
// sentiment scores. It returns nil when fewer than three entries carry
// both a habit summary and a sentiment score; insufficient data is a
// sentinel, never fabricated numbers.
func HabitMoodCorrelation(entries []EntryFacts) *CorrelationResult {
	qualified := make([]EntryFacts, 0, len(entries))
	for _, e := range entries {
		if e.HasSentiment && e.HasHabitSummary() {
			qualified = append(qualified, e)
		}
	}
	if len(qualified) < minCorrelationEntries {
		return nil
	}

	var high, low []EntryFacts
	for _, e := range qualified {
		ratio := float64(e.Completed) / float64(e.Total)
		switch {
		case ratio >= highCompletionRatio:
			high = append(high, e)
		case ratio < lowCompletionRatio:
			low = append(low, e)
		}
	}

	result := &CorrelationResult{
		HighCompletionAvgMood: averageScore(high),
		LowCompletionAvgMood:  averageScore(low),
		DataPoints:            len(qualified),
		Insights:              []string{},
	}

	gap := result.HighCompletionAvgMood - result.LowCompletionAvgMood
	if gap > moodGapThreshold && len(high) >= minPartitionSize {
		result.addInsight(fmt.Sprintf(
			"Your mood runs about %.0f points higher on days you complete most of your habits.",
			math.Abs(gap)))
	}

	if result.LowCompletionAvgMood < lowMoodThreshold && len(low) >= minPartitionSize {
		result.addInsight(
			"Days with few completed habits tend toward a negative mood. A single small habit can help turn those days around.")
	}

	for _, name := range habitNamesInOrder(qualified) {
		scores := scoresForHabit(qualified, name)
		if len(scores) >= minHabitOccurrences && average(scores) > habitMoodThreshold {
			result.addInsight(fmt.Sprintf(
				"%q keeps showing up on your best days.", name))
		}
	}

	return result
}

func (r *CorrelationResult) addInsight(text string) {
	if len(r.Insights) < maxCorrelationInsights {
		r.Insights = append(r.Insights, text)
	}
}

// habitNamesInOrder returns distinct habit names in first-appearance
// order so per-habit insights are deterministic.
func habitNamesInOrder(entries []EntryFacts) []string {
	seen := make(map[string]bool)
	names := []string{}
	for _, e := range entries {
		for _, name := range e.HabitNames {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

func scoresForHabit(entries []EntryFacts, name string) []float64 {
	scores := []float64{}
	for _, e := range entries {
		for _, n := range e.HabitNames {
			if n == name {
				scores = append(scores, float64(e.Score))
				break
			}
		}
	}
	return scores
}

func averageScore(entries []EntryFacts) float64 {
	if len(entries) == 0 {
		return 0
	}
	sum := 0.0
	for _, e := range entries {
		sum += float64(e.Score)
	}
	return sum / float64(len(entries))
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
