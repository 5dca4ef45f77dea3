package domain

import (
	"math"
	"strings"
)

// SentimentLabel classifies the overall polarity of a text.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

// Confidence grades how much signal backed a sentiment score.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Mood is the five-step user-facing mood scale.
type Mood string

const (
	MoodGreat Mood = "great"
	MoodGood  Mood = "good"
	MoodOkay  Mood = "okay"
	MoodLow   Mood = "low"
	MoodRough Mood = "rough"
)

// IsValidMood reports whether the given mood is one of the five steps.
func IsValidMood(m Mood) bool {
	switch m {
	case MoodGreat, MoodGood, MoodOkay, MoodLow, MoodRough:
		return true
	default:
		return false
	}
}

// SentimentResult is the full outcome of analyzing a journal text.
type SentimentResult struct {
	Score      int // [-100, 100]
	Label      SentimentLabel
	Confidence Confidence
	Emotions   []string // at most 3, fixed category order
}

const maxEmotionTags = 3

// AnalyzeSentiment scores free text with the polarity lexicon. Empty or
// whitespace-only text is neutral with zero score and low confidence.
func AnalyzeSentiment(text string) SentimentResult {
	words := tokenize(text)
	if len(words) == 0 {
		return SentimentResult{Label: SentimentNeutral, Confidence: ConfidenceLow, Emotions: []string{}}
	}

	raw := 0
	bearing := 0
	for _, w := range words {
		if weight, ok := polarityLexicon[w]; ok {
			raw += weight
			bearing++
		}
	}

	comparative := float64(raw) / float64(len(words))
	score := clampScore(comparative * 50)

	return SentimentResult{
		Score:      score,
		Label:      labelForScore(score),
		Confidence: confidenceFor(bearing, len(words)),
		Emotions:   tagEmotions(text),
	}
}

// MoodFromSentiment maps a sentiment label and score onto the mood scale.
func MoodFromSentiment(label SentimentLabel, score int) Mood {
	switch label {
	case SentimentPositive:
		if score >= 50 {
			return MoodGreat
		}
		return MoodGood
	case SentimentNegative:
		if score <= -50 {
			return MoodRough
		}
		return MoodLow
	default:
		return MoodOkay
	}
}

func labelForScore(score int) SentimentLabel {
	switch {
	case score > 10:
		return SentimentPositive
	case score < -10:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

func confidenceFor(bearing, total int) Confidence {
	ratio := float64(bearing) / float64(total)
	switch {
	case ratio < 0.05 || total < 10:
		return ConfidenceLow
	case ratio < 0.15:
		return ConfidenceMedium
	default:
		return ConfidenceHigh
	}
}

func tagEmotions(text string) []string {
	lower := strings.ToLower(text)
	emotions := make([]string, 0, maxEmotionTags)
	for _, cat := range emotionCategories {
		for _, kw := range cat.keywords {
			if strings.Contains(lower, kw) {
				emotions = append(emotions, cat.name)
				break
			}
		}
		if len(emotions) == maxEmotionTags {
			break
		}
	}
	return emotions
}

// tokenize lowercases and splits text into letter-only words.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	})
}

func isWordRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '\''
}

func clampScore(v float64) int {
	rounded := math.Round(v)
	if rounded > 100 {
		return 100
	}
	if rounded < -100 {
		return -100
	}
	return int(rounded)
}
