package domain

import (
	"fmt"
	"math"
	"strings"

	shared "github.com/tendhq/tend/internal/shared/domain"
)

// LifeArea is the fixed classification axis for balance scoring.
type LifeArea string

const (
	AreaHealth        LifeArea = "health"
	AreaCareer        LifeArea = "career"
	AreaMind          LifeArea = "mind"
	AreaRelationships LifeArea = "relationships"
)

// LifeAreas lists the four areas in their fixed evaluation order.
// Ties in best/worst area resolve by this order.
func LifeAreas() []LifeArea {
	return []LifeArea{AreaHealth, AreaCareer, AreaMind, AreaRelationships}
}

// Trend describes the direction of an area's recent completion ratio.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// AreaScore is the derived per-area view. Never persisted.
type AreaScore struct {
	Area           LifeArea
	Score          int // 0-100
	HabitCount     int
	CompletionRate int // 0-100
	GoalProgress   int // 0-100, mean progress of matched goals
	Trend          Trend
}

// BalanceReport is the full life-balance derivation.
type BalanceReport struct {
	OverallScore   int
	Areas          []AreaScore
	StabilityScore int
	Insights       []string
}

const (
	balanceWindow       = 30
	trendWindow         = 7
	trendThreshold      = 0.1
	rateWeight          = 0.6
	goalWeight          = 0.4
	strongAreaScore     = 50
	weakAreaScore       = 30
	highStabilityScore  = 80
	lowStabilityScore   = 50
)

// habitAreaByCategory maps habit categories onto life areas. Unmapped
// categories land in career.
var habitAreaByCategory = map[string]LifeArea{
	"health":      AreaHealth,
	"fitness":     AreaHealth,
	"skincare":    AreaHealth,
	"sleep":       AreaHealth,
	"nutrition":   AreaHealth,
	"work":        AreaCareer,
	"career":      AreaCareer,
	"finance":     AreaCareer,
	"productivity": AreaCareer,
	"learning":    AreaMind,
	"mindfulness": AreaMind,
	"creativity":  AreaMind,
	"reading":     AreaMind,
	"social":      AreaRelationships,
	"family":      AreaRelationships,
	"friends":     AreaRelationships,
}

// goalAreaVocabulary maps title keywords onto life areas. A goal matching
// no vocabulary belongs to no area and is excluded from scoring.
var goalAreaVocabulary = map[LifeArea][]string{
	AreaHealth:        {"health", "fitness", "exercise", "weight", "run", "gym", "sleep", "diet"},
	AreaCareer:        {"career", "job", "work", "promotion", "salary", "business", "money", "save"},
	AreaMind:          {"learn", "read", "study", "meditate", "course", "language", "write", "skill"},
	AreaRelationships: {"friend", "family", "partner", "call", "visit", "date", "relationship"},
}

// AreaForCategory classifies a habit category into its life area.
func AreaForCategory(category string) LifeArea {
	if area, ok := habitAreaByCategory[strings.ToLower(category)]; ok {
		return area
	}
	return AreaCareer
}

// AreaForGoal classifies a goal by keyword-matching its title. The second
// return is false when no vocabulary matches.
func AreaForGoal(title string) (LifeArea, bool) {
	lower := strings.ToLower(title)
	for _, area := range LifeAreas() {
		for _, kw := range goalAreaVocabulary[area] {
			if strings.Contains(lower, kw) {
				return area, true
			}
		}
	}
	return "", false
}

// LifeBalance derives per-area scores, trend, overall score, and the
// variance-based stability score from habits and goals.
func LifeBalance(activities []Activity, goals []GoalFacts, today shared.Date) BalanceReport {
	areas := make([]AreaScore, 0, 4)
	for _, area := range LifeAreas() {
		areas = append(areas, scoreArea(area, activities, goals, today))
	}

	scores := make([]float64, len(areas))
	sum := 0.0
	for i, a := range areas {
		scores[i] = float64(a.Score)
		sum += scores[i]
	}
	overall := int(math.Round(sum / float64(len(areas))))

	stability := int(math.Round(100 - math.Sqrt(variance(scores))))
	if stability < 0 {
		stability = 0
	}

	return BalanceReport{
		OverallScore:   overall,
		Areas:          areas,
		StabilityScore: stability,
		Insights:       balanceInsights(areas, stability),
	}
}

func scoreArea(area LifeArea, activities []Activity, goals []GoalFacts, today shared.Date) AreaScore {
	var areaActivities []Activity
	for _, a := range activities {
		if AreaForCategory(a.Category) == area {
			areaActivities = append(areaActivities, a)
		}
	}

	rate := areaCompletionRate(areaActivities, today, balanceWindow)

	goalProgress := 0
	matched := 0
	progressSum := 0
	for _, g := range goals {
		if goalArea, ok := AreaForGoal(g.Title); ok && goalArea == area {
			matched++
			progressSum += g.Progress
		}
	}
	if matched > 0 {
		goalProgress = int(math.Round(float64(progressSum) / float64(matched)))
	}

	return AreaScore{
		Area:           area,
		Score:          int(math.Round(float64(rate)*rateWeight + float64(goalProgress)*goalWeight)),
		HabitCount:     len(areaActivities),
		CompletionRate: rate,
		GoalProgress:   goalProgress,
		Trend:          areaTrend(areaActivities, today),
	}
}

// areaCompletionRate counts completed habit-days over possible habit-days
// in the trailing window. Possible days only accrue once a habit exists:
// a habit created mid-window is not penalized for days before creation.
func areaCompletionRate(activities []Activity, today shared.Date, window int) int {
	possible := 0
	completed := 0
	for i := 0; i < window; i++ {
		day := today.AddDays(-i)
		for _, a := range activities {
			if a.CreatedAt.After(day) {
				continue
			}
			possible++
			if a.Completed.Contains(day) {
				completed++
			}
		}
	}
	if possible == 0 {
		return 0
	}
	return roundPercent(float64(completed) / float64(possible))
}

// areaTrend compares the completion ratio over the most recent seven days
// against the seven days before that.
func areaTrend(activities []Activity, today shared.Date) Trend {
	recent := windowRatio(activities, today, trendWindow)
	older := windowRatio(activities, today.AddDays(-trendWindow), trendWindow)

	switch {
	case recent-older > trendThreshold:
		return TrendUp
	case older-recent > trendThreshold:
		return TrendDown
	default:
		return TrendStable
	}
}

func windowRatio(activities []Activity, end shared.Date, window int) float64 {
	possible := 0
	completed := 0
	for i := 0; i < window; i++ {
		day := end.AddDays(-i)
		for _, a := range activities {
			if a.CreatedAt.After(day) {
				continue
			}
			possible++
			if a.Completed.Contains(day) {
				completed++
			}
		}
	}
	if possible == 0 {
		return 0
	}
	return float64(completed) / float64(possible)
}

func balanceInsights(areas []AreaScore, stability int) []string {
	insights := []string{}

	best := areas[0]
	worst := areas[0]
	for _, a := range areas[1:] {
		if a.Score > best.Score {
			best = a
		}
		if a.Score < worst.Score {
			worst = a
		}
	}

	if best.Score >= strongAreaScore {
		insights = append(insights, fmt.Sprintf("Your %s area is going strong.", best.Area))
	}
	if worst.Score < weakAreaScore {
		insights = append(insights, fmt.Sprintf("Your %s area could use some attention.", worst.Area))
	}

	for _, a := range areas {
		switch a.Trend {
		case TrendUp:
			insights = append(insights, fmt.Sprintf("%s is trending up this week.", a.Area))
		case TrendDown:
			insights = append(insights, fmt.Sprintf("%s is slipping compared to last week.", a.Area))
		}
	}

	if stability >= highStabilityScore {
		insights = append(insights, "Your life areas are well balanced right now.")
	} else if stability < lowStabilityScore {
		insights = append(insights, "Your engagement is concentrated in a few areas. Small steps elsewhere restore balance.")
	}

	return insights
}

func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return sum / float64(len(values))
}
