package domain

import "sort"

// GlowMoment is a one-time celebratory unlock. Unlike the achievement
// table, which re-derives freely, a glow moment is revealed once: the
// caller persists the seen-id set and feeds it back on the next pass.
type GlowMoment struct {
	ID        string
	Title     string
	Message   string
	Requires  RequirementType
	Threshold int
}

var glowMoments = []GlowMoment{
	{"first-glow", "A Spark", "You showed up. That is how everything starts.", ReqTotalCompletions, 1},
	{"three-day-glow", "Warming Up", "Three days in a row. Momentum is building.", ReqLongestStreak, 3},
	{"first-entry-glow", "Inner Voice", "Your first journal entry. Your future self says thanks.", ReqJournalEntries, 1},
	{"first-goal-glow", "Eyes Ahead", "First goal set. Direction changes everything.", ReqGoalsCreated, 1},
	{"skincare-glow", "Glow Ritual", "A full week of caring for your skin.", ReqSkincareDone, 7},
	{"perfect-glow", "Flawless", "Every single habit, done in one day.", ReqPerfectDay, 1},
}

// GlowMomentTable returns the fixed glow-moment rule table.
func GlowMomentTable() []GlowMoment {
	return glowMoments
}

// UnlockedGlowIDs evaluates the glow table against a counter snapshot and
// returns the ids of all currently satisfied moments.
func UnlockedGlowIDs(counters Counters) []string {
	ids := []string{}
	for _, gm := range glowMoments {
		if counters.value(gm.Requires) >= gm.Threshold {
			ids = append(ids, gm.ID)
		}
	}
	return ids
}

// NewGlowMoments returns the moments unlocked now but never shown before:
// the set-difference of freshly derived unlocks against the persisted
// seen set, in table order.
func NewGlowMoments(counters Counters, seen map[string]bool) []GlowMoment {
	unlocked := make(map[string]bool)
	for _, id := range UnlockedGlowIDs(counters) {
		unlocked[id] = true
	}
	fresh := []GlowMoment{}
	for _, gm := range glowMoments {
		if unlocked[gm.ID] && !seen[gm.ID] {
			fresh = append(fresh, gm)
		}
	}
	return fresh
}

// MergeSeen returns seen plus the given ids, sorted for stable storage.
func MergeSeen(seen map[string]bool, ids []string) []string {
	merged := make(map[string]bool, len(seen)+len(ids))
	for id, ok := range seen {
		if ok {
			merged[id] = true
		}
	}
	for _, id := range ids {
		merged[id] = true
	}

	out := make([]string, 0, len(merged))
	for id := range merged {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
