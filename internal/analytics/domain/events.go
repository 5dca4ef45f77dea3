package domain

import (
	"github.com/google/uuid"

	sharedDomain "github.com/tendhq/tend/internal/shared/domain"
)

const glowAggregateType = "GlowMoment"

// GlowUnlocked is emitted the first time a glow moment is revealed to a
// user. It fires once per glow id; the seen-set guards against repeats.
type GlowUnlocked struct {
	sharedDomain.BaseEvent
	UserID uuid.UUID `json:"user_id"`
	GlowID string    `json:"glow_id"`
	Title  string    `json:"title"`
}

// NewGlowUnlocked creates a GlowUnlocked event.
func NewGlowUnlocked(userID uuid.UUID, glow GlowMoment) *GlowUnlocked {
	return &GlowUnlocked{
		BaseEvent: sharedDomain.NewBaseEvent(userID, glowAggregateType, "analytics.glow.unlocked"),
		UserID:    userID,
		GlowID:    glow.ID,
		Title:     glow.Title,
	}
}
