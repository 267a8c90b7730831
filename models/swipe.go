package models

import (
	"time"
)

// Swipe decisions
const (
	SwipeLike      = "like"
	SwipeDislike   = "dislike"
	SwipeSuperlike = "superlike"
)

// Swipe is a one-way, immutable decision by ActorID about TargetID.
// The composite unique index makes the pair a one-time decision per
// direction; A->B and B->A are independent rows.
type Swipe struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ActorID   uint      `gorm:"not null;uniqueIndex:idx_swipe_pair;index:idx_swipe_actor_decision" json:"actor_id"`
	TargetID  uint      `gorm:"not null;uniqueIndex:idx_swipe_pair;index:idx_swipe_target_decision" json:"target_id"`
	Decision  string    `gorm:"size:10;not null;index:idx_swipe_actor_decision;index:idx_swipe_target_decision" json:"decision"`
	CreatedAt time.Time `json:"created_at"`

	Actor  User `gorm:"foreignKey:ActorID" json:"-"`
	Target User `gorm:"foreignKey:TargetID" json:"-"`
}

// IsLike reports whether the decision counts towards a mutual match.
func (s *Swipe) IsLike() bool {
	return s.Decision == SwipeLike || s.Decision == SwipeSuperlike
}

// ValidDecision reports whether d is one of the accepted swipe decisions.
func ValidDecision(d string) bool {
	return d == SwipeLike || d == SwipeDislike || d == SwipeSuperlike
}
