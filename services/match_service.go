package services

import (
	"errors"

	"campusmatch/config"
	"campusmatch/models"

	"gorm.io/gorm"
)

// CandidateLimit caps a single candidate page.
const CandidateLimit = 20

// SwipeResult reports a recorded swipe and, when the like was reciprocal,
// the match seen from the swiper's side.
type SwipeResult struct {
	Swipe       models.Swipe `json:"swipe"`
	MatchFormed bool         `json:"match_formed"`
	Match       *MatchView   `json:"match,omitempty"`
}

// RecordSwipe stores the actor's decision about the target and derives a
// match when a reciprocal like exists. The swipe insert, the reciprocal
// check and the match insert share one transaction; the composite unique
// indexes on swipes and matches are the backstop when both users swipe
// concurrently.
func RecordSwipe(actorID, targetID uint, decision string) (*SwipeResult, error) {
	if actorID == targetID {
		return nil, ErrSelfSwipe
	}
	if !models.ValidDecision(decision) {
		return nil, ErrInvalidDecision
	}

	var target models.User
	err := config.DB.Where("id = ? AND active = ? AND verified = ?", targetID, true, true).
		First(&target).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	swipe := models.Swipe{ActorID: actorID, TargetID: targetID, Decision: decision}
	var match *models.Match

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&swipe).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateSwipe
			}
			return err
		}

		if !swipe.IsLike() {
			return nil
		}

		var reciprocal int64
		if err := tx.Model(&models.Swipe{}).
			Where("actor_id = ? AND target_id = ? AND decision IN ?",
				targetID, actorID, []string{models.SwipeLike, models.SwipeSuperlike}).
			Count(&reciprocal).Error; err != nil {
			return err
		}
		if reciprocal == 0 {
			return nil
		}

		a, b := models.CanonicalPair(actorID, targetID)

		var existing models.Match
		err := tx.Where("user_a_id = ? AND user_b_id = ?", a, b).First(&existing).Error
		if err == nil {
			match = &existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		created := models.Match{UserAID: a, UserBID: b, Active: true}
		if err := tx.Create(&created).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Concurrent reciprocal swipe won the insert; use its row.
				if err := tx.Where("user_a_id = ? AND user_b_id = ?", a, b).
					First(&created).Error; err != nil {
					return err
				}
				match = &created
				return nil
			}
			return err
		}
		match = &created
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &SwipeResult{Swipe: swipe, MatchFormed: match != nil}
	if match != nil {
		view, err := buildMatchView(config.DB, match, actorID)
		if err != nil {
			return nil, err
		}
		result.Match = view
	}
	return result, nil
}

// ListCandidates returns up to CandidateLimit visible users of the sought
// genders the caller has not yet swiped on, freshest activity first with a
// random tiebreak. Exclusion is one-directional: someone who already swiped
// on the caller still shows up until the caller decides too.
func ListCandidates(user *models.User) ([]models.User, error) {
	sought := user.SoughtGenders()
	if len(sought) == 0 {
		return []models.User{}, nil
	}

	swiped := config.DB.Model(&models.Swipe{}).
		Select("target_id").
		Where("actor_id = ?", user.ID)

	candidates := []models.User{}
	err := config.DB.
		Where("verified = ? AND active = ? AND profile_complete = ?", true, true, true).
		Where("id <> ?", user.ID).
		Where("id NOT IN (?)", swiped).
		Where("gender IN ?", sought).
		Where("EXISTS (SELECT 1 FROM photos WHERE photos.user_id = users.id)").
		Order("last_active_at DESC, RANDOM()").
		Limit(CandidateLimit).
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Find(&candidates).Error
	return candidates, err
}

// ListMatches returns the caller's active matches, most recent conversation
// first, each projected from the caller's viewpoint.
func ListMatches(userID uint) ([]MatchView, error) {
	var matches []models.Match
	err := config.DB.
		Where("active = ?", true).
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("COALESCE(last_message_at, created_at) DESC").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return buildMatchViews(matches, userID)
}

// ListConversations is ListMatches narrowed to matches that have messages.
func ListConversations(userID uint) ([]MatchView, error) {
	var matches []models.Match
	err := config.DB.
		Where("active = ?", true).
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Where("EXISTS (SELECT 1 FROM messages WHERE messages.match_id = matches.id)").
		Order("COALESCE(last_message_at, created_at) DESC").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return buildMatchViews(matches, userID)
}

// GetMatch returns one active match, participant-only.
func GetMatch(matchID, userID uint) (*MatchView, error) {
	match, err := participantMatch(config.DB, matchID, userID)
	if err != nil {
		return nil, err
	}
	return buildMatchView(config.DB, match, userID)
}

// DeactivateMatch soft-deletes a match: the active flag flips, message
// history stays.
func DeactivateMatch(matchID, userID uint) error {
	match, err := participantMatch(config.DB, matchID, userID)
	if err != nil {
		return err
	}
	return config.DB.Model(match).Update("active", false).Error
}

// participantMatch loads an active match the user is part of, collapsing
// "absent" and "not yours" into ErrMatchNotFound.
func participantMatch(db *gorm.DB, matchID, userID uint) (*models.Match, error) {
	var match models.Match
	err := db.
		Where("id = ? AND active = ?", matchID, true).
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		First(&match).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func buildMatchViews(matches []models.Match, viewerID uint) ([]MatchView, error) {
	views := make([]MatchView, 0, len(matches))
	for i := range matches {
		view, err := buildMatchView(config.DB, &matches[i], viewerID)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}
