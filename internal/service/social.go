package service

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/campuslink/campuslink/internal/models"
)

// ToggleFollow flips the follow relation from the current account to the
// target and returns the new state (true when now following). Either
// direction emits a notification to the target naming the actor.
//
// The returned state is valid even when the notification write fails; in
// that case the error reports the failed emission.
func (s *Service) ToggleFollow(ctx context.Context, currentID, targetID int64) (bool, error) {
	if currentID == targetID {
		return false, ErrSelfFollow
	}

	actor, err := s.accounts.GetByID(ctx, currentID)
	if err != nil {
		return false, remoteErr(err)
	}
	if actor == nil {
		return false, ErrNotFound
	}

	existing, err := s.follows.Get(ctx, currentID, targetID)
	if err != nil {
		return false, remoteErr(err)
	}

	var following bool
	var message string
	if existing != nil {
		if err := s.follows.Delete(ctx, currentID, targetID); err != nil {
			return true, remoteErr(err)
		}
		following = false
		message = models.UnfollowMessage(actor.Name())
	} else {
		follow := &models.Follow{
			FollowerID: currentID,
			FolloweeID: targetID,
			CreatedAt:  s.now(),
		}
		if err := s.follows.Create(ctx, follow); err != nil {
			return false, remoteErr(err)
		}
		following = true
		message = models.FollowMessage(actor.Name())
	}

	notification := &models.Notification{
		RecipientID: targetID,
		ActorID:     sql.NullInt64{Int64: currentID, Valid: true},
		Message:     message,
		CreatedAt:   s.now(),
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		return following, remoteErr(err)
	}

	return following, nil
}

// IsFollowing reports whether current follows target
func (s *Service) IsFollowing(ctx context.Context, currentID, targetID int64) (bool, error) {
	follow, err := s.follows.Get(ctx, currentID, targetID)
	if err != nil {
		return false, remoteErr(err)
	}
	return follow != nil, nil
}

// FollowedAccount is a followed account joined with its profile picture
type FollowedAccount struct {
	Account *models.Account
	Picture *Picture
}

// ListFollowing returns the accounts the given account follows, in follow
// creation order. Followed ids whose account lookup fails are dropped
// from the result; the failure is logged, not surfaced.
func (s *Service) ListFollowing(ctx context.Context, accountID int64) ([]FollowedAccount, error) {
	follows, err := s.follows.ListByFollower(ctx, accountID)
	if err != nil {
		return nil, remoteErr(err)
	}

	resolved := make([]*FollowedAccount, len(follows))
	fanOut(len(follows), func(i int) {
		followeeID := follows[i].FolloweeID
		account, err := s.accounts.GetByID(ctx, followeeID)
		if err != nil || account == nil {
			s.logger.Error("Dropping unresolvable followed account",
				zap.Int64("followee_id", followeeID),
				zap.Error(err))
			return
		}
		resolved[i] = &FollowedAccount{
			Account: account,
			Picture: s.ResolveProfilePicture(ctx, followeeID),
		}
	})

	result := make([]FollowedAccount, 0, len(resolved))
	for _, item := range resolved {
		if item != nil {
			result = append(result, *item)
		}
	}
	return result, nil
}
