package usecase

import (
	"context"
	"time"

	"storefront/internal/data/entity"
	"storefront/internal/data/repository"
	"storefront/pkg/presence"

	"go.uber.org/zap"
)

// lastActiveResolution limits how often authenticated traffic rewrites users.last_active_at.
const lastActiveResolution = time.Minute

// activity answers presence questions from the tracker when one is configured,
// and from users.last_active_at otherwise.
type activity struct {
	users   repository.UserRepository
	tracker presence.Tracker
	window  time.Duration
	now     func() time.Time
	log     *zap.Logger
}

func newActivity(users repository.UserRepository, tracker presence.Tracker, window time.Duration, log *zap.Logger) *activity {
	if window <= 0 {
		window = 5 * time.Minute
	}
	return &activity{
		users:   users,
		tracker: tracker,
		window:  window,
		now:     time.Now,
		log:     log.With(zap.String("service", "activity")),
	}
}

// touch records activity. Failures are logged only; presence is best effort.
func (a *activity) touch(ctx context.Context, user *entity.User, force bool) {
	now := a.now()

	if force || user.LastActiveAt == nil || now.Sub(*user.LastActiveAt) >= lastActiveResolution {
		if err := a.users.TouchLastActive(ctx, user.ID, now); err != nil {
			a.log.Warn("Failed to update last active", zap.Error(err), zap.Int64("user_id", user.ID))
		} else {
			user.LastActiveAt = &now
		}
	}

	if a.tracker != nil {
		if err := a.tracker.Touch(ctx, user.ID); err != nil {
			a.log.Warn("Failed to touch presence", zap.Error(err), zap.Int64("user_id", user.ID))
		}
	}
}

func (a *activity) online(ctx context.Context, users []*entity.User) map[int64]bool {
	if a.tracker != nil {
		ids := make([]int64, len(users))
		for i, u := range users {
			ids[i] = u.ID
		}
		result, err := a.tracker.Online(ctx, ids)
		if err == nil {
			return result
		}
		a.log.Warn("Presence lookup failed, using last_active_at", zap.Error(err))
	}

	now := a.now()
	result := make(map[int64]bool, len(users))
	for _, u := range users {
		result[u.ID] = u.ActiveWithin(now, a.window)
	}
	return result
}

func (a *activity) stats(ctx context.Context) (*entity.UserStats, error) {
	stats, err := a.users.Stats(ctx, a.now().Add(-a.window))
	if err != nil {
		return nil, err
	}

	if a.tracker != nil {
		count, err := a.tracker.Count(ctx)
		if err != nil {
			a.log.Warn("Presence count failed, using last_active_at", zap.Error(err))
		} else {
			stats.Online = count
		}
	}
	return stats, nil
}

func (a *activity) forget(ctx context.Context, userID int64) {
	if a.tracker == nil {
		return
	}
	if err := a.tracker.Forget(ctx, userID); err != nil {
		a.log.Warn("Failed to clear presence", zap.Error(err), zap.Int64("user_id", userID))
	}
}
