package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"storefront/internal/data/entity"
	"storefront/internal/data/repository"
	"storefront/pkg/mailer"
	"storefront/pkg/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryUserRepo struct {
	mu      sync.Mutex
	users   map[int64]*entity.User
	byMail  map[string]int64
	nextID  int64
	touches int
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{
		users:  make(map[int64]*entity.User),
		byMail: make(map[string]int64),
		nextID: 1,
	}
}

func (r *memoryUserRepo) Create(ctx context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byMail[u.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	u.ID = r.nextID
	r.nextID++
	now := time.Now()
	u.CreatedAt = now.Add(time.Duration(u.ID) * time.Millisecond)
	u.UpdatedAt = u.CreatedAt
	copyUser := *u
	r.users[u.ID] = &copyUser
	r.byMail[u.Email] = u.ID
	return nil
}

func (r *memoryUserRepo) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copyUser := *u
	return &copyUser, nil
}

func (r *memoryUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byMail[email]
	if !ok {
		return nil, nil
	}
	copyUser := *r.users[id]
	return &copyUser, nil
}

func (r *memoryUserRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		copyUser := *u
		all = append(all, &copyUser)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	if offset >= len(all) {
		return []*entity.User{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *memoryUserRepo) Stats(ctx context.Context, onlineSince time.Time) (*entity.UserStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &entity.UserStats{Total: int64(len(r.users))}
	for _, u := range r.users {
		if u.LastActiveAt != nil && !u.LastActiveAt.Before(onlineSince) {
			stats.Online++
		}
		if u.IsAdmin() {
			stats.Admins++
		}
		if u.IsBanned {
			stats.Banned++
		}
	}
	return stats, nil
}

func (r *memoryUserRepo) TouchLastActive(ctx context.Context, id int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user %d not found", id)
	}
	u.LastActiveAt = &at
	r.touches++
	return nil
}

func (r *memoryUserRepo) SetBanned(ctx context.Context, id int64, banned bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user %d not found", id)
	}
	u.IsBanned = banned
	return nil
}

func (r *memoryUserRepo) SetRole(ctx context.Context, id int64, role entity.UserRole) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user %d not found", id)
	}
	u.Role = role
	return nil
}

func (r *memoryUserRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user %d not found", id)
	}
	delete(r.byMail, u.Email)
	delete(r.users, id)
	return nil
}

// seed stores u directly, hashing password when given.
func (r *memoryUserRepo) seed(t *testing.T, u *entity.User, password string) *entity.User {
	t.Helper()
	if password != "" {
		hash, err := utils.HashPassword(password)
		require.NoError(t, err)
		u.PasswordHash = hash
	}
	if u.Role == "" {
		u.Role = entity.RoleUser
	}
	require.NoError(t, r.Create(context.Background(), u))
	return u
}

type fakeSender struct {
	mu   sync.Mutex
	sent []*mailer.Message
	err  error
}

func (s *fakeSender) Send(ctx context.Context, msg *mailer.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

type fakeTracker struct {
	mu     sync.Mutex
	online map[int64]bool
	err    error
}

func newFakeTracker() *fakeTracker {
	return &fakeTracker{online: make(map[int64]bool)}
}

func (t *fakeTracker) Touch(ctx context.Context, userID int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return t.err
	}
	t.online[userID] = true
	return nil
}

func (t *fakeTracker) Online(ctx context.Context, userIDs []int64) (map[int64]bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return nil, t.err
	}
	result := make(map[int64]bool, len(userIDs))
	for _, id := range userIDs {
		result[id] = t.online[id]
	}
	return result, nil
}

func (t *fakeTracker) Count(ctx context.Context) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return 0, t.err
	}
	return int64(len(t.online)), nil
}

func (t *fakeTracker) Forget(ctx context.Context, userID int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.online, userID)
	return nil
}

type testEnv struct {
	repo    *memoryUserRepo
	sender  *fakeSender
	tokens  *utils.TokenManager
	service *Service
}

func testConfig() *utils.Config {
	return &utils.Config{
		App: utils.AppConfig{
			Name:               "storefront-test",
			SiteAccessPassword: "open-sesame",
		},
		JWT: utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
		Email: utils.EmailConfig{
			OrderTo: "shop@example.com",
		},
		Presence: utils.PresenceConfig{OnlineWindowMinutes: 5},
	}
}

func newTestEnv(t *testing.T, tracker *fakeTracker) *testEnv {
	t.Helper()
	config := testConfig()
	repo := newMemoryUserRepo()
	sender := &fakeSender{}
	tokens := utils.NewTokenManager(config.JWT.Secret, config.App.Name, config.JWT.TTL())

	deps := Deps{Tokens: tokens, Mailer: sender}
	if tracker != nil {
		deps.Presence = tracker
	}

	repoSet := &repository.Repository{User: repo}
	return &testEnv{
		repo:    repo,
		sender:  sender,
		tokens:  tokens,
		service: NewService(repoSet, deps, config, zap.NewNop()),
	}
}
