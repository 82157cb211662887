package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell-backend/internal/domains/user/model"
	"inkwell-backend/internal/policy"
	"inkwell-backend/pkg/jwt"

	followmodel "inkwell-backend/internal/domains/follow/model"
	writingmodel "inkwell-backend/internal/domains/writing/model"
)

// =====================================================
// FAKES
// =====================================================

type fakeUserRepository struct {
	users map[uuid.UUID]model.User
}

func newFakeUserRepo() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[uuid.UUID]model.User)}
}

func (f *fakeUserRepository) Create(_ context.Context, u *model.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return model.NewEmailAlreadyExistsError()
		}
		if existing.PenName == u.PenName {
			return model.NewPenNameTakenError(u.PenName)
		}
	}
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserRepository) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := u
	return &copied, nil
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == strings.ToLower(email) {
			copied := u
			return &copied, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (f *fakeUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.FindByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUserRepository) Update(_ context.Context, u *model.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return model.ErrUserNotFound
	}
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserRepository) UpdateLastLogin(_ context.Context, id uuid.UUID) error {
	return nil
}

func (f *fakeUserRepository) SearchWriters(_ context.Context, query string, limit int) ([]model.User, error) {
	out := []model.User{}
	for _, u := range f.users {
		if u.IsActive && strings.Contains(strings.ToLower(u.PenName), strings.ToLower(query)) && len(out) < limit {
			out = append(out, u)
		}
	}
	return out, nil
}

// fakeWriterStats returns fixed writing counts per author.
type fakeWriterStats struct {
	total  map[uuid.UUID]int
	public map[uuid.UUID]int
}

func (f fakeWriterStats) Create(context.Context, *writingmodel.Writing) error { return nil }
func (f fakeWriterStats) GetByID(context.Context, uuid.UUID) (*writingmodel.Writing, error) {
	return nil, writingmodel.ErrWritingNotFound
}
func (f fakeWriterStats) Update(context.Context, *writingmodel.Writing) error { return nil }
func (f fakeWriterStats) Delete(context.Context, uuid.UUID) error             { return nil }
func (f fakeWriterStats) List(context.Context, policy.ListScope, policy.Viewer, policy.Filters, int, int) ([]writingmodel.Writing, int, error) {
	return nil, 0, nil
}
func (f fakeWriterStats) CountByAuthor(_ context.Context, authorID uuid.UUID) (int, int, error) {
	return f.total[authorID], f.public[authorID], nil
}
func (f fakeWriterStats) ListPublicByAuthors(context.Context, []uuid.UUID, int) ([]writingmodel.Writing, error) {
	return nil, nil
}
func (f fakeWriterStats) ListPublicSince(context.Context, time.Time) ([]writingmodel.Writing, error) {
	return nil, nil
}

type fakeFollowCounts struct{}

func (fakeFollowCounts) Follow(context.Context, uuid.UUID, uuid.UUID) error   { return nil }
func (fakeFollowCounts) Unfollow(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (fakeFollowCounts) IsFollowing(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, nil
}
func (fakeFollowCounts) ListFollowers(context.Context, uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}
func (fakeFollowCounts) ListFollowing(context.Context, uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}
func (fakeFollowCounts) Counts(context.Context, uuid.UUID) (followmodel.FollowCounts, error) {
	return followmodel.FollowCounts{Followers: 3, Following: 1}, nil
}

// memoryCache is a minimal in-process cache for throttle tests.
type memoryCache struct {
	mu       sync.Mutex
	counters map[string]int64
}

func newMemoryCache() *memoryCache {
	return &memoryCache{counters: make(map[string]int64)}
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count, ok := m.counters[key]
	if !ok {
		return false, nil
	}
	if p, isInt := dest.(*int); isInt {
		*p = int(count)
	}
	return true, nil
}

func (m *memoryCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.counters, key)
	}
	return nil
}

func (m *memoryCache) Ping(context.Context) error { return nil }

func (m *memoryCache) Increment(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[key]++
	return m.counters[key], nil
}

func (m *memoryCache) Expire(context.Context, string, time.Duration) error { return nil }
func (m *memoryCache) TTL(context.Context, string) (time.Duration, error) { return 0, nil }

// =====================================================
// HELPERS
// =====================================================

func newTestUserService() (*fakeUserRepository, *memoryCache, ServiceInterface) {
	repo := newFakeUserRepo()
	c := newMemoryCache()
	manager := jwt.NewManager("test-secret", 15, 72)
	stats := fakeWriterStats{
		total:  map[uuid.UUID]int{},
		public: map[uuid.UUID]int{},
	}
	return repo, c, NewUserService(repo, stats, fakeFollowCounts{}, manager, c)
}

func register(t *testing.T, svc ServiceInterface, email, penName string) *model.UserDTO {
	t.Helper()
	dto, err := svc.Register(context.Background(), model.RegisterRequest{
		Email:    email,
		Password: "correct-horse-42",
		PenName:  penName,
	})
	require.NoError(t, err)
	return dto
}

// =====================================================
// REGISTER
// =====================================================

func TestRegisterCreatesWriter(t *testing.T) {
	repo, _, svc := newTestUserService()

	dto := register(t, svc, "ada@example.com", "Ada")

	assert.Equal(t, model.RoleWriter, dto.Role)
	assert.Equal(t, "ada@example.com", dto.Email)

	stored := repo.users[dto.ID]
	assert.NotEqual(t, "correct-horse-42", stored.PasswordHash)
	assert.True(t, stored.IsActive)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	_, _, svc := newTestUserService()
	register(t, svc, "ada@example.com", "Ada")

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Email:    "ada@example.com",
		Password: "another-password-1",
		PenName:  "Ada Again",
	})

	assert.ErrorIs(t, err, model.ErrEmailAlreadyExists)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	_, _, svc := newTestUserService()

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Email:    "bob@example.com",
		Password: "short",
		PenName:  "Bob",
	})

	require.Error(t, err)
}

// =====================================================
// LOGIN
// =====================================================

func TestLoginRoundTrip(t *testing.T) {
	_, _, svc := newTestUserService()
	dto := register(t, svc, "ada@example.com", "Ada")

	resp, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct-horse-42",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, dto.ID, resp.User.ID)
}

func TestRegisterMixedCaseEmail(t *testing.T) {
	// Uppercase domains pass validation only after the address is
	// folded to lowercase, and the stored email is the folded form.
	repo, _, svc := newTestUserService()

	dto := register(t, svc, "  Ada@Example.COM ", "Ada")
	assert.Equal(t, "ada@example.com", dto.Email)

	stored := repo.users[dto.ID]
	assert.Equal(t, "ada@example.com", stored.Email)
}

func TestLoginMixedCaseEmail(t *testing.T) {
	_, _, svc := newTestUserService()
	register(t, svc, "ada@example.com", "Ada")

	resp, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "ADA@EXAMPLE.COM",
		Password: "correct-horse-42",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginExpiryMatchesConfiguredAccessLifetime(t *testing.T) {
	repo := newFakeUserRepo()
	c := newMemoryCache()
	manager := jwt.NewManager("test-secret", 45, 72)
	stats := fakeWriterStats{
		total:  map[uuid.UUID]int{},
		public: map[uuid.UUID]int{},
	}
	svc := NewUserService(repo, stats, fakeFollowCounts{}, manager, c)

	register(t, svc, "ada@example.com", "Ada")
	resp, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct-horse-42",
	})
	require.NoError(t, err)

	assert.WithinDuration(t, time.Now().Add(45*time.Minute), resp.ExpiresAt, 5*time.Second)
}

func TestLoginWrongPassword(t *testing.T) {
	_, _, svc := newTestUserService()
	register(t, svc, "ada@example.com", "Ada")

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong-password-00",
	})

	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	// Unknown email and wrong password must be indistinguishable.
	_, _, svc := newTestUserService()

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever-password",
	})

	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLoginLockoutAfterRepeatedFailures(t *testing.T) {
	_, _, svc := newTestUserService()
	register(t, svc, "ada@example.com", "Ada")

	for i := 0; i < 5; i++ {
		_, err := svc.Login(context.Background(), model.LoginRequest{
			Email:    "ada@example.com",
			Password: "wrong-password-00",
		})
		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	}

	// Sixth attempt is refused even with the right password.
	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct-horse-42",
	})
	assert.ErrorIs(t, err, model.ErrAccountLocked)
}

func TestLoginSuccessClearsFailureCounter(t *testing.T) {
	_, c, svc := newTestUserService()
	register(t, svc, "ada@example.com", "Ada")

	for i := 0; i < 3; i++ {
		_, _ = svc.Login(context.Background(), model.LoginRequest{
			Email:    "ada@example.com",
			Password: "wrong-password-00",
		})
	}

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct-horse-42",
	})
	require.NoError(t, err)

	assert.Empty(t, c.counters)
}

// =====================================================
// REFRESH
// =====================================================

func TestRefreshIssuesNewPair(t *testing.T) {
	_, _, svc := newTestUserService()
	register(t, svc, "ada@example.com", "Ada")

	login, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct-horse-42",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), model.RefreshTokenRequest{
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	_, _, svc := newTestUserService()
	register(t, svc, "ada@example.com", "Ada")

	login, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct-horse-42",
	})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), model.RefreshTokenRequest{
		RefreshToken: login.AccessToken,
	})
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

// =====================================================
// PROFILES
// =====================================================

func TestUpdateProfilePartialFields(t *testing.T) {
	repo, _, svc := newTestUserService()
	dto := register(t, svc, "ada@example.com", "Ada")

	bio := "Writes about engines."
	updated, err := svc.UpdateProfile(context.Background(), dto.ID, model.UpdateProfileRequest{
		Bio: &bio,
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada", updated.PenName)
	assert.Equal(t, bio, updated.Bio)
	assert.Equal(t, bio, repo.users[dto.ID].Bio)
}

func TestWriterProfileHidesPrivateCountsFromStrangers(t *testing.T) {
	repo := newFakeUserRepo()
	c := newMemoryCache()
	manager := jwt.NewManager("test-secret", 15, 72)

	writerID := uuid.New()
	repo.users[writerID] = model.User{
		ID: writerID, Email: "ada@example.com", PenName: "Ada",
		Role: model.RoleWriter, IsActive: true,
	}

	stats := fakeWriterStats{
		total:  map[uuid.UUID]int{writerID: 7},
		public: map[uuid.UUID]int{writerID: 4},
	}
	svc := NewUserService(repo, stats, fakeFollowCounts{}, manager, c)

	// Stranger sees only public counts.
	profile, err := svc.GetWriterProfile(context.Background(), policy.Anonymous(), writerID)
	require.NoError(t, err)
	assert.Equal(t, 4, profile.PublicWritings)
	assert.Nil(t, profile.TotalWritings)

	// The owner also sees the total.
	profile, err = svc.GetWriterProfile(context.Background(), policy.Authenticated(writerID, policy.RoleWriter), writerID)
	require.NoError(t, err)
	require.NotNil(t, profile.TotalWritings)
	assert.Equal(t, 7, *profile.TotalWritings)
	assert.Equal(t, 3, profile.Followers)
}

func TestSearchWritersMatchesPenName(t *testing.T) {
	_, _, svc := newTestUserService()
	register(t, svc, "ada@example.com", "Ada Lovelace")
	register(t, svc, "bob@example.com", "Bob")

	profiles, err := svc.SearchWriters(context.Background(), model.SearchWritersRequest{Query: "love"})
	require.NoError(t, err)

	require.Len(t, profiles, 1)
	assert.Equal(t, "Ada Lovelace", profiles[0].PenName)
}

func TestSearchWritersRejectsShortQuery(t *testing.T) {
	_, _, svc := newTestUserService()

	_, err := svc.SearchWriters(context.Background(), model.SearchWritersRequest{Query: "a"})
	require.Error(t, err)
}
