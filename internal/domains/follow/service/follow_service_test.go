package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell-backend/internal/domains/follow/model"
	usermodel "inkwell-backend/internal/domains/user/model"
	writingmodel "inkwell-backend/internal/domains/writing/model"
	"inkwell-backend/internal/policy"
)

// =====================================================
// FAKES
// =====================================================

type edge struct{ follower, followee uuid.UUID }

type fakeFollowRepository struct {
	edges map[edge]struct{}
}

func newFakeFollowRepo() *fakeFollowRepository {
	return &fakeFollowRepository{edges: make(map[edge]struct{})}
}

func (f *fakeFollowRepository) Follow(_ context.Context, followerID, followeeID uuid.UUID) error {
	f.edges[edge{followerID, followeeID}] = struct{}{}
	return nil
}

func (f *fakeFollowRepository) Unfollow(_ context.Context, followerID, followeeID uuid.UUID) error {
	delete(f.edges, edge{followerID, followeeID})
	return nil
}

func (f *fakeFollowRepository) IsFollowing(_ context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	_, ok := f.edges[edge{followerID, followeeID}]
	return ok, nil
}

func (f *fakeFollowRepository) ListFollowers(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	out := []uuid.UUID{}
	for e := range f.edges {
		if e.followee == userID {
			out = append(out, e.follower)
		}
	}
	return out, nil
}

func (f *fakeFollowRepository) ListFollowing(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	out := []uuid.UUID{}
	for e := range f.edges {
		if e.follower == userID {
			out = append(out, e.followee)
		}
	}
	return out, nil
}

func (f *fakeFollowRepository) Counts(_ context.Context, userID uuid.UUID) (model.FollowCounts, error) {
	followers, _ := f.ListFollowers(context.Background(), userID)
	following, _ := f.ListFollowing(context.Background(), userID)
	return model.FollowCounts{Followers: len(followers), Following: len(following)}, nil
}

type fakeUserDirectory struct {
	users map[uuid.UUID]usermodel.User
}

func (f fakeUserDirectory) Create(context.Context, *usermodel.User) error { return nil }
func (f fakeUserDirectory) FindByID(_ context.Context, id uuid.UUID) (*usermodel.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, usermodel.ErrUserNotFound
	}
	return &u, nil
}
func (f fakeUserDirectory) FindByEmail(context.Context, string) (*usermodel.User, error) {
	return nil, usermodel.ErrUserNotFound
}
func (f fakeUserDirectory) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }
func (f fakeUserDirectory) Update(context.Context, *usermodel.User) error       { return nil }
func (f fakeUserDirectory) UpdateLastLogin(context.Context, uuid.UUID) error    { return nil }
func (f fakeUserDirectory) SearchWriters(context.Context, string, int) ([]usermodel.User, error) {
	return nil, nil
}

type fakeFeedSource struct {
	writings []writingmodel.Writing
}

func (f fakeFeedSource) Create(context.Context, *writingmodel.Writing) error { return nil }
func (f fakeFeedSource) GetByID(context.Context, uuid.UUID) (*writingmodel.Writing, error) {
	return nil, writingmodel.ErrWritingNotFound
}
func (f fakeFeedSource) Update(context.Context, *writingmodel.Writing) error { return nil }
func (f fakeFeedSource) Delete(context.Context, uuid.UUID) error             { return nil }
func (f fakeFeedSource) List(context.Context, policy.ListScope, policy.Viewer, policy.Filters, int, int) ([]writingmodel.Writing, int, error) {
	return nil, 0, nil
}
func (f fakeFeedSource) CountByAuthor(context.Context, uuid.UUID) (int, int, error) {
	return 0, 0, nil
}
func (f fakeFeedSource) ListPublicByAuthors(_ context.Context, authorIDs []uuid.UUID, limit int) ([]writingmodel.Writing, error) {
	wanted := make(map[uuid.UUID]struct{}, len(authorIDs))
	for _, id := range authorIDs {
		wanted[id] = struct{}{}
	}
	out := []writingmodel.Writing{}
	for _, w := range f.writings {
		if _, ok := wanted[w.AuthorID]; ok && w.IsPublic() && len(out) < limit {
			out = append(out, w)
		}
	}
	return out, nil
}
func (f fakeFeedSource) ListPublicSince(context.Context, time.Time) ([]writingmodel.Writing, error) {
	return nil, nil
}

// =====================================================
// TESTS
// =====================================================

func activeWriter(id uuid.UUID) usermodel.User {
	return usermodel.User{ID: id, Role: usermodel.RoleWriter, IsActive: true}
}

func newTestFollowService(users map[uuid.UUID]usermodel.User, writings []writingmodel.Writing) (*fakeFollowRepository, ServiceInterface) {
	repo := newFakeFollowRepo()
	svc := NewFollowService(repo, fakeUserDirectory{users: users}, fakeFeedSource{writings: writings})
	return repo, svc
}

func TestFollowIsIdempotent(t *testing.T) {
	ada, bob := uuid.New(), uuid.New()
	repo, svc := newTestFollowService(map[uuid.UUID]usermodel.User{
		ada: activeWriter(ada), bob: activeWriter(bob),
	}, nil)

	require.NoError(t, svc.Follow(context.Background(), ada, bob))
	require.NoError(t, svc.Follow(context.Background(), ada, bob))

	assert.Len(t, repo.edges, 1)
}

func TestSelfFollowRejected(t *testing.T) {
	ada := uuid.New()
	_, svc := newTestFollowService(map[uuid.UUID]usermodel.User{ada: activeWriter(ada)}, nil)

	err := svc.Follow(context.Background(), ada, ada)
	assert.ErrorIs(t, err, model.ErrSelfFollow)
}

func TestFollowUnknownWriter(t *testing.T) {
	ada := uuid.New()
	_, svc := newTestFollowService(map[uuid.UUID]usermodel.User{ada: activeWriter(ada)}, nil)

	err := svc.Follow(context.Background(), ada, uuid.New())
	assert.ErrorIs(t, err, model.ErrWriterNotFound)
}

func TestUnfollowMissingEdgeIsNoop(t *testing.T) {
	ada, bob := uuid.New(), uuid.New()
	_, svc := newTestFollowService(map[uuid.UUID]usermodel.User{
		ada: activeWriter(ada), bob: activeWriter(bob),
	}, nil)

	assert.NoError(t, svc.Unfollow(context.Background(), ada, bob))
}

func TestFeedShowsOnlyFollowedPublicWritings(t *testing.T) {
	ada, bob, carol := uuid.New(), uuid.New(), uuid.New()

	writings := []writingmodel.Writing{
		{ID: uuid.New(), Title: "Bob public", AuthorID: bob, Visibility: writingmodel.VisibilityPublic},
		{ID: uuid.New(), Title: "Bob private", AuthorID: bob, Visibility: writingmodel.VisibilityPrivate},
		{ID: uuid.New(), Title: "Carol public", AuthorID: carol, Visibility: writingmodel.VisibilityPublic},
	}

	_, svc := newTestFollowService(map[uuid.UUID]usermodel.User{
		ada: activeWriter(ada), bob: activeWriter(bob), carol: activeWriter(carol),
	}, writings)

	require.NoError(t, svc.Follow(context.Background(), ada, bob))

	feed, err := svc.Feed(context.Background(), ada, 0)
	require.NoError(t, err)

	require.Len(t, feed, 1)
	assert.Equal(t, "Bob public", feed[0].Title)
}

func TestFeedEmptyWhenFollowingNobody(t *testing.T) {
	ada := uuid.New()
	_, svc := newTestFollowService(map[uuid.UUID]usermodel.User{ada: activeWriter(ada)}, nil)

	feed, err := svc.Feed(context.Background(), ada, 10)
	require.NoError(t, err)
	assert.Empty(t, feed)
}
