package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"inkwell-backend/internal/domains/follow/model"
	"inkwell-backend/internal/domains/follow/repository"
	usermodel "inkwell-backend/internal/domains/user/model"
	userrepo "inkwell-backend/internal/domains/user/repository"
	writingmodel "inkwell-backend/internal/domains/writing/model"
	writingrepo "inkwell-backend/internal/domains/writing/repository"
)

const defaultFeedLimit = 20

type followService struct {
	followRepo  repository.FollowRepository
	userRepo    userrepo.UserRepository
	writingRepo writingrepo.WritingRepository
}

func NewFollowService(
	followRepo repository.FollowRepository,
	userRepo userrepo.UserRepository,
	writingRepo writingrepo.WritingRepository,
) ServiceInterface {
	return &followService{
		followRepo:  followRepo,
		userRepo:    userRepo,
		writingRepo: writingRepo,
	}
}

func (s *followService) Follow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	if followerID == followeeID {
		return model.NewSelfFollowError()
	}

	// The followee must be a real, active account.
	followee, err := s.userRepo.FindByID(ctx, followeeID)
	if err != nil {
		if err == usermodel.ErrUserNotFound {
			return model.NewWriterNotFoundError()
		}
		return fmt.Errorf("load followee: %w", err)
	}
	if !followee.IsActive {
		return model.NewWriterNotFoundError()
	}

	return s.followRepo.Follow(ctx, followerID, followeeID)
}

func (s *followService) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	if followerID == followeeID {
		return model.NewSelfFollowError()
	}
	return s.followRepo.Unfollow(ctx, followerID, followeeID)
}

func (s *followService) IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	return s.followRepo.IsFollowing(ctx, followerID, followeeID)
}

func (s *followService) Followers(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.followRepo.ListFollowers(ctx, userID)
}

func (s *followService) Following(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.followRepo.ListFollowing(ctx, userID)
}

func (s *followService) Feed(ctx context.Context, userID uuid.UUID, limit int) ([]writingmodel.WritingCardResponse, error) {
	if limit < 1 || limit > 100 {
		limit = defaultFeedLimit
	}

	following, err := s.followRepo.ListFollowing(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list following: %w", err)
	}
	if len(following) == 0 {
		return []writingmodel.WritingCardResponse{}, nil
	}

	// Only public writings appear in the feed, whatever the follower's
	// role is.
	writings, err := s.writingRepo.ListPublicByAuthors(ctx, following, limit)
	if err != nil {
		return nil, fmt.Errorf("load feed: %w", err)
	}

	cards := make([]writingmodel.WritingCardResponse, 0, len(writings))
	for _, w := range writings {
		cards = append(cards, writingmodel.NewWritingCardResponse(w))
	}

	return cards, nil
}
