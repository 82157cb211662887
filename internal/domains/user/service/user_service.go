package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	followrepo "inkwell-backend/internal/domains/follow/repository"
	"inkwell-backend/internal/domains/user/model"
	"inkwell-backend/internal/domains/user/repository"
	writingrepo "inkwell-backend/internal/domains/writing/repository"
	"inkwell-backend/internal/policy"
	"inkwell-backend/pkg/cache"
	"inkwell-backend/pkg/jwt"
	"inkwell-backend/pkg/logger"
)

const (
	bcryptCost = 12

	// Failed-login throttling: after maxFailedLogins wrong passwords
	// inside the lockout window the account is refused until the
	// counter expires.
	maxFailedLogins = 5
	lockoutWindow   = 15 * time.Minute
)

type userService struct {
	userRepo    repository.UserRepository
	writingRepo writingrepo.WritingRepository
	followRepo  followrepo.FollowRepository
	jwtManager  *jwt.Manager
	cache       cache.Cache
}

func NewUserService(
	userRepo repository.UserRepository,
	writingRepo writingrepo.WritingRepository,
	followRepo followrepo.FollowRepository,
	jwtManager *jwt.Manager,
	c cache.Cache,
) ServiceInterface {
	return &userService{
		userRepo:    userRepo,
		writingRepo: writingRepo,
		followRepo:  followRepo,
		jwtManager:  jwtManager,
		cache:       c,
	}
}

// =====================================================
// AUTHENTICATION
// =====================================================

func (s *userService) Register(ctx context.Context, req model.RegisterRequest) (*model.UserDTO, error) {
	// Step 1: Normalize, then validate
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Email must be unique
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, model.NewEmailAlreadyExistsError()
	}

	// Step 3: Hash password
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// Step 4: Persist. Everyone registers as a writer; admins are
	// promoted out of band.
	now := time.Now().UTC()
	newUser := &model.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		PenName:      req.PenName,
		Role:         model.RoleWriter,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	dto := newUser.ToDTO()
	return &dto, nil
}

func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	email := req.Email

	// Step 1: Refuse while the account is throttled
	locked, err := s.isLocked(ctx, email)
	if err != nil {
		logger.Error("failed-login counter unavailable", err)
	}
	if locked {
		return nil, model.NewAccountLockedError()
	}

	// Step 2: Look up the account. Unknown email and wrong password
	// produce the same error.
	u, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, model.NewInvalidCredentialsError()
	}
	if !u.IsActive {
		return nil, model.NewUserInactiveError()
	}

	// Step 3: Constant-time password check
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		s.recordFailedLogin(ctx, email)
		return nil, model.NewInvalidCredentialsError()
	}

	// Step 4: Success clears the throttle counter
	s.clearFailedLogins(ctx, email)

	// Step 5: Issue the token pair
	resp, err := s.issueTokens(u)
	if err != nil {
		return nil, err
	}

	go func() {
		_ = s.userRepo.UpdateLastLogin(context.Background(), u.ID)
	}()

	return resp, nil
}

func (s *userService) Refresh(ctx context.Context, req model.RefreshTokenRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	claims, err := s.jwtManager.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, model.NewInvalidTokenError()
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, model.NewInvalidTokenError()
	}

	// Re-load the account so a deactivation or role change takes
	// effect on the next refresh, not at token expiry.
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, model.NewInvalidTokenError()
	}
	if !u.IsActive {
		return nil, model.NewUserInactiveError()
	}

	return s.issueTokens(u)
}

// =====================================================
// PROFILES
// =====================================================

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.UserDTO, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == model.ErrUserNotFound {
			return nil, model.NewUserNotFoundError()
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req model.UpdateProfileRequest) (*model.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == model.ErrUserNotFound {
			return nil, model.NewUserNotFoundError()
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if req.PenName != nil {
		u.PenName = strings.TrimSpace(*req.PenName)
	}
	if req.Bio != nil {
		u.Bio = *req.Bio
	}
	u.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) GetWriterProfile(ctx context.Context, viewer policy.Viewer, writerID uuid.UUID) (*model.WriterProfileDTO, error) {
	u, err := s.userRepo.FindByID(ctx, writerID)
	if err != nil {
		if err == model.ErrUserNotFound {
			return nil, model.NewUserNotFoundError()
		}
		return nil, fmt.Errorf("load writer: %w", err)
	}

	profile, err := s.buildWriterProfile(ctx, u)
	if err != nil {
		return nil, err
	}

	// Only the owner and admins see the count that includes private
	// writings.
	if viewer.Authenticated && (viewer.ID == u.ID || viewer.IsAdmin()) {
		total, _, err := s.writingRepo.CountByAuthor(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("count writings: %w", err)
		}
		profile.TotalWritings = &total
	}

	return profile, nil
}

func (s *userService) SearchWriters(ctx context.Context, req model.SearchWritersRequest) ([]model.WriterProfileDTO, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	users, err := s.userRepo.SearchWriters(ctx, req.Query, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("search writers: %w", err)
	}

	profiles := make([]model.WriterProfileDTO, 0, len(users))
	for i := range users {
		profile, err := s.buildWriterProfile(ctx, &users[i])
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}

	return profiles, nil
}

func (s *userService) buildWriterProfile(ctx context.Context, u *model.User) (*model.WriterProfileDTO, error) {
	_, publicCount, err := s.writingRepo.CountByAuthor(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("count writings: %w", err)
	}

	counts, err := s.followRepo.Counts(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("count follows: %w", err)
	}

	return &model.WriterProfileDTO{
		ID:             u.ID,
		PenName:        u.PenName,
		Bio:            u.Bio,
		PublicWritings: publicCount,
		Followers:      counts.Followers,
		Following:      counts.Following,
		JoinedAt:       u.CreatedAt,
	}, nil
}

// =====================================================
// HELPERS
// =====================================================

func (s *userService) issueTokens(u *model.User) (*model.LoginResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(u.ID.String(), u.Email, u.Role)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(u.ID.String())
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	return &model.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(s.jwtManager.AccessExpiry()),
		User:         u.ToDTO(),
	}, nil
}

func failedLoginKey(email string) string {
	return "auth:failed:" + email
}

func (s *userService) isLocked(ctx context.Context, email string) (bool, error) {
	if s.cache == nil {
		return false, nil
	}

	var count int
	found, err := s.cache.Get(ctx, failedLoginKey(email), &count)
	if err != nil {
		return false, err
	}
	return found && count >= maxFailedLogins, nil
}

func (s *userService) recordFailedLogin(ctx context.Context, email string) {
	if s.cache == nil {
		return
	}

	key := failedLoginKey(email)
	count, err := s.cache.Increment(ctx, key)
	if err != nil {
		logger.Error("record failed login", err)
		return
	}
	// The window starts at the first failure and is not extended by
	// later ones.
	if count == 1 {
		if err := s.cache.Expire(ctx, key, lockoutWindow); err != nil {
			logger.Error("set lockout window", err)
		}
	}
}

func (s *userService) clearFailedLogins(ctx context.Context, email string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, failedLoginKey(email)); err != nil {
		logger.Error("clear failed logins", err)
	}
}
