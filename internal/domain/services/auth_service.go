package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/wapjude/CP-2-Document-Mangement-system/internal/domain/entities"
	"github.com/wapjude/CP-2-Document-Mangement-system/internal/domain/repositories"
	"github.com/wapjude/CP-2-Document-Mangement-system/internal/utils"
	"github.com/wapjude/CP-2-Document-Mangement-system/pkg/errors"
)

type AuthService struct {
	userRepo      repositories.UserRepository
	sessionRepo   repositories.SessionRepository
	tokenDuration time.Duration
}

func NewAuthService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	tokenDuration time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		sessionRepo:   sessionRepo,
		tokenDuration: tokenDuration,
	}
}

// Register creates a regular user and opens a session for it. Admin
// and fellow accounts come from the seed, not from signup.
func (s *AuthService) Register(ctx context.Context, email, password string) (*entities.User, string, error) {
	if err := utils.ValidateEmail(email); err != nil {
		return nil, "", errors.NewBadRequestError(err.Error())
	}
	if err := utils.ValidatePassword(password); err != nil {
		return nil, "", errors.NewBadRequestError(err.Error())
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", errors.NewBadRequestError("user already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", errors.NewInternalError("failed to hash password")
	}

	now := time.Now()
	user := &entities.User{
		ID:        uuid.NewString(),
		Email:     email,
		Password:  string(hashed),
		RoleID:    entities.RoleRegular,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", errors.NewInternalError("failed to create user")
	}

	token, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", errors.NewUnauthorizedError("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", errors.NewUnauthorizedError("invalid credentials")
	}

	return s.openSession(ctx, user.ID)
}

func (s *AuthService) openSession(ctx context.Context, userID string) (string, error) {
	token := utils.GenerateToken()
	session := &entities.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(s.tokenDuration),
		CreatedAt: time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return "", errors.NewInternalError("failed to create session")
	}

	return token, nil
}

// ValidateToken resolves an opaque token to its user, or fails with an
// unauthorized error. Expired sessions are removed on the way out.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*entities.User, error) {
	if token == "" {
		return nil, errors.NewUnauthenticatedError("unauthorized")
	}

	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, errors.NewUnauthenticatedError("unauthorized")
	}

	if session.ExpiresAt.Before(time.Now()) {
		s.sessionRepo.Delete(ctx, token)
		return nil, errors.NewUnauthenticatedError("unauthorized")
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, errors.NewUnauthenticatedError("unauthorized")
	}

	return user, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessionRepo.Delete(ctx, token)
}
