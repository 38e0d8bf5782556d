package services

import (
	"context"
	"fmt"

	"github.com/mattertouch/storefront/app/models"
	"github.com/mattertouch/storefront/app/repositories"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo repositories.UserRepositoryImpl
	cartRepo repositories.CartRepositoryImpl
}

func NewAuthService(userRepo repositories.UserRepositoryImpl, cartRepo repositories.CartRepositoryImpl) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cartRepo: cartRepo,
	}
}

// Register creates the account and provisions its empty cart in the same
// call, so the first GET /api/cart never has to create one.
func (s *AuthService) Register(ctx context.Context, email, password string, name *string) (*models.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hashed),
		Name:     name,
		Role:     models.RoleCustomer,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.cartRepo.Create(ctx, &models.Cart{UserID: user.ID}); err != nil {
		return nil, fmt.Errorf("failed to provision cart for user %s: %w", user.ID, err)
	}
	return user, nil
}

// Login answers ErrInvalidCredentials for both an unknown email and a wrong
// password, so callers cannot probe which of the two failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// VerifyPassword re-checks the current session's password, used to gate
// destructive admin actions behind a fresh confirmation.
func (s *AuthService) VerifyPassword(ctx context.Context, userID, password string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to look up user %s: %w", userID, err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
