package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	repository "github.com/kollapso/booking/internal/database/postgres"
	"github.com/kollapso/booking/internal/entity"
	"github.com/kollapso/booking/pkg/auth"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// SignupRequest carries the registration form
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        *entity.User `json:"user"`
}

// TokenRevoker keeps revoked tokens until their natural expiry.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, until time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type authService struct {
	userRepo   repository.UserRepository
	tokens     *auth.TokenManager
	revoker    TokenRevoker
	adminEmail string
}

// NewAuthService creates a new AuthService. adminEmail is the one configured
// administrator address; a matching registration becomes admin, once, at
// account creation.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager, revoker TokenRevoker, adminEmail string) AuthService {
	return &authService{
		userRepo:   userRepo,
		tokens:     tokens,
		revoker:    revoker,
		adminEmail: strings.ToLower(strings.TrimSpace(adminEmail)),
	}
}

func (s *authService) Signup(ctx context.Context, req *SignupRequest) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Role is derived here and never re-evaluated afterwards
	role := entity.RoleUser
	if email == s.adminEmail {
		role = entity.RoleAdmin
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Email:        email,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("User registered")

	return user, nil
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, entity.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, entity.ErrInvalidCredentials
	}

	token, err := s.tokens.CreateAccessToken(user.ID, string(user.Role), user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	return &LoginResponse{AccessToken: token, User: user}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.ParseValidate(token)
	if err != nil {
		return entity.ErrUnauthenticated
	}

	if s.revoker == nil {
		return nil
	}
	return s.revoker.Revoke(ctx, token, time.Until(claims.ExpiresAt.Time))
}

// Verify turns a bearer token into a validated Identity. The role comes from
// the verified claims fixed at signup, never from client-supplied fields.
func (s *authService) Verify(ctx context.Context, token string) (*entity.Identity, error) {
	claims, err := s.tokens.ParseValidate(token)
	if err != nil {
		return nil, entity.ErrUnauthenticated
	}

	if s.revoker != nil {
		revoked, err := s.revoker.IsRevoked(ctx, token)
		if err != nil {
			logrus.Errorf("Failed to check token revocation: %v", err)
		} else if revoked {
			return nil, entity.ErrUnauthenticated
		}
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, entity.ErrUnauthenticated
	}

	return &entity.Identity{
		ID:    userID,
		Email: claims.Email,
		Role:  entity.Role(claims.Role),
	}, nil
}
