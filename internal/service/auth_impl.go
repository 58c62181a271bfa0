package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shop-server/internal/config"
	"shop-server/internal/interfaces"
	"shop-server/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Compile-time check to ensure authServiceImpl implements AuthService
var _ AuthService = (*authServiceImpl)(nil)

type authServiceImpl struct {
	userRepo interfaces.UserRepository
	cfg      *config.Config
	logger   *zap.Logger
}

// NewAuthService creates a new instance of authServiceImpl.
func NewAuthService(userRepo interfaces.UserRepository, cfg *config.Config, logger *zap.Logger) AuthService {
	return &authServiceImpl{
		userRepo: userRepo,
		cfg:      cfg,
		logger:   logger.Named("AuthService"),
	}
}

// Register creates a new user and returns a token for the fresh account.
func (s *authServiceImpl) Register(ctx context.Context, username, password, name string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", fmt.Errorf("username and password are required: %w", models.ErrInvalidInput)
	}

	hash, err := hashPassword(password)
	if err != nil {
		s.logger.Error("Failed to hash password during registration", zap.Error(err), zap.String("username", username))
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Name:         name,
	}

	// Uniqueness is enforced by the repository's conditional insert, so
	// there is no check-then-create window here.
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, models.ErrUserAlreadyExists) {
			s.logger.Warn("Registration attempt for existing username", zap.String("username", username))
			return "", err
		}
		s.logger.Error("Failed to create user via repository", zap.Error(err), zap.String("username", username))
		return "", err
	}

	s.logger.Info("User registered successfully", zap.String("username", username))
	return s.IssueToken(username)
}

// Login authenticates a user and returns a token.
func (s *authServiceImpl) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			s.logger.Warn("Login failed: user not found", zap.String("username", username))
			return "", models.ErrInvalidCredentials
		}
		s.logger.Error("Login failed: error getting user from repository", zap.Error(err), zap.String("username", username))
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	if !checkPasswordHash(password, user.PasswordHash) {
		s.logger.Warn("Login failed: invalid password", zap.String("username", username))
		return "", models.ErrInvalidCredentials
	}

	s.logger.Info("User logged in successfully", zap.String("username", username))
	return s.IssueToken(username)
}

// IssueToken signs a claim for the subject with the configured TTL.
func (s *authServiceImpl) IssueToken(username string) (string, error) {
	now := time.Now()
	claims := models.Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		s.logger.Error("Failed to sign token", zap.Error(err), zap.String("username", username))
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates a token string. Expiry is checked with
// the jwt/v5 default validator, without extra leeway.
func (s *authServiceImpl) VerifyToken(tokenString string) (*models.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, models.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, models.ErrTokenMalformed
		default:
			return nil, models.ErrTokenInvalid
		}
	}

	claims, ok := token.Claims.(*models.Claims)
	if !ok || !token.Valid || claims.Username == "" {
		return nil, models.ErrTokenInvalid
	}
	return claims, nil
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func checkPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
