package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"duckstore/internal/apperrors"
	"duckstore/internal/models"
	"duckstore/internal/repositories"
	"duckstore/internal/validation"
)

// PasswordCost is the bcrypt work factor used for every stored password.
const PasswordCost = 10

// TokenClaims is the payload of an issued token.
type TokenClaims struct {
	ID string `json:"id"`
	jwt.StandardClaims
}

// AuthService handles registration, login, and token verification.
type AuthService struct {
	userRepo  repositories.UserRepository
	validator *validation.Validator
	logger    *slog.Logger
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, v *validation.Validator, logger *slog.Logger, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		validator: v,
		logger:    logger,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

// Register validates the payload, rejects taken emails, hashes the password,
// and stores the user. It returns the new user's ID.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (string, error) {
	if err := s.validator.ValidateRegistration(req); err != nil {
		return "", err
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", apperrors.Persistence(err, "failed to check email")
	}
	if existing != nil {
		return "", apperrors.ErrDuplicateEmail
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return "", apperrors.Persistence(err, "failed to hash password")
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent registration can pass the existence check first.
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return "", apperrors.ErrDuplicateEmail
		}
		return "", apperrors.Persistence(err, "failed to register user")
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user.ID, nil
}

// Login checks the credentials and issues a signed token.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResult, error) {
	if err := s.validator.ValidateLogin(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.Persistence(err, "failed to look up user")
	}
	if user == nil || !CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, apperrors.Persistence(err, "failed to generate token")
	}

	return &models.LoginResult{UserID: user.ID, Token: token}, nil
}

// IssueToken signs a token for userID that expires after the configured TTL.
func (s *AuthService) IssueToken(userID string) (string, error) {
	now := s.now()
	claims := TokenClaims{
		ID: userID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(s.tokenTTL).Unix(),
			IssuedAt:  now.Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

// VerifyToken parses and validates a token, returning its claims.
func (s *AuthService) VerifyToken(tokenString string) (*TokenClaims, error) {
	if tokenString == "" {
		return nil, apperrors.ErrMissingToken
	}

	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, apperrors.ErrInvalidToken.Wrap(err)
	}
	if !token.Valid || claims.ID == "" {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

// HashPassword hashes a password with a random salt at PasswordCost.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches hash. The comparison is
// constant time.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
