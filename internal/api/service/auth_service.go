package service

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CodeSender delivers a confirmation code out-of-band. The auth service fires
// it in a goroutine and never fails issuance on a transport error.
type CodeSender interface {
	SendConfirmationCode(recipient, code string) error
}

// Claims carried by both token types; Type distinguishes access from refresh.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	Type     string `json:"type"`
	jwt.RegisteredClaims
}

// TokenPair is the credential pair returned by a successful exchange.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthService interface {
	// RequestCode issues a fresh confirmation code for the email, replacing
	// any earlier one, and dispatches it by mail.
	RequestCode(ctx context.Context, email string) error
	// ExchangeCode verifies the code and returns a token pair, creating the
	// user on first exchange. Retrying with the same identity is idempotent.
	ExchangeCode(ctx context.Context, username, email, code string) (*TokenPair, error)
	RefreshAccessToken(refreshToken string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
	AccessTokenTTL() time.Duration
}

type authService struct {
	log             *slog.Logger
	userRepo        repository.UserRepository
	codeRepo        repository.CodeRepository
	sender          CodeSender
	jwtSecret       string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

func NewAuthService(
	log *slog.Logger,
	userRepo repository.UserRepository,
	codeRepo repository.CodeRepository,
	sender CodeSender,
	cfg *config.Config,
) AuthService {
	return &authService{
		log:             log,
		userRepo:        userRepo,
		codeRepo:        codeRepo,
		sender:          sender,
		jwtSecret:       cfg.JWTSecret,
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
	}
}

func (s *authService) AccessTokenTTL() time.Duration {
	return s.accessTokenTTL
}

func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// generateCode returns a 32-character hex token.
func generateCode() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

func (s *authService) RequestCode(ctx context.Context, email string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}

	code := &models.ConfirmationCode{
		Email: email,
		Code:  generateCode(),
	}
	// one live code per email: the replace drops the previous one
	if err := s.codeRepo.Replace(code); err != nil {
		return err
	}

	// Dispatch is fire-and-forget. The stored code stays valid either way, so
	// a flaky mail server must not fail registration.
	go func(recipient, value string) {
		if err := s.sender.SendConfirmationCode(recipient, value); err != nil {
			s.log.Error("failed to send confirmation code", "email", recipient, "error", err.Error())
		}
	}(email, code.Code)

	return nil
}

func (s *authService) ExchangeCode(ctx context.Context, username, email, code string) (*TokenPair, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	stored, err := s.codeRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCodeNotFound
		}
		return nil, err
	}
	// Exact match only. A mismatch leaves the stored code untouched so the
	// legitimate owner can still exchange it.
	if stored.Code != code {
		return nil, ErrCodeInvalid
	}

	user, err := s.getOrCreateUser(username, email)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// getOrCreateUser makes the exchange idempotent: a retry with an email that
// already registered returns the existing account instead of a uniqueness
// conflict.
func (s *authService) getOrCreateUser(username, email string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// the username must not belong to a different email
	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrNameInUse
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = &models.User{
		ID:       uuid.New().String(),
		Username: username,
		Email:    email,
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	s.log.Info("registered new user", "username", username)
	return user, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
		Type:     "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) generateRefreshToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Type:   "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) RefreshAccessToken(refreshTokenString string) (string, error) {
	claims, err := s.parseToken(refreshTokenString)
	if err != nil {
		return "", err
	}
	if claims.Type != "refresh" {
		return "", ErrInvalidToken
	}

	// reload so a role change since issuance lands in the new access token
	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return s.generateAccessToken(user)
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Type != "access" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *authService) parseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
