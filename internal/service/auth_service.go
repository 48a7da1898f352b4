package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/tutor-crm/backend/internal/model"
	"github.com/tutor-crm/backend/internal/repository"
)

// TokenPair access-токен и refresh-токен
type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

type accessClaims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

type AuthService struct {
	userRepo   *repository.UserRepository
	logger     *zap.Logger
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(
	userRepo *repository.UserRepository,
	logger *zap.Logger,
	secret string,
	accessTTL, refreshTTL time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		logger:     logger,
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Login проверяет пару email/пароль и выдаёт пару токенов.
// Неизвестный email и неверный пароль неразличимы для вызывающего.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.issuePair(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in", zap.Int64("user_id", user.ID))
	return pair, nil
}

// Refresh меняет refresh-токен на новую пару токенов. Старый токен
// удаляется: каждый refresh-токен одноразовый.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	token, err := uuid.Parse(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	stored, err := s.userRepo.GetRefreshToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}
	if stored == nil {
		return nil, ErrInvalidToken
	}

	if err := s.userRepo.DeleteRefreshToken(ctx, token); err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}

	if stored.IsExpired() {
		return nil, ErrTokenExpired
	}

	return s.issuePair(ctx, stored.UserID)
}

// Logout отзывает refresh-токен
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	token, err := uuid.Parse(refreshToken)
	if err != nil {
		return ErrInvalidToken
	}

	if err := s.userRepo.DeleteRefreshToken(ctx, token); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Register создаёт аккаунт репетитора
func (s *AuthService) Register(ctx context.Context, email, password string) (*model.User, error) {
	if email == "" || len(password) < 8 {
		return nil, fmt.Errorf("%w: email and password of 8+ characters are required", ErrValidation)
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email already taken", ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{Email: email, PasswordHash: string(hash)}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.Int64("user_id", user.ID))
	return user, nil
}

// ParseAccessToken проверяет подпись и срок access-токена,
// возвращает id пользователя
func (s *AuthService) ParseAccessToken(tokenStr string) (int64, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &accessClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}

	return claims.UserID, nil
}

func (s *AuthService) issuePair(ctx context.Context, userID int64) (*TokenPair, error) {
	claims := accessClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refresh := &model.RefreshToken{
		Token:     uuid.New(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}
	if err := s.userRepo.SaveRefreshToken(ctx, refresh); err != nil {
		return nil, err
	}

	return &TokenPair{Token: access, RefreshToken: refresh.Token.String()}, nil
}
