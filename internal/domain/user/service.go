// internal/domain/user/service.go
package user

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/baxtbl4b/app-goroshina-sub001/internal/config"
	"github.com/baxtbl4b/app-goroshina-sub001/internal/pkg/auth"
	"github.com/baxtbl4b/app-goroshina-sub001/internal/pkg/sms"
)

// Service handles account business logic: SMS-code login and profile
type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
	jwtManager  *auth.JWTManager
	smsProvider sms.Provider
	logger      *logrus.Logger
}

// NewService creates a new user service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, provider sms.Provider, logger *logrus.Logger) *Service {
	return &Service{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
		jwtManager:  auth.NewJWTManager(cfg),
		smsProvider: provider,
		logger:      logger,
	}
}

// RequestCodeRequest represents a login-code request
type RequestCodeRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// VerifyCodeRequest represents a code verification request
type VerifyCodeRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// TokenResponse represents issued tokens with the account
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	City  *string `json:"city"`
}

// RequestCode generates a verification code, stores its hash with a TTL and
// sends it to the phone. Only the bcrypt hash ever leaves this function.
func (s *Service) RequestCode(ctx context.Context, phone string) error {
	phone = NormalizePhone(phone)
	if len(phone) < 10 {
		return fmt.Errorf("invalid phone number")
	}

	code, err := s.generateCode()
	if err != nil {
		return fmt.Errorf("failed to generate verification code: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), s.config.Security.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash verification code: %w", err)
	}

	key := fmt.Sprintf("sms-code:%s", phone)
	if err := s.redisClient.Set(ctx, key, string(hash), s.config.Security.SMSCodeExpiry).Err(); err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}

	message := sms.Message{
		To:   phone,
		Text: fmt.Sprintf("Код подтверждения: %s", code),
	}
	if err := s.smsProvider.Send(ctx, message); err != nil {
		return fmt.Errorf("failed to send verification code: %w", err)
	}

	return nil
}

// VerifyCode checks a submitted code against the stored hash, creates the
// account on first login and issues tokens. The stored code is consumed on
// success.
func (s *Service) VerifyCode(ctx context.Context, phone, code string) (*TokenResponse, error) {
	phone = NormalizePhone(phone)
	key := fmt.Sprintf("sms-code:%s", phone)

	hash, err := s.redisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("verification code expired or not requested")
	} else if err != nil {
		return nil, fmt.Errorf("failed to read verification code: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) != nil {
		return nil, fmt.Errorf("invalid verification code")
	}

	if err := s.redisClient.Del(ctx, key).Err(); err != nil {
		s.logger.WithError(err).Warn("Failed to consume verification code")
	}

	// Find or create the account
	now := time.Now().UTC()
	var account User
	result := s.db.Where("phone = ?", phone).First(&account)
	if result.Error == gorm.ErrRecordNotFound {
		account = User{
			Phone:           phone,
			PhoneVerifiedAt: &now,
			LastLoginAt:     &now,
		}
		if err := s.db.Create(&account).Error; err != nil {
			return nil, fmt.Errorf("failed to create account: %w", err)
		}
	} else if result.Error != nil {
		return nil, fmt.Errorf("failed to look up account: %w", result.Error)
	} else {
		account.LastLoginAt = &now
		if account.PhoneVerifiedAt == nil {
			account.PhoneVerifiedAt = &now
		}
		s.db.Save(&account)
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(account.ID, account.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(account.ID, account.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         &account,
	}, nil
}

// RefreshTokens issues a fresh token pair from a valid refresh token
func (s *Service) RefreshTokens(refreshToken string) (*TokenResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token")
	}

	account, err := s.GetProfile(claims.UserID)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(account.ID, account.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	newRefreshToken, err := s.jwtManager.GenerateRefreshToken(account.ID, account.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		User:         account,
	}, nil
}

// GetProfile retrieves an account by id
func (s *Service) GetProfile(userID uint) (*User, error) {
	var account User
	result := s.db.Where("id = ? AND is_active = ?", userID, true).First(&account)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("account not found")
		}
		return nil, fmt.Errorf("failed to retrieve account: %w", result.Error)
	}

	return &account, nil
}

// UpdateProfile updates the editable profile fields
func (s *Service) UpdateProfile(userID uint, req *UpdateProfileRequest) (*User, error) {
	account, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Email != nil {
		account.Email = *req.Email
	}
	if req.City != nil {
		account.City = *req.City
	}

	if err := s.db.Save(account).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return account, nil
}

// generateCode produces a fixed-length numeric verification code
func (s *Service) generateCode() (string, error) {
	length := s.config.Security.SMSCodeLength
	if length < 4 {
		length = 4
	}

	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		code[i] = byte('0' + n.Int64())
	}

	return string(code), nil
}
