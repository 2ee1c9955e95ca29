// internal/domain/user/entity.go
package user

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User represents the account entity. Accounts are keyed by phone number;
// login happens through an SMS verification code, never a password.
type User struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Phone           string         `gorm:"uniqueIndex;not null;size:20" json:"phone"`
	Name            string         `gorm:"size:100" json:"name"`
	Email           string         `gorm:"size:255" json:"email,omitempty"`
	City            string         `gorm:"size:100" json:"city,omitempty"`
	IsActive        bool           `gorm:"default:true" json:"is_active"`
	PhoneVerifiedAt *time.Time     `json:"phone_verified_at"`
	LastLoginAt     *time.Time     `json:"last_login_at"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate hook to normalize the phone before user creation
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.Phone = NormalizePhone(u.Phone)
	return nil
}

// GetDisplayName returns the name or the phone as a fallback
func (u *User) GetDisplayName() string {
	if strings.TrimSpace(u.Name) != "" {
		return u.Name
	}
	return u.Phone
}

// NormalizePhone strips formatting characters and leading 8 -> +7
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' || r == '+' {
			b.WriteRune(r)
		}
	}
	normalized := b.String()
	if strings.HasPrefix(normalized, "8") && len(normalized) == 11 {
		normalized = "+7" + normalized[1:]
	}
	return normalized
}
