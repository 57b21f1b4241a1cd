package models

import (
	"time"

	"gorm.io/gorm"
)

type OTP struct {
	gorm.Model
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Email     string    `gorm:"size:100;index" json:"email,omitempty"`
	Code      string    `gorm:"size:6;not null" json:"code"`
	Purpose   string    `gorm:"size:50;default:'EMAIL_VERIFICATION'" json:"purpose"` // EMAIL_VERIFICATION, PASSWORD_RESET
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	IsUsed    bool      `gorm:"default:false" json:"is_used"`
	IsDeleted bool      `gorm:"default:false" json:"-"`
}

// Expired reports whether the OTP is no longer redeemable at now.
func (o *OTP) Expired(now time.Time) bool {
	return o.IsUsed || now.After(o.ExpiresAt)
}
