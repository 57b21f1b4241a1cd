package models

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Coupon redemption failures surfaced to the caller as client errors.
var (
	ErrCouponInactive      = errors.New("coupon is not active")
	ErrCouponExpired       = errors.New("coupon has expired")
	ErrCouponExhausted     = errors.New("coupon usage limit exceeded")
	ErrCouponMinOrder      = errors.New("order amount below coupon minimum")
	ErrCouponNotApplicable = errors.New("coupon not applicable to this course")
)

type Coupon struct {
	gorm.Model
	Code              string                    `gorm:"unique;not null" json:"code"`
	Description       string                    `gorm:"default:''" json:"description"`
	DiscountType      string                    `gorm:"not null" json:"discount_type"` // PERCENTAGE, FIXED
	DiscountValue     float64                   `gorm:"not null" json:"discount_value"`
	MinOrderAmount    float64                   `gorm:"default:0" json:"min_order_amount"`
	MaxUses           *int                      `json:"max_uses"` // nil means unlimited
	CurrentUses       int                       `gorm:"default:0" json:"current_uses"`
	ValidFrom         time.Time                 `gorm:"not null" json:"valid_from"`
	ValidUntil        time.Time                 `gorm:"not null" json:"valid_until"`
	IsActive          bool                      `gorm:"default:true" json:"is_active"`
	ApplicableCourses datatypes.JSONSlice[uint] `json:"applicable_courses"` // empty means any course
	IsDeleted         bool                      `gorm:"default:false" json:"-"`
}

// Discount validates the coupon against an order and returns the discount
// amount, capped at the order amount. Validation order matches the public
// validate endpoint: active flag, validity window, usage limit, minimum
// order, course applicability.
func (cp *Coupon) Discount(now time.Time, orderAmount float64, courseID uint) (float64, error) {
	if !cp.IsActive {
		return 0, ErrCouponInactive
	}
	if now.Before(cp.ValidFrom) || now.After(cp.ValidUntil) {
		return 0, ErrCouponExpired
	}
	if cp.MaxUses != nil && cp.CurrentUses >= *cp.MaxUses {
		return 0, ErrCouponExhausted
	}
	if orderAmount < cp.MinOrderAmount {
		return 0, ErrCouponMinOrder
	}
	if courseID != 0 && len(cp.ApplicableCourses) > 0 && !cp.appliesTo(courseID) {
		return 0, ErrCouponNotApplicable
	}

	var discount float64
	if cp.DiscountType == "PERCENTAGE" {
		discount = orderAmount * cp.DiscountValue / 100
	} else {
		discount = cp.DiscountValue
	}

	if discount > orderAmount {
		discount = orderAmount
	}
	return discount, nil
}

func (cp *Coupon) appliesTo(courseID uint) bool {
	for _, id := range cp.ApplicableCourses {
		if id == courseID {
			return true
		}
	}
	return false
}
