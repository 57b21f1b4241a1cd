package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func validCoupon() *Coupon {
	return &Coupon{
		Code:          "WELCOME10",
		DiscountType:  "PERCENTAGE",
		DiscountValue: 10,
		ValidFrom:     time.Now().Add(-time.Hour),
		ValidUntil:    time.Now().Add(time.Hour),
		IsActive:      true,
	}
}

func TestDiscountPercentage(t *testing.T) {
	cp := validCoupon()

	discount, err := cp.Discount(time.Now(), 500, 0)

	require.NoError(t, err)
	assert.Equal(t, float64(50), discount)
}

func TestDiscountFixed(t *testing.T) {
	cp := validCoupon()
	cp.DiscountType = "FIXED"
	cp.DiscountValue = 200

	discount, err := cp.Discount(time.Now(), 500, 0)

	require.NoError(t, err)
	assert.Equal(t, float64(200), discount)
}

func TestDiscountCappedAtOrderAmount(t *testing.T) {
	cp := validCoupon()
	cp.DiscountType = "FIXED"
	cp.DiscountValue = 800

	discount, err := cp.Discount(time.Now(), 500, 0)

	require.NoError(t, err)
	assert.Equal(t, float64(500), discount)
}

func TestDiscountInactive(t *testing.T) {
	cp := validCoupon()
	cp.IsActive = false

	_, err := cp.Discount(time.Now(), 500, 0)

	assert.ErrorIs(t, err, ErrCouponInactive)
}

func TestDiscountOutsideWindow(t *testing.T) {
	cp := validCoupon()

	_, err := cp.Discount(cp.ValidUntil.Add(time.Minute), 500, 0)
	assert.ErrorIs(t, err, ErrCouponExpired)

	_, err = cp.Discount(cp.ValidFrom.Add(-time.Minute), 500, 0)
	assert.ErrorIs(t, err, ErrCouponExpired)
}

func TestDiscountExhausted(t *testing.T) {
	cp := validCoupon()
	limit := 5
	cp.MaxUses = &limit
	cp.CurrentUses = 5

	_, err := cp.Discount(time.Now(), 500, 0)

	assert.ErrorIs(t, err, ErrCouponExhausted)
}

func TestDiscountBelowMinimumOrder(t *testing.T) {
	cp := validCoupon()
	cp.MinOrderAmount = 1000

	_, err := cp.Discount(time.Now(), 500, 0)

	assert.ErrorIs(t, err, ErrCouponMinOrder)
}

func TestDiscountCourseApplicability(t *testing.T) {
	cp := validCoupon()
	cp.ApplicableCourses = datatypes.NewJSONSlice([]uint{3, 9})

	_, err := cp.Discount(time.Now(), 500, 5)
	assert.ErrorIs(t, err, ErrCouponNotApplicable)

	discount, err := cp.Discount(time.Now(), 500, 9)
	require.NoError(t, err)
	assert.Equal(t, float64(50), discount)
}

func TestDiscountEmptyCourseListAppliesAnywhere(t *testing.T) {
	cp := validCoupon()

	_, err := cp.Discount(time.Now(), 500, 42)

	assert.NoError(t, err)
}
