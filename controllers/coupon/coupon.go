package couponController

import (
	"errors"
	"log"
	"strings"
	"time"

	"nexora/database"
	"nexora/middleware"
	"nexora/models"
	couponValidator "nexora/validators/coupon"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// ValidateCoupon checks a code against an order and quotes the discount
func ValidateCoupon(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCouponCheck").(*couponValidator.ValidateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var coupon models.Coupon
	if err := db.Where("code = ? AND is_deleted = ?", strings.ToUpper(reqData.Code), false).First(&coupon).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Coupon not found!", nil)
	}

	discount, err := coupon.Discount(time.Now(), reqData.OrderAmount, reqData.CourseID)
	if err != nil {
		return couponErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Coupon is valid!", fiber.Map{
		"code":         coupon.Code,
		"discount":     discount,
		"final_amount": reqData.OrderAmount - discount,
	})
}

// CreateCoupon creates a coupon. Admin only.
func CreateCoupon(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCoupon").(*couponValidator.CouponRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	validFrom, err := time.Parse(time.RFC3339, reqData.ValidFrom)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "valid_from must be an RFC3339 timestamp!", nil)
	}
	validUntil, err := time.Parse(time.RFC3339, reqData.ValidUntil)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "valid_until must be an RFC3339 timestamp!", nil)
	}
	if !validUntil.After(validFrom) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "valid_until must come after valid_from!", nil)
	}

	db := database.Database.Db

	if err := db.Where("code = ? AND is_deleted = ?", strings.ToUpper(reqData.Code), false).First(&models.Coupon{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A coupon with this code already exists!", nil)
	}

	coupon := models.Coupon{
		Code:              strings.ToUpper(reqData.Code),
		Description:       reqData.Description,
		DiscountType:      reqData.DiscountType,
		DiscountValue:     reqData.DiscountValue,
		MinOrderAmount:    reqData.MinOrderAmount,
		MaxUses:           reqData.MaxUses,
		ValidFrom:         validFrom,
		ValidUntil:        validUntil,
		IsActive:          true,
		ApplicableCourses: datatypes.NewJSONSlice(reqData.Courses),
	}
	if err := db.Create(&coupon).Error; err != nil {
		log.Printf("Error creating coupon: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create coupon!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Coupon created successfully!", coupon)
}

// UseCoupon records one redemption of a coupon
func UseCoupon(c *fiber.Ctx) error {
	couponID, _ := c.Locals("couponID").(uint)

	db := database.Database.Db

	var coupon models.Coupon
	if err := db.Where("id = ? AND is_deleted = ?", couponID, false).First(&coupon).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Coupon not found!", nil)
	}

	if _, err := coupon.Discount(time.Now(), coupon.MinOrderAmount, 0); err != nil {
		return couponErrorResponse(c, err)
	}

	if err := db.Model(&coupon).Update("current_uses", coupon.CurrentUses+1).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to use coupon!", nil)
	}
	coupon.CurrentUses++

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Coupon redeemed successfully!", coupon)
}

// ListCoupons returns all coupons for the admin dashboard
func ListCoupons(c *fiber.Ctx) error {
	var coupons []models.Coupon
	if err := database.Database.Db.Where("is_deleted = ?", false).
		Order("created_at desc").Find(&coupons).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch coupons!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Coupons fetched successfully!", coupons)
}

// DeactivateCoupon turns a coupon off without deleting it
func DeactivateCoupon(c *fiber.Ctx) error {
	couponID, _ := c.Locals("couponID").(uint)

	db := database.Database.Db

	var coupon models.Coupon
	if err := db.Where("id = ? AND is_deleted = ?", couponID, false).First(&coupon).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Coupon not found!", nil)
	}

	if err := db.Model(&coupon).Update("is_active", false).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to deactivate coupon!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Coupon deactivated successfully!", nil)
}

func couponErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrCouponInactive),
		errors.Is(err, models.ErrCouponExpired),
		errors.Is(err, models.ErrCouponExhausted),
		errors.Is(err, models.ErrCouponMinOrder),
		errors.Is(err, models.ErrCouponNotApplicable):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	default:
		log.Printf("Error validating coupon: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to validate coupon!", nil)
	}
}
