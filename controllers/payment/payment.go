package paymentController

import (
	"fmt"
	"log"
	"strings"
	"time"

	"nexora/database"
	"nexora/middleware"
	"nexora/models"
	course "nexora/models/course"
	"nexora/utils"
	paymentValidator "nexora/validators/payment"

	"github.com/gofiber/fiber/v2"
)

// CreateOrder opens a Razorpay order for a course purchase, applying an
// optional coupon to the amount.
func CreateOrder(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	reqData, ok := c.Locals("validatedOrder").(*paymentValidator.CreateOrderRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var crs course.Course
	if err := db.Where("id = ? AND is_published = ? AND is_deleted = ?", reqData.CourseID, true, false).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var existing course.Enrollment
	if err := db.Where("student_id = ? AND course_id = ? AND payment_status = ? AND is_deleted = ?",
		userID, reqData.CourseID, "completed", false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already enrolled in this course.", nil)
	}

	// An order only quotes the coupon; a use is counted at redemption, so an
	// abandoned checkout does not burn one.
	amount := crs.Price
	if reqData.CouponCode != "" {
		var coupon models.Coupon
		if err := db.Where("code = ? AND is_deleted = ?", strings.ToUpper(reqData.CouponCode), false).First(&coupon).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Coupon not found!", nil)
		}
		discount, err := coupon.Discount(time.Now(), amount, reqData.CourseID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		}
		amount -= discount
	}

	if amount <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Order amount must be positive. Use the free enrollment flow instead.", nil)
	}

	receipt := fmt.Sprintf("course_%d_user_%d_%d", reqData.CourseID, userID, time.Now().Unix())
	order, err := utils.CreateRazorpayOrder(amount, reqData.Currency, receipt)
	if err != nil {
		log.Printf("Error creating razorpay order: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to create payment order!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Order created successfully!", fiber.Map{
		"order_id": order.ID,
		"amount":   order.Amount,
		"currency": order.Currency,
		"receipt":  order.Receipt,
	})
}

// VerifyPayment validates the Razorpay callback signature and enrolls the
// student. A replayed callback for an existing enrollment succeeds without
// creating a second row.
func VerifyPayment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	reqData, ok := c.Locals("validatedVerify").(*paymentValidator.VerifyRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if !utils.VerifyRazorpaySignature(reqData.RazorpayOrderID, reqData.RazorpayPaymentID, reqData.RazorpaySignature) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment signature verification failed!", nil)
	}

	db := database.Database.Db

	var crs course.Course
	if err := db.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var existing course.Enrollment
	if err := db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", userID, reqData.CourseID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment verified. You are already enrolled.", existing)
	}

	enrollment := course.Enrollment{
		StudentID:     userID,
		CourseID:      reqData.CourseID,
		EnrolledAt:    time.Now(),
		PaymentStatus: "completed",
		PaymentID:     reqData.RazorpayPaymentID,
		PaymentAmount: crs.Price,
	}
	if err := db.Create(&enrollment).Error; err != nil {
		log.Printf("Error creating enrollment after payment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Payment verified but enrollment failed. Please contact support.", nil)
	}

	db.Model(&crs).Update("enrollment_count", crs.EnrollmentCount+1)

	var user models.User
	if err := db.First(&user, userID).Error; err == nil {
		utils.SendCourseAccessEmail(user.Email, user.Name, crs.Title)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Payment verified and enrolled successfully!", enrollment)
}
