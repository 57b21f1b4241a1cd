package adminController

import (
	"nexora/database"
	"nexora/middleware"
	"nexora/models"
	course "nexora/models/course"

	"github.com/gofiber/fiber/v2"
)

// Dashboard returns the platform totals for the admin home screen
func Dashboard(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalStudents, totalInstructors, totalCourses, totalEnrollments, totalCertificates int64
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", "STUDENT", false).Count(&totalStudents)
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", "INSTRUCTOR", false).Count(&totalInstructors)
	db.Model(&course.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	db.Model(&course.Enrollment{}).Where("is_deleted = ?", false).Count(&totalEnrollments)
	db.Model(&course.Certificate{}).Where("is_deleted = ?", false).Count(&totalCertificates)

	var totalRevenue float64
	db.Model(&course.Enrollment{}).
		Where("payment_status = ? AND is_deleted = ?", "completed", false).
		Select("COALESCE(SUM(payment_amount), 0)").Scan(&totalRevenue)

	var recent []course.Enrollment
	db.Where("is_deleted = ?", false).Order("created_at desc").Limit(10).Find(&recent)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"total_students":     totalStudents,
		"total_instructors":  totalInstructors,
		"total_courses":      totalCourses,
		"total_enrollments":  totalEnrollments,
		"total_certificates": totalCertificates,
		"total_revenue":      totalRevenue,
		"recent_enrollments": recent,
	})
}

// ListUsers pages through platform users for the admin panel
func ListUsers(c *fiber.Ctx) error {
	page, _ := c.Locals("page").(int)
	limit, _ := c.Locals("limit").(int)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	db := database.Database.Db

	tx := db.Model(&models.User{}).Where("is_deleted = ?", false)
	if role := c.Query("role"); role != "" {
		tx = tx.Where("role = ?", role)
	}

	var total int64
	tx.Count(&total)

	var users []models.User
	if err := tx.Select("id, name, email, phone, role, avatar, is_email_verified, last_login, created_at").
		Order("created_at desc").Offset((page - 1) * limit).Limit(limit).Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", fiber.Map{
		"users": users,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// BlockUser soft-deletes a user account
func BlockUser(c *fiber.Ctx) error {
	targetID, ok := c.Locals("targetUserID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", targetID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if user.Role == "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Admin accounts cannot be blocked!", nil)
	}

	if err := db.Model(&user).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to block user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User blocked successfully!", nil)
}
