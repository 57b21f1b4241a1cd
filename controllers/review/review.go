package reviewController

import (
	"log"
	"math"

	"nexora/database"
	"nexora/middleware"
	"nexora/models"
	course "nexora/models/course"
	reviewValidator "nexora/validators/review"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateReview lets an enrolled student rate a course once
func CreateReview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	reqData, ok := c.Locals("validatedReview").(*reviewValidator.ReviewRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var enrollment course.Enrollment
	if err := db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", userID, reqData.CourseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only review courses you are enrolled in!", nil)
	}

	if err := db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", userID, reqData.CourseID, false).First(&models.Review{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already reviewed this course!", nil)
	}

	review := models.Review{
		StudentID: userID,
		CourseID:  reqData.CourseID,
		Rating:    reqData.Rating,
		Comment:   reqData.Comment,
	}
	if err := db.Create(&review).Error; err != nil {
		log.Printf("Error creating review: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit review!", nil)
	}

	refreshRating(db, reqData.CourseID)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Review submitted successfully!", review)
}

// CourseReviews lists approved reviews for a course with reviewer names
func CourseReviews(c *fiber.Ctx) error {
	courseID, _ := c.Locals("courseID").(uint)

	db := database.Database.Db

	var reviews []models.Review
	if err := db.Where("course_id = ? AND is_approved = ? AND is_deleted = ?", courseID, true, false).
		Order("created_at desc").Find(&reviews).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
	}

	result := make([]fiber.Map, 0, len(reviews))
	for _, r := range reviews {
		var user models.User
		db.Select("id, name, avatar").First(&user, r.StudentID)
		result = append(result, fiber.Map{
			"review": r,
			"student": fiber.Map{
				"name":   user.Name,
				"avatar": user.Avatar,
			},
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reviews fetched successfully!", result)
}

// refreshRating recomputes the course's rating rollup from approved reviews
func refreshRating(db *gorm.DB, courseID uint) {
	var stats struct {
		Avg   float64
		Count int64
	}
	db.Model(&models.Review{}).
		Where("course_id = ? AND is_approved = ? AND is_deleted = ?", courseID, true, false).
		Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as count").Scan(&stats)

	db.Model(&course.Course{}).Where("id = ?", courseID).Updates(map[string]interface{}{
		"rating_average": math.Round(stats.Avg*10) / 10,
		"rating_count":   stats.Count,
	})
}
