package courseController

import (
	"errors"
	"log"
	"time"

	"nexora/database"
	"nexora/middleware"
	"nexora/models"
	course "nexora/models/course"
	"nexora/progress"
	"nexora/utils"
	courseValidator "nexora/validators/course"

	"github.com/gofiber/fiber/v2"
)

// EnrollInCourse enrolls the caller directly into a free course. Paid courses
// go through the payment flow instead.
func EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID, _ := c.Locals("courseID").(uint)

	db := database.Database.Db

	var crs course.Course
	if err := db.Where("id = ? AND is_published = ? AND is_deleted = ?", courseID, true, false).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if crs.Price > 0 {
		return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "This course is paid. Please complete the payment to enroll.", nil)
	}

	// Re-enrolling is a no-op
	var existing course.Enrollment
	if err := db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "You are already enrolled in this course.", existing)
	}

	enrollment := course.Enrollment{
		StudentID:     userID,
		CourseID:      courseID,
		EnrolledAt:    time.Now(),
		PaymentStatus: "completed",
		PaymentAmount: 0,
	}
	if err := db.Create(&enrollment).Error; err != nil {
		log.Printf("Error creating enrollment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	db.Model(&crs).Update("enrollment_count", crs.EnrollmentCount+1)

	var user models.User
	if err := db.First(&user, userID).Error; err == nil {
		utils.SendCourseAccessEmail(user.Email, user.Name, crs.Title)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled successfully!", enrollment)
}

// GetMyCourses lists the caller's enrollments with course summaries
func GetMyCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var enrollments []course.Enrollment
	if err := db.Where("student_id = ? AND is_deleted = ?", userID, false).
		Order("enrolled_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch your courses!", nil)
	}

	result := make([]fiber.Map, 0, len(enrollments))
	for _, e := range enrollments {
		var crs course.Course
		if err := db.Where("id = ? AND is_deleted = ?", e.CourseID, false).First(&crs).Error; err != nil {
			continue
		}
		result = append(result, fiber.Map{
			"enrollment": e,
			"course": fiber.Map{
				"id":             crs.ID,
				"title":          crs.Title,
				"thumbnail_url":  crs.ThumbnailURL,
				"level":          crs.Level,
				"category":       crs.Category,
				"total_duration": crs.TotalDuration,
			},
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled courses fetched successfully!", result)
}

// UpdateProgress records a lesson completion report and returns the refreshed
// enrollment together with the per-lesson lock states.
func UpdateProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID, _ := c.Locals("courseID").(uint)
	reqData, ok := c.Locals("validatedProgress").(*courseValidator.ProgressRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// The reported lesson must belong to this course
	sequence, err := course.FlattenedLessonIDs(db, courseID)
	if err != nil {
		return structureErrorResponse(c, err)
	}
	found := false
	for _, id := range sequence {
		if id == reqData.LessonID {
			found = true
			break
		}
	}
	if !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found in this course!", nil)
	}

	enrollment, justCompleted, err := course.RecordCompletion(db, userID, courseID, reqData.LessonID, reqData.WatchTime)
	if err != nil {
		return structureErrorResponse(c, err)
	}

	if justCompleted {
		var user models.User
		var crs course.Course
		if db.First(&user, userID).Error == nil && db.First(&crs, courseID).Error == nil {
			utils.SendCourseCompletedEmail(user.Email, user.Name, crs.Title)
		}
	}

	access := progress.Accessibility(sequence, enrollment.CompletedLessonIDs())

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", fiber.Map{
		"enrollment":     enrollment,
		"just_completed": justCompleted,
		"lessons":        access,
	})
}

// GetProgress returns the caller's progress and lock states without writing
func GetProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID, _ := c.Locals("courseID").(uint)

	db := database.Database.Db

	sequence, err := course.FlattenedLessonIDs(db, courseID)
	if err != nil {
		return structureErrorResponse(c, err)
	}

	var enrollment course.Enrollment
	if err := db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "You are not enrolled in this course!", nil)
	}

	access := progress.Accessibility(sequence, enrollment.CompletedLessonIDs())

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment": enrollment,
		"lessons":    access,
	})
}

// GetLessonAccessibility returns the flattened lesson sequence with each
// lesson's lock state for the caller
func GetLessonAccessibility(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID, _ := c.Locals("courseID").(uint)

	db := database.Database.Db

	lessons, err := course.FlattenedLessons(db, courseID)
	if err != nil {
		return structureErrorResponse(c, err)
	}

	var enrollment course.Enrollment
	if err := db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "You are not enrolled in this course!", nil)
	}

	sequence := make([]uint, len(lessons))
	for i, l := range lessons {
		sequence[i] = l.ID
	}
	access := progress.Accessibility(sequence, enrollment.CompletedLessonIDs())

	result := make([]fiber.Map, 0, len(lessons))
	for i, l := range lessons {
		entry := fiber.Map{
			"id":          l.ID,
			"section_id":  l.SectionID,
			"title":       l.Title,
			"duration":    l.Duration,
			"order_index": l.OrderIndex,
			"state":       access[i].State,
			"locked":      access[i].Locked,
		}
		// Video URLs stay hidden behind the lock
		if !access[i].Locked {
			entry["video_url"] = l.VideoURL
		}
		result = append(result, entry)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons fetched successfully!", result)
}

func structureErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, course.ErrCourseNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	case errors.Is(err, course.ErrEnrollmentNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "You are not enrolled in this course!", nil)
	case errors.Is(err, course.ErrDuplicateLessonOrder):
		log.Printf("Course structure conflict: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Course structure is inconsistent. Please contact support.", nil)
	default:
		log.Printf("Error updating progress: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}
}
