package courseController

import (
	"log"

	"nexora/database"
	"nexora/middleware"
	course "nexora/models/course"
	courseValidator "nexora/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// resourceScopeValid checks that the optional section/lesson anchors belong
// to the course.
func resourceScopeValid(db *gorm.DB, courseID uint, sectionID, lessonID *uint) bool {
	if sectionID != nil {
		var n int64
		db.Model(&course.Section{}).
			Where("id = ? AND course_id = ? AND is_deleted = ?", *sectionID, courseID, false).Count(&n)
		if n == 0 {
			return false
		}
	}
	if lessonID != nil {
		var n int64
		db.Model(&course.Lesson{}).
			Where("id = ? AND course_id = ? AND is_deleted = ?", *lessonID, courseID, false).Count(&n)
		if n == 0 {
			return false
		}
	}
	return true
}

// CreateResource attaches a downloadable resource to a course, optionally
// anchored to a section or lesson
func CreateResource(c *fiber.Ctx) error {
	courseID, _ := c.Locals("courseID").(uint)
	reqData, ok := c.Locals("validatedResource").(*courseValidator.ResourceRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	if _, ok := instructorOwns(c, db, courseID); !ok {
		return nil
	}

	if !resourceScopeValid(db, courseID, reqData.SectionID, reqData.LessonID) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section or lesson not found in this course!", nil)
	}

	resource := course.Resource{
		Title:     reqData.Title,
		URL:       reqData.URL,
		Type:      reqData.Type,
		CourseID:  courseID,
		SectionID: reqData.SectionID,
		LessonID:  reqData.LessonID,
	}
	if err := db.Create(&resource).Error; err != nil {
		log.Printf("Error creating resource: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create resource!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Resource created successfully!", resource)
}

// UpdateResource edits a resource in place
func UpdateResource(c *fiber.Ctx) error {
	resourceID, _ := c.Locals("resourceID").(uint)
	reqData, ok := c.Locals("validatedResource").(*courseValidator.ResourceRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var resource course.Resource
	if err := db.Where("id = ? AND is_deleted = ?", resourceID, false).First(&resource).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Resource not found!", nil)
	}

	if _, ok := instructorOwns(c, db, resource.CourseID); !ok {
		return nil
	}

	if !resourceScopeValid(db, resource.CourseID, reqData.SectionID, reqData.LessonID) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section or lesson not found in this course!", nil)
	}

	resource.Title = reqData.Title
	resource.URL = reqData.URL
	resource.Type = reqData.Type
	resource.SectionID = reqData.SectionID
	resource.LessonID = reqData.LessonID

	if err := db.Save(&resource).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update resource!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Resource updated successfully!", resource)
}

// DeleteResource soft-deletes a resource
func DeleteResource(c *fiber.Ctx) error {
	resourceID, _ := c.Locals("resourceID").(uint)

	db := database.Database.Db

	var resource course.Resource
	if err := db.Where("id = ? AND is_deleted = ?", resourceID, false).First(&resource).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Resource not found!", nil)
	}

	if _, ok := instructorOwns(c, db, resource.CourseID); !ok {
		return nil
	}

	if err := db.Model(&resource).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete resource!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Resource deleted successfully!", nil)
}

// ListCourseResources returns a course's resources to enrolled students
func ListCourseResources(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID, _ := c.Locals("courseID").(uint)

	db := database.Database.Db

	var crs course.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// The instructor sees their own resources; everyone else must be enrolled
	if crs.InstructorID != userID {
		var enrollment course.Enrollment
		if err := db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
		}
	}

	var resources []course.Resource
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("created_at desc").Find(&resources).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch resources!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Resources fetched successfully!", resources)
}
