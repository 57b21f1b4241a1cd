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

// instructorOwns checks that the caller may manage the given course. Admins
// can manage any course, instructors only their own.
func instructorOwns(c *fiber.Ctx, db *gorm.DB, courseID uint) (*course.Course, bool) {
	userID, _ := c.Locals("userId").(uint)
	role, _ := c.Locals("userRole").(string)

	var crs course.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		return nil, false
	}

	if role != "ADMIN" && crs.InstructorID != userID {
		middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not manage this course!", nil)
		return nil, false
	}
	return &crs, true
}

// CreateCourse creates a draft course owned by the caller
func CreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	newCourse := course.Course{
		Title:            reqData.Title,
		ShortDescription: reqData.ShortDescription,
		Description:      reqData.Description,
		Category:         reqData.Category,
		Level:            reqData.Level,
		Price:            reqData.Price,
		InstructorID:     userID,
		ThumbnailURL:     reqData.ThumbnailURL,
		PreviewVideoURL:  reqData.PreviewVideoURL,
	}

	if err := database.Database.Db.Create(&newCourse).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", newCourse)
}

// UpdateCourse applies a partial update, including publish/unpublish
func UpdateCourse(c *fiber.Ctx) error {
	courseID, _ := c.Locals("courseID").(uint)
	reqData, ok := c.Locals("validatedCourseUpdate").(*courseValidator.CourseUpdateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	crs, ok := instructorOwns(c, db, courseID)
	if !ok {
		return nil
	}

	if reqData.Title != "" {
		crs.Title = reqData.Title
	}
	if reqData.ShortDescription != "" {
		crs.ShortDescription = reqData.ShortDescription
	}
	if reqData.Description != "" {
		crs.Description = reqData.Description
	}
	if reqData.Category != "" {
		crs.Category = reqData.Category
	}
	if reqData.Level != "" {
		crs.Level = reqData.Level
	}
	if reqData.Price != nil {
		crs.Price = *reqData.Price
	}
	if reqData.ThumbnailURL != "" {
		crs.ThumbnailURL = reqData.ThumbnailURL
	}
	if reqData.PreviewVideoURL != "" {
		crs.PreviewVideoURL = reqData.PreviewVideoURL
	}
	if reqData.IsPublished != nil {
		crs.IsPublished = *reqData.IsPublished
	}

	if err := db.Save(crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", crs)
}

// DeleteCourse soft-deletes a course and hides it from the catalog
func DeleteCourse(c *fiber.Ctx) error {
	courseID, _ := c.Locals("courseID").(uint)

	db := database.Database.Db
	crs, ok := instructorOwns(c, db, courseID)
	if !ok {
		return nil
	}

	if err := db.Model(crs).Updates(map[string]interface{}{"is_deleted": true, "is_published": false}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// CreateSection adds a section to a course
func CreateSection(c *fiber.Ctx) error {
	courseID, _ := c.Locals("courseID").(uint)
	reqData, ok := c.Locals("validatedSection").(*courseValidator.SectionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	if _, ok := instructorOwns(c, db, courseID); !ok {
		return nil
	}

	section := course.Section{
		CourseID:   courseID,
		Title:      reqData.Title,
		OrderIndex: reqData.OrderIndex,
	}
	if err := db.Create(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Section created successfully!", section)
}

// CreateLesson adds a lesson to a section. Rejects an order index already
// taken within the section, since the unlock order must stay unambiguous.
func CreateLesson(c *fiber.Ctx) error {
	courseID, _ := c.Locals("courseID").(uint)
	reqData, ok := c.Locals("validatedLesson").(*courseValidator.LessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	if _, ok := instructorOwns(c, db, courseID); !ok {
		return nil
	}

	var section course.Section
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", reqData.SectionID, courseID, false).First(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found in this course!", nil)
	}

	var clash int64
	db.Model(&course.Lesson{}).
		Where("section_id = ? AND order_index = ? AND is_deleted = ?", reqData.SectionID, reqData.OrderIndex, false).
		Count(&clash)
	if clash > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A lesson with this order index already exists in the section!", nil)
	}

	lesson := course.Lesson{
		CourseID:    courseID,
		SectionID:   reqData.SectionID,
		Title:       reqData.Title,
		Description: reqData.Description,
		VideoURL:    reqData.VideoURL,
		Duration:    reqData.Duration,
		OrderIndex:  reqData.OrderIndex,
		IsPreview:   reqData.IsPreview,
	}
	if err := db.Create(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	refreshTotalDuration(db, courseID)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// UpdateLesson edits a lesson in place
func UpdateLesson(c *fiber.Ctx) error {
	courseID, _ := c.Locals("courseID").(uint)
	lessonID, _ := c.Locals("lessonID").(uint)
	reqData, ok := c.Locals("validatedLesson").(*courseValidator.LessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	if _, ok := instructorOwns(c, db, courseID); !ok {
		return nil
	}

	var lesson course.Lesson
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", lessonID, courseID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var clash int64
	db.Model(&course.Lesson{}).
		Where("section_id = ? AND order_index = ? AND id <> ? AND is_deleted = ?", reqData.SectionID, reqData.OrderIndex, lesson.ID, false).
		Count(&clash)
	if clash > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A lesson with this order index already exists in the section!", nil)
	}

	lesson.SectionID = reqData.SectionID
	lesson.Title = reqData.Title
	lesson.Description = reqData.Description
	lesson.VideoURL = reqData.VideoURL
	lesson.Duration = reqData.Duration
	lesson.OrderIndex = reqData.OrderIndex
	lesson.IsPreview = reqData.IsPreview

	if err := db.Save(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	refreshTotalDuration(db, courseID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// InstructorCourses lists courses owned by the caller, drafts included
func InstructorCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var courses []course.Course
	if err := database.Database.Db.Where("instructor_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

func refreshTotalDuration(db *gorm.DB, courseID uint) {
	var total int64
	db.Model(&course.Lesson{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Select("COALESCE(SUM(duration), 0)").Scan(&total)
	db.Model(&course.Course{}).Where("id = ?", courseID).Update("total_duration", total)
}
