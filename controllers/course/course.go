package courseController

import (
	"nexora/database"
	"nexora/middleware"
	"nexora/models"
	course "nexora/models/course"
	courseValidator "nexora/validators/course"

	"github.com/gofiber/fiber/v2"
)

// ListCourses serves the public catalog with filters and pagination
func ListCourses(c *fiber.Ctx) error {
	query, ok := c.Locals("validatedCatalog").(*courseValidator.CatalogQuery)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	tx := db.Model(&course.Course{}).Where("is_published = ? AND is_deleted = ?", true, false)

	if query.Category != "" {
		tx = tx.Where("category = ?", query.Category)
	}
	if query.Level != "" && query.Level != "all" {
		tx = tx.Where("level = ?", query.Level)
	}
	if query.Search != "" {
		like := "%" + query.Search + "%"
		tx = tx.Where("title LIKE ? OR short_description LIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	var courses []course.Course
	offset := (query.Page - 1) * query.Limit
	if err := tx.Order(query.Sort + " " + query.Order).Offset(offset).Limit(query.Limit).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"total":   total,
		"page":    query.Page,
		"limit":   query.Limit,
	})
}

// GetCourse returns a published course with its sections, lessons and instructor
func GetCourse(c *fiber.Ctx) error {
	courseID, ok := c.Locals("courseID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var crs course.Course
	if err := db.Where("id = ? AND is_published = ? AND is_deleted = ?", courseID, true, false).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var sections []course.Section
	db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index, id").Find(&sections)

	var lessons []course.Lesson
	db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index, id").Find(&lessons)

	// Strip video URLs from non-preview lessons for the public view
	curriculum := make([]fiber.Map, 0, len(sections))
	for _, sec := range sections {
		secLessons := make([]fiber.Map, 0)
		for _, l := range lessons {
			if l.SectionID != sec.ID {
				continue
			}
			entry := fiber.Map{
				"id":          l.ID,
				"title":       l.Title,
				"description": l.Description,
				"duration":    l.Duration,
				"order_index": l.OrderIndex,
				"is_preview":  l.IsPreview,
			}
			if l.IsPreview {
				entry["video_url"] = l.VideoURL
			}
			secLessons = append(secLessons, entry)
		}
		curriculum = append(curriculum, fiber.Map{
			"id":          sec.ID,
			"title":       sec.Title,
			"order_index": sec.OrderIndex,
			"lessons":     secLessons,
		})
	}

	var instructor models.User
	db.Select("id, name, avatar, bio, title").Where("id = ?", crs.InstructorID).First(&instructor)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":     crs,
		"curriculum": curriculum,
		"instructor": instructor,
	})
}
