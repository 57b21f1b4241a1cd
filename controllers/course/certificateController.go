package courseController

import (
	"log"
	"time"

	"nexora/database"
	"nexora/middleware"
	"nexora/models"
	course "nexora/models/course"
	"nexora/progress"
	"nexora/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RequestCertificate issues a completion certificate. The gate is exact: every
// lesson currently in the course must carry a completion record, regardless of
// the stored rounded rate. Requesting an already issued certificate returns it
// again.
func RequestCertificate(c *fiber.Ctx) error {
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

	var existing course.Certificate
	if err := db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate already issued.", existing)
	}

	if !progress.AllCompleted(sequence, enrollment.CompletedLessonIDs()) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Complete all lessons to receive your certificate.", nil)
	}

	cert, err := issueCertificate(db, userID, courseID, nil)
	if err != nil {
		log.Printf("Error issuing certificate: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate issued successfully!", cert)
}

// GetUserCertificates lists the caller's certificates with course titles
func GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var certs []course.Certificate
	if err := db.Where("student_id = ? AND is_deleted = ?", userID, false).
		Order("issued_at desc").Find(&certs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	result := make([]fiber.Map, 0, len(certs))
	for _, cert := range certs {
		var crs course.Course
		db.Select("id, title").First(&crs, cert.CourseID)
		result = append(result, fiber.Map{
			"certificate":  cert,
			"course_title": crs.Title,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", result)
}

// issueCertificate generates the PDF, stores the record and marks the
// enrollment. Grade is set when the certificate comes from a quiz pass.
func issueCertificate(db *gorm.DB, studentID, courseID uint, grade *float64) (*course.Certificate, error) {
	var user models.User
	if err := db.First(&user, studentID).Error; err != nil {
		return nil, err
	}
	var crs course.Course
	if err := db.First(&crs, courseID).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	number := utils.NewCertificateNumber()

	certURL, err := utils.GenerateCertificatePDF(user.Name, crs.Title, now.Format("January 2, 2006"), number)
	if err != nil {
		return nil, err
	}

	cert := course.Certificate{
		StudentID:         studentID,
		CourseID:          courseID,
		CertificateNumber: number,
		CertificateURL:    certURL,
		Grade:             grade,
		IssuedAt:          now,
	}
	if err := db.Create(&cert).Error; err != nil {
		return nil, err
	}

	db.Model(&course.Enrollment{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Update("certificate_issued", true)

	utils.SendCertificateEmail(user.Email, user.Name, crs.Title, certURL)

	return &cert, nil
}
