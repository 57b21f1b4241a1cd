package courseController

import (
	"log"

	"nexora/database"
	"nexora/middleware"
	course "nexora/models/course"
	"nexora/progress"
	courseValidator "nexora/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// CreateQuiz creates or replaces the active quiz of a course
func CreateQuiz(c *fiber.Ctx) error {
	courseID, _ := c.Locals("courseID").(uint)
	reqData, ok := c.Locals("validatedQuiz").(*courseValidator.QuizRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	if _, ok := instructorOwns(c, db, courseID); !ok {
		return nil
	}

	// A course carries at most one active quiz
	db.Model(&course.Quiz{}).
		Where("course_id = ? AND is_active = ?", courseID, true).
		Update("is_active", false)

	questions := make([]course.Question, 0, len(reqData.Questions))
	for i, q := range reqData.Questions {
		id := q.ID
		if id == 0 {
			id = i + 1
		}
		qType := q.Type
		if qType == "" {
			qType = "multiple-choice"
		}
		questions = append(questions, course.Question{
			ID:            id,
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Type:          qType,
		})
	}

	passingScore := reqData.PassingScore
	if passingScore == 0 {
		passingScore = 70
	}

	quiz := course.Quiz{
		CourseID:     courseID,
		Title:        reqData.Title,
		Description:  reqData.Description,
		Questions:    datatypes.NewJSONSlice(questions),
		PassingScore: passingScore,
		TimeLimit:    reqData.TimeLimit,
		IsActive:     true,
	}
	if err := db.Create(&quiz).Error; err != nil {
		log.Printf("Error creating quiz: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully!", quiz)
}

// GetCourseQuiz returns the active quiz with correct answers stripped.
// Requires enrollment.
func GetCourseQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID, _ := c.Locals("courseID").(uint)

	db := database.Database.Db

	var enrollment course.Enrollment
	if err := db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	var quiz course.Quiz
	if err := db.Where("course_id = ? AND is_active = ? AND is_deleted = ?", courseID, true, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No quiz available for this course.", nil)
	}

	sanitized := make([]course.Question, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		sanitized = append(sanitized, q.Sanitized())
	}
	quiz.Questions = datatypes.NewJSONSlice(sanitized)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", quiz)
}

// SubmitAttempt grades a quiz submission. Passing the quiz after completing
// every lesson issues a graded certificate.
func SubmitAttempt(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	quizID, _ := c.Locals("quizID").(uint)
	reqData, ok := c.Locals("validatedAttempt").(*courseValidator.AttemptRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var quiz course.Quiz
	if err := db.Where("id = ? AND is_active = ? AND is_deleted = ?", quizID, true, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	var enrollment course.Enrollment
	if err := db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", userID, quiz.CourseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	score, correct := quiz.Grade(reqData.Answers)
	passed := quiz.Passed(score)

	var previous int64
	db.Model(&course.QuizAttempt{}).Where("student_id = ? AND quiz_id = ?", userID, quizID).Count(&previous)

	attempt := course.QuizAttempt{
		StudentID:     userID,
		QuizID:        quizID,
		Answers:       datatypes.NewJSONSlice(reqData.Answers),
		Score:         score,
		Passed:        passed,
		TimeSpent:     reqData.TimeSpent,
		AttemptNumber: int(previous) + 1,
	}
	if err := db.Create(&attempt).Error; err != nil {
		log.Printf("Error saving quiz attempt: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit quiz!", nil)
	}

	var certificate *course.Certificate
	if passed {
		sequence, err := course.FlattenedLessonIDs(db, quiz.CourseID)
		if err == nil && progress.AllCompleted(sequence, enrollment.CompletedLessonIDs()) {
			var existing course.Certificate
			if db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", userID, quiz.CourseID, false).First(&existing).Error == nil {
				certificate = &existing
			} else if cert, err := issueCertificate(db, userID, quiz.CourseID, &score); err == nil {
				certificate = cert
			} else {
				log.Printf("Error issuing certificate after quiz pass: %v", err)
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted successfully!", fiber.Map{
		"attempt":     attempt,
		"score":       score,
		"correct":     correct,
		"total":       len(quiz.Questions),
		"passed":      passed,
		"certificate": certificate,
	})
}

// GetMyAttempts lists the caller's attempts on a quiz
func GetMyAttempts(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	quizID, _ := c.Locals("quizID").(uint)

	var attempts []course.QuizAttempt
	if err := database.Database.Db.Where("student_id = ? AND quiz_id = ? AND is_deleted = ?", userID, quizID, false).
		Order("attempt_number desc").Find(&attempts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", attempts)
}
