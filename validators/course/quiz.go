package courseValidator

import (
	"nexora/middleware"
	"nexora/validators"

	"github.com/gofiber/fiber/v2"
)

// QuizRequest is the admin quiz create/update payload
type QuizRequest struct {
	Title        string         `json:"title" validate:"required"`
	Description  string         `json:"description"`
	Questions    []QuestionBody `json:"questions" validate:"required,min=1,dive"`
	PassingScore int            `json:"passing_score" validate:"min=0,max=100"`
	TimeLimit    *int           `json:"time_limit" validate:"omitempty,min=1"`
}

type QuestionBody struct {
	ID            int      `json:"id"`
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"required,min=2"`
	CorrectAnswer int      `json:"correctAnswer" validate:"min=0"`
	Type          string   `json:"type" validate:"omitempty,oneof=multiple-choice true-false"`
}

func CreateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !validators.ParseIDParam(c, "courseId", "courseID") {
			return nil
		}

		reqData := new(QuizRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validators.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validators.FieldErrors(err))
		}

		// Every correct answer must index into its own options
		for _, q := range reqData.Questions {
			if q.CorrectAnswer >= len(q.Options) {
				return middleware.ValidationErrorResponse(c, map[string]string{
					"questions": "correctAnswer must index into options",
				})
			}
		}

		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}

func GetCourseQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !validators.ParseIDParam(c, "courseId", "courseID") {
			return nil
		}
		return c.Next()
	}
}

func QuizID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !validators.ParseIDParam(c, "quizId", "quizID") {
			return nil
		}
		return c.Next()
	}
}

// AttemptRequest is a quiz submission
type AttemptRequest struct {
	Answers   []int `json:"answers" validate:"required"`
	TimeSpent int   `json:"time_spent" validate:"min=0"`
}

func SubmitAttempt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !validators.ParseIDParam(c, "quizId", "quizID") {
			return nil
		}

		reqData := new(AttemptRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validators.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validators.FieldErrors(err))
		}

		c.Locals("validatedAttempt", reqData)
		return c.Next()
	}
}
