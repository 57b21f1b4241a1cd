package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question is a single quiz question stored in the quiz's JSON column.
type Question struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"` // index into Options
	Type          string   `json:"type"`          // multiple-choice, true-false
}

// Sanitized returns the question without the correct answer, for students.
func (q Question) Sanitized() Question {
	q.CorrectAnswer = -1
	return q
}

// Quiz is the (single active) end-of-course quiz
type Quiz struct {
	gorm.Model
	CourseID     uint                          `gorm:"index;not null" json:"course_id"`
	Title        string                        `gorm:"not null" json:"title"`
	Description  string                        `gorm:"type:text;default:''" json:"description"`
	Questions    datatypes.JSONSlice[Question] `json:"questions"`
	PassingScore int                           `gorm:"default:70" json:"passing_score"` // percentage
	TimeLimit    *int                          `json:"time_limit"`                      // minutes, nil means unlimited
	IsActive     bool                          `gorm:"default:true" json:"is_active"`
	IsDeleted    bool                          `gorm:"default:false" json:"-"`
}

// Grade scores a submitted answer sheet. Answers are positional: answers[i]
// is the chosen option index for Questions[i]; missing entries count as wrong.
func (qz *Quiz) Grade(answers []int) (score float64, correct int) {
	total := len(qz.Questions)
	if total == 0 {
		return 0, 0
	}
	for i, question := range qz.Questions {
		if i < len(answers) && answers[i] == question.CorrectAnswer {
			correct++
		}
	}
	return float64(correct) / float64(total) * 100, correct
}

// Passed reports whether a score clears the quiz's passing bar.
func (qz *Quiz) Passed(score float64) bool {
	return score >= float64(qz.PassingScore)
}

// QuizAttempt records one submission of a quiz by a student
type QuizAttempt struct {
	gorm.Model
	StudentID     uint                     `gorm:"index;not null" json:"student_id"`
	QuizID        uint                     `gorm:"index;not null" json:"quiz_id"`
	Answers       datatypes.JSONSlice[int] `json:"answers"`
	Score         float64                  `gorm:"not null" json:"score"`
	Passed        bool                     `gorm:"not null" json:"passed"`
	TimeSpent     int                      `gorm:"default:0" json:"time_spent"` // seconds
	AttemptNumber int                      `gorm:"default:1" json:"attempt_number"`
	IsDeleted     bool                     `gorm:"default:false" json:"-"`
}
