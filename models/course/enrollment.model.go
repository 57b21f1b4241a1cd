package course

import (
	"errors"
	"time"

	"nexora/progress"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrEnrollmentNotFound is returned when a student has no enrollment for the
// course.
var ErrEnrollmentNotFound = errors.New("enrollment not found")

// Enrollment tracks a student's purchase of a course and their progress
// through it. One row per (student, course) pair, enforced by the unique
// index.
type Enrollment struct {
	gorm.Model
	StudentID         uint                                 `gorm:"not null;uniqueIndex:idx_student_course" json:"student_id"`
	CourseID          uint                                 `gorm:"not null;uniqueIndex:idx_student_course" json:"course_id"`
	EnrolledAt        time.Time                            `json:"enrolled_at"`
	Progress          datatypes.JSONSlice[progress.Record] `json:"progress"`
	CompletionRate    int                                  `gorm:"default:0" json:"completion_rate"` // 0-100, always recomputed
	CompletedAt       *time.Time                           `json:"completed_at"`
	CertificateIssued bool                                 `gorm:"default:false" json:"certificate_issued"`
	PaymentStatus     string                               `gorm:"default:'pending'" json:"payment_status"` // pending, completed, failed, refunded
	PaymentID         string                               `gorm:"default:''" json:"payment_id"`
	PaymentAmount     float64                              `gorm:"default:0" json:"payment_amount"`
	IsDeleted         bool                                 `gorm:"default:false" json:"-"`
}

// CompletedLessonIDs returns the set of lesson ids with a completion record.
func (e *Enrollment) CompletedLessonIDs() map[uint]struct{} {
	return progress.CompletedSet(e.Progress)
}

// RecordCompletion merges a lesson completion report into the student's
// enrollment and recomputes the completion rate against the course's current
// lesson count. The read-merge-write runs inside one transaction; on postgres
// the enrollment row is locked so two concurrent reports for different
// lessons cannot drop each other's update. Returns the saved enrollment and
// whether this call completed the course for the first time.
//
// The lesson count is fetched fresh on every write rather than cached, so a
// lesson added or removed later shifts the denominator on the next report.
func RecordCompletion(db *gorm.DB, studentID, courseID, lessonID uint, watchTime int) (*Enrollment, bool, error) {
	// Course lookup failure aborts before any write.
	sequence, err := FlattenedLessonIDs(db, courseID)
	if err != nil {
		return nil, false, err
	}

	var enrollment Enrollment
	justCompleted := false

	err = db.Transaction(func(tx *gorm.DB) error {
		q := tx.Where("student_id = ? AND course_id = ? AND is_deleted = ?", studentID, courseID, false)
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(&enrollment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEnrollmentNotFound
			}
			return err
		}

		now := time.Now()
		enrollment.Progress = progress.Apply(enrollment.Progress, lessonID, watchTime, now)
		enrollment.CompletionRate = progress.Rate(len(enrollment.Progress), len(sequence))

		// completedAt is set exactly once; a later dip and recovery of the
		// rate never moves it.
		if enrollment.CompletionRate == 100 && enrollment.CompletedAt == nil {
			enrollment.CompletedAt = &now
			justCompleted = true
		}

		return tx.Save(&enrollment).Error
	})
	if err != nil {
		return nil, false, err
	}

	return &enrollment, justCompleted, nil
}
