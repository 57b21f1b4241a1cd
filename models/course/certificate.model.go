package course

import (
	"time"

	"gorm.io/gorm"
)

// Certificate represents an issued certificate for course completion
type Certificate struct {
	gorm.Model
	StudentID         uint     `gorm:"not null;uniqueIndex:idx_cert_student_course" json:"student_id"`
	CourseID          uint     `gorm:"not null;uniqueIndex:idx_cert_student_course" json:"course_id"`
	CertificateNumber string   `gorm:"unique;not null" json:"certificate_number"`
	CertificateURL    string   `gorm:"type:text;default:''" json:"certificate_url"`
	Grade             *float64 `json:"grade"` // quiz score when issued through a quiz pass
	IssuedAt          time.Time `json:"issued_at"`
	IsDeleted         bool      `gorm:"default:false" json:"-"`
}
