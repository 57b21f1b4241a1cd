package models

import "gorm.io/gorm"

type Review struct {
	gorm.Model
	StudentID  uint   `gorm:"not null;uniqueIndex:idx_review_student_course" json:"student_id"`
	CourseID   uint   `gorm:"not null;uniqueIndex:idx_review_student_course" json:"course_id"`
	Rating     int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment    string `gorm:"type:text;default:''" json:"comment"`
	IsApproved bool   `gorm:"default:true" json:"is_approved"`
	IsDeleted  bool   `gorm:"default:false" json:"-"`
}
