package models

import "gorm.io/gorm"

type ContactMessage struct {
	gorm.Model
	Name      string `gorm:"not null" json:"name"`
	Email     string `gorm:"not null" json:"email"`
	Subject   string `gorm:"not null" json:"subject"`
	Message   string `gorm:"type:text;not null" json:"message"`
	IsDeleted bool   `gorm:"default:false" json:"-"`
}
