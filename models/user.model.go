package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name            string     `gorm:"size:50;not null" json:"name"`
	Email           string     `gorm:"unique;not null" json:"email"`
	Phone           string     `gorm:"size:15;default:''" json:"phone"`
	Password        string     `gorm:"not null" json:"-"`
	Role            string     `gorm:"default:'STUDENT'" json:"role"` // STUDENT, INSTRUCTOR, ADMIN
	Avatar          string     `gorm:"type:text;default:''" json:"avatar"`
	Bio             string     `gorm:"size:500;default:''" json:"bio"`
	Title           string     `gorm:"size:100;default:''" json:"title"` // e.g. "Senior Engineer"
	IsEmailVerified bool       `gorm:"default:false" json:"is_email_verified"`
	LastLogin       *time.Time `json:"last_login"`
	IsDeleted       bool       `gorm:"default:false" json:"-"`
}
