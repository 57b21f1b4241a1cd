package course

import "gorm.io/gorm"

// Course represents a published or draft course in the catalog
type Course struct {
	gorm.Model
	Title            string  `gorm:"size:100;not null" json:"title"`
	ShortDescription string  `gorm:"size:200;default:''" json:"short_description"`
	Description      string  `gorm:"type:text;not null" json:"description"`
	Category         string  `gorm:"default:'Other'" json:"category"`
	Level            string  `gorm:"default:'beginner'" json:"level"` // beginner, intermediate, advanced
	Price            float64 `gorm:"default:0" json:"price"`
	InstructorID     uint    `gorm:"index;not null" json:"instructor_id"`
	ThumbnailURL     string  `gorm:"type:text;default:''" json:"thumbnail_url"`
	PreviewVideoURL  string  `gorm:"type:text;default:''" json:"preview_video_url"`
	TotalDuration    int     `gorm:"default:0" json:"total_duration"` // minutes, sum of lesson durations
	EnrollmentCount  int     `gorm:"default:0" json:"enrollment_count"`
	RatingAverage    float64 `gorm:"default:0" json:"rating_average"`
	RatingCount      int     `gorm:"default:0" json:"rating_count"`
	IsPublished      bool    `gorm:"default:false" json:"is_published"`
	IsDeleted        bool    `gorm:"default:false" json:"-"`
}

// Section groups lessons inside a course
type Section struct {
	gorm.Model
	CourseID   uint   `gorm:"index;not null" json:"course_id"`
	Title      string `gorm:"not null" json:"title"`
	OrderIndex int    `gorm:"default:0" json:"order_index"` // Section order in course
	IsDeleted  bool   `gorm:"default:false" json:"-"`
}

// Lesson is a single video lesson inside a section
type Lesson struct {
	gorm.Model
	CourseID    uint   `gorm:"index;not null" json:"course_id"`
	SectionID   uint   `gorm:"index;not null" json:"section_id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text;default:''" json:"description"`
	VideoURL    string `gorm:"type:text;default:''" json:"video_url"`
	Duration    int    `gorm:"default:0" json:"duration"`    // minutes
	OrderIndex  int    `gorm:"default:0" json:"order_index"` // Lesson order within section
	IsPreview   bool   `gorm:"default:false" json:"is_preview"`
	IsDeleted   bool   `gorm:"default:false" json:"-"`
}

// Resource is a downloadable attachment on a course, section or lesson
type Resource struct {
	gorm.Model
	Title     string `gorm:"not null" json:"title"`
	URL       string `gorm:"type:text;not null" json:"url"`
	Type      string `gorm:"not null" json:"type"` // pdf, slide, code, other
	CourseID  uint   `gorm:"index" json:"course_id"`
	SectionID *uint  `gorm:"index" json:"section_id"`
	LessonID  *uint  `gorm:"index" json:"lesson_id"`
	IsDeleted bool   `gorm:"default:false" json:"-"`
}
