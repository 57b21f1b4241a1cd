package course

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrCourseNotFound is returned when a course id does not resolve.
	ErrCourseNotFound = errors.New("course not found")
	// ErrDuplicateLessonOrder signals two lessons sharing an order value
	// inside one section. This is a data-integrity fault from the catalog
	// layer and is never silently resolved.
	ErrDuplicateLessonOrder = errors.New("duplicate lesson order within section")
)

// FlattenedLessons returns the course's lessons as one ordered list: sections
// by their order, then lessons by their order within each section. This
// sequence defines "first lesson" and "previous lesson" for unlock gating.
func FlattenedLessons(db *gorm.DB, courseID uint) ([]Lesson, error) {
	var course Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	var lessons []Lesson
	err := db.Model(&Lesson{}).
		Joins("JOIN sections ON sections.id = lessons.section_id AND sections.is_deleted = ?", false).
		Where("lessons.course_id = ? AND lessons.is_deleted = ?", courseID, false).
		Order("sections.order_index asc, lessons.order_index asc, lessons.id asc").
		Find(&lessons).Error
	if err != nil {
		return nil, err
	}

	// No two lessons in a section may share an order value.
	seen := make(map[uint]map[int]bool)
	for _, l := range lessons {
		if seen[l.SectionID] == nil {
			seen[l.SectionID] = make(map[int]bool)
		}
		if seen[l.SectionID][l.OrderIndex] {
			return nil, ErrDuplicateLessonOrder
		}
		seen[l.SectionID][l.OrderIndex] = true
	}

	return lessons, nil
}

// FlattenedLessonIDs is FlattenedLessons reduced to the id sequence the
// unlock policy consumes.
func FlattenedLessonIDs(db *gorm.DB, courseID uint) ([]uint, error) {
	lessons, err := FlattenedLessons(db, courseID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, len(lessons))
	for i, l := range lessons {
		ids[i] = l.ID
	}
	return ids, nil
}
