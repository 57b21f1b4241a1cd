package course

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&Course{}, &Section{}, &Lesson{}, &Enrollment{}, &Certificate{}, &Quiz{}, &QuizAttempt{}))
	return db
}

// seedCourse creates a published course with one section holding the given
// number of lessons, returning the course and lesson ids in order.
func seedCourse(t *testing.T, db *gorm.DB, lessonCount int) (uint, []uint) {
	t.Helper()

	crs := Course{Title: "Go From Scratch", Description: "x", InstructorID: 1, IsPublished: true}
	require.NoError(t, db.Create(&crs).Error)

	sec := Section{CourseID: crs.ID, Title: "Basics", OrderIndex: 1}
	require.NoError(t, db.Create(&sec).Error)

	ids := make([]uint, 0, lessonCount)
	for i := 0; i < lessonCount; i++ {
		l := Lesson{CourseID: crs.ID, SectionID: sec.ID, Title: fmt.Sprintf("Lesson %d", i+1), OrderIndex: i + 1}
		require.NoError(t, db.Create(&l).Error)
		ids = append(ids, l.ID)
	}
	return crs.ID, ids
}

func enroll(t *testing.T, db *gorm.DB, studentID, courseID uint) {
	t.Helper()
	e := Enrollment{StudentID: studentID, CourseID: courseID, EnrolledAt: time.Now(), PaymentStatus: "completed"}
	require.NoError(t, db.Create(&e).Error)
}

func TestFlattenedLessonIDsOrdersBySectionThenLesson(t *testing.T) {
	db := newTestDB(t)

	crs := Course{Title: "c", Description: "x", InstructorID: 1}
	require.NoError(t, db.Create(&crs).Error)

	secB := Section{CourseID: crs.ID, Title: "B", OrderIndex: 2}
	secA := Section{CourseID: crs.ID, Title: "A", OrderIndex: 1}
	require.NoError(t, db.Create(&secB).Error)
	require.NoError(t, db.Create(&secA).Error)

	// Created out of order on purpose
	l3 := Lesson{CourseID: crs.ID, SectionID: secB.ID, Title: "b1", OrderIndex: 1}
	l2 := Lesson{CourseID: crs.ID, SectionID: secA.ID, Title: "a2", OrderIndex: 2}
	l1 := Lesson{CourseID: crs.ID, SectionID: secA.ID, Title: "a1", OrderIndex: 1}
	require.NoError(t, db.Create(&l3).Error)
	require.NoError(t, db.Create(&l2).Error)
	require.NoError(t, db.Create(&l1).Error)

	ids, err := FlattenedLessonIDs(db, crs.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{l1.ID, l2.ID, l3.ID}, ids)
}

func TestFlattenedLessonsUnknownCourse(t *testing.T) {
	db := newTestDB(t)

	_, err := FlattenedLessons(db, 9999)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestFlattenedLessonsDuplicateOrderFails(t *testing.T) {
	db := newTestDB(t)

	crs := Course{Title: "c", Description: "x", InstructorID: 1}
	require.NoError(t, db.Create(&crs).Error)
	sec := Section{CourseID: crs.ID, Title: "s", OrderIndex: 1}
	require.NoError(t, db.Create(&sec).Error)

	require.NoError(t, db.Create(&Lesson{CourseID: crs.ID, SectionID: sec.ID, Title: "a", OrderIndex: 1}).Error)
	require.NoError(t, db.Create(&Lesson{CourseID: crs.ID, SectionID: sec.ID, Title: "b", OrderIndex: 1}).Error)

	_, err := FlattenedLessons(db, crs.ID)
	assert.ErrorIs(t, err, ErrDuplicateLessonOrder)
}

func TestFlattenedLessonsSameOrderAcrossSectionsOK(t *testing.T) {
	db := newTestDB(t)

	crs := Course{Title: "c", Description: "x", InstructorID: 1}
	require.NoError(t, db.Create(&crs).Error)
	s1 := Section{CourseID: crs.ID, Title: "s1", OrderIndex: 1}
	s2 := Section{CourseID: crs.ID, Title: "s2", OrderIndex: 2}
	require.NoError(t, db.Create(&s1).Error)
	require.NoError(t, db.Create(&s2).Error)

	require.NoError(t, db.Create(&Lesson{CourseID: crs.ID, SectionID: s1.ID, Title: "a", OrderIndex: 1}).Error)
	require.NoError(t, db.Create(&Lesson{CourseID: crs.ID, SectionID: s2.ID, Title: "b", OrderIndex: 1}).Error)

	ids, err := FlattenedLessonIDs(db, crs.ID)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}

func TestRecordCompletionCreatesRecordAndRate(t *testing.T) {
	db := newTestDB(t)
	courseID, lessons := seedCourse(t, db, 4)
	enroll(t, db, 1, courseID)

	e, justCompleted, err := RecordCompletion(db, 1, courseID, lessons[0], 300)
	require.NoError(t, err)

	assert.False(t, justCompleted)
	require.Len(t, e.Progress, 1)
	assert.Equal(t, lessons[0], e.Progress[0].LessonID)
	assert.Equal(t, 300, e.Progress[0].WatchTime)
	assert.Equal(t, 25, e.CompletionRate)
	assert.Nil(t, e.CompletedAt)
}

func TestRecordCompletionIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	courseID, lessons := seedCourse(t, db, 4)
	enroll(t, db, 1, courseID)

	first, _, err := RecordCompletion(db, 1, courseID, lessons[0], 300)
	require.NoError(t, err)
	second, _, err := RecordCompletion(db, 1, courseID, lessons[0], 120)
	require.NoError(t, err)

	require.Len(t, second.Progress, 1)
	assert.Equal(t, 300, second.Progress[0].WatchTime)
	assert.Equal(t, first.Progress[0].CompletedAt.Unix(), second.Progress[0].CompletedAt.Unix())
	assert.Equal(t, 25, second.CompletionRate)
}

func TestRecordCompletionSequentialReportsAccumulate(t *testing.T) {
	db := newTestDB(t)
	courseID, lessons := seedCourse(t, db, 3)
	enroll(t, db, 1, courseID)

	_, _, err := RecordCompletion(db, 1, courseID, lessons[0], 100)
	require.NoError(t, err)
	e, _, err := RecordCompletion(db, 1, courseID, lessons[1], 100)
	require.NoError(t, err)

	assert.Len(t, e.Progress, 2)
	assert.Equal(t, 67, e.CompletionRate)
}

func TestRecordCompletionSetsCompletedAtOnce(t *testing.T) {
	db := newTestDB(t)
	courseID, lessons := seedCourse(t, db, 2)
	enroll(t, db, 1, courseID)

	_, justCompleted, err := RecordCompletion(db, 1, courseID, lessons[0], 10)
	require.NoError(t, err)
	assert.False(t, justCompleted)

	e, justCompleted, err := RecordCompletion(db, 1, courseID, lessons[1], 10)
	require.NoError(t, err)
	assert.True(t, justCompleted)
	require.NotNil(t, e.CompletedAt)
	completedAt := *e.CompletedAt

	// A replay does not move the completion timestamp
	e, justCompleted, err = RecordCompletion(db, 1, courseID, lessons[1], 500)
	require.NoError(t, err)
	assert.False(t, justCompleted)
	require.NotNil(t, e.CompletedAt)
	assert.Equal(t, completedAt.Unix(), e.CompletedAt.Unix())
}

func TestRecordCompletionUnknownCourse(t *testing.T) {
	db := newTestDB(t)

	_, _, err := RecordCompletion(db, 1, 9999, 1, 10)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestRecordCompletionWithoutEnrollment(t *testing.T) {
	db := newTestDB(t)
	courseID, lessons := seedCourse(t, db, 2)

	_, _, err := RecordCompletion(db, 1, courseID, lessons[0], 10)
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)
}

func TestRecordCompletionZeroLessonCourse(t *testing.T) {
	db := newTestDB(t)
	courseID, _ := seedCourse(t, db, 0)
	enroll(t, db, 1, courseID)

	// A report for a lesson that is not in the course still merges; the rate
	// stays 0 because the denominator is 0, and the course never completes.
	e, justCompleted, err := RecordCompletion(db, 1, courseID, 42, 10)
	require.NoError(t, err)
	assert.False(t, justCompleted)
	assert.Equal(t, 0, e.CompletionRate)
	assert.Nil(t, e.CompletedAt)
}

func TestRecordCompletionLessonAddedLaterShiftsDenominator(t *testing.T) {
	db := newTestDB(t)
	courseID, lessons := seedCourse(t, db, 2)
	enroll(t, db, 1, courseID)

	_, _, err := RecordCompletion(db, 1, courseID, lessons[0], 10)
	require.NoError(t, err)
	e, _, err := RecordCompletion(db, 1, courseID, lessons[1], 10)
	require.NoError(t, err)
	require.NotNil(t, e.CompletedAt)
	completedAt := *e.CompletedAt

	// Instructor appends a third lesson
	var sec Section
	require.NoError(t, db.Where("course_id = ?", courseID).First(&sec).Error)
	l3 := Lesson{CourseID: courseID, SectionID: sec.ID, Title: "new", OrderIndex: 3}
	require.NoError(t, db.Create(&l3).Error)

	// Next report recomputes against 3 lessons; completedAt stays put
	e, justCompleted, err := RecordCompletion(db, 1, courseID, lessons[0], 10)
	require.NoError(t, err)
	assert.False(t, justCompleted)
	assert.Equal(t, 67, e.CompletionRate)
	require.NotNil(t, e.CompletedAt)
	assert.Equal(t, completedAt.Unix(), e.CompletedAt.Unix())
}

func TestRecordCompletionCourseShrinkStillCompletes(t *testing.T) {
	db := newTestDB(t)
	courseID, lessons := seedCourse(t, db, 3)
	enroll(t, db, 1, courseID)

	_, _, err := RecordCompletion(db, 1, courseID, lessons[0], 10)
	require.NoError(t, err)
	e, _, err := RecordCompletion(db, 1, courseID, lessons[1], 10)
	require.NoError(t, err)
	assert.Equal(t, 67, e.CompletionRate)
	assert.Nil(t, e.CompletedAt)

	// Instructor removes two lessons; the log now holds more records than the
	// course has lessons. The rate clamps at 100 instead of overshooting, and
	// the 100 trigger still fires.
	require.NoError(t, db.Model(&Lesson{}).
		Where("id IN ?", []uint{lessons[1], lessons[2]}).
		Update("is_deleted", true).Error)

	e, justCompleted, err := RecordCompletion(db, 1, courseID, lessons[0], 10)
	require.NoError(t, err)
	assert.True(t, justCompleted)
	assert.Equal(t, 100, e.CompletionRate)
	require.NotNil(t, e.CompletedAt)
}

func TestRecordCompletionConcurrentDistinctLessons(t *testing.T) {
	db := newTestDB(t)

	// sqlite has no FOR UPDATE; a single pooled connection serializes the
	// transactions the way the postgres row lock does, while both callers
	// still race through the transactional read-merge-write path.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	courseID, lessons := seedCourse(t, db, 2)
	enroll(t, db, 1, courseID)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = RecordCompletion(db, 1, courseID, lessons[i], 60)
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	var e Enrollment
	require.NoError(t, db.Where("student_id = ? AND course_id = ?", 1, courseID).First(&e).Error)
	assert.Equal(t, set(lessons[0], lessons[1]), e.CompletedLessonIDs())
	assert.Equal(t, 100, e.CompletionRate)
}

func set(ids ...uint) map[uint]struct{} {
	s := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func TestRecordCompletionTwoStudentsIsolated(t *testing.T) {
	db := newTestDB(t)
	courseID, lessons := seedCourse(t, db, 2)
	enroll(t, db, 1, courseID)
	enroll(t, db, 2, courseID)

	_, _, err := RecordCompletion(db, 1, courseID, lessons[0], 10)
	require.NoError(t, err)

	var other Enrollment
	require.NoError(t, db.Where("student_id = ? AND course_id = ?", 2, courseID).First(&other).Error)
	assert.Empty(t, other.Progress)
	assert.Equal(t, 0, other.CompletionRate)
}
