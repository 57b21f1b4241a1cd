package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func set(ids ...uint) map[uint]struct{} {
	s := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func TestApplyAppendsNewLesson(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	log := Apply(nil, 7, 120, now)

	require.Len(t, log, 1)
	assert.Equal(t, uint(7), log[0].LessonID)
	assert.Equal(t, 120, log[0].WatchTime)
	assert.Equal(t, now, log[0].CompletedAt)
}

func TestApplyIsIdempotent(t *testing.T) {
	now := time.Now()

	once := Apply(nil, 7, 120, now)
	twice := Apply(once, 7, 120, now.Add(time.Hour))

	assert.Equal(t, once, twice)
}

func TestApplyWatchTimeNeverRegresses(t *testing.T) {
	now := time.Now()

	log := Apply(nil, 7, 50, now)
	log = Apply(log, 7, 30, now.Add(time.Minute))

	require.Len(t, log, 1)
	assert.Equal(t, 50, log[0].WatchTime)
}

func TestApplyKeepsFirstCompletionTimestamp(t *testing.T) {
	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	later := first.Add(48 * time.Hour)

	log := Apply(nil, 7, 50, first)
	log = Apply(log, 7, 500, later)

	require.Len(t, log, 1)
	assert.Equal(t, 500, log[0].WatchTime)
	assert.Equal(t, first, log[0].CompletedAt)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	now := time.Now()
	log := Apply(nil, 1, 10, now)

	_ = Apply(log, 1, 99, now)
	_ = Apply(log, 2, 5, now)

	require.Len(t, log, 1)
	assert.Equal(t, 10, log[0].WatchTime)
}

func TestApplyIsCommutativeAcrossLessons(t *testing.T) {
	// Two concurrent completion reports for different lessons must both
	// survive regardless of apply order.
	now := time.Now()

	ab := Apply(Apply(nil, 1, 60, now), 2, 90, now)
	ba := Apply(Apply(nil, 2, 90, now), 1, 60, now)

	assert.ElementsMatch(t, ab, ba)
	assert.Len(t, ab, 2)
}

func TestRate(t *testing.T) {
	assert.Equal(t, 25, Rate(1, 4))
	assert.Equal(t, 75, Rate(3, 4))
	assert.Equal(t, 100, Rate(4, 4))
	assert.Equal(t, 33, Rate(1, 3))
	assert.Equal(t, 67, Rate(2, 3))
}

func TestRateClampedWhenRecordsOutnumberLessons(t *testing.T) {
	// Records for removed lessons linger in the log
	assert.Equal(t, 100, Rate(3, 2))
	assert.Equal(t, 100, Rate(5, 4))
	assert.Equal(t, 100, Rate(2, 2))
}

func TestRateZeroLessonCourse(t *testing.T) {
	assert.Equal(t, 0, Rate(0, 0))
	assert.Equal(t, 0, Rate(5, 0))
}

func TestCompletedSet(t *testing.T) {
	now := time.Now()
	log := []Record{
		{LessonID: 1, WatchTime: 10, CompletedAt: now},
		{LessonID: 3, WatchTime: 20, CompletedAt: now},
	}

	got := CompletedSet(log)

	assert.Equal(t, set(1, 3), got)
}

func TestAccessibilitySequentialGating(t *testing.T) {
	sequence := []uint{1, 2, 3}

	access := Accessibility(sequence, set(1))

	require.Len(t, access, 3)
	assert.Equal(t, StateCompleted, access[0].State)
	assert.Equal(t, StateUnlocked, access[1].State)
	assert.Equal(t, StateLocked, access[2].State)
	assert.False(t, access[1].Locked)
	assert.True(t, access[2].Locked)
}

func TestAccessibilityFirstLessonAlwaysOpen(t *testing.T) {
	access := Accessibility([]uint{10, 11}, set())

	assert.Equal(t, StateUnlocked, access[0].State)
	assert.Equal(t, StateLocked, access[1].State)
}

func TestAccessibilityFullyCompletedCourseStaysReplayable(t *testing.T) {
	// A lesson inserted after completion must come up unlocked, not locked.
	access := Accessibility([]uint{1, 99, 2, 3}, set(1, 2, 3))

	require.Len(t, access, 4)
	assert.Equal(t, StateCompleted, access[0].State)
	assert.Equal(t, StateUnlocked, access[1].State)
	assert.Equal(t, StateCompleted, access[2].State)
	assert.Equal(t, StateCompleted, access[3].State)
}

func TestAccessibilityPartialHoleFallsBackToSequentialRule(t *testing.T) {
	// B missing from {A, B, C} means allCompleted is false, but B still
	// unlocks because its predecessor A is completed.
	access := Accessibility([]uint{1, 2, 3}, set(1, 3))

	require.Len(t, access, 3)
	assert.Equal(t, StateCompleted, access[0].State)
	assert.Equal(t, StateUnlocked, access[1].State)
	assert.Equal(t, StateCompleted, access[2].State)
}

func TestAccessibilityIgnoresForeignCompletedIDs(t *testing.T) {
	access := Accessibility([]uint{1, 2}, set(777))

	assert.Equal(t, StateUnlocked, access[0].State)
	assert.Equal(t, StateLocked, access[1].State)
}

func TestAccessibilityEmptySequence(t *testing.T) {
	assert.Empty(t, Accessibility(nil, set(1)))
}

func TestAllCompleted(t *testing.T) {
	assert.True(t, AllCompleted([]uint{1, 2}, set(1, 2)))
	assert.False(t, AllCompleted([]uint{1, 2}, set(1)))

	// Extra foreign ids do not help.
	assert.False(t, AllCompleted([]uint{1, 2}, set(1, 42)))

	// Empty courses never qualify for a certificate.
	assert.False(t, AllCompleted(nil, set(1)))
	assert.False(t, AllCompleted([]uint{}, set()))
}
