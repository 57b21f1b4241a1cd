// Package progress implements the course progress ledger and the lesson
// unlock policy shared by the enrollment, certificate and quiz flows.
package progress

import (
	"math"
	"time"
)

// Record is a single lesson completion inside an enrollment's progress log.
// There is at most one record per lesson; repeated completion reports merge
// into the existing record.
type Record struct {
	LessonID    uint      `json:"lessonId"`
	WatchTime   int       `json:"watchTime"` // seconds
	CompletedAt time.Time `json:"completedAt"`
}

// Apply records a lesson completion into the log and returns the updated log.
// A first report for a lesson appends a record stamped with now. A repeat
// report keeps the original CompletedAt and only raises WatchTime, never
// lowers it, which makes Apply idempotent and commutative under retries.
func Apply(log []Record, lessonID uint, watchTime int, now time.Time) []Record {
	for i, rec := range log {
		if rec.LessonID == lessonID {
			if watchTime > rec.WatchTime {
				updated := make([]Record, len(log))
				copy(updated, log)
				updated[i].WatchTime = watchTime
				return updated
			}
			return log
		}
	}

	updated := make([]Record, len(log), len(log)+1)
	copy(updated, log)
	return append(updated, Record{
		LessonID:    lessonID,
		WatchTime:   watchTime,
		CompletedAt: now,
	})
}

// CompletedSet returns the set of lesson ids present in the log.
func CompletedSet(log []Record) map[uint]struct{} {
	set := make(map[uint]struct{}, len(log))
	for _, rec := range log {
		set[rec.LessonID] = struct{}{}
	}
	return set
}

// Rate returns the completion percentage rounded to the nearest integer and
// clamped to 100: records for since-removed lessons stay in the log, so the
// record count can exceed the current lesson total. A course with no lessons
// is 0% complete, not 100%.
func Rate(completed, total int) int {
	if total <= 0 {
		return 0
	}
	if completed >= total {
		return 100
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// State describes a lesson's accessibility for a student.
type State string

const (
	StateCompleted State = "completed"
	StateUnlocked  State = "unlocked"
	StateLocked    State = "locked"
)

// Access is the per-lesson result of the unlock policy.
type Access struct {
	LessonID uint  `json:"lessonId"`
	State    State `json:"state"`
	Locked   bool  `json:"locked"`
}

// Accessibility applies the sequential unlock policy to a flattened lesson
// sequence. A lesson is completed when its id is in the completed set,
// unlocked when it is the first lesson or its immediate predecessor is
// completed, and locked otherwise. Once every lesson in the sequence has been
// completed the whole course stays replayable even if the lesson list later
// changes shape, so a finished course never re-locks.
//
// Completed ids that do not appear in the sequence are ignored.
func Accessibility(sequence []uint, completed map[uint]struct{}) []Access {
	allCompleted := AllCompleted(sequence, completed)

	access := make([]Access, len(sequence))
	for i, lessonID := range sequence {
		var state State
		switch {
		case has(completed, lessonID):
			state = StateCompleted
		case allCompleted:
			state = StateUnlocked
		case i == 0:
			state = StateUnlocked
		case has(completed, sequence[i-1]):
			state = StateUnlocked
		default:
			state = StateLocked
		}
		access[i] = Access{
			LessonID: lessonID,
			State:    state,
			Locked:   state == StateLocked,
		}
	}
	return access
}

// AllCompleted reports whether every lesson in the sequence has a completion
// record. This is the exact certificate gate: a rounded completion rate of
// 100 is not sufficient, the full set containment is.
func AllCompleted(sequence []uint, completed map[uint]struct{}) bool {
	if len(sequence) == 0 {
		return false
	}
	for _, lessonID := range sequence {
		if !has(completed, lessonID) {
			return false
		}
	}
	return true
}

func has(set map[uint]struct{}, id uint) bool {
	_, ok := set[id]
	return ok
}
