package utils

import (
	"log"
	"time"

	"nexora/database"
	"nexora/models"
	courseModels "nexora/models/course"
	"nexora/progress"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// StartSchedulers registers and starts the background cron jobs.
func StartSchedulers() *cron.Cron {
	c := cron.New()

	// Nightly coupon expiry sweep
	c.AddFunc("0 1 * * *", deactivateExpiredCoupons)

	// Nightly completion-rate resync against current lesson counts; lessons
	// added or removed by instructors shift the denominator.
	c.AddFunc("0 2 * * *", resyncCompletionRates)

	c.Start()
	logScheduler("Schedulers started")
	return c
}

// deactivateExpiredCoupons flips is_active off for coupons past their window
func deactivateExpiredCoupons() {
	db := database.Database.Db

	result := db.Model(&models.Coupon{}).
		Where("is_active = ? AND valid_until < ? AND is_deleted = ?", true, time.Now(), false).
		Update("is_active", false)
	if result.Error != nil {
		logScheduler("Error deactivating expired coupons: " + result.Error.Error())
		return
	}
	if result.RowsAffected > 0 {
		logScheduler("Deactivated expired coupons")
	}
}

// resyncCompletionRates recomputes stored completion rates. It never touches
// completed_at: that is set only on the write path, the first time the rate
// reaches 100.
func resyncCompletionRates() {
	db := database.Database.Db

	var courseIDs []uint
	if err := db.Model(&courseModels.Enrollment{}).
		Where("is_deleted = ?", false).
		Distinct("course_id").
		Pluck("course_id", &courseIDs).Error; err != nil {
		logScheduler("Error listing enrolled courses: " + err.Error())
		return
	}

	for _, courseID := range courseIDs {
		var total int64
		if err := db.Model(&courseModels.Lesson{}).
			Where("course_id = ? AND is_deleted = ?", courseID, false).
			Count(&total).Error; err != nil {
			logScheduler("Error counting lessons: " + err.Error())
			continue
		}

		var enrollments []courseModels.Enrollment
		if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
			Find(&enrollments).Error; err != nil {
			logScheduler("Error loading enrollments: " + err.Error())
			continue
		}

		for _, e := range enrollments {
			rate := progress.Rate(len(e.Progress), int(total))
			if rate == e.CompletionRate {
				continue
			}
			if err := db.Model(&courseModels.Enrollment{}).
				Where("id = ?", e.ID).
				Update("completion_rate", rate).Error; err != nil {
				logScheduler("Error resyncing enrollment: " + err.Error())
			}
		}
	}
}
