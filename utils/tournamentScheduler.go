package utils

import (
	"log"
	"strconv"
	"time"

	"arena-app/database"
	"arena-app/models"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[TOURNAMENT-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// processTournamentWindows moves tournaments through their time-driven
// states. Registration slots and entry fees are untouched here; those belong
// to the registration flow.
func processTournamentWindows() {
	db := database.Database.Db
	now := time.Now()

	// DRAFT -> REGISTRATION_OPEN when the window opens
	res := db.Model(&models.Tournament{}).
		Where("status = ? AND registration_opens_at <= ? AND is_deleted = false", models.TournamentDraft, now).
		Update("status", models.TournamentRegistrationOpen)
	if res.Error != nil {
		logScheduler("Error opening registrations: " + res.Error.Error())
	} else if res.RowsAffected > 0 {
		logScheduler("Opened registration for " + strconv.FormatInt(res.RowsAffected, 10) + " tournament(s)")
	}

	// REGISTRATION_OPEN -> REGISTRATION_CLOSED when the window ends
	res = db.Model(&models.Tournament{}).
		Where("status = ? AND registration_closes_at <= ? AND is_deleted = false", models.TournamentRegistrationOpen, now).
		Update("status", models.TournamentRegistrationClosed)
	if res.Error != nil {
		logScheduler("Error closing registrations: " + res.Error.Error())
	} else if res.RowsAffected > 0 {
		logScheduler("Closed registration for " + strconv.FormatInt(res.RowsAffected, 10) + " tournament(s)")
	}

	// REGISTRATION_CLOSED -> LIVE at start time
	res = db.Model(&models.Tournament{}).
		Where("status = ? AND starts_at <= ? AND is_deleted = false", models.TournamentRegistrationClosed, now).
		Update("status", models.TournamentLive)
	if res.Error != nil {
		logScheduler("Error starting tournaments: " + res.Error.Error())
	} else if res.RowsAffected > 0 {
		logScheduler("Started " + strconv.FormatInt(res.RowsAffected, 10) + " tournament(s)")
	}
}

// StartTournamentScheduler runs the window transitions every minute
func StartTournamentScheduler() {
	c := cron.New()

	_, err := c.AddFunc("* * * * *", processTournamentWindows)
	if err != nil {
		log.Fatalf("Failed to schedule tournament processing: %v", err)
	}

	c.Start()
	logScheduler("Tournament scheduler started")
}
