package utils

import (
	"log"
	"time"

	"arena-app/config"
	"arena-app/database"
	"arena-app/models"

	"github.com/go-resty/resty/v2"
)

// Notifications are dispatched only after the financial operation has
// committed. Failures are logged and swallowed; they never unwind a ledger
// write. Call from a goroutine.

// NotifyUser stores an in-app notification row and forwards it to the push
// gateway.
func NotifyUser(userID uint, kind, title, body string) {
	notification := models.Notification{
		UserID: userID,
		Kind:   kind,
		Title:  title,
		Body:   body,
	}
	if err := database.Database.Db.Create(&notification).Error; err != nil {
		log.Printf("Error saving notification for user %d: %v", userID, err)
	}

	sendPush(userID, title, body)
}

// sendPush posts the notification to the configured push gateway
func sendPush(userID uint, title, body string) {
	client := resty.New().SetTimeout(10 * time.Second)

	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.PushApiKey).
		SetBody(map[string]interface{}{
			"userId": userID,
			"title":  title,
			"body":   body,
		}).
		Post(config.AppConfig.PushApiURL)
	if err != nil {
		log.Printf("Error calling push gateway: %v", err)
		return
	}
	if resp.IsError() {
		log.Printf("Push gateway returned %d for user %d", resp.StatusCode(), userID)
	}
}
