package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"membership-platform/models"
	"membership-platform/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultExpoPushURL = "https://exp.host/--/api/v2/push/send"

// The Expo gateway accepts at most 100 messages per request.
const expoPushChunkSize = 100

// ExpoPushMessage is one message in an Expo push gateway request.
type ExpoPushMessage struct {
	To    string                 `json:"to"`
	Title string                 `json:"title"`
	Body  string                 `json:"body,omitempty"`
	Data  map[string]interface{} `json:"data,omitempty"`
	Sound string                 `json:"sound,omitempty"`
}

// NotificationService writes in-app notification rows and forwards them to
// the Expo push gateway for users with a registered device token.
type NotificationService struct {
	DB         *gorm.DB
	PushURL    string
	httpClient *http.Client
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{
		DB:         db,
		PushURL:    defaultExpoPushURL,
		httpClient: utils.HTTPClient,
	}
}

// NotifyPoints records a "you earned points" notification for one user.
// Called fire-and-forget from the ledger; errors are logged, never returned.
func (s *NotificationService) NotifyPoints(userID string, amount int, reason string) {
	body := reason
	n := models.Notification{
		ID:     uuid.NewString(),
		UserID: userID,
		Title:  fmt.Sprintf("You earned %d points!", amount),
		Body:   &body,
		Type:   models.NotificationPoints,
	}
	if err := s.DB.Create(&n).Error; err != nil {
		log.Printf("⚠️ [NOTIFY] failed to insert points notification for %s: %v", userID, err)
		return
	}

	var profile models.Profile
	if err := s.DB.Select("push_token").First(&profile, "id = ?", userID).Error; err != nil {
		return
	}
	if profile.PushToken == nil {
		return
	}
	s.sendPush([]string{*profile.PushToken}, n.Title, body, nil)
}

// Broadcast inserts an in-app notification for every profile with the
// target role ("" or "all" targets everyone) and pushes to those with valid
// Expo tokens. Returns (inApp, pushed).
func (s *NotificationService) Broadcast(title, body string, nType models.NotificationType, targetRole, actionURL string) (int, int, error) {
	if title == "" {
		return 0, 0, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if nType == "" {
		nType = models.NotificationSystem
	}

	query := s.DB.Model(&models.Profile{}).Select("id", "push_token")
	if targetRole != "" && targetRole != "all" {
		query = query.Where("role = ?", targetRole)
	}
	var targets []models.Profile
	if err := query.Find(&targets).Error; err != nil {
		return 0, 0, fmt.Errorf("broadcast: fetch targets: %w", err)
	}
	if len(targets) == 0 {
		return 0, 0, nil
	}

	rows := make([]models.Notification, 0, len(targets))
	for _, t := range targets {
		n := models.Notification{
			ID:     uuid.NewString(),
			UserID: t.ID,
			Title:  title,
			Type:   nType,
		}
		if body != "" {
			b := body
			n.Body = &b
		}
		if actionURL != "" {
			u := actionURL
			n.ActionURL = &u
		}
		rows = append(rows, n)
	}
	if err := s.DB.CreateInBatches(rows, 200).Error; err != nil {
		return 0, 0, fmt.Errorf("broadcast: insert notifications: %w", err)
	}

	var data map[string]interface{}
	if actionURL != "" {
		data = map[string]interface{}{"action_url": actionURL}
	}
	var tokens []string
	for _, t := range targets {
		if t.PushToken != nil {
			tokens = append(tokens, *t.PushToken)
		}
	}
	pushed := s.sendPush(tokens, title, body, data)

	return len(targets), pushed, nil
}

// sendPush posts messages to the Expo gateway in chunks. Invalid tokens are
// filtered out; delivery failures are logged and counted as not pushed.
func (s *NotificationService) sendPush(tokens []string, title, body string, data map[string]interface{}) int {
	var messages []ExpoPushMessage
	for _, token := range tokens {
		if !strings.HasPrefix(token, "ExponentPushToken[") {
			continue
		}
		messages = append(messages, ExpoPushMessage{
			To:    token,
			Title: title,
			Body:  body,
			Data:  data,
			Sound: "default",
		})
	}

	pushed := 0
	for i := 0; i < len(messages); i += expoPushChunkSize {
		end := i + expoPushChunkSize
		if end > len(messages) {
			end = len(messages)
		}
		chunk := messages[i:end]

		payload, err := json.Marshal(chunk)
		if err != nil {
			log.Printf("⚠️ [NOTIFY] failed to marshal push chunk: %v", err)
			continue
		}
		resp, err := s.httpClient.Post(s.PushURL, "application/json", bytes.NewReader(payload))
		if err != nil {
			log.Printf("⚠️ [NOTIFY] push gateway request failed: %v", err)
			continue
		}
		resp.Body.Close()
		if resp.StatusCode == http.StatusOK {
			pushed += len(chunk)
		} else {
			log.Printf("⚠️ [NOTIFY] push gateway returned %d for chunk of %d", resp.StatusCode, len(chunk))
		}
	}
	return pushed
}

// ListForUser returns the user's notifications, newest first.
func (s *NotificationService) ListForUser(userID string, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var notifications []models.Notification
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

// MarkRead marks one notification read; MarkAllRead marks every unread one.
func (s *NotificationService) MarkRead(userID, notificationID string) error {
	res := s.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *NotificationService) MarkAllRead(userID string) (int64, error) {
	res := s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}
