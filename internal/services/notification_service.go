package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"buildstock/internal/models"

	"github.com/redis/go-redis/v9"
)

const notificationConfigKey = "buildstock:notification:config"

// NotificationService hands finished alert payloads to the configured
// outbound channels. Channel selection lives in Redis and is managed
// independently of the detection core; email and SMS transport are external
// integrations, so those sends are logged handoffs only.
type NotificationService interface {
	DispatchAlert(ctx context.Context, alert *models.AlertRecord) error
	UpdateConfig(ctx context.Context, config *models.NotificationConfig) error
	GetConfig(ctx context.Context) (*models.NotificationConfig, error)
	SendWebhook(ctx context.Context, url string, payload any) error
	SendEmail(ctx context.Context, recipient, subject, body string) error
	SendSMS(ctx context.Context, recipient, message string) error
}

type notificationService struct {
	redisClient *redis.Client
	httpClient  *http.Client
}

func NewNotificationService(redisAddr, redisPassword string, redisDB int) NotificationService {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       redisDB,
	})

	return &notificationService{
		redisClient: redisClient,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

// DispatchAlert sends the alert over every configured channel. With no
// configuration present the alert is logged, so a finding is never silently
// discarded. The first channel failure is returned; remaining channels are
// still attempted.
func (s *notificationService) DispatchAlert(ctx context.Context, alert *models.AlertRecord) error {
	config, err := s.GetConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load notification config: %w", err)
	}
	if config == nil || len(config.Channels) == 0 {
		log.Printf("[ALERT] no notification channels configured: %s severity=%s warehouse=%s material=%s shortage=%.2f %s",
			alert.Status, alert.Severity, alert.Warehouse.Name, alert.Material.Name, alert.Material.Shortage, alert.Material.Unit)
		return nil
	}

	subject := fmt.Sprintf("Stock alert [%s]: %s at %s", alert.Severity, alert.Material.Name, alert.Warehouse.Name)

	var firstErr error
	for _, channel := range config.Channels {
		var sendErr error
		switch channel {
		case models.NotificationTypeWebhook:
			sendErr = s.SendWebhook(ctx, config.WebhookURL, alert)
		case models.NotificationTypeEmail:
			body, _ := json.MarshalIndent(alert, "", "  ")
			sendErr = s.SendEmail(ctx, config.EmailRecipient, subject, string(body))
		case models.NotificationTypeSMS:
			message := fmt.Sprintf("%s: %s short %.0f %s at %s. %s",
				alert.Severity, alert.Material.Name, alert.Material.Shortage, alert.Material.Unit,
				alert.Warehouse.Name, alert.RecommendedAction)
			sendErr = s.SendSMS(ctx, config.SMSRecipient, message)
		default:
			sendErr = fmt.Errorf("unsupported notification channel: %s", channel)
		}

		if sendErr != nil {
			log.Printf("Failed to dispatch alert via %s: %v", channel, sendErr)
			if firstErr == nil {
				firstErr = sendErr
			}
		}
	}

	return firstErr
}

func (s *notificationService) UpdateConfig(ctx context.Context, config *models.NotificationConfig) error {
	config.UpdatedAt = time.Now()
	data, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal notification config: %w", err)
	}
	return s.redisClient.Set(ctx, notificationConfigKey, data, 0).Err()
}

func (s *notificationService) GetConfig(ctx context.Context) (*models.NotificationConfig, error) {
	data, err := s.redisClient.Get(ctx, notificationConfigKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var config models.NotificationConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal notification config: %w", err)
	}
	return &config, nil
}

func (s *notificationService) SendWebhook(ctx context.Context, url string, payload any) error {
	if url == "" {
		return fmt.Errorf("webhook channel enabled but no URL configured")
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned non-success status: %d", resp.StatusCode)
	}

	return nil
}

// SendEmail hands the message to the external email integration.
func (s *notificationService) SendEmail(ctx context.Context, recipient, subject, body string) error {
	if recipient == "" {
		return fmt.Errorf("email channel enabled but no recipient configured")
	}
	log.Printf("[EMAIL] To=%s, Subject=%s", recipient, subject)
	return nil
}

// SendSMS hands the message to the external SMS integration.
func (s *notificationService) SendSMS(ctx context.Context, recipient, message string) error {
	if recipient == "" {
		return fmt.Errorf("sms channel enabled but no recipient configured")
	}
	log.Printf("[SMS] To=%s, Message=%s", recipient, message)
	return nil
}
