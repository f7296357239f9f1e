package handlers

import (
	"fmt"
	"log"
	"net/http"

	"buildstock/internal/models"
	"buildstock/internal/services"

	"github.com/labstack/echo/v4"
)

// NotificationHandlers manages the outbound alert channel configuration.
type NotificationHandlers struct {
	notificationService services.NotificationService
}

func NewNotificationHandlers(notificationService services.NotificationService) *NotificationHandlers {
	return &NotificationHandlers{notificationService: notificationService}
}

func (h *NotificationHandlers) GetConfig(c echo.Context) error {
	ctx := c.Request().Context()

	config, err := h.notificationService.GetConfig(ctx)
	if err != nil {
		log.Printf("Failed to load notification config: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load notification config")
	}
	if config == nil {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"channels": []string{},
			"message":  "No notification channels configured; alerts are logged only",
		})
	}

	return c.JSON(http.StatusOK, config)
}

// UpdateConfigRequest sets the active channels and their destinations.
type UpdateConfigRequest struct {
	Channels       []string `json:"channels"`
	WebhookURL     string   `json:"webhook_url"`
	EmailRecipient string   `json:"email_recipient"`
	SMSRecipient   string   `json:"sms_recipient"`
}

func (h *NotificationHandlers) UpdateConfig(c echo.Context) error {
	ctx := c.Request().Context()

	var req UpdateConfigRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := validateChannels(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	config := &models.NotificationConfig{
		Channels:       req.Channels,
		WebhookURL:     req.WebhookURL,
		EmailRecipient: req.EmailRecipient,
		SMSRecipient:   req.SMSRecipient,
	}

	if err := h.notificationService.UpdateConfig(ctx, config); err != nil {
		log.Printf("Failed to update notification config: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update notification config")
	}

	return c.JSON(http.StatusOK, config)
}

func validateChannels(req *UpdateConfigRequest) error {
	for _, channel := range req.Channels {
		switch channel {
		case models.NotificationTypeWebhook:
			if req.WebhookURL == "" {
				return fmt.Errorf("webhook channel requires webhook_url")
			}
		case models.NotificationTypeEmail:
			if req.EmailRecipient == "" {
				return fmt.Errorf("email channel requires email_recipient")
			}
		case models.NotificationTypeSMS:
			if req.SMSRecipient == "" {
				return fmt.Errorf("sms channel requires sms_recipient")
			}
		default:
			return fmt.Errorf("unsupported notification channel: %s", channel)
		}
	}
	return nil
}
