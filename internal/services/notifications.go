package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/harentsoaR/wedding-api/internal/models"
)

// NotificationService sends booking confirmation SMS via Textbelt.
// Disabled (no-op) when no API key is configured.
type NotificationService struct {
	apiKey string
	log    zerolog.Logger
}

func NewNotificationService(apiKey string, log zerolog.Logger) *NotificationService {
	return &NotificationService{apiKey: apiKey, log: log}
}

// SendBookingConfirmationSMS notifies the user about their booking,
// using the account's contact details as the phone number. Runs in a
// goroutine so it never blocks the API response.
func (s *NotificationService) SendBookingConfirmationSMS(user *models.User, booking *models.Booking, packageName string) {
	if s.apiKey == "" {
		return
	}
	if user.ContactDetails == "" {
		s.log.Info().Str("user", user.Username).Msg("SMS not sent: no contact details on account")
		return
	}

	smsBody := fmt.Sprintf(
		"Booking %s: %s on %s.",
		booking.Status,
		packageName,
		booking.BookingDate.Format("Jan 2, 2006"),
	)

	go s.sendSmsWithTextbelt(user.ContactDetails, smsBody)
}

func (s *NotificationService) sendSmsWithTextbelt(phone, message string) {
	postBody, _ := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
		"key":     s.apiKey,
	})

	resp, err := http.Post("https://textbelt.com/text", "application/json", bytes.NewBuffer(postBody))
	if err != nil {
		s.log.Error().Err(err).Str("phone", phone).Msg("Textbelt request failed")
		return
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&result)

	if success, _ := result["success"].(bool); !success {
		errorMsg, _ := result["error"].(string)
		s.log.Error().Str("phone", phone).Str("reason", errorMsg).Msg("Textbelt SMS rejected")
		return
	}
	s.log.Info().Str("phone", phone).Msg("booking SMS sent")
}
