package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/medvault/booking-api/internal/models"
)

// NotificationService sends booking confirmations over SMS via Textbelt.
// Delivery is best-effort: failures are logged and never affect the booking.
type NotificationService struct {
	key string
}

func NewNotificationService(textbeltKey string) *NotificationService {
	return &NotificationService{key: textbeltKey}
}

// BookingConfirmed notifies the patient that their checkout went through.
// Runs the send in a goroutine so the booking response is never blocked.
func (s *NotificationService) BookingConfirmed(patient *models.User, doctor *models.Doctor, b *models.Booking) {
	if s.key == "" || patient.Phone == "" {
		return
	}

	message := fmt.Sprintf(
		"Appointment confirmed with Dr. %s on %s at %s.",
		doctor.Name, b.Date, b.Time,
	)
	go s.send(patient.Phone, message)
}

func (s *NotificationService) send(phone, message string) {
	postBody, _ := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
		"key":     s.key,
	})

	resp, err := http.Post("https://textbelt.com/text", "application/json", bytes.NewBuffer(postBody))
	if err != nil {
		log.Printf("Failed to send Textbelt request for number %s: %v", phone, err)
		return
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)

	if success, _ := result["success"].(bool); !success {
		errorMsg, _ := result["error"].(string)
		log.Printf("Failed to send SMS via Textbelt to %s. Reason: %s", phone, errorMsg)
	}
}
