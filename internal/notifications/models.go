package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeBookingConfirmed NotificationType = "BOOKING_CONFIRMED"
	NotificationTypeBookingRejected  NotificationType = "BOOKING_REJECTED"
	NotificationTypePromoApplied     NotificationType = "PROMO_APPLIED"
)

type NotificationPriority string

const (
	NotificationPriorityLow    NotificationPriority = "LOW"
	NotificationPriorityMedium NotificationPriority = "MEDIUM"
	NotificationPriorityHigh   NotificationPriority = "HIGH"
)

// Notification is a checkout event published for downstream consumers
type Notification struct {
	ID           uuid.UUID              `json:"id"`
	Type         NotificationType       `json:"type"`
	Priority     NotificationPriority   `json:"priority"`
	ExperienceID string                 `json:"experience_id"`
	ReferenceID  string                 `json:"reference_id,omitempty"`
	Email        string                 `json:"email,omitempty"`
	Payload      map[string]interface{} `json:"payload,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

type NotificationBuilder struct {
	notification *Notification
}

func NewNotificationBuilder() *NotificationBuilder {
	return &NotificationBuilder{
		notification: &Notification{
			ID:        uuid.New(),
			CreatedAt: time.Now().UTC(),
			Payload:   make(map[string]interface{}),
		},
	}
}

func (nb *NotificationBuilder) WithType(notType NotificationType) *NotificationBuilder {
	nb.notification.Type = notType
	nb.notification.Priority = GetDefaultPriority(notType)
	return nb
}

func (nb *NotificationBuilder) WithExperience(experienceID string) *NotificationBuilder {
	nb.notification.ExperienceID = experienceID
	return nb
}

func (nb *NotificationBuilder) WithReference(referenceID string) *NotificationBuilder {
	nb.notification.ReferenceID = referenceID
	return nb
}

func (nb *NotificationBuilder) WithEmail(email string) *NotificationBuilder {
	nb.notification.Email = email
	return nb
}

func (nb *NotificationBuilder) WithPayload(key string, value interface{}) *NotificationBuilder {
	nb.notification.Payload[key] = value
	return nb
}

func (nb *NotificationBuilder) Build() *Notification {
	return nb.notification
}

func GetDefaultPriority(notType NotificationType) NotificationPriority {
	switch notType {
	case NotificationTypeBookingConfirmed:
		return NotificationPriorityHigh
	case NotificationTypeBookingRejected:
		return NotificationPriorityMedium
	default:
		return NotificationPriorityLow
	}
}

// GetPartitionKey keeps every event of one experience on one partition
func (n *Notification) GetPartitionKey() string {
	return n.ExperienceID
}

func (n *Notification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}
