package notifications

import (
	"context"

	"storefront/internal/pricing"
	"storefront/pkg/logger"
)

// Publisher turns checkout outcomes into notifications. Publishing failures
// are logged and never reach the checkout flow.
type Publisher struct {
	producer Producer
	logger   *logger.Logger
}

func NewPublisher(producer Producer) *Publisher {
	if producer == nil {
		producer = NoopProducer{}
	}
	return &Publisher{
		producer: producer,
		logger:   logger.GetDefault(),
	}
}

// BookingConfirmed publishes a confirmed booking
func (p *Publisher) BookingConfirmed(ctx context.Context, referenceID, experienceID, email, slot string, summary pricing.Summary) {
	notification := NewNotificationBuilder().
		WithType(NotificationTypeBookingConfirmed).
		WithExperience(experienceID).
		WithReference(referenceID).
		WithEmail(email).
		WithPayload("slot", slot).
		WithPayload("quantity", summary.Quantity).
		WithPayload("total", summary.Total).
		Build()

	p.publish(ctx, notification)
}

// BookingRejected publishes a booking the collaborator refused
func (p *Publisher) BookingRejected(ctx context.Context, experienceID, email, slot, reason string) {
	notification := NewNotificationBuilder().
		WithType(NotificationTypeBookingRejected).
		WithExperience(experienceID).
		WithEmail(email).
		WithPayload("slot", slot).
		WithPayload("reason", reason).
		Build()

	p.publish(ctx, notification)
}

// PromoApplied publishes an accepted promo code
func (p *Publisher) PromoApplied(ctx context.Context, experienceID, code string, discount pricing.Discount) {
	notification := NewNotificationBuilder().
		WithType(NotificationTypePromoApplied).
		WithExperience(experienceID).
		WithPayload("code", code).
		WithPayload("kind", discount.Kind.String()).
		WithPayload("value", discount.Value).
		Build()

	p.publish(ctx, notification)
}

func (p *Publisher) publish(ctx context.Context, notification *Notification) {
	if err := p.producer.Publish(ctx, notification); err != nil {
		p.logger.ErrorWithContext(ctx, "Failed to publish notification", err, map[string]interface{}{
			"notification_type": notification.Type,
			"experience_id":     notification.ExperienceID,
		})
	}
}

// Close releases the underlying producer
func (p *Publisher) Close() error {
	return p.producer.Close()
}
