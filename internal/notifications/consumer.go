package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	"carpool-service/internal/events"
	"carpool-service/internal/models"
	"carpool-service/pkg/kafka"
	"carpool-service/pkg/logger"
)

// Consumer fans booking and verification events out as notifications.
// Delivery is the log for now; the consume loop is where a mailer or push
// gateway would plug in.
type Consumer struct {
	kafka *kafka.Client
	log   logger.ILogger
}

func NewConsumer(k *kafka.Client, log logger.ILogger) *Consumer {
	return &Consumer{kafka: k, log: log}
}

// Start begins consuming in background goroutines; they stop with ctx.
func (c *Consumer) Start(ctx context.Context) {
	c.kafka.Subscribe(ctx, kafka.TopicBookingCreated, "notifications-booking", func(data []byte) error {
		var ev events.BookingCreatedEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return err
		}
		c.notify(ev.DriverID, fmt.Sprintf(
			"Booking %s confirmed: %d seat(s) on ride %s, %d left",
			ev.BookingID, ev.SeatsBooked, ev.RideID, ev.SeatsLeft))
		return nil
	})

	c.kafka.Subscribe(ctx, kafka.TopicCarVerified, "notifications-car", func(data []byte) error {
		var ev events.CarVerifiedEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return err
		}
		verdict := "approved"
		if ev.Status == models.VerificationRejected {
			verdict = "rejected"
		}
		c.notify(ev.OwnerID, fmt.Sprintf(
			"Car %s (%s) was %s", ev.CarID, ev.RegistrationNumber, verdict))
		return nil
	})
}

func (c *Consumer) notify(userID, message string) {
	c.log.Info("notification",
		logger.String("user_id", userID),
		logger.String("message", message))
}
