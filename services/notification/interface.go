package notification

import (
	"context"
	"fmt"
	"strconv"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"

	"asokatrip/models"
	"asokatrip/utils"
)

// Sender is the part of the FCM client used here.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// NotificationService defines methods for sending FCM pushes to the admin devices.
type NotificationService interface {
	SendAdminPushNotification(ctx context.Context, title, body string, data map[string]string) error
	NotifyNewBooking(ctx context.Context, b *models.Booking) error
}

// DefaultNotificationService publishes to an FCM topic the admin apps subscribe to.
type DefaultNotificationService struct {
	client Sender
	topic  string
}

func NewDefaultNotificationService(client Sender, topic string) (*DefaultNotificationService, error) {
	if client == nil {
		return nil, fmt.Errorf("notification service initialization error: messaging client is nil")
	}
	if topic == "" {
		return nil, fmt.Errorf("notification service initialization error: topic is empty")
	}
	return &DefaultNotificationService{client: client, topic: topic}, nil
}

func (s *DefaultNotificationService) SendAdminPushNotification(
	ctx context.Context,
	title, body string,
	data map[string]string,
) error {
	msg := &messaging.Message{
		Topic: s.topic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "bookings",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	response, err := s.client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("SendAdminPushNotification: failed to send FCM message: %w", err)
	}
	utils.GetLogger().Debug("Admin push sent", zap.String("topic", s.topic), zap.String("messageId", response))
	return nil
}

func (s *DefaultNotificationService) NotifyNewBooking(ctx context.Context, b *models.Booking) error {
	title := "Pesanan baru 🧳"
	body := fmt.Sprintf("%s · %s · %d pax · %s", b.GuestName, b.PackageName, b.Pax, b.TripDate)
	return s.SendAdminPushNotification(ctx, title, body, map[string]string{
		"type":      "new_booking",
		"bookingId": b.ID,
		"source":    string(b.Source),
		"pax":       strconv.Itoa(b.Pax),
	})
}

// Noop is used when messaging is not configured.
type Noop struct{}

func (Noop) SendAdminPushNotification(context.Context, string, string, map[string]string) error {
	return nil
}

func (Noop) NotifyNewBooking(context.Context, *models.Booking) error { return nil }
