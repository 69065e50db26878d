package firebase

import (
	"context"
	"fmt"

	fcm "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/amityadav/studybuddy/internal/logger"
	"google.golang.org/api/option"
)

// Sender publishes Firebase Cloud Messaging messages to topics. Companion
// widgets and devices subscribe to the topic instead of registering tokens.
type Sender struct {
	client *messaging.Client
	log    *logger.Logger
}

// NewSender creates a new Firebase Sender from service account JSON file
func NewSender(ctx context.Context, serviceAccountPath string, log *logger.Logger) (*Sender, error) {
	opt := option.WithCredentialsFile(serviceAccountPath)
	app, err := fcm.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	log.Info("[Firebase.NewSender] Initialized FCM sender")
	return &Sender{client: client, log: log.With("component", "Firebase")}, nil
}

// TopicMessage is one message for every subscriber of Topic. Messages
// without a Title are silent data messages.
type TopicMessage struct {
	Topic string
	Title string
	Body  string
	Data  map[string]string
}

// Send publishes msg to its topic
func (s *Sender) Send(ctx context.Context, msg TopicMessage) error {
	message := &messaging.Message{
		Topic: msg.Topic,
		Data:  msg.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
	}
	if msg.Title != "" {
		message.Notification = &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		}
		message.Android.Notification = &messaging.AndroidNotification{
			Icon:  "ic_launcher",
			Color: "#6366F1", // Primary color
		}
	}

	response, err := s.client.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send to topic %s: %w", msg.Topic, err)
	}

	s.log.Debug("[Firebase.Send] Message sent", "topic", msg.Topic, "id", response)
	return nil
}
