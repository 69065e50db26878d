package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/amityadav/studybuddy/internal/firebase"
	"github.com/redis/go-redis/v9"
)

// Update is one message for companion surfaces (badge, widget, reminder)
type Update struct {
	Kind  string            `json:"kind"`
	Title string            `json:"title,omitempty"`
	Body  string            `json:"body,omitempty"`
	Data  map[string]string `json:"data"`
}

const (
	KindBadge    = "badge"
	KindStats    = "stats"
	KindReminder = "reminder"
)

// Sink delivers updates to one destination
type Sink interface {
	Name() string
	Publish(ctx context.Context, u Update) error
}

// TopicSender is the part of firebase.Sender the FCM sink needs
type TopicSender interface {
	Send(ctx context.Context, msg firebase.TopicMessage) error
}

// FCMSink pushes updates to a Firebase topic
type FCMSink struct {
	sender TopicSender
	topic  string
}

func NewFCMSink(sender TopicSender, topic string) *FCMSink {
	return &FCMSink{sender: sender, topic: topic}
}

func (s *FCMSink) Name() string { return "fcm" }

func (s *FCMSink) Publish(ctx context.Context, u Update) error {
	data := make(map[string]string, len(u.Data)+1)
	for k, v := range u.Data {
		data[k] = v
	}
	data["kind"] = u.Kind
	return s.sender.Send(ctx, firebase.TopicMessage{
		Topic: s.topic,
		Title: u.Title,
		Body:  u.Body,
		Data:  data,
	})
}

// RedisSink publishes updates as JSON on a pub/sub channel
type RedisSink struct {
	client  redis.UniversalClient
	channel string
}

func NewRedisSink(client redis.UniversalClient, channel string) *RedisSink {
	return &RedisSink{client: client, channel: channel}
}

func (s *RedisSink) Name() string { return "redis" }

func (s *RedisSink) Publish(ctx context.Context, u Update) error {
	payload, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to encode update: %w", err)
	}
	if err := s.client.Publish(ctx, s.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", s.channel, err)
	}
	return nil
}
