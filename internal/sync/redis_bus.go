package sync

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisBus carries announcements over a Redis pub/sub channel.
type RedisBus struct {
	client  *redis.Client
	channel string
}

// NewRedisBus wraps an established client and channel name.
func NewRedisBus(client *redis.Client, channel string) *RedisBus {
	if channel == "" {
		channel = "edutrack:announcements"
	}
	return &RedisBus{client: client, channel: channel}
}

// Publish sends one message to the channel.
func (b *RedisBus) Publish(ctx context.Context, message string) error {
	return b.client.Publish(ctx, b.channel, message).Err()
}

// Subscribe streams raw channel messages until the returned unsubscribe
// function is called or the context ends.
func (b *RedisBus) Subscribe(ctx context.Context) (<-chan string, func(), error) {
	pubsub := b.client.Subscribe(ctx, b.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, err
	}

	out := make(chan string)
	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			select {
			case out <- msg.Payload:
			case <-ctx.Done():
				return
			}
		}
	}()

	unsubscribe := func() { _ = pubsub.Close() }
	return out, unsubscribe, nil
}
