package broadcast

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/nutrileaf/nutrileaf-client/internal/app/model"
	"github.com/nutrileaf/nutrileaf-client/pkg/logger"
)

// RedisSignal announces changes over a redis pub/sub channel shared by
// every gateway process using the same storage prefix. Messages are
// "<sender>|<kind>" so a process can skip its own announcements, which it
// already delivered synchronously.
type RedisSignal struct {
	client   *redis.Client
	channel  string
	senderID string
}

func NewRedisSignal(client *redis.Client, prefix string) *RedisSignal {
	return &RedisSignal{
		client:   client,
		channel:  prefix + "changes",
		senderID: uuid.NewString(),
	}
}

// Announce publishes the kind to the shared channel.
func (s *RedisSignal) Announce(ctx context.Context, kind model.ChangeKind) error {
	return s.client.Publish(ctx, s.channel, s.senderID+"|"+string(kind)).Err()
}

// Listen blocks delivering foreign announcements until the context ends.
// Run it on its own goroutine.
func (s *RedisSignal) Listen(ctx context.Context, deliver func(model.ChangeKind)) {
	pubsub := s.client.Subscribe(ctx, s.channel)
	defer pubsub.Close()

	logger.Info("Listening for cross-process change signals", map[string]interface{}{
		"channel": s.channel,
	})

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-pubsub.Channel():
			if !ok {
				return
			}
			sender, kind, found := strings.Cut(msg.Payload, "|")
			if !found {
				logger.Warn("Malformed change signal ignored", map[string]interface{}{
					"payload": msg.Payload,
				})
				continue
			}
			if sender == s.senderID {
				continue
			}
			switch model.ChangeKind(kind) {
			case model.CartChanged, model.ProfileChanged:
				deliver(model.ChangeKind(kind))
			default:
				logger.Warn("Unknown change kind ignored", map[string]interface{}{
					"kind": kind,
				})
			}
		}
	}
}
