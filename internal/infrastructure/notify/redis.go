package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"eduflix-api/internal/domain"
)

// RedisPublisher шлёт уведомления в канал notifications:<userID>.
// Подписчики (websocket-шлюз, фронтовый SSE) слушают свой канал.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, userID uuid.UUID, n domain.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	channel := fmt.Sprintf("notifications:%s", userID)
	return p.client.Publish(ctx, channel, payload).Err()
}
