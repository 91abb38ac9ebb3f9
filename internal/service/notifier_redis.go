// internal/service/notifier_redis.go
package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go_5_phrase_pool/internal/middleware"
	"go_5_phrase_pool/internal/model"

	"github.com/redis/go-redis/v9"
)

// RedisNotifier はフレーズイベントをRedisのpub/subチャネルにJSONで発行します。
// 購読側 (WebSocketゲートウェイ等) がリアルタイム通知に変換します。
type RedisNotifier struct {
	client  *redis.Client
	channel string
}

func NewRedisNotifier(client *redis.Client, channel string) *RedisNotifier {
	return &RedisNotifier{
		client:  client,
		channel: channel,
	}
}

func (n *RedisNotifier) Notify(ctx context.Context, event model.PhraseEvent) error {
	logger := middleware.GetLogger(ctx)

	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("Error marshaling phrase event", "error", err, "phrase_id", event.PhraseID.String())
		return fmt.Errorf("RedisNotifier.Notify: %w", err)
	}

	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		logger.Error("Error publishing phrase event to redis",
			"error", err,
			"channel", n.channel,
			"phrase_id", event.PhraseID.String(),
		)
		return fmt.Errorf("RedisNotifier.Notify: %w", err)
	}

	logger.Debug("Phrase event published", "channel", n.channel, "phrase_id", event.PhraseID.String())
	return nil
}
