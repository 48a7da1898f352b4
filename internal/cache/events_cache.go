package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tutor-crm/backend/internal/model"
)

// TTL ответа календаря. События дешёвые в пересчёте,
// кэш нужен только чтобы переживать частые перелистывания недель.
const eventsTTL = 60 * time.Second

// EventsCache кэш событий календаря в Redis.
// client == nil значит кэш выключен, все методы при этом no-op.
type EventsCache struct {
	client *redis.Client
	logger *zap.Logger
}

// New подключается к Redis. Пустой addr или недоступный Redis не
// считаются фатальными: сервис работает без кэша.
func New(addr string, logger *zap.Logger) *EventsCache {
	if addr == "" {
		return &EventsCache{logger: logger}
	}

	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unavailable, continuing without cache", zap.Error(err))
		return &EventsCache{logger: logger}
	}

	logger.Info("Redis cache connected", zap.String("addr", addr))
	return &EventsCache{client: client, logger: logger}
}

// Get возвращает закэшированные события окна или (nil, false)
func (c *EventsCache) Get(ctx context.Context, start, end string) ([]model.CalendarEvent, bool) {
	if c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, eventsKey(start, end)).Bytes()
	if err != nil {
		return nil, false
	}

	var events []model.CalendarEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, false
	}
	return events, true
}

// Set кэширует события окна
func (c *EventsCache) Set(ctx context.Context, start, end string, events []model.CalendarEvent) {
	if c.client == nil {
		return
	}

	data, err := json.Marshal(events)
	if err != nil {
		return
	}
	if err := c.client.SetEx(ctx, eventsKey(start, end), data, eventsTTL).Err(); err != nil {
		c.logger.Warn("Failed to cache events", zap.Error(err))
	}
}

// Invalidate сбрасывает все закэшированные окна.
// Вызывается после любой записи брони или урока.
func (c *EventsCache) Invalidate(ctx context.Context) {
	if c.client == nil {
		return
	}

	iter := c.client.Scan(ctx, 0, "calendar:events:*", 100).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("Failed to invalidate events cache", zap.Error(err))
	}
}

// Close закрывает соединение с Redis
func (c *EventsCache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

func eventsKey(start, end string) string {
	return fmt.Sprintf("calendar:events:%s:%s", start, end)
}
