package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/AtheekAzmi/RoomReservationSystem/config"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client   *redis.Client
	roomsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, roomsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:   redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		roomsTTL: roomsTTL,
	}
}

func (c *RedisCache) GetRooms(ctx context.Context) ([]domain.Room, error) {
	data, err := c.client.Get(ctx, roomsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var rooms []domain.Room
	if err := json.Unmarshal(data, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (c *RedisCache) SetRooms(ctx context.Context, rooms []domain.Room) error {
	payload, err := json.Marshal(rooms)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, roomsKey(), payload, c.roomsTTL).Err()
}

func (c *RedisCache) InvalidateRooms(ctx context.Context) error {
	return c.client.Del(ctx, roomsKey()).Err()
}

// AcquireRoomHold takes a short exclusive hold on a room while a
// reservation commit is in flight, so two concurrent creates cannot pick
// the same room. The TTL bounds the hold if the holder dies mid-commit.
func (c *RedisCache) AcquireRoomHold(ctx context.Context, roomID int64, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, roomHoldKey(roomID), "held", ttl).Result()
}

func (c *RedisCache) ReleaseRoomHold(ctx context.Context, roomID int64) error {
	return c.client.Del(ctx, roomHoldKey(roomID)).Err()
}

func roomsKey() string {
	return "cache:rooms"
}

func roomHoldKey(roomID int64) string {
	return fmt.Sprintf("hold:room:%d", roomID)
}
