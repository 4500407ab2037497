package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/AtheekAzmi/RoomReservationSystem/config"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Manager stores staff sessions in redis with a TTL, so expiry needs no
// sweeper of its own. Reading a session refreshes its TTL.
type Manager struct {
	client *redis.Client
	ttl    time.Duration
}

func NewManager(cfg config.RedisConfig, ttl time.Duration) *Manager {
	return &Manager{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl:    ttl,
	}
}

func (m *Manager) Create(ctx context.Context, staff domain.Staff) (string, error) {
	token := uuid.NewString()
	payload, err := json.Marshal(staff)
	if err != nil {
		return "", err
	}
	if err := m.client.Set(ctx, sessionKey(token), payload, m.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (m *Manager) Get(ctx context.Context, token string) (*domain.Staff, error) {
	data, err := m.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.NotFoundf("session expired or not found")
		}
		return nil, err
	}

	var staff domain.Staff
	if err := json.Unmarshal(data, &staff); err != nil {
		return nil, err
	}

	_ = m.client.Expire(ctx, sessionKey(token), m.ttl).Err()
	return &staff, nil
}

func (m *Manager) Delete(ctx context.Context, token string) error {
	return m.client.Del(ctx, sessionKey(token)).Err()
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}
