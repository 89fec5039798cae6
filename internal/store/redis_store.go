package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/AdamBeresnev/brisa-tee-times/internal/teetime"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "teetimes:day:"

type RedisConfig struct {
	Address  string
	Password string
	DB       int
	PoolSize int
}

// NewRedisClient builds a client from cfg. It does not dial; call Ping to check the connection.
func NewRedisClient(cfg RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}

// RedisStore keeps one hash per day, reservation ID -> JSON encoded reservation.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func dayKey(day string) string {
	return redisKeyPrefix + day
}

func (s *RedisStore) List(ctx context.Context, q teetime.Query) ([]teetime.Reservation, error) {
	var keys []string
	if q.Day != "" {
		keys = []string{dayKey(q.Day)}
	} else {
		iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return nil, fmt.Errorf("scan days: %w", err)
		}
	}

	var out []teetime.Reservation
	for _, key := range keys {
		fields, err := s.client.HGetAll(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", strings.TrimPrefix(key, redisKeyPrefix), err)
		}
		for id, raw := range fields {
			var r teetime.Reservation
			if err := json.Unmarshal([]byte(raw), &r); err != nil {
				return nil, fmt.Errorf("decode reservation %s: %w", id, err)
			}
			if q.Matches(r) {
				out = append(out, r)
			}
		}
	}

	sortReservations(out)
	return out, nil
}

func (s *RedisStore) Create(ctx context.Context, r *teetime.Reservation) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	raw, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return s.client.HSet(ctx, dayKey(r.Day), r.ID, raw).Err()
}

func (s *RedisStore) Delete(ctx context.Context, r teetime.Reservation) error {
	n, err := s.client.HDel(ctx, dayKey(r.Day), r.ID).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return teetime.ErrReservationNotFound
	}
	return nil
}
