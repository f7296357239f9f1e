package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"buildstock/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Warehouse caching
	GetWarehouse(ctx context.Context, id uuid.UUID) (*models.Warehouse, error)
	SetWarehouse(ctx context.Context, warehouse *models.Warehouse, ttl time.Duration) error
	DeleteWarehouse(ctx context.Context, id uuid.UUID) error

	// Sweep bookkeeping
	SetLastSweep(ctx context.Context, result *models.SweepResult) error
	GetLastSweep(ctx context.Context) (*models.SweepResult, error)

	// Generic string operations
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error

	Ping(ctx context.Context) error
	InvalidateAllCache(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis://host:port style addresses too
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetWarehouse(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	key := fmt.Sprintf("buildstock:warehouse:%s", id.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var warehouse models.Warehouse
	if err := json.Unmarshal(data, &warehouse); err != nil {
		return nil, err
	}
	return &warehouse, nil
}

func (r *redisCacheService) SetWarehouse(ctx context.Context, warehouse *models.Warehouse, ttl time.Duration) error {
	key := fmt.Sprintf("buildstock:warehouse:%s", warehouse.ID.String())
	data, err := json.Marshal(warehouse)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteWarehouse(ctx context.Context, id uuid.UUID) error {
	key := fmt.Sprintf("buildstock:warehouse:%s", id.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) SetLastSweep(ctx context.Context, result *models.SweepResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, "buildstock:sweep:last", data, 24*time.Hour).Err()
}

func (r *redisCacheService) GetLastSweep(ctx context.Context) (*models.SweepResult, error) {
	data, err := r.client.Get(ctx, "buildstock:sweep:last").Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var result models.SweepResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // cache miss
		}
		return "", err
	}
	return val, nil
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisCacheService) InvalidateAllCache(ctx context.Context) error {
	keys, err := r.client.Keys(ctx, "buildstock:*").Result()
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}
