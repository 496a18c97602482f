package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"saledup/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Shop config caching. The reminder and late-alert jobs overlap on the
	// same per-shop reads, so a shared short-TTL cache covers both ticks.
	GetShop(ctx context.Context, shopID uuid.UUID) (*models.Shop, error)
	SetShop(ctx context.Context, shop *models.Shop, ttl time.Duration) error
	DeleteShop(ctx context.Context, shopID uuid.UUID) error

	// Late-alert de-duplication. MarkLateAlertSent returns true when this is
	// the first alert for (shop, employee) within the ttl window.
	// ClearLateAlertSent releases the mark when the alert could not be sent.
	MarkLateAlertSent(ctx context.Context, shopID, employeeID uuid.UUID, ttl time.Duration) (bool, error)
	ClearLateAlertSent(ctx context.Context, shopID, employeeID uuid.UUID) error

	// Rate limiting for public endpoints, keyed by caller.
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis:// style addresses as well as bare host:port
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

func (r *redisCacheService) GetShop(ctx context.Context, shopID uuid.UUID) (*models.Shop, error) {
	key := fmt.Sprintf("saledup:shop:%s", shopID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var shop models.Shop
	if err := json.Unmarshal(data, &shop); err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *redisCacheService) SetShop(ctx context.Context, shop *models.Shop, ttl time.Duration) error {
	key := fmt.Sprintf("saledup:shop:%s", shop.ID.String())
	data, err := json.Marshal(shop)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteShop(ctx context.Context, shopID uuid.UUID) error {
	key := fmt.Sprintf("saledup:shop:%s", shopID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) MarkLateAlertSent(ctx context.Context, shopID, employeeID uuid.UUID, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("saledup:latealert:%s:%s", shopID.String(), employeeID.String())
	return r.client.SetNX(ctx, key, "1", ttl).Result()
}

func (r *redisCacheService) ClearLateAlertSent(ctx context.Context, shopID, employeeID uuid.UUID) error {
	key := fmt.Sprintf("saledup:latealert:%s:%s", shopID.String(), employeeID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	cacheKey := fmt.Sprintf("saledup:ratelimit:%s", key)
	count, err := r.client.Incr(ctx, cacheKey).Result()
	if err != nil {
		return true, err
	}

	// Set expiry on first request
	if count == 1 {
		r.client.Expire(ctx, cacheKey, window)
	}

	return count > int64(limit), nil
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
