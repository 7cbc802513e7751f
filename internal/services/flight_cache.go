package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Shamshod-Xatamov/TravelScout-V2/internal/models"
)

const flightCacheTTL = 5 * time.Minute

// FlightCache keeps recent normalized search results so repeated searches do
// not burn through the external API quota.
type FlightCache interface {
	Get(ctx context.Context, query models.FlightSearchQuery) ([]models.FlightOffer, bool)
	Set(ctx context.Context, query models.FlightSearchQuery, offers []models.FlightOffer)
}

type RedisFlightCache struct {
	client *redis.Client
}

func NewRedisFlightCache(client *redis.Client) *RedisFlightCache {
	return &RedisFlightCache{client: client}
}

func flightCacheKey(query models.FlightSearchQuery) string {
	raw, err := json.Marshal(query)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("flights:%s", hex.EncodeToString(sum[:]))
}

func (c *RedisFlightCache) Get(ctx context.Context, query models.FlightSearchQuery) ([]models.FlightOffer, bool) {
	key := flightCacheKey(query)
	if key == "" {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var offers []models.FlightOffer
	if err := json.Unmarshal(data, &offers); err != nil {
		return nil, false
	}
	return offers, true
}

func (c *RedisFlightCache) Set(ctx context.Context, query models.FlightSearchQuery, offers []models.FlightOffer) {
	key := flightCacheKey(query)
	if key == "" {
		return
	}
	data, err := json.Marshal(offers)
	if err != nil {
		return
	}
	c.client.Set(ctx, key, data, flightCacheTTL)
}

// NoOpFlightCache is used when Redis is not available.
type NoOpFlightCache struct{}

func (NoOpFlightCache) Get(ctx context.Context, query models.FlightSearchQuery) ([]models.FlightOffer, bool) {
	return nil, false
}

func (NoOpFlightCache) Set(ctx context.Context, query models.FlightSearchQuery, offers []models.FlightOffer) {
}
