package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/JeanLimaa/minimal-agendefacil-backend/internal/config"
)

// Cache guarda horários disponíveis já calculados por um curto
// período. Um *Cache nulo é válido e simplesmente não cacheia.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(cfg *config.Config) *Cache {
	if cfg.RedisAddr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	return &Cache{
		rdb: rdb,
		ttl: 60 * time.Second,
	}
}

func AvailabilityKey(companyID uint, date time.Time, serviceIDs []uint) string {
	ids := make([]string, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		ids = append(ids, fmt.Sprint(id))
	}
	return fmt.Sprintf(
		"availability:%d:%s:%s",
		companyID,
		date.Format("2006-01-02"),
		strings.Join(ids, ","),
	)
}

func (c *Cache) GetAvailableTimes(ctx context.Context, key string) ([]string, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var times []string
	if err := json.Unmarshal(raw, &times); err != nil {
		return nil, false
	}
	return times, true
}

func (c *Cache) SetAvailableTimes(ctx context.Context, key string, times []string) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(times)
	if err != nil {
		return
	}

	// melhor perder o cache do que quebrar a requisição
	c.rdb.Set(ctx, key, raw, c.ttl)
}

// InvalidateCompany descarta os horários cacheados da empresa após
// qualquer escrita na agenda.
func (c *Cache) InvalidateCompany(ctx context.Context, companyID uint) {
	if c == nil {
		return
	}

	pattern := fmt.Sprintf("availability:%d:*", companyID)
	iter := c.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		c.rdb.Del(ctx, iter.Val())
	}
}
