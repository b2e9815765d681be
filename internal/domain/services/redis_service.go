package services

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/vivekvardhan78/JalRakshak/internal/infrastructure/config"
)

// InterfaceRedisService defines the Redis service interface.
type InterfaceRedisService interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, dest interface{}) error
	Delete(key string) error
	Ping() error
	CacheAddress(lat, lng float64, address string, expiration time.Duration) error
	GetCachedAddress(lat, lng float64) (string, error)
}

// RedisService handles Redis operations.
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService creates a new Redis service.
func NewRedisService(cfg *config.Config) InterfaceRedisService {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.GetRedisAddr(),
		DB:   cfg.RedisDB,
	})

	return &RedisService{
		Client: client,
		Ctx:    context.Background(),
	}
}

// Set stores a JSON-encoded value with expiration.
func (s *RedisService) Set(key string, value interface{}, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Client.Set(s.Ctx, key, jsonValue, expiration).Err()
}

// Get fetches and JSON-decodes a value by key.
func (s *RedisService) Get(key string, dest interface{}) error {
	val, err := s.Client.Get(s.Ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

// Delete removes a key.
func (s *RedisService) Delete(key string) error {
	return s.Client.Del(s.Ctx, key).Err()
}

// Ping checks the Redis connection.
func (s *RedisService) Ping() error {
	ctx, cancel := context.WithTimeout(s.Ctx, 2*time.Second)
	defer cancel()
	return s.Client.Ping(ctx).Err()
}

// CacheAddress caches a reverse-geocoded address for a GPS fix. Coordinates
// are rounded to ~11m so nearby fixes share one entry.
func (s *RedisService) CacheAddress(lat, lng float64, address string, expiration time.Duration) error {
	return s.Client.Set(s.Ctx, geoKey(lat, lng), address, expiration).Err()
}

// GetCachedAddress returns a cached address for a GPS fix.
func (s *RedisService) GetCachedAddress(lat, lng float64) (string, error) {
	return s.Client.Get(s.Ctx, geoKey(lat, lng)).Result()
}

func geoKey(lat, lng float64) string {
	return "geocode:" + strconv.FormatFloat(lat, 'f', 4, 64) + ":" + strconv.FormatFloat(lng, 'f', 4, 64)
}
