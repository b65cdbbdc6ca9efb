package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dharmasatrya/flightscanner/internal/models"
)

// Cache short-circuits repeated identical searches with a recent report.
type Cache interface {
	Get(ctx context.Context, req models.SearchRequest) (*models.SearchReport, bool)
	Set(ctx context.Context, req models.SearchRequest, report *models.SearchReport) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host: "localhost",
		Port: "6379",
		TTL:  5 * time.Minute,
	}
}

func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
		ttl:    cfg.TTL,
	}, nil
}

func (c *RedisCache) Get(ctx context.Context, req models.SearchRequest) (*models.SearchReport, bool) {
	data, err := c.client.Get(ctx, Key(req)).Bytes()
	if err != nil {
		return nil, false
	}

	var report models.SearchReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, false
	}
	report.CacheHit = true
	return &report, true
}

func (c *RedisCache) Set(ctx context.Context, req models.SearchRequest, report *models.SearchReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, Key(req), data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, req models.SearchRequest) (*models.SearchReport, bool) {
	return nil, false
}

func (c *NoOpCache) Set(ctx context.Context, req models.SearchRequest, report *models.SearchReport) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}

// Key hashes the fields that define a search, so requests differing only in
// presentation settings share an entry.
func Key(req models.SearchRequest) string {
	keyData := struct {
		Origin      string
		Destination string
		TravelDate  string
		ReturnDate  string
		Passengers  int
		CabinClass  string
	}{
		Origin:      req.Origin,
		Destination: req.Destination,
		TravelDate:  req.TravelDate,
		Passengers:  req.Passengers,
		CabinClass:  req.CabinClass,
	}
	if req.ReturnDate != nil {
		keyData.ReturnDate = *req.ReturnDate
	}

	data, _ := json.Marshal(keyData)
	hash := sha256.Sum256(data)
	return "scan:" + hex.EncodeToString(hash[:])
}
