package cache

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"clinica-caja/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	catalogoKey = "tratamientos:catalogo"
	catalogoTTL = 10 * time.Minute
)

var client *redis.Client

// Init initializes the Redis connection. The cache degrades gracefully:
// when Redis is unavailable every lookup is a miss and writes are no-ops.
func Init() error {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetCatalogoTratamientos returns the cached treatment catalog, if present
func GetCatalogoTratamientos(ctx context.Context) ([]*models.Tratamiento, bool) {
	if client == nil {
		return nil, false
	}

	raw, err := client.Get(ctx, catalogoKey).Bytes()
	if err != nil {
		return nil, false
	}

	var tratamientos []*models.Tratamiento
	if err := json.Unmarshal(raw, &tratamientos); err != nil {
		return nil, false
	}
	return tratamientos, true
}

// SetCatalogoTratamientos stores the treatment catalog for a short TTL
func SetCatalogoTratamientos(ctx context.Context, tratamientos []*models.Tratamiento) {
	if client == nil {
		return
	}

	raw, err := json.Marshal(tratamientos)
	if err != nil {
		return
	}
	client.Set(ctx, catalogoKey, raw, catalogoTTL)
}

// InvalidateCatalogoTratamientos drops the cached catalog after a
// create or sync mutates the underlying table
func InvalidateCatalogoTratamientos(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, catalogoKey)
}
