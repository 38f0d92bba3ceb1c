package rediscache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/jhoicas/catalogo-api/internal/application/ports"
)

// keyPrefix evita colisiones con otras aplicaciones sobre el mismo Redis.
const keyPrefix = "catalog"

// Ensure Store implements ports.Cache.
var _ ports.Cache = (*Store)(nil)

// Config conexión y TTL del caché.
type Config struct {
	Host     string
	Port     int
	Password string
	Database int
	TTL      time.Duration
}

// Addr devuelve la dirección host:port.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Store implementa el puerto de caché sobre Redis con valores msgpack.
// Los fallos del backend se devuelven tal cual; el core decide qué hacer.
type Store struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewStore construye el adaptador y verifica la conexión.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.Database,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Store{client: client, ttl: ttl}, nil
}

// Close cierra la conexión con Redis.
func (s *Store) Close() error {
	return s.client.Close()
}

// Get deserializa el valor de (name, key) en dest. Devuelve false sin error
// en caso de miss.
func (s *Store) Get(ctx context.Context, name, key string, dest any) (bool, error) {
	raw, err := s.client.Get(ctx, cacheKey(name, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get: %w", err)
	}
	if err := msgpack.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decodificar valor cacheado: %w", err)
	}
	return true, nil
}

// Put serializa value y lo guarda bajo (name, key) con el TTL configurado.
func (s *Store) Put(ctx context.Context, name, key string, value any) error {
	raw, err := msgpack.Marshal(value)
	if err != nil {
		return fmt.Errorf("codificar valor a cachear: %w", err)
	}
	if err := s.client.Set(ctx, cacheKey(name, key), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Evict borra la entrada (name, key). Borrar una clave inexistente no es error.
func (s *Store) Evict(ctx context.Context, name, key string) error {
	if err := s.client.Del(ctx, cacheKey(name, key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// EvictAll borra todas las entradas del caché name usando SCAN + DEL por
// lotes (KEYS bloquea el servidor; SCAN es seguro en producción).
func (s *Store) EvictAll(ctx context.Context, name string) error {
	pattern := cacheKey(name, "*")
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis del batch: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func cacheKey(name, key string) string {
	return keyPrefix + ":" + name + ":" + key
}
