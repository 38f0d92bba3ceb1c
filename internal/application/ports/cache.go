package ports

import "context"

// Cache define el colaborador de caché direccionado por (nombre, clave).
// Get deserializa en dest y devuelve false sin error en caso de miss.
// Los fallos del backend se propagan tal cual; el core no tiene fallback.
type Cache interface {
	Get(ctx context.Context, name, key string, dest any) (bool, error)
	Put(ctx context.Context, name, key string, value any) error
	Evict(ctx context.Context, name, key string) error
	EvictAll(ctx context.Context, name string) error
}
