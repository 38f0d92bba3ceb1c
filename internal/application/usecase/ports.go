package usecase

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// TxRunner ejecuta fn con un ProductRepository atado a una transacción:
// o se aplican todas las escrituras (producto + asociaciones) o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(products repository.ProductRepository) error) error
}

// Nombres de caché por entidad y clave de la colección completa.
const (
	cacheCategories = "categories"
	cacheTags       = "tags"
	cacheProducts   = "products"
	cacheKeyAll     = "all"
)
