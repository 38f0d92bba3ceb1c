package repository

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product y sus
// asociaciones product_tag (DIP). Create y ReplaceTags deben ejecutarse dentro
// de la transacción que provea el llamador (vía TxRunner).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product, tags []*entity.ProductTag) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// ReplaceTags descarta todas las asociaciones del producto y escribe las nuevas.
	ReplaceTags(ctx context.Context, productID string, tags []*entity.ProductTag) error
	TagsOf(ctx context.Context, productID string) ([]*entity.Tag, error)
	Delete(ctx context.Context, id string) error
}
