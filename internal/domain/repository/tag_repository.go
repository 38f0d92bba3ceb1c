package repository

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// TagRepository define el puerto de persistencia para Tag (DIP).
// GetByID devuelve (nil, nil) si no existe. ListByIDs devuelve solo las
// etiquetas encontradas (el llamador compara tamaños).
type TagRepository interface {
	Create(ctx context.Context, tag *entity.Tag) error
	GetByID(ctx context.Context, id string) (*entity.Tag, error)
	List(ctx context.Context) ([]*entity.Tag, error)
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Tag, error)
	Update(ctx context.Context, tag *entity.Tag) error
	Delete(ctx context.Context, id string) error
}
