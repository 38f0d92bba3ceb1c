package usecase

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// ReferenceResolver valida referencias foráneas contra el almacén antes de
// cualquier escritura. Lectura pura; nunca muta estado.
type ReferenceResolver struct {
	categories repository.CategoryRepository
	tags       repository.TagRepository
}

// NewReferenceResolver construye el validador de referencias.
func NewReferenceResolver(categories repository.CategoryRepository, tags repository.TagRepository) *ReferenceResolver {
	return &ReferenceResolver{categories: categories, tags: tags}
}

// Category resuelve un id de categoría. Devuelve NotFoundError si no existe.
func (r *ReferenceResolver) Category(ctx context.Context, id string) (*entity.Category, error) {
	cat, err := r.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.NewNotFound(domain.KindCategory, id)
	}
	return cat, nil
}

// Tags resuelve un conjunto de ids de etiqueta en un solo batch. Si el tamaño
// resuelto no coincide con el solicitado (tras deduplicar) devuelve
// ReferenceMismatchError sin indicar cuál id falta (resolución gruesa).
func (r *ReferenceResolver) Tags(ctx context.Context, ids []string) ([]*entity.Tag, error) {
	unique := dedupe(ids)
	if len(unique) == 0 {
		return []*entity.Tag{}, nil
	}
	tags, err := r.tags.ListByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(unique) {
		return nil, &domain.ReferenceMismatchError{
			Kind:      domain.KindTag,
			Requested: len(unique),
			Resolved:  len(tags),
		}
	}
	return tags, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
