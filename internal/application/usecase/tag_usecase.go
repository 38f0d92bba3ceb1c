package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/ports"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// TagUseCase casos de uso CRUD para etiquetas con cache-aside explícito.
type TagUseCase struct {
	repo  repository.TagRepository
	cache ports.Cache
}

// NewTagUseCase construye el caso de uso.
func NewTagUseCase(repo repository.TagRepository, cache ports.Cache) *TagUseCase {
	return &TagUseCase{repo: repo, cache: cache}
}

// List devuelve todas las etiquetas (cache-aside; vacío no se cachea).
func (uc *TagUseCase) List(ctx context.Context) ([]dto.TagResponse, error) {
	var cached []dto.TagResponse
	hit, err := uc.cache.Get(ctx, cacheTags, cacheKeyAll, &cached)
	if err != nil {
		return nil, err
	}
	if hit {
		return cached, nil
	}

	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TagResponse, 0, len(list))
	for _, t := range list {
		items = append(items, toTagResponse(t))
	}
	if len(items) > 0 {
		if err := uc.cache.Put(ctx, cacheTags, cacheKeyAll, items); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// GetByID obtiene una etiqueta por id.
func (uc *TagUseCase) GetByID(ctx context.Context, id string) (*dto.TagResponse, error) {
	var cached dto.TagResponse
	hit, err := uc.cache.Get(ctx, cacheTags, id, &cached)
	if err != nil {
		return nil, err
	}
	if hit {
		return &cached, nil
	}

	tag, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, domain.NewNotFound(domain.KindTag, id)
	}
	resp := toTagResponse(tag)
	if err := uc.cache.Put(ctx, cacheTags, id, resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Create crea una etiqueta.
func (uc *TagUseCase) Create(ctx context.Context, in dto.CreateTagRequest) (*dto.TagResponse, error) {
	now := time.Now()
	tag := &entity.Tag{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, tag); err != nil {
		return nil, err
	}
	if err := uc.cache.Evict(ctx, cacheTags, cacheKeyAll); err != nil {
		return nil, err
	}
	resp := toTagResponse(tag)
	return &resp, nil
}

// Update aplica una actualización parcial (blanco o nil = sin cambio).
func (uc *TagUseCase) Update(ctx context.Context, id string, in dto.UpdateTagRequest) (*dto.TagResponse, error) {
	if in.IsEmpty() {
		return nil, domain.ErrEmptyPatch
	}

	tag, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, domain.NewNotFound(domain.KindTag, id)
	}

	patchText(&tag.Name, in.Name)
	tag.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, tag); err != nil {
		return nil, err
	}
	if err := uc.evict(ctx, id); err != nil {
		return nil, err
	}
	resp := toTagResponse(tag)
	return &resp, nil
}

// Delete elimina una etiqueta; el almacén cascada sus asociaciones product_tag.
func (uc *TagUseCase) Delete(ctx context.Context, id string) error {
	tag, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if tag == nil {
		return domain.NewNotFound(domain.KindTag, id)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	return uc.evict(ctx, id)
}

func (uc *TagUseCase) evict(ctx context.Context, id string) error {
	if err := uc.cache.Evict(ctx, cacheTags, cacheKeyAll); err != nil {
		return err
	}
	return uc.cache.Evict(ctx, cacheTags, id)
}

func toTagResponse(t *entity.Tag) dto.TagResponse {
	return dto.TagResponse{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt}
}
