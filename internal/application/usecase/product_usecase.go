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

// ProductUseCase casos de uso CRUD para productos. Toda referencia foránea
// (categoría, conjunto de etiquetas) se resuelve completa antes de emitir
// cualquier escritura; las escrituras van dentro de una transacción.
type ProductUseCase struct {
	repo  repository.ProductRepository
	refs  *ReferenceResolver
	tx    TxRunner
	cache ports.Cache
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, refs *ReferenceResolver, tx TxRunner, cache ports.Cache) *ProductUseCase {
	return &ProductUseCase{repo: repo, refs: refs, tx: tx, cache: cache}
}

// List devuelve todos los productos (cache-aside; vacío no se cachea).
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	var cached []dto.ProductResponse
	hit, err := uc.cache.Get(ctx, cacheProducts, cacheKeyAll, &cached)
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
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toProductResponse(p))
	}
	if len(items) > 0 {
		if err := uc.cache.Put(ctx, cacheProducts, cacheKeyAll, items); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// GetByID obtiene un producto con categoría y etiquetas resueltas.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	var cached dto.ProductResponse
	hit, err := uc.cache.Get(ctx, cacheProducts, id, &cached)
	if err != nil {
		return nil, err
	}
	if hit {
		return &cached, nil
	}

	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFound(domain.KindProduct, id)
	}
	resp := toProductResponse(p)
	if err := uc.cache.Put(ctx, cacheProducts, id, resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Create crea un producto junto con una asociación por etiqueta resuelta,
// todo en la misma transacción. Falla sin escribir nada si la categoría o
// alguna etiqueta no existe.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	cat, err := uc.refs.Category(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	tags, err := uc.refs.Tags(ctx, in.TagIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	p := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CategoryID:  cat.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
		Category:    cat,
		Tags:        tags,
	}
	assocs := buildAssociations(p.ID, tags, now)

	err = uc.tx.Run(ctx, func(products repository.ProductRepository) error {
		return products.Create(ctx, p, assocs)
	})
	if err != nil {
		return nil, err
	}
	if err := uc.cache.Evict(ctx, cacheProducts, cacheKeyAll); err != nil {
		return nil, err
	}
	resp := toProductResponse(p)
	return &resp, nil
}

// Update aplica una actualización parcial. Texto en blanco o nil = sin
// cambio; price y stock se aplican siempre que vengan (incluido cero). Un
// tag_ids no-nil (incluso vacío) reemplaza el conjunto completo de
// asociaciones: se descartan todas y se escriben las nuevas.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.IsEmpty() {
		return nil, domain.ErrEmptyPatch
	}

	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFound(domain.KindProduct, id)
	}

	patchText(&p.Name, in.Name)
	patchText(&p.Description, in.Description)
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.CategoryID != nil {
		cat, err := uc.refs.Category(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		p.CategoryID = cat.ID
		p.Category = cat
	}

	now := time.Now()
	replaceTags := false
	var assocs []*entity.ProductTag
	if in.TagIDs != nil {
		tags, err := uc.refs.Tags(ctx, *in.TagIDs)
		if err != nil {
			return nil, err
		}
		p.Tags = tags
		assocs = buildAssociations(p.ID, tags, now)
		replaceTags = true
	}

	p.UpdatedAt = now
	err = uc.tx.Run(ctx, func(products repository.ProductRepository) error {
		if err := products.Update(ctx, p); err != nil {
			return err
		}
		if replaceTags {
			return products.ReplaceTags(ctx, p.ID, assocs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := uc.evict(ctx, id); err != nil {
		return nil, err
	}
	resp := toProductResponse(p)
	return &resp, nil
}

// Delete elimina un producto; el almacén cascada sus asociaciones.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.NewNotFound(domain.KindProduct, id)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	return uc.evict(ctx, id)
}

func (uc *ProductUseCase) evict(ctx context.Context, id string) error {
	if err := uc.cache.Evict(ctx, cacheProducts, cacheKeyAll); err != nil {
		return err
	}
	return uc.cache.Evict(ctx, cacheProducts, id)
}

func buildAssociations(productID string, tags []*entity.Tag, now time.Time) []*entity.ProductTag {
	assocs := make([]*entity.ProductTag, 0, len(tags))
	for _, t := range tags {
		assocs = append(assocs, &entity.ProductTag{
			ProductID: productID,
			TagID:     t.ID,
			Quantity:  1,
			CreatedAt: now,
		})
	}
	return assocs
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Tags:        make([]dto.TagResponse, 0, len(p.Tags)),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Category != nil {
		resp.Category = dto.CategorySimpleResponse{ID: p.Category.ID, Name: p.Category.Name}
	} else {
		resp.Category = dto.CategorySimpleResponse{ID: p.CategoryID}
	}
	for _, t := range p.Tags {
		resp.Tags = append(resp.Tags, toTagResponse(t))
	}
	return resp
}
