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

// CategoryUseCase casos de uso CRUD para categorías con cache-aside explícito:
// las lecturas pueblan la caché, toda mutación exitosa invalida después del
// commit y antes de devolver el resultado.
type CategoryUseCase struct {
	repo  repository.CategoryRepository
	refs  *ReferenceResolver
	cache ports.Cache
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, refs *ReferenceResolver, cache ports.Cache) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, refs: refs, cache: cache}
}

// List devuelve todas las categorías. Sólo se cachean resultados no vacíos,
// así la primera categoría creada es visible en la siguiente llamada sin
// esperar TTL ni invalidación.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	var cached []dto.CategoryResponse
	hit, err := uc.cache.Get(ctx, cacheCategories, cacheKeyAll, &cached)
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
	items := toCategoryResponses(list)
	if len(items) > 0 {
		if err := uc.cache.Put(ctx, cacheCategories, cacheKeyAll, items); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// GetByID obtiene una categoría con padre e hijas resueltas.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	var cached dto.CategoryResponse
	hit, err := uc.cache.Get(ctx, cacheCategories, id, &cached)
	if err != nil {
		return nil, err
	}
	if hit {
		return &cached, nil
	}

	cat, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.NewNotFound(domain.KindCategory, id)
	}
	resp, err := uc.buildResponse(ctx, cat)
	if err != nil {
		return nil, err
	}
	if err := uc.cache.Put(ctx, cacheCategories, id, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Create crea una categoría; si trae parent_id, el padre debe existir.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	var parent *entity.Category
	if in.ParentID != nil {
		var err error
		parent, err = uc.refs.Category(ctx, *in.ParentID)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	cat := &entity.Category{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if parent != nil {
		cat.ParentID = &parent.ID
	}
	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}
	if err := uc.cache.Evict(ctx, cacheCategories, cacheKeyAll); err != nil {
		return nil, err
	}

	resp := toCategoryResponse(cat, parent, nil)
	return &resp, nil
}

// Update aplica una actualización parcial. Texto en blanco o nil = sin cambio;
// parent_id igual al propio id se rechaza antes de tocar el almacén.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.IsEmpty() {
		return nil, domain.ErrEmptyPatch
	}

	cat, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.NewNotFound(domain.KindCategory, id)
	}

	patchText(&cat.Name, in.Name)
	patchText(&cat.Description, in.Description)

	if in.ParentID != nil {
		if *in.ParentID == id {
			return nil, domain.ErrSelfParent
		}
		parent, err := uc.refs.Category(ctx, *in.ParentID)
		if err != nil {
			return nil, err
		}
		cat.ParentID = &parent.ID
	}

	cat.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	if err := uc.evict(ctx, id); err != nil {
		return nil, err
	}
	return uc.buildResponse(ctx, cat)
}

// Delete elimina una categoría por id. El almacén bloquea el borrado si hay
// productos o subcategorías que la referencian (FK RESTRICT).
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	cat, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if cat == nil {
		return domain.NewNotFound(domain.KindCategory, id)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	return uc.evict(ctx, id)
}

func (uc *CategoryUseCase) evict(ctx context.Context, id string) error {
	if err := uc.cache.Evict(ctx, cacheCategories, cacheKeyAll); err != nil {
		return err
	}
	return uc.cache.Evict(ctx, cacheCategories, id)
}

// buildResponse resuelve padre e hijas con consultas puntuales (se usa en
// operaciones de una sola categoría; List resuelve todo en memoria).
func (uc *CategoryUseCase) buildResponse(ctx context.Context, cat *entity.Category) (*dto.CategoryResponse, error) {
	var parent *entity.Category
	if cat.ParentID != nil {
		var err error
		parent, err = uc.repo.GetByID(ctx, *cat.ParentID)
		if err != nil {
			return nil, err
		}
	}
	children, err := uc.repo.ListByParent(ctx, cat.ID)
	if err != nil {
		return nil, err
	}
	resp := toCategoryResponse(cat, parent, children)
	return &resp, nil
}

func toCategoryResponse(cat, parent *entity.Category, children []*entity.Category) dto.CategoryResponse {
	resp := dto.CategoryResponse{
		ID:            cat.ID,
		Name:          cat.Name,
		Description:   cat.Description,
		SubCategories: make([]dto.CategorySimpleResponse, 0, len(children)),
		CreatedAt:     cat.CreatedAt,
		UpdatedAt:     cat.UpdatedAt,
	}
	if parent != nil {
		resp.Parent = &dto.CategorySimpleResponse{ID: parent.ID, Name: parent.Name}
	}
	for _, c := range children {
		resp.SubCategories = append(resp.SubCategories, dto.CategorySimpleResponse{ID: c.ID, Name: c.Name})
	}
	return resp
}

// toCategoryResponses arma padre e hijas desde la lista completa, sin
// consultas adicionales.
func toCategoryResponses(list []*entity.Category) []dto.CategoryResponse {
	byID := make(map[string]*entity.Category, len(list))
	childrenOf := make(map[string][]*entity.Category, len(list))
	for _, c := range list {
		byID[c.ID] = c
	}
	for _, c := range list {
		if c.ParentID != nil {
			childrenOf[*c.ParentID] = append(childrenOf[*c.ParentID], c)
		}
	}

	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		var parent *entity.Category
		if c.ParentID != nil {
			parent = byID[*c.ParentID]
		}
		items = append(items, toCategoryResponse(c, parent, childrenOf[c.ID]))
	}
	return items
}
