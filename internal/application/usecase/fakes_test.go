package usecase

import (
	"context"
	"reflect"
	"sync"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria compartido por los repos fake (simula el Entity Store,
// incluidas las garantías de FK: cascada de asociaciones y RESTRICT de
// categorías referenciadas).
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	mu         sync.Mutex
	categories map[string]*entity.Category
	tags       map[string]*entity.Tag
	products   map[string]*entity.Product
	assocs     map[string][]*entity.ProductTag // por product_id

	// Contadores para asertar cuándo se consulta el almacén.
	listCalls   map[string]int
	updateCalls map[string]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		categories:  map[string]*entity.Category{},
		tags:        map[string]*entity.Tag{},
		products:    map[string]*entity.Product{},
		assocs:      map[string][]*entity.ProductTag{},
		listCalls:   map[string]int{},
		updateCalls: map[string]int{},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Repos fake
// ──────────────────────────────────────────────────────────────────────────────

type fakeCategoryRepo struct{ s *fakeStore }

var _ repository.CategoryRepository = (*fakeCategoryRepo)(nil)

func (r *fakeCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *c
	r.s.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.listCalls[cacheCategories]++
	var out []*entity.Category
	for _, c := range r.s.categories {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeCategoryRepo) ListByParent(_ context.Context, parentID string) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Category
	for _, c := range r.s.categories {
		if c.ParentID != nil && *c.ParentID == parentID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.updateCalls[cacheCategories]++
	cp := *c
	r.s.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	// FK RESTRICT: productos o subcategorías que la referencian bloquean el borrado.
	for _, p := range r.s.products {
		if p.CategoryID == id {
			return domain.ErrConflict
		}
	}
	for _, c := range r.s.categories {
		if c.ParentID != nil && *c.ParentID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.categories, id)
	return nil
}

type fakeTagRepo struct{ s *fakeStore }

var _ repository.TagRepository = (*fakeTagRepo)(nil)

func (r *fakeTagRepo) Create(_ context.Context, t *entity.Tag) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *t
	r.s.tags[t.ID] = &cp
	return nil
}

func (r *fakeTagRepo) GetByID(_ context.Context, id string) (*entity.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tags[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTagRepo) List(_ context.Context) ([]*entity.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.listCalls[cacheTags]++
	var out []*entity.Tag
	for _, t := range r.s.tags {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeTagRepo) ListByIDs(_ context.Context, ids []string) ([]*entity.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Tag
	for _, id := range ids {
		if t, ok := r.s.tags[id]; ok {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTagRepo) Update(_ context.Context, t *entity.Tag) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.updateCalls[cacheTags]++
	cp := *t
	r.s.tags[t.ID] = &cp
	return nil
}

func (r *fakeTagRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.tags, id)
	// Cascada: las asociaciones que referencian la etiqueta desaparecen.
	for pid, assocs := range r.s.assocs {
		kept := assocs[:0]
		for _, a := range assocs {
			if a.TagID != id {
				kept = append(kept, a)
			}
		}
		r.s.assocs[pid] = kept
	}
	return nil
}

type fakeProductRepo struct{ s *fakeStore }

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product, tags []*entity.ProductTag) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	cp.Category = nil
	cp.Tags = nil
	r.s.products[p.ID] = &cp
	r.s.assocs[p.ID] = append([]*entity.ProductTag{}, tags...)
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return r.materialize(p), nil
}

func (r *fakeProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.listCalls[cacheProducts]++
	var out []*entity.Product
	for _, p := range r.s.products {
		out = append(out, r.materialize(p))
	}
	return out, nil
}

// materialize arma el producto con su categoría y etiquetas resueltas, como
// hace el adaptador real con JOINs. Llamar con el lock tomado.
func (r *fakeProductRepo) materialize(p *entity.Product) *entity.Product {
	cp := *p
	if c, ok := r.s.categories[p.CategoryID]; ok {
		cc := *c
		cp.Category = &cc
	}
	cp.Tags = []*entity.Tag{}
	for _, a := range r.s.assocs[p.ID] {
		if t, ok := r.s.tags[a.TagID]; ok {
			tc := *t
			cp.Tags = append(cp.Tags, &tc)
		}
	}
	return &cp
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.updateCalls[cacheProducts]++
	cp := *p
	cp.Category = nil
	cp.Tags = nil
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) ReplaceTags(_ context.Context, productID string, tags []*entity.ProductTag) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.assocs[productID] = append([]*entity.ProductTag{}, tags...)
	return nil
}

func (r *fakeProductRepo) TagsOf(_ context.Context, productID string) ([]*entity.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	tags := []*entity.Tag{}
	for _, a := range r.s.assocs[productID] {
		if t, ok := r.s.tags[a.TagID]; ok {
			tc := *t
			tags = append(tags, &tc)
		}
	}
	return tags, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.products, id)
	delete(r.s.assocs, id) // cascada de asociaciones
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner y caché fake
// ──────────────────────────────────────────────────────────────────────────────

type fakeTxRunner struct{ products repository.ProductRepository }

func (f *fakeTxRunner) Run(_ context.Context, fn func(products repository.ProductRepository) error) error {
	return fn(f.products)
}

// fakeCache guarda los valores tal cual y registra las claves borradas.
type fakeCache struct {
	mu        sync.Mutex
	entries   map[string]any
	evictions []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]any{}}
}

func (c *fakeCache) key(name, key string) string { return name + ":" + key }

func (c *fakeCache) Get(_ context.Context, name, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[c.key(name, key)]
	if !ok {
		return false, nil
	}
	reflect.ValueOf(dest).Elem().Set(reflect.ValueOf(v))
	return true, nil
}

func (c *fakeCache) Put(_ context.Context, name, key string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	// Guardar siempre el valor (no el puntero), como haría un codec real.
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	c.entries[c.key(name, key)] = v.Interface()
	return nil
}

func (c *fakeCache) Evict(_ context.Context, name, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, c.key(name, key))
	c.evictions = append(c.evictions, c.key(name, key))
	return nil
}

func (c *fakeCache) EvictAll(_ context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if len(k) > len(name) && k[:len(name)+1] == name+":" {
			delete(c.entries, k)
		}
	}
	c.evictions = append(c.evictions, name+":*")
	return nil
}

func (c *fakeCache) has(name, key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[c.key(name, key)]
	return ok
}
