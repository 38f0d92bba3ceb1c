package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
)

type productEnv struct {
	categories *CategoryUseCase
	tags       *TagUseCase
	products   *ProductUseCase
	store      *fakeStore
	cache      *fakeCache
}

func newProductEnv() *productEnv {
	s := newFakeStore()
	cache := newFakeCache()
	catRepo := &fakeCategoryRepo{s: s}
	tagRepo := &fakeTagRepo{s: s}
	prodRepo := &fakeProductRepo{s: s}
	refs := NewReferenceResolver(catRepo, tagRepo)
	tx := &fakeTxRunner{products: prodRepo}
	return &productEnv{
		categories: NewCategoryUseCase(catRepo, refs, cache),
		tags:       NewTagUseCase(tagRepo, cache),
		products:   NewProductUseCase(prodRepo, refs, tx, cache),
		store:      s,
		cache:      cache,
	}
}

// seed crea una categoría y n etiquetas para los escenarios de producto.
func (e *productEnv) seed(t *testing.T, tagNames ...string) (categoryID string, tagIDs []string) {
	t.Helper()
	ctx := context.Background()
	cat, err := e.categories.Create(ctx, dto.CreateCategoryRequest{Name: "Electrónica"})
	require.NoError(t, err)
	for _, name := range tagNames {
		tag, err := e.tags.Create(ctx, dto.CreateTagRequest{Name: name})
		require.NoError(t, err)
		tagIDs = append(tagIDs, tag.ID)
	}
	return cat.ID, tagIDs
}

func TestProductCreate(t *testing.T) {
	ctx := context.Background()
	env := newProductEnv()
	catID, tagIDs := env.seed(t, "Importado", "Oferta")

	out, err := env.products.Create(ctx, dto.CreateProductRequest{
		Name:        "Teléfono",
		Description: "Gama media",
		Price:       decimal.NewFromFloat(999.99),
		Stock:       10,
		CategoryID:  catID,
		TagIDs:      tagIDs,
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.ID)
	assert.Equal(t, "Electrónica", out.Category.Name)
	assert.Len(t, out.Tags, 2)
	assert.Len(t, env.store.assocs[out.ID], 2)
	// Cada asociación lleva cantidad por defecto 1.
	for _, a := range env.store.assocs[out.ID] {
		assert.Equal(t, 1, a.Quantity)
	}
}

func TestProductCreateCategoriaInexistente(t *testing.T) {
	ctx := context.Background()
	env := newProductEnv()

	_, err := env.products.Create(ctx, dto.CreateProductRequest{
		Name:        "Teléfono",
		Description: "x",
		Price:       decimal.NewFromInt(1),
		CategoryID:  "no-existe",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, env.store.products)
}

// Si alguna etiqueta del conjunto no existe, no se persiste ni el producto ni
// ninguna asociación.
func TestProductCreateEtiquetaInexistenteEsAtomico(t *testing.T) {
	ctx := context.Background()
	env := newProductEnv()
	catID, tagIDs := env.seed(t, "Importado")

	_, err := env.products.Create(ctx, dto.CreateProductRequest{
		Name:        "Teléfono",
		Description: "x",
		Price:       decimal.NewFromInt(1),
		CategoryID:  catID,
		TagIDs:      append(tagIDs, "no-existe"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var mismatch *domain.ReferenceMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, domain.KindTag, mismatch.Kind)
	assert.Equal(t, 2, mismatch.Requested)
	assert.Equal(t, 1, mismatch.Resolved)

	assert.Empty(t, env.store.products, "no debe persistirse ningún producto")
	assert.Empty(t, env.store.assocs)
}

// Ids de etiqueta repetidos cuentan una sola vez.
func TestProductCreateEtiquetasDuplicadas(t *testing.T) {
	ctx := context.Background()
	env := newProductEnv()
	catID, tagIDs := env.seed(t, "Importado")

	out, err := env.products.Create(ctx, dto.CreateProductRequest{
		Name:        "Teléfono",
		Description: "x",
		Price:       decimal.NewFromInt(1),
		CategoryID:  catID,
		TagIDs:      []string{tagIDs[0], tagIDs[0], tagIDs[0]},
	})
	require.NoError(t, err)
	assert.Len(t, out.Tags, 1)
	assert.Len(t, env.store.assocs[out.ID], 1)
}

func TestProductListUsaCache(t *testing.T) {
	ctx := context.Background()
	env := newProductEnv()
	catID, _ := env.seed(t)

	_, err := env.products.Create(ctx, dto.CreateProductRequest{
		Name: "Teléfono", Description: "x", Price: decimal.NewFromInt(1), CategoryID: catID,
	})
	require.NoError(t, err)

	first, err := env.products.List(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, env.store.listCalls[cacheProducts])

	second, err := env.products.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, env.store.listCalls[cacheProducts], "el segundo List no debe consultar el almacén")
}

func TestProductUpdateParcial(t *testing.T) {
	ctx := context.Background()
	env := newProductEnv()
	catID, tagIDs := env.seed(t, "Importado")

	created, err := env.products.Create(ctx, dto.CreateProductRequest{
		Name:        "Teléfono",
		Description: "Gama media",
		Price:       decimal.NewFromFloat(999.99),
		Stock:       10,
		CategoryID:  catID,
		TagIDs:      tagIDs,
	})
	require.NoError(t, err)

	_, err = env.products.Update(ctx, created.ID, dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrEmptyPatch)
	assert.Zero(t, env.store.updateCalls[cacheProducts])

	// Nombre en blanco = sin cambio; precio y stock cero sí se aplican.
	out, err := env.products.Update(ctx, created.ID, dto.UpdateProductRequest{
		Name:  ptr(""),
		Price: ptr(decimal.Zero),
		Stock: ptr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, "Teléfono", out.Name)
	assert.True(t, out.Price.IsZero())
	assert.Zero(t, out.Stock)

	// Sin tag_ids en el patch las asociaciones quedan intactas.
	assert.Len(t, env.store.assocs[created.ID], 1)
}

func TestProductUpdateReemplazaEtiquetas(t *testing.T) {
	ctx := context.Background()
	env := newProductEnv()
	catID, tagIDs := env.seed(t, "Importado", "Oferta")

	created, err := env.products.Create(ctx, dto.CreateProductRequest{
		Name: "Teléfono", Description: "x", Price: decimal.NewFromInt(1),
		CategoryID: catID, TagIDs: tagIDs[:1],
	})
	require.NoError(t, err)

	// tag_ids no-nil reemplaza el conjunto completo.
	out, err := env.products.Update(ctx, created.ID, dto.UpdateProductRequest{
		TagIDs: ptr(tagIDs[1:]),
	})
	require.NoError(t, err)
	require.Len(t, out.Tags, 1)
	assert.Equal(t, "Oferta", out.Tags[0].Name)
	require.Len(t, env.store.assocs[created.ID], 1)
	assert.Equal(t, tagIDs[1], env.store.assocs[created.ID][0].TagID)
}

func TestProductUpdateEtiquetaInexistenteNoEscribe(t *testing.T) {
	ctx := context.Background()
	env := newProductEnv()
	catID, tagIDs := env.seed(t, "Importado")

	created, err := env.products.Create(ctx, dto.CreateProductRequest{
		Name: "Teléfono", Description: "x", Price: decimal.NewFromInt(1),
		CategoryID: catID, TagIDs: tagIDs,
	})
	require.NoError(t, err)

	_, err = env.products.Update(ctx, created.ID, dto.UpdateProductRequest{
		Name:   ptr("Otro nombre"),
		TagIDs: ptr([]string{"no-existe"}),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	// Nada se escribió: ni el nombre ni las asociaciones cambiaron.
	assert.Zero(t, env.store.updateCalls[cacheProducts])
	assert.Equal(t, "Teléfono", env.store.products[created.ID].Name)
	require.Len(t, env.store.assocs[created.ID], 1)
	assert.Equal(t, tagIDs[0], env.store.assocs[created.ID][0].TagID)
}

func TestProductDelete(t *testing.T) {
	ctx := context.Background()
	env := newProductEnv()
	catID, tagIDs := env.seed(t, "Importado")

	created, err := env.products.Create(ctx, dto.CreateProductRequest{
		Name: "Teléfono", Description: "x", Price: decimal.NewFromInt(1),
		CategoryID: catID, TagIDs: tagIDs,
	})
	require.NoError(t, err)

	require.NoError(t, env.products.Delete(ctx, created.ID))
	assert.NotContains(t, env.store.products, created.ID)
	assert.NotContains(t, env.store.assocs, created.ID, "las asociaciones caen en cascada")

	err = env.products.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductMutacionInvalidaCache(t *testing.T) {
	ctx := context.Background()
	env := newProductEnv()
	catID, _ := env.seed(t)

	created, err := env.products.Create(ctx, dto.CreateProductRequest{
		Name: "Teléfono", Description: "x", Price: decimal.NewFromInt(1), CategoryID: catID,
	})
	require.NoError(t, err)

	_, err = env.products.List(ctx)
	require.NoError(t, err)
	_, err = env.products.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, env.cache.has(cacheProducts, cacheKeyAll))
	require.True(t, env.cache.has(cacheProducts, created.ID))

	_, err = env.products.Update(ctx, created.ID, dto.UpdateProductRequest{Stock: ptr(5)})
	require.NoError(t, err)
	assert.False(t, env.cache.has(cacheProducts, cacheKeyAll))
	assert.False(t, env.cache.has(cacheProducts, created.ID))

	got, err := env.products.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock)
}
