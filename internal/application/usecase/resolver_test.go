package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

func newResolverEnv() (*ReferenceResolver, *fakeStore) {
	s := newFakeStore()
	return NewReferenceResolver(&fakeCategoryRepo{s: s}, &fakeTagRepo{s: s}), s
}

func seedTag(s *fakeStore, id, name string) {
	now := time.Now()
	s.tags[id] = &entity.Tag{ID: id, Name: name, CreatedAt: now, UpdatedAt: now}
}

func TestResolverCategory(t *testing.T) {
	ctx := context.Background()
	r, s := newResolverEnv()
	s.categories["c1"] = &entity.Category{ID: "c1", Name: "Electrónica"}

	cat, err := r.Category(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Electrónica", cat.Name)

	_, err = r.Category(ctx, "c2")
	require.Error(t, err)
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, domain.KindCategory, nf.Kind)
	assert.Equal(t, "c2", nf.ID)
}

func TestResolverTags(t *testing.T) {
	ctx := context.Background()
	r, s := newResolverEnv()
	seedTag(s, "t1", "Importado")
	seedTag(s, "t2", "Oferta")

	// Conjunto vacío o nil resuelve a cero etiquetas sin error.
	tags, err := r.Tags(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, tags)

	tags, err = r.Tags(ctx, []string{"t1", "t2"})
	require.NoError(t, err)
	assert.Len(t, tags, 2)

	// Duplicados cuentan una sola vez.
	tags, err = r.Tags(ctx, []string{"t1", "t1", "t1"})
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestResolverTagsNoResueltas(t *testing.T) {
	ctx := context.Background()
	r, s := newResolverEnv()
	seedTag(s, "t1", "Importado")

	_, err := r.Tags(ctx, []string{"t1", "fantasma"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var mismatch *domain.ReferenceMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 2, mismatch.Requested)
	assert.Equal(t, 1, mismatch.Resolved)
}
