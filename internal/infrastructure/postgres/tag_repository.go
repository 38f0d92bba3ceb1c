package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.TagRepository = (*TagRepo)(nil)

// TagRepo implementación de TagRepository sobre PostgreSQL (usable con pool o tx).
type TagRepo struct {
	q Querier
}

// NewTagRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTagRepository(q Querier) *TagRepo {
	return &TagRepo{q: q}
}

// Create persiste una nueva etiqueta.
func (r *TagRepo) Create(ctx context.Context, tag *entity.Tag) error {
	query := `
		INSERT INTO tags (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, tag.ID, tag.Name, tag.CreatedAt, tag.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tag: %w", err)
	}
	return nil
}

// GetByID obtiene una etiqueta por ID. Devuelve (nil, nil) si no existe.
func (r *TagRepo) GetByID(ctx context.Context, id string) (*entity.Tag, error) {
	query := `SELECT id, name, created_at, updated_at FROM tags WHERE id = $1`
	var t entity.Tag
	err := r.q.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tag: %w", err)
	}
	return &t, nil
}

// List devuelve todas las etiquetas.
func (r *TagRepo) List(ctx context.Context) ([]*entity.Tag, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, created_at, updated_at FROM tags ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()
	return scanTags(rows)
}

// ListByIDs devuelve las etiquetas cuyos ids estén en el conjunto, en un solo
// batch. Devuelve solo las encontradas; el llamador compara tamaños.
func (r *TagRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT id, name, created_at, updated_at FROM tags WHERE id = ANY($1) ORDER BY name`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list tags by ids: %w", err)
	}
	defer rows.Close()
	return scanTags(rows)
}

// Update actualiza una etiqueta existente.
func (r *TagRepo) Update(ctx context.Context, tag *entity.Tag) error {
	query := `UPDATE tags SET name = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, tag.ID, tag.Name, tag.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update tag: %w", err)
	}
	return nil
}

// Delete elimina una etiqueta por ID; product_tag cascada por FK.
func (r *TagRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}

func scanTags(rows pgx.Rows) ([]*entity.Tag, error) {
	var list []*entity.Tag
	for rows.Next() {
		var t entity.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
