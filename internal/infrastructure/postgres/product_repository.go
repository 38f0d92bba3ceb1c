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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con
// pool o tx). Resuelve la categoría con JOIN y las etiquetas con un batch.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productSelect = `
	SELECT p.id, p.name, p.description, p.price, p.stock, p.category_id, p.created_at, p.updated_at,
	       c.id, c.name, c.description, c.parent_id, c.created_at, c.updated_at
	FROM products p
	JOIN categories c ON c.id = p.category_id`

// Create persiste un producto junto con sus asociaciones product_tag. Debe
// invocarse dentro de una transacción para que sea todo-o-nada.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product, tags []*entity.ProductTag) error {
	query := `
		INSERT INTO products (id, name, description, price, stock, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Price, product.Stock,
		product.CategoryID, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return r.insertTags(ctx, tags)
}

// GetByID obtiene un producto con categoría y etiquetas. (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	row := r.q.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	tags, err := r.TagsOf(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Tags = tags
	return p, nil
}

// List devuelve todos los productos con categoría y etiquetas resueltas.
// Las etiquetas de todos los productos se cargan en una sola consulta.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, productSelect+` ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.Tags = []*entity.Tag{}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}

	ids := make([]string, 0, len(list))
	byID := make(map[string]*entity.Product, len(list))
	for _, p := range list {
		ids = append(ids, p.ID)
		byID[p.ID] = p
	}
	tagRows, err := r.q.Query(ctx, `
		SELECT pt.product_id, t.id, t.name, t.created_at, t.updated_at
		FROM product_tag pt
		JOIN tags t ON t.id = pt.tag_id
		WHERE pt.product_id = ANY($1)
		ORDER BY t.name`, ids)
	if err != nil {
		return nil, fmt.Errorf("list product tags: %w", err)
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var productID string
		var t entity.Tag
		if err := tagRows.Scan(&productID, &t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product tag: %w", err)
		}
		if p, ok := byID[productID]; ok {
			p.Tags = append(p.Tags, &t)
		}
	}
	return list, tagRows.Err()
}

// Update actualiza las columnas propias del producto (no toca asociaciones).
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, price = $4, stock = $5, category_id = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Price, product.Stock,
		product.CategoryID, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// ReplaceTags descarta todas las asociaciones del producto y escribe las
// nuevas (reemplazo completo, sin diffing). Invocar dentro de una transacción.
func (r *ProductRepo) ReplaceTags(ctx context.Context, productID string, tags []*entity.ProductTag) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM product_tag WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("clear product tags: %w", err)
	}
	return r.insertTags(ctx, tags)
}

// TagsOf devuelve las etiquetas asociadas a un producto.
func (r *ProductRepo) TagsOf(ctx context.Context, productID string) ([]*entity.Tag, error) {
	rows, err := r.q.Query(ctx, `
		SELECT t.id, t.name, t.created_at, t.updated_at
		FROM product_tag pt
		JOIN tags t ON t.id = pt.tag_id
		WHERE pt.product_id = $1
		ORDER BY t.name`, productID)
	if err != nil {
		return nil, fmt.Errorf("tags of product: %w", err)
	}
	defer rows.Close()
	tags := []*entity.Tag{}
	for rows.Next() {
		var t entity.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, &t)
	}
	return tags, rows.Err()
}

// Delete elimina un producto por ID; product_tag cascada por FK.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) insertTags(ctx context.Context, tags []*entity.ProductTag) error {
	for _, pt := range tags {
		_, err := r.q.Exec(ctx, `
			INSERT INTO product_tag (product_id, tag_id, quantity, created_at)
			VALUES ($1, $2, $3, $4)`,
			pt.ProductID, pt.TagID, pt.Quantity, pt.CreatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert product tag: %w", err)
		}
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var c entity.Category
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt,
		&c.ID, &c.Name, &c.Description, &c.ParentID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Category = &c
	return &p, nil
}
