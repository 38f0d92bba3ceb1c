package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description" validate:"required,min=1"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" validate:"min=0"`
	CategoryID  string          `json:"category_id" validate:"required"`
	TagIDs      []string        `json:"tag_ids"`
}

// UpdateProductRequest entrada para actualización parcial de un producto.
// nil significa "sin cambio"; TagIDs no-nil (incluso vacío) reemplaza el
// conjunto completo de asociaciones.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock" validate:"omitempty,min=0"`
	CategoryID  *string          `json:"category_id"`
	TagIDs      *[]string        `json:"tag_ids"`
}

// IsEmpty indica si la petición no trae ningún campo.
func (r UpdateProductRequest) IsEmpty() bool {
	return r.Name == nil && r.Description == nil && r.Price == nil &&
		r.Stock == nil && r.CategoryID == nil && r.TagIDs == nil
}

// ProductResponse salida de un producto con categoría y etiquetas resueltas.
type ProductResponse struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Price       decimal.Decimal        `json:"price"`
	Stock       int                    `json:"stock"`
	Category    CategorySimpleResponse `json:"category"`
	Tags        []TagResponse          `json:"tags"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}
