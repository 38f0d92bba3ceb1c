package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description string  `json:"description"`
	ParentID    *string `json:"parent_id"`
}

// UpdateCategoryRequest entrada para actualización parcial de una categoría.
// Campos en nil (o texto en blanco) significan "sin cambio".
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
	ParentID    *string `json:"parent_id"`
}

// IsEmpty indica si la petición no trae ningún campo.
func (r UpdateCategoryRequest) IsEmpty() bool {
	return r.Name == nil && r.Description == nil && r.ParentID == nil
}

// CategorySimpleResponse referencia corta a una categoría (padre o hija).
type CategorySimpleResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategoryResponse salida de una categoría con padre e hijas resueltas.
type CategoryResponse struct {
	ID            string                   `json:"id"`
	Name          string                   `json:"name"`
	Description   string                   `json:"description,omitempty"`
	Parent        *CategorySimpleResponse  `json:"parent,omitempty"`
	SubCategories []CategorySimpleResponse `json:"sub_categories"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}
