package dto

import "time"

// CreateTagRequest entrada para crear una etiqueta.
type CreateTagRequest struct {
	Name string `json:"name" validate:"required,min=1"`
}

// UpdateTagRequest entrada para actualización parcial de una etiqueta.
type UpdateTagRequest struct {
	Name *string `json:"name"`
}

// IsEmpty indica si la petición no trae ningún campo.
func (r UpdateTagRequest) IsEmpty() bool {
	return r.Name == nil
}

// TagResponse salida de una etiqueta.
type TagResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
