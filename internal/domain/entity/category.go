package entity

import "time"

// Category representa una categoría del catálogo (árbol opcional vía ParentID).
// Los hijos no se almacenan: se derivan consultando por parent_id.
type Category struct {
	ID          string
	Name        string
	Description string
	ParentID    *string // nil si es raíz
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
