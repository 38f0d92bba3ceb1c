package entity

import "time"

// Tag representa una etiqueta libre asociable a productos.
type Tag struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
