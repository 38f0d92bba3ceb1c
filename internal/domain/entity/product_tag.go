package entity

import "time"

// ProductTag representa la asociación producto-etiqueta (única por par).
// Quantity permite asociaciones tipo bundle; por defecto 1.
type ProductTag struct {
	ProductID string
	TagID     string
	Quantity  int
	CreatedAt time.Time
}
