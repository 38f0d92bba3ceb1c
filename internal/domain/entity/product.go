package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. Pertenece a exactamente una
// categoría y tiene cero o más etiquetas vía ProductTag.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal // no negativo, máx. 2 decimales
	Stock       int
	CategoryID  string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Derivados por el adaptador de persistencia (no columnas de products).
	Category *Category
	Tags     []*Tag
}
