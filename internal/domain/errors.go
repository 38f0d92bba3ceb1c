package domain

import (
	"errors"
	"fmt"
)

// Kind identifica el tipo de entidad en errores de dominio.
type Kind string

const (
	KindCategory Kind = "category"
	KindTag      Kind = "tag"
	KindProduct  Kind = "product"
)

// Errores de dominio (sin dependencias externas).
var (
	// ErrNotFound es el sentinel para errors.Is; NotFoundError lo envuelve.
	ErrNotFound = errors.New("recurso no encontrado")
	// ErrSelfParent: una categoría no puede ser su propio padre.
	ErrSelfParent = errors.New("la categoría no puede ser su propio padre")
	// ErrEmptyPatch: una actualización parcial debe traer al menos un campo.
	ErrEmptyPatch = errors.New("debe enviarse al menos un campo para actualizar")
	// ErrDuplicate: violación de unicidad en el almacén.
	ErrDuplicate = errors.New("recurso duplicado")
	// ErrConflict: el almacén bloqueó la operación por referencias vivas
	// (ej. borrar una categoría con productos que la usan).
	ErrConflict = errors.New("conflicto con el estado actual")
)

// NotFoundError indica que la entidad objetivo o referenciada no existe.
type NotFoundError struct {
	Kind Kind
	ID   string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s no encontrado", e.Kind)
	}
	return fmt.Sprintf("%s no encontrado: %s", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFound construye un NotFoundError para la entidad indicada.
func NewNotFound(kind Kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// ReferenceMismatchError indica que el conjunto de referencias resuelto no
// coincide en tamaño con el solicitado (algún id no existe; no se informa cuál).
type ReferenceMismatchError struct {
	Kind      Kind
	Requested int
	Resolved  int
}

func (e *ReferenceMismatchError) Error() string {
	return fmt.Sprintf("referencias de %s no resueltas: solicitadas %d, encontradas %d",
		e.Kind, e.Requested, e.Resolved)
}

func (e *ReferenceMismatchError) Unwrap() error { return ErrNotFound }
