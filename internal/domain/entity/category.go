package entity

import "time"

// Category representa una categoría de productos de un negocio.
type Category struct {
	ID         string
	BusinessID string
	Name       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
