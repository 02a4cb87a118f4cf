package entity

import "time"

// ProductionResource materia prima declarada para una línea y la cantidad necesaria para completarla.
type ProductionResource struct {
	ID                string
	ProductionLineID  string
	ResourceProductID string
	ResourceName      string
	NeededQuantity    int64
	UnitOfMeasure     string
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
