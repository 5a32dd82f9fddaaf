package model

import (
	"github.com/google/uuid"
)

// ServiceCategory groups priced offerings under one icon/name, e.g.
// "Hair" containing "Cut" and "Blow dry".
type ServiceCategory struct {
	Base
	Name          string        `db:"name" json:"name"`
	Icon          string        `db:"icon" json:"icon,omitempty"`
	Subcategories []Subcategory `db:"-" json:"subcategories"`
}

// Subcategory is a single bookable offering. Names are unique within
// their category.
type Subcategory struct {
	ID          uuid.UUID `db:"id" json:"id"`
	CategoryID  uuid.UUID `db:"category_id" json:"category_id"`
	Name        string    `db:"name" json:"name"`
	DurationMin int       `db:"duration_min" json:"duration_min"`
	Price       float64   `db:"price" json:"price"`
	Position    int       `db:"position" json:"position"`
}

type CreateCategoryRequest struct {
	Name          string                 `json:"name" binding:"required"`
	Icon          string                 `json:"icon"`
	Subcategories []SubcategoryRequest   `json:"subcategories" binding:"dive"`
}

type SubcategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	DurationMin int     `json:"duration_min" binding:"required,gt=0"`
	Price       float64 `json:"price" binding:"gte=0"`
}

type UpdateCategoryRequest struct {
	Name *string `json:"name"`
	Icon *string `json:"icon"`
}
