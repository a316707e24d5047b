package models

import "time"

// Item is a billable entry in the catalog.
type Item struct {
	// ID is assigned by the store on insert.
	ID int64

	// Category groups items for the billing screens (e.g. "Lab", "Medicine").
	Category string

	// Name is the display name (e.g. "CBC").
	Name string

	// Type is a free-form sub-classification (e.g. "Blood Test", "Tablet").
	Type string

	// Strength is the dose or unit for medicines and services (e.g. "500mg", "Per L/hr").
	Strength string

	// Price is the unit price. Always >= 0.
	Price float64

	Description string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ItemPatch describes a partial update. Only non-nil fields are applied.
type ItemPatch struct {
	Category    *string
	Name        *string
	Type        *string
	Strength    *string
	Price       *float64
	Description *string
}

// IsEmpty reports whether the patch would change nothing.
func (p ItemPatch) IsEmpty() bool {
	return p.Category == nil && p.Name == nil && p.Type == nil &&
		p.Strength == nil && p.Price == nil && p.Description == nil
}

// Apply copies the set fields of p onto item.
func (p ItemPatch) Apply(item *Item) {
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Type != nil {
		item.Type = *p.Type
	}
	if p.Strength != nil {
		item.Strength = *p.Strength
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
}
