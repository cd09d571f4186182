package models

import "time"

// Table is a physical table of a restaurant. Numero is the number printed
// on the floor plan and is unique within its restaurant (composite index,
// enforced again in the handler before insert).
type Table struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RestaurantID uint       `gorm:"not null;uniqueIndex:idx_tables_restaurant_numero" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Numero   int `gorm:"column:numero;not null;uniqueIndex:idx_tables_restaurant_numero" json:"numero"`
	Capacity int `gorm:"column:capacidad;not null" json:"capacity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
