package models

import "time"

type Restaurant struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"column:nombre;size:120;not null" json:"name"`
	Address     string `gorm:"column:direccion;size:200" json:"address"`
	Description string `gorm:"column:descripcion;type:text" json:"description"`

	Tables []Table `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"tables,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
