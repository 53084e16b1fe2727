package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product represents a product in the catalog.
type Product struct {
	ID           uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string          `json:"name" gorm:"type:varchar(100);not null"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Availability bool            `json:"availability" gorm:"not null"`
	CreatedAt    time.Time       `json:"-"`
	UpdatedAt    time.Time       `json:"-"`
}

// TableName pins the table to the schema's name.
func (Product) TableName() string {
	return ProductSchema.Table
}

// ProductInput carries the validated, caller-supplied fields of a product.
type ProductInput struct {
	Name         string
	Price        decimal.Decimal
	Availability bool
}
