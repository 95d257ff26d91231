package models

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Subtitle      string    `json:"subtitle"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Image         string    `json:"image"`
	Price         float64   `json:"price"`
	SalePrice     *float64  `json:"sale_price,omitempty"`
	Status        string    `json:"status"`
	InStock       bool      `json:"in_stock"`
	Featured      bool      `json:"featured"`
	StockQuantity int       `json:"stock_quantity"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// EffectivePrice is the price a new cart line item captures:
// the sale price when one is set, the base price otherwise.
func (p *Product) EffectivePrice() float64 {
	if p.SalePrice != nil {
		return *p.SalePrice
	}

	return p.Price
}

type CreateProductRequest struct {
	Name          string   `json:"name" validate:"required,min=3,max=200"`
	Subtitle      string   `json:"subtitle,omitempty"`
	Description   string   `json:"description,omitempty"`
	Category      string   `json:"category" validate:"required"`
	Image         string   `json:"image" validate:"required"`
	Price         float64  `json:"price" validate:"required,gt=0"`
	SalePrice     *float64 `json:"sale_price,omitempty" validate:"omitempty,gt=0"`
	Status        string   `json:"status" validate:"required,oneof=in-stock coming-soon limited pre-order"`
	InStock       bool     `json:"in_stock"`
	Featured      bool     `json:"featured"`
	StockQuantity int      `json:"stock_quantity" validate:"gte=0"`
}

type UpdateProductRequest struct {
	Name          *string  `json:"name,omitempty" validate:"omitempty,min=3,max=200"`
	Subtitle      *string  `json:"subtitle,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Category      *string  `json:"category,omitempty"`
	Image         *string  `json:"image,omitempty"`
	Price         *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	SalePrice     *float64 `json:"sale_price,omitempty" validate:"omitempty,gte=0"`
	Status        *string  `json:"status,omitempty" validate:"omitempty,oneof=in-stock coming-soon limited pre-order"`
	InStock       *bool    `json:"in_stock,omitempty"`
	Featured      *bool    `json:"featured,omitempty"`
	StockQuantity *int     `json:"stock_quantity,omitempty" validate:"omitempty,gte=0"`
}

type AdminCheckResponse struct {
	IsAdmin bool   `json:"is_admin"`
	Email   string `json:"email"`
}
