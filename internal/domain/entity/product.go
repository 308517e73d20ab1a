package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	ProductAvailable  ProductStatus = "available"
	ProductLowStock   ProductStatus = "low_stock"
	ProductOutOfStock ProductStatus = "out_of_stock"
)

// LowStockThreshold is the quantity at or under which a listing is shown as
// running low when the backend does not say so itself.
const LowStockThreshold = 10

func DeriveProductStatus(quantity int) ProductStatus {
	switch {
	case quantity <= 0:
		return ProductOutOfStock
	case quantity <= LowStockThreshold:
		return ProductLowStock
	default:
		return ProductAvailable
	}
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Unit        string          `json:"unit"`
	Photos      []string        `json:"photos"`
	Status      ProductStatus   `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	Views       int             `json:"views"`
	Contacts    int             `json:"contacts"`
	Sales       int             `json:"sales"`
}

// EffectiveStatus is the backend status, or the one derived from quantity
// when the backend left it empty or sent something unknown.
func (p Product) EffectiveStatus() ProductStatus {
	switch p.Status {
	case ProductAvailable, ProductLowStock, ProductOutOfStock:
		return p.Status
	default:
		return DeriveProductStatus(p.Quantity)
	}
}
