package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/routesales/routesales-backend/pkg/db/models"
	pkgerrors "github.com/routesales/routesales-backend/pkg/errors"
)

// PackSize resolves the effective pack size for a product. The product's own
// pack size wins, then the category default, then 1 (loose units).
func PackSize(product *models.Product, category *models.Category) int {
	if product != nil && product.PackSize != nil && *product.PackSize > 0 {
		return *product.PackSize
	}
	if category != nil && category.PackSize != nil && *category.PackSize > 0 {
		return *category.PackSize
	}
	return 1
}

// ValidateQuantity enforces the packaging rule on an ordered quantity. With a
// pack size above 1 the quantity must be a positive whole number of packs;
// with pack size 1 any positive quantity is accepted, fractional included.
func ValidateQuantity(productName string, quantity decimal.Decimal, packSize int) error {
	if !quantity.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("quantity for product %s must be greater than zero", productName))
	}
	if packSize > 1 && !quantity.IsInteger() {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("product %s is sold in packs of %d: quantity must be a whole number of packs", productName, packSize))
	}
	return nil
}

// TotalUnits converts an ordered quantity into individual units for stock
// comparison. A quantity of 3 with pack size 6 consumes 18 units.
func TotalUnits(quantity decimal.Decimal, packSize int) decimal.Decimal {
	if packSize <= 1 {
		return quantity
	}
	return quantity.Mul(decimal.NewFromInt(int64(packSize)))
}
