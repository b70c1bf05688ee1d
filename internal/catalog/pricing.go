package catalog

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/routesales/routesales-backend/pkg/db/models"
	pkgerrors "github.com/routesales/routesales-backend/pkg/errors"
)

// ResolvePrice determines the unit value for an order line. Without a price
// option the unit value is zero and no option id is recorded. With one, the
// option must exist under the product's category; options from other
// categories are rejected as not found.
func ResolvePrice(product *models.Product, categoriesByID map[uuid.UUID]*models.Category, priceOptionID *uuid.UUID) (decimal.Decimal, *uuid.UUID, error) {
	if priceOptionID == nil {
		return decimal.Zero, nil, nil
	}

	var category *models.Category
	if product.CategoryID != nil {
		category = categoriesByID[*product.CategoryID]
	}
	if category == nil {
		return decimal.Zero, nil, pkgerrors.New(pkgerrors.CodeNotFound,
			fmt.Sprintf("category not found for product %s", product.Name))
	}

	for i := range category.PriceOptions {
		option := &category.PriceOptions[i]
		if option.ID == *priceOptionID {
			resolved := option.ID
			return option.Value, &resolved, nil
		}
	}

	return decimal.Zero, nil, pkgerrors.New(pkgerrors.CodeNotFound,
		fmt.Sprintf("price option with ID %s not found for product %s", priceOptionID, product.Name))
}
