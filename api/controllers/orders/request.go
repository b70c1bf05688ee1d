package orders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	internalorders "github.com/routesales/routesales-backend/internal/orders"
)

// CreateOrderRequest captures the payload for assembling a new order.
type CreateOrderRequest struct {
	ClientID     uuid.UUID                `json:"client_id"`
	Comment      string                   `json:"comment,omitempty"`
	CustomerID   string                   `json:"customer_id,omitempty"`
	CustomerName string                   `json:"customer_name,omitempty"`
	Items        []CreateOrderItemRequest `json:"items"`
}

// CreateOrderItemRequest describes a requested product/quantity line.
type CreateOrderItemRequest struct {
	ProductID     uuid.UUID       `json:"product_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	PriceOptionID *uuid.UUID      `json:"price_option_id,omitempty"`
}

// UpdateOrderRequest carries replacement quantities for an existing order.
type UpdateOrderRequest struct {
	Items []UpdateOrderItemRequest `json:"items"`
}

// UpdateOrderItemRequest pairs a product with its new quantity.
type UpdateOrderItemRequest struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

func toCreateOrderInput(payload CreateOrderRequest) internalorders.CreateOrderInput {
	items := make([]internalorders.CreateOrderItemInput, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, internalorders.CreateOrderItemInput{
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			PriceOptionID: item.PriceOptionID,
		})
	}
	return internalorders.CreateOrderInput{
		ClientID:     payload.ClientID,
		Comment:      payload.Comment,
		CustomerID:   payload.CustomerID,
		CustomerName: payload.CustomerName,
		Items:        items,
	}
}

func toUpdateOrderInput(payload UpdateOrderRequest) internalorders.UpdateOrderInput {
	items := make([]internalorders.UpdateOrderItemInput, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, internalorders.UpdateOrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return internalorders.UpdateOrderInput{Items: items}
}
