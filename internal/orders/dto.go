package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/routesales/routesales-backend/pkg/db/models"
	"github.com/routesales/routesales-backend/pkg/enums"
	"github.com/routesales/routesales-backend/pkg/pagination"
)

// CreateOrderItemInput is one requested line on a new order.
type CreateOrderItemInput struct {
	ProductID     uuid.UUID
	Quantity      decimal.Decimal
	PriceOptionID *uuid.UUID
}

// CreateOrderInput captures the payload required to assemble an order.
type CreateOrderInput struct {
	ClientID     uuid.UUID
	Comment      string
	CustomerID   string
	CustomerName string
	Items        []CreateOrderItemInput
}

// UpdateOrderItemInput is one {product, quantity} pair applied to an
// existing order.
type UpdateOrderItemInput struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
}

// UpdateOrderInput captures the payload for an order update.
type UpdateOrderInput struct {
	Items []UpdateOrderItemInput
}

// SalesRepView is the reduced representative projection exposed on order
// responses.
type SalesRepView struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone"`
}

// OrderView is the API shape of a single order.
type OrderView struct {
	ID           uuid.UUID          `json:"id"`
	TotalAmount  decimal.Decimal    `json:"total_amount"`
	Comment      string             `json:"comment,omitempty"`
	CustomerType enums.CustomerType `json:"customer_type"`
	CustomerID   string             `json:"customer_id,omitempty"`
	CustomerName string             `json:"customer_name,omitempty"`
	ClientID     uuid.UUID          `json:"client_id"`
	Client       *models.Client     `json:"client,omitempty"`
	SalesRep     *SalesRepView      `json:"sales_rep,omitempty"`
	Items        []models.OrderItem `json:"items"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// OrderList is a page of orders with pagination metadata.
type OrderList struct {
	Orders []OrderView     `json:"orders"`
	Page   pagination.Page `json:"pagination"`
}

// SalesSummary aggregates the caller's selling activity.
type SalesSummary struct {
	TotalItemsSold decimal.Decimal `json:"total_items_sold"`
	RecentOrders   []OrderView     `json:"recent_orders"`
}

func newSalesRepView(rep *models.SalesRep) *SalesRepView {
	if rep == nil {
		return nil
	}
	return &SalesRepView{ID: rep.ID, Name: rep.Name, Phone: rep.Phone}
}

func newOrderView(order *models.Order) OrderView {
	view := OrderView{
		ID:           order.ID,
		TotalAmount:  order.TotalAmount,
		Comment:      order.Comment,
		CustomerType: order.CustomerType,
		CustomerID:   order.CustomerID,
		CustomerName: order.CustomerName,
		ClientID:     order.ClientID,
		Client:       order.Client,
		SalesRep:     newSalesRepView(order.SalesRep),
		Items:        order.Items,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
	if view.Items == nil {
		view.Items = []models.OrderItem{}
	}
	return view
}

func newOrderViews(orders []models.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, newOrderView(&orders[i]))
	}
	return views
}
