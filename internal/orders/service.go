package orders

import (
	"context"
	stdErrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/routesales/routesales-backend/internal/catalog"
	"github.com/routesales/routesales-backend/pkg/db/models"
	"github.com/routesales/routesales-backend/pkg/enums"
	pkgerrors "github.com/routesales/routesales-backend/pkg/errors"
	"github.com/routesales/routesales-backend/pkg/metrics"
	"github.com/routesales/routesales-backend/pkg/pagination"
)

const recentOrdersLimit = 10

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type catalogLoader interface {
	ProductsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Product, error)
	CategoriesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Category, error)
}

type stockResolver interface {
	StoreIDsByRegion(ctx context.Context, regionID uuid.UUID) ([]uuid.UUID, error)
	MaxAvailableAcross(ctx context.Context, productIDs, storeIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

// Service exposes order assembly and lifecycle operations.
type Service interface {
	Create(ctx context.Context, salesRepID uuid.UUID, input CreateOrderInput) (*OrderView, error)
	List(ctx context.Context, salesRepID uuid.UUID, params pagination.Params) (*OrderList, error)
	Update(ctx context.Context, orderID, salesRepID uuid.UUID, input UpdateOrderInput) (*OrderView, error)
	Delete(ctx context.Context, orderID, salesRepID uuid.UUID) error
	SalesSummary(ctx context.Context, salesRepID uuid.UUID, lastDays *int) (*SalesSummary, error)
}

type service struct {
	repo    OrderRepository
	catalog catalogLoader
	stock   stockResolver
	tx      txRunner
	metrics *metrics.OrderMetrics
}

// NewService builds an order service backed by the provided stack. The
// metrics collector may be nil.
func NewService(repo OrderRepository, catalogRepo catalogLoader, stock stockResolver, tx txRunner, collector *metrics.OrderMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("catalog loader required")
	}
	if stock == nil {
		return nil, fmt.Errorf("stock resolver required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:    repo,
		catalog: catalogRepo,
		stock:   stock,
		tx:      tx,
		metrics: collector,
	}, nil
}

// Create validates the requested order end to end and persists the header and
// items in one transaction. Validation is fail-fast: the first violation is
// returned and nothing is written until every line has passed.
func (s *service) Create(ctx context.Context, salesRepID uuid.UUID, input CreateOrderInput) (*OrderView, error) {
	started := time.Now()
	view, err := s.create(ctx, salesRepID, input)
	s.recordCreateOutcome(time.Since(started), err)
	return view, err
}

func (s *service) create(ctx context.Context, salesRepID uuid.UUID, input CreateOrderInput) (*OrderView, error) {
	if salesRepID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sales rep identity required")
	}
	if input.ClientID == uuid.Nil || len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "missing required fields: client id and order items are required")
	}
	for _, item := range input.Items {
		if item.ProductID == uuid.Nil || item.Quantity.IsZero() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "each order item must have a product id and quantity")
		}
	}

	client, err := s.repo.FindClient(ctx, input.ClientID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load client")
	}
	customerType := enums.CustomerTypeFromClientType(client.ClientType)

	rep, err := s.repo.FindSalesRep(ctx, salesRepID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sales rep not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sales rep")
	}

	productIDs := make([]uuid.UUID, 0, len(input.Items))
	seen := make(map[uuid.UUID]struct{}, len(input.Items))
	for _, item := range input.Items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		productIDs = append(productIDs, item.ProductID)
	}

	products, err := s.catalog.ProductsByIDs(ctx, productIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}

	categoryIDs := make([]uuid.UUID, 0, len(products))
	seenCategories := make(map[uuid.UUID]struct{}, len(products))
	for _, product := range products {
		if product.CategoryID == nil {
			continue
		}
		if _, ok := seenCategories[*product.CategoryID]; ok {
			continue
		}
		seenCategories[*product.CategoryID] = struct{}{}
		categoryIDs = append(categoryIDs, *product.CategoryID)
	}

	categories, err := s.catalog.CategoriesByIDs(ctx, categoryIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load categories")
	}

	storeIDs, err := s.stock.StoreIDsByRegion(ctx, rep.RegionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load region stores")
	}

	availability := map[uuid.UUID]int{}
	if len(storeIDs) > 0 {
		availability, err = s.stock.MaxAvailableAcross(ctx, productIDs, storeIDs)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stock")
		}
	}

	totalAmount := decimal.Zero
	items := make([]models.OrderItem, 0, len(input.Items))
	for _, line := range input.Items {
		product, ok := products[line.ProductID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound,
				fmt.Sprintf("product with ID %s not found", line.ProductID))
		}

		var category *models.Category
		if product.CategoryID != nil {
			category = categories[*product.CategoryID]
		}
		packSize := catalog.PackSize(product, category)
		if err := catalog.ValidateQuantity(product.Name, line.Quantity, packSize); err != nil {
			return nil, err
		}
		totalNeeded := catalog.TotalUnits(line.Quantity, packSize)

		if len(storeIDs) == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("no stores available in your region for product %s", product.Name))
		}
		maxAvailable := availability[line.ProductID]
		if maxAvailable == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("product %s is out of stock in your region", product.Name))
		}
		if totalNeeded.GreaterThan(decimal.NewFromInt(int64(maxAvailable))) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("insufficient stock for product %s in your region. Maximum available: %d", product.Name, maxAvailable))
		}

		unitValue, priceOptionID, err := catalog.ResolvePrice(product, categories, line.PriceOptionID)
		if err != nil {
			return nil, err
		}

		totalAmount = totalAmount.Add(unitValue.Mul(line.Quantity))
		items = append(items, models.OrderItem{
			ProductID:     line.ProductID,
			Quantity:      line.Quantity,
			PriceOptionID: priceOptionID,
			UnitValue:     unitValue,
		})
	}

	customerName := strings.TrimSpace(input.CustomerName)
	if customerName == "" {
		customerName = client.Name
	}

	var orderID uuid.UUID
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		order := &models.Order{
			SalesRepID:   salesRepID,
			ClientID:     client.ID,
			TotalAmount:  totalAmount,
			Comment:      input.Comment,
			CustomerType: customerType,
			CustomerID:   input.CustomerID,
			CustomerName: customerName,
		}
		created, err := txRepo.CreateOrder(ctx, order)
		if err != nil {
			return err
		}
		orderID = created.ID
		return txRepo.CreateItems(ctx, created.ID, items)
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
	}

	detail, err := s.repo.FindDetail(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load created order")
	}
	if len(detail.Items) != len(items) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			"order was not fully persisted: item rows are missing")
	}

	view := newOrderView(detail)
	return &view, nil
}

// List returns one page of the caller's orders, newest first.
func (s *service) List(ctx context.Context, salesRepID uuid.UUID, params pagination.Params) (*OrderList, error) {
	if salesRepID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sales rep identity required")
	}

	rows, total, err := s.repo.ListBySalesRep(ctx, salesRepID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	return &OrderList{
		Orders: newOrderViews(rows),
		Page:   pagination.NewPage(params, total),
	}, nil
}

// Update applies {product, quantity} overwrites to an owned order. Quantities
// on existing items are replaced; unknown products are attached as new items.
// The stored total amount is left untouched.
func (s *service) Update(ctx context.Context, orderID, salesRepID uuid.UUID, input UpdateOrderInput) (*OrderView, error) {
	if salesRepID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sales rep identity required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order items are required")
	}
	for _, item := range input.Items {
		if item.ProductID == uuid.Nil || item.Quantity.IsZero() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "each order item must have a product id and quantity")
		}
	}

	if _, err := s.repo.FindOwned(ctx, orderID, salesRepID); err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found or unauthorized")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		for _, line := range input.Items {
			existing, err := txRepo.FindItemByProduct(ctx, orderID, line.ProductID)
			if err != nil {
				if stdErrors.Is(err, gorm.ErrRecordNotFound) {
					item := models.OrderItem{
						ProductID: line.ProductID,
						Quantity:  line.Quantity,
					}
					if err := txRepo.CreateItems(ctx, orderID, []models.OrderItem{item}); err != nil {
						return err
					}
					continue
				}
				return err
			}
			if err := txRepo.UpdateItemQuantity(ctx, existing.ID, line.Quantity); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order items")
	}

	detail, err := s.repo.FindDetail(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load updated order")
	}
	view := newOrderView(detail)
	return &view, nil
}

// Delete removes an owned order and its items atomically.
func (s *service) Delete(ctx context.Context, orderID, salesRepID uuid.UUID) error {
	if salesRepID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "sales rep identity required")
	}

	if _, err := s.repo.FindOwned(ctx, orderID, salesRepID); err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found or unauthorized")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.DeleteItems(ctx, orderID); err != nil {
			return err
		}
		return txRepo.DeleteOrder(ctx, orderID)
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
	}
	return nil
}

// SalesSummary aggregates the caller's sold quantities, optionally limited to
// the trailing number of days, alongside their most recent orders.
func (s *service) SalesSummary(ctx context.Context, salesRepID uuid.UUID, lastDays *int) (*SalesSummary, error) {
	if salesRepID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sales rep identity required")
	}

	var since *time.Time
	if lastDays != nil {
		if *lastDays <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "last_days must be a positive number of days")
		}
		cutoff := time.Now().UTC().AddDate(0, 0, -*lastDays)
		since = &cutoff
	}

	total, err := s.repo.SumItemQuantities(ctx, salesRepID, since)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum sold quantities")
	}

	recent, err := s.repo.RecentBySalesRep(ctx, salesRepID, recentOrdersLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recent orders")
	}

	return &SalesSummary{
		TotalItemsSold: total,
		RecentOrders:   newOrderViews(recent),
	}, nil
}

func (s *service) recordCreateOutcome(elapsed time.Duration, err error) {
	if s.metrics == nil {
		return
	}
	if err == nil {
		s.metrics.IncCreated()
		s.metrics.ObserveDuration("created", elapsed)
		return
	}

	reason := "internal"
	if coded := pkgerrors.As(err); coded != nil {
		reason = strings.ToLower(string(coded.Code()))
	}
	s.metrics.IncRejected(reason)
	s.metrics.ObserveDuration("rejected", elapsed)
}
