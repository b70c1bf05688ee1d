package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/routesales/routesales-backend/pkg/db/models"
	"github.com/routesales/routesales-backend/pkg/enums"
	pkgerrors "github.com/routesales/routesales-backend/pkg/errors"
	"github.com/routesales/routesales-backend/pkg/pagination"
)

type stubOrderRepo struct {
	clients   map[uuid.UUID]*models.Client
	reps      map[uuid.UUID]*models.SalesRep
	orders    map[uuid.UUID]*models.Order
	items     map[uuid.UUID][]models.OrderItem
	sumResult decimal.Decimal
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{
		clients: map[uuid.UUID]*models.Client{},
		reps:    map[uuid.UUID]*models.SalesRep{},
		orders:  map[uuid.UUID]*models.Order{},
		items:   map[uuid.UUID][]models.OrderItem{},
	}
}

func (s *stubOrderRepo) WithTx(tx *gorm.DB) OrderRepository { return s }

func (s *stubOrderRepo) FindClient(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	if client, ok := s.clients[id]; ok {
		return client, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrderRepo) FindSalesRep(ctx context.Context, id uuid.UUID) (*models.SalesRep, error) {
	if rep, ok := s.reps[id]; ok {
		return rep, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrderRepo) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	order.ID = uuid.New()
	order.CreatedAt = time.Now().UTC()
	s.orders[order.ID] = order
	return order, nil
}

func (s *stubOrderRepo) CreateItems(ctx context.Context, orderID uuid.UUID, items []models.OrderItem) error {
	for i := range items {
		items[i].ID = uuid.New()
		items[i].OrderID = orderID
	}
	s.items[orderID] = append(s.items[orderID], items...)
	return nil
}

func (s *stubOrderRepo) FindDetail(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *order
	clone.Items = append([]models.OrderItem{}, s.items[id]...)
	clone.Client = s.clients[order.ClientID]
	clone.SalesRep = s.reps[order.SalesRepID]
	return &clone, nil
}

func (s *stubOrderRepo) FindOwned(ctx context.Context, id, salesRepID uuid.UUID) (*models.Order, error) {
	order, ok := s.orders[id]
	if !ok || order.SalesRepID != salesRepID {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (s *stubOrderRepo) ListBySalesRep(ctx context.Context, salesRepID uuid.UUID, params pagination.Params) ([]models.Order, int64, error) {
	var rows []models.Order
	for id, order := range s.orders {
		if order.SalesRepID != salesRepID {
			continue
		}
		clone := *order
		clone.Items = append([]models.OrderItem{}, s.items[id]...)
		rows = append(rows, clone)
	}
	return rows, int64(len(rows)), nil
}

func (s *stubOrderRepo) FindItemByProduct(ctx context.Context, orderID, productID uuid.UUID) (*models.OrderItem, error) {
	for _, item := range s.items[orderID] {
		if item.ProductID == productID {
			found := item
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrderRepo) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity decimal.Decimal) error {
	for orderID, items := range s.items {
		for i := range items {
			if items[i].ID == itemID {
				s.items[orderID][i].Quantity = quantity
				return nil
			}
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *stubOrderRepo) DeleteItems(ctx context.Context, orderID uuid.UUID) error {
	delete(s.items, orderID)
	return nil
}

func (s *stubOrderRepo) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	delete(s.orders, id)
	return nil
}

func (s *stubOrderRepo) SumItemQuantities(ctx context.Context, salesRepID uuid.UUID, since *time.Time) (decimal.Decimal, error) {
	return s.sumResult, nil
}

func (s *stubOrderRepo) RecentBySalesRep(ctx context.Context, salesRepID uuid.UUID, limit int) ([]models.Order, error) {
	rows, _, err := s.ListBySalesRep(ctx, salesRepID, pagination.Params{})
	return rows, err
}

type stubCatalog struct {
	products   map[uuid.UUID]*models.Product
	categories map[uuid.UUID]*models.Category
}

func (s *stubCatalog) ProductsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Product, error) {
	result := map[uuid.UUID]*models.Product{}
	for _, id := range ids {
		if product, ok := s.products[id]; ok {
			result[id] = product
		}
	}
	return result, nil
}

func (s *stubCatalog) CategoriesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Category, error) {
	result := map[uuid.UUID]*models.Category{}
	for _, id := range ids {
		if category, ok := s.categories[id]; ok {
			result[id] = category
		}
	}
	return result, nil
}

type stubStock struct {
	storeIDs     []uuid.UUID
	availability map[uuid.UUID]int
}

func (s *stubStock) StoreIDsByRegion(ctx context.Context, regionID uuid.UUID) ([]uuid.UUID, error) {
	return s.storeIDs, nil
}

func (s *stubStock) MaxAvailableAcross(ctx context.Context, productIDs, storeIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	return s.availability, nil
}

// itemDroppingRepo hides the last item row from FindDetail, simulating a
// read that observes fewer rows than the write persisted.
type itemDroppingRepo struct {
	*stubOrderRepo
}

func (r *itemDroppingRepo) WithTx(tx *gorm.DB) OrderRepository { return r }

func (r *itemDroppingRepo) FindDetail(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	detail, err := r.stubOrderRepo.FindDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(detail.Items) > 0 {
		detail.Items = detail.Items[:len(detail.Items)-1]
	}
	return detail, nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fixture struct {
	repo     *stubOrderRepo
	catalog  *stubCatalog
	stock    *stubStock
	svc      Service
	repID    uuid.UUID
	clientID uuid.UUID
	regionID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := newStubOrderRepo()
	cat := &stubCatalog{
		products:   map[uuid.UUID]*models.Product{},
		categories: map[uuid.UUID]*models.Category{},
	}
	stock := &stubStock{
		storeIDs:     []uuid.UUID{uuid.New()},
		availability: map[uuid.UUID]int{},
	}

	svc, err := NewService(repo, cat, stock, stubTxRunner{}, nil)
	require.NoError(t, err)

	regionID := uuid.New()
	repID := uuid.New()
	clientID := uuid.New()
	clientType := 1
	repo.reps[repID] = &models.SalesRep{ID: repID, Name: "Jordan", Phone: "0700000001", RegionID: regionID}
	repo.clients[clientID] = &models.Client{ID: clientID, Name: "Corner Duka", ClientType: &clientType}

	return &fixture{
		repo:     repo,
		catalog:  cat,
		stock:    stock,
		svc:      svc,
		repID:    repID,
		clientID: clientID,
		regionID: regionID,
	}
}

func (f *fixture) addProduct(name string, packSize *int, categoryID *uuid.UUID) uuid.UUID {
	id := uuid.New()
	f.catalog.products[id] = &models.Product{ID: id, Name: name, PackSize: packSize, CategoryID: categoryID}
	return id
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) *pkgerrors.Error {
	t.Helper()

	require.Error(t, err)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded, "expected coded error, got %v", err)
	require.Equal(t, code, coded.Code(), "unexpected code for error: %v", err)
	return coded
}

func TestServiceCreate_missingFields(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), f.repID, CreateOrderInput{})
	requireCode(t, err, pkgerrors.CodeValidation)

	_, err = f.svc.Create(context.Background(), f.repID, CreateOrderInput{
		ClientID: f.clientID,
		Items:    []CreateOrderItemInput{{ProductID: uuid.Nil, Quantity: decimal.NewFromInt(1)}},
	})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestServiceCreate_clientNotFound(t *testing.T) {
	f := newFixture(t)
	productID := f.addProduct("Soda", nil, nil)

	_, err := f.svc.Create(context.Background(), f.repID, CreateOrderInput{
		ClientID: uuid.New(),
		Items:    []CreateOrderItemInput{{ProductID: productID, Quantity: decimal.NewFromInt(1)}},
	})
	coded := requireCode(t, err, pkgerrors.CodeNotFound)
	assert.Contains(t, coded.Message(), "client not found")
}

func TestServiceCreate_productNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), f.repID, CreateOrderInput{
		ClientID: f.clientID,
		Items:    []CreateOrderItemInput{{ProductID: uuid.New(), Quantity: decimal.NewFromInt(1)}},
	})
	coded := requireCode(t, err, pkgerrors.CodeNotFound)
	assert.Contains(t, coded.Message(), "not found")
}

func TestServiceCreate_packSizeRejectsFractions(t *testing.T) {
	f := newFixture(t)
	pack := 6
	productID := f.addProduct("Cola Crate", &pack, nil)
	f.stock.availability[productID] = 100

	_, err := f.svc.Create(context.Background(), f.repID, CreateOrderInput{
		ClientID: f.clientID,
		Items:    []CreateOrderItemInput{{ProductID: productID, Quantity: decimal.RequireFromString("1.5")}},
	})
	coded := requireCode(t, err, pkgerrors.CodeValidation)
	assert.Contains(t, coded.Message(), "packs")
}

func TestServiceCreate_noStoresInRegion(t *testing.T) {
	f := newFixture(t)
	productID := f.addProduct("Soda", nil, nil)
	f.stock.storeIDs = nil

	_, err := f.svc.Create(context.Background(), f.repID, CreateOrderInput{
		ClientID: f.clientID,
		Items:    []CreateOrderItemInput{{ProductID: productID, Quantity: decimal.NewFromInt(1)}},
	})
	coded := requireCode(t, err, pkgerrors.CodeValidation)
	assert.Contains(t, coded.Message(), "no stores available")
}

func TestServiceCreate_outOfStock(t *testing.T) {
	f := newFixture(t)
	productID := f.addProduct("Soda", nil, nil)

	_, err := f.svc.Create(context.Background(), f.repID, CreateOrderInput{
		ClientID: f.clientID,
		Items:    []CreateOrderItemInput{{ProductID: productID, Quantity: decimal.NewFromInt(1)}},
	})
	coded := requireCode(t, err, pkgerrors.CodeValidation)
	assert.Contains(t, coded.Message(), "out of stock")
}

func TestServiceCreate_insufficientStockReportsMax(t *testing.T) {
	f := newFixture(t)
	pack := 6
	productID := f.addProduct("Cola Crate", &pack, nil)
	f.stock.availability[productID] = 9

	// 2 packs of 6 need 12 units against a best single store of 9.
	_, err := f.svc.Create(context.Background(), f.repID, CreateOrderInput{
		ClientID: f.clientID,
		Items:    []CreateOrderItemInput{{ProductID: productID, Quantity: decimal.NewFromInt(2)}},
	})
	coded := requireCode(t, err, pkgerrors.CodeValidation)
	assert.Contains(t, coded.Message(), "Maximum available: 9")
}

func TestServiceCreate_priceOptionFromWrongCategory(t *testing.T) {
	f := newFixture(t)
	categoryID := uuid.New()
	f.catalog.categories[categoryID] = &models.Category{
		ID: categoryID,
		PriceOptions: []models.PriceOption{
			{ID: uuid.New(), CategoryID: categoryID, Value: decimal.NewFromInt(5)},
		},
	}
	productID := f.addProduct("Soda", nil, &categoryID)
	f.stock.availability[productID] = 10
	foreignOption := uuid.New()

	_, err := f.svc.Create(context.Background(), f.repID, CreateOrderInput{
		ClientID: f.clientID,
		Items: []CreateOrderItemInput{
			{ProductID: productID, Quantity: decimal.NewFromInt(1), PriceOptionID: &foreignOption},
		},
	})
	requireCode(t, err, pkgerrors.CodeNotFound)
	assert.Empty(t, f.repo.orders, "nothing may persist when validation fails")
}

func TestServiceCreate_success(t *testing.T) {
	f := newFixture(t)

	categoryID := uuid.New()
	optionID := uuid.New()
	f.catalog.categories[categoryID] = &models.Category{
		ID: categoryID,
		PriceOptions: []models.PriceOption{
			{ID: optionID, CategoryID: categoryID, Label: "retail", Value: decimal.RequireFromString("4.50")},
		},
	}
	pack := 6
	crateID := f.addProduct("Cola Crate", &pack, &categoryID)
	riceID := f.addProduct("Rice", nil, nil)
	f.stock.availability[crateID] = 20
	f.stock.availability[riceID] = 5

	view, err := f.svc.Create(context.Background(), f.repID, CreateOrderInput{
		ClientID: f.clientID,
		Comment:  "deliver friday",
		Items: []CreateOrderItemInput{
			{ProductID: crateID, Quantity: decimal.NewFromInt(3), PriceOptionID: &optionID},
			{ProductID: riceID, Quantity: decimal.RequireFromString("2.5")},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, view)

	// Only the priced line contributes: 4.50 * 3.
	assert.True(t, decimal.RequireFromString("13.50").Equal(view.TotalAmount), "got total %s", view.TotalAmount)
	assert.Equal(t, enums.CustomerTypeRetail, view.CustomerType)
	assert.Equal(t, "Corner Duka", view.CustomerName)
	require.Len(t, view.Items, 2)
	require.NotNil(t, view.SalesRep)
	assert.Equal(t, "Jordan", view.SalesRep.Name)

	for _, item := range view.Items {
		if item.ProductID == crateID {
			require.NotNil(t, item.PriceOptionID)
			assert.Equal(t, optionID, *item.PriceOptionID)
			assert.True(t, decimal.RequireFromString("4.50").Equal(item.UnitValue))
		} else {
			assert.Nil(t, item.PriceOptionID)
			assert.True(t, item.UnitValue.IsZero())
		}
	}
}

func TestServiceCreate_fallbackCustomerTypeBusiness(t *testing.T) {
	f := newFixture(t)
	f.repo.clients[f.clientID].ClientType = nil
	productID := f.addProduct("Soda", nil, nil)
	f.stock.availability[productID] = 10

	view, err := f.svc.Create(context.Background(), f.repID, CreateOrderInput{
		ClientID: f.clientID,
		Items:    []CreateOrderItemInput{{ProductID: productID, Quantity: decimal.NewFromInt(2)}},
	})
	require.NoError(t, err)
	assert.Equal(t, enums.CustomerTypeBusiness, view.CustomerType)
}

func TestServiceCreate_wholesaleClientType(t *testing.T) {
	f := newFixture(t)
	wholesale := 2
	f.repo.clients[f.clientID].ClientType = &wholesale
	productID := f.addProduct("Soda", nil, nil)
	f.stock.availability[productID] = 10

	view, err := f.svc.Create(context.Background(), f.repID, CreateOrderInput{
		ClientID: f.clientID,
		Items:    []CreateOrderItemInput{{ProductID: productID, Quantity: decimal.NewFromInt(2)}},
	})
	require.NoError(t, err)
	assert.Equal(t, enums.CustomerTypeWholesale, view.CustomerType)
}

func TestServiceCreate_stockExactlyAtLimitSucceeds(t *testing.T) {
	f := newFixture(t)
	pack := 12
	productID := f.addProduct("Water Crate", &pack, nil)
	// 3 packs of 12 need exactly the 36 units on hand.
	f.stock.availability[productID] = 36

	view, err := f.svc.Create(context.Background(), f.repID, CreateOrderInput{
		ClientID: f.clientID,
		Items:    []CreateOrderItemInput{{ProductID: productID, Quantity: decimal.NewFromInt(3)}},
	})
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.True(t, decimal.NewFromInt(3).Equal(view.Items[0].Quantity))
}

func TestServiceCreate_missingItemRowsIsStateConflict(t *testing.T) {
	f := newFixture(t)
	repo := &itemDroppingRepo{stubOrderRepo: f.repo}
	svc, err := NewService(repo, f.catalog, f.stock, stubTxRunner{}, nil)
	require.NoError(t, err)

	productID := f.addProduct("Soda", nil, nil)
	f.stock.availability[productID] = 10

	_, err = svc.Create(context.Background(), f.repID, CreateOrderInput{
		ClientID: f.clientID,
		Items:    []CreateOrderItemInput{{ProductID: productID, Quantity: decimal.NewFromInt(2)}},
	})
	requireCode(t, err, pkgerrors.CodeStateConflict)
}

func TestServiceUpdate_ownershipScoped(t *testing.T) {
	f := newFixture(t)
	productID := f.addProduct("Soda", nil, nil)
	f.stock.availability[productID] = 10

	view, err := f.svc.Create(context.Background(), f.repID, CreateOrderInput{
		ClientID: f.clientID,
		Items:    []CreateOrderItemInput{{ProductID: productID, Quantity: decimal.NewFromInt(2)}},
	})
	require.NoError(t, err)

	_, err = f.svc.Update(context.Background(), view.ID, uuid.New(), UpdateOrderInput{
		Items: []UpdateOrderItemInput{{ProductID: productID, Quantity: decimal.NewFromInt(5)}},
	})
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestServiceUpdate_overwritesAndAttaches(t *testing.T) {
	f := newFixture(t)
	productID := f.addProduct("Soda", nil, nil)
	f.stock.availability[productID] = 10

	view, err := f.svc.Create(context.Background(), f.repID, CreateOrderInput{
		ClientID: f.clientID,
		Items:    []CreateOrderItemInput{{ProductID: productID, Quantity: decimal.NewFromInt(2)}},
	})
	require.NoError(t, err)
	originalTotal := view.TotalAmount

	newProductID := uuid.New()
	updated, err := f.svc.Update(context.Background(), view.ID, f.repID, UpdateOrderInput{
		Items: []UpdateOrderItemInput{
			{ProductID: productID, Quantity: decimal.NewFromInt(7)},
			{ProductID: newProductID, Quantity: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Items, 2)
	assert.True(t, originalTotal.Equal(updated.TotalAmount), "total must not be recomputed on update")

	for _, item := range updated.Items {
		if item.ProductID == productID {
			assert.True(t, decimal.NewFromInt(7).Equal(item.Quantity))
		}
	}
}

func TestServiceDelete_repeatReturnsNotFound(t *testing.T) {
	f := newFixture(t)
	productID := f.addProduct("Soda", nil, nil)
	f.stock.availability[productID] = 10

	view, err := f.svc.Create(context.Background(), f.repID, CreateOrderInput{
		ClientID: f.clientID,
		Items:    []CreateOrderItemInput{{ProductID: productID, Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), view.ID, f.repID))
	err = f.svc.Delete(context.Background(), view.ID, f.repID)
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestServiceSalesSummary(t *testing.T) {
	f := newFixture(t)
	f.repo.sumResult = decimal.RequireFromString("42.5")

	summary, err := f.svc.SalesSummary(context.Background(), f.repID, nil)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("42.5").Equal(summary.TotalItemsSold))

	negative := -3
	_, err = f.svc.SalesSummary(context.Background(), f.repID, &negative)
	requireCode(t, err, pkgerrors.CodeValidation)
}
