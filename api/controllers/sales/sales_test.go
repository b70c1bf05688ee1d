package sales

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/routesales/routesales-backend/api/middleware"
	internalsales "github.com/routesales/routesales-backend/internal/sales"
	"github.com/routesales/routesales-backend/pkg/db/models"
	"github.com/routesales/routesales-backend/pkg/enums"
	pkgerrors "github.com/routesales/routesales-backend/pkg/errors"
)

type stubSalesService struct {
	create       func(ctx context.Context, createdBy uuid.UUID, input internalsales.CreateSaleInput) (*models.Sale, error)
	list         func(ctx context.Context) ([]models.Sale, error)
	summary      func(ctx context.Context) (*internalsales.Summary, error)
	detail       func(ctx context.Context, id uuid.UUID) (*models.Sale, error)
	updateStatus func(ctx context.Context, id uuid.UUID, status enums.SaleStatus) (*models.Sale, error)
	lock         func(ctx context.Context, id, actorID uuid.UUID, actorRole string) (*models.Sale, error)
}

func (s *stubSalesService) Create(ctx context.Context, createdBy uuid.UUID, input internalsales.CreateSaleInput) (*models.Sale, error) {
	if s.create != nil {
		return s.create(ctx, createdBy, input)
	}
	return &models.Sale{}, nil
}

func (s *stubSalesService) List(ctx context.Context) ([]models.Sale, error) {
	if s.list != nil {
		return s.list(ctx)
	}
	return nil, nil
}

func (s *stubSalesService) Summary(ctx context.Context) (*internalsales.Summary, error) {
	if s.summary != nil {
		return s.summary(ctx)
	}
	return &internalsales.Summary{}, nil
}

func (s *stubSalesService) Detail(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	if s.detail != nil {
		return s.detail(ctx, id)
	}
	return &models.Sale{}, nil
}

func (s *stubSalesService) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.SaleStatus) (*models.Sale, error) {
	if s.updateStatus != nil {
		return s.updateStatus(ctx, id, status)
	}
	return &models.Sale{}, nil
}

func (s *stubSalesService) Lock(ctx context.Context, id, actorID uuid.UUID, actorRole string) (*models.Sale, error) {
	if s.lock != nil {
		return s.lock(ctx, id, actorID, actorRole)
	}
	return &models.Sale{}, nil
}

func withRouteParam(req *http.Request, key, value string) *http.Request {
	chiCtx := chi.NewRouteContext()
	chiCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, chiCtx))
}

func TestCreateForwardsActorAndPayload(t *testing.T) {
	repID := uuid.New()
	productID := uuid.New()
	clientID := uuid.New()

	svc := &stubSalesService{
		create: func(ctx context.Context, createdBy uuid.UUID, input internalsales.CreateSaleInput) (*models.Sale, error) {
			if createdBy != repID {
				t.Fatalf("unexpected creator %s", createdBy)
			}
			if input.ProductID != productID || input.ClientID != clientID {
				t.Fatalf("payload not forwarded")
			}
			if input.Quantity != 3 || !input.Total.Equal(decimal.RequireFromString("45.00")) {
				t.Fatalf("unexpected amounts %d %s", input.Quantity, input.Total)
			}
			return &models.Sale{ID: uuid.New(), Status: enums.SaleStatusPending}, nil
		},
	}

	body := `{"product_id":"` + productID.String() + `","client_id":"` + clientID.String() + `","quantity":3,"unit_price":15.00,"total":45.00}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithSalesRepID(req.Context(), repID))

	resp := httptest.NewRecorder()
	Create(svc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", resp.Code, resp.Body.String())
	}
}

func TestCreateRejectsMissingRepContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	Create(&stubSalesService{}, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	saleID := uuid.New()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/sales/"+saleID.String()+"/status", strings.NewReader(`{"status":"shipped"}`))
	req.Header.Set("Content-Type", "application/json")
	req = withRouteParam(req, "saleId", saleID.String())

	resp := httptest.NewRecorder()
	UpdateStatus(&stubSalesService{}, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestUpdateStatusForwardsParsedStatus(t *testing.T) {
	saleID := uuid.New()
	svc := &stubSalesService{
		updateStatus: func(ctx context.Context, id uuid.UUID, status enums.SaleStatus) (*models.Sale, error) {
			if id != saleID {
				t.Fatalf("unexpected sale id %s", id)
			}
			if status != enums.SaleStatusCompleted {
				t.Fatalf("unexpected status %s", status)
			}
			return &models.Sale{ID: saleID, Status: status}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/sales/"+saleID.String()+"/status", strings.NewReader(`{"status":"completed"}`))
	req.Header.Set("Content-Type", "application/json")
	req = withRouteParam(req, "saleId", saleID.String())

	resp := httptest.NewRecorder()
	UpdateStatus(svc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", resp.Code, resp.Body.String())
	}
}

func TestLockSurfacesForbidden(t *testing.T) {
	saleID := uuid.New()
	svc := &stubSalesService{
		lock: func(ctx context.Context, id, actorID uuid.UUID, actorRole string) (*models.Sale, error) {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not authorized to lock this sale")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales/"+saleID.String()+"/lock", nil)
	req = req.WithContext(middleware.WithSalesRepID(req.Context(), uuid.New()))
	req = withRouteParam(req, "saleId", saleID.String())

	resp := httptest.NewRecorder()
	Lock(svc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestLockPassesRoleFromContext(t *testing.T) {
	saleID := uuid.New()
	repID := uuid.New()
	svc := &stubSalesService{
		lock: func(ctx context.Context, id, actorID uuid.UUID, actorRole string) (*models.Sale, error) {
			if actorID != repID {
				t.Fatalf("unexpected actor %s", actorID)
			}
			if actorRole != internalsales.RoleAdmin {
				t.Fatalf("role not forwarded, got %q", actorRole)
			}
			return &models.Sale{ID: saleID, IsLocked: true}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales/"+saleID.String()+"/lock", nil)
	req = req.WithContext(middleware.WithSalesRepID(req.Context(), repID))
	req = req.WithContext(middleware.WithRole(req.Context(), internalsales.RoleAdmin))
	req = withRouteParam(req, "saleId", saleID.String())

	resp := httptest.NewRecorder()
	Lock(svc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
