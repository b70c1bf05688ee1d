package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/routesales/routesales-backend/internal/outlets"
	"github.com/routesales/routesales-backend/pkg/db/models"
	pkgerrors "github.com/routesales/routesales-backend/pkg/errors"
)

type stubOutletsService struct {
	list       func(ctx context.Context) ([]outlets.OutletView, error)
	create     func(ctx context.Context, input outlets.UpsertOutletInput) (*models.Client, error)
	update     func(ctx context.Context, id uuid.UUID, input outlets.UpsertOutletInput) (*models.Client, error)
	products   func(ctx context.Context, id uuid.UUID) ([]outlets.OutletProductView, error)
	location   func(ctx context.Context, id uuid.UUID) (*outlets.OutletLocation, error)
	addPayment func(ctx context.Context, id uuid.UUID, input outlets.AddPaymentInput) (*models.ClientPayment, error)
	payments   func(ctx context.Context, id uuid.UUID) ([]models.ClientPayment, error)
}

func (s *stubOutletsService) List(ctx context.Context) ([]outlets.OutletView, error) {
	if s.list != nil {
		return s.list(ctx)
	}
	return nil, nil
}

func (s *stubOutletsService) Create(ctx context.Context, input outlets.UpsertOutletInput) (*models.Client, error) {
	if s.create != nil {
		return s.create(ctx, input)
	}
	return &models.Client{}, nil
}

func (s *stubOutletsService) Update(ctx context.Context, id uuid.UUID, input outlets.UpsertOutletInput) (*models.Client, error) {
	if s.update != nil {
		return s.update(ctx, id, input)
	}
	return &models.Client{}, nil
}

func (s *stubOutletsService) Products(ctx context.Context, id uuid.UUID) ([]outlets.OutletProductView, error) {
	if s.products != nil {
		return s.products(ctx, id)
	}
	return nil, nil
}

func (s *stubOutletsService) Location(ctx context.Context, id uuid.UUID) (*outlets.OutletLocation, error) {
	if s.location != nil {
		return s.location(ctx, id)
	}
	return &outlets.OutletLocation{}, nil
}

func (s *stubOutletsService) AddPayment(ctx context.Context, id uuid.UUID, input outlets.AddPaymentInput) (*models.ClientPayment, error) {
	if s.addPayment != nil {
		return s.addPayment(ctx, id, input)
	}
	return &models.ClientPayment{}, nil
}

func (s *stubOutletsService) Payments(ctx context.Context, id uuid.UUID) ([]models.ClientPayment, error) {
	if s.payments != nil {
		return s.payments(ctx, id)
	}
	return nil, nil
}

func withRouteParam(req *http.Request, key, value string) *http.Request {
	chiCtx := chi.NewRouteContext()
	chiCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, chiCtx))
}

func TestOutletsListReturnsViews(t *testing.T) {
	svc := &stubOutletsService{
		list: func(ctx context.Context) ([]outlets.OutletView, error) {
			return []outlets.OutletView{
				{ID: uuid.New(), Name: "Acme Duka", Balance: decimal.NewFromInt(120)},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/outlets", nil)
	resp := httptest.NewRecorder()
	OutletsList(svc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data []outlets.OutletView `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].Name != "Acme Duka" {
		t.Fatalf("unexpected outlets in response")
	}
}

func TestOutletCreateForwardsPayload(t *testing.T) {
	svc := &stubOutletsService{
		create: func(ctx context.Context, input outlets.UpsertOutletInput) (*models.Client, error) {
			if input.Name != "Acme Duka" || input.Address != "14 Market Rd" {
				t.Fatalf("payload not forwarded: %+v", input)
			}
			if input.Latitude == nil || *input.Latitude != -1.2921 {
				t.Fatalf("latitude not forwarded")
			}
			return &models.Client{ID: uuid.New(), Name: input.Name}, nil
		},
	}

	body := `{"name":"Acme Duka","address":"14 Market Rd","latitude":-1.2921,"longitude":36.8219}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/outlets", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	OutletCreate(svc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", resp.Code, resp.Body.String())
	}
}

func TestOutletCreateSurfacesValidation(t *testing.T) {
	svc := &stubOutletsService{
		create: func(ctx context.Context, input outlets.UpsertOutletInput) (*models.Client, error) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name and address are required")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/outlets", strings.NewReader(`{"name":""}`))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	OutletCreate(svc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestOutletUpdateParsesID(t *testing.T) {
	outletID := uuid.New()
	svc := &stubOutletsService{
		update: func(ctx context.Context, id uuid.UUID, input outlets.UpsertOutletInput) (*models.Client, error) {
			if id != outletID {
				t.Fatalf("unexpected outlet id %s", id)
			}
			if input.Contact == nil || *input.Contact != "0712000111" {
				t.Fatalf("contact not forwarded")
			}
			return &models.Client{ID: outletID}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/api/v1/outlets/"+outletID.String(), strings.NewReader(`{"contact":"0712000111"}`))
	req.Header.Set("Content-Type", "application/json")
	req = withRouteParam(req, "outletId", outletID.String())

	resp := httptest.NewRecorder()
	OutletUpdate(svc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", resp.Code, resp.Body.String())
	}
}

func TestOutletLocationNotFound(t *testing.T) {
	outletID := uuid.New()
	svc := &stubOutletsService{
		location: func(ctx context.Context, id uuid.UUID) (*outlets.OutletLocation, error) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "outlet not found")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/outlets/"+outletID.String()+"/location", nil)
	req = withRouteParam(req, "outletId", outletID.String())

	resp := httptest.NewRecorder()
	OutletLocation(svc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestOutletAddPaymentForwardsAmount(t *testing.T) {
	outletID := uuid.New()
	svc := &stubOutletsService{
		addPayment: func(ctx context.Context, id uuid.UUID, input outlets.AddPaymentInput) (*models.ClientPayment, error) {
			if id != outletID {
				t.Fatalf("unexpected outlet id %s", id)
			}
			if !input.Amount.Equal(decimal.RequireFromString("250.50")) {
				t.Fatalf("unexpected amount %s", input.Amount)
			}
			if input.ImageURL != "https://cdn.example.com/rcpt.jpg" {
				t.Fatalf("image url not forwarded")
			}
			return &models.ClientPayment{ID: uuid.New(), ClientID: outletID}, nil
		},
	}

	body := `{"amount":250.50,"image_url":"https://cdn.example.com/rcpt.jpg"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/outlets/"+outletID.String()+"/payments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withRouteParam(req, "outletId", outletID.String())

	resp := httptest.NewRecorder()
	OutletAddPayment(svc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", resp.Code, resp.Body.String())
	}
}
