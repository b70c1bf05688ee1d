package outlets

import (
	"context"
	stdErrors "errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/routesales/routesales-backend/pkg/db/models"
	"github.com/routesales/routesales-backend/pkg/enums"
	pkgerrors "github.com/routesales/routesales-backend/pkg/errors"
)

// retailClientType is stamped onto every outlet created through this module.
const retailClientType = 1

// OutletView is the reduced outlet projection returned on list responses.
type OutletView struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	Address   string          `json:"address"`
	Latitude  *float64        `json:"latitude"`
	Longitude *float64        `json:"longitude"`
}

// OutletLocation is the coordinate projection of one outlet.
type OutletLocation struct {
	ID        uuid.UUID `json:"id"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
}

// OutletProductView pairs a product with the quantity held at the outlet.
type OutletProductView struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// UpsertOutletInput captures the payload for creating or updating an outlet.
type UpsertOutletInput struct {
	Name      string
	Address   string
	Email     *string
	Contact   *string
	TaxPIN    *string
	Latitude  *float64
	Longitude *float64
	Balance   *decimal.Decimal
	RegionID  *uuid.UUID
}

// AddPaymentInput captures a payment submission against an outlet.
type AddPaymentInput struct {
	Amount   decimal.Decimal
	ImageURL string
}

// Service exposes outlet data access.
type Service interface {
	List(ctx context.Context) ([]OutletView, error)
	Create(ctx context.Context, input UpsertOutletInput) (*models.Client, error)
	Update(ctx context.Context, id uuid.UUID, input UpsertOutletInput) (*models.Client, error)
	Products(ctx context.Context, id uuid.UUID) ([]OutletProductView, error)
	Location(ctx context.Context, id uuid.UUID) (*OutletLocation, error)
	AddPayment(ctx context.Context, id uuid.UUID, input AddPaymentInput) (*models.ClientPayment, error)
	Payments(ctx context.Context, id uuid.UUID) ([]models.ClientPayment, error)
}

type service struct {
	repo OutletRepository
}

// NewService builds an outlets service backed by the provided repository.
func NewService(repo OutletRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("outlet repository required")
	}
	return &service{repo: repo}, nil
}

// List returns the reduced projection of every outlet.
func (s *service) List(ctx context.Context) ([]OutletView, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list outlets")
	}

	views := make([]OutletView, 0, len(rows))
	for _, row := range rows {
		views = append(views, OutletView{
			ID:        row.ID,
			Name:      row.Name,
			Balance:   row.Balance,
			Address:   row.Address,
			Latitude:  row.Latitude,
			Longitude: row.Longitude,
		})
	}
	return views, nil
}

// Create inserts a new outlet. Name and address are mandatory; the client
// type is always stamped as retail.
func (s *service) Create(ctx context.Context, input UpsertOutletInput) (*models.Client, error) {
	if err := validateUpsert(input); err != nil {
		return nil, err
	}

	clientType := retailClientType
	client := &models.Client{
		Name:       strings.TrimSpace(input.Name),
		Address:    strings.TrimSpace(input.Address),
		Email:      input.Email,
		Contact:    input.Contact,
		TaxPIN:     input.TaxPIN,
		Latitude:   input.Latitude,
		Longitude:  input.Longitude,
		ClientType: &clientType,
		RegionID:   input.RegionID,
	}
	if input.Balance != nil {
		client.Balance = *input.Balance
	}

	created, err := s.repo.Create(ctx, client)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist outlet")
	}
	return created, nil
}

// Update overwrites an outlet's editable fields.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpsertOutletInput) (*models.Client, error) {
	if err := validateUpsert(input); err != nil {
		return nil, err
	}

	client, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	client.Name = strings.TrimSpace(input.Name)
	client.Address = strings.TrimSpace(input.Address)
	client.Latitude = input.Latitude
	client.Longitude = input.Longitude
	if input.Email != nil {
		client.Email = input.Email
	}
	if input.Contact != nil {
		client.Contact = input.Contact
	}
	if input.TaxPIN != nil {
		client.TaxPIN = input.TaxPIN
	}
	if input.Balance != nil {
		client.Balance = *input.Balance
	}

	updated, err := s.repo.Update(ctx, client)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist outlet")
	}
	return updated, nil
}

// Products returns the products held at the outlet with their quantities.
func (s *service) Products(ctx context.Context, id uuid.UUID) ([]OutletProductView, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.repo.ProductsForOutlet(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load outlet products")
	}

	views := make([]OutletProductView, 0, len(rows))
	for _, row := range rows {
		view := OutletProductView{Quantity: row.Quantity}
		if row.Product != nil {
			view.Product = *row.Product
		}
		views = append(views, view)
	}
	return views, nil
}

// Location returns the outlet's coordinates.
func (s *service) Location(ctx context.Context, id uuid.UUID) (*OutletLocation, error) {
	client, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return &OutletLocation{ID: client.ID, Latitude: client.Latitude, Longitude: client.Longitude}, nil
}

// AddPayment records a pending payment against the outlet.
func (s *service) AddPayment(ctx context.Context, id uuid.UUID, input AddPaymentInput) (*models.ClientPayment, error) {
	if !input.Amount.IsPositive() || strings.TrimSpace(input.ImageURL) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount and payment image are required")
	}

	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}

	payment := &models.ClientPayment{
		ClientID: id,
		Amount:   input.Amount,
		ImageURL: strings.TrimSpace(input.ImageURL),
		Status:   enums.PaymentStatusPending,
	}
	created, err := s.repo.CreatePayment(ctx, payment)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist payment")
	}
	return created, nil
}

// Payments lists the outlet's payments, newest first.
func (s *service) Payments(ctx context.Context, id uuid.UUID) ([]models.ClientPayment, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListPayments(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payments")
	}
	return rows, nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "outlet not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load outlet")
	}
	return client, nil
}

func validateUpsert(input UpsertOutletInput) error {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Address) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name and address are required")
	}
	return nil
}
