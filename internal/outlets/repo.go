package outlets

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/routesales/routesales-backend/pkg/db/models"
)

// Repository exposes persistence operations for outlets and their payments.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an outlets repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every outlet.
func (r *Repository) List(ctx context.Context) ([]models.Client, error) {
	var rows []models.Client
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads one outlet.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// Create inserts a new outlet.
func (r *Repository) Create(ctx context.Context, client *models.Client) (*models.Client, error) {
	if err := r.db.WithContext(ctx).Omit("Payments").Create(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

// Update saves the provided outlet.
func (r *Repository) Update(ctx context.Context, client *models.Client) (*models.Client, error) {
	if err := r.db.WithContext(ctx).Omit("Payments").Save(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

// ProductsForOutlet returns the outlet's product quantity rows with the
// product expanded.
func (r *Repository) ProductsForOutlet(ctx context.Context, clientID uuid.UUID) ([]models.OutletProduct, error) {
	var rows []models.OutletProduct
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("client_id = ?", clientID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CreatePayment inserts a payment for the outlet.
func (r *Repository) CreatePayment(ctx context.Context, payment *models.ClientPayment) (*models.ClientPayment, error) {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return nil, err
	}
	return payment, nil
}

// ListPayments returns the outlet's payments by date, newest first.
func (r *Repository) ListPayments(ctx context.Context, clientID uuid.UUID) ([]models.ClientPayment, error) {
	var rows []models.ClientPayment
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
