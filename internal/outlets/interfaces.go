package outlets

import (
	"context"

	"github.com/google/uuid"

	"github.com/routesales/routesales-backend/pkg/db/models"
)

// OutletRepository defines the persistence surface required by the outlets
// service.
type OutletRepository interface {
	List(ctx context.Context) ([]models.Client, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	Create(ctx context.Context, client *models.Client) (*models.Client, error)
	Update(ctx context.Context, client *models.Client) (*models.Client, error)
	ProductsForOutlet(ctx context.Context, clientID uuid.UUID) ([]models.OutletProduct, error)
	CreatePayment(ctx context.Context, payment *models.ClientPayment) (*models.ClientPayment, error)
	ListPayments(ctx context.Context, clientID uuid.UUID) ([]models.ClientPayment, error)
}
