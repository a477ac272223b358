package port

import (
	"context"

	"github.com/google/uuid"

	"gstbill/internal/domain"
)

// SaleRepository defines the contract for the sales ledger.
type SaleRepository interface {
	// CreateForBill inserts sale unless the bill already has one, and returns
	// whichever row is stored.
	CreateForBill(ctx context.Context, sale *domain.Sale) (*domain.Sale, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error)
	ExistsForBill(ctx context.Context, billID uuid.UUID) (bool, error)
	// List returns matching sales, newest first, each with its payments.
	List(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// AddPayment records payment and updates the sale totals in one transaction.
	AddPayment(ctx context.Context, payment *domain.Payment) (*domain.Sale, error)
	// DeletePayment removes a payment and reverses it on the sale in one transaction.
	DeletePayment(ctx context.Context, saleID, paymentID uuid.UUID) (*domain.Sale, error)
}
