package port

import (
	"context"

	"github.com/google/uuid"

	"gstbill/internal/domain"
)

// BillRepository defines the contract for quotation and invoice persistence.
type BillRepository interface {
	Create(ctx context.Context, bill *domain.Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Bill, error)
	// List returns one page of bills, newest first, and the total count.
	// An empty status lists every bill.
	List(ctx context.Context, status domain.BillStatus, offset, limit int) ([]domain.Bill, int, error)
	Update(ctx context.Context, bill *domain.Bill) error
	Delete(ctx context.Context, id uuid.UUID) error
	// LatestNumberWithPrefix returns the highest bill number starting with
	// prefix, or "" when none exists.
	LatestNumberWithPrefix(ctx context.Context, prefix string) (string, error)
}
