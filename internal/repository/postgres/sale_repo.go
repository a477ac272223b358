package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstbill/internal/domain"
	"gstbill/internal/ledger"
	"gstbill/internal/port"
)

type saleRepo struct {
	db *sqlx.DB
}

// NewSaleRepo creates a new PostgreSQL-backed SaleRepository.
func NewSaleRepo(db *sqlx.DB) port.SaleRepository {
	return &saleRepo{db: db}
}

func (r *saleRepo) CreateForBill(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	now := time.Now().UTC()
	sale.CreatedAt = now
	sale.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sales (
			id, bill_id, invoice_number, buyer_name,
			total_amount, received_amount, pending_amount, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (bill_id) DO NOTHING`,
		sale.ID, sale.BillID, sale.InvoiceNumber, sale.BuyerName,
		sale.TotalAmount, sale.ReceivedAmount, sale.PendingAmount, sale.Status,
		sale.CreatedAt, sale.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("saleRepo.CreateForBill: %w", err)
	}

	var stored domain.Sale
	if err := r.db.GetContext(ctx, &stored, "SELECT * FROM sales WHERE bill_id = $1", sale.BillID); err != nil {
		return nil, fmt.Errorf("saleRepo.CreateForBill reload: %w", err)
	}
	return &stored, nil
}

func (r *saleRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	var sale domain.Sale
	err := r.db.GetContext(ctx, &sale, "SELECT * FROM sales WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSaleNotFound
		}
		return nil, fmt.Errorf("saleRepo.GetByID: %w", err)
	}
	if err := sqlx.SelectContext(ctx, r.db, &sale.Payments, paymentsQuery, id); err != nil {
		return nil, fmt.Errorf("saleRepo.GetByID payments: %w", err)
	}
	return &sale, nil
}

func (r *saleRepo) ExistsForBill(ctx context.Context, billID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM sales WHERE bill_id = $1)", billID)
	if err != nil {
		return false, fmt.Errorf("saleRepo.ExistsForBill: %w", err)
	}
	return exists, nil
}

func (r *saleRepo) List(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error) {
	var conds []string
	var args []interface{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conds = append(conds, fmt.Sprintf("created_at < $%d", len(args)))
	}

	query := "SELECT * FROM sales"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	sales := []domain.Sale{}
	if err := r.db.SelectContext(ctx, &sales, query, args...); err != nil {
		return nil, fmt.Errorf("saleRepo.List: %w", err)
	}
	if err := r.attachPayments(ctx, sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// attachPayments loads the payments of every listed sale in one query.
func (r *saleRepo) attachPayments(ctx context.Context, sales []domain.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(sales))
	index := make(map[uuid.UUID]int, len(sales))
	for i := range sales {
		ids[i] = sales[i].ID
		index[sales[i].ID] = i
	}

	query, args, err := sqlx.In(
		"SELECT * FROM payments WHERE sale_id IN (?) ORDER BY payment_date, created_at", ids)
	if err != nil {
		return fmt.Errorf("saleRepo.attachPayments: %w", err)
	}
	var payments []domain.Payment
	if err := r.db.SelectContext(ctx, &payments, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("saleRepo.attachPayments: %w", err)
	}
	for _, p := range payments {
		i := index[p.SaleID]
		sales[i].Payments = append(sales[i].Payments, p)
	}
	return nil
}

func (r *saleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM sales WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("saleRepo.Delete: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("saleRepo.Delete rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrSaleNotFound
	}
	return nil
}

func (r *saleRepo) AddPayment(ctx context.Context, payment *domain.Payment) (*domain.Sale, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("saleRepo.AddPayment begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	sale, err := lockSale(ctx, tx, payment.SaleID)
	if err != nil {
		return nil, err
	}
	if err := ledger.ApplyPayment(sale, payment.Amount); err != nil {
		return nil, err
	}

	payment.CreatedAt = time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO payments (id, sale_id, amount, payment_date, payment_mode, reference_id, proof_url, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		payment.ID, payment.SaleID, payment.Amount, payment.PaymentDate,
		payment.Mode, payment.Reference, payment.ProofURL, payment.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("saleRepo.AddPayment insert: %w", err)
	}

	if err := updateSaleTotals(ctx, tx, sale); err != nil {
		return nil, err
	}
	if err := sqlx.SelectContext(ctx, tx, &sale.Payments, paymentsQuery, sale.ID); err != nil {
		return nil, fmt.Errorf("saleRepo.AddPayment payments: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("saleRepo.AddPayment commit: %w", err)
	}
	return sale, nil
}

func (r *saleRepo) DeletePayment(ctx context.Context, saleID, paymentID uuid.UUID) (*domain.Sale, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("saleRepo.DeletePayment begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	sale, err := lockSale(ctx, tx, saleID)
	if err != nil {
		return nil, err
	}

	var payment domain.Payment
	err = tx.GetContext(ctx, &payment,
		"SELECT * FROM payments WHERE id = $1 AND sale_id = $2", paymentID, saleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("saleRepo.DeletePayment lookup: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM payments WHERE id = $1", paymentID); err != nil {
		return nil, fmt.Errorf("saleRepo.DeletePayment delete: %w", err)
	}
	if err := ledger.ReversePayment(sale, payment.Amount); err != nil {
		return nil, err
	}
	if err := updateSaleTotals(ctx, tx, sale); err != nil {
		return nil, err
	}
	if err := sqlx.SelectContext(ctx, tx, &sale.Payments, paymentsQuery, sale.ID); err != nil {
		return nil, fmt.Errorf("saleRepo.DeletePayment payments: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("saleRepo.DeletePayment commit: %w", err)
	}
	return sale, nil
}

const paymentsQuery = `SELECT * FROM payments WHERE sale_id = $1 ORDER BY payment_date, created_at`

func lockSale(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*domain.Sale, error) {
	var sale domain.Sale
	err := tx.GetContext(ctx, &sale, "SELECT * FROM sales WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSaleNotFound
		}
		return nil, fmt.Errorf("saleRepo.lockSale: %w", err)
	}
	return &sale, nil
}

func updateSaleTotals(ctx context.Context, tx *sqlx.Tx, sale *domain.Sale) error {
	sale.UpdatedAt = time.Now().UTC()
	_, err := tx.ExecContext(ctx,
		`UPDATE sales SET received_amount = $1, pending_amount = $2, status = $3, updated_at = $4
		 WHERE id = $5`,
		sale.ReceivedAmount, sale.PendingAmount, sale.Status, sale.UpdatedAt, sale.ID)
	if err != nil {
		return fmt.Errorf("saleRepo.updateSaleTotals: %w", err)
	}
	return nil
}
