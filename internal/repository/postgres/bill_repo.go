package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"gstbill/internal/domain"
	"gstbill/internal/port"
)

// billRow is the storage shape of a bill. Parties, items and totals are
// stored verbatim as JSONB so a saved bill always re-renders the same.
type billRow struct {
	ID            uuid.UUID         `db:"id"`
	Number        string            `db:"number"`
	Status        domain.BillStatus `db:"status"`
	InvoiceDate   time.Time         `db:"invoice_date"`
	Seller        json.RawMessage   `db:"seller"`
	Buyer         json.RawMessage   `db:"buyer"`
	Items         json.RawMessage   `db:"items"`
	GSTRate       decimal.Decimal   `db:"gst_rate"`
	TaxRegime     domain.TaxRegime  `db:"tax_regime"`
	Totals        json.RawMessage   `db:"totals"`
	GrandTotal    decimal.Decimal   `db:"grand_total"`
	AmountInWords string            `db:"amount_in_words"`
	Notes         string            `db:"notes"`
	CreatedAt     time.Time         `db:"created_at"`
	UpdatedAt     time.Time         `db:"updated_at"`
}

func toBillRow(b *domain.Bill) (*billRow, error) {
	seller, err := json.Marshal(b.Seller)
	if err != nil {
		return nil, fmt.Errorf("marshaling seller: %w", err)
	}
	buyer, err := json.Marshal(b.Buyer)
	if err != nil {
		return nil, fmt.Errorf("marshaling buyer: %w", err)
	}
	items := b.Items
	if items == nil {
		items = []domain.LineItem{}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("marshaling items: %w", err)
	}
	totals, err := json.Marshal(b.Totals)
	if err != nil {
		return nil, fmt.Errorf("marshaling totals: %w", err)
	}
	return &billRow{
		ID:            b.ID,
		Number:        b.Number,
		Status:        b.Status,
		InvoiceDate:   b.InvoiceDate,
		Seller:        seller,
		Buyer:         buyer,
		Items:         itemsJSON,
		GSTRate:       b.GSTRate,
		TaxRegime:     b.TaxRegime,
		Totals:        totals,
		GrandTotal:    b.Totals.GrandTotal,
		AmountInWords: b.AmountInWords,
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}, nil
}

func (r *billRow) toDomain() (*domain.Bill, error) {
	b := &domain.Bill{
		ID:            r.ID,
		Number:        r.Number,
		Status:        r.Status,
		InvoiceDate:   r.InvoiceDate,
		GSTRate:       r.GSTRate,
		TaxRegime:     r.TaxRegime,
		AmountInWords: r.AmountInWords,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	if err := json.Unmarshal(r.Seller, &b.Seller); err != nil {
		return nil, fmt.Errorf("unmarshaling seller: %w", err)
	}
	if err := json.Unmarshal(r.Buyer, &b.Buyer); err != nil {
		return nil, fmt.Errorf("unmarshaling buyer: %w", err)
	}
	if err := json.Unmarshal(r.Items, &b.Items); err != nil {
		return nil, fmt.Errorf("unmarshaling items: %w", err)
	}
	if err := json.Unmarshal(r.Totals, &b.Totals); err != nil {
		return nil, fmt.Errorf("unmarshaling totals: %w", err)
	}
	return b, nil
}

type billRepo struct {
	db *sqlx.DB
}

// NewBillRepo creates a new PostgreSQL-backed BillRepository.
func NewBillRepo(db *sqlx.DB) port.BillRepository {
	return &billRepo{db: db}
}

func (r *billRepo) Create(ctx context.Context, bill *domain.Bill) error {
	now := time.Now().UTC()
	bill.CreatedAt = now
	bill.UpdatedAt = now

	row, err := toBillRow(bill)
	if err != nil {
		return fmt.Errorf("billRepo.Create: %w", err)
	}

	query := `INSERT INTO bills (
		id, number, status, invoice_date, seller, buyer, items,
		gst_rate, tax_regime, totals, grand_total, amount_in_words, notes,
		created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7,
		$8, $9, $10, $11, $12, $13,
		$14, $15
	)`

	_, err = r.db.ExecContext(ctx, query,
		row.ID, row.Number, row.Status, row.InvoiceDate, row.Seller, row.Buyer, row.Items,
		row.GSTRate, row.TaxRegime, row.Totals, row.GrandTotal, row.AmountInWords, row.Notes,
		row.CreatedAt, row.UpdatedAt)
	if err != nil {
		if isDuplicateNumber(err) {
			return domain.ErrDuplicateBillNumber
		}
		return fmt.Errorf("billRepo.Create: %w", err)
	}
	return nil
}

func (r *billRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bill, error) {
	var row billRow
	err := r.db.GetContext(ctx, &row, "SELECT * FROM bills WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBillNotFound
		}
		return nil, fmt.Errorf("billRepo.GetByID: %w", err)
	}
	bill, err := row.toDomain()
	if err != nil {
		return nil, fmt.Errorf("billRepo.GetByID: %w", err)
	}
	return bill, nil
}

func (r *billRepo) List(ctx context.Context, status domain.BillStatus, offset, limit int) ([]domain.Bill, int, error) {
	where := ""
	args := []interface{}{}
	if status != "" {
		where = " WHERE status = $1"
		args = append(args, status)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM bills"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("billRepo.List count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM bills%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	var rows []billRow
	if err := r.db.SelectContext(ctx, &rows, query, append(args, limit, offset)...); err != nil {
		return nil, 0, fmt.Errorf("billRepo.List: %w", err)
	}

	bills := make([]domain.Bill, 0, len(rows))
	for i := range rows {
		b, err := rows[i].toDomain()
		if err != nil {
			return nil, 0, fmt.Errorf("billRepo.List: %w", err)
		}
		bills = append(bills, *b)
	}
	return bills, total, nil
}

func (r *billRepo) Update(ctx context.Context, bill *domain.Bill) error {
	bill.UpdatedAt = time.Now().UTC()
	row, err := toBillRow(bill)
	if err != nil {
		return fmt.Errorf("billRepo.Update: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE bills SET
			number = $1, status = $2, invoice_date = $3, seller = $4, buyer = $5,
			items = $6, gst_rate = $7, tax_regime = $8, totals = $9, grand_total = $10,
			amount_in_words = $11, notes = $12, updated_at = $13
		 WHERE id = $14`,
		row.Number, row.Status, row.InvoiceDate, row.Seller, row.Buyer,
		row.Items, row.GSTRate, row.TaxRegime, row.Totals, row.GrandTotal,
		row.AmountInWords, row.Notes, row.UpdatedAt,
		row.ID)
	if err != nil {
		if isDuplicateNumber(err) {
			return domain.ErrDuplicateBillNumber
		}
		return fmt.Errorf("billRepo.Update: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("billRepo.Update rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrBillNotFound
	}
	return nil
}

func (r *billRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM bills WHERE id = $1", id)
	if err != nil {
		if pgCode(err) == pgForeignKeyViolation {
			return domain.ErrBillHasSales
		}
		return fmt.Errorf("billRepo.Delete: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("billRepo.Delete rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrBillNotFound
	}
	return nil
}

func (r *billRepo) LatestNumberWithPrefix(ctx context.Context, prefix string) (string, error) {
	var number string
	err := r.db.GetContext(ctx, &number,
		`SELECT number FROM bills WHERE number LIKE $1 || '%' ORDER BY number DESC LIMIT 1`,
		escapeLike(prefix))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("billRepo.LatestNumberWithPrefix: %w", err)
	}
	return number, nil
}

func isDuplicateNumber(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation && strings.Contains(pgErr.ConstraintName, "number")
	}
	return strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "number")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
