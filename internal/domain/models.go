package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is one row of an invoice or quotation.
// Amount is the authoritative taxable base for the line.
type LineItem struct {
	Description    string          `json:"description"`
	HSNCode        string          `json:"hsn_code"`
	Quantity       decimal.Decimal `json:"quantity"`
	Rate           decimal.Decimal `json:"rate"`
	Amount         decimal.Decimal `json:"amount"`
	ExcludeFromTax bool            `json:"exclude_from_tax"`
}

// InvoiceTotals is the derived tax breakdown for a set of line items.
type InvoiceTotals struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	TaxableValue decimal.Decimal `json:"taxable_value"`
	CGST         decimal.Decimal `json:"cgst"`
	SGST         decimal.Decimal `json:"sgst"`
	IGST         decimal.Decimal `json:"igst"`
	TotalTax     decimal.Decimal `json:"total_tax"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
}

// Party is the seller or buyer printed on a bill.
type Party struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	GSTIN   string `json:"gstin"`
	PAN     string `json:"pan"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// Bill is a saved quotation or invoice together with its computed totals.
type Bill struct {
	ID            uuid.UUID       `json:"id"`
	Number        string          `json:"number"`
	Status        BillStatus      `json:"status"`
	InvoiceDate   time.Time       `json:"invoice_date"`
	Seller        Party           `json:"seller"`
	Buyer         Party           `json:"buyer"`
	Items         []LineItem      `json:"items"`
	GSTRate       decimal.Decimal `json:"gst_rate"`
	TaxRegime     TaxRegime       `json:"tax_regime"`
	Totals        InvoiceTotals   `json:"totals"`
	AmountInWords string          `json:"amount_in_words"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Sale is the ledger entry opened when a bill becomes an invoice.
type Sale struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	BillID         uuid.UUID       `db:"bill_id" json:"bill_id"`
	InvoiceNumber  string          `db:"invoice_number" json:"invoice_number"`
	BuyerName      string          `db:"buyer_name" json:"buyer_name"`
	TotalAmount    decimal.Decimal `db:"total_amount" json:"total_amount"`
	ReceivedAmount decimal.Decimal `db:"received_amount" json:"received_amount"`
	PendingAmount  decimal.Decimal `db:"pending_amount" json:"pending_amount"`
	Status         PaymentStatus   `db:"status" json:"status"`
	Payments       []Payment       `db:"-" json:"payments,omitempty"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// Payment is money received against a sale.
type Payment struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	SaleID      uuid.UUID       `db:"sale_id" json:"sale_id"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	PaymentDate time.Time       `db:"payment_date" json:"payment_date"`
	Mode        PaymentMode     `db:"payment_mode" json:"mode"`
	Reference   string          `db:"reference_id" json:"reference"`
	ProofURL    string          `db:"proof_url" json:"proof_url"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// SaleFilter narrows a sales listing. Zero values mean "no filter".
type SaleFilter struct {
	Status PaymentStatus
	From   *time.Time
	To     *time.Time
}

// SalesStats aggregates the ledger.
type SalesStats struct {
	Count         int             `json:"count"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalReceived decimal.Decimal `json:"total_received"`
	TotalPending  decimal.Decimal `json:"total_pending"`
}

// InvoiceStats aggregates finalized invoices.
type InvoiceStats struct {
	TotalInvoices int             `db:"total_invoices" json:"total_invoices"`
	TotalRevenue  decimal.Decimal `db:"total_revenue" json:"total_revenue"`
}

// DashboardStats is the landing-page summary.
type DashboardStats struct {
	InvoiceStats
	Sales SalesStats `json:"sales"`
}
