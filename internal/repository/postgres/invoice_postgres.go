package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"invoiceapi/internal/analytics"
	"invoiceapi/internal/model"
	"invoiceapi/internal/repository"
)

// InvoicePostgres is a PostgreSQL implementation of
// repository.InvoiceRepository. It uses database/sql with parameterized
// queries and contains no business logic beyond display defaulting of
// joined projections.
type InvoicePostgres struct {
	db *sql.DB
}

// NewInvoicePostgres creates a new InvoicePostgres repository.
func NewInvoicePostgres(db *sql.DB) *InvoicePostgres {
	return &InvoicePostgres{db: db}
}

var _ repository.InvoiceRepository = (*InvoicePostgres)(nil)

// sortColumns whitelists the sortable aliases of the list endpoint.
var sortColumns = map[string]string{
	"created_at":   "i.created_at",
	"invoice_date": "i.invoice_date",
	"amount":       "s.invoice_total",
	"vendor":       "v.name",
	"status":       "i.status",
}

const invoiceRowSelect = `
	SELECT i.id, v.name, i.invoice_number, i.invoice_date, i.status, i.created_at,
	       s.invoice_total, p.due_date,
	       (SELECT li.description FROM line_item li
	        WHERE li.invoice_id = i.id ORDER BY li.position LIMIT 1)
	FROM invoice i
	LEFT JOIN vendor v ON v.id = i.vendor_id
	LEFT JOIN summary s ON s.invoice_id = i.id
	LEFT JOIN payment p ON p.invoice_id = i.id
`

// CreateInvoice inserts the invoice and its relations in one transaction.
func (r *InvoicePostgres) CreateInvoice(ctx context.Context, inv *model.Invoice) (*model.Invoice, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var vendorID, customerID sql.NullString
	if inv.Vendor != nil {
		const q = `
			INSERT INTO vendor (id, name) VALUES ($1, $2)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`
		if err := tx.QueryRowContext(ctx, q, inv.Vendor.ID, inv.Vendor.Name).Scan(&vendorID.String); err != nil {
			return nil, fmt.Errorf("insert vendor: %w", err)
		}
		vendorID.Valid = true
		inv.Vendor.ID = vendorID.String
	}
	if inv.Customer != nil {
		const q = `
			INSERT INTO customer (id, name) VALUES ($1, $2)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`
		if err := tx.QueryRowContext(ctx, q, inv.Customer.ID, inv.Customer.Name).Scan(&customerID.String); err != nil {
			return nil, fmt.Errorf("insert customer: %w", err)
		}
		customerID.Valid = true
		inv.Customer.ID = customerID.String
	}

	const qInv = `
		INSERT INTO invoice (id, invoice_number, invoice_date, status, created_at, vendor_id, customer_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := tx.ExecContext(ctx, qInv,
		inv.ID, inv.InvoiceNumber, inv.InvoiceDate, inv.Status, inv.CreatedAt, vendorID, customerID,
	); err != nil {
		return nil, fmt.Errorf("insert invoice: %w", err)
	}

	const qItem = `
		INSERT INTO line_item (id, invoice_id, position, description, quantity, unit_price, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for pos, item := range inv.LineItems {
		if _, err := tx.ExecContext(ctx, qItem,
			item.ID, inv.ID, pos, item.Description, item.Quantity, item.UnitPrice, item.Total,
		); err != nil {
			return nil, fmt.Errorf("insert line item: %w", err)
		}
	}

	if inv.Payment != nil {
		const q = `INSERT INTO payment (id, invoice_id, due_date, terms) VALUES ($1, $2, $3, $4)`
		if _, err := tx.ExecContext(ctx, q,
			inv.Payment.ID, inv.ID, inv.Payment.DueDate, inv.Payment.Terms,
		); err != nil {
			return nil, fmt.Errorf("insert payment: %w", err)
		}
	}

	if inv.Summary != nil {
		const q = `
			INSERT INTO summary (id, invoice_id, sub_total, total_tax, invoice_total, currency)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		if _, err := tx.ExecContext(ctx, q,
			inv.Summary.ID, inv.ID, inv.Summary.SubTotal, inv.Summary.TotalTax,
			inv.Summary.InvoiceTotal, inv.Summary.Currency,
		); err != nil {
			return nil, fmt.Errorf("insert summary: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return inv, nil
}

// ListInvoices returns the joined projection, newest first by default.
func (r *InvoicePostgres) ListInvoices(ctx context.Context, q repository.ListQuery) ([]model.InvoiceRow, error) {
	query := invoiceRowSelect
	args := []any{}
	if q.Search != "" {
		query += ` WHERE v.name ILIKE '%' || $1 || '%' OR i.invoice_number ILIKE '%' || $1 || '%'`
		args = append(args, q.Search)
	}

	col, ok := sortColumns[q.Sort]
	if !ok {
		col = "i.created_at"
	}
	dir := "DESC"
	if q.Order == "asc" {
		dir = "ASC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", col, dir)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanInvoiceRows(rows)
}

// RecentInvoices returns the newest rows, for the chat fallback answer.
func (r *InvoicePostgres) RecentInvoices(ctx context.Context, limit int) ([]model.InvoiceRow, error) {
	query := invoiceRowSelect + ` ORDER BY i.created_at DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanInvoiceRows(rows)
}

func scanInvoiceRows(rows *sql.Rows) ([]model.InvoiceRow, error) {
	out := make([]model.InvoiceRow, 0)
	for rows.Next() {
		var (
			row         model.InvoiceRow
			vendorName  sql.NullString
			number      sql.NullString
			invoiceDate sql.NullTime
			total       sql.NullFloat64
			dueDate     sql.NullTime
			firstItem   sql.NullString
		)
		if err := rows.Scan(
			&row.ID, &vendorName, &number, &invoiceDate, &row.Status, &row.CreatedAt,
			&total, &dueDate, &firstItem,
		); err != nil {
			return nil, err
		}

		// Display defaults, resolved once at the projection boundary.
		row.VendorName = analytics.UnknownVendor
		if vendorName.Valid && vendorName.String != "" {
			row.VendorName = vendorName.String
		}
		row.InvoiceNumber = "N/A"
		if number.Valid && number.String != "" {
			row.InvoiceNumber = number.String
		}
		row.InvoiceDate = row.CreatedAt
		if invoiceDate.Valid {
			row.InvoiceDate = invoiceDate.Time
		}
		row.DueDate = row.InvoiceDate
		if dueDate.Valid {
			row.DueDate = dueDate.Time
		}
		if total.Valid {
			row.Amount = math.Abs(total.Float64)
		}
		var descs []string
		if firstItem.Valid {
			descs = []string{firstItem.String}
		}
		row.Category = analytics.Categorize(descs)

		out = append(out, row)
	}
	return out, rows.Err()
}

// Records loads the full collection as analytics records. Line item
// descriptions are fetched in a second pass and merged in position order.
func (r *InvoicePostgres) Records(ctx context.Context) ([]analytics.InvoiceRecord, error) {
	const q = `
		SELECT i.id, v.name, s.invoice_total, i.invoice_date, p.due_date, i.status, i.created_at
		FROM invoice i
		LEFT JOIN vendor v ON v.id = i.vendor_id
		LEFT JOIN summary s ON s.invoice_id = i.id
		LEFT JOIN payment p ON p.invoice_id = i.id
		ORDER BY i.created_at
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]analytics.InvoiceRecord, 0)
	index := make(map[string]int)
	for rows.Next() {
		var (
			rec         analytics.InvoiceRecord
			vendorName  sql.NullString
			total       sql.NullFloat64
			invoiceDate sql.NullTime
			dueDate     sql.NullTime
		)
		if err := rows.Scan(
			&rec.ID, &vendorName, &total, &invoiceDate, &dueDate, &rec.Status, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		rec.VendorName = analytics.UnknownVendor
		if vendorName.Valid && vendorName.String != "" {
			rec.VendorName = vendorName.String
		}
		if total.Valid {
			// Credit memos arrive with a negative sign; aggregation works on
			// the absolute value.
			rec.Amount = math.Abs(total.Float64)
		}
		if invoiceDate.Valid {
			t := invoiceDate.Time
			rec.InvoiceDate = &t
		}
		if dueDate.Valid {
			t := dueDate.Time
			rec.DueDate = &t
		}
		index[rec.ID] = len(records)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const qItems = `SELECT invoice_id, description FROM line_item ORDER BY invoice_id, position`
	itemRows, err := r.db.QueryContext(ctx, qItems)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var invoiceID, desc string
		if err := itemRows.Scan(&invoiceID, &desc); err != nil {
			return nil, err
		}
		if i, ok := index[invoiceID]; ok {
			records[i].LineItemDescriptions = append(records[i].LineItemDescriptions, desc)
		}
	}
	return records, itemRows.Err()
}

// Stats fetches the dashboard headline aggregates.
func (r *InvoicePostgres) Stats(ctx context.Context) (*model.Stats, error) {
	var s model.Stats
	const qCount = `SELECT COUNT(*) FROM invoice`
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&s.InvoicesProcessed); err != nil {
		return nil, err
	}
	const qSums = `SELECT COALESCE(SUM(invoice_total), 0), COALESCE(AVG(invoice_total), 0) FROM summary`
	if err := r.db.QueryRowContext(ctx, qSums).Scan(&s.TotalSpend, &s.AverageInvoiceValue); err != nil {
		return nil, err
	}
	// Every stored invoice originated from one uploaded document.
	s.DocumentsUploaded = s.InvoicesProcessed
	return &s, nil
}

// SumByStatus returns count and summed totals for invoices in one status.
func (r *InvoicePostgres) SumByStatus(ctx context.Context, status string) (*repository.StatusCount, error) {
	const q = `
		SELECT COUNT(*), COALESCE(SUM(s.invoice_total), 0)
		FROM invoice i
		LEFT JOIN summary s ON s.invoice_id = i.id
		WHERE i.status = $1
	`
	var sc repository.StatusCount
	if err := r.db.QueryRowContext(ctx, q, status).Scan(&sc.Count, &sc.Total); err != nil {
		return nil, err
	}
	return &sc, nil
}

// AttachDocument inserts the stored source document row for an invoice.
// An invoice keeps at most one source document; re-uploading replaces it.
func (r *InvoicePostgres) AttachDocument(ctx context.Context, doc *model.InvoiceDocument) (*model.InvoiceDocument, error) {
	const q = `
		INSERT INTO invoice_document (id, invoice_id, filename, storage_path, size, content_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (invoice_id) DO UPDATE
		SET filename = EXCLUDED.filename, storage_path = EXCLUDED.storage_path,
		    size = EXCLUDED.size, content_type = EXCLUDED.content_type, created_at = EXCLUDED.created_at
		RETURNING id, invoice_id, filename, storage_path, size, content_type, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		doc.ID, doc.InvoiceID, doc.Filename, doc.StoragePath, doc.Size, doc.ContentType, doc.CreatedAt,
	)
	var out model.InvoiceDocument
	if err := row.Scan(
		&out.ID, &out.InvoiceID, &out.Filename, &out.StoragePath, &out.Size, &out.ContentType, &out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindDocument returns the stored source document of an invoice.
func (r *InvoicePostgres) FindDocument(ctx context.Context, invoiceID string) (*model.InvoiceDocument, error) {
	const q = `
		SELECT id, invoice_id, filename, storage_path, size, content_type, created_at
		FROM invoice_document
		WHERE invoice_id = $1
	`
	var d model.InvoiceDocument
	err := r.db.QueryRowContext(ctx, q, invoiceID).Scan(
		&d.ID, &d.InvoiceID, &d.Filename, &d.StoragePath, &d.Size, &d.ContentType, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// InvoiceExists reports whether an invoice row exists.
func (r *InvoicePostgres) InvoiceExists(ctx context.Context, id string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM invoice WHERE id = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// IsNoRows reports whether err is the database/sql missing-row sentinel.
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
