package pg

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/taxdesk/taxdesk/internal/document"
)

// docColumns is the select list for document rows, in scan order.
const docColumns = `id, doc_type, status, upload_date, image_path,
	employer, wages, fed_withholding,
	payer, amount,
	vendor, expense_amount, expense_date, payment_method, category,
	charity_name, donation_type, donation_date`

// List returns all documents, optionally restricted to one type, newest
// first.
func (r *Repo) List(ctx context.Context, typ document.Type) ([]document.Document, error) {
	query := "SELECT " + docColumns + " FROM documents"
	var args []any
	if typ != "" {
		query += " WHERE doc_type = $1"
		args = append(args, string(typ))
	}
	query += " ORDER BY id DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []document.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Get fetches one document by id.
func (r *Repo) Get(ctx context.Context, id string) (document.Document, error) {
	num, err := parseID(id)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		"SELECT "+docColumns+" FROM documents WHERE id = $1", num)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}
	return scanDocument(rows)
}

// CreatePending inserts the placeholder record for a freshly uploaded image.
// Extractable fields start as Missing until reviewed.
func (r *Repo) CreatePending(ctx context.Context, typ document.Type, imagePath string) (document.Document, error) {
	var (
		cols = []string{"doc_type", "status", "upload_date", "image_path"}
		args = []any{string(typ), string(document.StatusPending), time.Now(), imagePath}
	)

	switch typ {
	case document.TypeW2:
		cols = append(cols, "employer", "wages", "fed_withholding")
		args = append(args, document.Missing, 0.0, 0.0)
	case document.Type1099:
		cols = append(cols, "payer", "amount")
		args = append(args, document.Missing, 0.0)
	case document.TypeExpense:
		cols = append(cols, "vendor", "expense_amount", "expense_date", "payment_method", "category")
		args = append(args, document.Missing, document.Missing, document.Missing, document.Missing, "Other Expenses")
	case document.TypeDonation:
		cols = append(cols, "charity_name", "donation_type", "amount", "donation_date")
		args = append(args, document.Missing, document.Missing, 0.0, document.Missing)
	default:
		return nil, fmt.Errorf("unknown document type: %q", typ)
	}

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = "$" + strconv.Itoa(i+1)
	}

	var id int64
	err := r.pool.QueryRow(ctx,
		fmt.Sprintf("INSERT INTO documents (%s) VALUES (%s) RETURNING id",
			strings.Join(cols, ", "), strings.Join(placeholders, ", ")),
		args...,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}

	return r.Get(ctx, strconv.FormatInt(id, 10))
}

// Update applies a partial field update inside one transaction, recording
// each change, and returns the updated document. Unknown or rejected fields
// fail the whole update.
func (r *Repo) Update(ctx context.Context, id string, fields map[string]string) (document.Document, error) {
	num, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return r.Get(ctx, id)
	}

	current, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback(ctx)

	for fieldID, raw := range fields {
		col, ok := document.ColumnByID(current.Type(), fieldID)
		if !ok {
			return nil, &FieldError{Field: fieldID, Message: "unknown column for document type " + string(current.Type())}
		}
		if !col.Editable {
			return nil, &FieldError{Field: fieldID, Message: "column is not editable"}
		}

		dbCol, ok := dbColumn(current.Type(), fieldID)
		if !ok {
			return nil, &FieldError{Field: fieldID, Message: "column is not stored"}
		}

		value, err := validateField(current.Type(), col, raw)
		if err != nil {
			return nil, err
		}

		if _, err := tx.Exec(ctx,
			fmt.Sprintf("UPDATE documents SET %s = $1 WHERE id = $2", dbCol),
			value, num,
		); err != nil {
			return nil, fmt.Errorf("update %s: %w", fieldID, err)
		}

		old := ""
		if v, ok := current.Field(fieldID); ok && v != nil {
			old = fmt.Sprintf("%v", v)
		}
		if err := recordChange(ctx, tx, num, fieldID, old, fmt.Sprintf("%v", value)); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit update: %w", err)
	}

	return r.Get(ctx, id)
}

// Delete removes one document. Deleting an id that does not exist returns
// ErrNotFound.
func (r *Repo) Delete(ctx context.Context, id string) error {
	num, err := parseID(id)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, "DELETE FROM documents WHERE id = $1", num)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Options assembles the advisory filter option lists: the static closed
// lists plus the distinct vendors currently on file.
func (r *Repo) Options(ctx context.Context) (Options, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT DISTINCT vendor FROM documents WHERE vendor IS NOT NULL AND vendor <> '' ORDER BY vendor")
	if err != nil {
		return Options{}, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()

	var vendors []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return Options{}, err
		}
		vendors = append(vendors, v)
	}
	if err := rows.Err(); err != nil {
		return Options{}, err
	}

	return Options{
		Categories:     document.ExpenseCategories,
		PaymentMethods: document.PaymentMethods,
		Statuses:       document.Statuses(),
		Vendors:        vendors,
	}, nil
}

// Options are the advisory multi-select option lists.
type Options struct {
	Categories     []string `json:"categories"`
	PaymentMethods []string `json:"payment_methods"`
	Statuses       []string `json:"statuses"`
	Vendors        []string `json:"vendors"`
}

func parseID(id string) (int64, error) {
	num, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, &FieldError{Field: "id", Value: id, Message: "identifier must be numeric"}
	}
	return num, nil
}

// scanDocument reads one row in docColumns order and builds its variant.
func scanDocument(rows pgx.Rows) (document.Document, error) {
	var (
		id         int64
		docType    string
		status     string
		uploadDate pgtype.Date
		imagePath  string

		employer       pgtype.Text
		wages          pgtype.Float8
		fedWithholding pgtype.Float8

		payer  pgtype.Text
		amount pgtype.Float8

		vendor        pgtype.Text
		expenseAmount pgtype.Text
		expenseDate   pgtype.Text
		paymentMethod pgtype.Text
		category      pgtype.Text

		charityName  pgtype.Text
		donationType pgtype.Text
		donationDate pgtype.Text
	)

	if err := rows.Scan(
		&id, &docType, &status, &uploadDate, &imagePath,
		&employer, &wages, &fedWithholding,
		&payer, &amount,
		&vendor, &expenseAmount, &expenseDate, &paymentMethod, &category,
		&charityName, &donationType, &donationDate,
	); err != nil {
		return nil, fmt.Errorf("scan document: %w", err)
	}

	typ, err := document.ParseType(docType)
	if err != nil {
		return nil, err
	}
	st, ok := document.NormalizeStatus(status)
	if !ok {
		st = document.StatusPending
	}

	base := document.Base{
		DocID:   strconv.FormatInt(id, 10),
		DocType: typ,
		State:   st,
		Image:   imagePath,
	}
	if uploadDate.Valid {
		base.Upload = uploadDate.Time.Format("2006-01-02")
	}

	switch typ {
	case document.TypeW2:
		return document.W2{
			Base:           base,
			Employer:       employer.String,
			Wages:          wages.Float64,
			FedWithholding: fedWithholding.Float64,
		}, nil
	case document.Type1099:
		return document.Form1099{
			Base:   base,
			Payer:  payer.String,
			Amount: amount.Float64,
		}, nil
	case document.TypeExpense:
		return document.Expense{
			Base:          base,
			Vendor:        vendor.String,
			Amount:        expenseAmount.String,
			Date:          expenseDate.String,
			PaymentMethod: paymentMethod.String,
			Category:      category.String,
		}, nil
	case document.TypeDonation:
		return document.Donation{
			Base:         base,
			CharityName:  charityName.String,
			DonationType: donationType.String,
			Amount:       amount.Float64,
			Date:         donationDate.String,
		}, nil
	}
	return nil, errors.New("unknown document type in row: " + docType)
}

// dbColumn maps a (type, column id) pair to its storage column. The amount
// and date ids land on different columns per variant.
func dbColumn(typ document.Type, fieldID string) (string, bool) {
	switch fieldID {
	case document.ColStatus:
		return "status", true
	case document.ColEmployer:
		return "employer", true
	case document.ColWages:
		return "wages", true
	case document.ColFedWithholding:
		return "fed_withholding", true
	case document.ColPayer:
		return "payer", true
	case document.ColVendor:
		return "vendor", true
	case document.ColPaymentMethod:
		return "payment_method", true
	case document.ColCategory:
		return "category", true
	case document.ColCharityName:
		return "charity_name", true
	case document.ColDonationType:
		return "donation_type", true
	case document.ColAmount:
		if typ == document.TypeExpense {
			return "expense_amount", true
		}
		return "amount", true
	case document.ColDate:
		if typ == document.TypeExpense {
			return "expense_date", true
		}
		return "donation_date", true
	}
	return "", false
}
