package transactionrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/internal/pg"
)

const (
	selectTransactions = `SELECT id, user_id, type, category, amount, currency, status, payment_method_id, payment_reference,
		description, metadata, processing_fee, net_amount, created_at, processed_at, failure_reason, related_transaction_id
		FROM transactions`
	insertTransaction = `INSERT INTO transactions (id, user_id, type, category, amount, currency, status, payment_method_id,
		payment_reference, description, metadata, processing_fee, net_amount, created_at, processed_at, failure_reason,
		related_transaction_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	updateTransaction = `UPDATE transactions
		SET status = $2, payment_reference = $3, metadata = $4, processing_fee = $5, net_amount = $6,
			processed_at = $7, failure_reason = $8
		WHERE id = $1`
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, t *domain.Transaction) error {
	meta, err := domain.EncodeMetadata(t.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	_, err = r.db.Exec(ctx, insertTransaction, t.ID, t.UserID, t.Type, t.Category, t.Amount, t.Currency, t.Status,
		t.PaymentMethodID, t.PaymentReference, t.Description, meta, t.ProcessingFee, t.NetAmount, t.CreatedAt,
		t.ProcessedAt, t.FailureReason, t.RelatedTransactionID)
	if err != nil {
		zap.L().Error("failed to insert transaction", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, id string) (*domain.Transaction, error) {
	t, err := scanTransaction(r.db.QueryRow(ctx, selectTransactions+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to get transaction", zap.Error(err))
		return nil, err
	}
	return t, nil
}

func (r *Repository) Update(ctx context.Context, t *domain.Transaction) error {
	meta, err := domain.EncodeMetadata(t.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	tag, err := r.db.Exec(ctx, updateTransaction, t.ID, t.Status, t.PaymentReference, meta, t.ProcessingFee,
		t.NetAmount, t.ProcessedAt, t.FailureReason)
	if err != nil {
		zap.L().Error("failed to update transaction", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repository) List(ctx context.Context, f domain.TransactionFilter) ([]domain.Transaction, error) {
	query, args := buildListQuery(f)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("failed to list transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			zap.L().Error("failed to scan transaction", zap.Error(err))
			return nil, err
		}
		txns = append(txns, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return txns, nil
}

func buildListQuery(f domain.TransactionFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.UserID != "" {
		add("user_id = $%d", f.UserID)
	}
	if f.Category != "" {
		add("category = $%d", f.Category)
	}
	if f.Type != "" {
		add("type = $%d", f.Type)
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.RelatedID != "" {
		add("related_transaction_id = $%d", f.RelatedID)
	}
	if !f.From.IsZero() {
		add("created_at >= $%d", f.From)
	}
	if !f.To.IsZero() {
		add("created_at <= $%d", f.To)
	}

	var sb strings.Builder
	sb.WriteString(selectTransactions)
	if len(conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY created_at DESC, id DESC")
	if f.Limit > 0 {
		args = append(args, f.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	return sb.String(), args
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (*domain.Transaction, error) {
	var (
		t    domain.Transaction
		meta []byte
	)
	err := row.Scan(&t.ID, &t.UserID, &t.Type, &t.Category, &t.Amount, &t.Currency, &t.Status, &t.PaymentMethodID,
		&t.PaymentReference, &t.Description, &meta, &t.ProcessingFee, &t.NetAmount, &t.CreatedAt, &t.ProcessedAt,
		&t.FailureReason, &t.RelatedTransactionID)
	if err != nil {
		return nil, err
	}
	if t.Metadata, err = domain.DecodeMetadata(meta); err != nil {
		return nil, fmt.Errorf("failed to decode metadata of %s: %w", t.ID, err)
	}
	return &t, nil
}
