package payoutrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/internal/pg"
)

const (
	selectPayouts = `SELECT id, user_id, user_name, user_role, amount, currency, status, payout_account_id, category,
		period_start, period_end, transaction_ids, processing_fee, net_amount, payout_reference, scheduled_for,
		processed_at, failure_reason, metadata, created_at
		FROM payouts`
	insertPayout = `INSERT INTO payouts (id, user_id, user_name, user_role, amount, currency, status, payout_account_id,
		category, period_start, period_end, transaction_ids, processing_fee, net_amount, payout_reference, scheduled_for,
		processed_at, failure_reason, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	updatePayout = `UPDATE payouts
		SET status = $2, payout_reference = $3, processed_at = $4, failure_reason = $5, metadata = $6
		WHERE id = $1`
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, p *domain.Payout) error {
	meta, err := json.Marshal(p.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal payout metadata: %w", err)
	}
	ids := p.TransactionIDs
	if ids == nil {
		ids = []string{}
	}
	_, err = r.db.Exec(ctx, insertPayout, p.ID, p.UserID, p.UserName, p.UserRole, p.Amount, p.Currency, p.Status,
		p.PayoutAccountID, p.Category, p.Period.Start, p.Period.End, ids, p.ProcessingFee, p.NetAmount,
		p.PayoutReference, p.ScheduledFor, p.ProcessedAt, p.FailureReason, meta, p.CreatedAt)
	if err != nil {
		zap.L().Error("failed to insert payout", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, id string) (*domain.Payout, error) {
	p, err := scanPayout(r.db.QueryRow(ctx, selectPayouts+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to get payout", zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *Repository) Update(ctx context.Context, p *domain.Payout) error {
	meta, err := json.Marshal(p.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal payout metadata: %w", err)
	}
	tag, err := r.db.Exec(ctx, updatePayout, p.ID, p.Status, p.PayoutReference, p.ProcessedAt, p.FailureReason, meta)
	if err != nil {
		zap.L().Error("failed to update payout", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repository) List(ctx context.Context, f domain.PayoutFilter) ([]domain.Payout, error) {
	query, args := buildListQuery(f)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("failed to list payouts", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var payouts []domain.Payout
	for rows.Next() {
		p, err := scanPayout(rows)
		if err != nil {
			zap.L().Error("failed to scan payout", zap.Error(err))
			return nil, err
		}
		payouts = append(payouts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payouts, nil
}

func buildListQuery(f domain.PayoutFilter) (string, []any) {
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
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if !f.From.IsZero() {
		add("created_at >= $%d", f.From)
	}
	if !f.To.IsZero() {
		add("created_at <= $%d", f.To)
	}

	var sb strings.Builder
	sb.WriteString(selectPayouts)
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

func scanPayout(row scanner) (*domain.Payout, error) {
	var (
		p    domain.Payout
		meta []byte
	)
	err := row.Scan(&p.ID, &p.UserID, &p.UserName, &p.UserRole, &p.Amount, &p.Currency, &p.Status, &p.PayoutAccountID,
		&p.Category, &p.Period.Start, &p.Period.End, &p.TransactionIDs, &p.ProcessingFee, &p.NetAmount,
		&p.PayoutReference, &p.ScheduledFor, &p.ProcessedAt, &p.FailureReason, &meta, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &p.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode payout metadata: %w", err)
		}
	}
	return &p, nil
}
