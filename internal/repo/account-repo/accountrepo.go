package accountrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/internal/pg"
)

const (
	selectAccounts = `SELECT id, user_id, kind, details, is_default, is_verified, verification_status, created_at, verified_at, failure_reason FROM payout_accounts`
	insertAccount  = `INSERT INTO payout_accounts (id, user_id, kind, details, is_default, is_verified, verification_status, created_at, verified_at, failure_reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	updateAccount = `UPDATE payout_accounts
		SET kind = $2, details = $3, is_default = $4, is_verified = $5, verification_status = $6, verified_at = $7, failure_reason = $8
		WHERE id = $1`
	clearDefault = `UPDATE payout_accounts SET is_default = FALSE WHERE user_id = $1 AND id <> $2 AND is_default`
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func (r *Repository) Create(ctx context.Context, a *domain.PayoutAccount) error {
	details, err := json.Marshal(a.Details)
	if err != nil {
		return fmt.Errorf("failed to marshal account details: %w", err)
	}
	return r.txManager.Begin(ctx, func(ctx context.Context) error {
		if a.IsDefault {
			if _, err := r.db.Exec(ctx, clearDefault, a.UserID, a.ID); err != nil {
				zap.L().Error("failed to clear default payout account", zap.Error(err))
				return err
			}
		}
		_, err := r.db.Exec(ctx, insertAccount, a.ID, a.UserID, a.Kind, details, a.IsDefault, a.IsVerified,
			a.VerificationStatus, a.CreatedAt, a.VerifiedAt, a.FailureReason)
		if err != nil {
			zap.L().Error("failed to insert payout account", zap.Error(err))
			return err
		}
		return nil
	})
}

func (r *Repository) Get(ctx context.Context, id string) (*domain.PayoutAccount, error) {
	a, err := scanAccount(r.db.QueryRow(ctx, selectAccounts+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to get payout account", zap.Error(err))
		return nil, err
	}
	return a, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]domain.PayoutAccount, error) {
	return r.list(ctx, selectAccounts+` WHERE user_id = $1 ORDER BY created_at, id`, userID)
}

func (r *Repository) ListByVerification(ctx context.Context, status domain.VerificationStatus) ([]domain.PayoutAccount, error) {
	return r.list(ctx, selectAccounts+` WHERE verification_status = $1 ORDER BY created_at, id`, status)
}

func (r *Repository) list(ctx context.Context, query string, arg any) ([]domain.PayoutAccount, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		zap.L().Error("failed to list payout accounts", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.PayoutAccount
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			zap.L().Error("failed to scan payout account", zap.Error(err))
			return nil, err
		}
		accounts = append(accounts, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *Repository) Update(ctx context.Context, a *domain.PayoutAccount) error {
	details, err := json.Marshal(a.Details)
	if err != nil {
		return fmt.Errorf("failed to marshal account details: %w", err)
	}
	return r.txManager.Begin(ctx, func(ctx context.Context) error {
		if a.IsDefault {
			if _, err := r.db.Exec(ctx, clearDefault, a.UserID, a.ID); err != nil {
				zap.L().Error("failed to clear default payout account", zap.Error(err))
				return err
			}
		}
		tag, err := r.db.Exec(ctx, updateAccount, a.ID, a.Kind, details, a.IsDefault, a.IsVerified,
			a.VerificationStatus, a.VerifiedAt, a.FailureReason)
		if err != nil {
			zap.L().Error("failed to update payout account", zap.Error(err))
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (*domain.PayoutAccount, error) {
	var (
		a       domain.PayoutAccount
		details []byte
	)
	err := row.Scan(&a.ID, &a.UserID, &a.Kind, &details, &a.IsDefault, &a.IsVerified,
		&a.VerificationStatus, &a.CreatedAt, &a.VerifiedAt, &a.FailureReason)
	if err != nil {
		return nil, err
	}
	if len(details) > 0 {
		if err := json.Unmarshal(details, &a.Details); err != nil {
			return nil, fmt.Errorf("failed to decode account details: %w", err)
		}
	}
	return &a, nil
}
