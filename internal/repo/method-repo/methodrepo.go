package methodrepo

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
	selectMethods = `SELECT id, user_id, kind, is_default, details, is_active, created_at, updated_at FROM payment_methods`
	insertMethod  = `INSERT INTO payment_methods (id, user_id, kind, is_default, details, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	updateMethod = `UPDATE payment_methods
		SET kind = $2, is_default = $3, details = $4, is_active = $5, updated_at = $6
		WHERE id = $1`
	clearDefault = `UPDATE payment_methods SET is_default = FALSE WHERE user_id = $1 AND id <> $2 AND is_default`
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

func (r *Repository) Create(ctx context.Context, m *domain.PaymentMethod) error {
	details, err := json.Marshal(m.Details)
	if err != nil {
		return fmt.Errorf("failed to marshal method details: %w", err)
	}
	return r.txManager.Begin(ctx, func(ctx context.Context) error {
		if m.IsDefault {
			if _, err := r.db.Exec(ctx, clearDefault, m.UserID, m.ID); err != nil {
				zap.L().Error("failed to clear default payment method", zap.Error(err))
				return err
			}
		}
		_, err := r.db.Exec(ctx, insertMethod, m.ID, m.UserID, m.Kind, m.IsDefault, details, m.IsActive, m.CreatedAt, m.UpdatedAt)
		if err != nil {
			zap.L().Error("failed to insert payment method", zap.Error(err))
			return err
		}
		return nil
	})
}

func (r *Repository) Get(ctx context.Context, id string) (*domain.PaymentMethod, error) {
	m, err := scanMethod(r.db.QueryRow(ctx, selectMethods+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to get payment method", zap.Error(err))
		return nil, err
	}
	return m, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]domain.PaymentMethod, error) {
	rows, err := r.db.Query(ctx, selectMethods+` WHERE user_id = $1 ORDER BY created_at, id`, userID)
	if err != nil {
		zap.L().Error("failed to list payment methods", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var methods []domain.PaymentMethod
	for rows.Next() {
		m, err := scanMethod(rows)
		if err != nil {
			zap.L().Error("failed to scan payment method", zap.Error(err))
			return nil, err
		}
		methods = append(methods, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return methods, nil
}

func (r *Repository) Update(ctx context.Context, m *domain.PaymentMethod) error {
	details, err := json.Marshal(m.Details)
	if err != nil {
		return fmt.Errorf("failed to marshal method details: %w", err)
	}
	return r.txManager.Begin(ctx, func(ctx context.Context) error {
		if m.IsDefault {
			if _, err := r.db.Exec(ctx, clearDefault, m.UserID, m.ID); err != nil {
				zap.L().Error("failed to clear default payment method", zap.Error(err))
				return err
			}
		}
		tag, err := r.db.Exec(ctx, updateMethod, m.ID, m.Kind, m.IsDefault, details, m.IsActive, m.UpdatedAt)
		if err != nil {
			zap.L().Error("failed to update payment method", zap.Error(err))
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

func scanMethod(row scanner) (*domain.PaymentMethod, error) {
	var (
		m       domain.PaymentMethod
		details []byte
	)
	if err := row.Scan(&m.ID, &m.UserID, &m.Kind, &m.IsDefault, &details, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	if len(details) > 0 {
		if err := json.Unmarshal(details, &m.Details); err != nil {
			return nil, fmt.Errorf("failed to decode method details: %w", err)
		}
	}
	return &m, nil
}
