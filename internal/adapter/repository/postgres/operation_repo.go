package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ivlev/moneta/internal/domain"
	"github.com/ivlev/moneta/internal/usecase"
)

const operationColumns = "id, reference, kind, user_id, account_id, to_user_id, to_account_id, amount, currency, rate, created_at"

// OperationRepository implements usecase.OperationRepository. Operation
// rows are append-only; there is no update path.
type OperationRepository struct {
	pool *pgxpool.Pool
}

// NewOperationRepository creates a new OperationRepository.
func NewOperationRepository(pool *pgxpool.Pool) *OperationRepository {
	return &OperationRepository{pool: pool}
}

// Create inserts an operation record inside a transaction and assigns
// its id.
func (r *OperationRepository) Create(ctx context.Context, tx usecase.Transaction, op *domain.Operation) error {
	var rate pgtype.Numeric
	if op.Rate != nil {
		rate = decimalToNumeric(*op.Rate)
	}

	return txQuerier(tx).QueryRow(ctx,
		`INSERT INTO operations (reference, kind, user_id, account_id, to_user_id, to_account_id, amount, currency, rate, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		op.Reference,
		string(op.Kind),
		op.UserID,
		op.AccountID,
		op.ToUserID,
		op.ToAccountID,
		decimalToNumeric(op.Amount),
		string(op.Currency),
		rate,
		timeToPgTimestamptz(op.CreatedAt),
	).Scan(&op.ID)
}

// GetByID retrieves an operation by ID.
func (r *OperationRepository) GetByID(ctx context.Context, id int64) (*domain.Operation, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+operationColumns+` FROM operations WHERE id = $1`, id)

	return scanOperation(row)
}

// ListByAccount lists operations touching an account as either
// endpoint, newest first.
func (r *OperationRepository) ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Operation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+operationColumns+` FROM operations
		 WHERE account_id = $1 OR to_account_id = $1
		 ORDER BY id DESC
		 LIMIT $2 OFFSET $3`,
		accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOperations(rows)
}

// ListByUser lists operations touching a user as either endpoint,
// newest first.
func (r *OperationRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*domain.Operation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+operationColumns+` FROM operations
		 WHERE user_id = $1 OR to_user_id = $1
		 ORDER BY id DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOperations(rows)
}

// Delete removes an operation record.
func (r *OperationRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM operations WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrOperationNotFound
	}

	return nil
}

func collectOperations(rows pgx.Rows) ([]*domain.Operation, error) {
	ops := []*domain.Operation{}

	for rows.Next() {
		op, err := scanOperation(rows)
		if err != nil {
			return nil, err
		}

		ops = append(ops, op)
	}

	return ops, rows.Err()
}

func scanOperation(row pgx.Row) (*domain.Operation, error) {
	var (
		op        domain.Operation
		kind      string
		amount    pgtype.Numeric
		currency  string
		rate      pgtype.Numeric
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(
		&op.ID,
		&op.Reference,
		&kind,
		&op.UserID,
		&op.AccountID,
		&op.ToUserID,
		&op.ToAccountID,
		&amount,
		&currency,
		&rate,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOperationNotFound
		}

		return nil, err
	}

	op.Kind = domain.OperationKind(kind)
	op.Amount = numericToDecimal(amount)
	op.Currency = domain.Currency(currency)
	op.CreatedAt = createdAt.Time

	if rate.Valid {
		applied := numericToDecimal(rate)
		op.Rate = &applied
	}

	return &op, nil
}
